package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/tailord/backend/internal/domain"
)

// Simple is the deterministic, zero-cost summarizer. It is the guaranteed
// fallback path: it never fails on well-formed input and produces the same
// text for the same results every time.
type Simple struct{}

// NewSimple creates the deterministic summarizer.
func NewSimple() *Simple {
	return &Simple{}
}

// Summarize produces a short factual overview of the result set.
func (s *Simple) Summarize(ctx context.Context, results []domain.RankedResult, query string) (string, error) {
	if len(results) == 0 {
		return fmt.Sprintf("No items matched %q. Try fewer filters or a broader search.", query), nil
	}

	lo, hi := priceSpread(results)
	top := results[0]

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d item", len(results))
	if len(results) != 1 {
		b.WriteString("s")
	}
	fmt.Fprintf(&b, " for %q", query)
	if lo == hi {
		fmt.Fprintf(&b, " at $%.0f", lo)
	} else {
		fmt.Fprintf(&b, " from $%.0f to $%.0f", lo, hi)
	}
	fmt.Fprintf(&b, ". Top pick: %s ($%.0f).", displayName(top), top.Price)

	return b.String(), nil
}

// ItemBlurbs produces one line per item from the record fields alone.
func (s *Simple) ItemBlurbs(ctx context.Context, results []domain.RankedResult, query string) (map[string]string, error) {
	blurbs := make(map[string]string, len(results))
	for _, result := range results {
		blurbs[result.ID] = fmt.Sprintf("%s - $%.0f", displayName(result), result.Price)
	}
	return blurbs, nil
}

func displayName(result domain.RankedResult) string {
	if result.Brand == "" {
		return result.Title
	}
	return result.Brand + " " + result.Title
}

func priceSpread(results []domain.RankedResult) (lo, hi float64) {
	lo, hi = results[0].Price, results[0].Price
	for _, result := range results[1:] {
		if result.Price < lo {
			lo = result.Price
		}
		if result.Price > hi {
			hi = result.Price
		}
	}
	return lo, hi
}
