package usecase

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/tailord/backend/internal/domain"
)

// Scoring constants. Every record starts at scoreBaseline; bonuses are
// additive and each one is recorded by name into the score breakdown in the
// order evaluated. The exact-phrase bonus is deliberately the largest single
// factor. Unavailable items are demoted, not excluded, so "can't buy it"
// still ranks below "doesn't match".
const (
	scoreBaseline = 10.0

	bonusGarment      = 15.0
	bonusFit          = 10.0
	bonusColor        = 10.0
	bonusPriceInRange = 12.0
	bonusBrand        = 15.0
	bonusStyle        = 8.0
	bonusExactPhrase  = 30.0

	penaltyUnavailable = 20.0
)

// Breakdown factor names, stable across releases because clients display them.
const (
	factorGarment     = "garment"
	factorFit         = "fit"
	factorColor       = "color"
	factorPrice       = "price-in-budget"
	factorBrand       = "brand"
	factorStyle       = "style"
	factorExactPhrase = "exact-phrase"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// RankerConfig holds configuration for the ranker.
type RankerConfig struct {
	EnableDebugLogging bool
}

// Ranker scores and orders normalized product records against extracted
// facets, after removing duplicates.
type Ranker struct {
	enableDebugLogging bool
}

// NewRanker creates a new ranker with the given configuration.
func NewRanker(config RankerConfig) *Ranker {
	return &Ranker{enableDebugLogging: config.EnableDebugLogging}
}

// Rank deduplicates records, scores them against the facets and raw query,
// and returns them ordered by descending score. The sort is stable: records
// with equal scores keep their pre-sort relative order, which is the
// retrieval order.
func (r *Ranker) Rank(records []domain.ProductRecord, facets domain.FacetSet, rawText string) []domain.RankedResult {
	deduped := Deduplicate(records)

	results := make([]domain.RankedResult, 0, len(deduped))
	for _, record := range deduped {
		score, breakdown := r.scoreRecord(record, facets, rawText)
		results = append(results, domain.RankedResult{
			ProductRecord:  record,
			Score:          score,
			ScoreBreakdown: breakdown,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// scoreRecord computes one record's score and the ordered list of factors
// that contributed positively.
func (r *Ranker) scoreRecord(record domain.ProductRecord, facets domain.FacetSet, rawText string) (float64, []string) {
	score := scoreBaseline
	var breakdown []string

	titleLower := strings.ToLower(record.Title)
	haystack := titleLower + " " + strings.ToLower(strings.Join(record.Tags, " "))

	if facets.Garment != "" && matchesGarment(haystack, facets.Garment) {
		score += bonusGarment
		breakdown = append(breakdown, factorGarment)
	}

	if facets.Fit != "" && matchesFit(haystack, facets.Fit) {
		score += bonusFit
		breakdown = append(breakdown, factorFit)
	}

	if containsAny(haystack, facets.Colors) {
		score += bonusColor
		breakdown = append(breakdown, factorColor)
	}

	if facets.Price != nil && priceInRange(record.Price, facets.Price) {
		score += bonusPriceInRange
		breakdown = append(breakdown, factorPrice)
	}

	if matchesBrand(record, facets.Brands) {
		score += bonusBrand
		breakdown = append(breakdown, factorBrand)
	}

	if containsAny(haystack, facets.Styles) {
		score += bonusStyle
		breakdown = append(breakdown, factorStyle)
	}

	phrase := strings.ToLower(strings.TrimSpace(rawText))
	if phrase != "" && strings.Contains(titleLower, phrase) {
		score += bonusExactPhrase
		breakdown = append(breakdown, factorExactPhrase)
	}

	if !record.Available {
		score -= penaltyUnavailable
	}

	if r.enableDebugLogging {
		log.Printf("[RANK] %q score=%.1f factors=%v available=%v", record.Title, score, breakdown, record.Available)
	}

	return score, breakdown
}

// matchesGarment checks title+tags for the garment term. Jeans also match on
// "denim" since vintage listings often omit the word jeans entirely.
func matchesGarment(haystack string, garment domain.Garment) bool {
	if strings.Contains(haystack, string(garment)) {
		return true
	}
	return garment == domain.GarmentJeans && strings.Contains(haystack, "denim")
}

// matchesFit checks title+tags for the fit term, tolerating both spaced and
// hyphenated spellings of the rise fits.
func matchesFit(haystack string, fit domain.Fit) bool {
	if strings.Contains(haystack, string(fit)) {
		return true
	}
	spaced := strings.ReplaceAll(string(fit), "-", " ")
	return spaced != string(fit) && strings.Contains(haystack, spaced)
}

// priceInRange checks the record price against whichever bounds are set.
func priceInRange(price float64, bounds *domain.PriceRange) bool {
	if bounds.Max != nil && price > *bounds.Max {
		return false
	}
	if bounds.Min != nil && price < *bounds.Min {
		return false
	}
	return bounds.Max != nil || bounds.Min != nil
}

// matchesBrand checks the record's vendor field and tags for any wanted brand.
func matchesBrand(record domain.ProductRecord, brands []string) bool {
	if len(brands) == 0 {
		return false
	}
	recordBrand := strings.ToLower(record.Brand)
	tags := strings.ToLower(strings.Join(record.Tags, " "))
	for _, brand := range brands {
		if strings.Contains(recordBrand, brand) || strings.Contains(tags, brand) {
			return true
		}
	}
	return false
}

// containsAny reports whether any needle occurs in the haystack.
func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// Deduplicate removes exact id duplicates first, then collapses near
// duplicates whose normalized title+brand+price are identical (the same
// conceptual item returned by two backends). The first-seen instance is
// kept and relative order is preserved, so running it on its own output is
// a no-op.
func Deduplicate(records []domain.ProductRecord) []domain.ProductRecord {
	seenID := make(map[string]bool, len(records))
	seenKey := make(map[string]bool, len(records))

	deduped := make([]domain.ProductRecord, 0, len(records))
	for _, record := range records {
		if seenID[record.ID] {
			continue
		}
		key := nearDuplicateKey(record)
		if seenKey[key] {
			continue
		}
		seenID[record.ID] = true
		seenKey[key] = true
		deduped = append(deduped, record)
	}

	return deduped
}

// nearDuplicateKey builds the normalized identity used by the second dedup
// pass: lowercased collapsed title, brand, and price to the cent.
func nearDuplicateKey(record domain.ProductRecord) string {
	title := whitespaceRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(record.Title)), " ")
	brand := strings.ToLower(strings.TrimSpace(record.Brand))
	return fmt.Sprintf("%s|%s|%.2f", title, brand, record.Price)
}
