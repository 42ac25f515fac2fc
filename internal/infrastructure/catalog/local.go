package catalog

import (
	_ "embed"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/tailord/backend/internal/domain"
)

//go:embed catalog.json
var bundledCatalog []byte

// item is the raw shape of one bundled catalog entry.
type item struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Brand    string   `json:"brand"`
	Price    float64  `json:"price"`
	Category string   `json:"category"`
	Color    string   `json:"color"`
	Image    string   `json:"image"`
	Tags     []string `json:"tags"`
}

// Local is the always-available fallback catalog source. It has no remote
// query language, so it filters directly on the FacetSet carried in the
// query plan instead of parsing the built query string.
type Local struct {
	items []item
	debug bool
}

// NewLocal loads the bundled catalog dataset.
func NewLocal() (*Local, error) {
	var items []item
	if err := json.Unmarshal(bundledCatalog, &items); err != nil {
		return nil, fmt.Errorf("failed to parse bundled catalog: %w", err)
	}
	return &Local{items: items}, nil
}

// NewLocalFromData builds a catalog from an explicit JSON dataset. Used by
// tests and by deployments that ship their own catalog.
func NewLocalFromData(data []byte) (*Local, error) {
	var items []item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog data: %w", err)
	}
	return &Local{items: items}, nil
}

// SetDebug enables filter logging.
func (l *Local) SetDebug(enabled bool) {
	l.debug = enabled
}

// Name identifies this backend in logs and response metadata.
func (l *Local) Name() string {
	return "catalog"
}

// Size returns the number of bundled items.
func (l *Local) Size() int {
	return len(l.items)
}

// Search filters the bundled items by the plan's facets and caps the result
// at limit. It never fails: the dataset is in memory and already validated.
func (l *Local) Search(ctx context.Context, plan domain.QueryPlan, limit int) ([]domain.ProductRecord, error) {
	facets := plan.Facets

	records := make([]domain.ProductRecord, 0, limit)
	for _, it := range l.items {
		if len(records) >= limit {
			break
		}
		if !matches(it, facets) {
			continue
		}
		records = append(records, toRecord(it))
	}

	if l.debug {
		log.Printf("[CATALOG] Matched %d of %d items for facets %+v", len(records), len(l.items), facets)
	}

	return records, nil
}

func matches(it item, facets domain.FacetSet) bool {
	titleLower := strings.ToLower(it.Title)
	categoryLower := strings.ToLower(it.Category)

	if facets.Garment != "" {
		g := string(facets.Garment)
		if !strings.Contains(titleLower, g) && !strings.Contains(categoryLower, g) {
			return false
		}
	}

	if facets.Price != nil {
		if facets.Price.Max != nil && it.Price > *facets.Price.Max {
			return false
		}
		if facets.Price.Min != nil && it.Price < *facets.Price.Min {
			return false
		}
	}

	if len(facets.Colors) > 0 {
		colorLower := strings.ToLower(it.Color)
		found := false
		for _, color := range facets.Colors {
			if strings.Contains(titleLower, color) || strings.Contains(colorLower, color) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(facets.Brands) > 0 {
		brandLower := strings.ToLower(it.Brand)
		found := false
		for _, brand := range facets.Brands {
			if strings.Contains(brandLower, brand) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func toRecord(it item) domain.ProductRecord {
	image := it.Image
	if image == "" {
		image = "/placeholder.jpg"
	}
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.ProductRecord{
		ID:        "catalog:" + it.ID,
		Title:     it.Title,
		Brand:     it.Brand,
		Price:     it.Price,
		Currency:  "USD",
		URL:       fmt.Sprintf("https://example.com/products/%s", it.ID),
		Image:     image,
		AltText:   it.Title,
		Available: true,
		Tags:      tags,
	}
}
