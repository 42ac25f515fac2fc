package domain

// Garment is the closed set of garment categories the extractor recognizes.
type Garment string

const (
	GarmentJeans   Garment = "jeans"
	GarmentPants   Garment = "pants"
	GarmentShorts  Garment = "shorts"
	GarmentJacket  Garment = "jacket"
	GarmentTee     Garment = "tee"
	GarmentDress   Garment = "dress"
	GarmentSkirt   Garment = "skirt"
	GarmentSweater Garment = "sweater"
	GarmentHoodie  Garment = "hoodie"
	GarmentVest    Garment = "vest"
)

// Era is the closed set of decade/era labels.
type Era string

const (
	Era70s Era = "70s"
	Era80s Era = "80s"
	Era90s Era = "90s"
	EraY2K Era = "Y2K"
	// Era2000s exists for callers that build FacetSets programmatically
	// against decade-tagged catalogs; the extractor folds "2000s" wording
	// into Y2K.
	Era2000s Era = "2000s"
	Era2010s Era = "2010s"
)

// Fit is the closed set of fit/cut labels.
type Fit string

const (
	FitBaggy     Fit = "baggy"
	FitSlim      Fit = "slim"
	FitFlare     Fit = "flare"
	FitBootcut   Fit = "bootcut"
	FitLowRise   Fit = "low-rise"
	FitHighRise  Fit = "high-rise"
	FitOversized Fit = "oversized"
	FitFitted    Fit = "fitted"
)

// PriceRange holds optional price bounds in whole dollars. Both bounds are
// independent; a query may set either, both, or neither. No min <= max
// relationship is enforced.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// FacetSet is the structured shopping intent extracted from a free-text
// query. The zero value means "nothing extracted" and is valid everywhere
// a FacetSet is accepted.
type FacetSet struct {
	Garment Garment     `json:"garment,omitempty"`
	Era     Era         `json:"era,omitempty"`
	Fit     Fit         `json:"fit,omitempty"`
	Colors  []string    `json:"colors,omitempty"`
	Sizes   []string    `json:"sizes,omitempty"`
	Price   *PriceRange `json:"price,omitempty"`
	Brands  []string    `json:"brands,omitempty"`
	Styles  []string    `json:"styles,omitempty"`
}

// IsEmpty reports whether no facet was extracted at all.
func (f FacetSet) IsEmpty() bool {
	return f.Garment == "" && f.Era == "" && f.Fit == "" &&
		len(f.Colors) == 0 && len(f.Sizes) == 0 && f.Price == nil &&
		len(f.Brands) == 0 && len(f.Styles) == 0
}

// QueryPlan is a backend-targeted retrieval expression built from a FacetSet
// plus the raw query text. One plan maps to exactly one retrieval call and
// is never persisted.
type QueryPlan struct {
	// Query is the storefront search expression (Shopify query syntax).
	Query string `json:"query"`
	// Facets are carried alongside for backends that filter in memory
	// rather than parsing the query expression.
	Facets FacetSet `json:"facets"`
	// RawText is the original user query.
	RawText string `json:"rawText"`
}
