package domain

// SearchOptions tunes a single search call.
type SearchOptions struct {
	// Limit bounds how many records are requested; clamped to a hard
	// ceiling by the service regardless of the value passed here.
	Limit int `json:"limit,omitempty"`
	// Role tags the search within an outfit composition ("bottom",
	// "top", "shoes", "outerwear", "accessory").
	Role string `json:"role,omitempty"`
	// Budget, when positive, is treated as an additional max price bound.
	Budget float64 `json:"budget,omitempty"`
	// UseExpensiveSummary requests the generative summary path. The
	// deterministic path is always the fallback.
	UseExpensiveSummary bool `json:"useExpensiveSummary,omitempty"`
}

// SearchMetadata describes how a search response was produced.
type SearchMetadata struct {
	Query             string `json:"query"`
	TotalResults      int    `json:"totalResults"`
	ProcessingTimeMs  int64  `json:"processingTimeMs"`
	UsedExpensivePath bool   `json:"usedExpensivePath"`
	// ResultSource is the Name() of the backend that answered, or
	// "none" when every backend came back empty (degraded service).
	ResultSource string `json:"resultSource"`
}

// SearchResponse is the full pipeline output for one query.
type SearchResponse struct {
	Results  []RankedResult `json:"results"`
	Summary  string         `json:"summary"`
	Facets   FacetSet       `json:"facets"`
	Metadata SearchMetadata `json:"metadata"`
}

// OutfitRequest asks for one coordinated look built from per-role searches.
type OutfitRequest struct {
	Query string       `json:"query"`
	Slots []OutfitSlot `json:"slots"`
}

// OutfitSlot is one garment role inside an outfit, with its own sub-query
// and optional per-slot budget.
type OutfitSlot struct {
	Role   string  `json:"role"`
	Query  string  `json:"query,omitempty"`
	Budget float64 `json:"budget,omitempty"`
}

// OutfitResponse is the merged fan-in of all slot searches.
type OutfitResponse struct {
	Items   []RankedResult `json:"items"`
	Summary string         `json:"summary"`
}
