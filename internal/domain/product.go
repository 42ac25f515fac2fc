package domain

// ProductRecord is the canonical product shape every catalog backend maps
// into. Records are constructed fresh per retrieval call and never mutated
// afterwards.
type ProductRecord struct {
	// ID is source-qualified ("shopify:..." or "catalog:...") so records
	// from different backends can never collide.
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Brand     string   `json:"brand"`
	Price     float64  `json:"price"`
	Currency  string   `json:"currency"`
	URL       string   `json:"url"`
	Image     string   `json:"image"`
	AltText   string   `json:"altText"`
	Available bool     `json:"available"`
	Tags      []string `json:"tags"`
}

// RankedResult is a ProductRecord augmented with a relevance score. Only the
// ranker produces these. ScoreBreakdown lists, in evaluation order, the
// factors that contributed positively; it is non-empty whenever Score
// exceeds the ranking baseline.
type RankedResult struct {
	ProductRecord
	Score          float64  `json:"score"`
	ScoreBreakdown []string `json:"scoreBreakdown"`
	Blurb          string   `json:"blurb,omitempty"`
}
