package domain

import (
	"context"
	"time"
)

// CatalogSource is the capability every catalog backend implements.
// Implementations receive the full QueryPlan: the remote storefront uses the
// built query string, the local fallback filters on the carried FacetSet.
// Consumers must not depend on which backend answered.
type CatalogSource interface {
	Search(ctx context.Context, plan QueryPlan, limit int) ([]ProductRecord, error)

	// Name identifies the backend in logs and response metadata.
	Name() string
}

// Summarizer produces the human-readable summary for a result set. The
// deterministic implementation must always succeed on well-formed input;
// the generative implementation may fail and callers fall back.
type Summarizer interface {
	Summarize(ctx context.Context, results []RankedResult, query string) (string, error)
	ItemBlurbs(ctx context.Context, results []RankedResult, query string) (map[string]string, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
