package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/tailord/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Hard ceiling on records requested from any backend, regardless of what the
// caller asked for. Bounds backend cost and ranking latency.
const maxRetrievalLimit = 50

const defaultRetrievalLimit = 20

// Number of top results that get generative blurbs on the expensive path.
const expensiveBlurbCount = 10

var cacheKeyRegex = regexp.MustCompile(`[^a-z0-9\s]`)
var cacheKeySpaces = regexp.MustCompile(`\s+`)

// roleDefaultQueries supplies a sub-query for outfit slots that arrive
// without one.
var roleDefaultQueries = map[string]string{
	"bottom":    "jeans",
	"top":       "shirt",
	"shoes":     "sneakers",
	"outerwear": "jacket",
	"accessory": "bag",
}

// roleGarments biases retrieval for searches made on behalf of an outfit
// role when the query itself does not name a garment. Roles without a
// garment category (shoes, accessory) carry no bias.
var roleGarments = map[string]domain.Garment{
	"bottom":    domain.GarmentJeans,
	"top":       domain.GarmentTee,
	"outerwear": domain.GarmentJacket,
}

// SearchServiceConfig holds configuration for the search service.
type SearchServiceConfig struct {
	CacheTTL           time.Duration
	RetrievalTimeout   time.Duration
	EnableDebugLogging bool
}

// SearchService runs the full pipeline for one query: facet extraction,
// query building, retrieval with backend fallback, ranking, and summary.
type SearchService struct {
	primary          domain.CatalogSource
	fallback         domain.CatalogSource
	cheapSummary     domain.Summarizer
	expensiveSummary domain.Summarizer
	cache            domain.CacheRepository
	ranker           *Ranker
	cacheTTL         time.Duration
	retrievalTimeout time.Duration
	debug            bool
}

// NewSearchService wires the pipeline. primary may be nil when no remote
// storefront is configured; expensiveSummary may be nil when no generative
// path is available. fallback and cheapSummary must always be present -
// they are what makes the pipeline degrade instead of fail.
func NewSearchService(
	primary domain.CatalogSource,
	fallback domain.CatalogSource,
	cheapSummary domain.Summarizer,
	expensiveSummary domain.Summarizer,
	cacheRepo domain.CacheRepository,
	config SearchServiceConfig,
) *SearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}
	retrievalTimeout := config.RetrievalTimeout
	if retrievalTimeout == 0 {
		retrievalTimeout = 8 * time.Second
	}

	return &SearchService{
		primary:          primary,
		fallback:         fallback,
		cheapSummary:     cheapSummary,
		expensiveSummary: expensiveSummary,
		cache:            cacheRepo,
		ranker:           NewRanker(RankerConfig{EnableDebugLogging: config.EnableDebugLogging}),
		cacheTTL:         cacheTTL,
		retrievalTimeout: retrievalTimeout,
		debug:            config.EnableDebugLogging,
	}
}

// Search runs the pipeline for one query.
// Flow: validate -> check cache -> extract facets -> build plan -> retrieve
// (primary, then fallback on empty) -> dedupe+rank -> summarize -> cache.
// A well-formed non-empty query virtually never returns an error: backend
// trouble degrades to an empty result list with ResultSource "none".
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	started := time.Now()

	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidQuery
	}

	limit := clampLimit(opts.Limit)

	cacheKey := s.searchCacheKey(query, limit, opts)
	if s.cache != nil {
		if value, err := s.cache.Get(ctx, cacheKey); err == nil {
			if cached, ok := value.(*domain.SearchResponse); ok {
				if s.debug {
					log.Printf("[SEARCH] Cache hit for %q", query)
				}
				return cached, nil
			}
		}
	}

	facets := ExtractFacets(query)
	facets = applyRole(facets, opts.Role)
	facets = applyBudget(facets, opts.Budget)
	plan := BuildQuery(facets, query)

	if s.debug {
		log.Printf("[SEARCH] %q -> plan %q", query, plan.Query)
	}

	records, source := s.retrieve(ctx, plan, limit)
	ranked := s.ranker.Rank(records, facets, query)

	summaryText, blurbs, usedExpensive := s.summarize(ctx, ranked, query, opts.UseExpensiveSummary)
	ranked = attachBlurbs(ranked, blurbs)

	response := &domain.SearchResponse{
		Results: ranked,
		Summary: summaryText,
		Facets:  facets,
		Metadata: domain.SearchMetadata{
			Query:             query,
			TotalResults:      len(ranked),
			ProcessingTimeMs:  time.Since(started).Milliseconds(),
			UsedExpensivePath: usedExpensive,
			ResultSource:      source,
		},
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, response, s.cacheTTL); err != nil && s.debug {
			log.Printf("[SEARCH] Cache write failed for %q: %v", query, err)
		}
	}

	return response, nil
}

// retrieve tries the primary backend first and falls back when it yields
// nothing. Zero results trigger the fallback whether they came from a clean
// empty answer or from a mapped error: both mean the primary gave us
// nothing to rank. Every failure degrades to an empty list; retrieval never
// propagates an error.
func (s *SearchService) retrieve(ctx context.Context, plan domain.QueryPlan, limit int) ([]domain.ProductRecord, string) {
	var records []domain.ProductRecord

	if s.primary != nil {
		records = s.searchBackend(ctx, s.primary, plan, limit)
		if len(records) > 0 {
			return records, s.primary.Name()
		}
	}

	if s.fallback != nil {
		records = s.searchBackend(ctx, s.fallback, plan, limit)
		if len(records) > 0 {
			return records, s.fallback.Name()
		}
	}

	return nil, "none"
}

// searchBackend runs a single bounded retrieval attempt against one backend.
func (s *SearchService) searchBackend(ctx context.Context, source domain.CatalogSource, plan domain.QueryPlan, limit int) []domain.ProductRecord {
	ctx, cancel := context.WithTimeout(ctx, s.retrievalTimeout)
	defer cancel()

	records, err := source.Search(ctx, plan, limit)
	if err != nil {
		log.Printf("[SEARCH] Backend %s failed: %v", source.Name(), err)
		return nil
	}
	return records
}

// summarize picks the summary path. The expensive path is attempted only on
// request and falls back to the deterministic path on any failure; summary
// trouble is never surfaced to the caller.
func (s *SearchService) summarize(ctx context.Context, results []domain.RankedResult, query string, useExpensive bool) (string, map[string]string, bool) {
	if useExpensive && s.expensiveSummary != nil {
		text, err := s.expensiveSummary.Summarize(ctx, results, query)
		if err == nil {
			blurbTargets := results
			if len(blurbTargets) > expensiveBlurbCount {
				blurbTargets = blurbTargets[:expensiveBlurbCount]
			}
			blurbs, blurbErr := s.expensiveSummary.ItemBlurbs(ctx, blurbTargets, query)
			if blurbErr != nil {
				log.Printf("[SEARCH] Generative blurbs failed, using plain blurbs: %v", blurbErr)
				blurbs, _ = s.cheapSummary.ItemBlurbs(ctx, results, query)
			}
			return text, blurbs, true
		}
		log.Printf("[SEARCH] Generative summary failed, falling back: %v", err)
	}

	text, _ := s.cheapSummary.Summarize(ctx, results, query)
	blurbs, _ := s.cheapSummary.ItemBlurbs(ctx, results, query)
	return text, blurbs, false
}

// ComposeOutfit fans out one sub-search per slot, concurrently, and merges
// the results after every slot has finished. A failed or timed-out slot
// contributes an empty list instead of failing the batch.
func (s *SearchService) ComposeOutfit(ctx context.Context, req domain.OutfitRequest) (*domain.OutfitResponse, error) {
	if strings.TrimSpace(req.Query) == "" && len(req.Slots) == 0 {
		return nil, domain.ErrInvalidQuery
	}

	slots := req.Slots
	if len(slots) == 0 {
		slots = defaultOutfitSlots()
	}

	perSlot := make([][]domain.RankedResult, len(slots))

	g, gctx := errgroup.WithContext(ctx)
	for i, slot := range slots {
		g.Go(func() error {
			results, err := s.searchSlot(gctx, req.Query, slot)
			if err != nil {
				// Partial degradation: log and contribute nothing.
				log.Printf("[OUTFIT] Slot %q failed: %v", slot.Role, err)
				return nil
			}
			perSlot[i] = results
			return nil
		})
	}
	// Goroutines never return errors; Wait is for completion only.
	_ = g.Wait()

	// Merge in slot order, dropping cross-slot duplicates.
	seen := make(map[string]bool)
	var items []domain.RankedResult
	for _, results := range perSlot {
		for _, result := range results {
			if seen[result.ID] {
				continue
			}
			seen[result.ID] = true
			items = append(items, result)
		}
	}

	summaryText, _ := s.cheapSummary.Summarize(ctx, items, req.Query)

	return &domain.OutfitResponse{
		Items:   items,
		Summary: summaryText,
	}, nil
}

// searchSlot runs the core pipeline for one outfit slot without the summary
// stage: extraction, plan, retrieval with fallback, ranking.
func (s *SearchService) searchSlot(ctx context.Context, outfitQuery string, slot domain.OutfitSlot) ([]domain.RankedResult, error) {
	query := strings.TrimSpace(slot.Query)
	if query == "" {
		query = roleDefaultQueries[slot.Role]
	}
	if query == "" {
		return nil, fmt.Errorf("%w: no query for role %q", domain.ErrInvalidQuery, slot.Role)
	}

	facets := ExtractFacets(query)
	facets = applyBudget(facets, slot.Budget)
	plan := BuildQuery(facets, query)

	records, _ := s.retrieve(ctx, plan, 3)
	return s.ranker.Rank(records, facets, query), nil
}

func defaultOutfitSlots() []domain.OutfitSlot {
	return []domain.OutfitSlot{
		{Role: "bottom"},
		{Role: "top"},
		{Role: "outerwear"},
	}
}

// applyRole fills in the role's garment when extraction found none. A
// garment named in the query always wins over the role bias.
func applyRole(facets domain.FacetSet, role string) domain.FacetSet {
	if facets.Garment != "" {
		return facets
	}
	if garment, ok := roleGarments[role]; ok {
		facets.Garment = garment
	}
	return facets
}

// applyBudget folds an explicit budget option into the price facet as an
// upper bound, tightening any bound the extractor already found.
func applyBudget(facets domain.FacetSet, budget float64) domain.FacetSet {
	if budget <= 0 {
		return facets
	}
	if facets.Price == nil {
		facets.Price = &domain.PriceRange{Max: &budget}
		return facets
	}
	bounds := *facets.Price
	if bounds.Max == nil || budget < *bounds.Max {
		bounds.Max = &budget
	}
	facets.Price = &bounds
	return facets
}

// attachBlurbs copies blurbs onto the ranked results, leaving items without
// one untouched.
func attachBlurbs(results []domain.RankedResult, blurbs map[string]string) []domain.RankedResult {
	if len(blurbs) == 0 {
		return results
	}
	for i := range results {
		if blurb, ok := blurbs[results[i].ID]; ok {
			results[i].Blurb = blurb
		}
	}
	return results
}

// clampLimit applies the default and the hard ceiling.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRetrievalLimit
	}
	if limit > maxRetrievalLimit {
		return maxRetrievalLimit
	}
	return limit
}

// searchCacheKey builds a normalized cache key from the query and options.
func (s *SearchService) searchCacheKey(query string, limit int, opts domain.SearchOptions) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	normalized = cacheKeyRegex.ReplaceAllString(normalized, "")
	normalized = cacheKeySpaces.ReplaceAllString(normalized, " ")
	return fmt.Sprintf("search:%s:%d:%s:%.0f:%v", normalized, limit, opts.Role, opts.Budget, opts.UseExpensiveSummary)
}
