package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tailord/backend/config"
	httpDelivery "github.com/tailord/backend/internal/delivery/http"
	"github.com/tailord/backend/internal/domain"
	"github.com/tailord/backend/internal/infrastructure/cache"
	"github.com/tailord/backend/internal/infrastructure/catalog"
	"github.com/tailord/backend/internal/infrastructure/shopify"
	"github.com/tailord/backend/internal/infrastructure/summary"
	"github.com/tailord/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Tailord Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	debug := cfg.Server.Environment == "development"

	// Always-available fallback catalog
	localCatalog, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load fallback catalog: %v", err)
	}
	localCatalog.SetDebug(debug)
	log.Printf("Fallback catalog loaded: %d items", localCatalog.Size())

	// Optional remote storefront backend
	var primary domain.CatalogSource
	if cfg.Shopify.Enabled() {
		client := shopify.NewClient(cfg.Shopify.Domain, cfg.Shopify.StorefrontToken, cfg.Shopify.Timeout)
		client.SetDebug(debug)
		primary = client
		log.Printf("Shopify storefront configured: %s", client.EndpointURL())
	} else {
		log.Printf("Shopify storefront not configured - running on bundled catalog only")
	}

	// Summary stage: deterministic path always, generative path when keyed
	cheapSummary := summary.NewSimple()
	var expensiveSummary domain.Summarizer
	if cfg.Summary.OpenAIAPIKey != "" {
		expensiveSummary = summary.NewOpenAI(cfg.Summary.OpenAIAPIKey, cfg.Summary.Model, cfg.Summary.Timeout)
		log.Printf("Generative summary enabled (model: %s)", cfg.Summary.Model)
	} else {
		log.Printf("Generative summary disabled - deterministic summaries only")
	}

	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Wire the pipeline
	searchService := usecase.NewSearchService(
		primary,
		localCatalog,
		cheapSummary,
		expensiveSummary,
		memoryCache,
		usecase.SearchServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			RetrievalTimeout:   cfg.Search.RetrievalTimeout,
			EnableDebugLogging: debug,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadCatalog picks the external dataset when a path is configured and the
// bundled one otherwise.
func loadCatalog(path string) (*catalog.Local, error) {
	if path == "" {
		return catalog.NewLocal()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
	}
	return catalog.NewLocalFromData(data)
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
