package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/tailord/backend/internal/domain"
	"golang.org/x/time/rate"
)

// storefrontAPIVersion pins the Storefront GraphQL schema we were built
// against.
const storefrontAPIVersion = "2024-01"

const searchQuery = `
query Search($q: String!, $first: Int!) {
  products(first: $first, query: $q) {
    edges {
      node {
        id
        handle
        title
        vendor
        tags
        availableForSale
        featuredImage {
          url
          altText
        }
        priceRange {
          minVariantPrice {
            amount
            currencyCode
          }
        }
      }
    }
  }
}`

// Client talks to the Shopify Storefront GraphQL API for one shop.
type Client struct {
	httpClient  *http.Client
	shopDomain  string
	accessToken string
	endpoint    string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a Storefront API client for the given shop domain
// (e.g. "roguegarms.com") and storefront access token.
func NewClient(shopDomain, accessToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// Storefront API allows roughly 2 requests/sec per client without
	// throttling; a small burst covers outfit fan-out.
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		shopDomain:  shopDomain,
		accessToken: accessToken,
		endpoint:    fmt.Sprintf("https://%s/api/%s/graphql.json", shopDomain, storefrontAPIVersion),
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request/response logging.
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// Name identifies this backend in logs and response metadata.
func (c *Client) Name() string {
	return "shopify"
}

// Search runs the plan's query string against the Storefront API and maps
// the response into canonical product records. Backend or transport errors
// come back as ErrBackendFailure; the caller decides how to degrade.
func (c *Client) Search(ctx context.Context, plan domain.QueryPlan, limit int) ([]domain.ProductRecord, error) {
	if c.debug {
		log.Printf("[SHOPIFY] Search query=%q limit=%d", plan.Query, limit)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	payload, err := json.Marshal(graphQLRequest{
		Query: searchQuery,
		Variables: map[string]interface{}{
			"q":     plan.Query,
			"first": limit,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.accessToken)
	req.Header.Set("User-Agent", "Tailord/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrBackendFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		if c.debug {
			log.Printf("[SHOPIFY] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrBackendFailure, resp.StatusCode)
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrBackendFailure, err)
	}

	if len(gqlResp.Errors) > 0 {
		if c.debug {
			log.Printf("[SHOPIFY] GraphQL errors: %v", gqlResp.Errors)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrBackendFailure, gqlResp.Errors[0].Message)
	}

	records := MapEdges(gqlResp.Data.Products.Edges, c.shopDomain)
	if c.debug {
		log.Printf("[SHOPIFY] Found %d products for query %q", len(records), plan.Query)
	}

	return records, nil
}

// EndpointURL returns the GraphQL endpoint this client posts to. Exposed for
// wiring verification at startup.
func (c *Client) EndpointURL() string {
	return c.endpoint
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLResponse struct {
	Data struct {
		Products struct {
			Edges []productEdge `json:"edges"`
		} `json:"products"`
	} `json:"data"`
	Errors []graphQLError `json:"errors,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type productEdge struct {
	Node productNode `json:"node"`
}

type productNode struct {
	ID               string   `json:"id"`
	Handle           string   `json:"handle"`
	Title            string   `json:"title"`
	Vendor           string   `json:"vendor"`
	Tags             []string `json:"tags"`
	AvailableForSale bool     `json:"availableForSale"`
	FeaturedImage    *struct {
		URL     string `json:"url"`
		AltText string `json:"altText"`
	} `json:"featuredImage"`
	PriceRange struct {
		MinVariantPrice struct {
			Amount       string `json:"amount"`
			CurrencyCode string `json:"currencyCode"`
		} `json:"minVariantPrice"`
	} `json:"priceRange"`
}
