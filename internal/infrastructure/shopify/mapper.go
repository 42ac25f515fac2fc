package shopify

import (
	"fmt"
	"strconv"

	"github.com/tailord/backend/internal/domain"
)

// MapEdges converts Storefront API product edges into canonical product
// records. Missing fields map to empty strings, never nil propagation: a
// product without a featured image gets an empty image URL and falls back
// to its title for alt text.
func MapEdges(edges []productEdge, shopDomain string) []domain.ProductRecord {
	records := make([]domain.ProductRecord, 0, len(edges))
	for _, edge := range edges {
		records = append(records, mapNode(edge.Node, shopDomain))
	}
	return records
}

func mapNode(node productNode, shopDomain string) domain.ProductRecord {
	price, err := strconv.ParseFloat(node.PriceRange.MinVariantPrice.Amount, 64)
	if err != nil {
		price = 0
	}

	image := ""
	altText := node.Title
	if node.FeaturedImage != nil {
		image = node.FeaturedImage.URL
		if node.FeaturedImage.AltText != "" {
			altText = node.FeaturedImage.AltText
		}
	}

	tags := node.Tags
	if tags == nil {
		tags = []string{}
	}

	return domain.ProductRecord{
		// Prefix the Shopify gid so ids can never collide with the
		// local catalog's.
		ID:        "shopify:" + node.ID,
		Title:     node.Title,
		Brand:     node.Vendor,
		Price:     price,
		Currency:  node.PriceRange.MinVariantPrice.CurrencyCode,
		URL:       fmt.Sprintf("https://%s/products/%s", shopDomain, node.Handle),
		Image:     image,
		AltText:   altText,
		Available: node.AvailableForSale,
		Tags:      tags,
	}
}
