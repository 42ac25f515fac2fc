package usecase

import (
	"fmt"
	"strings"

	"github.com/tailord/backend/internal/domain"
)

// garmentClauses maps each garment to its OR-of-synonyms storefront clause.
// Title, product_type and tag are all tried because merchants are not
// consistent about where they put the category.
var garmentClauses = map[domain.Garment]string{
	domain.GarmentJeans:   `(title:jeans OR product_type:Jeans OR tag:jeans)`,
	domain.GarmentPants:   `(title:pants OR product_type:Pants OR tag:pants)`,
	domain.GarmentShorts:  `(title:shorts OR product_type:Shorts OR tag:shorts)`,
	domain.GarmentJacket:  `(title:jacket OR product_type:Jackets OR tag:jacket)`,
	domain.GarmentTee:     `(title:tee OR title:"t-shirt" OR product_type:"T-Shirts" OR tag:tee)`,
	domain.GarmentDress:   `(title:dress OR product_type:Dresses OR tag:dress)`,
	domain.GarmentSkirt:   `(title:skirt OR product_type:Skirts OR tag:skirt)`,
	domain.GarmentSweater: `(title:sweater OR product_type:Sweaters OR tag:sweater)`,
	domain.GarmentHoodie:  `(title:hoodie OR product_type:Hoodies OR tag:hoodie)`,
	domain.GarmentVest:    `(title:vest OR product_type:Vests OR tag:vest)`,
}

var fitClauses = map[domain.Fit]string{
	domain.FitBaggy:     `(title:baggy OR tag:baggy OR tag:loose)`,
	domain.FitSlim:      `(title:slim OR tag:slim OR tag:fitted)`,
	domain.FitFlare:     `(title:flare OR tag:flare)`,
	domain.FitBootcut:   `(title:bootcut OR tag:bootcut)`,
	domain.FitLowRise:   `(title:"low rise" OR tag:"low-rise")`,
	domain.FitHighRise:  `(title:"high rise" OR tag:"high-rise")`,
	domain.FitOversized: `(title:oversized OR tag:oversized)`,
	domain.FitFitted:    `(title:fitted OR tag:fitted)`,
}

// BuildQuery translates a FacetSet plus the raw query text into a Shopify
// storefront search expression. Clauses for present facets are ANDed
// together; the quoted raw text is then ORed against that conjunction so a
// literal match is never excluded by over- or under-extraction. An
// availability filter is always appended last.
//
// Deterministic: the same facets and raw text always produce the same plan.
func BuildQuery(facets domain.FacetSet, rawText string) domain.QueryPlan {
	var parts []string

	if clause, ok := garmentClauses[facets.Garment]; ok {
		parts = append(parts, clause)
	}

	// Vintage merchants tag items by decade.
	if facets.Era != "" {
		parts = append(parts, fmt.Sprintf(`tag:%s`, quoteToken(string(facets.Era))))
	}

	if clause, ok := fitClauses[facets.Fit]; ok {
		parts = append(parts, clause)
	}

	if facets.Price != nil {
		if facets.Price.Max != nil {
			parts = append(parts, fmt.Sprintf(`price:<%g`, *facets.Price.Max))
		}
		if facets.Price.Min != nil {
			parts = append(parts, fmt.Sprintf(`price:>%g`, *facets.Price.Min))
		}
	}

	if len(facets.Brands) > 0 {
		clauses := make([]string, 0, len(facets.Brands))
		for _, brand := range facets.Brands {
			clauses = append(clauses, fmt.Sprintf(`vendor:%s OR tag:%s`, quoteToken(brand), quoteToken(brand)))
		}
		parts = append(parts, "("+strings.Join(clauses, " OR ")+")")
	}

	if len(facets.Styles) > 0 {
		clauses := make([]string, 0, len(facets.Styles))
		for _, style := range facets.Styles {
			clauses = append(clauses, fmt.Sprintf(`tag:%s`, quoteToken(style)))
		}
		parts = append(parts, "("+strings.Join(clauses, " OR ")+")")
	}

	if len(facets.Colors) > 0 {
		clauses := make([]string, 0, len(facets.Colors))
		for _, color := range facets.Colors {
			clauses = append(clauses, fmt.Sprintf(`tag:%s`, quoteToken(color)))
		}
		parts = append(parts, "("+strings.Join(clauses, " OR ")+")")
	}

	// Raw-text fallback: OR the literal phrase against the structured
	// conjunction so the exact query can always still hit.
	structured := strings.Join(parts, " AND ")
	fallback := quoteToken(rawText)

	// AND binds tighter than OR in the storefront grammar, so the
	// disjunction is parenthesized to keep the appended availability
	// filter scoped over both branches.
	var query string
	switch {
	case structured == "" && strings.TrimSpace(rawText) == "":
		query = ""
	case structured == "":
		query = fallback
	case strings.TrimSpace(rawText) == "":
		query = structured
	default:
		query = fmt.Sprintf("((%s) OR %s)", structured, fallback)
	}

	// In-stock preference, always the last clause.
	if query == "" {
		query = `-tag:"sold out"`
	} else {
		query += ` AND -tag:"sold out"`
	}

	return domain.QueryPlan{
		Query:   query,
		Facets:  facets,
		RawText: rawText,
	}
}

// quoteToken wraps a free-text token in double quotes, escaping characters
// that would otherwise break out of the storefront query syntax.
func quoteToken(token string) string {
	escaped := strings.ReplaceAll(token, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
