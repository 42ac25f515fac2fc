package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tailord/backend/internal/domain"
)

// garmentRule pairs a pattern with the garment it resolves to. Rules are
// tried top to bottom and the first hit wins, so ambiguous inputs resolve
// the same way every time: denim/jean is checked before the generic pant
// pattern, which is why "denim pants" extracts as jeans.
type garmentRule struct {
	pattern *regexp.Regexp
	garment domain.Garment
}

var garmentRules = []garmentRule{
	{regexp.MustCompile(`jean|denim`), domain.GarmentJeans},
	{regexp.MustCompile(`cargo|pant`), domain.GarmentPants},
	{regexp.MustCompile(`short`), domain.GarmentShorts},
	{regexp.MustCompile(`jacket|blazer`), domain.GarmentJacket},
	{regexp.MustCompile(`tee|t-shirt|shirt`), domain.GarmentTee},
	{regexp.MustCompile(`dress`), domain.GarmentDress},
	{regexp.MustCompile(`skirt`), domain.GarmentSkirt},
	{regexp.MustCompile(`sweater|pullover`), domain.GarmentSweater},
	{regexp.MustCompile(`hoodie`), domain.GarmentHoodie},
	{regexp.MustCompile(`vest`), domain.GarmentVest},
}

type eraRule struct {
	pattern *regexp.Regexp
	era     domain.Era
}

// Era rules are ordered so that Y2K absorbs "2000s" before the decade
// patterns run, matching how shoppers use the terms.
var eraRules = []eraRule{
	{regexp.MustCompile(`y2k|2000s?`), domain.EraY2K},
	{regexp.MustCompile(`90s|199\d`), domain.Era90s},
	{regexp.MustCompile(`80s|198\d`), domain.Era80s},
	{regexp.MustCompile(`70s|197\d`), domain.Era70s},
	{regexp.MustCompile(`2010s`), domain.Era2010s},
}

type fitRule struct {
	pattern *regexp.Regexp
	fit     domain.Fit
}

// Fit rules fold the looser synonyms into their canonical labels: loose and
// oversized read as baggy, fitted and tight as slim.
var fitRules = []fitRule{
	{regexp.MustCompile(`baggy|loose|oversized`), domain.FitBaggy},
	{regexp.MustCompile(`slim|fitted|tight`), domain.FitSlim},
	{regexp.MustCompile(`flare`), domain.FitFlare},
	{regexp.MustCompile(`bootcut`), domain.FitBootcut},
	{regexp.MustCompile(`low.?rise`), domain.FitLowRise},
	{regexp.MustCompile(`high.?rise`), domain.FitHighRise},
}

// colorLexicon members are matched as plain substrings, all hits collected.
var colorLexicon = []string{
	"black", "white", "blue", "red", "green", "pink", "purple", "yellow",
	"orange", "brown", "gray", "grey", "navy", "olive", "cream", "beige",
}

// sizeLexicon members are matched on word boundaries; a bare substring test
// on single-letter sizes like "s" or "m" would fire on almost any query.
var sizeLexicon = []string{"xs", "s", "m", "l", "xl", "xxl", "small", "medium", "large"}

var sizePatterns = compileWordPatterns(sizeLexicon)

// brandLexicon is the fixed set of vintage labels worth recognizing.
var brandLexicon = []string{
	"juicy couture", "fubu", "akademiks", "diesel", "carhartt",
	"affliction", "tripp nyc", "xoxo",
}

// styleLexicon holds aesthetic/subculture keywords.
var styleLexicon = []string{
	"vintage", "punk", "gothic", "grunge", "hip-hop", "metal", "racing",
	"tribal", "floral", "lace", "mesh", "velour",
}

// Price bound patterns, tried in order; the first hit per bound wins. Max
// and min are parsed independently, so both may be set at once. No min <=
// max check is applied.
var (
	maxPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`under ?\$(\d+)`),
		regexp.MustCompile(`\$(\d+)\s*max`),
		regexp.MustCompile(`under ?(\d+)`),
	}
	minPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`over ?\$(\d+)`),
		regexp.MustCompile(`\$(\d+)\s*min`),
		regexp.MustCompile(`over ?(\d+)`),
	}
)

func compileWordPatterns(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return patterns
}

// ExtractFacets parses free-text shopping intent into a structured FacetSet.
// It is a pure function: same input, same output, no I/O. Unmatched
// categories are simply left absent; the empty string yields the zero-value
// FacetSet.
func ExtractFacets(text string) domain.FacetSet {
	s := strings.ToLower(text)
	var f domain.FacetSet

	for _, rule := range garmentRules {
		if rule.pattern.MatchString(s) {
			f.Garment = rule.garment
			break
		}
	}

	for _, rule := range eraRules {
		if rule.pattern.MatchString(s) {
			f.Era = rule.era
			break
		}
	}

	for _, rule := range fitRules {
		if rule.pattern.MatchString(s) {
			f.Fit = rule.fit
			break
		}
	}

	for _, color := range colorLexicon {
		if strings.Contains(s, color) {
			f.Colors = append(f.Colors, color)
		}
	}

	for i, pattern := range sizePatterns {
		if pattern.MatchString(s) {
			f.Sizes = append(f.Sizes, sizeLexicon[i])
		}
	}

	f.Price = extractPrice(s)

	for _, brand := range brandLexicon {
		if strings.Contains(s, brand) {
			f.Brands = append(f.Brands, brand)
		}
	}

	for _, style := range styleLexicon {
		if strings.Contains(s, style) {
			f.Styles = append(f.Styles, style)
		}
	}

	return f
}

// extractPrice pulls optional min/max bounds out of the lowercased query.
// Returns nil when neither bound is present.
func extractPrice(s string) *domain.PriceRange {
	var price *domain.PriceRange

	for _, pattern := range maxPricePatterns {
		if m := pattern.FindStringSubmatch(s); m != nil {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				break
			}
			price = &domain.PriceRange{Max: &v}
			break
		}
	}

	for _, pattern := range minPricePatterns {
		if m := pattern.FindStringSubmatch(s); m != nil {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				break
			}
			if price == nil {
				price = &domain.PriceRange{}
			}
			price.Min = &v
			break
		}
	}

	return price
}
