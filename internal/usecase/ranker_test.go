package usecase

import (
	"reflect"
	"testing"

	"github.com/tailord/backend/internal/domain"
)

func record(id, title, brand string, price float64, available bool, tags ...string) domain.ProductRecord {
	return domain.ProductRecord{
		ID:        id,
		Title:     title,
		Brand:     brand,
		Price:     price,
		Currency:  "USD",
		Available: available,
		Tags:      tags,
	}
}

func TestDeduplicate(t *testing.T) {
	t.Run("removes exact id duplicates keeping first", func(t *testing.T) {
		records := []domain.ProductRecord{
			record("shopify:1", "Black Jeans", "Diesel", 80, true),
			record("shopify:2", "Blue Jeans", "Diesel", 90, true),
			record("shopify:1", "Black Jeans Updated", "Diesel", 85, true),
		}

		got := Deduplicate(records)
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].Title != "Black Jeans" {
			t.Errorf("kept %q, want first occurrence", got[0].Title)
		}
	})

	t.Run("collapses near duplicates across sources", func(t *testing.T) {
		records := []domain.ProductRecord{
			record("shopify:1", "Black Baggy Jeans", "Rogue Garms", 80, true),
			record("catalog:rg-001", "  black  baggy JEANS ", "rogue garms", 80, true),
		}

		got := Deduplicate(records)
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		if got[0].ID != "shopify:1" {
			t.Errorf("kept %q, want the first-seen instance", got[0].ID)
		}
	})

	t.Run("different price is not a near duplicate", func(t *testing.T) {
		records := []domain.ProductRecord{
			record("shopify:1", "Black Jeans", "Diesel", 80, true),
			record("catalog:2", "Black Jeans", "Diesel", 150, true),
		}

		if got := Deduplicate(records); len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("idempotent on its own output", func(t *testing.T) {
		records := []domain.ProductRecord{
			record("a", "One", "B1", 10, true),
			record("a", "One", "B1", 10, true),
			record("b", "Two", "B2", 20, true),
			record("c", "two", "b2", 20, true),
		}

		once := Deduplicate(records)
		twice := Deduplicate(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("second pass changed output: %v vs %v", once, twice)
		}
	})
}

func TestRank_ScoringFactors(t *testing.T) {
	ranker := NewRanker(RankerConfig{})

	t.Run("breakdown non-empty whenever score exceeds baseline", func(t *testing.T) {
		facets := ExtractFacets("black jeans under $100")
		records := []domain.ProductRecord{
			record("1", "Black Baggy Jeans", "Rogue Garms", 80, true, "jeans", "black"),
		}

		got := ranker.Rank(records, facets, "black jeans under $100")
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		if got[0].Score <= scoreBaseline {
			t.Fatalf("Score = %v, want above baseline", got[0].Score)
		}
		if len(got[0].ScoreBreakdown) == 0 {
			t.Error("ScoreBreakdown is empty for an above-baseline score")
		}
	})

	t.Run("non-matching record stays at baseline with empty breakdown", func(t *testing.T) {
		facets := ExtractFacets("black jeans")
		records := []domain.ProductRecord{
			record("1", "White Floral Dress", "XOXO", 70, true, "dress"),
		}

		got := ranker.Rank(records, facets, "black jeans")
		if got[0].Score != scoreBaseline {
			t.Errorf("Score = %v, want baseline %v", got[0].Score, scoreBaseline)
		}
		if len(got[0].ScoreBreakdown) != 0 {
			t.Errorf("ScoreBreakdown = %v, want empty", got[0].ScoreBreakdown)
		}
	})

	t.Run("price bound and color bonuses recorded by name", func(t *testing.T) {
		facets := ExtractFacets("black jeans under $100")
		records := []domain.ProductRecord{
			record("cheap", "Black Jeans", "Rogue Garms", 80, true, "jeans", "black"),
			record("pricey", "Black Jeans Deluxe", "Rogue Garms", 150, true, "jeans", "black"),
		}

		got := ranker.Rank(records, facets, "black jeans under $100")
		if got[0].ID != "cheap" {
			t.Fatalf("top result = %q, want the in-budget item", got[0].ID)
		}

		breakdown := got[0].ScoreBreakdown
		if !containsFactor(breakdown, factorPrice) {
			t.Errorf("breakdown %v missing %q", breakdown, factorPrice)
		}
		if !containsFactor(breakdown, factorColor) {
			t.Errorf("breakdown %v missing %q", breakdown, factorColor)
		}
	})

	t.Run("exact phrase in title is the largest single bonus", func(t *testing.T) {
		facets := domain.FacetSet{}
		records := []domain.ProductRecord{
			record("generic", "Assorted Denim", "Rogue Garms", 50, true),
			record("exact", "Vintage Flare Jeans", "Rogue Garms", 50, true),
		}

		got := ranker.Rank(records, facets, "vintage flare jeans")
		if got[0].ID != "exact" {
			t.Fatalf("top result = %q, want exact-phrase match", got[0].ID)
		}
		if !containsFactor(got[0].ScoreBreakdown, factorExactPhrase) {
			t.Errorf("breakdown %v missing %q", got[0].ScoreBreakdown, factorExactPhrase)
		}
		if got[0].Score-got[1].Score != bonusExactPhrase {
			t.Errorf("score gap = %v, want %v", got[0].Score-got[1].Score, bonusExactPhrase)
		}
	})

	t.Run("unavailable item is demoted not excluded", func(t *testing.T) {
		facets := ExtractFacets("black jeans")
		records := []domain.ProductRecord{
			record("gone", "Black Jeans", "Diesel", 80, false, "jeans", "black"),
			record("here", "Black Jeans", "Diesel", 81, true, "jeans", "black"),
		}

		got := ranker.Rank(records, facets, "black jeans")
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2 (soft demotion, not exclusion)", len(got))
		}
		if got[0].ID != "here" {
			t.Errorf("top result = %q, want the available item", got[0].ID)
		}
		if got[0].Score <= got[1].Score {
			t.Errorf("available score %v not strictly above unavailable %v", got[0].Score, got[1].Score)
		}
	})
}

func TestRank_StableOrdering(t *testing.T) {
	ranker := NewRanker(RankerConfig{})
	facets := domain.FacetSet{}

	// All records score identically; retrieval order must survive the sort.
	records := []domain.ProductRecord{
		record("first", "Plain Tee A", "B", 10, true),
		record("second", "Plain Tee B", "B", 11, true),
		record("third", "Plain Tee C", "B", 12, true),
	}

	got := ranker.Rank(records, facets, "no match here")
	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestRank_EndToEndScenario(t *testing.T) {
	// Query "black jeans under $100" against a catalog with one in-budget
	// black denim item, one over-budget black denim item, and one
	// unrelated item.
	ranker := NewRanker(RankerConfig{})
	query := "black jeans under $100"
	facets := ExtractFacets(query)

	records := []domain.ProductRecord{
		record("over", "Black Denim Jeans Premium", "Diesel", 150, true, "jeans", "black"),
		record("in-budget", "Black Denim Jeans", "Diesel", 80, true, "jeans", "black"),
		record("unrelated", "White Summer Dress", "XOXO", 40, true, "dress"),
	}

	got := ranker.Rank(records, facets, query)

	if got[0].ID != "in-budget" {
		t.Fatalf("top result = %q, want in-budget black denim", got[0].ID)
	}
	if !containsFactor(got[0].ScoreBreakdown, factorPrice) {
		t.Errorf("breakdown %v missing price bonus", got[0].ScoreBreakdown)
	}
	if !containsFactor(got[0].ScoreBreakdown, factorColor) {
		t.Errorf("breakdown %v missing color bonus", got[0].ScoreBreakdown)
	}
	if got[len(got)-1].ID != "unrelated" {
		t.Errorf("last result = %q, want the non-matching item", got[len(got)-1].ID)
	}
}

func containsFactor(breakdown []string, factor string) bool {
	for _, f := range breakdown {
		if f == factor {
			return true
		}
	}
	return false
}
