package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailord/backend/internal/domain"
)

func mustLocal(t *testing.T) *Local {
	t.Helper()
	local, err := NewLocal()
	require.NoError(t, err)
	return local
}

func planFor(facets domain.FacetSet) domain.QueryPlan {
	return domain.QueryPlan{Facets: facets}
}

func ids(records []domain.ProductRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestNewLocal_LoadsBundledDataset(t *testing.T) {
	local := mustLocal(t)
	assert.Equal(t, "catalog", local.Name())
	assert.Greater(t, local.Size(), 0)
}

func TestLocal_Search_GarmentFilter(t *testing.T) {
	local := mustLocal(t)

	records, err := local.Search(context.Background(), planFor(domain.FacetSet{Garment: domain.GarmentJeans}), 50)
	require.NoError(t, err)

	require.NotEmpty(t, records)
	for _, r := range records {
		assert.Contains(t, []string{"catalog:rg-001", "catalog:rg-002", "catalog:rg-005"}, r.ID)
	}
	assert.Len(t, records, 3)
}

func TestLocal_Search_PriceFilter(t *testing.T) {
	local := mustLocal(t)
	max := 100.0

	records, err := local.Search(context.Background(), planFor(domain.FacetSet{
		Garment: domain.GarmentJeans,
		Price:   &domain.PriceRange{Max: &max},
	}), 50)
	require.NoError(t, err)

	assert.Equal(t, []string{"catalog:rg-001"}, ids(records))
}

func TestLocal_Search_ColorFilter(t *testing.T) {
	local := mustLocal(t)

	records, err := local.Search(context.Background(), planFor(domain.FacetSet{
		Garment: domain.GarmentJeans,
		Colors:  []string{"black"},
	}), 50)
	require.NoError(t, err)

	assert.Equal(t, []string{"catalog:rg-001", "catalog:rg-002"}, ids(records))
}

func TestLocal_Search_BrandFilter(t *testing.T) {
	local := mustLocal(t)

	records, err := local.Search(context.Background(), planFor(domain.FacetSet{
		Brands: []string{"diesel"},
	}), 50)
	require.NoError(t, err)

	assert.Equal(t, []string{"catalog:rg-002"}, ids(records))
}

func TestLocal_Search_EmptyFacetsReturnsEverythingUpToLimit(t *testing.T) {
	local := mustLocal(t)

	records, err := local.Search(context.Background(), planFor(domain.FacetSet{}), 5)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestLocal_Search_NoMatches(t *testing.T) {
	local := mustLocal(t)

	records, err := local.Search(context.Background(), planFor(domain.FacetSet{
		Brands: []string{"nonexistent brand"},
	}), 50)
	require.NoError(t, err, "the local catalog never fails")
	assert.Empty(t, records)
}

func TestLocal_Search_RecordShape(t *testing.T) {
	local, err := NewLocalFromData([]byte(`[
		{"id": "x-1", "title": "Test Jeans", "brand": "B", "price": 10, "category": "jeans", "color": "blue"}
	]`))
	require.NoError(t, err)

	records, err := local.Search(context.Background(), planFor(domain.FacetSet{}), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "catalog:x-1", got.ID)
	assert.Equal(t, "USD", got.Currency)
	assert.True(t, got.Available, "bundled items are always in stock")
	assert.Equal(t, "/placeholder.jpg", got.Image, "missing image gets the placeholder")
	assert.Equal(t, "Test Jeans", got.AltText)
	assert.NotNil(t, got.Tags)
}

func TestNewLocalFromData_InvalidJSON(t *testing.T) {
	_, err := NewLocalFromData([]byte(`{not json`))
	assert.Error(t, err)
}
