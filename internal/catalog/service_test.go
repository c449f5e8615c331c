package catalog

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabukhader/Ajjawi-Website/internal/domain/brand"
	"github.com/rabukhader/Ajjawi-Website/internal/domain/product"
	"github.com/rabukhader/Ajjawi-Website/internal/upstream"
)

// --- Mock implementations ---

type mockFetcher struct {
	brands     []upstream.RawBrand
	products   []upstream.RawProduct
	categories []upstream.RawCategory
	err        error

	lastBrandID string
}

func (m *mockFetcher) Brands(_ context.Context) ([]upstream.RawBrand, error) {
	return m.brands, m.err
}

func (m *mockFetcher) Products(_ context.Context, brandID string) ([]upstream.RawProduct, error) {
	m.lastBrandID = brandID
	if m.err != nil {
		return nil, m.err
	}
	if brandID == "" {
		return m.products, nil
	}
	var out []upstream.RawProduct
	for _, p := range m.products {
		if string(p.BrandID) == brandID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockFetcher) Categories(_ context.Context) ([]upstream.RawCategory, error) {
	return m.categories, m.err
}

func newTestFetcher() *mockFetcher {
	return &mockFetcher{
		brands: []upstream.RawBrand{
			{ID: "14", Name: "اخرى"},
			{ID: "2", Name: "عجاوي", NameEnglish: "Ajjawi"},
			{ID: "1", Name: "الوطنية"},
			{ID: "30", Name: "فارغة"},
		},
		products: []upstream.RawProduct{
			{ID: "10", BrandID: "2", Name: "Milk", Unit: "كرتونة"},
			{ID: "11", BrandID: "2", Name: "Hidden", IsHidden: true},
			{ID: "12", BrandID: "1", Name: "Juice"},
			{ID: "13", BrandID: "14", Name: "Misc", IsNew: true},
		},
		categories: []upstream.RawCategory{
			{ID: 2, Name: "مشروبات"},
			{ID: 1, Name: "ألبان"},
		},
	}
}

func newTestService(f Fetcher) *Service {
	return NewService(f, Config{BrandSort: brand.SortPriority})
}

// --- Tests ---

func TestBrands_SortedByConfiguredStrategy(t *testing.T) {
	svc := newTestService(newTestFetcher())

	brands, err := svc.Brands(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(brands))
	for i, b := range brands {
		ids[i] = b.ID
	}
	// Priority order: 2, 1, then 30 in the 100+id bucket, 14 last.
	assert.Equal(t, []string{"2", "1", "30", "14"}, ids)
}

func TestBrands_OthersLastStrategy(t *testing.T) {
	svc := NewService(newTestFetcher(), Config{BrandSort: brand.SortOthersLast})

	brands, err := svc.Brands(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "اخرى", brands[len(brands)-1].Name)
}

func TestBrandByID(t *testing.T) {
	svc := newTestService(newTestFetcher())

	b, err := svc.BrandByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "عجاوي", b.Name)
}

func TestBrandByID_NotFound(t *testing.T) {
	svc := newTestService(newTestFetcher())

	_, err := svc.BrandByID(context.Background(), "999")
	require.ErrorIs(t, err, ErrBrandNotFound)
}

func TestBrandProducts_ExcludesHidden(t *testing.T) {
	f := newTestFetcher()
	svc := newTestService(f)

	products, err := svc.BrandProducts(context.Background(), "2")
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "Milk", products[0].Name)
	assert.Equal(t, "2", f.lastBrandID, "brand filter is pushed to the upstream query")
}

func TestProducts_AppliesFilter(t *testing.T) {
	svc := newTestService(newTestFetcher())

	products, err := svc.Products(context.Background(), product.Filter{Query: "juice"})
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "Juice", products[0].Name)
}

func TestProductsGrouped(t *testing.T) {
	svc := newTestService(newTestFetcher())

	g, err := svc.ProductsGrouped(context.Background(), product.Filter{})
	require.NoError(t, err)

	require.Len(t, g.New, 1)
	assert.Equal(t, "Misc", g.New[0].Name)
	assert.Len(t, g.Regular, 2)
}

func TestCategories_SortedByName(t *testing.T) {
	svc := newTestService(newTestFetcher())

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, "ألبان", categories[0].Name)
	assert.Equal(t, "مشروبات", categories[1].Name)
}

func TestDirectory_OmitsBrandsWithNoVisibleProducts(t *testing.T) {
	svc := newTestService(newTestFetcher())

	entries, err := svc.Directory(context.Background())
	require.NoError(t, err)

	ids := make(map[string]int, len(entries))
	for _, e := range entries {
		ids[e.Brand.ID] = e.ProductCount
	}
	assert.Equal(t, 1, ids["2"], "hidden products do not count")
	assert.Equal(t, 1, ids["1"])
	assert.Equal(t, 1, ids["14"])
	assert.NotContains(t, ids, "30", "brand with no products is omitted")
}

func TestDirectory_KeepsDisplayOrder(t *testing.T) {
	svc := newTestService(newTestFetcher())

	entries, err := svc.Directory(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "2", entries[0].Brand.ID)
	assert.Equal(t, "14", entries[len(entries)-1].Brand.ID)
}

func TestService_PropagatesFetchErrors(t *testing.T) {
	fetchErr := errors.New("backend down")
	svc := newTestService(&mockFetcher{err: fetchErr})

	_, err := svc.Brands(context.Background())
	require.ErrorIs(t, err, fetchErr)

	_, err = svc.Products(context.Background(), product.Filter{})
	require.ErrorIs(t, err, fetchErr)

	_, err = svc.Directory(context.Background())
	require.ErrorIs(t, err, fetchErr)
}

func TestNewService_InvalidStrategyFallsBack(t *testing.T) {
	svc := NewService(newTestFetcher(), Config{BrandSort: "bogus"})

	brands, err := svc.Brands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2", brands[0].ID)
}
