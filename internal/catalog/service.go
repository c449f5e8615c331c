// Package catalog orchestrates the fetch→map→shape flow behind every page
// of the site: raw payloads come from the upstream client, get mapped into
// domain entities, and pass through the pure shaping pipeline before they
// reach a handler.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/rabukhader/Ajjawi-Website/internal/domain/brand"
	"github.com/rabukhader/Ajjawi-Website/internal/domain/category"
	"github.com/rabukhader/Ajjawi-Website/internal/domain/product"
	"github.com/rabukhader/Ajjawi-Website/internal/upstream"
)

// ErrBrandNotFound is returned when a requested brand id is absent from the
// fetched collection. The backend has no brand detail endpoint, so lookups
// scan the full list.
var ErrBrandNotFound = errors.New("brand not found")

// Fetcher is the slice of the upstream client the service depends on.
type Fetcher interface {
	Brands(ctx context.Context) ([]upstream.RawBrand, error)
	Products(ctx context.Context, brandID string) ([]upstream.RawProduct, error)
	Categories(ctx context.Context) ([]upstream.RawCategory, error)
}

// Config selects the presentation behaviors that drifted between page
// variants of the original site, consolidated here behind flags.
type Config struct {
	// BrandSort picks the brand directory ordering.
	BrandSort brand.SortStrategy
	// GroupNewProducts splits listings into new and regular partitions.
	GroupNewProducts bool
}

// Service shapes catalog data for the site.
type Service struct {
	fetcher   Fetcher
	brandSort brand.SortStrategy
	groupNew  bool
}

// NewService creates a Service on top of the given fetcher.
func NewService(fetcher Fetcher, cfg Config) *Service {
	strategy := cfg.BrandSort
	if !strategy.Valid() {
		strategy = brand.SortPriority
	}
	return &Service{
		fetcher:   fetcher,
		brandSort: strategy,
		groupNew:  cfg.GroupNewProducts,
	}
}

// GroupsNewProducts reports whether listings are served in grouped form by
// default.
func (s *Service) GroupsNewProducts() bool {
	return s.groupNew
}

// Brands returns all brands in display order.
func (s *Service) Brands(ctx context.Context) ([]brand.Brand, error) {
	raw, err := s.fetcher.Brands(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch brands")
	}
	brands := make([]brand.Brand, len(raw))
	for i, rb := range raw {
		brands[i] = MapBrand(rb)
	}
	return brand.Sort(brands, s.brandSort), nil
}

// BrandByID returns a single brand, or ErrBrandNotFound.
func (s *Service) BrandByID(ctx context.Context, id string) (*brand.Brand, error) {
	brands, err := s.Brands(ctx)
	if err != nil {
		return nil, err
	}
	for i := range brands {
		if brands[i].ID == id {
			return &brands[i], nil
		}
	}
	return nil, ErrBrandNotFound
}

// BrandProducts returns the visible products of one brand in display order.
// Nested payloads already scoped to the brand are used as-is; otherwise the
// brand filter narrows the flat catalog.
func (s *Service) BrandProducts(ctx context.Context, brandID string) ([]product.Product, error) {
	raw, err := s.fetcher.Products(ctx, brandID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch brand products")
	}
	return product.FilterSort(mapProducts(raw), product.Filter{BrandIDs: []string{brandID}}), nil
}

// Products returns the filtered, sorted catalog.
func (s *Service) Products(ctx context.Context, f product.Filter) ([]product.Product, error) {
	raw, err := s.fetcher.Products(ctx, "")
	if err != nil {
		return nil, errors.Wrap(err, "fetch products")
	}
	return product.FilterSort(mapProducts(raw), f), nil
}

// ProductsGrouped is Products with new-product grouping applied.
func (s *Service) ProductsGrouped(ctx context.Context, f product.Filter) (product.Grouped, error) {
	raw, err := s.fetcher.Products(ctx, "")
	if err != nil {
		return product.Grouped{}, errors.Wrap(err, "fetch products")
	}
	return product.FilterSortGrouped(mapProducts(raw), f), nil
}

// Categories returns all categories ordered by name for the filter sidebar.
func (s *Service) Categories(ctx context.Context) ([]category.Category, error) {
	raw, err := s.fetcher.Categories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch categories")
	}
	categories := make([]category.Category, len(raw))
	for i, rc := range raw {
		categories[i] = MapCategory(rc)
	}
	return category.SortByName(categories), nil
}

// DirectoryEntry is a brand with its visible product count, as shown on the
// brand directory page.
type DirectoryEntry struct {
	Brand        brand.Brand
	ProductCount int
}

// Directory returns the brand directory: brands in display order with their
// visible product counts, omitting brands with nothing to show. Brands and
// products are fetched concurrently; each fetch owns its own result slot.
func (s *Service) Directory(ctx context.Context) ([]DirectoryEntry, error) {
	var (
		brands   []brand.Brand
		products []product.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		brands, err = s.Brands(gctx)
		return err
	})
	g.Go(func() error {
		raw, err := s.fetcher.Products(gctx, "")
		if err != nil {
			return errors.Wrap(err, "fetch products")
		}
		products = mapProducts(raw)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := product.CountVisibleByBrand(products)
	entries := make([]DirectoryEntry, 0, len(brands))
	for _, b := range brands {
		count := counts[b.ID]
		if count == 0 {
			continue
		}
		entries = append(entries, DirectoryEntry{Brand: b, ProductCount: count})
	}
	return entries, nil
}

func mapProducts(raw []upstream.RawProduct) []product.Product {
	products := make([]product.Product, len(raw))
	for i, rp := range raw {
		products[i] = MapProduct(rp, "")
	}
	return products
}
