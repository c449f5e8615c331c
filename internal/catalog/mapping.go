package catalog

import (
	"fmt"
	"strconv"

	"github.com/rabukhader/Ajjawi-Website/internal/domain/brand"
	"github.com/rabukhader/Ajjawi-Website/internal/domain/category"
	"github.com/rabukhader/Ajjawi-Website/internal/domain/product"
	"github.com/rabukhader/Ajjawi-Website/internal/upstream"
)

// MapProduct converts a raw backend product into the domain entity. The id
// and brand id are canonicalized to strings; brandID overrides the record's
// own brand id when non-empty (used when flattening nested brand payloads).
// The backend has no free-text description, so one is synthesized from the
// quantity/packaging/unit triple.
func MapProduct(raw upstream.RawProduct, brandID string) product.Product {
	if brandID == "" {
		brandID = string(raw.BrandID)
	}
	return product.Product{
		ID:           string(raw.ID),
		Name:         raw.Name,
		BrandID:      brandID,
		Description:  fmt.Sprintf("Quantity: %s, Packaging: %s, Unit: %s", raw.Quantity, raw.Packaging, raw.Unit),
		Type:         product.MapType(raw.Unit, raw.Packaging),
		CategoryID:   copyInt(raw.CategoryID),
		CategoryName: raw.CategoryName,
		ProductOrder: copyInt(raw.ProductOrder),
		IsNew:        raw.IsNew,
		IsHidden:     raw.IsHidden,
	}
}

// MapBrand converts a raw backend brand into the domain entity. Nested
// products are mapped with the brand's id when the payload carries them;
// otherwise Products stays nil and the caller fetches them separately.
func MapBrand(raw upstream.RawBrand) brand.Brand {
	id := string(raw.ID)
	b := brand.Brand{
		ID:          id,
		Name:        raw.Name,
		NameEnglish: raw.NameEnglish,
		Logo:        raw.ImageURL,
	}
	if raw.Products != nil {
		b.Products = make([]product.Product, len(raw.Products))
		for i, p := range raw.Products {
			b.Products[i] = MapProduct(p, id)
		}
	}
	return b
}

// MapCategory converts a raw backend category into the domain entity.
func MapCategory(raw upstream.RawCategory) category.Category {
	return category.Category{
		ID:   strconv.Itoa(raw.ID),
		Name: raw.Name,
	}
}

// copyInt clones an optional int so domain entities never alias raw payload
// memory.
func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
