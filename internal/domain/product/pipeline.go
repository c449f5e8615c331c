package product

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter holds the user-selected catalog filters. Empty fields match
// everything; the pipeline never mutates a Filter.
type Filter struct {
	// BrandIDs restricts results to the given brand ids when non-empty.
	BrandIDs []string
	// CategoryIDs restricts results to products whose category is defined
	// and a member of the set when non-empty.
	CategoryIDs []int
	// Query is a free-text search matched case-insensitively against
	// product name and description. Leading/trailing space is ignored.
	Query string
}

// Grouped splits pipeline output into promoted ("new") products and the
// regular listing. Grouping never changes the combined membership or the
// per-partition ordering rules.
type Grouped struct {
	New     []Product `json:"new"`
	Regular []Product `json:"regular"`
}

// FilterSort applies the canonical shaping pipeline: hidden products are
// dropped, the brand/category/search filters are applied, and survivors are
// sorted by explicit productOrder (ascending, order-less products last) with
// a locale-aware name comparison as the final tie-break. The input slice is
// never modified.
func FilterSort(products []Product, f Filter) []Product {
	out := filter(products, f)
	sortProducts(out)
	return out
}

// FilterSortGrouped is FilterSort with the survivors partitioned into new
// and regular products before each partition is sorted independently.
func FilterSortGrouped(products []Product, f Filter) Grouped {
	survivors := filter(products, f)

	g := Grouped{
		New:     make([]Product, 0, len(survivors)),
		Regular: make([]Product, 0, len(survivors)),
	}
	for _, p := range survivors {
		if p.IsNew {
			g.New = append(g.New, p)
		} else {
			g.Regular = append(g.Regular, p)
		}
	}
	sortProducts(g.New)
	sortProducts(g.Regular)
	return g
}

// CountVisibleByBrand counts non-hidden products per brand id. Brands with
// no visible products do not appear in the result.
func CountVisibleByBrand(products []Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		if p.IsHidden {
			continue
		}
		counts[p.BrandID]++
	}
	return counts
}

// filter returns a fresh slice of the products passing every active filter,
// preserving input order.
func filter(products []Product, f Filter) []Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	var brandSet map[string]struct{}
	if len(f.BrandIDs) > 0 {
		brandSet = make(map[string]struct{}, len(f.BrandIDs))
		for _, id := range f.BrandIDs {
			brandSet[id] = struct{}{}
		}
	}
	var categorySet map[int]struct{}
	if len(f.CategoryIDs) > 0 {
		categorySet = make(map[int]struct{}, len(f.CategoryIDs))
		for _, id := range f.CategoryIDs {
			categorySet[id] = struct{}{}
		}
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.IsHidden {
			continue
		}
		if brandSet != nil {
			if _, ok := brandSet[p.BrandID]; !ok {
				continue
			}
		}
		if categorySet != nil {
			if p.CategoryID == nil {
				continue
			}
			if _, ok := categorySet[*p.CategoryID]; !ok {
				continue
			}
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortProducts orders products in place: both ordered → productOrder
// ascending, one ordered → it first, neither → locale-aware name comparison.
// The sort is stable so productOrder ties keep their input order.
func sortProducts(products []Product) {
	coll := collate.New(language.Arabic)
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch {
		case a.ProductOrder != nil && b.ProductOrder != nil:
			return *a.ProductOrder < *b.ProductOrder
		case a.ProductOrder != nil:
			return true
		case b.ProductOrder != nil:
			return false
		default:
			return coll.CompareString(a.Name, b.Name) < 0
		}
	})
}
