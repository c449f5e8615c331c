// Package category holds the product classification entities shared across
// brands. Category ids are integers end to end; only the entity id exposed
// to the frontend is stringified, mirroring the other catalog entities.
package category

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Category classifies products across brands.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SortByName returns a copy of categories ordered by locale-aware name
// comparison, the order the filter sidebar presents them in.
func SortByName(categories []Category) []Category {
	out := make([]Category, len(categories))
	copy(out, categories)

	coll := collate.New(language.Arabic)
	sort.SliceStable(out, func(i, j int) bool {
		return coll.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}
