package upstream

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// FlexID is an entity id that the backend serializes inconsistently as
// either a JSON number or a JSON string. It always decodes to the canonical
// string form; JSON null decodes to the empty string.
type FlexID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	d := jx.DecodeBytes(data)
	switch tt := d.Next(); tt {
	case jx.Number:
		n, err := d.Int64()
		if err != nil {
			return errors.Wrap(err, "decode numeric id")
		}
		*f = FlexID(strconv.FormatInt(n, 10))
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return errors.Wrap(err, "decode string id")
		}
		*f = FlexID(strings.TrimSpace(s))
	case jx.Null:
		*f = ""
	default:
		return errors.Errorf("unexpected id token %q", tt)
	}
	return nil
}

// RawProduct is a product record exactly as the backend serves it.
type RawProduct struct {
	ID           FlexID `json:"id"`
	BrandID      FlexID `json:"brandId"`
	BrandName    string `json:"brandName"`
	Name         string `json:"name"`
	Quantity     string `json:"quantity"`
	Packaging    string `json:"packaging"`
	Unit         string `json:"unit"`
	CategoryID   *int   `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	ProductOrder *int   `json:"productOrder"`
	IsNew        bool   `json:"isNew"`
	IsHidden     bool   `json:"isHidden"`
}

// RawBrand is a brand record as the backend serves it. One backend revision
// nests the brand's products in the same payload; the current one keeps
// them behind the products endpoint and leaves Products nil.
type RawBrand struct {
	ID          FlexID       `json:"id"`
	Name        string       `json:"name"`
	NameEnglish string       `json:"nameEnglish"`
	ImageURL    string       `json:"imageUrl"`
	Products    []RawProduct `json:"products"`
}

// RawCategory is a category record as the backend serves it.
type RawCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// catalogEntry covers both shapes the products endpoint is known to return:
// a flat product record, or a brand envelope nesting its products. Entries
// carrying a products array are envelopes and get flattened.
type catalogEntry struct {
	RawProduct
	Products []RawProduct `json:"products"`
}

// flattenProducts normalizes a mixed catalog payload into a flat product
// list. Nested products missing a brand id inherit the envelope's id.
func flattenProducts(entries []catalogEntry) []RawProduct {
	out := make([]RawProduct, 0, len(entries))
	for _, e := range entries {
		if e.Products == nil {
			out = append(out, e.RawProduct)
			continue
		}
		for _, p := range e.Products {
			if p.BrandID == "" {
				p.BrandID = e.ID
			}
			out = append(out, p)
		}
	}
	return out
}
