package product

// Type is the canonical packaging/unit classification of a product.
// Values are the Arabic unit tokens the upstream backend uses; the zero
// value TypeUnknown means no known token matched.
type Type string

const (
	TypeCarton   Type = "كرتونة"
	TypeDozen    Type = "دزينة"
	TypeCan      Type = "علبة"
	TypeTank     Type = "تنكة"
	TypePacket   Type = "بكيت"
	TypeKilogram Type = "كغم"
	TypeGallon   Type = "غلن"
	TypeKilo     Type = "كيلو"
	TypeSack     Type = "شوال"
	TypeBag      Type = "كيس"
	TypeBucket   Type = "سطل"
	TypeBundle   Type = "ربطة"
	TypeUnknown  Type = ""
)

// Product is a sellable catalog item belonging to one brand and one category.
// IDs are canonicalized to strings at the mapping boundary so they can be
// used as map keys regardless of how the backend serialized them.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BrandID      string `json:"brandId"`
	Image        string `json:"image,omitempty"`
	Description  string `json:"description,omitempty"`
	Price        string `json:"price,omitempty"`
	Type         Type   `json:"type"`
	CategoryID   *int   `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	ProductOrder *int   `json:"productOrder,omitempty"`
	IsNew        bool   `json:"isNew,omitempty"`
	IsHidden     bool   `json:"isHidden,omitempty"`
}
