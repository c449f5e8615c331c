package product

import "strings"

// unitTypes maps the unit tokens the backend sends to canonical types.
// Matching is exact after trimming; the backend is not consistent about
// which of the two fields carries the token, so MapType checks both.
var unitTypes = map[string]Type{
	"كرتونة": TypeCarton,
	"دزينة":  TypeDozen,
	"علبة":   TypeCan,
	"تنكة":   TypeTank,
	"بكيت":   TypePacket,
	"كغم":    TypeKilogram,
	"غلن":    TypeGallon,
	"كيلو":   TypeKilo,
	"شوال":   TypeSack,
	"كيس":    TypeBag,
	"سطل":    TypeBucket,
	"ربطة":   TypeBundle,
}

// MapType resolves the canonical product type from the raw unit and packaging
// strings. The unit field wins when both carry a known token. Unrecognized
// pairs resolve to TypeUnknown, never an error.
func MapType(unit, packaging string) Type {
	if t, ok := unitTypes[strings.TrimSpace(unit)]; ok {
		return t
	}
	if t, ok := unitTypes[strings.TrimSpace(packaging)]; ok {
		return t
	}
	return TypeUnknown
}
