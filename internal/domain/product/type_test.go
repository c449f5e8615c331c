package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapType_UnitMatch(t *testing.T) {
	assert.Equal(t, TypeCarton, MapType("كرتونة", ""))
	assert.Equal(t, TypeDozen, MapType("دزينة", ""))
	assert.Equal(t, TypeBucket, MapType("سطل", ""))
}

func TestMapType_PackagingFallback(t *testing.T) {
	assert.Equal(t, TypeDozen, MapType("", "دزينة"))
	assert.Equal(t, TypeBag, MapType("not-a-unit", "كيس"))
}

func TestMapType_UnitWinsOverPackaging(t *testing.T) {
	assert.Equal(t, TypeCarton, MapType("كرتونة", "دزينة"))
}

func TestMapType_Unknown(t *testing.T) {
	assert.Equal(t, TypeUnknown, MapType("xyz", "abc"))
	assert.Equal(t, TypeUnknown, MapType("", ""))
}

func TestMapType_TrimsInput(t *testing.T) {
	assert.Equal(t, TypeCarton, MapType("  كرتونة ", ""))
	assert.Equal(t, TypeTank, MapType("", " تنكة\n"))
}

func TestMapType_NoCaseFolding(t *testing.T) {
	// Matching is exact: a token differing only in case is not recognized.
	assert.Equal(t, TypeUnknown, MapType("CARTON", "carton"))
}
