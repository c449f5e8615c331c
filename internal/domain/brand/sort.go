package brand

import (
	"sort"
	"strconv"
)

// SortStrategy selects how the brand directory is ordered. Two orderings
// shipped in different revisions of the site; both are kept behind this
// switch until the product owner settles on one.
type SortStrategy string

const (
	// SortPriority orders brands by a hand-tuned rank table keyed on the
	// raw numeric brand id.
	SortPriority SortStrategy = "priority"
	// SortOthersLast pushes the catch-all "Others" brand to the end and
	// orders the rest by ascending numeric id.
	SortOthersLast SortStrategy = "others-last"
)

// Valid reports whether s names a known strategy.
func (s SortStrategy) Valid() bool {
	return s == SortPriority || s == SortOthersLast
}

// othersArabicNames are the Arabic spellings of the catch-all brand. The
// spelling drifted between backend revisions, so both are recognized.
var othersArabicNames = map[string]struct{}{
	"اخرى":  {},
	"أُخرى": {},
}

const othersEnglishName = "Others"

// Sort returns a sorted copy of brands using the given strategy. Both
// strategies are stable: ties beyond the strategy's key keep input order.
// An unknown strategy falls back to SortPriority.
func Sort(brands []Brand, strategy SortStrategy) []Brand {
	out := make([]Brand, len(brands))
	copy(out, brands)

	switch strategy {
	case SortOthersLast:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := othersLastKey(out[i]), othersLastKey(out[j])
			if a.others != b.others {
				return !a.others
			}
			return a.id < b.id
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return priorityRank(out[i].ID) < priorityRank(out[j].ID)
		})
	}
	return out
}

// priorityRank maps a raw brand id to its hand-tuned sort rank: a fixed
// order for the five house brands, the "Others" brand (id 14) forced last,
// and everything else after the house brands by id.
func priorityRank(id string) int {
	switch n := numericID(id); n {
	case 2:
		return 1
	case 1:
		return 2
	case 3:
		return 3
	case 4:
		return 4
	case 5:
		return 5
	case 14:
		return 9999
	default:
		return 100 + n
	}
}

type othersKey struct {
	others bool
	id     int
}

func othersLastKey(b Brand) othersKey {
	_, arabic := othersArabicNames[b.Name]
	return othersKey{
		others: arabic || b.NameEnglish == othersEnglishName,
		id:     numericID(b.ID),
	}
}

// numericID parses a brand id, treating absent or unparsable ids as 0.
func numericID(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0
	}
	return n
}
