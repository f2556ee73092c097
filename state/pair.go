package state

import (
	"cmp"
	"slices"
)

type Pair[Ty1, Ty2 any] struct {
	V1 Ty1
	V2 Ty2
}
type Triple[Ty1, Ty2, Ty3 any] struct {
	V1 Ty1
	V2 Ty2
	V3 Ty3
}

// SortPairs orders pairs by V1, then V2.
func SortPairs[Ty1, Ty2 cmp.Ordered](pairs []Pair[Ty1, Ty2]) {
	slices.SortFunc(pairs, func(a, b Pair[Ty1, Ty2]) int {
		return cmp.Or(cmp.Compare(a.V1, b.V1), cmp.Compare(a.V2, b.V2))
	})
}

// OrderedPair returns the pair with the smaller element first.
func OrderedPair[Ty cmp.Ordered](a, b Ty) Pair[Ty, Ty] {
	if b < a {
		return Pair[Ty, Ty]{b, a}
	}
	return Pair[Ty, Ty]{a, b}
}
