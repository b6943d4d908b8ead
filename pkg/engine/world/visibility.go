package world

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// VisibilitySet is a set of tile positions. Insertion order is irrelevant.
type VisibilitySet = mapset.Set[Position]

// NewVisibilitySet creates a set holding the given positions.
func NewVisibilitySet(positions ...Position) VisibilitySet {
	s := mapset.New[Position]()
	for _, p := range positions {
		s.Put(p)
	}
	return s
}

// Union returns a new set with every position of a and b.
func Union(a, b VisibilitySet) VisibilitySet {
	out := mapset.New[Position]()
	a.Each(out.Put)
	b.Each(out.Put)
	return out
}

// UnionInto adds every position of src to dst.
func UnionInto(dst, src VisibilitySet) {
	src.Each(dst.Put)
}

// Intersect returns a new set with the positions present in both a and b.
func Intersect(a, b VisibilitySet) VisibilitySet {
	small, large := a, b
	if b.Size() < a.Size() {
		small, large = b, a
	}
	out := mapset.New[Position]()
	small.Each(func(p Position) {
		if large.Has(p) {
			out.Put(p)
		}
	})
	return out
}

// Difference returns a new set with the positions of a that are not in b.
func Difference(a, b VisibilitySet) VisibilitySet {
	out := mapset.New[Position]()
	a.Each(func(p Position) {
		if !b.Has(p) {
			out.Put(p)
		}
	})
	return out
}

// Equal reports whether both sets hold exactly the same positions.
func Equal(a, b VisibilitySet) bool {
	if a.Size() != b.Size() {
		return false
	}
	same := true
	a.Each(func(p Position) {
		if !b.Has(p) {
			same = false
		}
	})
	return same
}

// Keys returns the "x,y" keys of the set, sorted for stable output.
func Keys(s VisibilitySet) []string {
	keys := make([]string, 0, s.Size())
	s.Each(func(p Position) {
		keys = append(keys, p.Key())
	})
	sort.Strings(keys)
	return keys
}

// HasKey reports whether the set contains the tile with the given "x,y" key.
func HasKey(s VisibilitySet, key string) bool {
	p, err := ParseKey(key)
	if err != nil {
		return false
	}
	return s.Has(p)
}
