package filter

import "slices"

// Set is an inclusion list. A nil or empty Set matches nothing.
type Set[T comparable] map[T]struct{}

// Of builds a Set from values.
func Of[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Range builds the integer Set lo..hi inclusive. lo and hi may be given in
// either order.
func Range(lo, hi int) Set[int] {
	if lo > hi {
		lo, hi = hi, lo
	}
	s := make(Set[int], hi-lo+1)
	for v := lo; v <= hi; v++ {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is selected.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Union returns a new Set holding the members of s and o.
func (s Set[T]) Union(o Set[T]) Set[T] {
	out := make(Set[T], len(s)+len(o))
	for v := range s {
		out[v] = struct{}{}
	}
	for v := range o {
		out[v] = struct{}{}
	}
	return out
}

// Sorted returns the members of an integer Set in ascending order.
func Sorted(s Set[int]) []int {
	out := make([]int, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
