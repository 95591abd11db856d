package utils

import "golang.org/x/exp/slices"

// SliceSelect provides a way of querying a specific element from a slice's elements into a slice of its own.
func SliceSelect[T any, K any](x []T, f func(x T) K) []K {
	r := make([]K, len(x))
	for i := 0; i < len(x); i++ {
		r[i] = f(x[i])
	}
	return r
}

// SliceWhere provides a way of querying specific elements which fit some criteria into a new slice.
func SliceWhere[T any](x []T, f func(x T) bool) []T {
	r := make([]T, 0)
	for i := 0; i < len(x); i++ {
		if f(x[i]) {
			r = append(r, x[i])
		}
	}
	return r
}

// SortedUnique returns a sorted copy of x with duplicates removed.
func SortedUnique[T ~string | ~int | ~int64](x []T) []T {
	r := slices.Clone(x)
	slices.Sort(r)
	return slices.Compact(r)
}
