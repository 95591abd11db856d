package solver

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/exp/slices"
)

// IntSet is an immutable finite set of integers, stored sorted and without duplicates. The zero value is the empty
// set.
type IntSet struct {
	values []int64
}

// NewIntSet creates a set holding the given values.
func NewIntSet(values ...int64) IntSet {
	v := slices.Clone(values)
	slices.Sort(v)
	return IntSet{values: slices.Compact(v)}
}

// Singleton creates a set holding only v.
func Singleton(v int64) IntSet {
	return IntSet{values: []int64{v}}
}

// RangeSet creates the set of every integer in [min, max]. It is empty if min > max.
func RangeSet(min int64, max int64) IntSet {
	if min > max {
		return IntSet{}
	}
	values := make([]int64, 0, uint64(max-min)+1)
	for v := min; ; v++ {
		values = append(values, v)
		if v == max {
			break
		}
	}
	return IntSet{values: values}
}

// fromSorted wraps values that are already sorted and unique.
func fromSorted(values []int64) IntSet {
	return IntSet{values: values}
}

// Len returns the amount of values in the set.
func (s IntSet) Len() int {
	return len(s.values)
}

// Empty returns whether the set holds no value.
func (s IntSet) Empty() bool {
	return len(s.values) == 0
}

// Contains returns whether v is in the set.
func (s IntSet) Contains(v int64) bool {
	_, found := slices.BinarySearch(s.values, v)
	return found
}

// Min returns the smallest value of a non-empty set.
func (s IntSet) Min() int64 {
	return s.values[0]
}

// Max returns the largest value of a non-empty set.
func (s IntSet) Max() int64 {
	return s.values[len(s.values)-1]
}

// Values returns the values of the set in ascending order.
func (s IntSet) Values() []int64 {
	return slices.Clone(s.values)
}

// Equal returns whether both sets hold the same values.
func (s IntSet) Equal(other IntSet) bool {
	return slices.Equal(s.values, other.values)
}

// Filter returns the subset of values for which keep returns true.
func (s IntSet) Filter(keep func(v int64) bool) IntSet {
	values := make([]int64, 0, len(s.values))
	for _, v := range s.values {
		if keep(v) {
			values = append(values, v)
		}
	}
	return fromSorted(values)
}

// Sample returns a value drawn uniformly from the set. The boolean is false for the empty set.
func (s IntSet) Sample(randomProvider *rand.Rand) (int64, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	return s.values[randomProvider.Intn(len(s.values))], true
}

// String returns the set with consecutive runs collapsed, e.g. "{-3, 0..5, 9}".
func (s IntSet) String() string {
	parts := make([]string, 0)
	for i := 0; i < len(s.values); {
		j := i
		for j+1 < len(s.values) && s.values[j+1] == s.values[j]+1 {
			j++
		}
		if j == i {
			parts = append(parts, fmt.Sprintf("%d", s.values[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d..%d", s.values[i], s.values[j]))
		}
		i = j + 1
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
