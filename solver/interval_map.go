package solver

import (
	"github.com/benbjohnson/immutable"
)

// IntervalMap is a persistent mapping of variable names to their admissible IntSet. Every update returns a new map
// and leaves the receiver untouched, so earlier versions stay valid as snapshots. The zero value is an empty map.
type IntervalMap struct {
	ranges *immutable.SortedMap
}

// NewIntervalMap returns an empty IntervalMap.
func NewIntervalMap() IntervalMap {
	return IntervalMap{ranges: immutable.NewSortedMap(&stringComparer{})}
}

// sorted returns the underlying sorted map, creating it for the zero value.
func (m IntervalMap) sorted() *immutable.SortedMap {
	if m.ranges == nil {
		return immutable.NewSortedMap(&stringComparer{})
	}
	return m.ranges
}

// Get returns the range of a variable. The boolean is false if the variable has not been constrained yet.
func (m IntervalMap) Get(name string) (IntSet, bool) {
	v, ok := m.sorted().Get(name)
	if !ok {
		return IntSet{}, false
	}
	return v.(IntSet), true
}

// Set returns a new IntervalMap in which name is bound to r.
func (m IntervalMap) Set(name string, r IntSet) IntervalMap {
	return IntervalMap{ranges: m.sorted().Set(name, r)}
}

// Len returns the amount of variables in the map.
func (m IntervalMap) Len() int {
	return m.sorted().Len()
}

// Names returns the variable names in ascending order.
func (m IntervalMap) Names() []string {
	names := make([]string, 0, m.Len())
	m.Each(func(name string, _ IntSet) {
		names = append(names, name)
	})
	return names
}

// Each calls fn for every variable in ascending name order.
func (m IntervalMap) Each(fn func(name string, r IntSet)) {
	itr := m.sorted().Iterator()
	for {
		k, v := itr.Next()
		if k == nil {
			return
		}
		fn(k.(string), v.(IntSet))
	}
}

// Ranges returns a plain map copy of the IntervalMap.
func (m IntervalMap) Ranges() map[string]IntSet {
	ranges := make(map[string]IntSet, m.Len())
	m.Each(func(name string, r IntSet) {
		ranges[name] = r
	})
	return ranges
}

// String returns the map as "x={0..5} y={3}" in name order.
func (m IntervalMap) String() string {
	s := ""
	m.Each(func(name string, r IntSet) {
		if s != "" {
			s += " "
		}
		s += name + "=" + r.String()
	})
	return s
}

// stringComparer compares two strings. Implements immutable.Comparer.
type stringComparer struct{}

// Compare returns -1 if a is less than b, returns 1 if a is greater than b, and
// returns 0 if a is equal to b. Panic if a or b is not a string.
func (c *stringComparer) Compare(a, b interface{}) int {
	if i, j := a.(string), b.(string); i < j {
		return -1
	} else if i > j {
		return 1
	}
	return 0
}
