package trace

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Assignment maps variable names to concrete integer values. It is the concrete state of an execution and the shape
// of a generated test input.
type Assignment map[string]int64

// Clone returns a copy of the Assignment.
func (a Assignment) Clone() Assignment {
	c := make(Assignment, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Names returns the variable names of the Assignment in sorted order.
func (a Assignment) Names() []string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Restrict returns a copy of the Assignment containing only the given names.
func (a Assignment) Restrict(names []string) Assignment {
	c := make(Assignment, len(names))
	for _, name := range names {
		if v, ok := a[name]; ok {
			c[name] = v
		}
	}
	return c
}

// Equal returns whether both assignments bind the same names to the same values.
func (a Assignment) Equal(b Assignment) bool {
	return maps.Equal(a, b)
}

// String returns the assignment as "{a=1, b=2}" with names in sorted order.
func (a Assignment) String() string {
	parts := make([]string, 0, len(a))
	for _, name := range a.Names() {
		parts = append(parts, fmt.Sprintf("%s=%d", name, a[name]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
