package solver

import (
	"github.com/concolic-labs/pathfinder/program"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// MaxRangeSize is the largest amount of value pairs Image scans. Replaying a store that feeds a variable back into
// itself, such as "x = x * y" inside a loop, grows the range of x with every iteration.
const MaxRangeSize = 1 << 20

// Image returns the set of op(x, y) for every x in a and y in b. Pairs the operator is undefined for, such as a zero
// SDiv divisor or an out of range shift count, are skipped. A *RangeTooLargeError is returned without scanning if
// the cross product of a and b holds more than MaxRangeSize pairs.
func Image(op program.Op, a IntSet, b IntSet) (IntSet, error) {
	if a.Empty() || b.Empty() {
		return IntSet{}, nil
	}
	pairs := a.Len() * b.Len()
	if pairs > MaxRangeSize {
		return IntSet{}, errors.WithStack(&RangeTooLargeError{Op: op, Left: a.Len(), Right: b.Len()})
	}

	values := make([]int64, 0, pairs)
	for _, x := range a.values {
		for _, y := range b.values {
			v, err := op.Apply(x, y)
			if err != nil {
				continue
			}
			values = append(values, v)
		}
	}
	slices.Sort(values)
	return fromSorted(slices.Compact(values)), nil
}

// Satisfying returns the values l of left for which some value r of right makes predicate(l, r) hold. This is the
// result of scanning the full cross product, computed from the bounds of right.
func Satisfying(predicate program.Predicate, left IntSet, right IntSet) IntSet {
	if left.Empty() || right.Empty() {
		return IntSet{}
	}
	switch predicate {
	case program.EQ:
		return left.Filter(right.Contains)
	case program.NE:
		if right.Len() > 1 {
			return left
		}
		only := right.Min()
		return left.Filter(func(l int64) bool { return l != only })
	case program.GT:
		lowest := right.Min()
		return left.Filter(func(l int64) bool { return l > lowest })
	case program.GE:
		lowest := right.Min()
		return left.Filter(func(l int64) bool { return l >= lowest })
	case program.LT:
		highest := right.Max()
		return left.Filter(func(l int64) bool { return l < highest })
	case program.LE:
		highest := right.Max()
		return left.Filter(func(l int64) bool { return l <= highest })
	default:
		panic("unreachable")
	}
}
