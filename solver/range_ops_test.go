package solver

import (
	"testing"

	"github.com/concolic-labs/pathfinder/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestImageOfSingletons ensures the image of two singletons is the concrete result of the operator.
func TestImageOfSingletons(t *testing.T) {
	values := []int64{-7, -1, 0, 2, 5, 63}
	for _, op := range program.Ops {
		for _, a := range values {
			for _, b := range values {
				image, err := Image(op, Singleton(a), Singleton(b))
				require.NoError(t, err)
				concrete, err := op.Apply(a, b)
				if err != nil {
					assert.True(t, image.Empty(), "%d %s %d", a, op, b)
					continue
				}
				assert.Equal(t, []int64{concrete}, image.Values(), "%d %s %d", a, op, b)
			}
		}
	}
}

// TestImageSkipsUndefinedPairs ensures a divisor range containing zero does not fail the image.
func TestImageSkipsUndefinedPairs(t *testing.T) {
	image, err := Image(program.SDiv, NewIntSet(10, -10), RangeSet(-1, 1))
	require.NoError(t, err)
	assert.Equal(t, []int64{-10, 10}, image.Values())

	image, err = Image(program.Shl, Singleton(1), NewIntSet(-1, 2, 64))
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, image.Values())

	image, err = Image(program.Add, IntSet{}, Singleton(1))
	require.NoError(t, err)
	assert.True(t, image.Empty())
}

// TestImageRangeTooLarge ensures an image over more than MaxRangeSize pairs is refused instead of computed.
func TestImageRangeTooLarge(t *testing.T) {
	// Exactly at the limit is still computed
	image, err := Image(program.Add, RangeSet(0, 1<<10-1), RangeSet(0, 1<<10-1))
	require.NoError(t, err)
	assert.Equal(t, 1<<11-1, image.Len())

	_, err = Image(program.Mul, RangeSet(0, 1<<10), RangeSet(0, 1<<10-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRangeTooLarge)

	var rangeErr *RangeTooLargeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, program.Mul, rangeErr.Op)
	assert.Equal(t, 1<<10+1, rangeErr.Left)
	assert.Equal(t, 1<<10, rangeErr.Right)
}

// TestSatisfyingMatchesCrossProduct ensures the bound-based restriction equals a scan of every value pair.
func TestSatisfyingMatchesCrossProduct(t *testing.T) {
	sets := []IntSet{
		Singleton(0),
		Singleton(3),
		RangeSet(-2, 2),
		NewIntSet(-5, 1, 4),
		RangeSet(0, 6),
	}
	for _, predicate := range program.Predicates {
		for _, left := range sets {
			for _, right := range sets {
				expected := left.Filter(func(l int64) bool {
					for _, r := range right.Values() {
						if predicate.Holds(l, r) {
							return true
						}
					}
					return false
				})
				actual := Satisfying(predicate, left, right)
				assert.True(t, expected.Equal(actual), "%s %s %s: expected %s, got %s", left, predicate, right, expected, actual)
			}
		}
	}

	assert.True(t, Satisfying(program.EQ, RangeSet(0, 3), IntSet{}).Empty())
}

// TestIntSetString ensures consecutive runs are collapsed when rendering.
func TestIntSetString(t *testing.T) {
	assert.Equal(t, "{-3, 0..5, 9}", NewIntSet(9, 0, 1, 2, 3, 4, 5, -3, 2).String())
	assert.Equal(t, "{}", IntSet{}.String())
	assert.Equal(t, 4, RangeSet(-1, 2).Len())
	assert.True(t, RangeSet(2, 1).Empty())
}
