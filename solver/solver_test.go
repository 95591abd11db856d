package solver

import (
	"math/rand"
	"testing"

	"github.com/concolic-labs/pathfinder/program"
	"github.com/concolic-labs/pathfinder/trace"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSolver creates a Solver over [-10, 10] with a fixed seed.
func newTestSolver(t *testing.T, seed int64) *Solver {
	s, err := NewSolver(-10, 10, rand.New(rand.NewSource(seed)), nil)
	require.NoError(t, err)
	return s
}

// compare creates an obligation for a comparison between two expressions.
func compare(left program.Expr, predicate program.Predicate, right program.Expr, stores ...program.Assign) trace.Obligation {
	return trace.Obligation{
		Block:      "block",
		Compare:    program.Compare{Predicate: predicate, Left: left, Right: right},
		TrueBranch: true,
		Stores:     stores,
	}
}

// TestSolveNegatedBranch ensures negating an observed "x <= 5" decision yields an input that takes the true branch.
func TestSolveNegatedBranch(t *testing.T) {
	observed := compare(program.Var{Name: "x"}, program.LE, program.Const{Value: 5})

	solution, err := newTestSolver(t, 1).Solve([]trace.Obligation{observed.Negated()})
	require.NoError(t, err)

	r, ok := solution.Ranges.Get("x")
	require.True(t, ok)
	assert.Equal(t, "{6..10}", r.String())
	assert.GreaterOrEqual(t, solution.Assignment["x"], int64(6))
	assert.LessOrEqual(t, solution.Assignment["x"], int64(10))
	assert.Empty(t, solution.Unsatisfied)
}

// TestSolveBindsBothVariables ensures a comparison between two variables restricts both of them.
func TestSolveBindsBothVariables(t *testing.T) {
	solution, err := newTestSolver(t, 1).Solve([]trace.Obligation{
		compare(program.Var{Name: "x"}, program.LT, program.Var{Name: "y"}),
	})
	require.NoError(t, err)

	x, _ := solution.Ranges.Get("x")
	y, _ := solution.Ranges.Get("y")
	assert.Equal(t, "{-10..9}", x.String())
	assert.True(t, x.Equal(y))
	assert.Equal(t, []string{"x", "y"}, solution.Ranges.Names())
}

// TestSolveReplaysStores ensures the assignments preceding a comparison are replayed before it is applied.
func TestSolveReplaysStores(t *testing.T) {
	store := program.Assign{
		Target: "y",
		Value:  program.BinOp{Op: program.Mul, Left: program.Var{Name: "x"}, Right: program.Const{Value: 2}},
	}
	obligation := compare(program.Var{Name: "y"}, program.GE, program.Const{Value: 16}, store)

	solution, err := newTestSolver(t, 3).Solve([]trace.Obligation{obligation})
	require.NoError(t, err)
	require.Len(t, solution.Log, 1)

	entry := solution.Log[0]
	assert.Equal(t, 0, entry.Before.Len())
	assert.Equal(t, "x={-10..10} y={-20, -18, -16, -14, -12, -10, -8, -6, -4, -2, 0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20}",
		entry.AfterStores.String())
	assert.Equal(t, "x={-10..10} y={16, 18, 20}", entry.AfterCompare.String())
	assert.Contains(t, []int64{16, 18, 20}, solution.Assignment["y"])
}

// TestSolvePartialFailure ensures contradictory obligations leave a variable unassigned without discarding the others.
func TestSolvePartialFailure(t *testing.T) {
	x := program.Var{Name: "x"}
	solution, err := newTestSolver(t, 1).Solve([]trace.Obligation{
		compare(x, program.GT, program.Const{Value: 5}),
		compare(program.Var{Name: "z"}, program.EQ, program.Const{Value: 2}),
		compare(x, program.LT, program.Const{Value: 3}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPartialFailure)

	var partialErr *PartialFailureError
	require.True(t, errors.As(err, &partialErr))
	assert.Equal(t, []string{"x"}, partialErr.Variables)

	require.NotNil(t, solution)
	assert.Equal(t, []string{"x"}, solution.Unsatisfied)
	assert.Equal(t, trace.Assignment{"z": 2}, solution.Assignment)
	assert.Len(t, solution.Log, 3)
}

// TestSolveDeterministic ensures the same seed yields the same assignment.
func TestSolveDeterministic(t *testing.T) {
	obligations := []trace.Obligation{
		compare(program.Var{Name: "a"}, program.NE, program.Var{Name: "b"}),
		compare(program.Var{Name: "c"}, program.GT, program.Const{Value: -3}),
	}
	first, err := newTestSolver(t, 42).Solve(obligations)
	require.NoError(t, err)
	second, err := newTestSolver(t, 42).Solve(obligations)
	require.NoError(t, err)
	assert.Equal(t, first.Assignment, second.Assignment)
}

// TestSolveEmpty ensures an empty sequence of obligations yields an empty assignment.
func TestSolveEmpty(t *testing.T) {
	solution, err := newTestSolver(t, 1).Solve(nil)
	require.NoError(t, err)
	assert.Empty(t, solution.Assignment)
	assert.Empty(t, solution.Log)
}

// TestNewSolverValidation ensures invalid universes and missing dependencies are rejected.
func TestNewSolverValidation(t *testing.T) {
	r := rand.New(rand.NewSource(0))

	_, err := NewSolver(5, 4, r, nil)
	assert.Error(t, err)
	_, err = NewSolver(0, MaxUniverseSize, r, nil)
	assert.Error(t, err)
	_, err = NewSolver(0, 0, nil, nil)
	assert.Error(t, err)

	s, err := NewSolver(0, MaxUniverseSize-1, r, nil)
	require.NoError(t, err)
	assert.Equal(t, MaxUniverseSize, s.Universe().Len())
}

// TestIntervalMapIsPersistent ensures setting a range leaves earlier versions of the map unchanged.
func TestIntervalMapIsPersistent(t *testing.T) {
	var empty IntervalMap
	assert.Equal(t, 0, empty.Len())

	first := empty.Set("x", Singleton(1))
	second := first.Set("x", Singleton(2)).Set("a", RangeSet(0, 2))

	r, ok := first.Get("x")
	require.True(t, ok)
	assert.Equal(t, "{1}", r.String())
	assert.Equal(t, "a={0..2} x={2}", second.String())
	assert.Len(t, second.Ranges(), 2)

	_, ok = empty.Get("x")
	assert.False(t, ok)
}

// TestSolveGrowingLoopRange ensures a store that feeds a variable back into itself on every loop iteration fails with
// ErrRangeTooLarge once its range outgrows MaxRangeSize, instead of exhausting memory.
func TestSolveGrowingLoopRange(t *testing.T) {
	// The path of "loop: a1 = a1 * a2; a1 < 1000" executed with a1 = 1 and a2 = 2: nine iterations take the loop
	// branch and the tenth leaves it with a1 = 1024.
	store := program.Assign{
		Target: "a1",
		Value:  program.BinOp{Op: program.Mul, Left: program.Var{Name: "a1"}, Right: program.Var{Name: "a2"}},
	}
	stay := compare(program.Var{Name: "a1"}, program.LT, program.Const{Value: 1000}, store)
	obligations := make([]trace.Obligation, 0, 10)
	for i := 0; i < 9; i++ {
		obligations = append(obligations, stay)
	}
	obligations = append(obligations, stay.Negated())

	s, err := NewSolver(-100, 100, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)

	// A single iteration is still solvable
	solution, err := s.Solve(obligations[:1])
	require.NoError(t, err)
	assert.Less(t, solution.Assignment["a1"], int64(1000))

	solution, err = s.Solve(obligations)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRangeTooLarge)
	assert.False(t, errors.Is(err, ErrPartialFailure))
	assert.Nil(t, solution)
}
