package trace

import (
	"testing"

	"github.com/concolic-labs/pathfinder/program"
	"github.com/stretchr/testify/assert"
)

// TestPathHash ensures equal paths share a hash while distinct paths, including ones with equal concatenations,
// do not.
func TestPathHash(t *testing.T) {
	a := Path{"entry", "then", "exit"}
	b := Path{"entry", "then", "exit"}
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	assert.NotEqual(t, a.Hash(), Path{"entry", "else", "exit"}.Hash())
	assert.NotEqual(t, Path{"ab", "c"}.Hash(), Path{"a", "bc"}.Hash())
	assert.NotEqual(t, Path{}.Hash(), Path{""}.Hash())

	assert.True(t, a.Contains("then"))
	assert.False(t, a.Contains("else"))
	assert.Equal(t, "entry -> then -> exit", a.String())
}

// TestAssignment ensures assignments render in sorted order and copies are independent.
func TestAssignment(t *testing.T) {
	a := Assignment{"b": -2, "a": 1}
	assert.Equal(t, "{a=1, b=-2}", a.String())
	assert.Equal(t, []string{"a", "b"}, a.Names())

	c := a.Clone()
	c["a"] = 5
	assert.EqualValues(t, 1, a["a"])
	assert.False(t, a.Equal(c))
	assert.True(t, a.Equal(a.Clone()))

	assert.Equal(t, Assignment{"b": -2}, a.Restrict([]string{"b", "missing"}))
}

// TestObligationNegated ensures negating an obligation flips its branch and predicate but keeps its stores.
func TestObligationNegated(t *testing.T) {
	o := Obligation{
		Block:      "entry",
		Compare:    program.Compare{Predicate: program.GT, Left: program.Var{Name: "y"}, Right: program.Const{Value: 5}},
		TrueBranch: true,
		Stores: []program.Assign{
			{Target: "y", Value: program.BinOp{Op: program.Add, Left: program.Var{Name: "x"}, Right: program.Const{Value: 1}}},
		},
	}
	assert.Equal(t, "y = x + 1; (y > 5)", o.String())

	n := o.Negated()
	assert.False(t, n.TrueBranch)
	assert.Equal(t, program.LE, n.Compare.Predicate)
	assert.Equal(t, o.Stores, n.Stores)
	assert.Equal(t, o, n.Negated())
}
