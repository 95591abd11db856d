package interpreter

import (
	"github.com/concolic-labs/pathfinder/program"
	"github.com/concolic-labs/pathfinder/trace"
	"github.com/pkg/errors"
)

// Evaluate computes the value of an expression under a concrete state. Reads of names without a value return an
// *UnboundVariableError; arithmetic failures return ErrDivisionByZero or ErrInvalidShift wrapped with the failing
// operation.
func Evaluate(e program.Expr, state trace.Assignment) (int64, error) {
	switch e := e.(type) {
	case program.Const:
		return e.Value, nil
	case program.Var:
		v, ok := state[e.Name]
		if !ok {
			return 0, &UnboundVariableError{Name: e.Name}
		}
		return v, nil
	case program.BinOp:
		left, err := Evaluate(e.Left, state)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(e.Right, state)
		if err != nil {
			return 0, err
		}
		v, err := e.Op.Apply(left, right)
		if err != nil {
			return 0, errors.Wrapf(err, "evaluating %d %s %d", left, e.Op, right)
		}
		return v, nil
	default:
		panic("unreachable")
	}
}

// EvaluateCompare evaluates both operands of a comparison and returns whether its predicate holds.
func EvaluateCompare(c program.Compare, state trace.Assignment) (bool, error) {
	left, err := Evaluate(c.Left, state)
	if err != nil {
		return false, err
	}
	right, err := Evaluate(c.Right, state)
	if err != nil {
		return false, err
	}
	return c.Predicate.Holds(left, right), nil
}
