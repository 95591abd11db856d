package program

import (
	"fmt"
	"strconv"
)

// Expr is a value expression. The set of implementations is closed: Const, Var and BinOp.
type Expr interface {
	expr()
	String() string
}

func (Const) expr() {}
func (Var) expr()   {}
func (BinOp) expr() {}

// Const is an integer literal.
type Const struct {
	Value int64
}

// String returns the decimal form of the literal.
func (e Const) String() string {
	return strconv.FormatInt(e.Value, 10)
}

// Var is a read of a named variable.
type Var struct {
	Name string
}

// String returns the variable name.
func (e Var) String() string {
	return e.Name
}

// BinOp applies Op to two operand expressions.
type BinOp struct {
	Op    Op
	Left  Expr
	Right Expr
}

// String returns the infix form of the operation, parenthesizing nested operands.
func (e BinOp) String() string {
	return fmt.Sprintf("%s %s %s", operandString(e.Left), e.Op, operandString(e.Right))
}

func operandString(e Expr) string {
	if _, ok := e.(BinOp); ok {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// Depth returns the operator nesting depth of e: zero for Const and Var, one for a BinOp over leaves, and so on.
func Depth(e Expr) int {
	switch e := e.(type) {
	case Const, Var:
		return 0
	case BinOp:
		return 1 + max(Depth(e.Left), Depth(e.Right))
	default:
		panic("unreachable")
	}
}

// Variables returns the names of the variables read by e, in left-to-right order, possibly with duplicates.
func Variables(e Expr) []string {
	switch e := e.(type) {
	case Const:
		return nil
	case Var:
		return []string{e.Name}
	case BinOp:
		return append(Variables(e.Left), Variables(e.Right)...)
	default:
		panic("unreachable")
	}
}
