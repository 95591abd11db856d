package program

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrDivisionByZero is returned when an SDiv is evaluated with a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// ErrInvalidShift is returned when a shift is evaluated with a count outside of [0, 63].
var ErrInvalidShift = errors.New("shift count out of range")

// Op identifies a binary arithmetic or bitwise operator.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	SDiv
	And
	Or
	Xor
	Shl
	Shr
)

var opSymbols = [...]string{
	Add:  "+",
	Sub:  "-",
	Mul:  "*",
	SDiv: "/",
	And:  "&",
	Or:   "|",
	Xor:  "^",
	Shl:  "<<",
	Shr:  ">>",
}

var opNames = [...]string{
	Add:  "add",
	Sub:  "sub",
	Mul:  "mul",
	SDiv: "sdiv",
	And:  "and",
	Or:   "or",
	Xor:  "xor",
	Shl:  "shl",
	Shr:  "shr",
}

// Ops lists every supported operator.
var Ops = []Op{Add, Sub, Mul, SDiv, And, Or, Xor, Shl, Shr}

// String returns the infix symbol of the operator.
func (o Op) String() string {
	if o < 0 || int(o) >= len(opSymbols) {
		return "?"
	}
	return opSymbols[o]
}

// Name returns the lowercase mnemonic of the operator, e.g. "sdiv".
func (o Op) Name() string {
	if o < 0 || int(o) >= len(opNames) {
		return "?"
	}
	return opNames[o]
}

// ParseOp resolves an operator from its infix symbol or its mnemonic.
func ParseOp(s string) (Op, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, op := range Ops {
		if s == opSymbols[op] || s == opNames[op] {
			return op, nil
		}
	}
	return 0, errors.Errorf("unknown operator %q", s)
}

// Apply evaluates the operator over two 64-bit signed integers with wrap-around semantics. SDiv truncates toward zero
// and returns ErrDivisionByZero for a zero divisor. Shl and Shr (arithmetic) return ErrInvalidShift when the count is
// outside of [0, 63].
func (o Op) Apply(a int64, b int64) (int64, error) {
	switch o {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case SDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case And:
		return a & b, nil
	case Or:
		return a | b, nil
	case Xor:
		return a ^ b, nil
	case Shl:
		if b < 0 || b > 63 {
			return 0, ErrInvalidShift
		}
		return a << uint(b), nil
	case Shr:
		if b < 0 || b > 63 {
			return 0, ErrInvalidShift
		}
		return a >> uint(b), nil
	default:
		panic("unreachable")
	}
}

// Predicate identifies an integer comparison.
type Predicate int

const (
	EQ Predicate = iota
	NE
	GT
	GE
	LT
	LE
)

var predicateSymbols = [...]string{
	EQ: "==",
	NE: "!=",
	GT: ">",
	GE: ">=",
	LT: "<",
	LE: "<=",
}

var predicateNames = [...]string{
	EQ: "eq",
	NE: "ne",
	GT: "gt",
	GE: "ge",
	LT: "lt",
	LE: "le",
}

// Predicates lists every supported predicate.
var Predicates = []Predicate{EQ, NE, GT, GE, LT, LE}

// String returns the infix symbol of the predicate.
func (p Predicate) String() string {
	if p < 0 || int(p) >= len(predicateSymbols) {
		return "?"
	}
	return predicateSymbols[p]
}

// ParsePredicate resolves a predicate from its infix symbol or its mnemonic.
func ParsePredicate(s string) (Predicate, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Predicates {
		if s == predicateSymbols[p] || s == predicateNames[p] {
			return p, nil
		}
	}
	return 0, errors.Errorf("unknown predicate %q", s)
}

// Negate returns the predicate that holds exactly when p does not.
func (p Predicate) Negate() Predicate {
	switch p {
	case EQ:
		return NE
	case NE:
		return EQ
	case GT:
		return LE
	case LE:
		return GT
	case GE:
		return LT
	case LT:
		return GE
	default:
		panic("unreachable")
	}
}

// Holds evaluates the predicate over a and b.
func (p Predicate) Holds(a int64, b int64) bool {
	switch p {
	case EQ:
		return a == b
	case NE:
		return a != b
	case GT:
		return a > b
	case GE:
		return a >= b
	case LT:
		return a < b
	case LE:
		return a <= b
	default:
		panic("unreachable")
	}
}
