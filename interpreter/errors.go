package interpreter

import (
	"fmt"

	"github.com/concolic-labs/pathfinder/program"
	"github.com/pkg/errors"
)

var (
	// ErrUnboundVariable is matched by every UnboundVariableError through errors.Is.
	ErrUnboundVariable = errors.New("unbound variable")

	// ErrNonTermination is matched by every NonTerminationError through errors.Is.
	ErrNonTermination = errors.New("non-termination")

	// ErrDivisionByZero is returned, wrapped with the failing block and expression, when an SDiv divisor is zero.
	ErrDivisionByZero = program.ErrDivisionByZero

	// ErrInvalidShift is returned, wrapped with the failing block and expression, when a shift count is outside of
	// [0, 63].
	ErrInvalidShift = program.ErrInvalidShift
)

// UnboundVariableError describes a read of a variable that holds no value.
type UnboundVariableError struct {
	// Name is the variable that was read
	Name string

	// Block is the block the read happened in
	Block program.BlockID
}

// Error returns the error message.
func (e *UnboundVariableError) Error() string {
	if e.Block == "" {
		return fmt.Sprintf("unbound variable %q", e.Name)
	}
	return fmt.Sprintf("unbound variable %q in block %q", e.Name, e.Block)
}

// Is reports whether target is ErrUnboundVariable.
func (e *UnboundVariableError) Is(target error) bool {
	return target == ErrUnboundVariable
}

// NonTerminationError describes an execution that visited more blocks than the interpreter allows.
type NonTerminationError struct {
	// Steps is the block step cap that was exceeded
	Steps int

	// Block is the block that would have exceeded the cap
	Block program.BlockID
}

// Error returns the error message.
func (e *NonTerminationError) Error() string {
	return fmt.Sprintf("execution exceeded %d block steps at block %q", e.Steps, e.Block)
}

// Is reports whether target is ErrNonTermination.
func (e *NonTerminationError) Is(target error) bool {
	return target == ErrNonTermination
}
