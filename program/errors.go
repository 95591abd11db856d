package program

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMalformedProgram is matched by every MalformedProgramError through errors.Is.
var ErrMalformedProgram = errors.New("malformed program")

// MalformedProgramError describes a violation of the structural rules of a Program.
type MalformedProgramError struct {
	// Block is the block the violation was found in, empty when it cannot be attributed to one.
	Block BlockID

	// Reason describes the violation.
	Reason string
}

// Error returns the error message.
func (e *MalformedProgramError) Error() string {
	if e.Block == "" {
		return fmt.Sprintf("malformed program: %s", e.Reason)
	}
	return fmt.Sprintf("malformed program: block %q: %s", e.Block, e.Reason)
}

// Is reports whether target is ErrMalformedProgram.
func (e *MalformedProgramError) Is(target error) bool {
	return target == ErrMalformedProgram
}

func malformed(block BlockID, format string, args ...any) error {
	return errors.WithStack(&MalformedProgramError{Block: block, Reason: fmt.Sprintf(format, args...)})
}
