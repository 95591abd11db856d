package solver

import (
	"fmt"
	"strings"

	"github.com/concolic-labs/pathfinder/program"
	"github.com/pkg/errors"
)

// ErrPartialFailure is matched by every PartialFailureError through errors.Is.
var ErrPartialFailure = errors.New("partial failure")

// PartialFailureError describes a solve in which some variables were left without any admissible value. The other
// variables of the solve were still assigned.
type PartialFailureError struct {
	// Variables lists the names with an empty range, in ascending order
	Variables []string
}

// Error returns the error message.
func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("no admissible value for %s", strings.Join(e.Variables, ", "))
}

// Is reports whether target is ErrPartialFailure.
func (e *PartialFailureError) Is(target error) bool {
	return target == ErrPartialFailure
}

// ErrRangeTooLarge is matched by every RangeTooLargeError through errors.Is.
var ErrRangeTooLarge = errors.New("range too large")

// RangeTooLargeError describes a binary operation whose operand ranges were too large to compute the image of.
type RangeTooLargeError struct {
	// Op is the operator of the expression
	Op program.Op

	// Left and Right are the sizes of the operand ranges
	Left, Right int
}

// Error returns the error message.
func (e *RangeTooLargeError) Error() string {
	return fmt.Sprintf("image of %s over %d x %d values exceeds %d pairs", e.Op.Name(), e.Left, e.Right, MaxRangeSize)
}

// Is reports whether target is ErrRangeTooLarge.
func (e *RangeTooLargeError) Is(target error) bool {
	return target == ErrRangeTooLarge
}
