package concolic

import (
	"github.com/concolic-labs/pathfinder/trace"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StopReason describes why an exploration run stopped.
type StopReason string

const (
	// StopReasonDuplicatePath indicates the last execution repeated the path of an earlier one.
	StopReasonDuplicatePath StopReason = "duplicate path"

	// StopReasonBudgetExhausted indicates the configured amount of iterations was reached.
	StopReasonBudgetExhausted StopReason = "budget exhausted"

	// StopReasonNoNegatableBranch indicates the last execution made no branch decision over input variables, so
	// there was nothing left to negate.
	StopReasonNoNegatableBranch StopReason = "no negatable branch"

	// StopReasonExecutionFailed indicates an execution failed. Result.Err holds the failure.
	StopReasonExecutionFailed StopReason = "execution failed"

	// StopReasonSolverFailed indicates the solver could not compute the ranges of a query, such as a range that grew
	// past solver.MaxRangeSize. Result.Err holds the failure.
	StopReasonSolverFailed StopReason = "solver failed"

	// StopReasonCancelled indicates the context of the run was cancelled.
	StopReasonCancelled StopReason = "cancelled"

	// StopReasonTimeout indicates the configured timeout elapsed.
	StopReasonTimeout StopReason = "timeout"

	// StopReasonEventHandlerError indicates an event subscriber returned an error. Result.Err holds the error.
	StopReasonEventHandlerError StopReason = "event handler error"
)

// PathResult pairs a generated input assignment with the path it drives the program along.
type PathResult struct {
	// Input is the assignment of input variables the path was produced by
	Input trace.Assignment

	// Path lists the blocks visited under Input
	Path trace.Path

	// Iteration is the driver iteration the path was discovered in
	Iteration int
}

// Result is the outcome of an exploration run. It always holds the distinct paths found before the run stopped.
type Result struct {
	// RunID identifies the run
	RunID uuid.UUID

	// Inputs lists the input variables of the run
	Inputs []string

	// Paths lists the distinct paths in discovery order
	Paths []PathResult

	// StopReason describes why the run stopped
	StopReason StopReason

	// Err holds the failure for StopReasonExecutionFailed, StopReasonSolverFailed and StopReasonEventHandlerError
	Err error

	// FailedInput holds the assignment the failing execution started from, for StopReasonExecutionFailed
	FailedInput trace.Assignment

	// LastInput holds the assignment the last execution started from. For StopReasonDuplicatePath it is the input
	// that repeated an earlier path.
	LastInput trace.Assignment

	// Coverage is the percentage of program blocks visited by Paths
	Coverage decimal.Decimal

	// Iterations is the amount of driver iterations that were started
	Iterations int
}
