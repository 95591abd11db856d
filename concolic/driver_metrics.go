package concolic

import "sync/atomic"

// DriverMetrics represents the metrics of a Driver run. They may be read while the run is in progress.
type DriverMetrics struct {
	// iterations describes the amount of driver iterations that were started
	iterations atomic.Uint64

	// executions describes the amount of interpreter executions
	executions atomic.Uint64

	// solves describes the amount of solver invocations
	solves atomic.Uint64

	// partialFailures describes the amount of solves that left at least one variable without a value
	partialFailures atomic.Uint64
}

// Iterations returns the amount of driver iterations that were started.
func (m *DriverMetrics) Iterations() uint64 {
	return m.iterations.Load()
}

// Executions returns the amount of interpreter executions.
func (m *DriverMetrics) Executions() uint64 {
	return m.executions.Load()
}

// Solves returns the amount of solver invocations.
func (m *DriverMetrics) Solves() uint64 {
	return m.solves.Load()
}

// PartialFailures returns the amount of solves that left at least one variable without a value.
func (m *DriverMetrics) PartialFailures() uint64 {
	return m.partialFailures.Load()
}
