package concolic

import (
	"github.com/concolic-labs/pathfinder/events"
	"github.com/concolic-labs/pathfinder/trace"
)

// DriverEvents defines event emitters for a Driver.
type DriverEvents struct {
	// ExplorationStarting emits events when the Driver has set up its run and is about to seed the first input.
	ExplorationStarting events.EventEmitter[ExplorationStartingEvent]

	// PathDiscovered emits events when an execution produced a path that was not seen before in the run.
	PathDiscovered events.EventEmitter[PathDiscoveredEvent]

	// ExplorationStopping emits events when the Driver is about to return the result of its run.
	ExplorationStopping events.EventEmitter[ExplorationStoppingEvent]
}

// ExplorationStartingEvent describes an event where a Driver is starting a run.
type ExplorationStartingEvent struct {
	// Driver represents the instance of the Driver for which the event occurred.
	Driver *Driver

	// Inputs lists the input variables of the run.
	Inputs []string
}

// PathDiscoveredEvent describes an event where a Driver found a new path.
type PathDiscoveredEvent struct {
	// Driver represents the instance of the Driver for which the event occurred.
	Driver *Driver

	// Path is the discovered path and the input that produced it.
	Path PathResult

	// Obligations lists the branch decisions of the execution.
	Obligations []trace.Obligation

	// NewCoverage indicates whether the path visited a block no earlier path visited.
	NewCoverage bool
}

// ExplorationStoppingEvent describes an event where a Driver is stopping a run.
type ExplorationStoppingEvent struct {
	// Driver represents the instance of the Driver for which the event occurred.
	Driver *Driver

	// Result is the result the run is about to return.
	Result *Result
}
