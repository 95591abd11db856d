package concolic

import (
	"github.com/concolic-labs/pathfinder/trace"
)

// DriverHooks defines the hooks that can be used for the Driver on an API level.
type DriverHooks struct {
	// SelectObligationFunc describes the function used to pick which input-relevant obligation is negated next.
	SelectObligationFunc SelectObligationFunc
}

// SelectObligationFunc picks the obligation to negate from the input-relevant obligations of the last execution, in
// the order they were recorded. It returns the index of the chosen obligation, or -1 to stop exploring. The solver
// receives the obligations before the chosen one, followed by the negated chosen one.
type SelectObligationFunc func(driver *Driver, obligations []trace.Obligation) int

// SelectLastObligation is the default SelectObligationFunc: it negates the deepest input-relevant branch.
func SelectLastObligation(_ *Driver, obligations []trace.Obligation) int {
	return len(obligations) - 1
}
