package trace

import (
	"strings"

	"github.com/concolic-labs/pathfinder/program"
)

// Obligation records a branch decision made by an execution: the comparison of the block with the predicate that
// actually held, and the assignments executed earlier in the same block. Obligations are values and are never
// mutated once recorded; Negated returns a new one.
type Obligation struct {
	// Block is the block the comparison terminates
	Block program.BlockID

	// Compare is the comparison as it held during execution. If the false branch was taken, its predicate is the
	// negation of the one in the program.
	Compare program.Compare

	// TrueBranch is whether the true successor of the block was taken
	TrueBranch bool

	// Stores lists the assignments that preceded the comparison in its block, in execution order
	Stores []program.Assign
}

// Negated returns the obligation that holds on the other branch of the same block.
func (o Obligation) Negated() Obligation {
	return Obligation{
		Block:      o.Block,
		Compare:    o.Compare.Negate(),
		TrueBranch: !o.TrueBranch,
		Stores:     o.Stores,
	}
}

// String returns the stores and comparison of the obligation, e.g. "y = x + 1; (y > 5)".
func (o Obligation) String() string {
	var sb strings.Builder
	for _, s := range o.Stores {
		sb.WriteString(s.String())
		sb.WriteString("; ")
	}
	sb.WriteString(o.Compare.String())
	return sb.String()
}
