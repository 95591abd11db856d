package concolic

import (
	"github.com/concolic-labs/pathfinder/program"
	"github.com/concolic-labs/pathfinder/trace"
	"github.com/concolic-labs/pathfinder/utils"
)

// IsInputRelevant returns whether the comparison of an obligation is over input variables only: two input
// variables, or an input variable and a constant in either order. Operand expressions are not looked through.
func IsInputRelevant(obligation trace.Obligation, inputs map[string]bool) bool {
	left, right := obligation.Compare.Left, obligation.Compare.Right
	switch l := left.(type) {
	case program.Var:
		switch r := right.(type) {
		case program.Var:
			return inputs[l.Name] && inputs[r.Name]
		case program.Const:
			return inputs[l.Name]
		}
	case program.Const:
		if r, ok := right.(program.Var); ok {
			return inputs[r.Name]
		}
	}
	return false
}

// FilterInputRelevant returns the input-relevant obligations in recorded order.
func FilterInputRelevant(obligations []trace.Obligation, inputs []string) []trace.Obligation {
	inputSet := make(map[string]bool, len(inputs))
	for _, name := range inputs {
		inputSet[name] = true
	}
	return utils.SliceWhere(obligations, func(o trace.Obligation) bool {
		return IsInputRelevant(o, inputSet)
	})
}

// negateAt returns the obligations before index i followed by the negation of obligation i.
func negateAt(obligations []trace.Obligation, i int) []trace.Obligation {
	query := make([]trace.Obligation, 0, i+1)
	query = append(query, obligations[:i]...)
	return append(query, obligations[i].Negated())
}
