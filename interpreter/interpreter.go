package interpreter

import (
	"github.com/concolic-labs/pathfinder/logging"
	"github.com/concolic-labs/pathfinder/program"
	"github.com/concolic-labs/pathfinder/trace"
	"github.com/pkg/errors"
)

// DefaultMaxSteps is the block step cap used when none is configured.
const DefaultMaxSteps = 10_000

// Interpreter executes a Program along a single path under a concrete input assignment. It holds no state across
// calls to Execute, so a single Interpreter may be shared by concurrent callers.
type Interpreter struct {
	// program is the control-flow graph to execute
	program *program.Program

	// maxSteps is the amount of blocks an execution may visit before it is considered non-terminating
	maxSteps int

	// logger describes the Interpreter's log object that can be used to log important events
	logger *logging.Logger
}

// Execution is the outcome of a single call to Interpreter.Execute.
type Execution struct {
	// Input is a copy of the assignment the execution started from
	Input trace.Assignment

	// Path lists the visited blocks in order
	Path trace.Path

	// Obligations lists the branch decisions in the order they were made
	Obligations []trace.Obligation

	// State is the concrete state when the execution stopped
	State trace.Assignment
}

// NewInterpreter creates an Interpreter for the given Program. A non-positive maxSteps selects DefaultMaxSteps and a
// nil logger selects a sub-logger of logging.GlobalLogger.
func NewInterpreter(prog *program.Program, maxSteps int, logger *logging.Logger) *Interpreter {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	if logger == nil {
		logger = logging.GlobalLogger.NewSubLogger("module", logging.INTERPRETER_SERVICE)
	}
	return &Interpreter{
		program:  prog,
		maxSteps: maxSteps,
		logger:   logger,
	}
}

// MaxSteps returns the block step cap of the Interpreter.
func (i *Interpreter) MaxSteps() int {
	return i.maxSteps
}

// Execute runs the Program from the entry block under a copy of the initial assignment until a block without
// successors is reached. On failure, the returned Execution holds the partial path and obligations up to the failing
// block together with an error matching ErrUnboundVariable, ErrDivisionByZero, ErrInvalidShift, ErrNonTermination or
// program.ErrMalformedProgram.
func (i *Interpreter) Execute(entry program.BlockID, initial trace.Assignment) (*Execution, error) {
	exec := &Execution{
		Input:       initial.Clone(),
		Path:        make(trace.Path, 0),
		Obligations: make([]trace.Obligation, 0),
		State:       initial.Clone(),
	}

	current := entry
	for {
		if len(exec.Path) >= i.maxSteps {
			return exec, errors.WithStack(&NonTerminationError{Steps: i.maxSteps, Block: current})
		}

		block, ok := i.program.Block(current)
		if !ok {
			return exec, errors.WithStack(&program.MalformedProgramError{Block: current, Reason: "block does not exist"})
		}
		exec.Path = append(exec.Path, current)

		next, err := i.step(block, exec)
		if err != nil {
			return exec, err
		}
		if next == "" {
			i.logger.Trace("Execution finished at block ", current, " after ", len(exec.Path), " step(s)")
			return exec, nil
		}
		current = next
	}
}

// step executes the instructions of a block against the execution state and returns the successor to continue at,
// or the empty identifier when the block has no successors.
func (i *Interpreter) step(block *program.BasicBlock, exec *Execution) (program.BlockID, error) {
	stores := make([]program.Assign, 0)
	for _, inst := range block.Instructions {
		switch inst := inst.(type) {
		case program.Declare:
			// Declarations only introduce a name; inputs are already bound by the initial assignment
		case program.Assign:
			v, err := Evaluate(inst.Value, exec.State)
			if err != nil {
				return "", withBlock(err, block.ID, inst)
			}
			exec.State[inst.Target] = v
			stores = append(stores, inst)
		case program.Compare:
			taken, err := EvaluateCompare(inst, exec.State)
			if err != nil {
				return "", withBlock(err, block.ID, inst)
			}

			obligation := trace.Obligation{
				Block:      block.ID,
				Compare:    inst,
				TrueBranch: taken,
				Stores:     stores,
			}
			if !taken {
				obligation.Compare = inst.Negate()
			}
			exec.Obligations = append(exec.Obligations, obligation)

			if taken {
				return block.Successors[0], nil
			}
			return block.Successors[1], nil
		default:
			panic("unreachable")
		}
	}

	switch len(block.Successors) {
	case 0:
		return "", nil
	case 1:
		return block.Successors[0], nil
	default:
		return "", errors.WithStack(&program.MalformedProgramError{Block: block.ID, Reason: "branching block without a comparison"})
	}
}

// withBlock attaches the failing block and instruction to an evaluation error.
func withBlock(err error, id program.BlockID, inst program.Instruction) error {
	var unbound *UnboundVariableError
	if errors.As(err, &unbound) {
		return errors.WithStack(&UnboundVariableError{Name: unbound.Name, Block: id})
	}
	return errors.Wrapf(err, "block %q: %s", id, inst)
}
