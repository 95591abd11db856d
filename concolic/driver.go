package concolic

import (
	"math/rand"
	"time"

	"github.com/concolic-labs/pathfinder/concolic/config"
	"github.com/concolic-labs/pathfinder/concolic/corpus"
	"github.com/concolic-labs/pathfinder/concolic/coverage"
	"github.com/concolic-labs/pathfinder/interpreter"
	"github.com/concolic-labs/pathfinder/logging"
	"github.com/concolic-labs/pathfinder/logging/colors"
	"github.com/concolic-labs/pathfinder/program"
	"github.com/concolic-labs/pathfinder/solver"
	"github.com/concolic-labs/pathfinder/trace"
	"github.com/concolic-labs/pathfinder/utils"
	"github.com/concolic-labs/pathfinder/utils/randomutils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

// Driver explores the paths of a Program by alternating concrete execution and interval solving: each iteration
// executes the current input, negates the last branch decision over inputs and solves for an input that takes the
// other branch. A Driver owns all state of its runs; several Drivers may explore the same Program concurrently.
type Driver struct {
	// program describes the control-flow graph under exploration
	program *program.Program

	// config describes the exploration settings
	config config.ExplorationConfig

	// inputs lists the input variables, in the order they are seeded
	inputs []string

	// interpreter executes the program along single paths
	interpreter *interpreter.Interpreter

	// corpus optionally persists discovered paths
	corpus *corpus.Corpus

	// programID identifies the program within the corpus
	programID string

	// metrics describes the metrics of the current or last run
	metrics *DriverMetrics

	// logger describes the Driver's log object that can be used to log important events
	logger *logging.Logger

	// Events describes the event system for the Driver.
	Events DriverEvents

	// Hooks describes the replaceable functions used by the Driver.
	Hooks DriverHooks
}

// NewDriver creates a Driver for the given Program. Input variables are taken from cfg.InputVariables if provided,
// and otherwise discovered as the names declared in the entry block that start with cfg.InputPrefix. A nil logger
// selects a sub-logger of logging.GlobalLogger.
func NewDriver(prog *program.Program, cfg config.ExplorationConfig, logger *logging.Logger) (*Driver, error) {
	if prog == nil {
		return nil, errors.New("a program is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.GlobalLogger.NewSubLogger("module", logging.EXPLORATION_SERVICE)
	}

	// Resolve our input variables
	var inputs []string
	if len(cfg.InputVariables) > 0 {
		inputs = utils.SortedUnique(cfg.InputVariables)
		for _, name := range inputs {
			if !prog.IsDeclared(name) {
				return nil, errors.Errorf("input variable %q is not declared by the program", name)
			}
		}
	} else {
		inputs = prog.InputVariables(cfg.InputPrefix)
	}

	return &Driver{
		program:     prog,
		config:      cfg,
		inputs:      inputs,
		interpreter: interpreter.NewInterpreter(prog, cfg.MaxBlockSteps, logger.NewSubLogger("module", logging.INTERPRETER_SERVICE)),
		metrics:     &DriverMetrics{},
		logger:      logger,
		Hooks: DriverHooks{
			SelectObligationFunc: SelectLastObligation,
		},
	}, nil
}

// Inputs returns the input variables of the Driver.
func (d *Driver) Inputs() []string {
	return append([]string(nil), d.inputs...)
}

// Program returns the Program under exploration.
func (d *Driver) Program() *program.Program {
	return d.program
}

// Metrics returns the metrics of the current or last run.
func (d *Driver) Metrics() *DriverMetrics {
	return d.metrics
}

// AttachCorpus makes subsequent runs persist every discovered path to c under the given program identifier.
func (d *Driver) AttachCorpus(c *corpus.Corpus, programID string) {
	d.corpus = c
	d.programID = programID
}

// run holds the state of a single call to Driver.Run.
type run struct {
	result         *Result
	seen           map[string]int
	coverage       *coverage.BlockCoverage
	solver         *solver.Solver
	randomProvider *rand.Rand
	logger         *logging.Logger
}

// Run explores the Program until a path repeats, no input-relevant branch is left to negate, the iteration budget is
// exhausted, an execution or solve fails, or ctx is done. Execution and solver failures do not produce an error: the
// Result holds the paths found so far with the failure in Result.Err. An error is only returned if the run could not be set up or an
// event subscriber failed, in which case the partial Result is still returned.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	// If we set a timeout, create the timeout context now, as we're about to begin exploring.
	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(d.config.Timeout)*time.Second)
		defer cancel()
	}

	r, err := d.newRun()
	if err != nil {
		return nil, err
	}
	d.metrics = &DriverMetrics{}

	r.logger.Info("Exploring ", colors.Bold, d.program.BlockCount(), colors.Reset, " block(s) over input(s) ", d.inputs,
		logging.StructuredLogInfo{"min": d.config.MinRange, "max": d.config.MaxRange})

	// Publish a starting event.
	if err = d.Events.ExplorationStarting.Publish(ExplorationStartingEvent{Driver: d, Inputs: d.Inputs()}); err != nil {
		return d.finish(r, StopReasonEventHandlerError, err)
	}

	assignment := d.seed(r.randomProvider)
	for iteration := 0; ; iteration++ {
		if done, timedOut := utils.CheckContextDone(ctx); done {
			if timedOut {
				return d.finish(r, StopReasonTimeout, nil)
			}
			return d.finish(r, StopReasonCancelled, nil)
		}
		if iteration >= d.config.MaxIterations {
			return d.finish(r, StopReasonBudgetExhausted, nil)
		}
		d.metrics.iterations.Add(1)
		r.result.Iterations = iteration + 1
		r.result.LastInput = assignment.Clone()

		// Interpret
		exec, execErr := d.interpreter.Execute(d.program.Entry(), assignment)
		d.metrics.executions.Add(1)
		if execErr != nil {
			r.result.Err = execErr
			r.result.FailedInput = assignment.Clone()
			r.logger.Error("Execution of input ", assignment, " failed after path ", exec.Path, execErr)
			return d.finish(r, StopReasonExecutionFailed, nil)
		}

		// Check for a duplicate path
		hash := exec.Path.Hash()
		if first, seen := r.seen[hash]; seen {
			r.logger.Debug("Input ", assignment, " repeats the path of iteration ", first)
			return d.finish(r, StopReasonDuplicatePath, nil)
		}
		r.seen[hash] = iteration

		pathResult := PathResult{Input: assignment.Clone(), Path: exec.Path, Iteration: iteration}
		if err = d.recordPath(r, pathResult, exec.Obligations, hash); err != nil {
			return d.finish(r, StopReasonEventHandlerError, err)
		}

		// Select and negate
		candidates := FilterInputRelevant(exec.Obligations, d.inputs)
		selected := -1
		if len(candidates) > 0 {
			selected = d.Hooks.SelectObligationFunc(d, candidates)
		}
		if selected < 0 || selected >= len(candidates) {
			return d.finish(r, StopReasonNoNegatableBranch, nil)
		}
		query := negateAt(candidates, selected)
		r.logger.Debug("Negating ", query[selected].Compare, " at block ", query[selected].Block)

		// Solve
		solution, solveErr := r.solver.Solve(query)
		d.metrics.solves.Add(1)
		if solveErr != nil {
			if !errors.Is(solveErr, solver.ErrPartialFailure) {
				r.result.Err = solveErr
				r.logger.Error("Solving ", query[selected].Compare, " at block ", query[selected].Block, " failed", solveErr)
				return d.finish(r, StopReasonSolverFailed, nil)
			}
			d.metrics.partialFailures.Add(1)
			r.logger.Warn("Solving ", query[selected].Compare, " left variables unassigned", solveErr)
		}

		// Inputs the solver could not assign keep their previous value
		next := assignment.Clone()
		for _, name := range d.inputs {
			if v, ok := solution.Assignment[name]; ok {
				next[name] = v
			}
		}
		assignment = next
	}
}

// newRun sets up the state of a run.
func (d *Driver) newRun() (*run, error) {
	runID := uuid.New()
	logger := d.logger.NewSubLogger("run", runID.String())

	randomProvider := randomutils.NewRandomProvider(d.config.Seed)
	s, err := solver.NewSolver(d.config.MinRange, d.config.MaxRange, randomutils.ForkRandomProvider(randomProvider),
		logger.NewSubLogger("module", logging.SOLVER_SERVICE))
	if err != nil {
		return nil, err
	}

	return &run{
		result: &Result{
			RunID:  runID,
			Inputs: d.Inputs(),
			Paths:  make([]PathResult, 0),
		},
		seen:           make(map[string]int),
		coverage:       coverage.NewBlockCoverage(d.program),
		solver:         s,
		randomProvider: randomProvider,
		logger:         logger,
	}, nil
}

// seed draws one uniform value in [MinRange, MaxRange] for every input variable.
func (d *Driver) seed(randomProvider *rand.Rand) trace.Assignment {
	assignment := make(trace.Assignment, len(d.inputs))
	for _, name := range d.inputs {
		assignment[name] = randomutils.Int64InRange(randomProvider, d.config.MinRange, d.config.MaxRange)
	}
	return assignment
}

// recordPath appends a new path to the result, updates coverage, persists it to the corpus and publishes it.
func (d *Driver) recordPath(r *run, pathResult PathResult, obligations []trace.Obligation, hash string) error {
	r.result.Paths = append(r.result.Paths, pathResult)

	newCoverage, err := r.coverage.Update(pathResult.Path)
	if err != nil {
		return err
	}
	r.logger.Info("Path ", colors.Bold, len(r.result.Paths), colors.Reset, " ", pathResult.Input, ": ", pathResult.Path)

	if d.corpus != nil {
		entry := corpus.Entry{
			PathHash:     hash,
			Path:         utils.SliceSelect(pathResult.Path, func(id program.BlockID) string { return string(id) }),
			Input:        pathResult.Input,
			RunID:        r.result.RunID.String(),
			Iteration:    pathResult.Iteration,
			DiscoveredAt: time.Now().Unix(),
		}
		// A corpus failure must not end the exploration
		if _, err := d.corpus.Add(d.programID, entry); err != nil {
			r.logger.Error("Failed to store path in corpus", err)
		}
	}

	return d.Events.PathDiscovered.Publish(PathDiscoveredEvent{
		Driver:      d,
		Path:        pathResult,
		Obligations: obligations,
		NewCoverage: newCoverage,
	})
}

// finish completes the result of a run and publishes the stopping event.
func (d *Driver) finish(r *run, reason StopReason, err error) (*Result, error) {
	r.result.StopReason = reason
	if err != nil && r.result.Err == nil {
		r.result.Err = err
	}
	r.result.Coverage = r.coverage.Percent()

	r.logger.Info("Exploration stopped (", reason, ") with ", colors.Bold, len(r.result.Paths), colors.Reset,
		" path(s) and ", r.result.Coverage.StringFixed(2), "% block coverage")

	stoppingErr := d.Events.ExplorationStopping.Publish(ExplorationStoppingEvent{Driver: d, Result: r.result})
	if err == nil {
		err = stoppingErr
	}
	return r.result, err
}
