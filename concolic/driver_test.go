package concolic

import (
	"math/rand"
	"testing"

	"github.com/concolic-labs/pathfinder/concolic/config"
	"github.com/concolic-labs/pathfinder/concolic/corpus"
	"github.com/concolic-labs/pathfinder/interpreter"
	"github.com/concolic-labs/pathfinder/program"
	"github.com/concolic-labs/pathfinder/program/programfile"
	"github.com/concolic-labs/pathfinder/solver"
	"github.com/concolic-labs/pathfinder/trace"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

const thresholdProgram = `
entry: entry
blocks:
  - id: entry
    instructions:
      - declare: a1
      - compare: a1 > 5
    successors: [then, else]
  - id: then
    successors: [exit]
  - id: else
    successors: [exit]
  - id: exit
`

const nestedProgram = `
entry: entry
blocks:
  - id: entry
    instructions:
      - declare: a1
      - declare: a2
      - compare: a1 > 0
    successors: [inner, low]
  - id: inner
    instructions:
      - compare: a2 == 3
    successors: [hit, miss]
  - id: low
    successors: [exit]
  - id: hit
    successors: [exit]
  - id: miss
    successors: [exit]
  - id: exit
`

// newTestDriver decodes a program and creates a Driver for it with a fixed seed.
func newTestDriver(t *testing.T, document string, configure func(cfg *config.ExplorationConfig)) *Driver {
	prog, err := programfile.Decode([]byte(document))
	require.NoError(t, err)

	seed := int64(1234)
	cfg := config.GetDefaultProjectConfig().Exploration
	cfg.Seed = &seed
	if configure != nil {
		configure(&cfg)
	}

	driver, err := NewDriver(prog, cfg, nil)
	require.NoError(t, err)
	return driver
}

// assertPathsReplay ensures every reported path is distinct and is reproduced by executing its input.
func assertPathsReplay(t *testing.T, driver *Driver, result *Result) {
	interp := interpreter.NewInterpreter(driver.Program(), 0, nil)
	seen := make(map[string]bool)
	for _, p := range result.Paths {
		hash := p.Path.Hash()
		assert.False(t, seen[hash], "path %s reported twice", p.Path)
		seen[hash] = true

		exec, err := interp.Execute(driver.Program().Entry(), p.Input)
		require.NoError(t, err)
		assert.True(t, exec.Path.Equal(p.Path), "input %s replays %s instead of %s", p.Input, exec.Path, p.Path)
	}
}

// TestExploreThreshold ensures a single input branch is explored on both sides before the run stops on a repeated path.
func TestExploreThreshold(t *testing.T) {
	driver := newTestDriver(t, thresholdProgram, nil)
	assert.Equal(t, []string{"a1"}, driver.Inputs())

	result, err := driver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StopReasonDuplicatePath, result.StopReason)
	assert.NoError(t, result.Err)
	require.Len(t, result.Paths, 2)
	assert.Equal(t, "100", result.Coverage.String())
	assert.Equal(t, 3, result.Iterations)
	assertPathsReplay(t, driver, result)

	for _, p := range result.Paths {
		if p.Path.Contains("then") {
			assert.Greater(t, p.Input["a1"], int64(5))
		} else {
			assert.LessOrEqual(t, p.Input["a1"], int64(5))
		}
		assert.GreaterOrEqual(t, p.Input["a1"], int64(-100))
		assert.LessOrEqual(t, p.Input["a1"], int64(100))
	}

	assert.EqualValues(t, 3, driver.Metrics().Iterations())
	assert.EqualValues(t, 3, driver.Metrics().Executions())
	assert.EqualValues(t, 2, driver.Metrics().Solves())
}

// TestNegationFlow ensures an observed false branch is turned into an input that takes the true branch.
func TestNegationFlow(t *testing.T) {
	prog, err := programfile.Decode([]byte(thresholdProgram))
	require.NoError(t, err)

	exec, err := interpreter.NewInterpreter(prog, 0, nil).Execute(prog.Entry(), trace.Assignment{"a1": 2})
	require.NoError(t, err)
	assert.Equal(t, trace.Path{"entry", "else", "exit"}, exec.Path)

	candidates := FilterInputRelevant(exec.Obligations, []string{"a1"})
	require.Len(t, candidates, 1)
	query := negateAt(candidates, SelectLastObligation(nil, candidates))
	assert.Equal(t, "(a1 > 5)", query[0].Compare.String())

	s, err := solver.NewSolver(-100, 100, rand.New(rand.NewSource(2)), nil)
	require.NoError(t, err)
	solution, err := s.Solve(query)
	require.NoError(t, err)
	r, _ := solution.Ranges.Get("a1")
	assert.Equal(t, "{6..100}", r.String())

	exec, err = interpreter.NewInterpreter(prog, 0, nil).Execute(prog.Entry(), solution.Assignment)
	require.NoError(t, err)
	assert.Equal(t, trace.Path{"entry", "then", "exit"}, exec.Path)
}

// TestExploreNested ensures nested branches over two inputs yield distinct, replayable paths.
func TestExploreNested(t *testing.T) {
	driver := newTestDriver(t, nestedProgram, nil)
	assert.Equal(t, []string{"a1", "a2"}, driver.Inputs())

	result, err := driver.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StopReasonDuplicatePath, result.StopReason)
	assert.GreaterOrEqual(t, len(result.Paths), 2)
	assert.LessOrEqual(t, len(result.Paths), 3)
	assertPathsReplay(t, driver, result)

	// The inner branch is explored on both sides once it is reached
	hit, miss := false, false
	for _, p := range result.Paths {
		hit = hit || p.Path.Contains("hit")
		miss = miss || p.Path.Contains("miss")
	}
	assert.True(t, hit)
	assert.True(t, miss)
}

// TestExploreDeterministic ensures equal seeds explore the same paths with the same inputs.
func TestExploreDeterministic(t *testing.T) {
	first, err := newTestDriver(t, nestedProgram, nil).Run(context.Background())
	require.NoError(t, err)
	second, err := newTestDriver(t, nestedProgram, nil).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, len(first.Paths), len(second.Paths))
	for i := range first.Paths {
		assert.Equal(t, first.Paths[i].Input, second.Paths[i].Input)
		assert.Equal(t, first.Paths[i].Path, second.Paths[i].Path)
	}
	assert.NotEqual(t, first.RunID, second.RunID)
}

// TestExploreStraightLine ensures a program without input branches yields its only path.
func TestExploreStraightLine(t *testing.T) {
	driver := newTestDriver(t, `
entry: entry
blocks:
  - id: entry
    instructions:
      - declare: a1
      - declare: t
      - assign: t = 4
      - compare: t > 3
    successors: [exit, exit]
  - id: exit
`, nil)

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopReasonNoNegatableBranch, result.StopReason)
	require.Len(t, result.Paths, 1)
	assert.Equal(t, trace.Path{"entry", "exit"}, result.Paths[0].Path)
	assert.Equal(t, "100", result.Coverage.String())
}

// TestExploreBudget ensures the run stops with the paths found so far once the iteration budget is spent.
func TestExploreBudget(t *testing.T) {
	driver := newTestDriver(t, thresholdProgram, func(cfg *config.ExplorationConfig) {
		cfg.MaxIterations = 1
	})

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopReasonBudgetExhausted, result.StopReason)
	assert.Len(t, result.Paths, 1)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, "75", result.Coverage.String())
}

// TestExploreExecutionFailure ensures a failing execution stops the run and reports the failing input.
func TestExploreExecutionFailure(t *testing.T) {
	driver := newTestDriver(t, `
entry: entry
blocks:
  - id: entry
    instructions:
      - declare: a1
      - assign: q = 10 / a1
`, func(cfg *config.ExplorationConfig) {
		cfg.MinRange = 0
		cfg.MaxRange = 0
	})

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopReasonExecutionFailed, result.StopReason)
	assert.ErrorIs(t, result.Err, interpreter.ErrDivisionByZero)
	assert.Equal(t, trace.Assignment{"a1": 0}, result.FailedInput)
	assert.Empty(t, result.Paths)
}

// TestExploreNonTermination ensures an execution exceeding the block step cap stops the run as a failed execution.
func TestExploreNonTermination(t *testing.T) {
	driver := newTestDriver(t, `
entry: entry
blocks:
  - id: entry
    instructions:
      - declare: a1
    successors: [loop]
  - id: loop
    instructions:
      - compare: a1 > -1000
    successors: [loop, exit]
  - id: exit
`, func(cfg *config.ExplorationConfig) {
		cfg.MaxBlockSteps = 5
	})

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopReasonExecutionFailed, result.StopReason)
	assert.ErrorIs(t, result.Err, interpreter.ErrNonTermination)

	var nonTermination *interpreter.NonTerminationError
	require.True(t, errors.As(result.Err, &nonTermination))
	assert.Equal(t, 5, nonTermination.Steps)

	assert.Empty(t, result.Paths)
	assert.Equal(t, result.LastInput, result.FailedInput)
	assert.Contains(t, result.FailedInput, "a1")
}

// TestExplorePartialFailureKeepsInput ensures an unsatisfiable negation keeps the previous input, which then repeats
// its path.
func TestExplorePartialFailureKeepsInput(t *testing.T) {
	driver := newTestDriver(t, `
entry: entry
blocks:
  - id: entry
    instructions:
      - declare: a1
      - compare: a1 > 0
    successors: [inner, low]
  - id: inner
    instructions:
      - compare: a1 > 0
    successors: [deep, dead]
  - id: low
    successors: [exit]
  - id: deep
    successors: [exit]
  - id: dead
    successors: [exit]
  - id: exit
`, nil)

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopReasonDuplicatePath, result.StopReason)
	assert.NoError(t, result.Err)
	assert.EqualValues(t, 1, driver.Metrics().PartialFailures())
	assertPathsReplay(t, driver, result)

	// The positive path is found last, and negating its second "a1 > 0" leaves a1 without a value
	require.NotEmpty(t, result.Paths)
	last := result.Paths[len(result.Paths)-1]
	assert.True(t, last.Path.Contains("deep"))
	assert.Greater(t, last.Input["a1"], int64(0))
	assert.Equal(t, last.Input, result.LastInput)
	assert.Equal(t, len(result.Paths)+1, result.Iterations)

	for _, p := range result.Paths {
		assert.False(t, p.Path.Contains("dead"))
	}
}

// TestExploreGrowingLoopRange ensures a loop that multiplies an input by itself stops the run once its range grows
// too large to solve, keeping the paths found before.
func TestExploreGrowingLoopRange(t *testing.T) {
	driver := newTestDriver(t, `
entry: entry
blocks:
  - id: entry
    instructions:
      - declare: a1
      - declare: a2
      - declare: i
      - assign: i = 0
    successors: [loop]
  - id: loop
    instructions:
      - assign: a1 = a1 * a2
      - compare: a2 > -1000
    successors: [step, exit]
  - id: step
    instructions:
      - assign: i = i + 1
      - compare: i < 4
    successors: [loop, exit]
  - id: exit
`, nil)
	assert.Equal(t, []string{"a1", "a2"}, driver.Inputs())

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopReasonSolverFailed, result.StopReason)
	assert.ErrorIs(t, result.Err, solver.ErrRangeTooLarge)
	assert.EqualValues(t, 0, driver.Metrics().PartialFailures())
	assert.EqualValues(t, 1, driver.Metrics().Solves())

	require.Len(t, result.Paths, 1)
	assert.Equal(t, trace.Path{"entry", "loop", "step", "loop", "step", "loop", "step", "loop", "step", "exit"},
		result.Paths[0].Path)
	assert.Equal(t, result.Paths[0].Input, result.LastInput)
	assertPathsReplay(t, driver, result)
}

// TestExploreCancelled ensures a cancelled context stops the run before any execution.
func TestExploreCancelled(t *testing.T) {
	driver := newTestDriver(t, thresholdProgram, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := driver.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, StopReasonCancelled, result.StopReason)
	assert.Empty(t, result.Paths)
	assert.True(t, result.Coverage.IsZero())
}

// TestFilterInputRelevant ensures only comparisons between inputs and constants are kept for negation.
func TestFilterInputRelevant(t *testing.T) {
	obligation := func(left program.Expr, right program.Expr) trace.Obligation {
		return trace.Obligation{Block: "b", Compare: program.Compare{Predicate: program.EQ, Left: left, Right: right}}
	}
	a, b, tmp := program.Var{Name: "a"}, program.Var{Name: "b"}, program.Var{Name: "tmp"}
	one := program.Const{Value: 1}
	sum := program.BinOp{Op: program.Add, Left: a, Right: one}

	obligations := []trace.Obligation{
		obligation(a, one),
		obligation(one, b),
		obligation(a, b),
		obligation(a, tmp),
		obligation(tmp, one),
		obligation(sum, one),
		obligation(one, one),
	}
	filtered := FilterInputRelevant(obligations, []string{"a", "b"})
	assert.Equal(t, obligations[:3], filtered)
}

// TestDriverHooksAndEvents ensures the selection hook and the event emitters are used by a run.
func TestDriverHooksAndEvents(t *testing.T) {
	driver := newTestDriver(t, thresholdProgram, nil)

	started, discovered := 0, 0
	var stopped *Result
	driver.Events.ExplorationStarting.Subscribe(func(event ExplorationStartingEvent) error {
		started++
		assert.Equal(t, []string{"a1"}, event.Inputs)
		return nil
	})
	driver.Events.PathDiscovered.Subscribe(func(event PathDiscoveredEvent) error {
		discovered++
		assert.True(t, event.NewCoverage)
		assert.Len(t, event.Obligations, 1)
		return nil
	})
	driver.Events.ExplorationStopping.Subscribe(func(event ExplorationStoppingEvent) error {
		stopped = event.Result
		return nil
	})

	// A hook that declines to negate stops the run after the first path
	driver.Hooks.SelectObligationFunc = func(_ *Driver, _ []trace.Obligation) int {
		return -1
	}

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StopReasonNoNegatableBranch, result.StopReason)
	assert.Equal(t, 1, started)
	assert.Equal(t, 1, discovered)
	assert.Same(t, result, stopped)
}

// TestDriverEventHandlerError ensures a failing subscriber stops the run and surfaces its error.
func TestDriverEventHandlerError(t *testing.T) {
	driver := newTestDriver(t, thresholdProgram, nil)
	handlerErr := errors.New("subscriber failed")
	driver.Events.PathDiscovered.Subscribe(func(event PathDiscoveredEvent) error {
		return handlerErr
	})

	result, err := driver.Run(context.Background())
	assert.ErrorIs(t, err, handlerErr)
	require.NotNil(t, result)
	assert.Equal(t, StopReasonEventHandlerError, result.StopReason)
	assert.Len(t, result.Paths, 1)
}

// TestDriverCorpus ensures every discovered path is persisted to an attached corpus.
func TestDriverCorpus(t *testing.T) {
	c, err := corpus.Open(t.TempDir(), nil)
	require.NoError(t, err)
	defer c.Close()

	driver := newTestDriver(t, thresholdProgram, nil)
	driver.AttachCorpus(c, "threshold")

	result, err := driver.Run(context.Background())
	require.NoError(t, err)

	entries, err := c.Entries("threshold")
	require.NoError(t, err)
	require.Len(t, entries, len(result.Paths))
	for _, entry := range entries {
		assert.Equal(t, result.RunID.String(), entry.RunID)
	}
}

// TestNewDriverInputs ensures explicit input variables must be declared and override prefix discovery.
func TestNewDriverInputs(t *testing.T) {
	driver := newTestDriver(t, nestedProgram, func(cfg *config.ExplorationConfig) {
		cfg.InputVariables = []string{"a2", "a2"}
	})
	assert.Equal(t, []string{"a2"}, driver.Inputs())

	prog, err := programfile.Decode([]byte(nestedProgram))
	require.NoError(t, err)
	cfg := config.GetDefaultProjectConfig().Exploration
	cfg.InputVariables = []string{"nope"}
	_, err = NewDriver(prog, cfg, nil)
	assert.Error(t, err)

	cfg.InputVariables = nil
	cfg.MaxIterations = 0
	_, err = NewDriver(prog, cfg, nil)
	assert.Error(t, err)
}
