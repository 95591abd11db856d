package solver

import (
	"math/rand"

	"github.com/concolic-labs/pathfinder/logging"
	"github.com/concolic-labs/pathfinder/program"
	"github.com/concolic-labs/pathfinder/trace"
	"github.com/pkg/errors"
)

// MaxUniverseSize is the largest [minRange, maxRange] span a Solver accepts. Every unconstrained variable
// materializes the whole universe and binary operations scan the cross product of their operands.
const MaxUniverseSize = 1 << 12

// Solver computes input assignments that satisfy a sequence of branch obligations, approximating every variable by a
// finite set of integers inside [minRange, maxRange].
type Solver struct {
	// minRange is the smallest value of the universe
	minRange int64

	// maxRange is the largest value of the universe
	maxRange int64

	// universe is the set [minRange, maxRange], created on first use
	universe *IntSet

	// randomProvider is used to sample one value per variable
	randomProvider *rand.Rand

	// logger describes the Solver's log object that can be used to log important events
	logger *logging.Logger
}

// Solution is the outcome of a call to Solver.Solve.
type Solution struct {
	// Assignment holds one sampled value for every variable whose range is non-empty
	Assignment trace.Assignment

	// Ranges is the IntervalMap after the last obligation
	Ranges IntervalMap

	// Unsatisfied lists the variables with an empty range, in ascending order
	Unsatisfied []string

	// Log holds a RangeLogEntry for every obligation, in processing order
	Log []RangeLogEntry
}

// RangeLogEntry records the IntervalMap around the processing of one obligation.
type RangeLogEntry struct {
	// Index is the position of the obligation in the solved sequence
	Index int

	// Obligation is the obligation that was processed
	Obligation trace.Obligation

	// Before is the IntervalMap before the obligation was processed
	Before IntervalMap

	// AfterStores is the IntervalMap after the store-path prefix was replayed
	AfterStores IntervalMap

	// AfterCompare is the IntervalMap after the comparison was applied
	AfterCompare IntervalMap
}

// PartialFailure returns a *PartialFailureError naming the unsatisfied variables, or nil if every variable was
// assigned.
func (s *Solution) PartialFailure() error {
	if len(s.Unsatisfied) == 0 {
		return nil
	}
	return &PartialFailureError{Variables: append([]string(nil), s.Unsatisfied...)}
}

// NewSolver creates a Solver over the universe [minRange, maxRange] that samples with randomProvider. A nil logger
// selects a sub-logger of logging.GlobalLogger.
func NewSolver(minRange int64, maxRange int64, randomProvider *rand.Rand, logger *logging.Logger) (*Solver, error) {
	if minRange > maxRange {
		return nil, errors.Errorf("minimum range %d is greater than maximum range %d", minRange, maxRange)
	}
	if uint64(maxRange-minRange) >= MaxUniverseSize {
		return nil, errors.Errorf("range [%d, %d] holds more than %d values", minRange, maxRange, MaxUniverseSize)
	}
	if randomProvider == nil {
		return nil, errors.New("a random provider is required")
	}
	if logger == nil {
		logger = logging.GlobalLogger.NewSubLogger("module", logging.SOLVER_SERVICE)
	}
	return &Solver{
		minRange:       minRange,
		maxRange:       maxRange,
		randomProvider: randomProvider,
		logger:         logger,
	}, nil
}

// Universe returns the set [minRange, maxRange].
func (s *Solver) Universe() IntSet {
	if s.universe == nil {
		u := RangeSet(s.minRange, s.maxRange)
		s.universe = &u
	}
	return *s.universe
}

// Solve processes the obligations strictly in order. For each one it replays the store-path prefix over the
// IntervalMap, then restricts the comparison operands: the set of left operand values for which some right operand
// value satisfies the predicate becomes the range of both named operands. Finally one value is sampled for every
// variable. Variables left with an empty range are reported in the Solution and through a *PartialFailureError,
// which does not invalidate the values sampled for the other variables. If a range grows past MaxRangeSize, no
// Solution is produced and a *RangeTooLargeError is returned.
func (s *Solver) Solve(obligations []trace.Obligation) (*Solution, error) {
	ranges := NewIntervalMap()
	solution := &Solution{
		Log: make([]RangeLogEntry, 0, len(obligations)),
	}

	for i, obligation := range obligations {
		entry := RangeLogEntry{Index: i, Obligation: obligation, Before: ranges}

		// Replay the assignments that preceded the comparison in its block
		for _, store := range obligation.Stores {
			var r IntSet
			var err error
			r, ranges, err = s.exprRange(store.Value, ranges)
			if err != nil {
				return nil, errors.Wrapf(err, "replaying %s before obligation %d", store, i)
			}
			ranges = ranges.Set(store.Target, r)
		}
		entry.AfterStores = ranges

		var err error
		ranges, err = s.applyCompare(obligation.Compare, ranges)
		if err != nil {
			return nil, errors.Wrapf(err, "applying obligation %d", i)
		}
		entry.AfterCompare = ranges
		solution.Log = append(solution.Log, entry)

		s.logger.Trace("Obligation ", i, " ", obligation.String(), logging.StructuredLogInfo{
			"before":       entry.Before.String(),
			"afterStores":  entry.AfterStores.String(),
			"afterCompare": entry.AfterCompare.String(),
		})
	}

	solution.Ranges = ranges
	solution.Assignment = make(trace.Assignment, ranges.Len())
	ranges.Each(func(name string, r IntSet) {
		v, ok := r.Sample(s.randomProvider)
		if !ok {
			solution.Unsatisfied = append(solution.Unsatisfied, name)
			s.logger.Warn("Variable ", name, " has no admissible value")
			return
		}
		solution.Assignment[name] = v
	})

	if err := solution.PartialFailure(); err != nil {
		return solution, err
	}
	return solution, nil
}

// applyCompare restricts the operands of a comparison. Operands that are not variables contribute their range but
// receive no binding.
func (s *Solver) applyCompare(c program.Compare, ranges IntervalMap) (IntervalMap, error) {
	var left, right IntSet
	var err error
	if left, ranges, err = s.exprRange(c.Left, ranges); err != nil {
		return ranges, err
	}
	if right, ranges, err = s.exprRange(c.Right, ranges); err != nil {
		return ranges, err
	}

	satisfying := Satisfying(c.Predicate, left, right)
	if v, ok := c.Left.(program.Var); ok {
		ranges = ranges.Set(v.Name, satisfying)
	}
	if v, ok := c.Right.(program.Var); ok {
		ranges = ranges.Set(v.Name, satisfying)
	}
	return ranges, nil
}

// exprRange computes the range of an expression. Variables without a range are bound to the universe first, and the
// possibly extended IntervalMap is returned.
func (s *Solver) exprRange(e program.Expr, ranges IntervalMap) (IntSet, IntervalMap, error) {
	switch e := e.(type) {
	case program.Const:
		return Singleton(e.Value), ranges, nil
	case program.Var:
		if r, ok := ranges.Get(e.Name); ok {
			return r, ranges, nil
		}
		u := s.Universe()
		return u, ranges.Set(e.Name, u), nil
	case program.BinOp:
		var left, right IntSet
		var err error
		if left, ranges, err = s.exprRange(e.Left, ranges); err != nil {
			return IntSet{}, ranges, err
		}
		if right, ranges, err = s.exprRange(e.Right, ranges); err != nil {
			return IntSet{}, ranges, err
		}
		image, err := Image(e.Op, left, right)
		return image, ranges, err
	default:
		panic("unreachable")
	}
}
