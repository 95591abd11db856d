package coverage

import (
	"sync"

	"github.com/concolic-labs/pathfinder/program"
	"github.com/concolic-labs/pathfinder/trace"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// BlockCoverage represents a data structure used to identify which blocks of a program were visited across any
// amount of paths.
type BlockCoverage struct {
	// blocks lists every block of the program in declaration order
	blocks []program.BlockID

	// hits maps every block of the program to the amount of recorded paths that visited it
	hits map[program.BlockID]uint64

	// updateLock is a lock to offer concurrent thread safety for map accesses.
	updateLock sync.Mutex
}

// NewBlockCoverage initializes a new BlockCoverage object over every block of the given program.
func NewBlockCoverage(prog *program.Program) *BlockCoverage {
	c := &BlockCoverage{
		blocks: prog.BlockIDs(),
	}
	c.Reset()
	return c
}

// Reset clears the coverage state for the BlockCoverage.
func (c *BlockCoverage) Reset() {
	c.updateLock.Lock()
	defer c.updateLock.Unlock()

	c.hits = make(map[program.BlockID]uint64, len(c.blocks))
	for _, id := range c.blocks {
		c.hits[id] = 0
	}
}

// Update records the blocks visited by a path. It returns a boolean indicating whether new coverage was achieved, or
// an error if the path visits a block the program does not contain.
func (c *BlockCoverage) Update(path trace.Path) (bool, error) {
	c.updateLock.Lock()
	defer c.updateLock.Unlock()

	// Validate the whole path first so a bad path leaves the coverage untouched
	for _, id := range path {
		if _, ok := c.hits[id]; !ok {
			return false, errors.Errorf("path visits unknown block %q", id)
		}
	}

	// Count each block once per path
	changed := false
	seen := make(map[program.BlockID]bool, len(path))
	for _, id := range path {
		if seen[id] {
			continue
		}
		seen[id] = true
		if c.hits[id] == 0 {
			changed = true
		}
		c.hits[id]++
	}
	return changed, nil
}

// Hits returns the amount of recorded paths that visited a block.
func (c *BlockCoverage) Hits(id program.BlockID) uint64 {
	c.updateLock.Lock()
	defer c.updateLock.Unlock()
	return c.hits[id]
}

// CoveredBlocks returns the visited blocks in declaration order.
func (c *BlockCoverage) CoveredBlocks() []program.BlockID {
	return c.filter(true)
}

// UncoveredBlocks returns the blocks no recorded path visited, in declaration order.
func (c *BlockCoverage) UncoveredBlocks() []program.BlockID {
	return c.filter(false)
}

func (c *BlockCoverage) filter(covered bool) []program.BlockID {
	c.updateLock.Lock()
	defer c.updateLock.Unlock()

	ids := make([]program.BlockID, 0)
	for _, id := range c.blocks {
		if (c.hits[id] > 0) == covered {
			ids = append(ids, id)
		}
	}
	return ids
}

// Covered returns the amount of visited blocks.
func (c *BlockCoverage) Covered() int {
	return len(c.CoveredBlocks())
}

// Total returns the amount of blocks in the program.
func (c *BlockCoverage) Total() int {
	return len(c.blocks)
}

// Percent returns the share of visited blocks as a percentage rounded to two decimal places. A program without
// blocks is fully covered.
func (c *BlockCoverage) Percent() decimal.Decimal {
	total := c.Total()
	if total == 0 {
		return decimal.NewFromInt(100)
	}
	return decimal.NewFromInt(int64(c.Covered())).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 2)
}
