package program

import "strings"

// BlockID identifies a BasicBlock within a Program.
type BlockID string

// MaxCompareOperandDepth is the deepest operator nesting allowed in a Compare operand.
const MaxCompareOperandDepth = 1

// MaxAssignValueDepth is the deepest operator nesting allowed in an Assign value: a BinOp whose operands may
// themselves be a BinOp over constants and variables.
const MaxAssignValueDepth = 2

// BasicBlock is a straight-line sequence of instructions followed by zero, one or two successors. With two
// successors, the block ends in a Compare, Successors[0] is the true branch and Successors[1] the false branch.
type BasicBlock struct {
	ID           BlockID
	Instructions []Instruction
	Successors   []BlockID
}

// Program is a validated control-flow graph. It is immutable once constructed and safe for concurrent readers.
type Program struct {
	// entry is the block execution starts in
	entry BlockID

	// blocks maps every block identifier to its block
	blocks map[BlockID]*BasicBlock

	// order lists the block identifiers in the order they were provided
	order []BlockID
}

// New validates the given blocks and creates a Program starting at entry. The blocks are copied, so later changes
// to the arguments do not affect the Program. Returns a *MalformedProgramError if validation fails.
func New(entry BlockID, blocks []*BasicBlock) (*Program, error) {
	p := &Program{
		entry:  entry,
		blocks: make(map[BlockID]*BasicBlock, len(blocks)),
		order:  make([]BlockID, 0, len(blocks)),
	}

	for _, b := range blocks {
		if b == nil {
			return nil, malformed("", "nil block")
		}
		if b.ID == "" {
			return nil, malformed("", "block with an empty identifier")
		}
		if _, exists := p.blocks[b.ID]; exists {
			return nil, malformed(b.ID, "duplicate block identifier")
		}
		p.blocks[b.ID] = &BasicBlock{
			ID:           b.ID,
			Instructions: append([]Instruction(nil), b.Instructions...),
			Successors:   append([]BlockID(nil), b.Successors...),
		}
		p.order = append(p.order, b.ID)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the structural rules of the control-flow graph:
//   - the entry block exists and every successor refers to an existing block
//   - a block has at most two successors
//   - a block with two successors ends in its only Compare, and other blocks contain none
//   - Compare operands nest at most MaxCompareOperandDepth operators and Assign values MaxAssignValueDepth
//   - every name is non-empty
func (p *Program) Validate() error {
	if _, ok := p.blocks[p.entry]; !ok {
		return malformed(p.entry, "entry block does not exist")
	}

	for _, id := range p.order {
		b := p.blocks[id]

		if len(b.Successors) > 2 {
			return malformed(id, "block has more than two successors")
		}
		for _, succ := range b.Successors {
			if _, ok := p.blocks[succ]; !ok {
				return malformed(id, "successor %q does not exist", succ)
			}
		}

		compares := 0
		for i, inst := range b.Instructions {
			switch inst := inst.(type) {
			case Declare:
				if inst.Name == "" {
					return malformed(id, "declaration of an empty name")
				}
			case Assign:
				if inst.Target == "" {
					return malformed(id, "assignment to an empty name")
				}
				if err := validateExpr(id, inst.Value, MaxAssignValueDepth); err != nil {
					return err
				}
			case Compare:
				compares++
				if len(b.Successors) != 2 {
					return malformed(id, "comparison in a block with %d successor(s)", len(b.Successors))
				}
				if i != len(b.Instructions)-1 {
					return malformed(id, "comparison is not the final instruction")
				}
				if inst.Predicate < EQ || inst.Predicate > LE {
					return malformed(id, "unknown predicate %d", int(inst.Predicate))
				}
				if err := validateExpr(id, inst.Left, MaxCompareOperandDepth); err != nil {
					return err
				}
				if err := validateExpr(id, inst.Right, MaxCompareOperandDepth); err != nil {
					return err
				}
			case nil:
				return malformed(id, "nil instruction at index %d", i)
			default:
				panic("unreachable")
			}
		}

		if len(b.Successors) == 2 && compares != 1 {
			return malformed(id, "block with two successors must end in exactly one comparison")
		}
	}
	return nil
}

// validateExpr checks that e is complete and nests at most maxDepth operators.
func validateExpr(id BlockID, e Expr, maxDepth int) error {
	if e == nil {
		return malformed(id, "missing expression")
	}
	var walk func(e Expr) error
	walk = func(e Expr) error {
		switch e := e.(type) {
		case Const:
			return nil
		case Var:
			if e.Name == "" {
				return malformed(id, "read of an empty name")
			}
			return nil
		case BinOp:
			if e.Left == nil || e.Right == nil {
				return malformed(id, "binary operation %s is missing an operand", e.Op.Name())
			}
			if e.Op < Add || e.Op > Shr {
				return malformed(id, "unknown operator %d", int(e.Op))
			}
			if err := walk(e.Left); err != nil {
				return err
			}
			return walk(e.Right)
		default:
			panic("unreachable")
		}
	}
	if err := walk(e); err != nil {
		return err
	}
	if depth := Depth(e); depth > maxDepth {
		return malformed(id, "expression %s nests %d operators, at most %d allowed", e, depth, maxDepth)
	}
	return nil
}

// Entry returns the identifier of the entry block.
func (p *Program) Entry() BlockID {
	return p.entry
}

// Block returns the block with the given identifier.
func (p *Program) Block(id BlockID) (*BasicBlock, bool) {
	b, ok := p.blocks[id]
	return b, ok
}

// BlockIDs returns every block identifier in declaration order.
func (p *Program) BlockIDs() []BlockID {
	return append([]BlockID(nil), p.order...)
}

// BlockCount returns the amount of blocks in the Program.
func (p *Program) BlockCount() int {
	return len(p.order)
}

// Successors returns the successors of a block. With two successors, the first is the true branch.
func (p *Program) Successors(id BlockID) ([]BlockID, error) {
	b, err := p.mustBlock(id)
	if err != nil {
		return nil, err
	}
	return b.Successors, nil
}

// Instructions returns the ordered instructions of a block.
func (p *Program) Instructions(id BlockID) ([]Instruction, error) {
	b, err := p.mustBlock(id)
	if err != nil {
		return nil, err
	}
	return b.Instructions, nil
}

// TerminatorComparison returns the Compare that ends a block, if it has two successors. The boolean is false for
// blocks that do not branch.
func (p *Program) TerminatorComparison(id BlockID) (Compare, bool, error) {
	b, err := p.mustBlock(id)
	if err != nil {
		return Compare{}, false, err
	}
	if len(b.Successors) != 2 {
		return Compare{}, false, nil
	}
	return b.Instructions[len(b.Instructions)-1].(Compare), true, nil
}

// DeclaredVariables returns the names declared in a block, in declaration order.
func (p *Program) DeclaredVariables(id BlockID) ([]string, error) {
	b, err := p.mustBlock(id)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0)
	for _, inst := range b.Instructions {
		if d, ok := inst.(Declare); ok {
			names = append(names, d.Name)
		}
	}
	return names, nil
}

// IsDeclared returns whether any block declares the given name.
func (p *Program) IsDeclared(name string) bool {
	for _, id := range p.order {
		for _, inst := range p.blocks[id].Instructions {
			if d, ok := inst.(Declare); ok && d.Name == name {
				return true
			}
		}
	}
	return false
}

// InputVariables returns the names declared in the entry block that start with prefix, in declaration order.
func (p *Program) InputVariables(prefix string) []string {
	declared, _ := p.DeclaredVariables(p.entry)
	inputs := make([]string, 0, len(declared))
	seen := make(map[string]bool, len(declared))
	for _, name := range declared {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			inputs = append(inputs, name)
		}
	}
	return inputs
}

func (p *Program) mustBlock(id BlockID) (*BasicBlock, error) {
	b, ok := p.blocks[id]
	if !ok {
		return nil, malformed(id, "block does not exist")
	}
	return b, nil
}
