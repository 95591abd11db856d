package program

import "fmt"

// Instruction is a single step of a BasicBlock. The set of implementations is closed: Declare, Assign and Compare.
type Instruction interface {
	instruction()
	String() string
}

func (Declare) instruction() {}
func (Assign) instruction()  {}
func (Compare) instruction() {}

// Declare introduces a variable name. A declared variable is unbound until it is assigned or supplied as an input.
type Declare struct {
	Name string
}

// String returns the textual form of the declaration.
func (i Declare) String() string {
	return "declare " + i.Name
}

// Assign stores the value of an expression into a variable.
type Assign struct {
	Target string
	Value  Expr
}

// String returns the textual form of the assignment.
func (i Assign) String() string {
	return fmt.Sprintf("%s = %s", i.Target, i.Value)
}

// Compare evaluates a predicate over two expressions. It terminates a block with two successors: the first
// successor is taken when the predicate holds.
type Compare struct {
	Predicate Predicate
	Left      Expr
	Right     Expr
}

// String returns the parenthesized textual form of the comparison, e.g. "(x > 5)".
func (c Compare) String() string {
	return fmt.Sprintf("(%s %s %s)", operandString(c.Left), c.Predicate, operandString(c.Right))
}

// Negate returns the comparison with its predicate negated.
func (c Compare) Negate() Compare {
	return Compare{Predicate: c.Predicate.Negate(), Left: c.Left, Right: c.Right}
}

// InstructionVariables returns the variable names an instruction reads.
func InstructionVariables(inst Instruction) []string {
	switch inst := inst.(type) {
	case Declare:
		return nil
	case Assign:
		return Variables(inst.Value)
	case Compare:
		return append(Variables(inst.Left), Variables(inst.Right)...)
	default:
		panic("unreachable")
	}
}
