// Package programfile reads and writes the declarative description of a program control-flow graph. The format is
// YAML (JSON documents are accepted as well):
//
//	entry: entry
//	blocks:
//	  - id: entry
//	    instructions:
//	      - declare: input_x
//	      - assign: y = input_x + 1
//	      - compare: y > 5
//	    successors: [then, else]
//	  - id: then
//	  - id: else
package programfile

import (
	"os"

	"github.com/concolic-labs/pathfinder/program"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// File is the serialized form of a program.
type File struct {
	// Entry is the identifier of the block execution starts in
	Entry string `yaml:"entry" json:"entry"`

	// Blocks lists every block of the control-flow graph
	Blocks []BlockFile `yaml:"blocks" json:"blocks"`
}

// BlockFile is the serialized form of a basic block.
type BlockFile struct {
	ID           string            `yaml:"id" json:"id"`
	Instructions []InstructionFile `yaml:"instructions,omitempty" json:"instructions,omitempty"`
	Successors   []string          `yaml:"successors,omitempty" json:"successors,omitempty"`
}

// InstructionFile is the serialized form of an instruction. Exactly one field is set.
type InstructionFile struct {
	Declare string `yaml:"declare,omitempty" json:"declare,omitempty"`
	Assign  string `yaml:"assign,omitempty" json:"assign,omitempty"`
	Compare string `yaml:"compare,omitempty" json:"compare,omitempty"`
}

// Decode parses a serialized program and validates it. Structural violations are returned as
// *program.MalformedProgramError.
func Decode(data []byte) (*program.Program, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, errors.Wrap(err, "unable to parse program file")
	}
	return f.Program()
}

// ReadFile reads and decodes the program at the given path.
func ReadFile(path string) (*program.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	prog, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "program file %s", path)
	}
	return prog, nil
}

// Program converts the serialized form into a validated program.
func (f *File) Program() (*program.Program, error) {
	blocks := make([]*program.BasicBlock, 0, len(f.Blocks))
	for _, bf := range f.Blocks {
		b := &program.BasicBlock{
			ID:           program.BlockID(bf.ID),
			Instructions: make([]program.Instruction, 0, len(bf.Instructions)),
			Successors:   make([]program.BlockID, 0, len(bf.Successors)),
		}
		for i, inf := range bf.Instructions {
			inst, err := inf.instruction()
			if err != nil {
				return nil, errors.Wrapf(err, "block %q instruction %d", bf.ID, i)
			}
			b.Instructions = append(b.Instructions, inst)
		}
		for _, succ := range bf.Successors {
			b.Successors = append(b.Successors, program.BlockID(succ))
		}
		blocks = append(blocks, b)
	}
	return program.New(program.BlockID(f.Entry), blocks)
}

func (inf InstructionFile) instruction() (program.Instruction, error) {
	set := 0
	for _, s := range []string{inf.Declare, inf.Assign, inf.Compare} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return nil, errors.New("exactly one of declare, assign or compare must be set")
	}

	switch {
	case inf.Declare != "":
		return program.Declare{Name: inf.Declare}, nil
	case inf.Assign != "":
		return ParseAssign(inf.Assign)
	default:
		return ParseCompare(inf.Compare)
	}
}

// FromProgram creates the serialized form of a program.
func FromProgram(prog *program.Program) *File {
	f := &File{Entry: string(prog.Entry())}
	for _, id := range prog.BlockIDs() {
		b, _ := prog.Block(id)
		bf := BlockFile{ID: string(id)}
		for _, inst := range b.Instructions {
			switch inst := inst.(type) {
			case program.Declare:
				bf.Instructions = append(bf.Instructions, InstructionFile{Declare: inst.Name})
			case program.Assign:
				bf.Instructions = append(bf.Instructions, InstructionFile{Assign: inst.String()})
			case program.Compare:
				bf.Instructions = append(bf.Instructions, InstructionFile{Compare: inst.String()})
			default:
				panic("unreachable")
			}
		}
		for _, succ := range b.Successors {
			bf.Successors = append(bf.Successors, string(succ))
		}
		f.Blocks = append(f.Blocks, bf)
	}
	return f
}

// Encode serializes a program to YAML.
func Encode(prog *program.Program) ([]byte, error) {
	data, err := yaml.Marshal(FromProgram(prog))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}

// WriteFile serializes a program to YAML at the given path.
func WriteFile(prog *program.Program, path string) error {
	data, err := Encode(prog)
	if err != nil {
		return err
	}
	return errors.WithStack(os.WriteFile(path, data, 0644))
}
