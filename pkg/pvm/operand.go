// Package pvm implements the PVM runtime: operands, the instruction set,
// the environment (memory, frames, queues, labels), the memory allocator,
// and the dispatch loop.
package pvm

import "fmt"

// OperandKind distinguishes the three operand shapes named in the
// component design.
type OperandKind int

const (
	OperandConstant OperandKind = iota
	OperandVariable
	OperandLabel
)

// Operand is one positional operand of an Instruction. Constant carries an
// immediate value (already byte-reinterpreted to u64); Variable and Label
// carry a name resolved against the Environment at execute time.
type Operand struct {
	Kind  OperandKind
	Const uint64
	Name  string
}

// NewConstant builds a Constant operand from a raw u64 bit pattern.
func NewConstant(v uint64) Operand { return Operand{Kind: OperandConstant, Const: v} }

// NewVariable builds a Variable operand naming a runtime variable.
func NewVariable(name string) Operand { return Operand{Kind: OperandVariable, Name: name} }

// NewLabel builds a Label operand naming a jump target.
func NewLabel(name string) Operand { return Operand{Kind: OperandLabel, Name: name} }

func (o Operand) String() string {
	switch o.Kind {
	case OperandConstant:
		return fmt.Sprintf("%d", o.Const)
	case OperandVariable, OperandLabel:
		return o.Name
	default:
		return "?"
	}
}

// Value resolves the operand's current u64 bit pattern against env: a
// Constant returns its literal, a Variable looks itself up in the current
// frame. Label operands are never resolved through Value; callers that
// need a jump target read Name directly.
func (o Operand) Value(env *Environment) (uint64, error) {
	switch o.Kind {
	case OperandConstant:
		return o.Const, nil
	case OperandVariable:
		return env.GetVariable(o.Name), nil
	default:
		return 0, NewValidateError(fmt.Sprintf("operand %s cannot be read as a value", o))
	}
}

// SetValue stores v into the variable this operand names. It is a
// validation error to call SetValue on anything but a Variable operand.
func (o Operand) SetValue(env *Environment, v uint64) error {
	if o.Kind != OperandVariable {
		return NewValidateError(fmt.Sprintf("operand %s is not an assignable variable", o))
	}
	env.SetVariable(o.Name, v)
	return nil
}

// OperandFormat is the static per-position constraint an Instruction
// imposes on one of its operands.
type OperandFormat int

const (
	FormatConstant OperandFormat = iota // immediate only
	FormatVariable                      // name only
	FormatValue                         // either constant or variable
	FormatLabel                         // name only, distinct namespace
)

func (f OperandFormat) accepts(o Operand) bool {
	switch f {
	case FormatConstant:
		return o.Kind == OperandConstant
	case FormatVariable:
		return o.Kind == OperandVariable
	case FormatValue:
		return o.Kind == OperandConstant || o.Kind == OperandVariable
	case FormatLabel:
		return o.Kind == OperandLabel
	default:
		return false
	}
}
