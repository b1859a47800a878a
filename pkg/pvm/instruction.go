package pvm

import "fmt"

// Instruction is a polymorphic PVM instruction: static name and operand
// format live on the concrete type (via Name/Formats), and Execute carries
// out the runtime effect. Initialize and IncInstPtr override the dispatch
// loop's defaults; most instructions use the zero-value defaults supplied
// by Base.
type Instruction interface {
	// Name returns the instruction's mnemonic, used by the text-form
	// parser and by String.
	Name() string
	// Formats returns the static per-position operand constraints.
	Formats() []OperandFormat
	// Operands returns the instruction's runtime operands, positionally.
	Operands() []Operand
	// Validate checks Operands against Formats (and any instruction-
	// specific extra constraints).
	Validate() error
	// Execute carries out the instruction's runtime effect.
	Execute(env *Environment) error
	// Initialize runs once before the dispatch loop starts, in program
	// order; only `label` and `fun` override this to register entry
	// points.
	Initialize(env *Environment, index int) error
	// IncInstPtr advances env.InstPtr; only jump/jumpz/call/ret override
	// the default of InstPtr+1.
	IncInstPtr(env *Environment) error
	fmt.Stringer
}

// Base is embedded by every concrete instruction to provide the default,
// no-op Initialize and the default inst_ptr+1 IncInstPtr, matching the
// dispatch loop description.
type Base struct{}

func (Base) Initialize(env *Environment, index int) error { return nil }

func (Base) IncInstPtr(env *Environment) error {
	env.InstPtr++
	return nil
}

// validateFormats is the shared Validate body: check operand count and
// that every operand matches its declared format.
func validateFormats(name string, formats []OperandFormat, operands []Operand) error {
	if len(operands) != len(formats) {
		return NewValidateError(fmt.Sprintf("%s expects %d operands, got %d", name, len(formats), len(operands)))
	}
	for i, f := range formats {
		if !f.accepts(operands[i]) {
			return NewValidateError(fmt.Sprintf("%s operand %d (%s) does not match its required format", name, i, operands[i]))
		}
	}
	return nil
}

func operandsString(name string, operands []Operand) string {
	s := name
	for _, o := range operands {
		s += " " + o.String()
	}
	return s
}
