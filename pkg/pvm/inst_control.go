package pvm

// LabelInst marks a jump target: `label name`. It has no runtime effect of
// its own; Initialize registers the instruction immediately following it
// so that `jump`/`jumpz` land past the label, not on it.
type LabelInst struct {
	Base
	Target Operand
}

func (i *LabelInst) Name() string             { return "label" }
func (i *LabelInst) Formats() []OperandFormat { return []OperandFormat{FormatLabel} }
func (i *LabelInst) Operands() []Operand      { return []Operand{i.Target} }
func (i *LabelInst) String() string           { return operandsString(i.Name(), i.Operands()) }

func (i *LabelInst) Validate() error { return validateFormats(i.Name(), i.Formats(), i.Operands()) }

func (i *LabelInst) Initialize(env *Environment, index int) error {
	env.Labels[i.Target.Name] = index + 1
	return nil
}

func (i *LabelInst) Execute(env *Environment) error { return nil }

// JumpInst transfers control unconditionally to a label: `jump label`.
type JumpInst struct {
	Base
	Target Operand
}

func (i *JumpInst) Name() string             { return "jump" }
func (i *JumpInst) Formats() []OperandFormat { return []OperandFormat{FormatLabel} }
func (i *JumpInst) Operands() []Operand      { return []Operand{i.Target} }
func (i *JumpInst) String() string           { return operandsString(i.Name(), i.Operands()) }

func (i *JumpInst) Validate() error { return validateFormats(i.Name(), i.Formats(), i.Operands()) }

func (i *JumpInst) Execute(env *Environment) error { return nil }

func (i *JumpInst) IncInstPtr(env *Environment) error {
	target, ok := env.Labels[i.Target.Name]
	if !ok {
		return NewExecuteError("undefined label " + i.Target.Name)
	}
	env.InstPtr = target
	return nil
}

// JumpzInst transfers control to a label when cond is false (zero):
// `jumpz label cond`.
type JumpzInst struct {
	Base
	Target Operand
	Cond   Operand
}

func (i *JumpzInst) Name() string             { return "jumpz" }
func (i *JumpzInst) Formats() []OperandFormat { return []OperandFormat{FormatLabel, FormatValue} }
func (i *JumpzInst) Operands() []Operand      { return []Operand{i.Target, i.Cond} }
func (i *JumpzInst) String() string           { return operandsString(i.Name(), i.Operands()) }

func (i *JumpzInst) Validate() error { return validateFormats(i.Name(), i.Formats(), i.Operands()) }

func (i *JumpzInst) Execute(env *Environment) error { return nil }

func (i *JumpzInst) IncInstPtr(env *Environment) error {
	cond, err := i.Cond.Value(env)
	if err != nil {
		return err
	}
	if U64ToBool(cond) {
		env.InstPtr++
		return nil
	}
	target, ok := env.Labels[i.Target.Name]
	if !ok {
		return NewExecuteError("undefined label " + i.Target.Name)
	}
	env.InstPtr = target
	return nil
}

// FunInst marks a function entry point: `fun name`. Initialize registers
// the instruction's own index (not the one following it, unlike label) so
// that `call` transfers control here and Execute can push the callee's
// variable frame before the body runs.
type FunInst struct {
	Base
	Target Operand
}

func (i *FunInst) Name() string             { return "fun" }
func (i *FunInst) Formats() []OperandFormat { return []OperandFormat{FormatLabel} }
func (i *FunInst) Operands() []Operand      { return []Operand{i.Target} }
func (i *FunInst) String() string           { return operandsString(i.Name(), i.Operands()) }

func (i *FunInst) Validate() error { return validateFormats(i.Name(), i.Formats(), i.Operands()) }

func (i *FunInst) Initialize(env *Environment, index int) error {
	env.FunLabels[i.Target.Name] = index
	return nil
}

func (i *FunInst) Execute(env *Environment) error {
	env.PushFrame()
	return nil
}
