package pvm

// PushaInst enqueues a value as the next outgoing argument: `pusha src`.
type PushaInst struct {
	Base
	Src Operand
}

func (i *PushaInst) Name() string             { return "pusha" }
func (i *PushaInst) Formats() []OperandFormat { return []OperandFormat{FormatValue} }
func (i *PushaInst) Operands() []Operand      { return []Operand{i.Src} }
func (i *PushaInst) String() string           { return operandsString(i.Name(), i.Operands()) }

func (i *PushaInst) Validate() error { return validateFormats(i.Name(), i.Formats(), i.Operands()) }

func (i *PushaInst) Execute(env *Environment) error {
	v, err := i.Src.Value(env)
	if err != nil {
		return err
	}
	env.PushArg(v)
	return nil
}

// PopaInst dequeues the next incoming argument into dest: `popa dest`.
type PopaInst struct {
	Base
	Dest Operand
}

func (i *PopaInst) Name() string             { return "popa" }
func (i *PopaInst) Formats() []OperandFormat { return []OperandFormat{FormatVariable} }
func (i *PopaInst) Operands() []Operand      { return []Operand{i.Dest} }
func (i *PopaInst) String() string           { return operandsString(i.Name(), i.Operands()) }

func (i *PopaInst) Validate() error { return validateFormats(i.Name(), i.Formats(), i.Operands()) }

func (i *PopaInst) Execute(env *Environment) error {
	v, err := env.PopArg()
	if err != nil {
		return err
	}
	return i.Dest.SetValue(env, v)
}

// PushrInst enqueues a value as the next outgoing return value: `pushr src`.
type PushrInst struct {
	Base
	Src Operand
}

func (i *PushrInst) Name() string             { return "pushr" }
func (i *PushrInst) Formats() []OperandFormat { return []OperandFormat{FormatValue} }
func (i *PushrInst) Operands() []Operand      { return []Operand{i.Src} }
func (i *PushrInst) String() string           { return operandsString(i.Name(), i.Operands()) }

func (i *PushrInst) Validate() error { return validateFormats(i.Name(), i.Formats(), i.Operands()) }

func (i *PushrInst) Execute(env *Environment) error {
	v, err := i.Src.Value(env)
	if err != nil {
		return err
	}
	env.PushRet(v)
	return nil
}

// PoprInst dequeues the next incoming return value into dest: `popr dest`.
type PoprInst struct {
	Base
	Dest Operand
}

func (i *PoprInst) Name() string             { return "popr" }
func (i *PoprInst) Formats() []OperandFormat { return []OperandFormat{FormatVariable} }
func (i *PoprInst) Operands() []Operand      { return []Operand{i.Dest} }
func (i *PoprInst) String() string           { return operandsString(i.Name(), i.Operands()) }

func (i *PoprInst) Validate() error { return validateFormats(i.Name(), i.Formats(), i.Operands()) }

func (i *PoprInst) Execute(env *Environment) error {
	v, err := env.PopRet()
	if err != nil {
		return err
	}
	return i.Dest.SetValue(env, v)
}

// CallInst transfers control to a function label: `call label`. It clears
// ret_queue (the callee fills it fresh via pushr) and records the return
// address before IncInstPtr redirects the instruction pointer to the
// callee's `fun` instruction.
type CallInst struct {
	Base
	Target Operand
}

func (i *CallInst) Name() string             { return "call" }
func (i *CallInst) Formats() []OperandFormat { return []OperandFormat{FormatLabel} }
func (i *CallInst) Operands() []Operand      { return []Operand{i.Target} }
func (i *CallInst) String() string           { return operandsString(i.Name(), i.Operands()) }

func (i *CallInst) Validate() error { return validateFormats(i.Name(), i.Formats(), i.Operands()) }

func (i *CallInst) Execute(env *Environment) error {
	env.ClearRets()
	env.PushReturnAddr(env.InstPtr + 1)
	return nil
}

func (i *CallInst) IncInstPtr(env *Environment) error {
	target, ok := env.FunLabels[i.Target.Name]
	if !ok {
		return NewExecuteError("undefined function " + i.Target.Name)
	}
	env.InstPtr = target
	return nil
}

// RetInst returns control to the caller: `ret`. It clears arg_queue (the
// caller refills it fresh on its next call) and pops the callee's variable
// frame before IncInstPtr restores the instruction pointer saved by call.
type RetInst struct {
	Base
}

func (i *RetInst) Name() string             { return "ret" }
func (i *RetInst) Formats() []OperandFormat { return nil }
func (i *RetInst) Operands() []Operand      { return nil }
func (i *RetInst) String() string           { return i.Name() }

func (i *RetInst) Validate() error { return validateFormats(i.Name(), i.Formats(), i.Operands()) }

func (i *RetInst) Execute(env *Environment) error {
	env.ClearArgs()
	env.PopFrame()
	return nil
}

func (i *RetInst) IncInstPtr(env *Environment) error {
	idx, err := env.PopReturnAddr()
	if err != nil {
		return err
	}
	env.InstPtr = idx
	return nil
}
