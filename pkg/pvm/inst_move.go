package pvm

// MoveInst copies src into dest: `move dest src`.
type MoveInst struct {
	Base
	Dest, Src Operand
}

func (i *MoveInst) Name() string              { return "move" }
func (i *MoveInst) Formats() []OperandFormat  { return []OperandFormat{FormatVariable, FormatValue} }
func (i *MoveInst) Operands() []Operand       { return []Operand{i.Dest, i.Src} }
func (i *MoveInst) String() string            { return operandsString(i.Name(), i.Operands()) }

func (i *MoveInst) Validate() error {
	return validateFormats(i.Name(), i.Formats(), i.Operands())
}

func (i *MoveInst) Execute(env *Environment) error {
	v, err := i.Src.Value(env)
	if err != nil {
		return err
	}
	return i.Dest.SetValue(env, v)
}
