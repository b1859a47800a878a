package asmtext

import (
	"fmt"

	"pine/pkg/pvm"
)

// builder constructs the concrete instruction for one mnemonic from its
// already-trimmed operand tokens, in source order.
type builder func(name string, operands []string) (pvm.Instruction, error)

func arity(name string, operands []string, want int) error {
	if len(operands) != want {
		return fmt.Errorf("%s expects %d operand(s), got %d", name, want, len(operands))
	}
	return nil
}

var intOps = map[string]pvm.IntOp{
	"add": pvm.IntAdd, "sub": pvm.IntSub, "mul": pvm.IntMul, "div": pvm.IntDiv,
	"mod": pvm.IntMod, "pow": pvm.IntPow, "eq": pvm.IntEq, "neq": pvm.IntNeq,
	"gt": pvm.IntGt, "lt": pvm.IntLt, "gte": pvm.IntGte, "lte": pvm.IntLte,
	"and": pvm.IntAnd, "or": pvm.IntOr,
}

var floatOps = map[string]pvm.FloatOp{
	"addf": pvm.FloatAdd, "subf": pvm.FloatSub, "mulf": pvm.FloatMul, "divf": pvm.FloatDiv,
	"modf": pvm.FloatMod, "powf": pvm.FloatPow, "eqf": pvm.FloatEq, "neqf": pvm.FloatNeq,
	"gtf": pvm.FloatGt, "ltf": pvm.FloatLt, "gtef": pvm.FloatGte, "ltef": pvm.FloatLte,
}

var builders = map[string]builder{
	"ret":      func(n string, o []string) (pvm.Instruction, error) { return &pvm.RetInst{}, arity(n, o, 0) },
	"println":  func(n string, o []string) (pvm.Instruction, error) { return &pvm.PrintlnInst{}, arity(n, o, 0) },

	"label": buildLabel1(func(t pvm.Operand) pvm.Instruction { return &pvm.LabelInst{Target: t} }),
	"jump":  buildLabel1(func(t pvm.Operand) pvm.Instruction { return &pvm.JumpInst{Target: t} }),
	"fun":   buildLabel1(func(t pvm.Operand) pvm.Instruction { return &pvm.FunInst{Target: t} }),
	"call":  buildLabel1(func(t pvm.Operand) pvm.Instruction { return &pvm.CallInst{Target: t} }),

	"popa": buildVar1(func(d pvm.Operand) pvm.Instruction { return &pvm.PopaInst{Dest: d} }),
	"popr": buildVar1(func(d pvm.Operand) pvm.Instruction { return &pvm.PoprInst{Dest: d} }),

	"dealloc": buildValue1(func(v pvm.Operand) pvm.Instruction { return &pvm.DeallocInst{Src: v} }),
	"pusha":   buildValue1(func(v pvm.Operand) pvm.Instruction { return &pvm.PushaInst{Src: v} }),
	"pushr":   buildValue1(func(v pvm.Operand) pvm.Instruction { return &pvm.PushrInst{Src: v} }),
	"printi":  buildValue1(func(v pvm.Operand) pvm.Instruction { return &pvm.PrintiInst{Src: v} }),
	"printf":  buildValue1(func(v pvm.Operand) pvm.Instruction { return &pvm.PrintfInst{Src: v} }),
	"prints":  buildValue1(func(v pvm.Operand) pvm.Instruction { return &pvm.PrintsInst{Src: v} }),
	"read":    buildValue1(func(v pvm.Operand) pvm.Instruction { return &pvm.ReadInst{Dest: v} }),
	"exit":    buildValue1(func(v pvm.Operand) pvm.Instruction { return &pvm.ExitInst{Code: v} }),

	"move":   buildVarValue(func(d, v pvm.Operand) pvm.Instruction { return &pvm.MoveInst{Dest: d, Src: v} }),
	"alloc":  buildVarValue(func(d, v pvm.Operand) pvm.Instruction { return &pvm.AllocInst{Dest: d, Size: v} }),
	"load":   buildVarValue(func(d, v pvm.Operand) pvm.Instruction { return &pvm.LoadInst{Dest: d, Addr: v} }),
	"loadb":  buildVarValue(func(d, v pvm.Operand) pvm.Instruction { return &pvm.LoadByteInst{Dest: d, Addr: v} }),
	"store":  buildVarValue(func(a, v pvm.Operand) pvm.Instruction { return &pvm.StoreInst{Addr: a, Src: v} }),
	"storeb": buildVarValue(func(a, v pvm.Operand) pvm.Instruction { return &pvm.StoreByteInst{Addr: a, Src: v} }),
	"neg":    buildVarValue(func(d, v pvm.Operand) pvm.Instruction { return &pvm.NegInst{Dest: d, Src: v} }),
	"negf":   buildVarValue(func(d, v pvm.Operand) pvm.Instruction { return &pvm.NegFInst{Dest: d, Src: v} }),

	"jumpz": func(n string, o []string) (pvm.Instruction, error) {
		if err := arity(n, o, 2); err != nil {
			return nil, err
		}
		return &pvm.JumpzInst{Target: pvm.NewLabel(o[0]), Cond: operandValue(o[1])}, nil
	},
}

func buildLabel1(make func(pvm.Operand) pvm.Instruction) builder {
	return func(n string, o []string) (pvm.Instruction, error) {
		if err := arity(n, o, 1); err != nil {
			return nil, err
		}
		return make(pvm.NewLabel(o[0])), nil
	}
}

func buildVar1(make func(pvm.Operand) pvm.Instruction) builder {
	return func(n string, o []string) (pvm.Instruction, error) {
		if err := arity(n, o, 1); err != nil {
			return nil, err
		}
		return make(pvm.NewVariable(o[0])), nil
	}
}

func buildValue1(make func(pvm.Operand) pvm.Instruction) builder {
	return func(n string, o []string) (pvm.Instruction, error) {
		if err := arity(n, o, 1); err != nil {
			return nil, err
		}
		return make(operandValue(o[0])), nil
	}
}

func buildVarValue(make func(dest, v pvm.Operand) pvm.Instruction) builder {
	return func(n string, o []string) (pvm.Instruction, error) {
		if err := arity(n, o, 2); err != nil {
			return nil, err
		}
		return make(pvm.NewVariable(o[0]), operandValue(o[1])), nil
	}
}

func init() {
	for name, op := range intOps {
		op := op
		builders[name] = buildIntBin(op)
	}
	for name, op := range floatOps {
		op := op
		builders[name] = buildFloatBin(op)
	}
}

func buildIntBin(op pvm.IntOp) builder {
	return func(n string, o []string) (pvm.Instruction, error) {
		if err := arity(n, o, 3); err != nil {
			return nil, err
		}
		return &pvm.IntBinInst{Op: op, Dest: pvm.NewVariable(o[0]), Src1: operandValue(o[1]), Src2: operandValue(o[2])}, nil
	}
}

func buildFloatBin(op pvm.FloatOp) builder {
	return func(n string, o []string) (pvm.Instruction, error) {
		if err := arity(n, o, 3); err != nil {
			return nil, err
		}
		return &pvm.FloatBinInst{Op: op, Dest: pvm.NewVariable(o[0]), Src1: operandValue(o[1]), Src2: operandValue(o[2])}, nil
	}
}
