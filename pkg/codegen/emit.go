package codegen

import (
	"strconv"

	"pine/pkg/ast"
	"pine/pkg/pvm"
	"pine/pkg/token"
)

// Emit lowers a fully assigned, offset, and type-checked program into a
// flat instruction list, grounded statement-for-statement and
// expression-for-expression on the reference emit pass.
func Emit(prog *ast.Program, ctx *Context) []pvm.Instruction {
	for _, mod := range prog.Modules {
		for _, obj := range mod.Objects {
			ctx.Objects.Set(obj.Name, obj)
		}
	}

	var mainFn *ast.Function
	for _, mod := range prog.Modules {
		for _, fn := range mod.Funs {
			if fn.Name == "main" {
				mainFn = fn
			}
		}
	}

	insts := []pvm.Instruction{&pvm.CallInst{Target: pvm.NewLabel("main")}}
	if mainFn.RetType != nil && mainFn.RetType.Kind == ast.KindInteger {
		exitCode := pvm.NewVariable("exit_code")
		insts = append(insts, &pvm.PoprInst{Dest: exitCode}, &pvm.ExitInst{Code: exitCode})
	} else {
		insts = append(insts, &pvm.ExitInst{Code: pvm.NewConstant(0)})
	}

	for _, mod := range prog.Modules {
		for _, fn := range mod.Funs {
			insts = append(insts, emitFunction(fn, ctx)...)
		}
	}
	return insts
}

func emitFunction(fn *ast.Function, ctx *Context) []pvm.Instruction {
	insts := []pvm.Instruction{&pvm.FunInst{Target: pvm.NewLabel(fn.Name)}}
	for _, p := range fn.Params {
		insts = append(insts, &pvm.PopaInst{Dest: pvm.NewVariable(p.Symbol.Dest)})
	}
	return append(insts, emitBlock(fn.Body, ctx)...)
}

func emitBlock(b *ast.Block, ctx *Context) []pvm.Instruction {
	var insts []pvm.Instruction
	for _, stmt := range b.Stmts {
		insts = append(insts, emitStmt(stmt, ctx)...)
	}
	return insts
}

func emitStmt(stmt ast.Stmt, ctx *Context) []pvm.Instruction {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		insts := emitExpr(s.Expr, ctx)
		return append(insts, &pvm.MoveInst{Dest: pvm.NewVariable(s.Symbol.Dest), Src: pvm.NewVariable(s.Expr.GetDest())})
	case *ast.SetStmt:
		insts := emitExpr(s.Expr, ctx)
		return append(insts, &pvm.MoveInst{Dest: pvm.NewVariable(s.Symbol.Dest), Src: pvm.NewVariable(s.Expr.GetDest())})
	case *ast.IfStmt:
		return emitIf(s, ctx)
	case *ast.WhileStmt:
		return emitWhile(s, ctx)
	case *ast.ReturnStmt:
		return emitReturn(s, ctx)
	case *ast.ExprStmt:
		return emitExpr(s.Expr, ctx)
	case *ast.Block:
		return emitBlock(s, ctx)
	default:
		return nil
	}
}

func emitIf(s *ast.IfStmt, ctx *Context) []pvm.Instruction {
	var insts []pvm.Instruction
	prefix := ctx.Labels.IfPrefix()
	endLabel := prefix + "_end"

	for i, cond := range s.Conds {
		thenLabel := prefix + "_then" + strconv.Itoa(i)
		insts = append(insts, emitExpr(cond, ctx)...)
		insts = append(insts, &pvm.JumpzInst{Target: pvm.NewLabel(thenLabel), Cond: pvm.NewVariable(cond.GetDest())})
		insts = append(insts, emitBlock(s.ThenBlocks[i], ctx)...)
		insts = append(insts, &pvm.JumpInst{Target: pvm.NewLabel(endLabel)})
		insts = append(insts, &pvm.LabelInst{Target: pvm.NewLabel(thenLabel)})
	}

	if s.ElseBlock != nil {
		insts = append(insts, emitBlock(s.ElseBlock, ctx)...)
	}

	insts = append(insts, &pvm.LabelInst{Target: pvm.NewLabel(endLabel)})
	return insts
}

func emitWhile(s *ast.WhileStmt, ctx *Context) []pvm.Instruction {
	prefix := ctx.Labels.WhilePrefix()
	topLabel := prefix + "_top"
	endLabel := prefix + "_end"

	var insts []pvm.Instruction
	insts = append(insts, &pvm.LabelInst{Target: pvm.NewLabel(topLabel)})
	insts = append(insts, emitExpr(s.Cond, ctx)...)
	insts = append(insts, &pvm.JumpzInst{Target: pvm.NewLabel(endLabel), Cond: pvm.NewVariable(s.Cond.GetDest())})
	insts = append(insts, emitBlock(s.Block, ctx)...)
	insts = append(insts, &pvm.JumpInst{Target: pvm.NewLabel(topLabel)})
	insts = append(insts, &pvm.LabelInst{Target: pvm.NewLabel(endLabel)})
	return insts
}

func emitReturn(s *ast.ReturnStmt, ctx *Context) []pvm.Instruction {
	var insts []pvm.Instruction
	if s.Expr != nil {
		insts = append(insts, emitExpr(s.Expr, ctx)...)
		if ctx.Emit.TraceReturns {
			insts = append(insts, &pvm.PrintiInst{Src: pvm.NewVariable(s.Expr.GetDest())}, &pvm.PrintlnInst{})
		}
		insts = append(insts, &pvm.PushrInst{Src: pvm.NewVariable(s.Expr.GetDest())})
	}
	return append(insts, &pvm.RetInst{})
}

func emitExpr(expr ast.Expr, ctx *Context) []pvm.Instruction {
	switch e := expr.(type) {
	case *ast.IntLitExpr:
		return []pvm.Instruction{&pvm.MoveInst{Dest: pvm.NewVariable(e.GetDest()), Src: pvm.NewConstant(pvm.Int64ToU64(e.Value))}}
	case *ast.FloatLitExpr:
		return []pvm.Instruction{&pvm.MoveInst{Dest: pvm.NewVariable(e.GetDest()), Src: pvm.NewConstant(pvm.Float64ToU64(e.Value))}}
	case *ast.BoolLitExpr:
		return []pvm.Instruction{&pvm.MoveInst{Dest: pvm.NewVariable(e.GetDest()), Src: pvm.NewConstant(pvm.BoolToU64(e.Value))}}
	case *ast.StringLitExpr:
		return emitStringLit(e)
	case *ast.IdentExpr:
		return nil
	case *ast.NewObjectExpr:
		return emitNewObject(e, ctx)
	case *ast.FieldAccessExpr:
		return emitFieldAccess(e, ctx)
	case *ast.CallExpr:
		return emitCall(e, ctx)
	case *ast.UnaryExpr:
		return emitUnary(e, ctx)
	case *ast.BinaryExpr:
		return emitBinary(e, ctx)
	default:
		return nil
	}
}

// emitStringLit allocates a heap block laid out as an 8-byte length word
// followed by the literal's bytes (the same layout PrintsInst/ReadInst
// read), writing each byte with its own storeb. The reference emit pass
// left string literals unimplemented; this is this repo's resolution.
func emitStringLit(e *ast.StringLitExpr) []pvm.Instruction {
	dest := e.GetDest()
	bytes := []byte(e.Value)
	size := pvm.Int64ToU64(int64(8 + len(bytes)))

	insts := []pvm.Instruction{
		&pvm.AllocInst{Dest: pvm.NewVariable(dest), Size: pvm.NewConstant(size)},
		&pvm.StoreInst{Addr: pvm.NewVariable(dest), Src: pvm.NewConstant(pvm.Int64ToU64(int64(len(bytes))))},
	}
	for i, b := range bytes {
		addrTemp := dest + "_s" + strconv.Itoa(i)
		insts = append(insts,
			&pvm.IntBinInst{Op: pvm.IntAdd, Dest: pvm.NewVariable(addrTemp), Src1: pvm.NewVariable(dest), Src2: pvm.NewConstant(pvm.Int64ToU64(int64(8 + i)))},
			&pvm.StoreByteInst{Addr: pvm.NewVariable(addrTemp), Src: pvm.NewConstant(uint64(b))},
		)
	}
	return insts
}

func emitNewObject(e *ast.NewObjectExpr, ctx *Context) []pvm.Instruction {
	objDecl, _ := ctx.Objects.Get(e.TypeName)
	size := e.ExprType().Size()
	insts := []pvm.Instruction{
		&pvm.AllocInst{Dest: pvm.NewVariable(e.GetDest()), Size: pvm.NewConstant(pvm.Int64ToU64(int64(size)))},
	}
	for _, fi := range e.FieldInits {
		insts = append(insts, emitExpr(fi.Expr, ctx)...)
		field := lookupField(objDecl, fi.Name)
		insts = append(insts, &pvm.IntBinInst{
			Op:   pvm.IntAdd,
			Dest: pvm.NewVariable(fi.Dest),
			Src1: pvm.NewVariable(e.GetDest()),
			Src2: pvm.NewConstant(pvm.Int64ToU64(int64(field.Symbol.Offset))),
		})
		if field.Symbol.Type.Size() == 1 {
			insts = append(insts, &pvm.StoreByteInst{Addr: pvm.NewVariable(fi.Dest), Src: pvm.NewVariable(fi.Expr.GetDest())})
		} else {
			insts = append(insts, &pvm.StoreInst{Addr: pvm.NewVariable(fi.Dest), Src: pvm.NewVariable(fi.Expr.GetDest())})
		}
	}
	return insts
}

func lookupField(obj *ast.ObjectDecl, name string) *ast.Field {
	for _, f := range obj.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func emitFieldAccess(e *ast.FieldAccessExpr, ctx *Context) []pvm.Instruction {
	insts := emitExpr(e.Base, ctx)
	baseType := e.Base.ExprType()
	objDecl, _ := ctx.Objects.Get(baseType.Name)
	field := lookupField(objDecl, e.Field)

	addrTemp := e.GetDest() + "_addr"
	insts = append(insts, &pvm.IntBinInst{
		Op:   pvm.IntAdd,
		Dest: pvm.NewVariable(addrTemp),
		Src1: pvm.NewVariable(e.Base.GetDest()),
		Src2: pvm.NewConstant(pvm.Int64ToU64(int64(field.Symbol.Offset))),
	})
	if field.Symbol.Type.Size() == 1 {
		insts = append(insts, &pvm.LoadByteInst{Dest: pvm.NewVariable(e.GetDest()), Addr: pvm.NewVariable(addrTemp)})
	} else {
		insts = append(insts, &pvm.LoadInst{Dest: pvm.NewVariable(e.GetDest()), Addr: pvm.NewVariable(addrTemp)})
	}
	return insts
}

func emitCall(e *ast.CallExpr, ctx *Context) []pvm.Instruction {
	insts := emitExpr(e.Callee, ctx)
	for _, arg := range e.Args {
		insts = append(insts, emitExpr(arg, ctx)...)
	}
	for _, arg := range e.Args {
		insts = append(insts, &pvm.PushaInst{Src: pvm.NewVariable(arg.GetDest())})
	}

	callee, ok := e.Callee.(*ast.IdentExpr)
	if !ok {
		return insts
	}
	insts = append(insts, &pvm.CallInst{Target: pvm.NewLabel(callee.Name)})

	if e.ExprType().Kind != ast.KindVoid {
		insts = append(insts, &pvm.PoprInst{Dest: pvm.NewVariable(e.GetDest())})
	}
	return insts
}

func emitUnary(e *ast.UnaryExpr, ctx *Context) []pvm.Instruction {
	insts := emitExpr(e.Expr, ctx)
	switch e.Op {
	case token.Not:
		insts = append(insts, &pvm.IntBinInst{Op: pvm.IntSub, Dest: pvm.NewVariable(e.GetDest()), Src1: pvm.NewConstant(1), Src2: pvm.NewVariable(e.Expr.GetDest())})
	case token.Subtract:
		if e.Expr.ExprType().Kind == ast.KindFloat {
			insts = append(insts, &pvm.NegFInst{Dest: pvm.NewVariable(e.GetDest()), Src: pvm.NewVariable(e.Expr.GetDest())})
		} else {
			insts = append(insts, &pvm.NegInst{Dest: pvm.NewVariable(e.GetDest()), Src: pvm.NewVariable(e.Expr.GetDest())})
		}
	}
	return insts
}

func emitBinary(e *ast.BinaryExpr, ctx *Context) []pvm.Instruction {
	insts := emitExpr(e.Left, ctx)
	insts = append(insts, emitExpr(e.Right, ctx)...)

	isFloat := e.Left.ExprType().Kind == ast.KindFloat
	dest := pvm.NewVariable(e.GetDest())
	left := pvm.NewVariable(e.Left.GetDest())
	right := pvm.NewVariable(e.Right.GetDest())

	if e.Op == token.And || e.Op == token.Or {
		op := pvm.IntAnd
		if e.Op == token.Or {
			op = pvm.IntOr
		}
		return append(insts, &pvm.IntBinInst{Op: op, Dest: dest, Src1: left, Src2: right})
	}

	if isFloat {
		op, ok := floatOpFor(e.Op)
		if !ok {
			return insts
		}
		return append(insts, &pvm.FloatBinInst{Op: op, Dest: dest, Src1: left, Src2: right})
	}
	op, ok := intOpFor(e.Op)
	if !ok {
		return insts
	}
	return append(insts, &pvm.IntBinInst{Op: op, Dest: dest, Src1: left, Src2: right})
}

func intOpFor(op token.Operator) (pvm.IntOp, bool) {
	switch op {
	case token.Equals:
		return pvm.IntEq, true
	case token.NotEquals:
		return pvm.IntNeq, true
	case token.GreaterThan:
		return pvm.IntGt, true
	case token.LessThan:
		return pvm.IntLt, true
	case token.GreaterThanOrEqual:
		return pvm.IntGte, true
	case token.LessThanOrEqual:
		return pvm.IntLte, true
	case token.Add:
		return pvm.IntAdd, true
	case token.Subtract:
		return pvm.IntSub, true
	case token.Multiply:
		return pvm.IntMul, true
	case token.Divide:
		return pvm.IntDiv, true
	case token.Power:
		return pvm.IntPow, true
	case token.Modulo:
		return pvm.IntMod, true
	default:
		return 0, false
	}
}

func floatOpFor(op token.Operator) (pvm.FloatOp, bool) {
	switch op {
	case token.Equals:
		return pvm.FloatEq, true
	case token.NotEquals:
		return pvm.FloatNeq, true
	case token.GreaterThan:
		return pvm.FloatGt, true
	case token.LessThan:
		return pvm.FloatLt, true
	case token.GreaterThanOrEqual:
		return pvm.FloatGte, true
	case token.LessThanOrEqual:
		return pvm.FloatLte, true
	case token.Add:
		return pvm.FloatAdd, true
	case token.Subtract:
		return pvm.FloatSub, true
	case token.Multiply:
		return pvm.FloatMul, true
	case token.Divide:
		return pvm.FloatDiv, true
	case token.Power:
		return pvm.FloatPow, true
	case token.Modulo:
		return pvm.FloatMod, true
	default:
		return 0, false
	}
}
