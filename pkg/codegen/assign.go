package codegen

import "pine/pkg/ast"

// Assign walks prog top-down and gives every expression node a
// destination pvm variable via temps, grounded on the reference assign
// pass: literals/Call/Unary/Binary/NewObject each claim a fresh temp,
// IdentExpr instead copies its symbol's already-assigned dest (so reading
// a variable never costs a move), and a NewObjectExpr's field
// initializers each get both their own expression dest and a second temp
// to hold the computed field store address.
func Assign(prog *ast.Program, temps *TempStore) {
	for _, mod := range prog.Modules {
		for _, fn := range mod.Funs {
			for _, p := range fn.Params {
				p.Symbol.Dest = temps.Temp()
			}
			assignBlock(fn.Body, temps)
		}
	}
}

func assignBlock(b *ast.Block, temps *TempStore) {
	for _, stmt := range b.Stmts {
		assignStmt(stmt, temps)
	}
}

func assignStmt(stmt ast.Stmt, temps *TempStore) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		assignExpr(s.Expr, temps)
		s.Symbol.Dest = s.Expr.GetDest()
	case *ast.SetStmt:
		assignExpr(s.Expr, temps)
	case *ast.IfStmt:
		for _, c := range s.Conds {
			assignExpr(c, temps)
		}
		for _, blk := range s.ThenBlocks {
			assignBlock(blk, temps)
		}
		if s.ElseBlock != nil {
			assignBlock(s.ElseBlock, temps)
		}
	case *ast.WhileStmt:
		assignExpr(s.Cond, temps)
		assignBlock(s.Block, temps)
	case *ast.ReturnStmt:
		if s.Expr != nil {
			assignExpr(s.Expr, temps)
		}
	case *ast.ExprStmt:
		assignExpr(s.Expr, temps)
	case *ast.Block:
		assignBlock(s, temps)
	}
}

func assignExpr(expr ast.Expr, temps *TempStore) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.IdentExpr:
		e.SetDest(e.Ident.Dest)
	case *ast.NewObjectExpr:
		e.SetDest(temps.Temp())
		for _, fi := range e.FieldInits {
			assignExpr(fi.Expr, temps)
			fi.Dest = temps.Temp()
		}
	case *ast.FieldAccessExpr:
		assignExpr(e.Base, temps)
		e.SetDest(temps.Temp())
	case *ast.CallExpr:
		assignExpr(e.Callee, temps)
		for _, a := range e.Args {
			assignExpr(a, temps)
		}
		e.SetDest(temps.Temp())
	case *ast.UnaryExpr:
		assignExpr(e.Expr, temps)
		e.SetDest(temps.Temp())
	case *ast.BinaryExpr:
		assignExpr(e.Left, temps)
		assignExpr(e.Right, temps)
		e.SetDest(temps.Temp())
	default:
		// literals: IntLitExpr, FloatLitExpr, BoolLitExpr, StringLitExpr
		e.SetDest(temps.Temp())
	}
}
