package sem

import (
	"pine/pkg/ast"
	"pine/pkg/token"
)

// localTyping infers the type of every expression bottom-up and checks
// every statement against the operator typing table in the component
// design.
func localTyping(prog *ast.Program) error {
	for _, module := range prog.Modules {
		for _, fn := range module.Funs {
			if err := typeBlock(fn.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

func typeBlock(block *ast.Block) error {
	for _, stmt := range block.Stmts {
		if err := typeStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func typeStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		if err := typeExpr(s.Expr); err != nil {
			return err
		}
		if s.Annot != nil && !s.Annot.Equal(s.Expr.ExprType()) {
			return errorf(s.Span(), "types do not match")
		}
		s.Symbol.Type = s.Expr.ExprType()
		return nil

	case *ast.SetStmt:
		if err := typeExpr(s.Expr); err != nil {
			return err
		}
		if !s.Symbol.Type.Equal(s.Expr.ExprType()) {
			return errorf(s.Span(), "types do not match")
		}
		return nil

	case *ast.IfStmt:
		for _, cond := range s.Conds {
			if err := typeExpr(cond); err != nil {
				return err
			}
			if cond.ExprType().Kind != ast.KindBool {
				return errorf(cond.Span(), "types do not match")
			}
		}
		for _, then := range s.ThenBlocks {
			if err := typeBlock(then); err != nil {
				return err
			}
		}
		if s.ElseBlock != nil {
			return typeBlock(s.ElseBlock)
		}
		return nil

	case *ast.WhileStmt:
		if err := typeExpr(s.Cond); err != nil {
			return err
		}
		if s.Cond.ExprType().Kind != ast.KindBool {
			return errorf(s.Cond.Span(), "types do not match")
		}
		return typeBlock(s.Block)

	case *ast.ReturnStmt:
		if s.Expr == nil {
			return nil
		}
		if err := typeExpr(s.Expr); err != nil {
			return err
		}
		fnSym, ok := s.Scope().EnclosingFunction()
		if !ok {
			return errorf(s.Span(), "return outside of a function")
		}
		want := *fnSym.Type.Ret
		if !want.Equal(s.Expr.ExprType()) {
			return errorf(s.Span(), "types do not match")
		}
		return nil

	case *ast.ExprStmt:
		return typeExpr(s.Expr)

	case *ast.Block:
		return typeBlock(s)

	default:
		return errorf(stmt.Span(), "unhandled statement type %T", stmt)
	}
}

func typeExpr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.IntLitExpr:
		e.SetType(ast.Integer)
		return nil
	case *ast.FloatLitExpr:
		e.SetType(ast.Float)
		return nil
	case *ast.BoolLitExpr:
		e.SetType(ast.Bool)
		return nil
	case *ast.StringLitExpr:
		e.SetType(ast.String)
		return nil

	case *ast.IdentExpr:
		e.SetType(e.Ident.Type)
		return nil

	case *ast.NewObjectExpr:
		objType, ok := e.Scope().Lookup(e.TypeName)
		if !ok {
			return errorf(e.Span(), "identifier %s does not exist in scope", e.TypeName)
		}
		for _, init := range e.FieldInits {
			if err := typeExpr(init.Expr); err != nil {
				return err
			}
			fieldType, ok := objType.Type.FieldType(init.Name)
			if !ok || !fieldType.Equal(init.Expr.ExprType()) {
				return errorf(init.Span(), "types do not match")
			}
		}
		e.SetType(objType.Type)
		return nil

	case *ast.FieldAccessExpr:
		if err := typeExpr(e.Base); err != nil {
			return err
		}
		fieldType, ok := e.Base.ExprType().FieldType(e.Field)
		if !ok {
			return errorf(e.Span(), "object has no field %s", e.Field)
		}
		e.SetType(fieldType)
		return nil

	case *ast.CallExpr:
		if err := typeExpr(e.Callee); err != nil {
			return err
		}
		calleeType := e.Callee.ExprType()
		if calleeType.Kind != ast.KindFunction {
			return errorf(e.Span(), "types do not match")
		}
		if len(e.Args) != len(calleeType.Params) {
			return errorf(e.Span(), "types do not match")
		}
		for i, arg := range e.Args {
			if err := typeExpr(arg); err != nil {
				return err
			}
			if !arg.ExprType().Equal(calleeType.Params[i]) {
				return errorf(arg.Span(), "types do not match")
			}
		}
		e.SetType(*calleeType.Ret)
		return nil

	case *ast.UnaryExpr:
		if err := typeExpr(e.Expr); err != nil {
			return err
		}
		operandType := e.Expr.ExprType()
		switch e.Op {
		case token.Not:
			if operandType.Kind != ast.KindBool {
				return errorf(e.Span(), "types do not match")
			}
			e.SetType(ast.Bool)
		case token.Subtract:
			if operandType.Kind != ast.KindInteger && operandType.Kind != ast.KindFloat {
				return errorf(e.Span(), "types do not match")
			}
			e.SetType(operandType)
		default:
			return errorf(e.Span(), "unsupported unary operator %s", e.Op)
		}
		return nil

	case *ast.BinaryExpr:
		if err := typeExpr(e.Left); err != nil {
			return err
		}
		if err := typeExpr(e.Right); err != nil {
			return err
		}
		lt, rt := e.Left.ExprType(), e.Right.ExprType()

		switch e.Op {
		case token.Equals, token.NotEquals, token.GreaterThan, token.LessThan, token.GreaterThanOrEqual, token.LessThanOrEqual:
			if !lt.Equal(rt) {
				return errorf(e.Span(), "types do not match")
			}
			e.SetType(ast.Bool)
		case token.And, token.Or:
			if lt.Kind != ast.KindBool || rt.Kind != ast.KindBool {
				return errorf(e.Span(), "types do not match")
			}
			e.SetType(ast.Bool)
		case token.Add, token.Subtract, token.Multiply, token.Divide, token.Power, token.Modulo:
			if !lt.Equal(rt) || (lt.Kind != ast.KindInteger && lt.Kind != ast.KindFloat) {
				return errorf(e.Span(), "types do not match")
			}
			e.SetType(lt)
		default:
			return errorf(e.Span(), "unsupported binary operator %s", e.Op)
		}
		return nil

	default:
		return errorf(expr.Span(), "unhandled expression type %T", expr)
	}
}
