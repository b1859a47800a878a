package sem

import "pine/pkg/ast"

// localScoping resolves every identifier reference and builds the tree of
// nested scopes: one function-level scope per function (owned by the
// function's symbol, shared by its parameters and its top-level body — no
// extra block-scope wraps the immediate function body), and one fresh
// local scope per if/else/while block.
func localScoping(prog *ast.Program, global *ast.Scope) error {
	for _, module := range prog.Modules {
		for _, obj := range module.Objects {
			for _, f := range obj.Fields {
				sym := ast.NewSymbol(f.Name)
				f.Symbol = sym
				f.SetScope(global)
			}
		}

		for _, fn := range module.Funs {
			if err := scopeFunction(fn, global); err != nil {
				return err
			}
		}
	}
	return nil
}

func scopeFunction(fn *ast.Function, global *ast.Scope) error {
	scope := ast.NewFunctionScope(global, fn.Symbol)
	fn.SetScope(scope)

	for _, param := range fn.Params {
		sym := ast.NewSymbol(param.Name)
		if !scope.Declare(sym) {
			return errorf(param.Span(), "identifier %s has already been defined", param.Name)
		}
		param.Symbol = sym
		param.SetScope(scope)
	}

	return scopeBlock(fn.Body, scope)
}

// scopeBlock resolves each statement in block using scope as the current
// (already-created) scope; it does not create a new scope for block
// itself, since that is the caller's responsibility (function bodies
// reuse the function scope; if/while bodies get a fresh child scope from
// their caller).
func scopeBlock(block *ast.Block, scope *ast.Scope) error {
	block.SetScope(scope)
	for _, stmt := range block.Stmts {
		if err := scopeStmt(stmt, scope); err != nil {
			return err
		}
	}
	return nil
}

func scopeStmt(stmt ast.Stmt, scope *ast.Scope) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		s.SetScope(scope)
		if err := scopeExpr(s.Expr, scope); err != nil {
			return err
		}
		sym := ast.NewSymbol(s.Name)
		if !scope.Declare(sym) {
			return errorf(s.Span(), "identifier %s has already been defined", s.Name)
		}
		s.Symbol = sym
		return nil

	case *ast.SetStmt:
		s.SetScope(scope)
		sym, ok := scope.Lookup(s.Name)
		if !ok {
			return errorf(s.Span(), "identifier %s does not exist in scope", s.Name)
		}
		s.Symbol = sym
		return scopeExpr(s.Expr, scope)

	case *ast.IfStmt:
		s.SetScope(scope)
		for _, cond := range s.Conds {
			if err := scopeExpr(cond, scope); err != nil {
				return err
			}
		}
		for _, then := range s.ThenBlocks {
			if err := scopeBlock(then, ast.NewLocalScope(scope)); err != nil {
				return err
			}
		}
		if s.ElseBlock != nil {
			if err := scopeBlock(s.ElseBlock, ast.NewLocalScope(scope)); err != nil {
				return err
			}
		}
		return nil

	case *ast.WhileStmt:
		s.SetScope(scope)
		if err := scopeExpr(s.Cond, scope); err != nil {
			return err
		}
		return scopeBlock(s.Block, ast.NewLocalScope(scope))

	case *ast.ReturnStmt:
		s.SetScope(scope)
		if s.Expr != nil {
			return scopeExpr(s.Expr, scope)
		}
		return nil

	case *ast.ExprStmt:
		s.SetScope(scope)
		return scopeExpr(s.Expr, scope)

	case *ast.Block:
		return scopeBlock(s, ast.NewLocalScope(scope))

	default:
		return errorf(stmt.Span(), "unhandled statement type %T", stmt)
	}
}

func scopeExpr(expr ast.Expr, scope *ast.Scope) error {
	switch e := expr.(type) {
	case *ast.IntLitExpr:
		e.SetScope(scope)
		return nil
	case *ast.FloatLitExpr:
		e.SetScope(scope)
		return nil
	case *ast.BoolLitExpr:
		e.SetScope(scope)
		return nil
	case *ast.StringLitExpr:
		e.SetScope(scope)
		return nil

	case *ast.IdentExpr:
		e.SetScope(scope)
		sym, ok := scope.Lookup(e.Name)
		if !ok {
			return errorf(e.Span(), "identifier %s does not exist in scope", e.Name)
		}
		e.Ident = sym
		return nil

	case *ast.NewObjectExpr:
		e.SetScope(scope)
		for _, init := range e.FieldInits {
			init.SetScope(scope)
			if err := scopeExpr(init.Expr, scope); err != nil {
				return err
			}
		}
		return nil

	case *ast.FieldAccessExpr:
		e.SetScope(scope)
		return scopeExpr(e.Base, scope)

	case *ast.CallExpr:
		e.SetScope(scope)
		if err := scopeExpr(e.Callee, scope); err != nil {
			return err
		}
		for _, arg := range e.Args {
			if err := scopeExpr(arg, scope); err != nil {
				return err
			}
		}
		return nil

	case *ast.UnaryExpr:
		e.SetScope(scope)
		return scopeExpr(e.Expr, scope)

	case *ast.BinaryExpr:
		e.SetScope(scope)
		if err := scopeExpr(e.Left, scope); err != nil {
			return err
		}
		return scopeExpr(e.Right, scope)

	default:
		return errorf(expr.Span(), "unhandled expression type %T", expr)
	}
}
