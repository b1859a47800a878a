package sem

import "pine/pkg/ast"

// returnPathAnalysis enforces that every non-void function returns on all
// paths, grounded on the reference sem::ret pass: a block returns as soon
// as any statement in it returns (early-exit semantics — code unreachable
// after a return doesn't change the determination); an if returns only if
// every then-branch and the else-branch each return; a while contributes
// its body's determination regardless of whether the loop body is known to
// execute.
func returnPathAnalysis(prog *ast.Program) error {
	for _, module := range prog.Modules {
		for _, fn := range module.Funs {
			isVoid := fn.RetType == nil || fn.RetType.Kind == ast.KindVoid
			if isVoid {
				if len(fn.Body.Stmts) == 0 || !isReturnStmt(fn.Body.Stmts[len(fn.Body.Stmts)-1]) {
					implicit := &ast.ReturnStmt{Implicit: true}
					implicit.SetSpan(fn.Body.Span())
					implicit.SetScope(fn.Body.Scope())
					fn.Body.Stmts = append(fn.Body.Stmts, implicit)
				}
				continue
			}
			if !blockAllPathsReturn(fn.Body) {
				return errorf(fn.Span(), "function %s does not return on all paths", fn.Name)
			}
		}
	}
	return nil
}

func isReturnStmt(stmt ast.Stmt) bool {
	_, ok := stmt.(*ast.ReturnStmt)
	return ok
}

// blockAllPathsReturn reports whether some statement in block returns;
// once one does, the rest of the block is unreachable and does not affect
// the determination.
func blockAllPathsReturn(block *ast.Block) bool {
	for _, stmt := range block.Stmts {
		if stmtReturns(stmt) {
			return true
		}
	}
	return false
}

func stmtReturns(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.IfStmt:
		if s.ElseBlock == nil {
			return false
		}
		for _, then := range s.ThenBlocks {
			if !blockAllPathsReturn(then) {
				return false
			}
		}
		return blockAllPathsReturn(s.ElseBlock)
	case *ast.WhileStmt:
		return blockAllPathsReturn(s.Block)
	case *ast.Block:
		return blockAllPathsReturn(s)
	default:
		return false
	}
}
