package sem

import "pine/pkg/ast"

// globalScoping installs every top-level function and object symbol into
// the global scope, grounded on the reference scoping/global pass. Sets
// the Scope attribute on the module and every top-level item.
func globalScoping(prog *ast.Program, global *ast.Scope) error {
	for _, module := range prog.Modules {
		module.SetScope(global)

		for _, fn := range module.Funs {
			sym := ast.NewSymbol(fn.Name)
			if !global.Declare(sym) {
				return errorf(fn.Span(), "identifier %s has already been defined", fn.Name)
			}
			fn.Symbol = sym
			fn.SetScope(global)
		}

		for _, obj := range module.Objects {
			sym := ast.NewSymbol(obj.Name)
			if !global.Declare(sym) {
				return errorf(obj.Span(), "identifier %s has already been defined", obj.Name)
			}
			obj.Symbol = sym
			obj.SetScope(global)
		}
	}
	return nil
}
