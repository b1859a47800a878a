package sem

import "pine/pkg/ast"

// globalTyping computes each object's and function's declared type and
// installs it on the corresponding symbol, then validates that a `main`
// function exists with an acceptable return type.
func globalTyping(prog *ast.Program, global *ast.Scope) error {
	for _, module := range prog.Modules {
		for _, obj := range module.Objects {
			fields := make([]ast.ObjectField, 0, len(obj.Fields))
			for _, f := range obj.Fields {
				resolved := resolveNamedType(f.Type, global)
				f.Type = resolved
				f.Symbol.Type = resolved
				fields = append(fields, ast.ObjectField{Name: f.Name, Type: resolved})
			}
			objType := ast.NewObject(obj.Name, fields)
			obj.Symbol.Type = objType
		}
	}

	for _, module := range prog.Modules {
		for _, fn := range module.Funs {
			params := make([]ast.PineType, 0, len(fn.Params))
			for _, p := range fn.Params {
				resolved := resolveNamedType(p.Type, global)
				p.Type = resolved
				p.Symbol.Type = resolved
				params = append(params, resolved)
			}
			ret := ast.Void
			if fn.RetType != nil {
				ret = resolveNamedType(*fn.RetType, global)
				fn.RetType = &ret
			}
			fn.Symbol.Type = ast.NewFunction(params, ret)
		}
	}

	return validateMain(prog)
}

// resolveNamedType fills in an object type's field list when the parser
// produced only a bare name reference (`ident` in the type grammar), by
// looking the name up in the global scope where object symbols carry
// their full type.
func resolveNamedType(t ast.PineType, global *ast.Scope) ast.PineType {
	if t.Kind != ast.KindObject || len(t.Fields) > 0 {
		return t
	}
	if sym, ok := global.Lookup(t.Name); ok && sym.Type.Kind == ast.KindObject {
		return sym.Type
	}
	return t
}

func validateMain(prog *ast.Program) error {
	for _, module := range prog.Modules {
		for _, fn := range module.Funs {
			if fn.Name != "main" {
				continue
			}
			ret := ast.Void
			if fn.RetType != nil {
				ret = *fn.RetType
			}
			if ret.Kind != ast.KindVoid && ret.Kind != ast.KindInteger {
				return errorf(fn.Span(), "main must return void or int")
			}
			return nil
		}
	}
	return errorf(prog.Span(), "no main function declared")
}
