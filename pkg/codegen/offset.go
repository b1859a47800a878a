package codegen

import "pine/pkg/ast"

// Offset assigns every object field a byte offset within its allocated
// block, in declaration order, grounded on the reference offset pass
// (which walks only object declarations — function bodies need no byte
// layout of their own since every local lives in its own pvm variable).
func Offset(prog *ast.Program) {
	for _, mod := range prog.Modules {
		for _, obj := range mod.Objects {
			offsetObject(obj)
		}
	}
}

func offsetObject(obj *ast.ObjectDecl) {
	var cur int
	for _, f := range obj.Fields {
		f.Symbol.Offset = cur
		cur += f.Symbol.Type.Size()
	}
}
