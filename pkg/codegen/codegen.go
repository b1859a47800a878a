// Package codegen lowers a type-checked AST into a flat PVM instruction
// list, in three passes: Assign (temp allocation), Offset (object field
// layout), and Emit (AST -> []pvm.Instruction).
package codegen

import (
	"pine/pkg/ast"
	"pine/pkg/pvm"
)

// Generate runs the full assign/offset/emit pipeline over prog and returns
// the resulting program as a flat instruction list, ready for pvm.Run.
func Generate(prog *ast.Program) []pvm.Instruction {
	temps := NewTempStore()
	Assign(prog, temps)
	Offset(prog)
	return Emit(prog, NewContext())
}
