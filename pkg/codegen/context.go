package codegen

import (
	"fmt"

	"pine/pkg/ast"
	"pine/pkg/utils"
)

// LabelGen hands out unique if{n}/while{n} label prefixes off one shared
// counter, so an if nested inside a while never collides with it even
// though they're generated from two different statement kinds.
type LabelGen struct {
	counter int
}

func NewLabelGen() *LabelGen { return &LabelGen{} }

func (g *LabelGen) IfPrefix() string {
	n := g.counter
	g.counter++
	return fmt.Sprintf("if%d", n)
}

func (g *LabelGen) WhilePrefix() string {
	n := g.counter
	g.counter++
	return fmt.Sprintf("while%d", n)
}

// EmitOptions controls optional behavior of the emit pass.
type EmitOptions struct {
	// TraceReturns gates the `printi`/`println` pair the reference emit
	// pass unconditionally wrote before every value-carrying return. Off
	// by default; see SPEC_FULL.md.
	TraceReturns bool
}

// Context bundles the mutable, shared state threaded through the emit
// pass: label generation, object declarations keyed by name (for
// `new Type(...)` field offset lookups), and emit behavior flags.
type Context struct {
	Labels  *LabelGen
	Objects *utils.OrderedMap[string, *ast.ObjectDecl]
	Emit    EmitOptions
}

func NewContext() *Context {
	return &Context{
		Labels:  NewLabelGen(),
		Objects: utils.NewOrderedMap[string, *ast.ObjectDecl](),
	}
}
