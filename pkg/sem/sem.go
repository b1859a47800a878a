// Package sem implements Pine's semantic analysis: the fixed sequence of
// passes described in the component design — global scoping, local
// scoping, global typing, local typing, and return-path analysis. Each
// pass is a recursive AST visitor, run to completion before the next pass
// begins (no pass re-enters an earlier one).
package sem

import (
	"fmt"

	"pine/pkg/ast"
	"pine/pkg/token"
)

// Error reports a semantic-analysis failure together with the span it
// occurred at.
type Error struct {
	Span token.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Semantic Error: %s at %s", e.Msg, e.Span)
}

func errorf(span token.Span, format string, args ...any) error {
	return &Error{Span: span, Msg: fmt.Sprintf(format, args...)}
}

// Analyze runs every pass in order against prog, mutating it in place.
// It stops and returns the first error encountered, per the pipeline's
// propagation policy.
func Analyze(prog *ast.Program) error {
	global := ast.NewGlobalScope()

	if err := globalScoping(prog, global); err != nil {
		return err
	}
	if err := localScoping(prog, global); err != nil {
		return err
	}
	if err := globalTyping(prog, global); err != nil {
		return err
	}
	if err := localTyping(prog); err != nil {
		return err
	}
	if err := returnPathAnalysis(prog); err != nil {
		return err
	}
	return nil
}
