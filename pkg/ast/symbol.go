package ast

// Symbol is the one piece of mutable state shared by reference between a
// declaration site and every use site referring to it. pkg/parser creates
// one per declared name; pkg/sem fills in Type; pkg/codegen fills in Dest
// and Offset during the assign/offset passes.
type Symbol struct {
	Name string
	Type PineType

	// Dest is the PVM variable name this symbol is stored under, assigned
	// by pkg/codegen's assign pass.
	Dest string

	// Offset is this symbol's byte offset within its enclosing object,
	// assigned by pkg/codegen's offset pass. Only object fields get one;
	// every other symbol keeps 0.
	Offset int
}

// NewSymbol creates a Symbol with an as-yet-unknown type, to be resolved by
// pkg/sem.
func NewSymbol(name string) *Symbol {
	return &Symbol{Name: name, Type: Unknown}
}
