// Package ast defines Pine's abstract syntax tree, its type system
// (PineType) and its symbol/scope model. Every node carries a Span and,
// once pkg/sem has run, a Scope; every expression node additionally carries
// a Type and a Dest (the PVM variable pkg/codegen materializes its value
// into).
package ast

import "pine/pkg/token"

// Node is implemented by every AST node.
type Node interface {
	Span() token.Span
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
	// ExprType returns the node's resolved type, Unknown before pkg/sem runs.
	ExprType() PineType
	// SetType is called by pkg/sem's local typing pass.
	SetType(PineType)
	// GetDest returns the PVM variable this expression's value lives in,
	// set by pkg/codegen's assign pass.
	GetDest() string
	SetDest(string)
}

type base struct {
	NodeSpan  token.Span
	NodeScope *Scope
}

func (b *base) Span() token.Span  { return b.NodeSpan }
func (b *base) Scope() *Scope     { return b.NodeScope }
func (b *base) SetSpan(s token.Span) { b.NodeSpan = s }
func (b *base) SetScope(s *Scope) { b.NodeScope = s }

type exprBase struct {
	base
	Typ  PineType
	Dest string
}

func (e *exprBase) exprNode()          {}
func (e *exprBase) ExprType() PineType { return e.Typ }
func (e *exprBase) SetType(t PineType) { e.Typ = t }
func (e *exprBase) GetDest() string    { return e.Dest }
func (e *exprBase) SetDest(d string)   { e.Dest = d }

// ----------------------------------------------------------------------------
// Top-level structure

// Program is the root of the tree: a flat list of modules. Cross-module
// imports are out of scope (see SPEC_FULL.md §6), so every compiled program
// in practice has exactly one Module.
type Program struct {
	base
	Modules []*Module
}

// Module groups top-level function and object declarations parsed from one
// source file.
type Module struct {
	base
	Funs    []*Function
	Objects []*ObjectDecl
}

// Function is a top-level `fun` declaration.
type Function struct {
	base
	Symbol  *Symbol
	Name    string
	Params  []*Param
	RetType *PineType // nil means the declared return type is Void
	Body    *Block
}

// Param is one function parameter.
type Param struct {
	base
	Symbol *Symbol
	Name   string
	Type   PineType
}

// ObjectDecl is a top-level `object` (record) declaration.
type ObjectDecl struct {
	base
	Symbol *Symbol
	Name   string
	Fields []*Field
}

// Field is one field of an ObjectDecl, in declaration order (pkg/codegen's
// offset pass depends on this order being preserved).
type Field struct {
	base
	Symbol *Symbol
	Name   string
	Type   PineType
}

// ----------------------------------------------------------------------------
// Statements

// Block is a braces-free sequence of statements, introduced by `begin...end`
// and by each arm of `if`/`while`.
type Block struct {
	base
	Stmts []Stmt
}

func (b *Block) stmtNode() {}

// LetStmt declares a new identifier and binds it to the value of Expr.
type LetStmt struct {
	base
	Symbol  *Symbol
	Name    string
	Annot   *PineType // declared type annotation, nil if omitted
	Expr    Expr
}

func (s *LetStmt) stmtNode() {}

// SetStmt reassigns an already-declared identifier.
type SetStmt struct {
	base
	Symbol *Symbol
	Name   string
	Expr   Expr
}

func (s *SetStmt) stmtNode() {}

// IfStmt models the elif-chain shape adopted per SPEC_FULL.md §6: Conds[i]
// guards ThenBlocks[i]; ElseBlock is optional.
type IfStmt struct {
	base
	Conds      []Expr
	ThenBlocks []*Block
	ElseBlock  *Block
}

func (s *IfStmt) stmtNode() {}

// WhileStmt is a pre-tested loop.
type WhileStmt struct {
	base
	Cond  Expr
	Block *Block
}

func (s *WhileStmt) stmtNode() {}

// ReturnStmt optionally carries a value; Expr is nil for a bare `return`.
type ReturnStmt struct {
	base
	Expr Expr
	// Implicit marks a return inserted by the return-path analysis pass
	// rather than written by the programmer.
	Implicit bool
}

func (s *ReturnStmt) stmtNode() {}

// ExprStmt evaluates an expression purely for its side effects.
type ExprStmt struct {
	base
	Expr Expr
}

func (s *ExprStmt) stmtNode() {}

// ----------------------------------------------------------------------------
// Expressions

// IntLitExpr is an integer literal.
type IntLitExpr struct {
	exprBase
	Value int64
}

// FloatLitExpr is a floating point literal.
type FloatLitExpr struct {
	exprBase
	Value float64
}

// BoolLitExpr is a boolean literal.
type BoolLitExpr struct {
	exprBase
	Value bool
}

// StringLitExpr is a string literal.
type StringLitExpr struct {
	exprBase
	Value string
}

// IdentExpr references a declared name; Ident is filled in by local scoping.
type IdentExpr struct {
	exprBase
	Name  string
	Ident *Symbol
}

// NewObjectExpr constructs an instance of an object type.
type NewObjectExpr struct {
	exprBase
	TypeName    string
	FieldInits  []*FieldInit
}

// FieldInit is one `name: expr` pair inside a `new` expression.
type FieldInit struct {
	base
	Name string
	Expr Expr
	// Dest is the temp holding the address of this field's storage slot,
	// assigned by pkg/codegen's assign pass (distinct from Expr's own Dest,
	// which holds the initializer's computed value).
	Dest string
}

// FieldAccessExpr reads a field off an object value.
type FieldAccessExpr struct {
	exprBase
	Base  Expr
	Field string
}

// CallExpr invokes a function.
type CallExpr struct {
	exprBase
	Callee Expr
	Args   []Expr
}

// UnaryExpr applies a unary operator (`not`, unary `-`) to an operand.
type UnaryExpr struct {
	exprBase
	Op   token.Operator
	Expr Expr
}

// BinaryExpr applies a binary operator to two operands.
type BinaryExpr struct {
	exprBase
	Op    token.Operator
	Left  Expr
	Right Expr
}
