// Package token defines the lexical vocabulary of Pine: the token kinds
// produced by pkg/lexer and consumed by pkg/parser, together with the
// source-position bookkeeping (Point, Span) every node in pkg/ast carries.
package token

import "fmt"

// Point is a single location in a source file, 1-indexed on both axes to
// match the way editors and compiler diagnostics report positions.
type Point struct {
	Line int
	Col  int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span is a half-open range [Start, End) of source text. Every token and
// every AST node carries one, so diagnostics can point at exact source text.
type Span struct {
	Start Point
	End   Point
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Add concatenates two spans, producing the smallest span covering both.
// Used when an AST node's span must cover several child tokens/nodes.
func (s Span) Add(rhs Span) Span {
	return Span{Start: s.Start, End: rhs.End}
}

// Type classifies a Token. Unlike Keyword/Punctuation/Operator, which
// identify sub-variants, Type distinguishes the broad lexical categories.
type Type int

const (
	Illegal Type = iota
	EOF
	KeywordTok
	Identifier
	Integer
	Float
	String
	PunctuationTok
	OperatorTok
)

func (t Type) String() string {
	switch t {
	case Illegal:
		return "Illegal"
	case EOF:
		return "EOF"
	case KeywordTok:
		return "Keyword"
	case Identifier:
		return "Identifier"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case String:
		return "String"
	case PunctuationTok:
		return "Punctuation"
	case OperatorTok:
		return "Operator"
	default:
		return "Unknown"
	}
}

// Token is the atomic unit produced by pkg/lexer. Lit holds the exact
// source text (identifier name, numeral text, string contents, the
// punctuation/operator symbol, or the keyword spelling).
type Token struct {
	Type Type
	Lit  string
	Span Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Lit, t.Span)
}
