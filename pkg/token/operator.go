package token

// Operator enumerates Pine's binary and unary operators. Precedence follows
// the original reference implementation's table exactly: lower numbers bind
// tighter (Power binds tightest, Or loosest).
type Operator int

const (
	Equals Operator = iota
	NotEquals
	GreaterThan
	LessThan
	GreaterThanOrEqual
	LessThanOrEqual
	Not
	Add
	Subtract
	Multiply
	Divide
	Modulo
	Power
	And
	Or
)

var opText = map[Operator]string{
	Equals: "==", NotEquals: "!=", GreaterThan: ">", LessThan: "<",
	GreaterThanOrEqual: ">=", LessThanOrEqual: "<=", Not: "not",
	Add: "+", Subtract: "-", Multiply: "*", Divide: "/", Modulo: "%",
	Power: "**", And: "and", Or: "or",
}

// allOperators is ordered longest-symbol-first so the scanner can greedily
// match "==" before "=" and so on.
var allOperators = []Operator{
	Equals, NotEquals, GreaterThanOrEqual, LessThanOrEqual, Power,
	GreaterThan, LessThan, Add, Subtract, Multiply, Divide, Modulo,
}

// wordOperators are the operator variants spelled with identifier
// characters rather than symbols (`not`, `and`, `or`). They are scanned
// alongside keywords (same character class) but are NOT part of the
// keyword alphabet, so the lexer must check both tables for an identifier
// run.
var wordOperators = []Operator{Not, And, Or}

func (o Operator) String() string { return opText[o] }

// AllOperators returns every symbol-spelled operator variant, longest
// symbol first.
func AllOperators() []Operator { return allOperators }

// WordOperators returns the operator variants spelled as words (`not`,
// `and`, `or`).
func WordOperators() []Operator { return wordOperators }

// MaxOperatorLength returns the length in bytes of the longest symbol-
// spelled operator ("==", "!=", ">=", "<=", "**", all length 2).
func MaxOperatorLength() int { return 2 }

// LookupOperator returns the Operator matching sym and true, or the zero
// value and false. It checks both the symbol-spelled and word-spelled
// operator tables.
func LookupOperator(sym string) (Operator, bool) {
	for o, s := range opText {
		if s == sym {
			return o, true
		}
	}
	return 0, false
}

// Precedence returns the binding power of a binary operator: lower values
// bind tighter. Unary operators (Not used as a prefix, Subtract used as a
// unary negation) are handled separately by the parser.
func (o Operator) Precedence() int {
	switch o {
	case Power:
		return 1
	case Multiply, Divide, Modulo:
		return 2
	case Add, Subtract:
		return 3
	case Equals, NotEquals, GreaterThan, LessThan, GreaterThanOrEqual, LessThanOrEqual:
		return 4
	case Not:
		return 5
	case And:
		return 6
	case Or:
		return 7
	default:
		return 0
	}
}

// IsUnary reports whether o may appear as a unary (prefix) operator.
func (o Operator) IsUnary() bool {
	return o == Not || o == Subtract
}

// IsBinary reports whether o may appear as a binary (infix) operator.
func (o Operator) IsBinary() bool {
	return o != Not
}
