// Package lexer turns Pine source text into a slice of token.Token. It is a
// hand-rolled character scanner rather than a parser-combinator front end:
// Pine's own grammar needs exact token spans and longest-match punctuation
// and operator scanning, which a combinator library buys nothing for.
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"pine/pkg/token"
)

// Error reports a lexical failure together with the point it occurred at.
type Error struct {
	Point token.Point
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Parse Error: %s at %s", e.Msg, e.Point)
}

// Scanner converts a string of Pine source into tokens one rune at a time,
// tracking line/column as it goes so every emitted Token carries an exact
// Span.
type Scanner struct {
	input     []rune
	index     int
	line, col int
}

// New constructs a Scanner over src.
func New(src string) *Scanner {
	return &Scanner{input: []rune(src), index: 0, line: 1, col: 1}
}

// Scan lexes the entire input and returns the resulting tokens, or the
// first lexical error encountered.
func Scan(src string) ([]token.Token, error) {
	s := New(src)
	return s.ScanAll()
}

// ScanAll drives the scanner to completion, returning every token
// (including a trailing EOF token) or the first error hit.
func (s *Scanner) ScanAll() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

func (s *Scanner) point() token.Point {
	return token.Point{Line: s.line, Col: s.col}
}

func (s *Scanner) peek() (rune, bool) {
	if s.index >= len(s.input) {
		return 0, false
	}
	return s.input[s.index], true
}

func (s *Scanner) peekAt(offset int) (rune, bool) {
	i := s.index + offset
	if i < 0 || i >= len(s.input) {
		return 0, false
	}
	return s.input[i], true
}

func (s *Scanner) advance() rune {
	r := s.input[s.index]
	s.index++
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		r, ok := s.peek()
		if !ok {
			return
		}
		switch {
		case unicode.IsSpace(r):
			s.advance()
		case r == '#':
			for {
				r, ok := s.peek()
				if !ok || r == '\n' {
					break
				}
				s.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentCont(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '~' || r == '$' || r == '@'
}

// next scans and returns the next token, or an EOF token once input is
// exhausted.
func (s *Scanner) next() (token.Token, error) {
	s.skipWhitespaceAndComments()

	start := s.point()
	r, ok := s.peek()
	if !ok {
		return token.Token{Type: token.EOF, Span: token.Span{Start: start, End: start}}, nil
	}

	switch {
	case isIdentStart(r):
		return s.scanIdentOrKeyword(start)
	case unicode.IsDigit(r):
		return s.scanNumeral(start)
	case r == '"':
		return s.scanString(start)
	default:
		return s.scanPunctuationOrOperator(start)
	}
}

func (s *Scanner) scanIdentOrKeyword(start token.Point) (token.Token, error) {
	var b strings.Builder
	for {
		r, ok := s.peek()
		if !ok || !isIdentCont(r) {
			break
		}
		b.WriteRune(s.advance())
	}
	lit := b.String()
	span := token.Span{Start: start, End: s.point()}

	if _, isKw := token.LookupKeyword(lit); isKw {
		return token.Token{Type: token.KeywordTok, Lit: lit, Span: span}, nil
	}
	for _, op := range token.WordOperators() {
		if op.String() == lit {
			return token.Token{Type: token.OperatorTok, Lit: lit, Span: span}, nil
		}
	}
	return token.Token{Type: token.Identifier, Lit: lit, Span: span}, nil
}

func (s *Scanner) scanNumeral(start token.Point) (token.Token, error) {
	var b strings.Builder
	for {
		r, ok := s.peek()
		if !ok || !unicode.IsDigit(r) {
			break
		}
		b.WriteRune(s.advance())
	}

	isFloat := false
	if r, ok := s.peek(); ok && r == '.' {
		if next, ok := s.peekAt(1); ok && unicode.IsDigit(next) {
			isFloat = true
			b.WriteRune(s.advance())
			for {
				r, ok := s.peek()
				if !ok || !unicode.IsDigit(r) {
					break
				}
				b.WriteRune(s.advance())
			}
		}
	}

	span := token.Span{Start: start, End: s.point()}
	if isFloat {
		return token.Token{Type: token.Float, Lit: b.String(), Span: span}, nil
	}
	return token.Token{Type: token.Integer, Lit: b.String(), Span: span}, nil
}

func (s *Scanner) scanString(start token.Point) (token.Token, error) {
	s.advance() // opening quote
	var b strings.Builder
	for {
		r, ok := s.peek()
		if !ok {
			return token.Token{}, &Error{Point: s.point(), Msg: "unterminated string literal"}
		}
		if r == '"' {
			s.advance()
			break
		}
		if r == '\\' {
			s.advance()
			esc, ok := s.peek()
			if !ok {
				return token.Token{}, &Error{Point: s.point(), Msg: "unterminated string literal"}
			}
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			default:
				b.WriteRune(esc)
			}
			s.advance()
			continue
		}
		b.WriteRune(s.advance())
	}
	return token.Token{Type: token.String, Lit: b.String(), Span: token.Span{Start: start, End: s.point()}}, nil
}

func (s *Scanner) scanPunctuationOrOperator(start token.Point) (token.Token, error) {
	maxLen := token.MaxPunctuationLength()
	if token.MaxOperatorLength() > maxLen {
		maxLen = token.MaxOperatorLength()
	}

	for length := maxLen; length >= 1; length-- {
		var b strings.Builder
		for i := 0; i < length; i++ {
			r, ok := s.peekAt(i)
			if !ok {
				break
			}
			b.WriteRune(r)
		}
		candidate := b.String()
		if len(candidate) != length {
			continue
		}

		if _, ok := token.LookupPunctuation(candidate); ok {
			for i := 0; i < length; i++ {
				s.advance()
			}
			return token.Token{Type: token.PunctuationTok, Lit: candidate, Span: token.Span{Start: start, End: s.point()}}, nil
		}
		if _, ok := token.LookupOperator(candidate); ok {
			for i := 0; i < length; i++ {
				s.advance()
			}
			return token.Token{Type: token.OperatorTok, Lit: candidate, Span: token.Span{Start: start, End: s.point()}}, nil
		}
	}

	r, _ := s.peek()
	return token.Token{}, &Error{Point: start, Msg: fmt.Sprintf("unrecognized character %q", r)}
}
