// Package parser implements Pine's recursive-descent parser: a statement
// grammar driven by lookahead on keywords, and a Pratt/precedence-climbing
// expression parser driven by pkg/token's Operator.Precedence table.
package parser

import (
	"fmt"
	"strconv"

	"pine/pkg/ast"
	"pine/pkg/lexer"
	"pine/pkg/token"
)

// Error reports a parse failure together with the span it occurred at.
type Error struct {
	Span token.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Parse Error: %s at %s", e.Msg, e.Span)
}

// Parser consumes a fixed token slice produced by pkg/lexer.
type Parser struct {
	toks []token.Token
	pos  int
}

// Parse lexes and parses src into a Program.
func Parse(src string) (*ast.Program, error) {
	toks, err := lexer.Scan(src)
	if err != nil {
		return nil, err
	}
	return New(toks).ParseProgram()
}

// New constructs a Parser over an already-scanned token slice.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) atEOF() bool {
	return p.cur().Type == token.EOF
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) isKeyword(kw token.Keyword) bool {
	t := p.cur()
	return t.Type == token.KeywordTok && t.Lit == kw.String()
}

func (p *Parser) isPunct(pu token.Punctuation) bool {
	t := p.cur()
	return t.Type == token.PunctuationTok && t.Lit == pu.String()
}

func (p *Parser) isOperator(op token.Operator) bool {
	t := p.cur()
	return t.Type == token.OperatorTok && t.Lit == op.String()
}

func (p *Parser) expectKeyword(kw token.Keyword) (token.Token, error) {
	if !p.isKeyword(kw) {
		return token.Token{}, p.errorf("expected keyword %q, found %q", kw, p.cur().Lit)
	}
	return p.advance(), nil
}

func (p *Parser) expectPunct(pu token.Punctuation) (token.Token, error) {
	if !p.isPunct(pu) {
		return token.Token{}, p.errorf("expected %q, found %q", pu, p.cur().Lit)
	}
	return p.advance(), nil
}

func (p *Parser) expectIdent() (token.Token, error) {
	if p.cur().Type != token.Identifier {
		return token.Token{}, p.errorf("expected identifier, found %q", p.cur().Lit)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &Error{Span: p.cur().Span, Msg: fmt.Sprintf(format, args...)}
}

// ParseProgram parses a full source file into a single-module Program, per
// SPEC_FULL.md §6's single-module treatment of import resolution.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	start := p.cur().Span
	module := &ast.Module{}

	for !p.atEOF() {
		switch {
		case p.isKeyword(token.Fun):
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			module.Funs = append(module.Funs, fn)
		case p.isKeyword(token.Object):
			obj, err := p.parseObject()
			if err != nil {
				return nil, err
			}
			module.Objects = append(module.Objects, obj)
		default:
			return nil, p.errorf("expected 'fun' or 'object', found %q", p.cur().Lit)
		}
	}

	module.SetSpan(start.Add(p.cur().Span))
	prog := &ast.Program{Modules: []*ast.Module{module}}
	prog.SetSpan(module.Span())
	return prog, nil
}

func (p *Parser) parseFunction() (*ast.Function, error) {
	start := p.cur().Span
	if _, err := p.expectKeyword(token.Fun); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(token.OpenParen); err != nil {
		return nil, err
	}

	var params []*ast.Param
	for !p.isPunct(token.CloseParen) {
		if len(params) > 0 {
			if _, err := p.expectPunct(token.Comma); err != nil {
				return nil, err
			}
		}
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	if _, err := p.expectPunct(token.CloseParen); err != nil {
		return nil, err
	}

	var retType *ast.PineType
	if p.isPunct(token.Arrow) {
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		retType = &t
	}

	if _, err := p.expectKeyword(token.Begin); err != nil {
		return nil, err
	}
	body, err := p.parseBlockUntil(token.End)
	if err != nil {
		return nil, err
	}
	end, err := p.expectKeyword(token.End)
	if err != nil {
		return nil, err
	}

	fn := &ast.Function{Name: name.Lit, Params: params, RetType: retType, Body: body}
	fn.SetSpan(start.Add(end.Span))
	return fn, nil
}

func (p *Parser) parseParam() (*ast.Param, error) {
	start := p.cur().Span
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(token.Colon); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	param := &ast.Param{Name: name.Lit, Type: typ}
	param.SetSpan(start.Add(p.toks[p.pos-1].Span))
	return param, nil
}

func (p *Parser) parseObject() (*ast.ObjectDecl, error) {
	start := p.cur().Span
	if _, err := p.expectKeyword(token.Object); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.Begin); err != nil {
		return nil, err
	}

	var fields []*ast.Field
	for !p.isKeyword(token.End) {
		fStart := p.cur().Span
		fname, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(token.Colon); err != nil {
			return nil, err
		}
		ftype, err := p.parseType()
		if err != nil {
			return nil, err
		}
		field := &ast.Field{Name: fname.Lit, Type: ftype}
		field.SetSpan(fStart.Add(p.toks[p.pos-1].Span))
		fields = append(fields, field)
	}
	end, err := p.expectKeyword(token.End)
	if err != nil {
		return nil, err
	}

	obj := &ast.ObjectDecl{Name: name.Lit, Fields: fields}
	obj.SetSpan(start.Add(end.Span))
	return obj, nil
}

func (p *Parser) parseType() (ast.PineType, error) {
	switch {
	case p.isKeyword(token.Int):
		p.advance()
		return ast.Integer, nil
	case p.isKeyword(token.Float_):
		p.advance()
		return ast.Float, nil
	case p.isKeyword(token.Bool):
		p.advance()
		return ast.Bool, nil
	case p.isKeyword(token.String_):
		p.advance()
		return ast.String, nil
	case p.isPunct(token.OpenBracket):
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return ast.PineType{}, err
		}
		if _, err := p.expectPunct(token.CloseBracket); err != nil {
			return ast.PineType{}, err
		}
		return ast.NewList(elem), nil
	case p.cur().Type == token.Identifier:
		name := p.advance()
		// Named user type (object); fields resolved during semantic analysis.
		return ast.PineType{Kind: ast.KindObject, Name: name.Lit}, nil
	default:
		return ast.PineType{}, p.errorf("expected a type, found %q", p.cur().Lit)
	}
}

// parseBlockUntil parses statements until the next token is one of the
// keywords kws (not consumed).
func (p *Parser) parseBlockUntil(kws ...token.Keyword) (*ast.Block, error) {
	start := p.cur().Span
	block := &ast.Block{}
	atStop := func() bool {
		for _, kw := range kws {
			if p.isKeyword(kw) {
				return true
			}
		}
		return false
	}
	for !atStop() && !p.atEOF() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	block.SetSpan(start.Add(p.cur().Span))
	return block, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch {
	case p.isKeyword(token.Let):
		return p.parseLet()
	case p.isKeyword(token.Set):
		return p.parseSet()
	case p.isKeyword(token.If):
		return p.parseIf()
	case p.isKeyword(token.While):
		return p.parseWhile()
	case p.isKeyword(token.Return):
		return p.parseReturn()
	case p.isKeyword(token.Begin):
		start := p.advance().Span
		block, err := p.parseBlockUntil(token.End)
		if err != nil {
			return nil, err
		}
		end, err := p.expectKeyword(token.End)
		if err != nil {
			return nil, err
		}
		block.SetSpan(start.Add(end.Span))
		return block, nil
	default:
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		stmt := &ast.ExprStmt{Expr: expr}
		stmt.SetSpan(expr.Span())
		return stmt, nil
	}
}

func (p *Parser) parseLet() (*ast.LetStmt, error) {
	start := p.cur().Span
	p.advance() // 'let'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var annot *ast.PineType
	if p.isPunct(token.Colon) {
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		annot = &t
	}

	if _, err := p.expectPunct(token.EqualSign); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	stmt := &ast.LetStmt{Name: name.Lit, Annot: annot, Expr: expr}
	stmt.SetSpan(start.Add(expr.Span()))
	return stmt, nil
}

func (p *Parser) parseSet() (*ast.SetStmt, error) {
	start := p.cur().Span
	p.advance() // 'set'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(token.EqualSign); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	stmt := &ast.SetStmt{Name: name.Lit, Expr: expr}
	stmt.SetSpan(start.Add(expr.Span()))
	return stmt, nil
}

func (p *Parser) parseIf() (*ast.IfStmt, error) {
	start := p.cur().Span
	p.advance() // 'if'

	stmt := &ast.IfStmt{}
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	stmt.Conds = append(stmt.Conds, cond)
	if _, err := p.expectKeyword(token.Then); err != nil {
		return nil, err
	}
	then, err := p.parseBlockUntil(token.End, token.Else)
	if err != nil {
		return nil, err
	}
	stmt.ThenBlocks = append(stmt.ThenBlocks, then)

	// "else if" is parsed by recognizing the keyword pair; the grammar
	// treats each as another (cond, then) pair in the chain.
	for p.isKeyword(token.Else) && p.peekIsKeyword(1, token.If) {
		p.advance() // 'else'
		p.advance() // 'if'
		cond, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		stmt.Conds = append(stmt.Conds, cond)
		if _, err := p.expectKeyword(token.Then); err != nil {
			return nil, err
		}
		then, err := p.parseBlockUntil(token.End, token.Else)
		if err != nil {
			return nil, err
		}
		stmt.ThenBlocks = append(stmt.ThenBlocks, then)
	}

	if p.isKeyword(token.Else) {
		p.advance()
		elseBlock, err := p.parseBlockUntil(token.End)
		if err != nil {
			return nil, err
		}
		stmt.ElseBlock = elseBlock
	}

	end, err := p.expectKeyword(token.End)
	if err != nil {
		return nil, err
	}
	stmt.SetSpan(start.Add(end.Span))
	return stmt, nil
}

func (p *Parser) peekIsKeyword(offset int, kw token.Keyword) bool {
	i := p.pos + offset
	if i >= len(p.toks) {
		return false
	}
	t := p.toks[i]
	return t.Type == token.KeywordTok && t.Lit == kw.String()
}

func (p *Parser) parseWhile() (*ast.WhileStmt, error) {
	start := p.cur().Span
	p.advance() // 'while'
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.Do); err != nil {
		return nil, err
	}
	block, err := p.parseBlockUntil(token.End)
	if err != nil {
		return nil, err
	}
	end, err := p.expectKeyword(token.End)
	if err != nil {
		return nil, err
	}
	stmt := &ast.WhileStmt{Cond: cond, Block: block}
	stmt.SetSpan(start.Add(end.Span))
	return stmt, nil
}

func (p *Parser) parseReturn() (*ast.ReturnStmt, error) {
	start := p.cur().Span
	p.advance() // 'return'

	stmt := &ast.ReturnStmt{}
	if p.startsExpr() {
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		stmt.Expr = expr
		stmt.SetSpan(start.Add(expr.Span()))
	} else {
		stmt.SetSpan(start)
	}
	return stmt, nil
}

// startsExpr reports whether the current token could begin an expression,
// used to distinguish a bare `return` from `return <expr>`.
func (p *Parser) startsExpr() bool {
	t := p.cur()
	switch t.Type {
	case token.Integer, token.Float, token.String, token.Identifier:
		return true
	case token.KeywordTok:
		return t.Lit == token.New.String()
	case token.PunctuationTok:
		return t.Lit == token.OpenParen.String()
	case token.OperatorTok:
		return t.Lit == token.Not.String() || t.Lit == token.Subtract.String()
	default:
		return false
	}
}

// ----------------------------------------------------------------------------
// Expressions: precedence climbing over token.Operator.Precedence, exactly
// as described by the grammar: parse(p) parses a term (by recursing to
// p-1), then while the lookahead is a binary operator of precedence p,
// consumes it and recurses with p-1 on the right. Lower precedence numbers
// bind tighter (Power=1 .. Or=7), so the entry point starts at the loosest
// level and works inward.

const loosestPrecedence = 7 // token.Or

// parseExpr(minPrec) is the public entry point used by statement parsing;
// it always starts from the loosest level so a full expression is parsed.
func (p *Parser) parseExpr(_ int) (ast.Expr, error) {
	return p.parseLevel(loosestPrecedence)
}

func (p *Parser) parseLevel(level int) (ast.Expr, error) {
	if level < 1 {
		return p.parseUnary()
	}

	left, err := p.parseLevel(level - 1)
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.peekBinaryOperator()
		if !ok || op.Precedence() != level {
			break
		}
		p.advance()
		right, err := p.parseLevel(level - 1)
		if err != nil {
			return nil, err
		}
		bin := &ast.BinaryExpr{Op: op, Left: left, Right: right}
		bin.SetSpan(left.Span().Add(right.Span()))
		left = bin
	}
	return left, nil
}

func (p *Parser) peekBinaryOperator() (token.Operator, bool) {
	t := p.cur()
	if t.Type != token.OperatorTok {
		return 0, false
	}
	op, ok := token.LookupOperator(t.Lit)
	if !ok || !op.IsBinary() {
		return 0, false
	}
	return op, true
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	t := p.cur()
	if t.Type == token.OperatorTok {
		if op, ok := token.LookupOperator(t.Lit); ok && op.IsUnary() {
			start := t.Span
			p.advance()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			u := &ast.UnaryExpr{Op: op, Expr: operand}
			u.SetSpan(start.Add(operand.Span()))
			return u, nil
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.isPunct(token.Dot):
			p.advance()
			field, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			fa := &ast.FieldAccessExpr{Base: expr, Field: field.Lit}
			fa.SetSpan(expr.Span().Add(field.Span))
			expr = fa
		case p.isPunct(token.OpenParen):
			p.advance()
			var args []ast.Expr
			for !p.isPunct(token.CloseParen) {
				if len(args) > 0 {
					if _, err := p.expectPunct(token.Comma); err != nil {
						return nil, err
					}
				}
				arg, err := p.parseExpr(0)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
			end, err := p.expectPunct(token.CloseParen)
			if err != nil {
				return nil, err
			}
			call := &ast.CallExpr{Callee: expr, Args: args}
			call.SetSpan(expr.Span().Add(end.Span))
			expr = call
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	switch {
	case t.Type == token.Integer:
		p.advance()
		v, err := strconv.ParseInt(t.Lit, 10, 64)
		if err != nil {
			return nil, &Error{Span: t.Span, Msg: fmt.Sprintf("invalid integer literal %q", t.Lit)}
		}
		e := &ast.IntLitExpr{Value: v}
		e.SetSpan(t.Span)
		return e, nil

	case t.Type == token.Float:
		p.advance()
		v, err := strconv.ParseFloat(t.Lit, 64)
		if err != nil {
			return nil, &Error{Span: t.Span, Msg: fmt.Sprintf("invalid float literal %q", t.Lit)}
		}
		e := &ast.FloatLitExpr{Value: v}
		e.SetSpan(t.Span)
		return e, nil

	case t.Type == token.String:
		p.advance()
		e := &ast.StringLitExpr{Value: t.Lit}
		e.SetSpan(t.Span)
		return e, nil

	case t.Type == token.Identifier && (t.Lit == "true" || t.Lit == "false"):
		p.advance()
		e := &ast.BoolLitExpr{Value: t.Lit == "true"}
		e.SetSpan(t.Span)
		return e, nil

	case t.Type == token.Identifier:
		p.advance()
		e := &ast.IdentExpr{Name: t.Lit}
		e.SetSpan(t.Span)
		return e, nil

	case p.isKeyword(token.New):
		return p.parseNewObject()

	case p.isPunct(token.OpenParen):
		p.advance()
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(token.CloseParen); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, p.errorf("expected an expression, found %q", t.Lit)
	}
}

func (p *Parser) parseNewObject() (*ast.NewObjectExpr, error) {
	start := p.cur().Span
	p.advance() // 'new'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(token.OpenParen); err != nil {
		return nil, err
	}

	var inits []*ast.FieldInit
	for !p.isPunct(token.CloseParen) {
		if len(inits) > 0 {
			if _, err := p.expectPunct(token.Comma); err != nil {
				return nil, err
			}
		}
		fStart := p.cur().Span
		fname, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(token.Colon); err != nil {
			return nil, err
		}
		fexpr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		init := &ast.FieldInit{Name: fname.Lit, Expr: fexpr}
		init.SetSpan(fStart.Add(fexpr.Span()))
		inits = append(inits, init)
	}
	end, err := p.expectPunct(token.CloseParen)
	if err != nil {
		return nil, err
	}

	e := &ast.NewObjectExpr{TypeName: name.Lit, FieldInits: inits}
	e.SetSpan(start.Add(end.Span))
	return e, nil
}
