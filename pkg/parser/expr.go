package parser

import (
	"github.com/lswen/fnordmetric/pkg/ast"
	"github.com/lswen/fnordmetric/pkg/token"
)

// opInfo describes one binary operator's AST shape and binding power.
type opInfo struct {
	kind       ast.Kind
	precedence int
	rightAssoc bool
}

// binaryOps is the single source of truth for infix operator precedence and
// associativity, replacing a helper function per operator with one table
// binaryExpr consults by current-token lookup.
var binaryOps = map[token.TokenType]opInfo{
	token.OR:         {ast.OrExpr, 1, false},
	token.AND:        {ast.AndExpr, 3, false},
	token.EQUAL:      {ast.EqExpr, 6, false},
	token.PLUS:       {ast.AddExpr, 10, false},
	token.MINUS:      {ast.SubExpr, 10, false},
	token.ASTERISK:   {ast.MulExpr, 11, false},
	token.SLASH:      {ast.DivExpr, 11, false},
	token.DIV:        {ast.DivExpr, 11, false},
	token.PERCENT:    {ast.ModExpr, 11, false},
	token.MOD:        {ast.ModExpr, 11, false},
	token.CIRCUMFLEX: {ast.PowExpr, 12, true},
}

// expr parses a scalar expression, Pratt-style: an atom, then as many
// binary operators as have a precedence greater than minPrecedence; an
// operator whose precedence equals minPrecedence ends the expression.
func (p *Parser) expr(minPrecedence int) *ast.Node {
	lhs := p.exprLHS()
	if lhs == nil {
		return nil
	}
	for {
		rhs := p.binaryExpr(lhs, minPrecedence)
		if rhs == nil {
			return lhs
		}
		lhs = rhs
	}
}

// exprLHS parses an atom: a literal, identifier, qualified column,
// parenthesized expression, unary-prefix expression, or function call.
// Returns nil (consuming nothing) if the current token starts no atom.
func (p *Parser) exprLHS() *ast.Node {
	cur := p.cur.current()

	switch cur.Type {
	case token.LPAREN:
		open := p.cur.consume()
		inner := p.expr(0)
		p.expectCloseParen(open)
		return inner

	case token.BANG, token.MINUS, token.NOT:
		op := p.cur.consume()
		// The operand binds at the multiplicative precedence (11), not 0:
		// "-a + b" must parse as ADD(NEGATE(a), b), so the negation must
		// stop before a lower-precedence '+' rather than swallowing it.
		operand := p.expr(11)
		return ast.NewNode(ast.NegateExpr, &op, operand)

	case token.TRUE, token.FALSE, token.NUMERIC, token.STRING:
		tok := p.cur.consume()
		return ast.NewNode(ast.Literal, &tok)

	case token.IDENTIFIER:
		if p.cur.peek(1).Type == token.DOT {
			return p.parseQualifiedColumn()
		}
		if p.cur.peek(1).Type == token.LPAREN {
			return p.parseFuncCall()
		}
		tok := p.cur.consume()
		return ast.NewNode(ast.ColumnName, &tok)

	default:
		return nil
	}
}

// parseQualifiedColumn parses "IDENT '.' IDENT", the table-qualified column
// form. The caller has already confirmed the lookahead shape.
func (p *Parser) parseQualifiedColumn() *ast.Node {
	tableTok := p.cur.consume()
	p.cur.consume() // '.'
	table := ast.NewNode(ast.TableName, &tableTok)

	if p.assertExpectation(token.IDENTIFIER) {
		colTok := p.cur.consume()
		table.Add(ast.NewNode(ast.ColumnName, &colTok))
	}
	return table
}

// parseFuncCall parses "IDENT '(' [args] ')'". A bare '*' as the sole
// argument (as in count(*)) is accepted as a special zero-child ast.All
// marker rather than routed through expr, since '*' is not itself a valid
// expression atom.
func (p *Parser) parseFuncCall() *ast.Node {
	nameTok := p.cur.consume() // identifier
	open := p.cur.consume()    // '('
	call := ast.NewNode(ast.MethodCall, &nameTok)

	if p.cur.check(token.RPAREN) {
		p.cur.consume()
		return call
	}

	if p.cur.check(token.ASTERISK) && p.cur.peek(1).Type == token.RPAREN {
		p.cur.consume()
		p.cur.consume()
		call.Star = true
		call.Add(ast.NewNode(ast.All, nil))
		return call
	}

	for {
		arg := p.expr(0)
		if arg != nil {
			call.Add(arg)
		}
		if !p.cur.consumeIf(token.COMMA) {
			break
		}
	}

	p.expectCloseParen(open)
	return call
}

// binaryExpr looks up the current token as an infix operator; if none
// matches, or the matching operator's precedence is not greater than
// minPrecedence, it returns nil without consuming anything. Otherwise it
// consumes the operator and recurses for the right operand at the
// operator's right-binding power (precedence for left-associative
// operators, precedence-1 for right-associative ones, which is how '^'
// achieves a ^ b ^ c == a ^ (b ^ c)).
func (p *Parser) binaryExpr(lhs *ast.Node, minPrecedence int) *ast.Node {
	info, ok := binaryOps[p.cur.current().Type]
	if !ok || minPrecedence >= info.precedence {
		return nil
	}

	op := p.cur.consume()
	rbp := info.precedence
	if info.rightAssoc {
		rbp = info.precedence - 1
	}
	rhs := p.expr(rbp)
	return ast.NewNode(info.kind, &op, lhs, rhs)
}
