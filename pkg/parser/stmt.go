package parser

import (
	"fmt"

	"github.com/lswen/fnordmetric/pkg/ast"
	"github.com/lswen/fnordmetric/pkg/diagnostic"
	"github.com/lswen/fnordmetric/pkg/token"
)

// parseSelectStatement is the statement parser's entry point: a thin driver
// over the token cursor and the expression parser for SELECT's clauses.
// Returns nil, consuming nothing, if the current token isn't SELECT.
func (p *Parser) parseSelectStatement() *ast.Node {
	if !p.cur.check(token.SELECT) {
		return nil
	}
	selectTok := p.cur.consume()
	stmt := ast.NewNode(ast.Select, &selectTok)
	stmt.Add(p.parseSelectList())
	p.parseClauses(stmt)
	return stmt
}

// parseClauses parses SELECT's optional clauses in their fixed grammar
// order and attaches whichever were present. Missing clauses are simply
// absent from stmt.Children, never represented as null placeholders.
func (p *Parser) parseClauses(stmt *ast.Node) {
	if n := p.parseFrom(); n != nil {
		stmt.Add(n)
	}
	if n := p.parseWhere(); n != nil {
		stmt.Add(n)
	}
	if n := p.parseGroupBy(); n != nil {
		stmt.Add(n)
	}
	if n := p.parseHaving(); n != nil {
		stmt.Add(n)
	}
	if n := p.parseOrderBy(); n != nil {
		stmt.Add(n)
	}
	if n := p.parseLimit(); n != nil {
		stmt.Add(n)
	}
}

// parseSelectList parses '*' | select_sublist {, select_sublist}. A bare
// SELECT with no recognizable list item records an error and returns an
// empty (not nil) SelectList node, per the "SELECT (bare)" test case.
func (p *Parser) parseSelectList() *ast.Node {
	list := ast.NewNode(ast.SelectList, nil)

	if p.cur.check(token.ASTERISK) {
		tok := p.cur.consume()
		list.Add(ast.NewNode(ast.All, &tok))
		return list
	}

	first := p.parseSelectSublist()
	if first == nil {
		p.addError(diagnostic.UnexpectedToken,
			fmt.Sprintf("expected a select list, found %s", p.cur.current()), p.cur.current())
		return list
	}
	list.Add(first)

	for p.cur.consumeIf(token.COMMA) {
		item := p.parseSelectSublist()
		if item == nil {
			p.recordMismatch(token.IDENTIFIER)
			break
		}
		list.Add(item)
	}
	return list
}

// parseSelectSublist parses one select-list item: either the "IDENT '.'
// '*'" wildcard-column form, or a value expression with an optional "AS
// alias".
func (p *Parser) parseSelectSublist() *ast.Node {
	if p.cur.check(token.IDENTIFIER) &&
		p.cur.peek(1).Type == token.DOT &&
		p.cur.peek(2).Type == token.ASTERISK {
		tableTok := p.cur.consume()
		p.cur.consume() // '.'
		p.cur.consume() // '*'
		return ast.NewNode(ast.All, &tableTok)
	}

	value := p.expr(0)
	if value == nil {
		return nil
	}
	col := ast.NewNode(ast.DerivedColumn, nil, value)

	if p.cur.consumeIf(token.AS) {
		if aliasTok, ok := p.expect(token.IDENTIFIER); ok {
			col.Add(ast.NewNode(ast.ColumnName, &aliasTok))
			col.Alias = aliasTok.Literal
		}
	}
	return col
}

// parseFrom parses "FROM table_list". Returns nil, consuming nothing, if
// FROM is absent.
func (p *Parser) parseFrom() *ast.Node {
	if !p.cur.consumeIf(token.FROM) {
		return nil
	}
	from := ast.NewNode(ast.From, nil)
	for {
		tableTok, ok := p.expect(token.IDENTIFIER)
		if !ok {
			break
		}
		from.Add(ast.NewNode(ast.TableName, &tableTok))
		if !p.cur.consumeIf(token.COMMA) {
			break
		}
	}
	return from
}

// parseWhere parses "WHERE expr".
func (p *Parser) parseWhere() *ast.Node {
	if !p.cur.consumeIf(token.WHERE) {
		return nil
	}
	w := ast.NewNode(ast.Where, nil)
	e := p.expr(0)
	if e == nil {
		p.reportMissingClauseExpr("WHERE")
		return w
	}
	w.Add(e)
	return w
}

// parseGroupBy parses "GROUP BY expr {, expr}".
func (p *Parser) parseGroupBy() *ast.Node {
	if !p.cur.check(token.GROUP) {
		return nil
	}
	p.cur.consume()
	p.expect(token.BY)

	g := ast.NewNode(ast.GroupBy, nil)
	first := p.expr(0)
	if first == nil {
		p.reportMissingClauseExpr("GROUP BY")
		return g
	}
	g.Add(first)
	for p.cur.consumeIf(token.COMMA) {
		e := p.expr(0)
		if e == nil {
			break
		}
		g.Add(e)
	}
	return g
}

// parseHaving parses "HAVING expr".
func (p *Parser) parseHaving() *ast.Node {
	if !p.cur.consumeIf(token.HAVING) {
		return nil
	}
	h := ast.NewNode(ast.Having, nil)
	e := p.expr(0)
	if e == nil {
		p.reportMissingClauseExpr("HAVING")
		return h
	}
	h.Add(e)
	return h
}

// parseOrderBy parses "ORDER BY sort_spec {, sort_spec}".
func (p *Parser) parseOrderBy() *ast.Node {
	if !p.cur.check(token.ORDER) {
		return nil
	}
	p.cur.consume()
	p.expect(token.BY)

	o := ast.NewNode(ast.OrderBy, nil)
	first := p.parseSortSpec()
	if first == nil {
		p.reportMissingClauseExpr("ORDER BY")
		return o
	}
	o.Add(first)
	for p.cur.consumeIf(token.COMMA) {
		s := p.parseSortSpec()
		if s == nil {
			break
		}
		o.Add(s)
	}
	return o
}

// parseSortSpec parses "expr [ASC | DESC]"; direction defaults to
// ascending when unspecified.
func (p *Parser) parseSortSpec() *ast.Node {
	e := p.expr(0)
	if e == nil {
		return nil
	}
	spec := ast.NewNode(ast.SortSpec, nil, e)
	spec.Ascending = true

	switch p.cur.current().Type {
	case token.ASC:
		tok := p.cur.consume()
		spec.Token = &tok
		spec.Ascending = true
	case token.DESC:
		tok := p.cur.consume()
		spec.Token = &tok
		spec.Ascending = false
	}
	return spec
}

// parseLimit parses "LIMIT NUMERIC [OFFSET NUMERIC]".
func (p *Parser) parseLimit() *ast.Node {
	if !p.cur.consumeIf(token.LIMIT) {
		return nil
	}
	limitTok, ok := p.expect(token.NUMERIC)
	if !ok {
		return ast.NewNode(ast.Limit, nil)
	}
	limit := ast.NewNode(ast.Limit, &limitTok)

	if p.cur.consumeIf(token.OFFSET) {
		if offsetTok, ok := p.expect(token.NUMERIC); ok {
			limit.Add(ast.NewNode(ast.Offset, &offsetTok))
		}
	}
	return limit
}

// reportMissingClauseExpr records that a clause keyword was seen but its
// required expression never materialized, then synchronizes to the next
// clause keyword or statement boundary so one malformed clause doesn't
// prevent the remaining clauses from being attempted.
func (p *Parser) reportMissingClauseExpr(clause string) {
	p.addError(diagnostic.UnexpectedToken,
		fmt.Sprintf("expected an expression after %s, found %s", clause, p.cur.current()), p.cur.current())
	p.syncToClauseKeyword()
}

// syncToClauseKeyword skips tokens until the cursor reaches a clause
// keyword, ';', or end of input.
func (p *Parser) syncToClauseKeyword() {
	for {
		switch p.cur.current().Type {
		case token.SEMICOLON, token.END,
			token.FROM, token.WHERE, token.GROUP, token.HAVING, token.ORDER, token.LIMIT:
			return
		}
		p.cur.consume()
	}
}
