package parser

import (
	"fmt"

	"github.com/lswen/fnordmetric/pkg/ast"
	"github.com/lswen/fnordmetric/pkg/diagnostic"
	"github.com/lswen/fnordmetric/pkg/lexer"
	"github.com/lswen/fnordmetric/pkg/token"
)

// Parser turns SQL source text into an ast.Tree plus a list of errors
// encountered along the way. A Parser is a transient owner of exactly one
// parse: construct one per statement (or batch), never share one across
// goroutines, never reuse one across calls to Parse.
type Parser struct {
	src    string
	cur    *cursor
	errors []diagnostic.ParserError

	sink      diagnostic.Sink
	sessionID string
}

// Option configures a Parser at construction.
type Option func(*Parser)

// WithSink attaches a diagnostic sink that receives every error as it is
// recorded, in addition to the error list Parse returns.
func WithSink(sink diagnostic.Sink) Option {
	return func(p *Parser) { p.sink = sink }
}

// WithSessionID tags every error reported to the sink with an identifier,
// letting an embedder correlate errors from interleaved parses (e.g. a REPL
// history) back to the statement that produced them.
func WithSessionID(id string) Option {
	return func(p *Parser) { p.sessionID = id }
}

// New tokenizes src and returns a Parser ready to parse it.
func New(src string, opts ...Option) *Parser {
	l := lexer.New(src)
	var tokens []token.Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Type == token.END {
			break
		}
	}

	p := &Parser{src: src, cur: newCursor(tokens)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses the full input as a sequence of statements (currently only
// SELECT is supported) and returns the resulting tree and any errors
// recorded along the way. An empty error list means success; a non-empty
// one means the tree is advisory and may be incomplete.
func (p *Parser) Parse() (*ast.Tree, []diagnostic.ParserError) {
	root := ast.NewNode(ast.Root, nil)

	for !p.cur.check(token.END) {
		stmt := p.parseSelectStatement()
		if stmt == nil {
			p.addError(diagnostic.UnexpectedToken,
				fmt.Sprintf("expected SELECT, found %s", p.cur.current()), p.cur.current())
			p.syncToStatementBoundary()
			continue
		}
		root.Add(stmt)

		if p.cur.consumeIf(token.SEMICOLON) {
			continue
		}
		if !p.cur.check(token.END) {
			p.addError(diagnostic.TrailingInput,
				fmt.Sprintf("unexpected trailing input near %s", p.cur.current()), p.cur.current())
			p.syncToStatementBoundary()
		}
	}

	return &ast.Tree{Root: root, Source: p.src}, p.errors
}

// addError records a parse error both in the parser's own list and, if a
// sink was supplied, reports it there too.
func (p *Parser) addError(kind diagnostic.ErrorKind, msg string, tok token.Token) {
	err := diagnostic.ParserError{Kind: kind, Message: msg, At: tok.Span}
	p.errors = append(p.errors, err)
	if p.sink != nil {
		p.sink.Report(p.sessionID, err)
	}
}

// expect consumes the current token if it matches kind; otherwise it
// records an UNEXPECTED_TOKEN (or UNEXPECTED_EOF, if the mismatch is
// against the END sentinel) error and leaves the cursor untouched.
func (p *Parser) expect(kind token.TokenType) (token.Token, bool) {
	if p.cur.check(kind) {
		return p.cur.consume(), true
	}
	p.recordMismatch(kind)
	return token.Token{}, false
}

// assertExpectation is the non-consuming variant of expect: it never
// advances the cursor, win or lose, and reports the same error on mismatch.
func (p *Parser) assertExpectation(kind token.TokenType) bool {
	if p.cur.check(kind) {
		return true
	}
	p.recordMismatch(kind)
	return false
}

func (p *Parser) recordMismatch(want token.TokenType) {
	got := p.cur.current()
	if got.Type == token.END {
		p.addError(diagnostic.UnexpectedEOF,
			fmt.Sprintf("unexpected end of input, expected %s", want), got)
		return
	}
	p.addError(diagnostic.UnexpectedToken,
		fmt.Sprintf("unexpected token %s, expected %s", got, want), got)
}

// expectCloseParen is expect(RPAREN) with the UNCLOSED_PAREN kind instead of
// the generic UNEXPECTED_TOKEN, since a dangling '(' is the single
// highest-value distinct message for a human reading parser errors. When
// input ends before the ')', it records UNEXPECTED_EOF instead.
func (p *Parser) expectCloseParen(open token.Token) (token.Token, bool) {
	if p.cur.check(token.RPAREN) {
		return p.cur.consume(), true
	}
	got := p.cur.current()
	if got.Type == token.END {
		p.addError(diagnostic.UnexpectedEOF, "unclosed '(': reached end of input", got)
	} else {
		p.addError(diagnostic.UnclosedParen,
			fmt.Sprintf("unclosed '(' opened at line %d, column %d", open.Span.Start.Line, open.Span.Start.Column), got)
	}
	return token.Token{}, false
}

// syncToStatementBoundary skips tokens until it reaches ';' or END, so one
// malformed statement doesn't prevent later ones (if any) from being
// attempted.
func (p *Parser) syncToStatementBoundary() {
	for !p.cur.check(token.SEMICOLON) && !p.cur.check(token.END) {
		p.cur.consume()
	}
	p.cur.consumeIf(token.SEMICOLON)
}
