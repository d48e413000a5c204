package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lswen/fnordmetric/pkg/token"
)

func collectTypes(t *testing.T, input string) []token.TokenType {
	t.Helper()
	l := New(input)
	var kinds []token.TokenType
	for {
		tok := l.Next()
		kinds = append(kinds, tok.Type)
		if tok.Type == token.END {
			return kinds
		}
	}
}

func TestNext_SimpleSelect(t *testing.T) {
	kinds := collectTypes(t, "SELECT a, b FROM t WHERE a = 1;")
	require.Equal(t, []token.TokenType{
		token.SELECT, token.IDENTIFIER, token.COMMA, token.IDENTIFIER,
		token.FROM, token.IDENTIFIER,
		token.WHERE, token.IDENTIFIER, token.EQUAL, token.NUMERIC,
		token.SEMICOLON, token.END,
	}, kinds)
}

func TestNext_KeywordsAreCaseInsensitive(t *testing.T) {
	kinds := collectTypes(t, "select * from t")
	require.Equal(t, []token.TokenType{
		token.SELECT, token.ASTERISK, token.FROM, token.IDENTIFIER, token.END,
	}, kinds)
}

func TestNext_NumericLiterals(t *testing.T) {
	l := New("1 1.5 .5 1e10 1.2e-3")
	var lits []string
	for {
		tok := l.Next()
		if tok.Type == token.END {
			break
		}
		require.Equal(t, token.NUMERIC, tok.Type)
		lits = append(lits, tok.Literal)
	}
	require.Equal(t, []string{"1", "1.5", ".5", "1e10", "1.2e-3"}, lits)
}

func TestNext_StringLiteralWithEscapedQuote(t *testing.T) {
	l := New(`'it''s here'`)
	tok := l.Next()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "it's here", tok.Literal)
}

func TestNext_LineCommentIsSkipped(t *testing.T) {
	kinds := collectTypes(t, "SELECT a -- trailing comment\nFROM t")
	require.Equal(t, []token.TokenType{
		token.SELECT, token.IDENTIFIER, token.FROM, token.IDENTIFIER, token.END,
	}, kinds)
}

func TestNext_OperatorsAndPunctuation(t *testing.T) {
	kinds := collectTypes(t, "a.b + c - d * e / f % g ^ h = i ! j")
	require.Equal(t, []token.TokenType{
		token.IDENTIFIER, token.DOT, token.IDENTIFIER,
		token.PLUS, token.IDENTIFIER,
		token.MINUS, token.IDENTIFIER,
		token.ASTERISK, token.IDENTIFIER,
		token.SLASH, token.IDENTIFIER,
		token.PERCENT, token.IDENTIFIER,
		token.CIRCUMFLEX, token.IDENTIFIER,
		token.EQUAL, token.IDENTIFIER,
		token.BANG, token.IDENTIFIER,
		token.END,
	}, kinds)
}

func TestNext_UnterminatedStringIsIllegal(t *testing.T) {
	l := New(`'unterminated`)
	tok := l.Next()
	require.Equal(t, token.ILLEGAL, tok.Type)
}

func TestNext_PastEndKeepsReturningEnd(t *testing.T) {
	l := New("a")
	require.Equal(t, token.IDENTIFIER, l.Next().Type)
	require.Equal(t, token.END, l.Next().Type)
	require.Equal(t, token.END, l.Next().Type)
}

func TestNext_TracksLineAndColumn(t *testing.T) {
	l := New("SELECT a\nFROM b")
	tok := l.Next() // SELECT
	require.Equal(t, 1, tok.Span.Start.Line)
	require.Equal(t, 1, tok.Span.Start.Column)

	l.Next() // a
	tok = l.Next() // FROM, on line 2
	require.Equal(t, 2, tok.Span.Start.Line)
	require.Equal(t, 1, tok.Span.Start.Column)
}
