package parser

import "github.com/lswen/fnordmetric/pkg/token"

// cursor is a read-only, random-access view over a token sequence with
// lookahead and positional consume. It never panics on out-of-range
// lookahead: past the end it keeps returning the stream's trailing END
// token forever.
type cursor struct {
	tokens []token.Token
	pos    int
}

func newCursor(tokens []token.Token) *cursor {
	return &cursor{tokens: tokens}
}

// peek returns the token at current+i, or the END token if that position is
// at or past the end of the stream.
func (c *cursor) peek(i int) token.Token {
	idx := c.pos + i
	if idx < 0 || idx >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1] // trailing END sentinel
	}
	return c.tokens[idx]
}

// current returns the token at the cursor's position.
func (c *cursor) current() token.Token {
	return c.peek(0)
}

// check reports whether the current token has the given kind.
func (c *cursor) check(kind token.TokenType) bool {
	return c.current().Type == kind
}

// consume returns the current token and advances past it. Consuming past
// the end of the stream is safe: it keeps returning the END sentinel
// without advancing further.
func (c *cursor) consume() token.Token {
	tok := c.current()
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
	return tok
}

// consumeIf advances and returns true if the current token matches kind;
// otherwise it leaves the cursor untouched and returns false.
func (c *cursor) consumeIf(kind token.TokenType) bool {
	if c.check(kind) {
		c.consume()
		return true
	}
	return false
}
