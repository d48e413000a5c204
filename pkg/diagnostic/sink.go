// Package diagnostic defines the parser's error taxonomy and the injectable
// destination parse errors are reported to, replacing a hardcoded write to
// process-wide stderr with something an embedder can supply and a test can
// record against.
package diagnostic

import (
	"fmt"
	"io"
	"os"

	"github.com/lswen/fnordmetric/pkg/token"
)

// ErrorKind classifies a ParserError. UNEXPECTED_TOKEN is the only kind the
// original grammar ever needed; the rest widen the taxonomy so a caller can
// react differently to "ran out of input" versus "wrong token" versus
// "dangling open paren" without parsing free-form messages.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEOF
	UnclosedParen
	TrailingInput

	// MalformedLiteral is reserved for a future numeric-literal validation
	// pass. No lexical rule in this lexer currently produces an ill-formed
	// NUMERIC token, so nothing emits this kind yet.
	MalformedLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UNEXPECTED_TOKEN"
	case UnexpectedEOF:
		return "UNEXPECTED_EOF"
	case UnclosedParen:
		return "UNCLOSED_PAREN"
	case TrailingInput:
		return "TRAILING_INPUT"
	case MalformedLiteral:
		return "MALFORMED_LITERAL"
	default:
		return "UNKNOWN"
	}
}

// ParserError is one recorded parse failure: what went wrong, a
// human-readable message, and the offending token's span for callers that
// want to render an excerpt.
type ParserError struct {
	Kind    ErrorKind
	Message string
	At      token.Span
}

func (e ParserError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.At.Start.Line, e.At.Start.Column, e.Message)
}

// Sink is the destination a Parser reports errors to as it records them, in
// addition to accumulating them in its own returned error list. sessionID
// lets an embedder correlate errors from concurrently interleaved parses
// (e.g. a REPL) back to the statement that produced them.
type Sink interface {
	Report(sessionID string, err ParserError)
}

// StderrSink writes each error to standard error as it is reported,
// matching the behavior of a direct fprintf(stderr, ...) call. A nil Writer
// defaults to os.Stderr.
type StderrSink struct {
	Writer io.Writer
}

// Report implements Sink.
func (s StderrSink) Report(sessionID string, err ParserError) {
	w := s.Writer
	if w == nil {
		w = os.Stderr
	}
	prefix := ""
	if sessionID != "" {
		prefix = "[" + sessionID + "] "
	}
	fmt.Fprintf(w, "%sparse error: %s\n", prefix, err.Error())
}

// RecordingSink accumulates every reported error in memory. Tests use it
// instead of capturing process-wide stderr.
type RecordingSink struct {
	Errors []struct {
		SessionID string
		Err       ParserError
	}
}

// Report implements Sink.
func (s *RecordingSink) Report(sessionID string, err ParserError) {
	s.Errors = append(s.Errors, struct {
		SessionID string
		Err       ParserError
	}{SessionID: sessionID, Err: err})
}
