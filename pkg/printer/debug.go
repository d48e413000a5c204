// Package printer renders a parsed ast.Tree back to text: a debug
// tree-shape dump for humans inspecting a parse, and a canonical SQL
// printer used to exercise the round-trip property (print, re-parse,
// compare).
package printer

import (
	"bytes"
	"fmt"

	"github.com/lswen/fnordmetric/pkg/ast"
)

// printer accumulates output with a tracked indentation depth, mirroring
// the write/writeln/indent/dedent shape of a line-oriented code generator.
type printer struct {
	buf   bytes.Buffer
	depth int
}

func (p *printer) indent() { p.depth++ }
func (p *printer) dedent() { p.depth-- }
func (p *printer) write(s string) { p.buf.WriteString(s) }
func (p *printer) writeln(s string) {
	p.write(string(bytes.Repeat([]byte("  "), p.depth)))
	p.write(s)
	p.write("\n")
}

// Debug renders n and its descendants as an indented tree, one node per
// line: the node's Kind, and its token's literal in parentheses if the
// node carries one.
func Debug(n *ast.Node) string {
	p := &printer{}
	p.debugNode(n)
	return p.buf.String()
}

func (p *printer) debugNode(n *ast.Node) {
	if n == nil {
		p.writeln("<nil>")
		return
	}
	line := n.Kind.String()
	if n.Token != nil {
		line += fmt.Sprintf(" (%s)", n.Token.Literal)
	}
	if n.Alias != "" {
		line += fmt.Sprintf(" AS %s", n.Alias)
	}
	p.writeln(line)

	p.indent()
	for _, c := range n.Children {
		p.debugNode(c)
	}
	p.dedent()
}
