package printer

import (
	"fmt"
	"strings"

	"github.com/lswen/fnordmetric/pkg/ast"
	"github.com/lswen/fnordmetric/pkg/token"
)

// binaryOpText maps a binary expression node kind to its printed infix
// operator spelling.
var binaryOpText = map[ast.Kind]string{
	ast.OrExpr:  "OR",
	ast.AndExpr: "AND",
	ast.EqExpr:  "=",
	ast.AddExpr: "+",
	ast.SubExpr: "-",
	ast.MulExpr: "*",
	ast.DivExpr: "/",
	ast.ModExpr: "%",
	ast.PowExpr: "^",
}

// SQL prints stmt (an ast.Select node) back to canonical SQL text, for the
// round-trip property: printing then re-parsing must yield a structurally
// identical tree.
func SQL(stmt *ast.Node) string {
	var sb strings.Builder
	writeStatement(&sb, stmt)
	return sb.String()
}

func writeStatement(sb *strings.Builder, stmt *ast.Node) {
	sb.WriteString("SELECT ")
	writeSelectList(sb, stmt.Child(0))

	for _, clause := range stmt.Children[1:] {
		switch clause.Kind {
		case ast.From:
			sb.WriteString(" FROM ")
			writeTableList(sb, clause)
		case ast.Where:
			sb.WriteString(" WHERE ")
			writeExpr(sb, clause.Child(0))
		case ast.GroupBy:
			sb.WriteString(" GROUP BY ")
			writeExprList(sb, clause.Children)
		case ast.Having:
			sb.WriteString(" HAVING ")
			writeExpr(sb, clause.Child(0))
		case ast.OrderBy:
			sb.WriteString(" ORDER BY ")
			writeSortSpecs(sb, clause.Children)
		case ast.Limit:
			fmt.Fprintf(sb, " LIMIT %s", clause.Literal())
			if off := clause.Child(0); off != nil {
				fmt.Fprintf(sb, " OFFSET %s", off.Literal())
			}
		}
	}
}

func writeSelectList(sb *strings.Builder, list *ast.Node) {
	if len(list.Children) == 1 && isBareStar(list.Child(0)) {
		sb.WriteString("*")
		return
	}
	for i, item := range list.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeSelectItem(sb, item)
	}
}

// isBareStar reports whether n is the unqualified '*' select-list shortcut
// rather than a "table.*" wildcard: both are ast.All nodes, distinguished
// by whether the anchor token is the '*' punctuation itself or a table
// identifier.
func isBareStar(n *ast.Node) bool {
	return n.Kind == ast.All && (n.Token == nil || n.Token.Type == token.ASTERISK)
}

func writeSelectItem(sb *strings.Builder, item *ast.Node) {
	switch item.Kind {
	case ast.All:
		if isBareStar(item) {
			sb.WriteString("*")
		} else {
			fmt.Fprintf(sb, "%s.*", item.Literal())
		}
	case ast.DerivedColumn:
		writeExpr(sb, item.Child(0))
		if item.Alias != "" {
			fmt.Fprintf(sb, " AS %s", item.Alias)
		}
	}
}

func writeTableList(sb *strings.Builder, from *ast.Node) {
	for i, t := range from.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.Literal())
	}
}

func writeExprList(sb *strings.Builder, exprs []*ast.Node) {
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, e)
	}
}

func writeSortSpecs(sb *strings.Builder, specs []*ast.Node) {
	for i, s := range specs {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, s.Child(0))
		if !s.Ascending {
			sb.WriteString(" DESC")
		}
	}
}

// writeQuotedString re-wraps a string literal's already-unescaped text in
// single quotes, doubling any embedded quote so the result re-lexes to the
// same literal (see lexer.scanString's '' escaping rule).
func writeQuotedString(sb *strings.Builder, s string) {
	sb.WriteByte('\'')
	sb.WriteString(strings.ReplaceAll(s, "'", "''"))
	sb.WriteByte('\'')
}

func writeExpr(sb *strings.Builder, n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.Literal:
		if n.Token != nil && n.Token.Type == token.STRING {
			writeQuotedString(sb, n.Literal())
		} else {
			sb.WriteString(n.Literal())
		}
	case ast.ColumnName:
		sb.WriteString(n.Literal())
	case ast.TableName:
		sb.WriteString(n.Literal())
		if col := n.Child(0); col != nil {
			sb.WriteString(".")
			sb.WriteString(col.Literal())
		}
	case ast.NegateExpr:
		sb.WriteString("-")
		writeExpr(sb, n.Child(0))
	case ast.MethodCall:
		fmt.Fprintf(sb, "%s(", n.Literal())
		if n.Star {
			sb.WriteString("*")
		} else {
			writeExprList(sb, n.Children)
		}
		sb.WriteString(")")
	case ast.All:
		sb.WriteString("*")
	default:
		if op, ok := binaryOpText[n.Kind]; ok {
			sb.WriteString("(")
			writeExpr(sb, n.Child(0))
			fmt.Fprintf(sb, " %s ", op)
			writeExpr(sb, n.Child(1))
			sb.WriteString(")")
		}
	}
}
