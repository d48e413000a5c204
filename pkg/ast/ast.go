// Package ast defines the abstract syntax tree produced by the parser
// package: a closed set of node kinds for a single SELECT statement and its
// scalar expression grammar, held in an arena so a whole parsed statement
// can be freed or walked as one unit.
package ast

import "github.com/lswen/fnordmetric/pkg/token"

// Kind identifies the syntactic role of a Node. The set is closed: this
// grammar covers one SELECT statement shape plus its expression grammar,
// not the full surface of any particular SQL dialect.
type Kind int

const (
	Root Kind = iota

	// Statement structure.
	Select
	SelectList
	All            // '*' or 'table.*' in the select list, or the '*' of count(*)
	DerivedColumn  // an expression, optionally aliased, in the select list
	From
	TableName
	Where
	GroupBy
	Having
	OrderBy
	SortSpec // one ORDER BY key plus its ASC/DESC direction
	Limit
	Offset

	// Expressions.
	ColumnName // an identifier; 'table.col' is a TableName with a ColumnName child
	Literal
	MethodCall
	NegateExpr
	EqExpr
	AndExpr
	OrExpr
	AddExpr
	SubExpr
	MulExpr
	DivExpr
	ModExpr
	PowExpr
)

var kindNames = map[Kind]string{
	Root:          "Root",
	Select:        "Select",
	SelectList:    "SelectList",
	All:           "All",
	DerivedColumn: "DerivedColumn",
	From:          "From",
	TableName:     "TableName",
	Where:         "Where",
	GroupBy:       "GroupBy",
	Having:        "Having",
	OrderBy:       "OrderBy",
	SortSpec:      "SortSpec",
	Limit:         "Limit",
	Offset:        "Offset",
	ColumnName:    "ColumnName",
	Literal:       "Literal",
	MethodCall:    "MethodCall",
	NegateExpr:    "NegateExpr",
	EqExpr:        "EqExpr",
	AndExpr:       "AndExpr",
	OrExpr:        "OrExpr",
	AddExpr:       "AddExpr",
	SubExpr:       "SubExpr",
	MulExpr:       "MulExpr",
	DivExpr:       "DivExpr",
	ModExpr:       "ModExpr",
	PowExpr:       "PowExpr",
}

// String returns the node kind's name for debug printing.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is a single AST node. Children own their own subtrees: a Node is
// freed together with everything beneath it once nothing still references
// its parent, so callers never need a separate arena index to release a
// subtree.
type Node struct {
	Kind Kind

	// Token is the primary token this node was built from: the identifier
	// for ColumnName, the literal token for Literal, the function name for
	// MethodCall, the operator for binary/unary expressions, the sort
	// direction keyword for SortSpec, and so on. Structural nodes that
	// aren't anchored to one token (Root, SelectList, From, ...) leave this
	// nil.
	Token *token.Token

	// Alias holds the optional "AS alias" name attached to a DerivedColumn.
	// Empty when no alias was given; the parser sets it on no other kind.
	Alias string

	// Ascending records sort direction for a SortSpec node (true for ASC,
	// the default, false for DESC).
	Ascending bool

	// Star records whether a MethodCall's single argument was the bare '*'
	// wildcard (as in count(*)) rather than an expression list.
	Star bool

	Children []*Node
}

// NewNode builds a Node of the given kind anchored to tok, with children
// attached in order.
func NewNode(kind Kind, tok *token.Token, children ...*Node) *Node {
	return &Node{Kind: kind, Token: tok, Children: children}
}

// Add appends children to n and returns n, so construction can be chained.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Child returns the i-th child, or nil if n has no such child.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Literal returns the primary token's literal text, or "" if the node has
// no anchor token.
func (n *Node) Literal() string {
	if n == nil || n.Token == nil {
		return ""
	}
	return n.Token.Literal
}

// Tree is a parsed statement's AST arena: a single root node plus the span
// of source it was parsed from, for diagnostics that need to reproduce the
// original text.
type Tree struct {
	Root   *Node
	Source string
}

// Walk calls visit for n and then, depth-first, for every descendant. visit
// returning false stops the traversal below (and including) the node it was
// called with, but does not stop traversal of the node's remaining
// unvisited siblings.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}
