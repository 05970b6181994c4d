package astree

import (
	"strings"
)

// Node is a node in the abstract syntax tree of an expression. Leaves have no
// children, unary nodes have only a right child, and binary nodes have both.
// Nodes are never modified after parsing.
type Node struct {
	kind NodeKind

	// sym is the node's symbol as it appeared in the postfix sequence.
	sym string
	// fn evaluates unary and binary nodes.
	fn Func
	// num is the value of a number leaf.
	num float64

	left  *Node
	right *Node
}

// NodeKind is the class of a node.
type NodeKind int8

const (
	NodeNone NodeKind = iota

	NodeNumber // numeric literal
	NodeConst  // special constant, possibly negated
	NodeName   // free variable, possibly negated

	NodeUnary  // right is the operand
	NodeBinary // left and right are the operands
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=NodeKind -trimprefix=Node
//go:generate go mod tidy

// Kind returns the node's class.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Symbol returns the node's symbol: a numeral, a name, an operator, or a
// function name.
func (n *Node) Symbol() string {
	return n.sym
}

// Left returns the left child, or nil.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the right child, or nil.
func (n *Node) Right() *Node {
	return n.right
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.left == nil && n.right == nil
}

// name returns the variable or constant name of a leaf with any folded sign
// removed, and whether there was a sign.
func (n *Node) name() (string, bool) {
	if strings.HasPrefix(n.sym, "-") {
		return n.sym[1:], true
	}
	return n.sym, false
}

func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node as a fully parenthesized infix expression that parses
// back to the same tree.
func (n *Node) fmt(b *strings.Builder) {
	switch n.kind {
	case NodeNumber, NodeConst, NodeName:
		if strings.HasPrefix(n.sym, "-") {
			// Keep a folded sign from being split off by a following ^.
			b.WriteByte('(')
			b.WriteString(n.sym)
			b.WriteByte(')')
			return
		}
		b.WriteString(n.sym)
	case NodeUnary:
		if n.sym == Negate {
			b.WriteByte('-')
		} else {
			b.WriteString(n.sym)
		}
		b.WriteByte('(')
		n.right.fmt(b)
		b.WriteByte(')')
	case NodeBinary:
		if !isop(n.sym) {
			// Binary function.
			b.WriteString(n.sym)
			b.WriteByte('(')
			n.left.fmt(b)
			b.WriteString(", ")
			n.right.fmt(b)
			b.WriteByte(')')
			return
		}
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.sym)
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("astree: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// isop reports whether sym is an operator symbol, as opposed to a name.
func isop(sym string) bool {
	return len(sym) == 1 && strings.Contains(Operators, sym)
}

// AST is a parsed expression. The zero value is an empty tree.
type AST struct {
	// root is the root node, or nil for an empty tree.
	root *Node
	// syms is the symbol table the tree was built with.
	syms *Symbols
}

// Root returns the root node, or nil if the tree is empty.
func (a *AST) Root() *Node {
	return a.root
}

// Empty reports whether the tree has no nodes.
func (a *AST) Empty() bool {
	return a.root == nil
}

// Symbols returns the symbol table used to build the tree.
func (a *AST) Symbols() *Symbols {
	if a.syms == nil {
		return defaultSymbols
	}
	return a.syms
}

// String creates a fully parenthesized infix representation of the tree.
func (a *AST) String() string {
	if a.root == nil {
		return ""
	}
	return a.root.String()
}
