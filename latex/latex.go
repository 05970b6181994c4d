// Package latex renders expression trees as LaTeX math markup.
package latex

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/astree"
)

// Recognizer classifies node symbols. *astree.Symbols implements it.
type Recognizer interface {
	IsNumber(sym string) bool
	IsVariable(sym string) bool
	IsFunction(sym string) bool
	IsUnary(sym string) bool
	Precedence(sym string) (prec int8, assoc astree.Assoc, ok bool)
}

var _ Recognizer = (*astree.Symbols)(nil)

// specials are leaf symbols with their own markup.
var specials = map[string]string{
	"pi": `\pi`,
	"π":  `\pi`,
}

// known are functions LaTeX has operator commands for.
var known = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"sinh": true, "cosh": true, "tanh": true,
	"exp": true, "ln": true, "lg": true, "log": true,
	"max": true, "min": true,
}

const (
	// atom is the binding of leaves, calls, and fractions.
	atom int8 = math.MaxInt8
	// negprec is the binding of negation and negative literals.
	negprec int8 = 2
)

// Render renders a tree as inline math, delimited by $. An empty tree renders
// as the empty string. The tree is not modified.
func Render(a *astree.AST, r Recognizer) string {
	if a.Empty() {
		return ""
	}
	p := printer{r: r}
	p.node(a.Root())
	return "$" + p.b.String() + "$"
}

// Document wraps rendered markup in a standalone LaTeX document.
func Document(markup string) string {
	return header + markup + "\n" + footer
}

const (
	header = "\\documentclass{standalone}\n\\begin{document}\n"
	footer = "\\end{document}\n"
)

type printer struct {
	r Recognizer
	b strings.Builder
}

// prec returns how tightly the rendering of n binds.
func (p *printer) prec(n *astree.Node) int8 {
	sym := n.Symbol()
	switch {
	case n.IsLeaf():
		if strings.HasPrefix(sym, "-") {
			return negprec
		}
		return atom
	case sym == "/":
		return atom
	case sym == astree.Negate:
		return negprec
	}
	if prec, _, ok := p.r.Precedence(sym); ok {
		return prec
	}
	return atom
}

// sub renders n, in parentheses if paren is true.
func (p *printer) sub(n *astree.Node, paren bool) {
	if !paren {
		p.node(n)
		return
	}
	p.b.WriteString(`\left(`)
	p.node(n)
	p.b.WriteString(`\right)`)
}

// fname writes the markup for a function name.
func (p *printer) fname(sym string) {
	if known[sym] {
		p.b.WriteString(`\` + sym)
		return
	}
	p.b.WriteString(`\operatorname{` + sym + `}`)
}

func (p *printer) node(n *astree.Node) {
	sym := n.Symbol()
	if n.IsLeaf() {
		if p.r.IsNumber(sym) {
			p.b.WriteString(sym)
			return
		}
		name := strings.TrimPrefix(sym, "-")
		if name != sym {
			p.b.WriteByte('-')
		}
		switch s, ok := specials[name]; {
		case ok:
			p.b.WriteString(s)
		case !p.r.IsVariable(sym):
			// Constants are set upright.
			p.b.WriteString(`\mathrm{` + name + `}`)
		case utf8.RuneCountInString(name) > 1:
			p.b.WriteString(`\mathit{` + name + `}`)
		default:
			p.b.WriteString(name)
		}
		return
	}
	if p.r.IsUnary(sym) {
		arg := n.Right()
		switch sym {
		case astree.Negate:
			p.b.WriteByte('-')
			p.sub(arg, p.prec(arg) <= negprec)
		case "sqrt":
			p.b.WriteString(`\sqrt{`)
			p.node(arg)
			p.b.WriteByte('}')
		case "abs":
			p.b.WriteString(`\left|`)
			p.node(arg)
			p.b.WriteString(`\right|`)
		default:
			p.fname(sym)
			p.sub(arg, true)
		}
		return
	}
	l, r := n.Left(), n.Right()
	switch sym {
	case "/":
		p.b.WriteString(`\frac{`)
		p.node(l)
		p.b.WriteString(`}{`)
		p.node(r)
		p.b.WriteByte('}')
		return
	case "^":
		p.b.WriteByte('{')
		p.sub(l, p.prec(l) != atom)
		p.b.WriteString(`}^{`)
		p.node(r)
		p.b.WriteByte('}')
		return
	}
	if p.r.IsFunction(sym) {
		p.fname(sym)
		p.b.WriteString(`\left(`)
		p.node(l)
		p.b.WriteString(", ")
		p.node(r)
		p.b.WriteString(`\right)`)
		return
	}
	prec, assoc, _ := p.r.Precedence(sym)
	lp, rp := p.prec(l), p.prec(r)
	p.sub(l, lp < prec || lp == prec && assoc == astree.RightAssoc)
	if sym == "*" {
		p.b.WriteString(` \cdot `)
	} else {
		p.b.WriteString(" " + sym + " ")
	}
	p.sub(r, rp < prec || rp == prec && assoc == astree.LeftAssoc)
}
