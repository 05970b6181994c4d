package astree

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
)

// diff finds the first pre-order node of n that differs from m, or nil, nil if
// the two trees are equal. If any node is NodeNone, it is returned.
func (n *Node) diff(m *Node) (*Node, *Node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == NodeNone || m.kind == NodeNone {
		return n, m
	}
	if n.kind != m.kind || n.sym != m.sym {
		return n, m
	}
	switch n.kind {
	case NodeNumber:
		if n.num != m.num {
			return n, m
		}
	case NodeConst, NodeName:
		// sym already compared
	case NodeUnary:
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	case NodeBinary:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

func TestToPostfix(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "1"},
		{"add", "1+2", "1 2 +"},
		{"precedence", "1+2*3", "1 2 3 * +"},
		{"leftassoc", "1-2-3", "1 2 - 3 -"},
		{"rightassoc", "2^3^2", "2 3 2 ^ ^"},
		{"parens", "(1+2)*3", "1 2 + 3 *"},
		{"nested", "((1))", "1"},
		{"func", "sin(x)", "x sin"},
		{"funcnoparen", "exp 1", "1 exp"},
		{"funcarg", "sin(x+1)*2", "x 1 + sin 2 *"},
		{"funcpow", "sin(x)^2", "x sin 2 ^"},
		{"negfuncpow", "-sin(x)^2", "x sin 2 ^ ~"},
		{"negpow", "-2^2", "2 2 ^ ~"},
		{"negparen", "-(1+2)", "1 2 + ~"},
		{"negnum", "3*-2", "3 -2 *"},
		{"negexp", "2^-(1)*3", "2 1 ~ ^ 3 *"},
		{"negmul", "3*-(2)+1", "3 2 ~ * 1 +"},
		{"negneg", "--x", "-x ~"},
		{"funcneg", "sin -(x)*2", "x ~ sin 2 *"},
		{"funcnegpow", "sin -(x)^2", "x ~ sin 2 ^"},
		{"funcnegneg", "sin --(x)+1", "x ~ ~ sin 1 +"},
		{"funcnegfold", "sin -x*2", "-x sin 2 *"},
		{"binfunc", "max(1, 2+3)", "1 2 3 + max"},
		{"binfuncnest", "max(min(1, 2), 3)*4", "1 2 min 3 max 4 *"},
		{"long", "3^(1+2)/4+3*(6^(4-1))+99", "3 1 2 + ^ 4 / 3 6 4 1 - ^ * + 99 +"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("couldn't tokenize %q: %v", c.src, err)
			}
			got, err := ToPostfix(toks)
			if err != nil {
				t.Fatalf("couldn't convert %q: %v", c.src, err)
			}
			if r := strings.Join(got, " "); r != c.want {
				t.Errorf("wrong postfix for %q: want %q, got %q", c.src, c.want, r)
			}
		})
	}
}

func TestToPostfixErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		col  int
		err  error
	}{
		{"open", "(1+2", 1, ErrUnbalanced},
		{"close", "1+2)", 4, ErrUnbalanced},
		{"inner", "(1+(2)", 1, ErrUnbalanced},
		{"sep", "1, 2", 2, ErrSeparator},
		{"sepafter", "(1)+2, 3", 6, ErrSeparator},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("couldn't tokenize %q: %v", c.src, err)
			}
			_, err = ToPostfix(toks)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("converting %q: want *ParseError, got %#v", c.src, err)
			}
			if !errors.Is(err, c.err) {
				t.Errorf("converting %q: want %v, got %v", c.src, c.err, err)
			}
			if pe.Pos() != c.col {
				t.Errorf("converting %q: want error at %d, got %d", c.src, c.col, pe.Pos())
			}
		})
	}
}

func TestToPostfixUnknown(t *testing.T) {
	toks := []Token{{Kind: TokenFunction, Text: "frob", Col: 1}, {Kind: TokenVariable, Text: "x", Col: 5}}
	if _, err := ToPostfix(toks); !errors.Is(err, ErrSymbol) {
		t.Errorf("unknown function: want ErrSymbol, got %v", err)
	}
	toks = []Token{{Kind: TokenNumber, Text: "1", Col: 1}, {Kind: TokenOperator, Text: "%", Col: 2}}
	if _, err := ToPostfix(toks); !errors.Is(err, ErrSymbol) {
		t.Errorf("unknown operator: want ErrSymbol, got %v", err)
	}
}

func TestBuild(t *testing.T) {
	cases := []struct {
		name    string
		postfix []string
		want    string
	}{
		{"num", []string{"1"}, "1"},
		{"name", []string{"x"}, "x"},
		{"signed", []string{"-x"}, "(-x)"},
		{"const", []string{"pi"}, "pi"},
		{"add", []string{"1", "2", "+"}, "(1 + 2)"},
		{"nest", []string{"1", "2", "3", "*", "+"}, "(1 + (2 * 3))"},
		{"negate", []string{"2", "2", "^", "~"}, "-((2 ^ 2))"},
		{"func", []string{"x", "sin"}, "sin(x)"},
		{"binfunc", []string{"1", "2", "max"}, "max(1, 2)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Build(c.postfix)
			if err != nil {
				t.Fatalf("couldn't build %q: %v", c.postfix, err)
			}
			if got := a.String(); got != c.want {
				t.Errorf("wrong tree for %q: want %q, got %q", c.postfix, c.want, got)
			}
			if got := a.PostOrder(); !reflect.DeepEqual(got, c.postfix) {
				t.Errorf("postfix of %q round-trips to %q", c.postfix, got)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name    string
		postfix []string
		err     error
	}{
		{"empty", nil, ErrEmpty},
		{"op", []string{"+"}, ErrOperand},
		{"onearg", []string{"1", "+"}, ErrOperand},
		{"func", []string{"sin"}, ErrOperand},
		{"binfunc", []string{"1", "max"}, ErrOperand},
		{"extra", []string{"1", "2"}, ErrOperator},
		{"paren", []string{"("}, ErrSymbol},
		{"badnum", []string{"1..2"}, ErrSymbol},
		{"junk", []string{"1", "x1", "+"}, ErrSymbol},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Build(c.postfix)
			if a != nil {
				t.Errorf("got tree %v from %q", a, c.postfix)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("building %q: want *ParseError, got %#v", c.postfix, err)
			}
			if !errors.Is(err, c.err) {
				t.Errorf("building %q: want %v, got %v", c.postfix, c.err, err)
			}
		})
	}
}

func TestBuildHuge(t *testing.T) {
	a, err := Build([]string{"1" + strings.Repeat("0", 400)})
	if err != nil {
		t.Fatal(err)
	}
	if a.Root().num <= 1e308 {
		t.Errorf("huge literal has value %v", a.Root().num)
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name   string
		a, b   string
		differ bool
	}{
		{"spaces", "1+2*3", " 1 + 2 * 3 ", false},
		{"mulparen", "1+2*3", "1+(2*3)", false},
		{"addparen", "1+2*3", "(1+2)*3", true},
		{"rightassoc", "2^3^2", "2^(3^2)", false},
		{"leftassoc", "1-2-3", "(1-2)-3", false},
		{"negpow", "-2^2", "-(2^2)", false},
		{"negpowparen", "-2^2", "(-2)^2", true},
		{"negvarpow", "-x^2", "-(x^2)", false},
		{"funcpow", "sin(x)^2", "(sin(x))^2", false},
		{"negfuncpow", "-sin(x)^2", "-(sin(x)^2)", false},
		{"negexp", "2^-x*3", "(2^(-x))*3", false},
		{"implicitfunc", "sin x", "sin(x)", false},
		{"implicitfuncpow", "sin x^2", "sin(x)^2", false},
		{"funcneg", "sin -(x)*2", "sin(-(x))*2", false},
		{"alias", "2×3÷4", "2*3/4", false},
		{"width", "２＋３", "2+3", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.a)
			if err != nil {
				t.Fatalf("couldn't parse %q: %v", c.a, err)
			}
			b, err := Parse(c.b)
			if err != nil {
				t.Fatalf("couldn't parse %q: %v", c.b, err)
			}
			d, e := a.root.diff(b.root)
			if differ := d != nil || e != nil; differ != c.differ {
				t.Errorf("%q and %q: want differ=%t, got %v and %v", c.a, c.b, c.differ, d, e)
			}
		})
	}
}

func TestParseString(t *testing.T) {
	srcs := []string{
		"1",
		"-x",
		"-2^2",
		"(-2)^2",
		"2^-2",
		"1+2*3-4/5",
		"2^3^2",
		"--x",
		"-(1+2)",
		"sin(x)^2+cos(x)^2",
		"-sin(x)^2",
		"max(1, min(x, -y))*log(8, 2)",
		"2^-(1)*3",
		"-pi*e",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			a, err := Parse(src)
			if err != nil {
				t.Fatalf("couldn't parse %q: %v", src, err)
			}
			s := a.String()
			b, err := Parse(s)
			if err != nil {
				t.Fatalf("couldn't parse %q from %q: %v", s, src, err)
			}
			if d, e := a.root.diff(b.root); d != nil || e != nil {
				t.Errorf("%q formats as %q, which parses differently: %v vs %v", src, s, d, e)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"empty", "", ErrEmpty},
		{"spaces", "  ", ErrEmpty},
		{"parens", "()", ErrEmpty},
		{"trailing", "1+", ErrOperand},
		{"leading", "*2", ErrOperand},
		{"nofuncarg", "sin()", ErrOperand},
		{"onearg", "max(1)", ErrOperand},
		{"twoargs", "sin(1, 2)", ErrOperator},
		{"juxtaposed", "1 2", ErrOperator},
		{"open", "(1", ErrUnbalanced},
		{"close", "1)", ErrUnbalanced},
		{"sep", "1,2", ErrSeparator},
		{"rune", "1 & 2", ErrRune},
		{"number", "1.2.3+4", ErrNumber},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if a != nil {
				t.Errorf("parsing %q gave tree %v", c.src, a)
			}
			if !errors.Is(err, c.err) {
				t.Errorf("parsing %q: want %v, got %v", c.src, c.err, err)
			}
		})
	}
}

func TestParseSymbols(t *testing.T) {
	s := NewSymbols(WithConst("tau", 2*math.Pi))
	a, err := s.Parse("tau/2")
	if err != nil {
		t.Fatal(err)
	}
	if a.Symbols() != s {
		t.Error("tree does not keep its symbol table")
	}
	if k := a.Root().Left().Kind(); k != NodeConst {
		t.Errorf("tau parsed as %v", k)
	}
	b, err := Parse("tau/2")
	if err != nil {
		t.Fatal(err)
	}
	if k := b.Root().Left().Kind(); k != NodeName {
		t.Errorf("tau with default symbols parsed as %v", k)
	}
}
