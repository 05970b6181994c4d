package astree

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Func is a function from reals to reals, used for both named functions and
// operators.
type Func interface {
	// Arity returns the number of arguments the function takes, 1 or 2.
	Arity() int
	// Call evaluates the function. len(args) is always Arity(). If the
	// arguments are outside the function's domain, the error must wrap
	// ErrDomain.
	Call(args ...float64) (float64, error)
}

type monadic struct {
	f  func(float64) float64
	in func(float64) bool
}

func (m monadic) Arity() int {
	return 1
}

func (m monadic) Call(args ...float64) (float64, error) {
	x := args[0]
	if m.in != nil && !m.in(x) {
		return math.NaN(), ErrDomain
	}
	r := m.f(x)
	if math.IsNaN(r) && !math.IsNaN(x) {
		return r, ErrDomain
	}
	return r, nil
}

// Monadic wraps a function of one variable into a Func. If in is not nil,
// arguments for which it returns false are outside the function's domain. A NaN
// result from a non-NaN argument is also a domain error.
func Monadic(f func(float64) float64, in func(x float64) bool) Func {
	return monadic{f, in}
}

type dyadic struct {
	f  func(x, y float64) float64
	in func(x, y float64) bool
}

func (d dyadic) Arity() int {
	return 2
}

func (d dyadic) Call(args ...float64) (float64, error) {
	x, y := args[0], args[1]
	if d.in != nil && !d.in(x, y) {
		return math.NaN(), ErrDomain
	}
	r := d.f(x, y)
	if math.IsNaN(r) && !math.IsNaN(x) && !math.IsNaN(y) {
		return r, ErrDomain
	}
	return r, nil
}

// Dyadic wraps a function of two variables into a Func, with the same domain
// handling as Monadic.
func Dyadic(f func(x, y float64) float64, in func(x, y float64) bool) Func {
	return dyadic{f, in}
}

// Assoc is the associativity of an operator.
type Assoc int8

const (
	// LeftAssoc groups equal-precedence operators left to right.
	LeftAssoc Assoc = iota
	// RightAssoc groups equal-precedence operators right to left.
	RightAssoc
)

// Operator is a symbolic operator.
type Operator struct {
	// Prec is the precedence. Higher binds tighter.
	Prec int8
	// Assoc is the associativity.
	Assoc Assoc
	// Fn evaluates the operator. Its arity is the operator's arity.
	Fn Func
}

// Negate is the symbol of unary negation. The lexer produces it for a minus
// sign that has no left operand.
const Negate = "~"

// Operators contains the runes which are lexed as operators.
const Operators = "+-*/^"

func nonzero(x, y float64) bool { return y != 0 }

func positive(x float64) bool { return x > 0 }

func unit(x float64) bool { return -1 <= x && x <= 1 }

var defaultops = map[string]Operator{
	"^": {4, RightAssoc, Dyadic(math.Pow, func(x, y float64) bool { return x != 0 || y >= 0 })},
	"*": {3, LeftAssoc, Dyadic(func(x, y float64) float64 { return x * y }, nil)},
	"/": {3, LeftAssoc, Dyadic(func(x, y float64) float64 { return x / y }, nonzero)},
	"+": {2, LeftAssoc, Dyadic(func(x, y float64) float64 { return x + y }, nil)},
	"-": {2, LeftAssoc, Dyadic(func(x, y float64) float64 { return x - y }, nil)},

	Negate: {2, LeftAssoc, Monadic(func(x float64) float64 { return -x }, nil)},
}

var defaultfuncs = map[string]Func{
	"sin":   Monadic(math.Sin, nil),
	"cos":   Monadic(math.Cos, nil),
	"tan":   Monadic(math.Tan, nil),
	"asin":  Monadic(math.Asin, unit),
	"acos":  Monadic(math.Acos, unit),
	"atan":  Monadic(math.Atan, nil),
	"sinh":  Monadic(math.Sinh, nil),
	"cosh":  Monadic(math.Cosh, nil),
	"tanh":  Monadic(math.Tanh, nil),
	"exp":   Monadic(math.Exp, nil),
	"ln":    Monadic(math.Log, positive),
	"lg":    Monadic(math.Log10, positive),
	"sqrt":  Monadic(math.Sqrt, func(x float64) bool { return x >= 0 }),
	"abs":   Monadic(math.Abs, nil),
	"floor": Monadic(math.Floor, nil),
	"ceil":  Monadic(math.Ceil, nil),

	"max": Dyadic(math.Max, nil),
	"min": Dyadic(math.Min, nil),
	// log(x, b) is the base b logarithm of x.
	"log": Dyadic(
		func(x, b float64) float64 { return math.Log(x) / math.Log(b) },
		func(x, b float64) bool { return x > 0 && b > 0 && b != 1 },
	),
}

var defaultconsts = map[string]float64{
	"pi": math.Pi,
	"π":  math.Pi,
	"e":  math.E,
}

// Symbols holds the operator, function, and constant tables that drive
// tokenizing, parsing, and evaluation. A Symbols is never modified after it is
// created, so it is safe for concurrent use.
type Symbols struct {
	ops    map[string]Operator
	funcs  map[string]Func
	consts map[string]float64
	// names matches any function name, longest first.
	names *regexp.Regexp
}

var defaultSymbols = newSymbols(defaultops, defaultfuncs, defaultconsts)

// DefaultSymbols returns the shared default symbol tables.
func DefaultSymbols() *Symbols {
	return defaultSymbols
}

func newSymbols(ops map[string]Operator, funcs map[string]Func, consts map[string]float64) *Symbols {
	s := Symbols{
		ops:    make(map[string]Operator, len(ops)),
		funcs:  make(map[string]Func, len(funcs)),
		consts: make(map[string]float64, len(consts)),
	}
	for k, v := range ops {
		s.ops[k] = v
	}
	for k, v := range funcs {
		s.funcs[k] = v
	}
	for k, v := range consts {
		s.consts[k] = v
	}
	s.compile()
	return &s
}

// compile builds the function name pattern. Longer names come first so that
// e.g. sinh is preferred over sin.
func (s *Symbols) compile() {
	if len(s.funcs) == 0 {
		s.names = nil
		return
	}
	names := make([]string, 0, len(s.funcs))
	for k := range s.funcs {
		names = append(names, k)
	}
	sortby(names, func(a, b string) bool {
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	for i, k := range names {
		names[i] = regexp.QuoteMeta(k)
	}
	s.names = regexp.MustCompile(strings.Join(names, "|"))
}

// SymbolOption is an option for creating symbol tables.
type SymbolOption interface {
	symbolOption(*Symbols)
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	constopt struct {
		name string
		val  float64
	}
	nofuncsopt struct{}
)

// WithFunc sets a function. To remove a default function so that its name is
// lexed as a variable, pass nil for fn. Panics if name is not a run of letters
// or fn has an arity other than 1 or 2.
func WithFunc(name string, fn Func) SymbolOption {
	checkname(name)
	if fn != nil && fn.Arity() != 1 && fn.Arity() != 2 {
		panic("astree: function " + name + " has arity " + strconv.Itoa(fn.Arity()))
	}
	return funcopt{name, fn}
}

func (o funcopt) symbolOption(s *Symbols) {
	if o.fn == nil {
		delete(s.funcs, o.name)
		return
	}
	delete(s.consts, o.name)
	s.funcs[o.name] = o.fn
}

// WithConst sets a special constant. Panics if name is not a run of letters.
func WithConst(name string, val float64) SymbolOption {
	checkname(name)
	return constopt{name, val}
}

func (o constopt) symbolOption(s *Symbols) {
	delete(s.funcs, o.name)
	s.consts[o.name] = o.val
}

// DisableDefaultFuncs removes all functions set so far. Their names will be
// lexed as variables instead.
func DisableDefaultFuncs() SymbolOption {
	return nofuncsopt{}
}

func (nofuncsopt) symbolOption(s *Symbols) {
	for k := range s.funcs {
		delete(s.funcs, k)
	}
}

// NewSymbols creates symbol tables from the defaults with options applied in
// order.
func NewSymbols(opts ...SymbolOption) *Symbols {
	s := newSymbols(defaultops, defaultfuncs, defaultconsts)
	for _, opt := range opts {
		opt.symbolOption(s)
	}
	s.compile()
	return s
}

func checkname(name string) {
	if !isname(name) {
		panic("astree: invalid symbol name " + strconv.Quote(name))
	}
}

// isname reports whether s is a non-empty run of letters.
func isname(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// isnumeral reports whether s is a run of digits with at most one decimal
// point and at least one digit.
func isnumeral(s string) bool {
	dig, dot := false, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case '0' <= c && c <= '9':
			dig = true
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return dig
}

// classify tags a symbol with the kind of node it produces. Function and
// operator symbols take precedence over anything else.
func (s *Symbols) classify(sym string) NodeKind {
	if fn := s.funcs[sym]; fn != nil {
		if fn.Arity() == 1 {
			return NodeUnary
		}
		return NodeBinary
	}
	if op, ok := s.ops[sym]; ok {
		if op.Fn.Arity() == 1 {
			return NodeUnary
		}
		return NodeBinary
	}
	name := strings.TrimPrefix(sym, "-")
	switch {
	case s.isconst(name):
		return NodeConst
	case isnumeral(name):
		return NodeNumber
	case isname(name):
		return NodeName
	default:
		return NodeNone
	}
}

func (s *Symbols) isconst(name string) bool {
	_, ok := s.consts[name]
	return ok
}

// fn gets the evaluation rule for a function or operator symbol.
func (s *Symbols) fn(sym string) Func {
	if fn := s.funcs[sym]; fn != nil {
		return fn
	}
	return s.ops[sym].Fn
}

// IsNumber reports whether sym is a numeric literal, possibly signed.
func (s *Symbols) IsNumber(sym string) bool {
	return s.classify(sym) == NodeNumber
}

// IsVariable reports whether sym is a free variable name, possibly signed.
// Function names and constants are not variables.
func (s *Symbols) IsVariable(sym string) bool {
	return s.classify(sym) == NodeName
}

// IsConst reports whether sym is a special constant, possibly signed.
func (s *Symbols) IsConst(sym string) bool {
	return s.classify(sym) == NodeConst
}

// IsFunction reports whether sym is a named function of either arity.
func (s *Symbols) IsFunction(sym string) bool {
	return s.funcs[sym] != nil
}

// IsOperator reports whether sym is an operator, including Negate.
func (s *Symbols) IsOperator(sym string) bool {
	_, ok := s.ops[sym]
	return ok
}

// IsUnary reports whether sym takes one operand.
func (s *Symbols) IsUnary(sym string) bool {
	return s.classify(sym) == NodeUnary
}

// IsBinary reports whether sym takes two operands.
func (s *Symbols) IsBinary(sym string) bool {
	return s.classify(sym) == NodeBinary
}

// Precedence returns the precedence and associativity of an operator. ok is
// false if sym is not an operator.
func (s *Symbols) Precedence(sym string) (prec int8, assoc Assoc, ok bool) {
	op, ok := s.ops[sym]
	return op.Prec, op.Assoc, ok
}

// Const returns the value of a special constant.
func (s *Symbols) Const(name string) (float64, bool) {
	v, ok := s.consts[name]
	return v, ok
}
