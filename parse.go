package astree

import (
	"math"
	"strconv"
)

// entry is an operator stack entry during conversion to postfix.
type entry struct {
	tok Token
	// prec and right are the effective precedence and associativity.
	prec  int8
	right bool
	fn    bool
}

func (e entry) paren() bool {
	return e.tok.Kind == TokenLeftParen
}

// ToPostfix converts tokens to postfix order using the default symbols.
func ToPostfix(toks []Token) ([]string, error) {
	return defaultSymbols.ToPostfix(toks)
}

// ToPostfix converts infix tokens to a sequence of symbols in postfix order.
// Parentheses and separators do not appear in the result. Functions bind
// tighter than any operator, and a unary operator directly after a tighter
// operator takes on that operator's precedence, so that "2^-x*3" groups as
// "(2^(-x))*3". A unary operator directly after a function applies only to the
// next operand, so "sin -(x)*2" groups as "sin(-(x))*2".
func (s *Symbols) ToPostfix(toks []Token) ([]string, error) {
	out := make([]string, 0, len(toks))
	var stack []entry
	pop := func() {
		out = append(out, stack[len(stack)-1].tok.Text)
		stack = stack[:len(stack)-1]
	}
	for _, tok := range toks {
		switch tok.Kind {
		case TokenNumber, TokenVariable:
			out = append(out, tok.Text)
		case TokenLeftParen:
			stack = append(stack, entry{tok: tok})
		case TokenFunction:
			if !s.IsFunction(tok.Text) {
				return nil, &ParseError{Symbol: tok.Text, Col: tok.Col, Err: ErrSymbol}
			}
			stack = append(stack, entry{tok: tok, fn: true})
		case TokenOperator:
			op, ok := s.ops[tok.Text]
			if !ok {
				return nil, &ParseError{Symbol: tok.Text, Col: tok.Col, Err: ErrSymbol}
			}
			e := entry{tok: tok, prec: op.Prec, right: op.Assoc == RightAssoc}
			if op.Fn.Arity() == 1 {
				// Prefix operators have no left operand to complete.
				if len(stack) > 0 {
					top := stack[len(stack)-1]
					switch {
					case top.fn:
						// A function argument is a single operand.
						e.prec, e.right = math.MaxInt8, false
					case !top.paren() && top.prec > e.prec:
						e.prec, e.right = top.prec, top.right
					}
				}
				stack = append(stack, e)
				continue
			}
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.paren() || !(top.fn || top.prec > e.prec || top.prec == e.prec && !e.right) {
					break
				}
				pop()
			}
			stack = append(stack, e)
		case TokenSeparator:
			for len(stack) > 0 && !stack[len(stack)-1].paren() {
				pop()
			}
			if len(stack) == 0 {
				return nil, &ParseError{Symbol: tok.Text, Col: tok.Col, Err: ErrSeparator}
			}
		case TokenRightParen:
			for len(stack) > 0 && !stack[len(stack)-1].paren() {
				pop()
			}
			if len(stack) == 0 {
				return nil, &ParseError{Symbol: tok.Text, Col: tok.Col, Err: ErrUnbalanced}
			}
			stack = stack[:len(stack)-1]
		default:
			panic("astree: unknown token: " + tok.String())
		}
	}
	for len(stack) > 0 {
		if top := stack[len(stack)-1]; top.paren() {
			return nil, &ParseError{Symbol: top.tok.Text, Col: top.tok.Col, Err: ErrUnbalanced}
		}
		pop()
	}
	return out, nil
}

// Build creates a tree from postfix symbols using the default symbols.
func Build(postfix []string) (*AST, error) {
	return defaultSymbols.Build(postfix)
}

// Build creates a tree from symbols in postfix order. Each unary function or
// operator takes the last node as its right child; each binary one takes the
// last two as left and right.
func (s *Symbols) Build(postfix []string) (*AST, error) {
	var stack []*Node
	for _, sym := range postfix {
		n := &Node{kind: s.classify(sym), sym: sym}
		switch n.kind {
		case NodeNumber:
			v, err := strconv.ParseFloat(sym, 64)
			if err != nil {
				// Only range errors are possible for numerals, and v is then
				// ±Inf.
				if ne, _ := err.(*strconv.NumError); ne == nil || ne.Err != strconv.ErrRange {
					return nil, &ParseError{Symbol: sym, Err: ErrSymbol}
				}
			}
			n.num = v
		case NodeConst, NodeName:
			// Resolved when evaluating.
		case NodeUnary:
			if len(stack) < 1 {
				return nil, &ParseError{Symbol: sym, Err: ErrOperand}
			}
			n.fn = s.fn(sym)
			n.right = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case NodeBinary:
			if len(stack) < 2 {
				return nil, &ParseError{Symbol: sym, Err: ErrOperand}
			}
			n.fn = s.fn(sym)
			n.left, n.right = stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-2]
		default:
			return nil, &ParseError{Symbol: sym, Err: ErrSymbol}
		}
		stack = append(stack, n)
	}
	switch len(stack) {
	case 0:
		return nil, &ParseError{Err: ErrEmpty}
	case 1:
		return &AST{root: stack[0], syms: s}, nil
	default:
		return nil, &ParseError{Symbol: stack[len(stack)-1].sym, Err: ErrOperator}
	}
}

// Parse parses an expression using the default symbols.
func Parse(src string) (*AST, error) {
	return defaultSymbols.Parse(src)
}

// Parse tokenizes an expression, converts it to postfix, and builds its tree.
// Errors are *TokenizeError or *ParseError.
func (s *Symbols) Parse(src string) (*AST, error) {
	toks, err := s.Tokenize(src)
	if err != nil {
		return nil, err
	}
	postfix, err := s.ToPostfix(toks)
	if err != nil {
		return nil, err
	}
	return s.Build(postfix)
}
