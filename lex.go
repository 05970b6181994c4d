package astree

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Token is a classified lexical unit.
type Token struct {
	// Kind is the token's class.
	Kind TokenKind
	// Text is the token's lexeme. Operator tokens for unary negation have the
	// text Negate.
	Text string
	// Col is the 1-based rune position of the token in the normalized input.
	Col int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}

// TokenKind is the class of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNumber is a numeric literal, possibly with a folded minus sign.
	TokenNumber
	// TokenVariable is a name that is not a function, possibly with a folded
	// minus sign. Special constants are lexed as variables.
	TokenVariable
	// TokenOperator is an operator, including Negate.
	TokenOperator
	// TokenFunction is a function name.
	TokenFunction
	// TokenLeftParen is (.
	TokenLeftParen
	// TokenRightParen is ).
	TokenRightParen
	// TokenSeparator is the function argument separator, a comma.
	TokenSeparator
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=TokenKind -trimprefix=Token
//go:generate go mod tidy

// aliases maps operator lookalikes to the operators they stand for. NFKC
// normalization already maps full-width forms.
var aliases = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
)

type lexer struct {
	syms *Symbols
	src  string
	// pos is the byte offset of the next rune, col its rune position.
	pos, col int
	// spans are the byte ranges of function names in src. sp is the index of
	// the first span that does not start before pos.
	spans [][]int
	sp    int
	toks  []Token
}

// Tokenize splits an expression into tokens using the default symbols.
func Tokenize(src string) ([]Token, error) {
	return defaultSymbols.Tokenize(src)
}

// Tokenize splits an expression into tokens. The text is normalized to NFKC
// first. Function names are recognized anywhere they appear as substrings,
// preferring longer names, so with the default functions "xsin" is the
// variable x followed by the function sin. A minus sign with no left operand
// is folded into a following number or name, or else becomes Negate.
func (s *Symbols) Tokenize(src string) ([]Token, error) {
	src = aliases.Replace(norm.NFKC.String(src))
	l := lexer{syms: s, src: src, col: 1}
	if s.names != nil {
		l.spans = s.names.FindAllStringIndex(src, -1)
	}
	for l.pos < len(l.src) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	return l.toks, nil
}

// span returns the end of the function name starting at byte offset p, or -1
// if no function name starts there.
func (l *lexer) span(p int) int {
	for l.sp < len(l.spans) && l.spans[l.sp][0] < p {
		l.sp++
	}
	if l.sp < len(l.spans) && l.spans[l.sp][0] == p {
		return l.spans[l.sp][1]
	}
	return -1
}

// peek returns the rune at byte offset p, or utf8.RuneError at the end.
func (l *lexer) peek(p int) rune {
	if p >= len(l.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.src[p:])
	return r
}

// advance moves past the bytes up to p and returns the text consumed and its
// starting column.
func (l *lexer) advance(p int) (string, int) {
	text, col := l.src[l.pos:p], l.col
	l.col += utf8.RuneCountInString(text)
	l.pos = p
	return text, col
}

func (l *lexer) emit(kind TokenKind, text string, col int) {
	l.toks = append(l.toks, Token{Kind: kind, Text: text, Col: col})
}

// last returns the kind of the last emitted token, or TokenNone if there is
// none.
func (l *lexer) last() TokenKind {
	if len(l.toks) == 0 {
		return TokenNone
	}
	return l.toks[len(l.toks)-1].Kind
}

// next scans one token, or skips one run of whitespace.
func (l *lexer) next() error {
	r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
	if end := l.span(l.pos); end >= 0 {
		text, col := l.advance(end)
		l.emit(TokenFunction, text, col)
		return nil
	}
	switch {
	case unicode.IsSpace(r):
		l.advance(l.pos + sz)
	case isnumstart(r):
		return l.number("", l.col)
	case unicode.IsLetter(r):
		l.name("", l.col)
	case r == '(':
		text, col := l.advance(l.pos + sz)
		l.emit(TokenLeftParen, text, col)
	case r == ')':
		text, col := l.advance(l.pos + sz)
		l.emit(TokenRightParen, text, col)
	case r == ',':
		text, col := l.advance(l.pos + sz)
		l.emit(TokenSeparator, text, col)
	case r == '-':
		return l.minus()
	case strings.ContainsRune(Operators, r):
		text, col := l.advance(l.pos + sz)
		if text == "^" {
			l.unfold()
		}
		l.emit(TokenOperator, text, col)
	default:
		return &TokenizeError{Text: string(r), Col: l.col, Err: ErrRune}
	}
	return nil
}

func isnumstart(r rune) bool {
	return '0' <= r && r <= '9' || r == '.'
}

// minus scans a minus sign, deciding between subtraction and negation.
func (l *lexer) minus() error {
	text, col := l.advance(l.pos + 1)
	switch l.last() {
	case TokenNumber, TokenVariable, TokenRightParen:
		l.emit(TokenOperator, text, col)
		return nil
	}
	// Unary. Fold the sign into a following literal or name, unless that name
	// is a function.
	r := l.peek(l.pos)
	switch {
	case l.span(l.pos) >= 0:
		l.emit(TokenOperator, Negate, col)
	case isnumstart(r):
		return l.number("-", col)
	case unicode.IsLetter(r):
		l.name("-", col)
	default:
		l.emit(TokenOperator, Negate, col)
	}
	return nil
}

// number scans a numeric literal starting at col, with sign prepended.
func (l *lexer) number(sign string, col int) error {
	dig, dot := false, false
	p := l.pos
	for ; p < len(l.src); p++ {
		c := l.src[p]
		if c == '.' {
			if dot {
				return &TokenizeError{Text: sign + l.src[l.pos:p+1], Col: col, Err: ErrNumber}
			}
			dot = true
			continue
		}
		if c < '0' || '9' < c {
			break
		}
		dig = true
	}
	text, _ := l.advance(p)
	if !dig {
		return &TokenizeError{Text: sign + text, Col: col, Err: ErrNumber}
	}
	l.emit(TokenNumber, sign+text, col)
	return nil
}

// name scans a run of letters starting at col, stopping where a function name
// starts.
func (l *lexer) name(sign string, col int) {
	p := l.pos
	for p < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[p:])
		if !unicode.IsLetter(r) || p > l.pos && l.span(p) >= 0 {
			break
		}
		p += sz
	}
	text, _ := l.advance(p)
	l.emit(TokenVariable, sign+text, col)
}

// unfold splits a folded minus sign off of the last token, so that in e.g.
// -2^2 the exponentiation binds tighter than the negation.
func (l *lexer) unfold() {
	n := len(l.toks)
	if n == 0 {
		return
	}
	t := l.toks[n-1]
	if t.Kind != TokenNumber && t.Kind != TokenVariable || !strings.HasPrefix(t.Text, "-") {
		return
	}
	l.toks[n-1] = Token{Kind: TokenOperator, Text: Negate, Col: t.Col}
	l.emit(t.Kind, t.Text[1:], t.Col+1)
}
