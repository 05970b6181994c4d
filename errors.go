package astree

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors wrapped by TokenizeError, ParseError, and EvaluationError.
var (
	// ErrRune is an unrecognized character in the input.
	ErrRune = errors.New("unrecognized character")
	// ErrNumber is a malformed numeric literal.
	ErrNumber = errors.New("malformed number")
	// ErrUnbalanced is a parenthesis without a partner.
	ErrUnbalanced = errors.New("unbalanced parenthesis")
	// ErrSeparator is an argument separator outside of any parentheses.
	ErrSeparator = errors.New("misplaced separator")
	// ErrOperand is an operator or function missing an operand.
	ErrOperand = errors.New("missing operand")
	// ErrOperator is an operand left over without an operator to combine it.
	ErrOperator = errors.New("missing operator")
	// ErrSymbol is a symbol the symbol table does not know.
	ErrSymbol = errors.New("unknown symbol")
	// ErrEmpty is an empty expression.
	ErrEmpty = errors.New("empty expression")
	// ErrUnbound is a variable with no value.
	ErrUnbound = errors.New("undefined variable")
	// ErrDomain is a function argument outside the function's domain.
	ErrDomain = errors.New("outside domain")
)

// TokenizeError indicates text that cannot be split into tokens. It implements
// InputError.
type TokenizeError struct {
	// Text is the token being scanned when the error was found, including the
	// offending rune.
	Text string
	// Col is the 1-based rune position of the start of Text.
	Col int
	// Err is ErrRune or ErrNumber.
	Err error
}

func (err *TokenizeError) Error() string {
	return errpos(err.Col, err.Err.Error()+" "+strconv.Quote(err.Text))
}

func (err *TokenizeError) Unwrap() error {
	return err.Err
}

func (err *TokenizeError) Pos() int {
	return err.Col
}

// ParseError indicates tokens or postfix symbols that do not form an
// expression. It implements InputError.
type ParseError struct {
	// Symbol is the symbol at which the error was detected. It is empty for
	// errors at the end of input.
	Symbol string
	// Col is the 1-based rune position of the symbol, or 0 if the error comes
	// from a postfix sequence with no position information.
	Col int
	// Err is the sentinel error describing the problem.
	Err error
}

func (err *ParseError) Error() string {
	msg := err.Err.Error()
	if err.Symbol != "" {
		msg += " at " + strconv.Quote(err.Symbol)
	}
	if err.Col <= 0 {
		return msg
	}
	return errpos(err.Col, msg)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

func (err *ParseError) Pos() int {
	return err.Col
}

// EvaluationError indicates an expression that parsed but has no value.
type EvaluationError struct {
	// Symbol is the node symbol whose evaluation failed.
	Symbol string
	// Args holds the evaluated operands for function and operator nodes.
	Args []float64
	// Err is ErrUnbound, ErrDomain, or ErrEmpty.
	Err error
}

func (err *EvaluationError) Error() string {
	switch {
	case errors.Is(err.Err, ErrUnbound):
		return "undefined variable: " + strconv.Quote(err.Symbol)
	case len(err.Args) == 0:
		if err.Symbol == "" {
			return err.Err.Error()
		}
		return strconv.Quote(err.Symbol) + ": " + err.Err.Error()
	}
	args := make([]string, len(err.Args))
	for i, x := range err.Args {
		args[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return err.Symbol + "(" + strings.Join(args, ", ") + ") " + err.Err.Error()
}

func (err *EvaluationError) Unwrap() error {
	return err.Err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Errors from Tokenize and
// from ToPostfix implement InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*TokenizeError)(nil)
	_ InputError = (*ParseError)(nil)
)
