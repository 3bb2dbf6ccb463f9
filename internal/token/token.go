package token

import (
	"rpncalc/internal/source"
)

// Token represents a single expression token with its location.
// Text is the lexeme as written; for Number tokens it is the raw span that
// the evaluator later parses as a float.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric literal.
func (t Token) IsLiteral() bool { return t.Kind == Number }

// IsOperator reports whether the token is a binary arithmetic operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Caret:
		return true
	default:
		return false
	}
}

// StartsOperand reports whether the token can begin an operand: a numeric
// literal or an opening parenthesis. The parser uses this one-token lookahead
// to fold implied multiplication.
func (t Token) StartsOperand() bool {
	return t.Kind == Number || t.Kind == LParen
}
