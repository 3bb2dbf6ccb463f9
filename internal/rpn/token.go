package rpn

import (
	"rpncalc/internal/source"
)

// Kind represents the category of a postfix token.
type Kind uint8

const (
	// Add represents the binary addition operator.
	Add Kind = iota
	// Sub represents the binary subtraction operator.
	Sub
	// Mul represents the binary multiplication operator.
	Mul
	// Div represents the binary division operator.
	Div
	// Pow represents the binary (right-associative in source) power operator.
	Pow
	// Neg represents the unary negation operator.
	Neg
	// Number represents a numeric leaf. It carries the original lexeme;
	// the float grammar is checked only at evaluation time.
	Number
)

var kindSymbols = [...]string{
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Div:    "/",
	Pow:    "^",
	Neg:    "neg",
	Number: "number",
}

// Symbol returns the canonical rendering of the kind: the operator glyph for
// binaries, "neg" for negation, "number" as a placeholder for leaves (leaves
// render their own lexeme).
func (k Kind) Symbol() string {
	if int(k) < len(kindSymbols) {
		return kindSymbols[k]
	}
	return "?"
}

func (k Kind) String() string { return k.Symbol() }

// IsBinary reports whether the kind pops two operands.
func (k Kind) IsBinary() bool {
	switch k {
	case Add, Sub, Mul, Div, Pow:
		return true
	default:
		return false
	}
}

// IsUnary reports whether the kind pops one operand.
func (k Kind) IsUnary() bool { return k == Neg }

// Token is one element of a postfix sequence. For Number tokens Span and
// Text reference the original source lexeme, so the source buffer must
// outlive the sequence.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}
