package rpn

import (
	"fmt"
	"io"
	"strings"
)

// Sequence is an ordered postfix token list. A well-formed sequence never
// underflows under left-to-right stack evaluation and leaves exactly one
// value; Wellformed verifies that without touching the literal texts.
// A Sequence is immutable after parsing and safe to evaluate any number of
// times.
type Sequence []Token

// Wellformed simulates stack depths across the sequence. It returns nil when
// the simulation never underflows and ends at depth one.
func (s Sequence) Wellformed() error {
	depth := 0
	for i, tok := range s {
		switch {
		case tok.Kind == Number:
			depth++
		case tok.Kind.IsUnary():
			if depth < 1 {
				return fmt.Errorf("rpn: unary %q at %d with empty stack", tok.Kind.Symbol(), i)
			}
		case tok.Kind.IsBinary():
			if depth < 2 {
				return fmt.Errorf("rpn: binary %q at %d with stack depth %d", tok.Kind.Symbol(), i, depth)
			}
			depth--
		default:
			return fmt.Errorf("rpn: unknown kind %d at %d", tok.Kind, i)
		}
	}
	if depth != 1 {
		return fmt.Errorf("rpn: sequence ends at stack depth %d, want 1", depth)
	}
	return nil
}

// String renders the canonical single-line form: tokens in sequence order,
// space-separated, numbers as their original lexeme, negation as "neg".
// The output is byte-stable for identical input and suits golden files.
func (s Sequence) String() string {
	var sb strings.Builder
	for i, tok := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if tok.Kind == Number {
			sb.WriteString(tok.Text)
		} else {
			sb.WriteString(tok.Kind.Symbol())
		}
	}
	return sb.String()
}

// Format writes the canonical form followed by a newline.
func Format(w io.Writer, s Sequence) error {
	_, err := io.WriteString(w, s.String()+"\n")
	return err
}
