// Package testkit holds structural invariant checks shared by tests across
// the pipeline packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rpncalc/internal/rpn"
	"rpncalc/internal/source"
	"rpncalc/internal/token"
)

// CheckTokenStream runs a minimal set of token stream invariants:
// 1) the stream is non-empty and ends with exactly one EOF token
// 2) every span points into sf and stays within content bounds
// 3) token start offsets never decrease
func CheckTokenStream(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	if tokens[len(tokens)-1].Kind != token.EOF {
		return fmt.Errorf("stream does not end with EOF: %v", tokens[len(tokens)-1].Kind)
	}
	for i, tok := range tokens[:len(tokens)-1] {
		if tok.Kind == token.EOF {
			return fmt.Errorf("interior EOF at %d", i)
		}
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevStart uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("token %d inverted span: %v", i, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d span beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevStart {
			return fmt.Errorf("token %d span start goes backwards: %d < %d", i, sp.Start, prevStart)
		}
		prevStart = sp.Start
		if tok.Kind != token.EOF && tok.Kind != token.Number && sp.Len() != 1 {
			return fmt.Errorf("token %d (%v) is not single-byte: %v", i, tok.Kind, sp)
		}
	}
	return nil
}

// CheckSequence verifies a parsed postfix sequence:
// 1) the sequence is well-formed under stack simulation
// 2) every span points into sf and stays within content bounds
// 3) every Number leaf carries a non-empty lexeme matching its span
func CheckSequence(seq rpn.Sequence, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if err := seq.Wellformed(); err != nil {
		return err
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	for i, tok := range seq {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("rpn %d span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("rpn %d inverted span: %v", i, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("rpn %d span beyond content: %d > %d", i, sp.End, lenContent)
		}
		if tok.Kind == rpn.Number {
			if tok.Text == "" {
				return fmt.Errorf("rpn %d number with empty lexeme", i)
			}
			if sp.Text(sf) != tok.Text {
				return fmt.Errorf("rpn %d lexeme %q does not match span text %q", i, tok.Text, sp.Text(sf))
			}
		}
	}
	return nil
}
