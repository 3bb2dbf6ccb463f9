package eval

import (
	"fmt"
	"math"
	"strconv"

	"rpncalc/internal/diag"
	"rpncalc/internal/rpn"
	"rpncalc/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil
}

// Error is a semantic evaluation failure. Code stays in the SEM band so
// callers can tell it apart from lexical and syntax failures.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

// Evaluate runs the postfix sequence through a value stack and returns the
// single residual value. Number leaves are parsed lazily here — a lexically
// accepted literal like "1.2.3" fails only now, with SemMalformedNumber.
// Division by zero and domain errors of Pow follow IEEE 754 (±Inf/NaN) and
// are never reported as errors.
func Evaluate(seq rpn.Sequence, opts Options) (float64, error) {
	stack := make([]float64, 0, 8)

	pop := func() float64 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}

	for i, tok := range seq {
		switch tok.Kind {
		case rpn.Number:
			v, err := strconv.ParseFloat(tok.Text, 64)
			if err != nil {
				return 0, semErr(opts, diag.SemMalformedNumber, tok.Span,
					"malformed numeric literal \""+tok.Text+"\"")
			}
			stack = append(stack, v)

		case rpn.Neg:
			if len(stack) < 1 {
				return 0, shapeErr(opts, tok, i, 1, len(stack))
			}
			stack[len(stack)-1] = -stack[len(stack)-1]

		case rpn.Add, rpn.Sub, rpn.Mul, rpn.Div, rpn.Pow:
			if len(stack) < 2 {
				return 0, shapeErr(opts, tok, i, 2, len(stack))
			}
			// более поздний push — правый операнд
			right := pop()
			left := pop()
			stack = append(stack, apply(tok.Kind, left, right))

		default:
			return 0, shapeErr(opts, tok, i, 0, len(stack))
		}
	}

	// Корректная последовательность оставляет ровно одно значение.
	if len(stack) != 1 {
		sp := source.Span{}
		if len(seq) > 0 {
			sp = seq[0].Span.Cover(seq[len(seq)-1].Span)
		}
		return 0, semErr(opts, diag.SemMalformedRPN, sp,
			fmt.Sprintf("sequence leaves %d values on the stack, want 1", len(stack)))
	}
	return stack[0], nil
}

func apply(k rpn.Kind, left, right float64) float64 {
	switch k {
	case rpn.Add:
		return left + right
	case rpn.Sub:
		return left - right
	case rpn.Mul:
		return left * right
	case rpn.Div:
		// деление на ноль остаётся IEEE-делением: ±Inf или NaN
		return left / right
	case rpn.Pow:
		return math.Pow(left, right)
	}
	return math.NaN()
}

func semErr(opts Options, code diag.Code, sp source.Span, msg string) error {
	if opts.Reporter != nil {
		opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
	return &Error{Code: code, Span: sp, Msg: msg}
}

func shapeErr(opts Options, tok rpn.Token, idx, need, have int) error {
	return semErr(opts, diag.SemMalformedRPN, tok.Span,
		fmt.Sprintf("operator %q at %d needs %d operands, stack has %d", tok.Kind.Symbol(), idx, need, have))
}
