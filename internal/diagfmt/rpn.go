package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"rpncalc/internal/rpn"
	"rpncalc/internal/source"
)

type RPNOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

// FormatSequencePretty выводит постфиксную последовательность по одному
// токену на строку, с позициями
func FormatSequencePretty(w io.Writer, seq rpn.Sequence, fs *source.FileSet) error {
	for i, tok := range seq {
		startPos, endPos := fs.Resolve(tok.Span)

		fmt.Fprintf(w, "%3d: %-8s", i+1, tok.Kind.Symbol())
		if tok.Kind == rpn.Number {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
	}
	return nil
}

// FormatSequenceJSON выводит последовательность в JSON формате
func FormatSequenceJSON(w io.Writer, seq rpn.Sequence) error {
	output := make([]RPNOutput, 0, len(seq))
	for _, tok := range seq {
		output = append(output, RPNOutput{
			Kind: tok.Kind.Symbol(),
			Text: tok.Text,
			Span: tok.Span,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
