package diag

import (
	"fmt"
)

// Code is a compact numeric diagnostic identifier. Codes are banded by the
// pipeline stage that detects them, so callers can tell the three failure
// kinds apart without string matching: LEX (1000s) for lexical errors,
// SYN (2000s) for grammar errors, SEM (3000s) for evaluation-time errors.
type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001

	// Синтаксические
	SynInfo          Code = 2000
	SynExpectOperand Code = 2001
	SynUnclosedParen Code = 2002
	SynTrailingInput Code = 2003

	// Семантические (отложенная проверка числовых литералов)
	SemInfo            Code = 3000
	SemMalformedNumber Code = 3001
	SemMalformedRPN    Code = 3002

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	LexInfo:            "Lexical information",
	LexUnknownChar:     "Unknown character",
	SynInfo:            "Syntax information",
	SynExpectOperand:   "Expected a number or '('",
	SynUnclosedParen:   "Unclosed parenthesis",
	SynTrailingInput:   "Trailing input after expression",
	SemInfo:            "Semantic information",
	SemMalformedNumber: "Malformed numeric literal",
	SemMalformedRPN:    "Malformed RPN sequence",
	IOLoadFileError:    "I/O load file error",
	ObsInfo:            "Observability information",
	ObsTimings:         "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsLexical reports whether the code belongs to the lexical band.
func (c Code) IsLexical() bool { return c >= 1000 && c < 2000 }

// IsSyntax reports whether the code belongs to the syntax band.
func (c Code) IsSyntax() bool { return c >= 2000 && c < 3000 }

// IsSemantic reports whether the code belongs to the semantic band.
func (c Code) IsSemantic() bool { return c >= 3000 && c < 4000 }
