package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"rpncalc/internal/diag"
	"rpncalc/internal/lexer"
	"rpncalc/internal/source"
	"rpncalc/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.expr", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{diagnostics: make([]diag.Diagnostic, 0)}
	opts := lexer.Options{Reporter: reporter}
	lx := lexer.New(file, opts)

	return lx, reporter
}

// collectAllTokens собирает все токены до EOF
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

// expectTokens проверяет последовательность токенов (без завершающего EOF)
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == token.EOF {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}

	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)",
				i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tok := lx.Next()

	if tok.Kind != expectedKind {
		t.Errorf("Expected kind %v, got %v", expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("Expected text %q, got %q", expectedText, tok.Text)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ====== Тесты для scan_number.go ======

func TestNumbers_Plain(t *testing.T) {
	tests := []string{
		"0",
		"7",
		"123",
		"456789",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.Number, input)
		})
	}
}

func TestNumbers_WithDot(t *testing.T) {
	tests := []string{
		"1.0",
		"3.14",
		"0.5",
		".5",
		"1.",
		"14.2",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.Number, input)
		})
	}
}

func TestNumbers_NotValidatedLexically(t *testing.T) {
	// Лексер захватывает максимальный диапазон цифр/точек без проверки:
	// такие лексемы валидны здесь и падают только при вычислении.
	tests := []string{
		"1.2.3",
		".",
		"..",
		"1..2",
		"...5",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lx, reporter := makeTestLexer(input)
			tok := lx.Next()

			if tok.Kind != token.Number {
				t.Errorf("Expected Number, got %v", tok.Kind)
			}
			if tok.Text != input {
				t.Errorf("Expected text %q, got %q", input, tok.Text)
			}
			if reporter.HasErrors() {
				t.Errorf("Expected no lexical errors, got %v", reporter.ErrorMessages())
			}
		})
	}
}

func TestNumbers_SpanReferencesSource(t *testing.T) {
	lx, _ := makeTestLexer("  3.14  ")
	tok := lx.Next()

	if tok.Span.Start != 2 || tok.Span.End != 6 {
		t.Errorf("Expected span 2-6, got %d-%d", tok.Span.Start, tok.Span.End)
	}
}

// ====== Тесты для scan_ops.go ======

func TestOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"+", token.Plus},
		{"-", token.Minus},
		{"*", token.Star},
		{"/", token.Slash},
		{"^", token.Caret},
		{"(", token.LParen},
		{")", token.RParen},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestUnknownCharacter(t *testing.T) {
	tests := []string{
		"$",
		"#",
		"%",
		"=",
		"a",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lx, reporter := makeTestLexer(input)
			tok := lx.Next()

			if tok.Kind != token.Invalid {
				t.Errorf("Expected Invalid for unknown char %q, got %v", input, tok.Kind)
			}
			if !reporter.HasErrors() {
				t.Error("Expected error report for unknown character")
			}
		})
	}
}

func TestUnknownCharacter_MidExpression(t *testing.T) {
	// "1+$2": лексическая ошибка ровно на '$'
	lx, reporter := makeTestLexer("1+$2")

	one := lx.Next()
	plus := lx.Next()
	bad := lx.Next()

	if one.Kind != token.Number || plus.Kind != token.Plus {
		t.Fatalf("prefix mislexed: %v %v", one.Kind, plus.Kind)
	}
	if bad.Kind != token.Invalid {
		t.Fatalf("Expected Invalid at '$', got %v", bad.Kind)
	}
	if bad.Span.Start != 2 || bad.Span.End != 3 {
		t.Errorf("Expected span 2-3 at '$', got %d-%d", bad.Span.Start, bad.Span.End)
	}
	if !reporter.HasErrors() {
		t.Error("Expected lexical error report")
	}
}

// ====== Пробельные символы ======

func TestWhitespace_Skipped(t *testing.T) {
	expectTokens(t, " 1 \t+\r\n2 ", []token.Kind{
		token.Number,
		token.Plus,
		token.Number,
	})
}

func TestWhitespace_Only(t *testing.T) {
	lx, _ := makeTestLexer("   \t\n  ")
	tok := lx.Next()

	if tok.Kind != token.EOF {
		t.Errorf("Expected EOF for whitespace-only input, got %v", tok.Kind)
	}
}

// ====== Интеграционные тесты ======

func TestLexer_Expression(t *testing.T) {
	expectTokens(t, "2+3*4", []token.Kind{
		token.Number,
		token.Plus,
		token.Number,
		token.Star,
		token.Number,
	})
}

func TestLexer_Parens(t *testing.T) {
	expectTokens(t, "3(4)(5)", []token.Kind{
		token.Number,
		token.LParen,
		token.Number,
		token.RParen,
		token.LParen,
		token.Number,
		token.RParen,
	})
}

func TestLexer_PowerChain(t *testing.T) {
	expectTokens(t, "2^3^2", []token.Kind{
		token.Number,
		token.Caret,
		token.Number,
		token.Caret,
		token.Number,
	})
}

func TestLexer_PeekBehavior(t *testing.T) {
	lx, _ := makeTestLexer("1 2 3")

	peek1 := lx.Peek()
	if peek1.Kind != token.Number || peek1.Text != "1" {
		t.Errorf("First peek: expected Number '1', got %v '%s'", peek1.Kind, peek1.Text)
	}

	peek2 := lx.Peek()
	if peek2.Kind != peek1.Kind || peek2.Text != peek1.Text {
		t.Error("Second peek should return the same token")
	}

	next1 := lx.Next()
	if next1.Kind != peek1.Kind || next1.Text != peek1.Text {
		t.Error("Next should return the peeked token")
	}

	next2 := lx.Next()
	if next2.Text != "2" {
		t.Errorf("Expected '2', got '%s'", next2.Text)
	}
}

func TestLexer_EOF(t *testing.T) {
	lx, _ := makeTestLexer("7")

	tok1 := lx.Next()
	if tok1.Kind != token.Number {
		t.Fatalf("Expected Number, got %v", tok1.Kind)
	}

	tok2 := lx.Next()
	if tok2.Kind != token.EOF {
		t.Fatalf("Expected EOF, got %v", tok2.Kind)
	}

	// Повторные вызовы Next после EOF должны продолжать возвращать EOF
	tok3 := lx.Next()
	if tok3.Kind != token.EOF {
		t.Errorf("Expected EOF again, got %v", tok3.Kind)
	}
}

func TestLexer_EmptyInput(t *testing.T) {
	lx, _ := makeTestLexer("")
	tok := lx.Next()

	if tok.Kind != token.EOF {
		t.Errorf("Expected EOF for empty input, got %v", tok.Kind)
	}
}

// Бенчмарки

func BenchmarkLexer_Expression(b *testing.B) {
	input := "5+-+1.7^+12-+4*++--(+-+-+3)-+++-3/+-14.2"
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("bench.expr", []byte(input))
	file := fs.Get(fileID)

	b.ResetTimer()
	for b.Loop() {
		lx := lexer.New(file, lexer.Options{Reporter: diag.NopReporter{}})
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
		}
	}
}
