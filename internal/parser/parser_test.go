package parser_test

import (
	"testing"

	"rpncalc/internal/diag"
	"rpncalc/internal/lexer"
	"rpncalc/internal/parser"
	"rpncalc/internal/rpn"
	"rpncalc/internal/source"
)

func parseString(t *testing.T, input string) (rpn.Sequence, bool, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.expr", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(16)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	seq, ok := parser.Parse(lx, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return seq, ok, bag
}

// expectRPN проверяет каноническую постфиксную запись
func expectRPN(t *testing.T, input, want string) {
	t.Helper()
	seq, ok, bag := parseString(t, input)
	if !ok {
		t.Fatalf("parse %q failed: %d diagnostics", input, bag.Len())
	}
	if err := seq.Wellformed(); err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	if got := seq.String(); got != want {
		t.Errorf("parse %q = %q, want %q", input, got, want)
	}
}

func expectSyntaxError(t *testing.T, input string) {
	t.Helper()
	seq, ok, bag := parseString(t, input)
	if ok {
		t.Fatalf("parse %q unexpectedly succeeded: %q", input, seq.String())
	}
	if seq != nil {
		t.Errorf("parse %q: partial sequence escaped", input)
	}
	if !bag.HasErrors() {
		t.Fatalf("parse %q: no diagnostics", input)
	}
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError && d.Code.IsSyntax() {
			return
		}
	}
	t.Errorf("parse %q: expected a syntax-band error, got %v", input, bag.Items())
}

func TestParse_Literals(t *testing.T) {
	expectRPN(t, "7", "7")
	expectRPN(t, "3.14", "3.14")
	expectRPN(t, " 42 ", "42")
}

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3*4", "2 3 4 * +"},
		{"2*3+4", "2 3 * 4 +"},
		{"2-3/4", "2 3 4 / -"},
		{"1+2-3", "1 2 + 3 -"},
		{"8/4/2", "8 4 / 2 /"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectRPN(t, tt.input, tt.want)
		})
	}
}

func TestParse_PowerRightAssociative(t *testing.T) {
	// '^' рекурсирует в factor: 2^3^2 == 2^(3^2)
	expectRPN(t, "2^3^2", "2 3 2 ^ ^")
	expectRPN(t, "(2^3)^2", "2 3 ^ 2 ^")
}

func TestParse_PowerBindsTighterThanMul(t *testing.T) {
	expectRPN(t, "2*3^2", "2 3 2 ^ *")
	expectRPN(t, "3^2*2", "3 2 ^ 2 *")
}

func TestParse_ImpliedMultiplication(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2(3)", "2 3 *"},
		{"(2)3", "2 3 *"},
		{"3(4)(5)", "3 4 * 5 *"},
		{"(1+2)(3+4)", "1 2 + 3 4 + *"},
		{"2 3", "2 3 *"}, // соседние операнды без оператора
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectRPN(t, tt.input, tt.want)
		})
	}
}

func TestParse_UnaryMinusParity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-5", "5 neg"},
		{"--5", "5"},
		{"---5", "5 neg"},
		{"----5", "5"},
		{"-(1+2)", "1 2 + neg"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectRPN(t, tt.input, tt.want)
		})
	}
}

func TestParse_UnaryPlusAbsorbed(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+5", "5"},
		{"+-5", "5 neg"},
		{"-+5", "5 neg"},
		{"+-+-5", "5"},
		{"1-+2", "1 2 -"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectRPN(t, tt.input, tt.want)
		})
	}
}

func TestParse_BinaryThenUnary(t *testing.T) {
	// бинарный оператор, за которым идёт знаковая серия
	expectRPN(t, "5+-1.7", "5 1.7 neg +")
	expectRPN(t, "2^-3", "2 3 neg ^")
	expectRPN(t, "4*--2", "4 2 *")
}

func TestParse_RawLexemeKept(t *testing.T) {
	// невалидный литерал проходит парсер как есть — упадёт при вычислении
	seq, ok, _ := parseString(t, "1.2.3")
	if !ok {
		t.Fatal("parse must succeed for lexically valid dot runs")
	}
	if got := seq.String(); got != "1.2.3" {
		t.Errorf("got %q", got)
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []string{
		"",
		"(1+2",
		"1+2)",
		"1+",
		"*3",
		"1**2",
		"()",
		"2^",
		"((1)",
		"-",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSyntaxError(t, input)
		})
	}
}

func TestParse_UnclosedParenNote(t *testing.T) {
	_, ok, bag := parseString(t, "(1+2")
	if ok {
		t.Fatal("expected failure")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynUnclosedParen {
			found = true
			if len(d.Notes) != 1 || d.Notes[0].Span.Start != 0 {
				t.Errorf("expected 'opened here' note at offset 0, got %v", d.Notes)
			}
		}
	}
	if !found {
		t.Error("expected SynUnclosedParen diagnostic")
	}
}

func TestParse_LexicalErrorNotDuplicated(t *testing.T) {
	// "1+$2": лексер репортит LEX-ошибку, парсер молча останавливается
	_, ok, bag := parseString(t, "1+$2")
	if ok {
		t.Fatal("expected failure")
	}
	var lexical, syntactic int
	for _, d := range bag.Items() {
		if d.Code.IsLexical() {
			lexical++
		}
		if d.Code.IsSyntax() {
			syntactic++
		}
	}
	if lexical != 1 {
		t.Errorf("expected exactly one lexical error, got %d", lexical)
	}
	if syntactic != 0 {
		t.Errorf("expected no syntax duplicate, got %d", syntactic)
	}
}

func TestParse_TrailingInvalidNotDuplicated(t *testing.T) {
	// "1$": выражение уже распознано, хвостовой Invalid репортит только лексер
	_, ok, bag := parseString(t, "1$")
	if ok {
		t.Fatal("expected failure")
	}
	var lexical, syntactic int
	for _, d := range bag.Items() {
		if d.Code.IsLexical() {
			lexical++
		}
		if d.Code.IsSyntax() {
			syntactic++
		}
	}
	if lexical != 1 {
		t.Errorf("expected exactly one lexical error, got %d", lexical)
	}
	if syntactic != 0 {
		t.Errorf("expected no trailing-input duplicate, got %d", syntactic)
	}
}

func TestParse_EndToEnd(t *testing.T) {
	input := "5+-+1.7^+12-+4*++--(+-+-+3)-+++-3/+-14.2"
	seq, ok, bag := parseString(t, input)
	if !ok {
		t.Fatalf("parse failed: %d diagnostics", bag.Len())
	}
	if err := seq.Wellformed(); err != nil {
		t.Fatalf("sequence ill-formed: %v", err)
	}

	// формат детерминирован между прогонами
	first := seq.String()
	seq2, _, _ := parseString(t, input)
	if second := seq2.String(); second != first {
		t.Errorf("format not stable: %q vs %q", first, second)
	}
}

func BenchmarkParse(b *testing.B) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("bench.expr", []byte("5+-+1.7^+12-+4*++--(+-+-+3)-+++-3/+-14.2"))
	file := fs.Get(fileID)

	b.ResetTimer()
	for b.Loop() {
		lx := lexer.New(file, lexer.Options{Reporter: diag.NopReporter{}})
		if _, ok := parser.Parse(lx, parser.Options{Reporter: diag.NopReporter{}}); !ok {
			b.Fatal("parse failed")
		}
	}
}
