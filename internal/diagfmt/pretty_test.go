package diagfmt_test

import (
	"encoding/json"
	"strings"
	"testing"

	"rpncalc/internal/diag"
	"rpncalc/internal/diagfmt"
	"rpncalc/internal/lexer"
	"rpncalc/internal/parser"
	"rpncalc/internal/source"
	"rpncalc/internal/token"
)

func diagnoseString(t *testing.T, input string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.expr", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(16)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	parser.Parse(lx, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()
	return bag, fs
}

func TestPretty_Heading(t *testing.T) {
	bag, fs := diagnoseString(t, "1+$2")

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{})
	got := sb.String()

	if !strings.HasPrefix(got, "test.expr:1:3: ERROR [LEX1001]:") {
		t.Errorf("unexpected heading:\n%s", got)
	}
}

func TestPretty_Context(t *testing.T) {
	bag, fs := diagnoseString(t, "1+$2")

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{Context: true})
	got := sb.String()

	if !strings.Contains(got, "  1+$2\n") {
		t.Errorf("missing source line:\n%s", got)
	}
	// каретка под третьей колонкой
	if !strings.Contains(got, "\n    ^\n") {
		t.Errorf("missing caret underline:\n%s", got)
	}
}

func TestPretty_UnderlineWidth(t *testing.T) {
	// спан "(": нота в заголовке, подчёркивание по одному символу
	bag, fs := diagnoseString(t, "(1+2")

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{Context: true, ShowNotes: true})
	got := sb.String()

	if !strings.Contains(got, "[SYN2002]") {
		t.Errorf("expected unclosed paren code:\n%s", got)
	}
	if !strings.Contains(got, "opened here") {
		t.Errorf("expected note rendered:\n%s", got)
	}
}

func TestPretty_NotesHidden(t *testing.T) {
	bag, fs := diagnoseString(t, "(1+2")

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{ShowNotes: false})
	if strings.Contains(sb.String(), "opened here") {
		t.Error("note must be hidden without ShowNotes")
	}
}

func TestJSON_Roundtrip(t *testing.T) {
	bag, fs := diagnoseString(t, "1+")

	var sb strings.Builder
	err := diagfmt.JSON(&sb, bag, fs, diagfmt.JSONOpts{IncludePositions: true})
	if err != nil {
		t.Fatal(err)
	}

	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN2001" {
		t.Errorf("code = %q", d.Code)
	}
	if d.Location.File != "test.expr" || d.Location.StartLine != 1 {
		t.Errorf("location = %+v", d.Location)
	}
}

func TestJSON_MaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.expr", []byte("$$$"))
	file := fs.Get(fileID)

	bag := diag.NewBag(16)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	for lx.Next().Kind != token.EOF {
	}
	bag.Sort()
	if bag.Len() != 3 {
		t.Fatalf("expected 3 lexical errors, got %d", bag.Len())
	}

	var sb strings.Builder
	if err := diagfmt.JSON(&sb, bag, fs, diagfmt.JSONOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 {
		t.Errorf("expected truncation to 1, got %d", out.Count)
	}
}
