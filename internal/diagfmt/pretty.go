package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rpncalc/internal/diag"
	"rpncalc/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	noteColor = color.New(color.FgBlue)
	spanColor = color.New(color.FgGreen)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> [<CODE>]: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d.Severity, d.Code, d.Primary, d.Message, opts)
		if opts.Context {
			writeContext(w, fs, d.Primary, opts)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				writeNote(w, fs, n, opts)
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, sev diag.Severity, code diag.Code, sp source.Span, msg string, opts PrettyOpts) {
	sevText := sev.String()
	codeText := "[" + code.ID() + "]"
	if opts.Color {
		c := severityColor(sev)
		sevText = c.Sprint(sevText)
		codeText = c.Sprint(codeText)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", position(fs, sp, opts), sevText, codeText, msg)
}

func writeNote(w io.Writer, fs *source.FileSet, n diag.Note, opts PrettyOpts) {
	label := "note"
	if opts.Color {
		label = noteColor.Sprint(label)
	}
	fmt.Fprintf(w, "  %s: %s: %s\n", position(fs, n.Span, opts), label, n.Msg)
	if opts.Context {
		writeContext(w, fs, n.Span, opts)
	}
}

// writeContext печатает исходную строку и подчёркивание ^~~~ под спаном.
func writeContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && sp.Len() > 0 {
		return
	}

	// Ширины считаем по экранным колонкам, не байтам: табы и широкие
	// руны иначе сдвигают каретку.
	prefix := sliceCols(line, 0, start.Col-1)
	marked := prefix
	endCol := end.Col
	if end.Line != start.Line {
		endCol = 0 // спан уходит за строку, подчёркиваем до конца
	}
	if endCol > start.Col {
		marked = sliceCols(line, 0, endCol-1)
	} else if endCol == start.Col {
		marked = prefix
	} else {
		marked = line
	}

	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	width := runewidth.StringWidth(marked) - runewidth.StringWidth(prefix)
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		underline = spanColor.Sprint(underline)
	}

	fmt.Fprintf(w, "  %s\n", line)
	fmt.Fprintf(w, "  %s%s\n", pad, underline)
}

// sliceCols обрезает строку по байтовым колонкам [from, to); Col в LineCol
// байтовая, поэтому и здесь байты
func sliceCols(s string, from, to uint32) string {
	lenS := uint32(len(s))
	if from > lenS {
		from = lenS
	}
	if to > lenS {
		to = lenS
	}
	if from >= to {
		return ""
	}
	return s[from:to]
}

func position(fs *source.FileSet, sp source.Span, opts PrettyOpts) string {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	path := f.Path
	if opts.PathMode == PathModeBasename {
		path = filepath.Base(path)
	}
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}
