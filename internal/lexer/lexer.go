package lexer

import (
	"rpncalc/internal/source"
	"rpncalc/internal/token"
)

// Lexer scans an expression buffer into tokens on demand.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
	}
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look — вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// 2) Пропустить пробельные символы (они ничего не эмитят)
	lx.skipSpace()

	// 3) Если EOF → вернуть EOF
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
	}

	// 4) Посмотреть текущий байт и выбрать сканер
	ch := lx.cursor.Peek()
	switch {
	case isDec(ch) || ch == '.':
		// цифра или точка → scanNumber(); валидация отложена до вычисления
		return lx.scanNumber()
	default:
		return lx.scanOperatorOrParen()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-length span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// skipSpace съедает пробелы, табы, CR и LF. Никакие trivia не сохраняются:
// выражения однострочны по смыслу и комментариев в алфавите нет.
func (lx *Lexer) skipSpace() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r', '\n':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
