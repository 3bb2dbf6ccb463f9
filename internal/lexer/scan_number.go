package lexer

import (
	"rpncalc/internal/token"
)

// scanNumber захватывает максимальную последовательность цифр и точек без
// валидации. "1.2.3", ".", "12." лексически допустимы; настоящую грамматику
// float проверяет только вычислитель.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	for {
		b := lx.cursor.Peek()
		if isDec(b) || b == '.' {
			lx.cursor.Bump()
			continue
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: sp.Text(lx.file)}
}
