package lexer

import (
	"rpncalc/internal/diag"
	"rpncalc/internal/token"
)

// Все операторы односимвольные; жадных матчеров не требуется.
func (lx *Lexer) scanOperatorOrParen() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: sp.Text(lx.file),
		}
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '^':
		return emit(token.Caret)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	default:
		// символ вне алфавита
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteByte(ch))
		return token.Token{Kind: token.Invalid, Span: sp, Text: sp.Text(lx.file)}
	}
}

func quoteByte(b byte) string {
	return "'" + string(rune(b)) + "'"
}
