package parser

import (
	"rpncalc/internal/diag"
	"rpncalc/internal/rpn"
	"rpncalc/internal/token"
)

// Грамматика (постфиксный фрагмент каждого нетерминала уходит в p.out):
//
//	expression := term (('+' | '-') term)*
//	term       := factor ( (('*' | '/') factor)* | (factor)* )
//	factor     := negation ('^' factor)?
//	negation   := ('-' | '+')* number
//	number     := '(' expression ')' | NUMBER
//
// Приоритет обеспечивается вложенностью вызовов, правоассоциативность '^' —
// рекурсией factor в самого себя.

func (p *Parser) parseExpression() bool {
	if !p.parseTerm() {
		return false
	}
	for {
		switch p.lx.Peek().Kind {
		case token.Plus:
			op := p.advance()
			if !p.parseTerm() {
				return false
			}
			p.emit(rpn.Token{Kind: rpn.Add, Span: op.Span})
		case token.Minus:
			op := p.advance()
			if !p.parseTerm() {
				return false
			}
			p.emit(rpn.Token{Kind: rpn.Sub, Span: op.Span})
		default:
			return true
		}
	}
}

func (p *Parser) parseTerm() bool {
	if !p.parseFactor() {
		return false
	}
	for {
		next := p.lx.Peek()
		switch {
		case next.Kind == token.Star:
			op := p.advance()
			if !p.parseFactor() {
				return false
			}
			p.emit(rpn.Token{Kind: rpn.Mul, Span: op.Span})
		case next.Kind == token.Slash:
			op := p.advance()
			if !p.parseFactor() {
				return false
			}
			p.emit(rpn.Token{Kind: rpn.Div, Span: op.Span})
		case next.StartsOperand():
			// Неявное умножение: "3(4)(5)" ≡ "3*4*5". Однотокенный lookahead,
			// применяется только на этом уровне грамматики.
			if !p.parseFactor() {
				return false
			}
			p.emit(rpn.Token{Kind: rpn.Mul, Span: next.Span})
		default:
			return true
		}
	}
}

func (p *Parser) parseFactor() bool {
	if !p.parseNegation() {
		return false
	}
	if p.at(token.Caret) {
		op := p.advance()
		// рекурсия в factor, не в negation: "2^3^2" == "2^(3^2)"
		if !p.parseFactor() {
			return false
		}
		p.emit(rpn.Token{Kind: rpn.Pow, Span: op.Span})
	}
	return true
}

// parseNegation съедает префиксную серию знаков и сворачивает её по чётности
// минусов: чётное количество взаимно уничтожается, нечётное даёт ровно один
// Neg после операнда. Унарный '+' поглощается как no-op.
func (p *Parser) parseNegation() bool {
	minuses := 0
	signSpan := p.lx.Peek().Span

	for {
		switch p.lx.Peek().Kind {
		case token.Minus:
			tok := p.advance()
			minuses++
			signSpan = signSpan.Cover(tok.Span)
			continue
		case token.Plus:
			tok := p.advance()
			signSpan = signSpan.Cover(tok.Span)
			continue
		}
		break
	}

	if !p.parseNumber() {
		return false
	}

	if minuses%2 == 1 {
		p.emit(rpn.Token{Kind: rpn.Neg, Span: signSpan})
	}
	return true
}

func (p *Parser) parseNumber() bool {
	switch p.lx.Peek().Kind {
	case token.LParen:
		open := p.advance()
		if !p.parseExpression() {
			return false
		}
		if !p.at(token.RParen) {
			tok := p.lx.Peek()
			p.errWithNote(diag.SynUnclosedParen, tok.Span,
				"expected ')', got "+describe(tok),
				open.Span, "opened here")
			return false
		}
		p.advance()
		return true

	case token.Number:
		tok := p.advance()
		// Лексема уходит в лист как есть; float-грамматику проверит вычислитель.
		p.emit(rpn.Token{Kind: rpn.Number, Span: tok.Span, Text: tok.Text})
		return true

	case token.Invalid:
		// лексер уже зарепортил ошибку на этом месте; не дублируем
		return false

	default:
		tok := p.lx.Peek()
		p.err(diag.SynExpectOperand, tok.Span, "expected a number or '(', got "+describe(tok))
		return false
	}
}
