package parser

import (
	"rpncalc/internal/diag"
	"rpncalc/internal/lexer"
	"rpncalc/internal/rpn"
	"rpncalc/internal/source"
	"rpncalc/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

// Parser — состояние разбора одного выражения.
// Грамматика однопроходная: каждый нетерминал дописывает свой постфиксный
// фрагмент в out (сначала операнды, затем оператор), поэтому дерево не
// строится вообще.
type Parser struct {
	lx   *lexer.Lexer
	opts Options
	out  rpn.Sequence
}

// Parse — входная точка для разбора одного выражения.
// Требует уже созданный lexer (на основе source.File).
// Первая же ошибка фатальна: частичная последовательность наружу не выходит.
func Parse(lx *lexer.Lexer, opts Options) (rpn.Sequence, bool) {
	p := Parser{
		lx:   lx,
		opts: opts,
		out:  make(rpn.Sequence, 0, 16),
	}

	if !p.parseExpression() {
		return nil, false
	}

	// После полного выражения допустим только EOF: "1+2)" — ошибка здесь.
	if !p.at(token.EOF) {
		tok := p.lx.Peek()
		// Invalid лексер уже зарепортил; не дублируем SYN поверх LEX
		if tok.Kind != token.Invalid {
			p.err(diag.SynTrailingInput, tok.Span, "unexpected "+describe(tok)+" after expression")
		}
		return nil, false
	}

	return p.out, true
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	return p.lx.Next()
}

func (p *Parser) emit(tok rpn.Token) {
	p.out = append(p.out, tok)
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (p *Parser) errWithNote(code diag.Code, sp source.Span, msg string, noteSp source.Span, note string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, []diag.Note{{Span: noteSp, Msg: note}})
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Number:
		return "number \"" + tok.Text + "\""
	default:
		return "\"" + tok.Text + "\""
	}
}
