package parser

import (
	"slices"

	"storyscript/internal/diag"
	"storyscript/internal/source"
	"storyscript/internal/token"
)

// advance — сдвигает current в previous и тянет следующий токен.
func (p *Parser) advance() token.Token {
	p.previous = p.current
	p.current = p.lx.Next()
	if p.current.Kind != token.EOF {
		p.tokens++
	}
	return p.previous
}

func (p *Parser) check(k token.Kind) bool {
	return p.current.Kind == k
}

// match съедает current, если он одного из видов kinds.
func (p *Parser) match(kinds ...token.Kind) bool {
	if slices.Contains(kinds, p.current.Kind) {
		p.advance()
		return true
	}
	return false
}

// consume — ожидаем конкретный токен. Если нет — записываем ошибку и возвращаем
// текущий токен, не съедая его, чтобы разбор продолжился с best-effort узлом.
func (p *Parser) consume(k token.Kind, msg string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	var fixes []diag.Fix
	if k == token.Semicolon && p.previous.Kind != token.Invalid && !p.previous.Span.Empty() {
		fixes = append(fixes, diag.Fix{
			Title: "insert ';'",
			Edits: []diag.FixEdit{{Span: p.previous.Span.AtEnd(), NewText: ";"}},
		})
	}
	p.errorAt(p.current, diag.SynUnexpectedToken, msg, fixes...)
	return p.current
}

// spanFrom покрывает start и последний съеденный токен.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.previous.Span)
}

func (p *Parser) location(tok token.Token) source.Location {
	return source.Location{File: p.lx.File().Path, Line: tok.Pos.Line, Col: tok.Pos.Col}
}

// errorAt — единая точка записи ошибок: ставит флаг, сохраняет ParseError
// и, пока не исчерпан лимит, пересылает диагностику в Reporter.
func (p *Parser) errorAt(tok token.Token, code diag.Code, msg string, fixes ...diag.Fix) {
	p.hadError = true
	p.errors = append(p.errors, ParseError{
		Location: p.location(tok),
		Span:     tok.Span,
		Message:  msg,
	})
	if p.opts.Reporter == nil || p.opts.Enough() {
		return
	}
	p.opts.CurrentErrors++
	b := diag.ReportError(p.opts.Reporter, code, tok.Span, msg)
	for _, fix := range fixes {
		b.WithFix(fix.Title, fix.Edits...)
	}
	b.Emit()
}

// info пересылает информационную диагностику; флаг ошибки не трогает.
func (p *Parser) info(code diag.Code, sp source.Span, msg string, note source.Span, noteMsg string) {
	if p.opts.Reporter == nil {
		return
	}
	diag.ReportInfo(p.opts.Reporter, code, sp, msg).WithNote(note, noteMsg).Emit()
}
