package parser

import (
	"fmt"

	"storyscript/internal/token"
	"storyscript/internal/trace"
)

// synchronize — panic-mode восстановление: съедаем токен ошибки, затем
// пропускаем до конца оператора (';' только что съеден), до ключевого слова,
// с которого начинается объявление или оператор, или до EOF.
func (p *Parser) synchronize() {
	from := p.current
	p.advance()
	skipped := 1
	for !p.check(token.EOF) {
		if p.previous.Kind == token.Semicolon {
			break
		}
		if p.current.IsDeclStart() {
			break
		}
		p.advance()
		skipped++
	}
	trace.Point(p.tracer, trace.ScopeNode, "synchronize",
		fmt.Sprintf("%d:%d skipped %d token(s), resume at %s", from.Pos.Line, from.Pos.Col, skipped, p.current.Kind.Describe()),
		p.spanID)
}
