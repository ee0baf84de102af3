package lexer

import (
	"storyscript/internal/diag"
	"storyscript/internal/dialect"
	"storyscript/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки видны только в Invalid токенах
	// DialectEvidence, если задан, собирает признаки чужих диалектов (см. dialect).
	DialectEvidence *dialect.Evidence
}

// errLex сообщает о лексической ошибке. Во время Peek молчим:
// тот же токен будет отсканирован повторно следующим Next.
func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.peeking || lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
