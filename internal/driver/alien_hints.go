package driver

import (
	"storyscript/internal/diag"
	"storyscript/internal/dialect"
)

var alienHintCodes = map[dialect.Kind]diag.Code{
	dialect.Legacy:     diag.AlnLegacyDialect,
	dialect.Ink:        diag.AlnInkDialect,
	dialect.Python:     diag.AlnPythonDialect,
	dialect.JavaScript: diag.AlnJSDialect,
}

// emitAlienHints добавляет одну info-подсказку, если файл с ошибками
// уверенно похож на чужой диалект. Файл без ошибок подсказок не получает.
func emitAlienHints(rep diag.Reporter, bag *diag.Bag, e *dialect.Evidence) {
	if rep == nil || bag == nil || !bag.HasErrors() {
		return
	}
	c := (dialect.Classifier{}).Classify(e)
	if !dialect.Eligible(c) {
		return
	}
	code, ok := alienHintCodes[c.Kind]
	if !ok {
		return
	}
	hint, ok := e.First(c.Kind)
	if !ok {
		return
	}
	msg := dialect.RenderAlienHint(c.Kind, dialect.RenderInput{
		Detected:     hint.Reason,
		StoryExample: dialect.Example(c.Kind),
	})
	diag.ReportInfo(rep, code, hint.Span, msg).Emit()
}
