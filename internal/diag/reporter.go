package diag

import "storyscript/internal/source"

// Reporter — всё, что фазе нужно знать о приёмнике диагностик.
// Лексер и парсер получают Reporter, а не *Bag: так драйвер может
// подставить дедупликацию или fan-out, не трогая фазы.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)
}

// ReporterFunc позволяет передать замыкание как Reporter (удобно в тестах).
type ReporterFunc func(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)

func (f ReporterFunc) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if f != nil {
		f(code, sev, primary, msg, notes, fixes)
	}
}

// ReportBuilder собирает диагностику по частям и отправляет её один раз.
//
//	diag.ReportError(rep, diag.SynUnexpectedToken, sp, "Expected ';' after message.").
//		WithNote(stmtSpan, "statement starts here").
//		Emit()
//
// Все методы безопасны на nil-билдере.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, primary, msg)}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, primary, msg)
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(sp, msg)
	}
	return b
}

func (b *ReportBuilder) WithFix(title string, edits ...FixEdit) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithFix(title, edits...)
	}
	return b
}

// Emit отправляет диагностику. Повторный вызов ничего не делает.
func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	if b.to == nil {
		return
	}
	d := b.d
	b.to.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
}

// Diagnostic — накопленное значение без отправки.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.d
}

// BagReporter складывает диагностики в Bag; при переполнении Bag
// лишние молча теряются (см. Bag.Add).
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r.Bag == nil {
		return
	}
	d := New(sev, code, primary, msg)
	d.Notes, d.Fixes = notes, fixes
	r.Bag.Add(d)
}

// MultiReporter раздаёт диагностику всем не-nil получателям по порядку.
type MultiReporter []Reporter

func (m MultiReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	for _, r := range m {
		if r == nil {
			continue
		}
		r.Report(code, sev, primary, msg, notes, fixes)
	}
}
