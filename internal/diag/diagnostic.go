package diag

import (
	"storyscript/internal/source"
)

// Note — дополнительная подсказка к диагностике со своим спаном
// ("statement starts here").
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit заменяет Span на NewText. Пустой спан с текстом — вставка.
type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic — одно сообщение лексера, парсера или драйвера.
// Message для синтаксических ошибок совпадает с текстом ParseError.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote и WithFix возвращают копию: исходное значение не меняется,
// но срезы Notes/Fixes могут делить backing array до первого append.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes[:len(d.Fixes):len(d.Fixes)], Fix{Title: title, Edits: edits})
	return d
}

func (d Diagnostic) IsError() bool { return d.Severity >= SevError }

// HasFixes — есть хотя бы одно исправление с правками; пустые Fix
// (только заголовок) не считаются.
func (d Diagnostic) HasFixes() bool {
	for _, f := range d.Fixes {
		if len(f.Edits) > 0 {
			return true
		}
	}
	return false
}
