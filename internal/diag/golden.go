package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"storyscript/internal/source"
)

// goldenLine — одна строка snapshot-вывода:
//
//	error SYN2001 rooms/hall.story:3:5 Expected ';' after message.
type goldenLine struct {
	label   string // error|warning|info|note
	code    string
	loc     source.Location
	message string
}

func (l goldenLine) String() string {
	return fmt.Sprintf("%s %s %s %s", l.label, l.code, l.loc, l.message)
}

func compareGolden(a, b goldenLine) int {
	return cmp.Or(
		cmp.Compare(a.loc.File, b.loc.File),
		cmp.Compare(a.loc.Line, b.loc.Line),
		cmp.Compare(a.loc.Col, b.loc.Col),
		cmp.Compare(a.label, b.label),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.message, b.message),
	)
}

// FormatGoldenDiagnostics печатает диагностики по одной на строку в
// стабильном порядке, удобном для snapshot-тестов и `check --diag-format golden`.
// Пути относительны BaseDir, переводы строк в сообщениях схлопнуты.
// Диагностики и заметки с неизвестным файлом пропускаются.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	lines := make([]goldenLine, 0, len(diags))
	add := func(label string, code Code, sp source.Span, msg string) {
		if loc, ok := goldenLocation(fs, sp); ok {
			lines = append(lines, goldenLine{label: label, code: code.ID(), loc: loc, message: oneLine(msg)})
		}
	}
	for _, d := range diags {
		add(strings.ToLower(d.Severity.Title()), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code, n.Span, n.Msg)
		}
	}
	slices.SortStableFunc(lines, compareGolden)

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func goldenLocation(fs *source.FileSet, sp source.Span) (source.Location, bool) {
	f := fs.Get(sp.File)
	if f == nil {
		return source.Location{}, false
	}
	loc := fs.Location(sp)
	path := filepath.ToSlash(f.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	loc.File = path
	return loc, true
}

// oneLine схлопывает любые пробельные последовательности, включая \r и \n, в один пробел.
func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
