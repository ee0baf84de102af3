package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"storyscript/internal/diag"
	"storyscript/internal/source"
)

type palette struct {
	err, warn, info, note, fix, gutter, caret, path *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue),
		fix:    mk(color.FgGreen),
		gutter: mk(color.FgHiBlack),
		caret:  mk(color.FgRed, color.Bold),
		path:   mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w) //nolint:errcheck
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	start, _ := fs.Resolve(d.Primary)
	path := displayPath(fs, d.Primary.File, opts.PathMode)

	fmt.Fprintf(w, "%s %s: %s\n", //nolint:errcheck
		pal.path.Sprintf("%s:%d:%d:", path, start.Line, start.Col),
		pal.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()),
		d.Message)

	writeSnippet(w, fs, d.Primary, opts.Context, pal)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			ns, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", //nolint:errcheck
				pal.note.Sprint("note:"), displayPath(fs, note.Span.File, opts.PathMode), ns.Line, ns.Col, note.Msg)
		}
	}

	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprint("fix:"), fix.Title) //nolint:errcheck
			if !opts.ShowPreview {
				continue
			}
			for _, edit := range fix.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, line := range preview.before {
					fmt.Fprintf(w, "    %s %s\n", pal.err.Sprint("-"), line) //nolint:errcheck
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "    %s %s\n", pal.fix.Sprint("+"), line) //nolint:errcheck
				}
			}
		}
	}
}

// writeSnippet печатает строки вокруг span и подчёркивает его на первой строке.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int8, pal palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}

	ctx := uint32(max(context, 0))
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx
	width := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		if ln > f.LineCount() {
			break
		}
		text := strings.TrimRight(f.GetLine(ln), "\r")
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", width, ln), expandTabs(text)) //nolint:errcheck
		if ln != start.Line {
			continue
		}
		lead, mark := caretGeometry(text, start, end)
		fmt.Fprintf(w, "%s %s%s\n", //nolint:errcheck
			pal.gutter.Sprintf("%*s |", width, ""),
			strings.Repeat(" ", lead),
			pal.caret.Sprint("^"+strings.Repeat("~", mark-1)))
	}
}

// caretGeometry возвращает отступ и длину подчёркивания в колонках терминала.
// Колонки span считаются в байтах, поэтому ширину считаем по реальным рунам.
func caretGeometry(line string, start, end source.LineCol) (lead, mark int) {
	if start.Col == 0 {
		return 0, 1
	}
	from := min(int(start.Col-1), len(line))
	to := len(line)
	if end.Line == start.Line && end.Col > start.Col {
		to = min(int(end.Col-1), len(line))
	}
	lead = runewidth.StringWidth(expandTabs(line[:from]))
	mark = max(runewidth.StringWidth(expandTabs(line[from:to])), 1)
	return lead, mark
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
