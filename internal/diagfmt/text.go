package diagfmt

import (
	"fmt"
	"io"

	"storyscript/internal/diag"
	"storyscript/internal/source"
)

// Short печатает по одной строке на диагностику:
// <file>:<line>:<col>: Error: <message>
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) error {
	if bag == nil || fs == nil {
		return nil
	}
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
			displayPath(fs, d.Primary.File, mode), start.Line, start.Col,
			d.Severity.Title(), d.Message); err != nil {
			return err
		}
	}
	return nil
}

// Legacy печатает старый однострочный формат без пути:
// Error at <line>:<col> - <message>
func Legacy(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || fs == nil {
		return nil
	}
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		if _, err := fmt.Fprintf(w, "%s at %d:%d - %s\n",
			d.Severity.Title(), start.Line, start.Col, d.Message); err != nil {
			return err
		}
	}
	return nil
}
