package diagfmt

import (
	"bytes"
	"testing"

	"storyscript/internal/diag"
	"storyscript/internal/source"
)

func textFixture() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("rooms/hall.story", []byte("var ;\n1 = 2;\nsay a.b;"))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SynUnexpectedToken,
		source.Span{File: fileID, Start: 4, End: 5}, "Expected variable name."))
	bag.Add(diag.New(diag.SevError, diag.SynInvalidAssignTarget,
		source.Span{File: fileID, Start: 8, End: 9}, "Invalid assignment target."))
	bag.Add(diag.New(diag.SevInfo, diag.SynPropertyBaseDropped,
		source.Span{File: fileID, Start: 19, End: 20}, "property access '.b' is read as a plain reference to 'b'"))
	return bag, fs
}

func TestShort(t *testing.T) {
	bag, fs := textFixture()
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, PathModeAuto); err != nil {
		t.Fatalf("Short: %v", err)
	}
	want := "rooms/hall.story:1:5: Error: Expected variable name.\n" +
		"rooms/hall.story:2:3: Error: Invalid assignment target.\n" +
		"rooms/hall.story:3:7: Info: property access '.b' is read as a plain reference to 'b'\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLegacy(t *testing.T) {
	bag, fs := textFixture()
	var buf bytes.Buffer
	if err := Legacy(&buf, bag, fs); err != nil {
		t.Fatalf("Legacy: %v", err)
	}
	want := "Error at 1:5 - Expected variable name.\n" +
		"Error at 2:3 - Invalid assignment target.\n" +
		"Info at 3:7 - property access '.b' is read as a plain reference to 'b'\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTextNilInputs(t *testing.T) {
	var buf bytes.Buffer
	if err := Short(&buf, nil, nil, PathModeAuto); err != nil || buf.Len() != 0 {
		t.Fatalf("nil bag must print nothing")
	}
	if err := Legacy(&buf, nil, nil); err != nil || buf.Len() != 0 {
		t.Fatalf("nil bag must print nothing")
	}
}
