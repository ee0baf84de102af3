package fix

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"storyscript/internal/diag"
	"storyscript/internal/driver"
	"storyscript/internal/source"
)

const missingSemicolons = "var x = 1\nsay 2\n"

func parseTemp(t *testing.T, content string) (string, *driver.ParseResult) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fix.story")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := driver.Parse(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return path, res
}

func TestApplyAllInsertsSemicolons(t *testing.T) {
	path, res := parseTemp(t, missingSemicolons)
	out, err := Apply(res.FileSet, res.Bag.Items(), ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out.Applied) != 2 || len(out.FileChanges) != 1 {
		t.Fatalf("applied=%d changes=%d", len(out.Applied), len(out.FileChanges))
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "var x = 1;\nsay 2;\n"; string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// после исправления файл разбирается без ошибок
	again, err := driver.Parse(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if again.Failed {
		t.Fatalf("fixed file must parse cleanly: %+v", again.Bag.Items())
	}
}

func TestApplyOnceAndDryRun(t *testing.T) {
	path, res := parseTemp(t, missingSemicolons)
	out, err := Apply(res.FileSet, res.Bag.Items(), ApplyOptions{Mode: ApplyModeOnce, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out.Applied) != 1 || out.Applied[0].Title != "insert ';'" {
		t.Fatalf("unexpected applied: %+v", out.Applied)
	}
	if string(out.FileChanges[0].Content) != "var x = 1;\nsay 2\n" {
		t.Fatalf("unexpected preview: %q", out.FileChanges[0].Content)
	}
	got, _ := os.ReadFile(path)
	if string(got) != missingSemicolons {
		t.Fatal("dry run must not touch the file")
	}
}

func TestApplyByID(t *testing.T) {
	_, res := parseTemp(t, missingSemicolons)
	items := res.Bag.Items()
	id := FixID(items[1], 0)

	out, err := Apply(res.FileSet, items, ApplyOptions{Mode: ApplyModeID, TargetID: id, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if string(out.FileChanges[0].Content) != "var x = 1\nsay 2;\n" {
		t.Fatalf("unexpected content: %q", out.FileChanges[0].Content)
	}

	_, err = Apply(res.FileSet, items, ApplyOptions{Mode: ApplyModeID, TargetID: "nope"})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
}

func TestApplyNoFixes(t *testing.T) {
	_, res := parseTemp(t, "say 1;\n")
	if _, err := Apply(res.FileSet, res.Bag.Items(), ApplyOptions{Mode: ApplyModeAll}); !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
}

func TestApplySkipsVirtualAndDuplicates(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("mem.story", []byte("say 1"))
	span := source.Span{File: fileID, Start: 5, End: 5}
	d := diag.NewError(diag.SynUnexpectedToken, span, "Expected ';' after message.").
		WithFix("insert ';'", diag.FixEdit{Span: span, NewText: ";"}).
		WithFix("no-op")

	out, err := Apply(fs, []diag.Diagnostic{d, d}, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	reasons := map[string]int{}
	for _, s := range out.Skipped {
		reasons[s.Reason]++
	}
	if reasons["target file is virtual"] != 1 || reasons["duplicate fix id"] != 1 || reasons["fix has no edits"] != 2 {
		t.Fatalf("unexpected skip reasons: %v", reasons)
	}
}

func TestSpansConflict(t *testing.T) {
	edit := func(start, end uint32) diag.FixEdit {
		return diag.FixEdit{Span: source.Span{Start: start, End: end}}
	}
	tests := []struct {
		a, b diag.FixEdit
		want bool
	}{
		{edit(3, 3), edit(3, 3), false},
		{edit(3, 3), edit(2, 5), true},
		{edit(5, 5), edit(2, 5), false},
		{edit(0, 4), edit(3, 6), true},
		{edit(0, 3), edit(3, 6), false},
	}
	for i, tt := range tests {
		if got := spansConflict(tt.a, tt.b); got != tt.want {
			t.Fatalf("case %d: got %v, want %v", i, got, tt.want)
		}
	}
}

func TestRenderKeepsInsertionOrder(t *testing.T) {
	at := func(start, end uint32, text string) diag.FixEdit {
		return diag.FixEdit{Span: source.Span{Start: start, End: end}, NewText: text}
	}
	got := render([]byte("say 1\nsay 2"), []diag.FixEdit{
		at(11, 11, ";"),
		at(5, 5, ";"),
		at(5, 5, " // fixed"),
		at(0, 3, "SAY"),
	})
	if want := "SAY 1; // fixed\nsay 2;"; string(got) != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
}
