package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"storyscript/internal/diag"
	"storyscript/internal/token"
	"storyscript/internal/trace"
)

const validStory = `room hall {
    name: "Hall";
    when entered {
        say "Welcome";
    }
}
`

func writeStory(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestTokenize_File(t *testing.T) {
	path := writeStory(t, t.TempDir(), "a.story", "say 1;")

	res, err := Tokenize(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []token.Kind{token.KwSay, token.NumberLit, token.Semicolon, token.EOF}
	if len(res.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(res.Tokens), len(want))
	}
	for i, k := range want {
		if res.Tokens[i].Kind != k {
			t.Fatalf("token %d: got %s, want %s", i, res.Tokens[i].Kind, k)
		}
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", res.Bag.Len())
	}
}

func TestTokenize_MissingFile(t *testing.T) {
	if _, err := Tokenize(context.Background(), filepath.Join(t.TempDir(), "nope.story"), 0); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParse_ValidFile(t *testing.T) {
	path := writeStory(t, t.TempDir(), "hall.story", validStory)

	res, err := Parse(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Failed {
		t.Fatalf("unexpected failure: %+v", res.Bag.Items())
	}
	prog := res.Builder.Programs.Get(res.Program)
	if prog == nil || len(prog.Rooms) != 1 {
		t.Fatalf("expected one room, got %+v", prog)
	}
}

func TestParseSource_Errors(t *testing.T) {
	res := ParseSource(context.Background(), "mem.story", []byte("var x = ;"), 0)
	if !res.Failed {
		t.Fatal("expected failure")
	}
	if len(res.Errors) != 1 || res.Errors[0].Message != "Expected expression." {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SynExpectExpression {
		t.Fatalf("unexpected bag: %+v", items)
	}
}

func TestParseSource_LexerErrorFails(t *testing.T) {
	res := ParseSource(context.Background(), "mem.story", []byte("say \"oops"), 0)
	if !res.Failed {
		t.Fatal("expected failure")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.LexUnterminatedString {
			found = true
		}
	}
	if !found {
		t.Fatal("expected LEX1002 in bag")
	}
}

func TestListSourceFiles_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeStory(t, dir, "b.story", "")
	writeStory(t, dir, "a.story", "")
	writeStory(t, dir, "notes.txt", "")
	writeStory(t, dir, "sub/c.story", "")
	writeStory(t, dir, ".hidden/d.story", "")

	files, err := ListSourceFiles(dir)
	if err != nil {
		t.Fatalf("ListSourceFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.story"),
		filepath.Join(dir, "b.story"),
		filepath.Join(dir, "sub", "c.story"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("file %d: got %s, want %s", i, files[i], want[i])
		}
	}
}

func TestTokenizeDir_Order(t *testing.T) {
	dir := t.TempDir()
	writeStory(t, dir, "z.story", "say 1;")
	writeStory(t, dir, "a.story", "say \"x\";")
	writeStory(t, dir, "m.story", "@")

	_, results, err := TokenizeDir(context.Background(), dir, 0, 2)
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	names := []string{"a.story", "m.story", "z.story"}
	for i, n := range names {
		if filepath.Base(results[i].Path) != n {
			t.Fatalf("result %d: got %s, want %s", i, results[i].Path, n)
		}
	}
	if results[1].Bag.Len() == 0 {
		t.Fatal("expected lexer diagnostic for '@'")
	}
}

func TestParseDir_ResultsAndProgress(t *testing.T) {
	dir := t.TempDir()
	writeStory(t, dir, "good.story", validStory)
	writeStory(t, dir, "bad.story", "var x = ;")

	var (
		mu     sync.Mutex
		events []FileEvent
	)
	fs, results, err := ParseDir(context.Background(), dir, DirOptions{
		Jobs: 4,
		OnFile: func(ev FileEvent) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if fs.Len() != 2 || len(results) != 2 {
		t.Fatalf("files=%d results=%d", fs.Len(), len(results))
	}
	// bad.story < good.story
	if !results[0].Failed || results[1].Failed {
		t.Fatalf("unexpected failure flags: %v %v", results[0].Failed, results[1].Failed)
	}
	if len(events) != 2 {
		t.Fatalf("got %d progress events", len(events))
	}
	seen := map[int]bool{}
	for _, ev := range events {
		if ev.Total != 2 {
			t.Fatalf("total: got %d", ev.Total)
		}
		seen[ev.Done] = true
	}
	if !seen[1] || !seen[2] {
		t.Fatalf("done counters not monotonic: %+v", events)
	}
}

func TestParseDir_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeStory(t, dir, "ok.story", "say 1;")
	if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "broken.story")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}

	fs, results, err := ParseDir(context.Background(), dir, DirOptions{})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	broken := results[0]
	if !broken.Failed || broken.File != nil {
		t.Fatalf("expected failed result without file: %+v", broken)
	}
	items := broken.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Fatalf("unexpected diagnostics: %+v", items)
	}
	if loc := fs.Location(items[0].Primary); filepath.Base(loc.File) != "broken.story" || loc.Line != 1 {
		t.Fatalf("load error must point at the broken file, got %s", loc)
	}
	if results[1].Failed {
		t.Fatal("ok.story should parse cleanly")
	}
}

func TestParseDir_Canceled(t *testing.T) {
	dir := t.TempDir()
	writeStory(t, dir, "a.story", "say 1;")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := ParseDir(ctx, dir, DirOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseDir_Empty(t *testing.T) {
	fs, results, err := ParseDir(context.Background(), t.TempDir(), DirOptions{})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if fs == nil || len(results) != 0 {
		t.Fatalf("expected empty result, got %d", len(results))
	}
}

func TestParseDir_TraceSpans(t *testing.T) {
	dir := t.TempDir()
	writeStory(t, dir, "a.story", "say 1;")
	writeStory(t, dir, "b.story", "say 2;")

	ring := trace.NewRingTracer(256, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, _, err := ParseDir(ctx, dir, DirOptions{Jobs: 1}); err != nil {
		t.Fatalf("ParseDir: %v", err)
	}

	counts := map[string]int{}
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			counts[ev.Name]++
		}
	}
	if counts["parse_dir"] != 1 || counts["file"] != 2 || counts["parse"] != 2 {
		t.Fatalf("unexpected span counts: %v", counts)
	}
}
