package lexer_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storyscript/internal/diag"
	"storyscript/internal/lexer"
	"storyscript/internal/source"
	"storyscript/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

// Report реализует интерфейс diag.Reporter
func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) messages() []string {
	out := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return out
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter, *source.FileSet) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.story", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter, fs
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, _, _ := makeTestLexer(input)
	toks := lx.Tokenize()
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: kinds = %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	return toks
}

func TestKeywordsAndIdents(t *testing.T) {
	toks := expectKinds(t, "room Room _x item1 when entered say goto",
		token.KwRoom, token.Ident, token.Ident, token.Ident,
		token.KwWhen, token.KwEntered, token.KwSay, token.KwGoto)
	if toks[1].Text != "Room" || toks[2].Text != "_x" {
		t.Fatalf("ident texts = %q %q", toks[1].Text, toks[2].Text)
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"= ==", []token.Kind{token.Assign, token.EqEq}},
		{"===", []token.Kind{token.EqEq, token.Assign}},
		{"! !=", []token.Kind{token.KwNot, token.BangEq}},
		{"not", []token.Kind{token.KwNot}},
		{"< <= > >=", []token.Kind{token.Lt, token.LtEq, token.Gt, token.GtEq}},
		{"+-*/%", []token.Kind{token.Plus, token.Minus, token.Star, token.Slash, token.Percent}},
		{"(){}:,;.", []token.Kind{
			token.LParen, token.RParen, token.LBrace, token.RBrace,
			token.Colon, token.Comma, token.Semicolon, token.Dot,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectKinds(t, tt.input, tt.want...)
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		texts []string
		kinds []token.Kind
	}{
		{"42", []string{"42"}, []token.Kind{token.NumberLit}},
		{"3.14", []string{"3.14"}, []token.Kind{token.NumberLit}},
		{"1.", []string{"1", "."}, []token.Kind{token.NumberLit, token.Dot}},
		{"1.x", []string{"1", ".", "x"}, []token.Kind{token.NumberLit, token.Dot, token.Ident}},
		{"1.2.3", []string{"1.2", ".", "3"}, []token.Kind{token.NumberLit, token.Dot, token.NumberLit}},
		{"-5", []string{"-", "5"}, []token.Kind{token.Minus, token.NumberLit}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := expectKinds(t, tt.input, tt.kinds...)
			for i, want := range tt.texts {
				if toks[i].Text != want {
					t.Fatalf("token %d text = %q, want %q", i, toks[i].Text, want)
				}
			}
		})
	}
}

func TestStrings(t *testing.T) {
	toks := expectKinds(t, "say \"hello\nworld\" x", token.KwSay, token.StringLit, token.Ident)
	if toks[1].Text != "\"hello\nworld\"" {
		t.Fatalf("string text = %q", toks[1].Text)
	}
	// строка занимает две строки: x на второй
	if toks[2].Pos != (source.LineCol{Line: 2, Col: 8}) {
		t.Fatalf("ident after multi-line string at %+v", toks[2].Pos)
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, rep, _ := makeTestLexer(`say "abc`)
	toks := lx.Tokenize()
	if len(toks) != 3 {
		t.Fatalf("tokens = %v", kinds(toks))
	}
	bad := toks[1]
	if bad.Kind != token.Invalid || bad.Err != "Unterminated string." || bad.Text != `"abc` {
		t.Fatalf("bad token = %+v", bad)
	}
	if got := rep.messages(); len(got) != 1 || got[0] != "[LEX1002] ERROR: Unterminated string." {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	lx, rep, _ := makeTestLexer("a # b λ")
	toks := lx.Tokenize()
	want := []token.Kind{token.Ident, token.Invalid, token.Ident, token.Invalid, token.EOF}
	if got := kinds(toks); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if toks[1].Text != "#" || toks[1].Err != "Unexpected character." {
		t.Fatalf("'#' token = %+v", toks[1])
	}
	// не-ASCII руна съедается целиком
	if toks[3].Text != "λ" {
		t.Fatalf("rune token text = %q", toks[3].Text)
	}
	if len(rep.diagnostics) != 2 || rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("diagnostics = %v", rep.messages())
	}
	for _, tok := range toks {
		if tok.Kind != token.Invalid && tok.Err != "" {
			t.Fatalf("non-invalid token carries Err: %+v", tok)
		}
	}
}

func TestComments(t *testing.T) {
	toks := expectKinds(t, "a // comment / here\nb / c // trailing", token.Ident, token.Ident, token.Slash, token.Ident)
	if toks[1].Pos != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("b at %+v", toks[1].Pos)
	}
}

func TestPositions(t *testing.T) {
	lx, _, fs := makeTestLexer("room Hall {\n\tdesc: \"x\";\r\n}\n")
	for _, tok := range lx.Tokenize() {
		start, _ := fs.Resolve(tok.Span)
		if start != tok.Pos {
			t.Fatalf("%v %q: Pos %+v, Resolve %+v", tok.Kind, tok.Text, tok.Pos, start)
		}
	}
}

// TestRoundTrip: тексты токенов плюс пропущенные промежутки восстанавливают исходник,
// а промежутки содержат только пробелы и комментарии.
func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"room Hall {\n  description: \"A big hall\"; // comment\n  when entered { say \"hi\"; }\n}\n",
		"function f(a, b) { return a + b * 2.5; }\r\nvar x = f(1, 2) != 3;",
		"// only a comment",
		"  \t\n",
	}
	for _, in := range inputs {
		lx, _, _ := makeTestLexer(in)
		var sb strings.Builder
		var prev uint32
		for _, tok := range lx.Tokenize() {
			gap := in[prev:tok.Span.Start]
			if strings.TrimSpace(stripComments(gap)) != "" {
				t.Fatalf("%q: gap %q holds more than trivia", in, gap)
			}
			sb.WriteString(gap)
			sb.WriteString(tok.Text)
			if tok.Text != in[tok.Span.Start:tok.Span.End] {
				t.Fatalf("%q: text %q does not match span %v", in, tok.Text, tok.Span)
			}
			prev = tok.Span.End
		}
		if sb.String() != in {
			t.Fatalf("round trip = %q, want %q", sb.String(), in)
		}
	}
}

func stripComments(gap string) string {
	var sb strings.Builder
	for _, line := range strings.SplitAfter(gap, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		sb.WriteString(line)
	}
	return sb.String()
}

func TestIdempotentEOF(t *testing.T) {
	lx, _, _ := makeTestLexer("x\n")
	lx.Next()
	first := lx.Next()
	if first.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", first.Kind)
	}
	for range 3 {
		again := lx.Next()
		if again != first {
			t.Fatalf("EOF changed: %+v vs %+v", again, first)
		}
	}
	if first.Pos != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("EOF pos = %+v", first.Pos)
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	lx, rep, _ := makeTestLexer("a\n# \"open")
	for {
		loc := lx.Location()
		peeked := lx.Peek()
		if lx.Location() != loc {
			t.Fatalf("Peek moved the cursor: %v -> %v", loc, lx.Location())
		}
		next := lx.Next()
		if peeked != next {
			t.Fatalf("Peek = %+v, Next = %+v", peeked, next)
		}
		if next.Kind == token.EOF {
			break
		}
	}
	// ошибки сообщаются один раз, несмотря на Peek
	if len(rep.diagnostics) != 2 {
		t.Fatalf("diagnostics = %v", rep.messages())
	}
}

func TestLocation(t *testing.T) {
	lx, _, _ := makeTestLexer("ab\ncd")
	if got := lx.Location().String(); got != "test.story:1:1" {
		t.Fatalf("initial Location = %q", got)
	}
	lx.Next()
	lx.Next()
	if got := lx.Location().String(); got != "test.story:2:3" {
		t.Fatalf("Location after two tokens = %q", got)
	}
}

func TestNilReporter(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("n.story", []byte("@"))), lexer.Options{})
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("kind = %v", tok.Kind)
	}
}

// Файл с диска лексится уже нормализованным: BOM срезан, \r\n стал \n,
// поэтому тексты токенов — подстроки File.Content, а не байтов на диске.
func TestLoadCRLFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.story")
	raw := "\xEF\xBB\xBFsay \"a\r\nb\";\r\nvar x = 1;\r\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if !file.Flags.Has(source.FileHadBOM) || !file.Flags.Has(source.FileNormalizedCRLF) {
		t.Fatalf("flags = %08b, want BOM and CRLF", file.Flags)
	}
	if want := "say \"a\nb\";\nvar x = 1;\n"; string(file.Content) != want {
		t.Fatalf("content = %q, want %q", file.Content, want)
	}

	toks := lexer.New(file, lexer.Options{}).Tokenize()
	var sb strings.Builder
	prev := uint32(0)
	for _, tok := range toks {
		sb.Write(file.Content[prev:tok.Span.Start])
		sb.WriteString(tok.Text)
		prev = tok.Span.End
	}
	if sb.String() != string(file.Content) {
		t.Fatalf("round trip = %q, want %q", sb.String(), file.Content)
	}
	if toks[1].Kind != token.StringLit || toks[1].Text != "\"a\nb\"" {
		t.Fatalf("string token = %v %q, want CR-free literal", toks[1].Kind, toks[1].Text)
	}
	if toks[3].Kind != token.KwVar || toks[3].Pos.Line != 3 || toks[3].Pos.Col != 1 {
		t.Fatalf("var token at %d:%d, want 3:1", toks[3].Pos.Line, toks[3].Pos.Col)
	}
}
