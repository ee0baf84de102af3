package driver

import (
	"context"
	"strings"
	"testing"

	"storyscript/internal/diag"
)

func alienHints(res *ParseResult) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range res.Bag.Items() {
		if d.Code.ID()[:3] == "ALN" {
			out = append(out, d)
		}
	}
	return out
}

func TestParseSourceEmitsAlienHints(t *testing.T) {
	fixtures := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"legacy", "story {\n  choice {\n    option \"North\" goto north;\n  }\n}\n", diag.AlnLegacyDialect},
		{"ink", "VAR gold = 0\n-> cave\n", diag.AlnInkDialect},
		{"python", "def greet():\n    print(None)\n", diag.AlnPythonDialect},
		{"javascript", "const f = (a) => a && b;\n", diag.AlnJSDialect},
	}
	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			res := ParseSource(context.Background(), fx.name+".story", []byte(fx.src), 0)
			if !res.Failed {
				t.Fatalf("expected parse errors for %q", fx.src)
			}
			hints := alienHints(res)
			if len(hints) != 1 {
				t.Fatalf("expected one alien hint, got %d", len(hints))
			}
			if hints[0].Code != fx.code || hints[0].Severity != diag.SevInfo {
				t.Fatalf("unexpected hint: %s %s", hints[0].Code.ID(), hints[0].Severity)
			}
		})
	}
}

func TestLegacyHintPointsAtStoryWrapper(t *testing.T) {
	res := ParseSource(context.Background(), "old.story", []byte("story { choice { } }\n"), 0)
	hints := alienHints(res)
	if len(hints) != 1 {
		t.Fatalf("expected one alien hint, got %d", len(hints))
	}
	h := hints[0]
	if h.Primary.Start != 0 || h.Primary.End != 5 {
		t.Fatalf("hint span = %v, want 0..5", h.Primary)
	}
	if !strings.Contains(h.Message, "table-driven StoryScript dialect") {
		t.Fatalf("unexpected message: %s", h.Message)
	}
}

func TestNoAlienHintsWithoutErrors(t *testing.T) {
	// те же слова, но программа корректна — подсказка не нужна
	src := "var story = 1;\nvar choice = story;\nvar option = choice;\n"
	res := ParseSource(context.Background(), "ok.story", []byte(src), 0)
	if res.Failed {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
	if hints := alienHints(res); len(hints) != 0 {
		t.Fatalf("expected no hints, got %d", len(hints))
	}
}
