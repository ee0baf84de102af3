package fuzztests

import (
	"testing"

	"storyscript/internal/diag"
	"storyscript/internal/lexer"
	"storyscript/internal/source"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.story", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})

		// каждый токен продвигает курсор, спаны не пересекаются, текст = срез исходника
		var prevEnd uint32
		for steps := 0; ; steps++ {
			if steps > len(input)+1 {
				t.Fatalf("lexer did not reach EOF after %d tokens", steps)
			}
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start {
				t.Fatalf("bad span %v after end %d", tok.Span, prevEnd)
			}
			if int(tok.Span.End) > len(input) {
				t.Fatalf("span %v beyond input of %d bytes", tok.Span, len(input))
			}
			if tok.Text != string(input[tok.Span.Start:tok.Span.End]) {
				t.Fatalf("token text %q does not match source slice", tok.Text)
			}
			prevEnd = tok.Span.End
			if tok.IsEOF() {
				break
			}
		}

		// EOF идемпотентен
		again := lx.Next()
		if !again.IsEOF() || int(again.Span.Start) != len(input) {
			t.Fatalf("EOF not idempotent: %v", again)
		}
	})
}
