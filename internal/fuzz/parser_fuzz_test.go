package fuzztests

import (
	"context"
	"testing"
	"time"

	"storyscript/internal/ast"
	"storyscript/internal/diag"
	"storyscript/internal/lexer"
	"storyscript/internal/parser"
	"storyscript/internal/source"
	"storyscript/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
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

		bag := diag.NewBag(128)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})

		builder := ast.NewBuilder(ast.Hints{})
		opts := parser.Options{
			Reporter:  reporter,
			MaxErrors: 128,
		}

		res := parser.ParseFile(context.Background(), lx, builder, opts)
		if err := testkit.CheckSpanInvariants(builder, res.Program, file, !res.HadError); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		if res.HadError != (len(res.Errors) > 0) {
			t.Fatalf("HadError=%v but %d errors recorded", res.HadError, len(res.Errors))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops that could be caused by
// malformed input or edge cases in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Add specific edge cases for recovery paths
	f.Add([]byte("var x = 1\nvar y = 2;"))                 // missing semicolon
	f.Add([]byte("room r { when entered { say 1 } }"))     // statement without semicolon in event
	f.Add([]byte("room r { name: ; }"))                    // missing property value
	f.Add([]byte("{ { { { } } } }"))                       // deeply nested blocks
	f.Add([]byte("function f(a b c) { }"))                 // params without commas
	f.Add([]byte("room r { item { item { } } }"))          // nameless items
	f.Add([]byte("say ((((((((((1"))                       // unclosed groups
	f.Add([]byte("while ( ) ) ) ) when entered { } } } }")) // stray closers

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		// Create a context with timeout to detect hangs
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		// Run parser in a goroutine
		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.story", input)
			file := fs.Get(fileID)

			bag := diag.NewBag(128)
			reporter := diag.BagReporter{Bag: bag}
			lx := lexer.New(file, lexer.Options{Reporter: reporter})

			builder := ast.NewBuilder(ast.Hints{})
			opts := parser.Options{
				Reporter:  reporter,
				MaxErrors: 128,
			}

			_ = parser.ParseFile(ctx, lx, builder, opts)
		}()

		// Wait for completion or timeout
		select {
		case <-done:
			// Parser completed successfully
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
