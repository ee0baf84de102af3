package directive

import (
	"fmt"
	"path/filepath"

	"storyscript/internal/source"
)

// Directive namespaces understood by the runner.
const (
	NamespaceError = "error" // `// expect-error: <message fragment>`
	NamespaceCode  = "code"  // `// expect-code: <diagnostic id>`
)

// Scenario is one expectation comment found in a source file.
//
// A trailing comment targets its own line; a comment on a line of its own
// targets the line of the next token.
type Scenario struct {
	// Namespace is the part after `expect-` (e.g. "error", "code").
	Namespace string

	// Index is the sequential number of this scenario within its namespace and file.
	Index int

	// SourceFile is the path of the file containing the directive.
	SourceFile string

	// Span covers the directive comment itself.
	Span source.Span

	// Line is the 1-based line the expectation applies to.
	Line uint32

	// Argument is the text after the colon, trimmed.
	Argument string
}

// Location returns a short human-readable location, e.g. "recovery.story:4".
func (s *Scenario) Location() string {
	return fmt.Sprintf("%s:%d", filepath.Base(s.SourceFile), s.Line)
}
