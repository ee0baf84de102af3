package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"storyscript/internal/ast"
	"storyscript/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) program span lies within file content bounds and points at sf
// 2) every node span is well-formed and points at sf
// 3) every node span is contained in the program span
// 4) every node other than the program is non-empty (only for error-free trees)
// 5) every allocated expression, reachable or orphaned by recovery, stays inside the file
func CheckSpanInvariants(b *ast.Builder, prog ast.ProgramID, sf *source.File, errorFree bool) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	p := b.Programs.Get(prog)
	if p == nil {
		return fmt.Errorf("program node not found")
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if p.Span.File != sf.ID {
		return fmt.Errorf("program span points to different file id: got=%d want=%d", p.Span.File, sf.ID)
	}
	if p.Span.Start > p.Span.End || p.Span.End > lenContent {
		return fmt.Errorf("program span %v outside content of %d bytes", p.Span, lenContent)
	}

	var firstErr error
	ast.Inspect(b, prog, func(n ast.Node) bool {
		if firstErr != nil || n.Class == ast.ClassProgram {
			return firstErr == nil
		}
		sp := n.Span
		switch {
		case sp.File != sf.ID:
			firstErr = fmt.Errorf("node %s#%d span file mismatch: got=%d want=%d", className(n.Class), n.ID, sp.File, sf.ID)
		case sp.Start > sp.End:
			firstErr = fmt.Errorf("node %s#%d has inverted span %v", className(n.Class), n.ID, sp)
		case sp.Start < p.Span.Start || sp.End > p.Span.End:
			firstErr = fmt.Errorf("node %s#%d span %v is outside program span %v", className(n.Class), n.ID, sp, p.Span)
		case errorFree && sp.Start == sp.End:
			firstErr = fmt.Errorf("empty span for node %s#%d", className(n.Class), n.ID)
		}
		return firstErr == nil
	})
	if firstErr != nil {
		return firstErr
	}
	for id, e := range b.Exprs.Arena.All() {
		if e.Span.File != sf.ID || e.Span.Start > e.Span.End || e.Span.End > lenContent {
			return fmt.Errorf("allocated expr#%d has span %v outside file of %d bytes", id, e.Span, lenContent)
		}
	}
	return nil
}

func className(c ast.NodeClass) string {
	switch c {
	case ast.ClassDecl:
		return "decl"
	case ast.ClassStmt:
		return "stmt"
	case ast.ClassExpr:
		return "expr"
	default:
		return "program"
	}
}
