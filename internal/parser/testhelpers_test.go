package parser

import (
	"fmt"
	"strings"
	"testing"

	"storyscript/internal/ast"
	"storyscript/internal/diag"
	"storyscript/internal/lexer"
	"storyscript/internal/source"
)

type parsed struct {
	arenas *ast.Builder
	prog   ast.ProgramID
	parser *Parser
	bag    *diag.Bag
}

func (r parsed) program() *ast.Program {
	return r.arenas.Programs.Get(r.prog)
}

func parseSourceWith(t *testing.T, input string, opts Options) parsed {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.story", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	if opts.Reporter == nil {
		opts.Reporter = rep
	}

	arenas := ast.NewBuilder(ast.Hints{})
	p := New(lx, arenas, opts)
	prog := p.Parse()
	return parsed{arenas: arenas, prog: prog, parser: p, bag: bag}
}

func parseSource(t *testing.T, input string) parsed {
	t.Helper()
	return parseSourceWith(t, input, Options{})
}

// mustParse падает, если разбор дал хоть одну ошибку.
func mustParse(t *testing.T, input string) parsed {
	t.Helper()
	r := parseSource(t, input)
	if r.parser.HadError() {
		t.Fatalf("unexpected errors for %q: %s", input, errorsSummary(r.parser.Diagnostics()))
	}
	return r
}

// firstExpr возвращает выражение первого top-level оператора-выражения.
func firstExpr(t *testing.T, r parsed) ast.ExprID {
	t.Helper()
	prog := r.program()
	if len(prog.Stmts) == 0 {
		t.Fatalf("no top-level statements")
	}
	st, ok := r.arenas.Stmts.Expr(prog.Stmts[0])
	if !ok {
		t.Fatalf("first statement is %v, want expression statement", r.arenas.Stmts.Get(prog.Stmts[0]).Kind)
	}
	return st.Expr
}

// render печатает выражение в скобочной форме: (+ 1 (* 2 3)).
func render(b *ast.Builder, id ast.ExprID) string {
	expr := b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprLiteral:
		lit, _ := b.Exprs.Literal(id)
		switch lit.Kind {
		case ast.LitNumber:
			return fmt.Sprintf("%g", lit.Number)
		case ast.LitString:
			return fmt.Sprintf("%q", lit.Str)
		default:
			return fmt.Sprintf("%t", lit.Bool)
		}
	case ast.ExprVariable:
		v, _ := b.Exprs.Variable(id)
		return v.Name.Text
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		return fmt.Sprintf("(%s %s %s)", bin.Op.Text, render(b, bin.Left), render(b, bin.Right))
	case ast.ExprUnary:
		un, _ := b.Exprs.Unary(id)
		return fmt.Sprintf("(%s %s)", un.Op.Text, render(b, un.Operand))
	case ast.ExprCall:
		call, _ := b.Exprs.Call(id)
		parts := []string{"call", render(b, call.Callee)}
		for _, arg := range call.Args {
			parts = append(parts, render(b, arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return "?"
}

func errorsSummary(errs []ParseError) string {
	if len(errs) == 0 {
		return "<none>"
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "; ")
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func hasDiagnosticCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
