package parser

import (
	"strings"
	"testing"

	"storyscript/internal/ast"
	"storyscript/internal/diag"
)

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mul_over_add", "1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"parens", "(1 + 2) * 3;", "(* (+ 1 2) 3)"},
		{"left_assoc_sub", "1 - 2 - 3;", "(- (- 1 2) 3)"},
		{"left_assoc_div", "8 / 4 / 2;", "(/ (/ 8 4) 2)"},
		{"modulo", "a % b * c;", "(* (% a b) c)"},
		{"comparison_over_equality", "a < b == c >= d;", "(== (< a b) (>= c d))"},
		{"and_over_or", "a or b and c;", "(or a (and b c))"},
		{"not_binds_tight", "not a and b or c;", "(or (and (not a) b) c)"},
		{"assign_lowest", "x = a or b;", "(= x (or a b))"},
		{"assign_right_assoc", "a = b = c;", "(= a (= b c))"},
		{"unary_minus_nested", "-(-x);", "(- (- x))"},
		{"unary_in_product", "-a * b;", "(* (- a) b)"},
		{"neq", "a != b;", "(!= a b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustParse(t, tt.input)
			got := render(r.arenas, firstExpr(t, r))
			if got != tt.want {
				t.Fatalf("render(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer", "42;", "42"},
		{"float", "3.25;", "3.25"},
		{"string", "\"hello\";", "\"hello\""},
		{"empty_string", "\"\";", "\"\""},
		{"true", "true;", "true"},
		{"false", "false;", "false"},
		{"ident", "lamp;", "lamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustParse(t, tt.input)
			if got := render(r.arenas, firstExpr(t, r)); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStringLiteralIsNFC(t *testing.T) {
	// e + combining acute -> é
	r := mustParse(t, "say \"cafe\u0301\";")
	say, ok := r.arenas.Stmts.Say(r.program().Stmts[0])
	if !ok {
		t.Fatalf("expected say statement")
	}
	lit, ok := r.arenas.Exprs.Literal(say.Message)
	if !ok || lit.Kind != ast.LitString {
		t.Fatalf("expected string literal")
	}
	if lit.Str != "caf\u00e9" {
		t.Fatalf("string not normalized: %q", lit.Str)
	}
}

func TestCallExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no_args", "f();", "(call f)"},
		{"args", "f(1, \"x\", a + b);", "(call f 1 \"x\" (+ a b))"},
		{"chained", "f(1)(2);", "(call (call f 1) 2)"},
		{"nested", "f(g(x));", "(call f (call g x))"},
		{"callee_in_binary", "f(1) + 2;", "(+ (call f 1) 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustParse(t, tt.input)
			if got := render(r.arenas, firstExpr(t, r)); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCallKeepsClosingParen(t *testing.T) {
	r := mustParse(t, "f(1);")
	call, ok := r.arenas.Exprs.Call(firstExpr(t, r))
	if !ok {
		t.Fatalf("expected call")
	}
	if call.Paren.Text != ")" || call.Paren.Pos.Col != 4 {
		t.Fatalf("unexpected paren token %+v", call.Paren)
	}
}

func TestPropertyAccessDropsBase(t *testing.T) {
	r := parseSource(t, "say player.name;")
	if r.parser.HadError() {
		t.Fatalf("property access must not be an error: %s", errorsSummary(r.parser.Diagnostics()))
	}
	say, _ := r.arenas.Stmts.Say(r.program().Stmts[0])
	if got := render(r.arenas, say.Message); got != "name" {
		t.Fatalf("got %s, want plain variable name", got)
	}
	if !hasDiagnosticCode(r.bag, diag.SynPropertyBaseDropped) {
		t.Fatalf("expected info diagnostic, got %s", diagnosticsSummary(r.bag))
	}
	if r.bag.HasWarnings() {
		t.Fatalf("info diagnostic escalated: %s", diagnosticsSummary(r.bag))
	}
}

func TestPropertyAccessMissingName(t *testing.T) {
	r := parseSource(t, "say a.;")
	errs := r.parser.Diagnostics()
	if len(errs) == 0 || errs[0].Message != "Expected property name after '.'." {
		t.Fatalf("unexpected errors: %s", errorsSummary(errs))
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	r := parseSource(t, "1 = 2;")
	errs := r.parser.Diagnostics()
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %s", errorsSummary(errs))
	}
	if errs[0].Message != "Invalid assignment target." {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	// ошибка указывает на '='
	if errs[0].Location.Line != 1 || errs[0].Location.Col != 3 {
		t.Fatalf("unexpected location %s", errs[0].Location)
	}
	// оператор сохраняется, выражение — левая часть
	if got := render(r.arenas, firstExpr(t, r)); got != "1" {
		t.Fatalf("got %s, want left operand", got)
	}
	if !hasDiagnosticCode(r.bag, diag.SynInvalidAssignTarget) {
		t.Fatalf("missing SYN2002: %s", diagnosticsSummary(r.bag))
	}
}

func TestChainedInvalidAssignment(t *testing.T) {
	r := parseSource(t, "1 = 2 = 3;")
	if n := len(r.parser.Diagnostics()); n != 2 {
		t.Fatalf("want 2 errors, got %d", n)
	}
}

func TestExpectedExpression(t *testing.T) {
	r := parseSource(t, "var x = ;")
	errs := r.parser.Diagnostics()
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %s", errorsSummary(errs))
	}
	e := errs[0]
	if e.Message != "Expected expression." || e.Location.Line != 1 || e.Location.Col != 9 {
		t.Fatalf("unexpected error %s", e.Error())
	}
	if e.Location.File != "test.story" {
		t.Fatalf("unexpected file %q", e.Location.File)
	}
	if len(r.program().Stmts) != 0 {
		t.Fatalf("failed statement must not be attached")
	}
}

// литерал за пределами float64 — ошибка, а не тихий +Inf
func TestNumberOutOfRange(t *testing.T) {
	huge := "1" + strings.Repeat("0", 400)
	r := parseSource(t, "say "+huge+";\nsay 2;")
	errs := r.parser.Diagnostics()
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %s", errorsSummary(errs))
	}
	e := errs[0]
	if e.Message != "Number literal out of range." || e.Location.Line != 1 || e.Location.Col != 5 {
		t.Fatalf("unexpected error %s", e.Error())
	}
	if !hasDiagnosticCode(r.bag, diag.SynNumberOutOfRange) {
		t.Fatalf("want SYN2004, got %s", diagnosticsSummary(r.bag))
	}
	if n := len(r.program().Stmts); n != 1 {
		t.Fatalf("want the second say recovered, got %d statements", n)
	}

	big := mustParse(t, "1"+strings.Repeat("0", 300)+";")
	lit, ok := big.arenas.Exprs.Literal(firstExpr(t, big))
	if !ok || lit.Number != 1e300 {
		t.Fatalf("want 1e300 literal, got %+v", lit)
	}
}

func TestExpressionSpans(t *testing.T) {
	r := mustParse(t, "ab + cd * 2;")
	id := firstExpr(t, r)
	sp := r.arenas.Exprs.Get(id).Span
	if sp.Start != 0 || sp.End != 11 {
		t.Fatalf("binary span = %s, want 0-11", sp)
	}
	bin, _ := r.arenas.Exprs.Binary(id)
	rsp := r.arenas.Exprs.Get(bin.Right).Span
	if rsp.Start != 5 || rsp.End != 11 {
		t.Fatalf("right span = %s, want 5-11", rsp)
	}
}
