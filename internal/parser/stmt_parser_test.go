package parser

import (
	"testing"

	"storyscript/internal/ast"
)

func TestStatementKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ast.StmtKind
	}{
		{"expr", "x = 1;", ast.StmtExpr},
		{"var", "var x = 1;", ast.StmtVar},
		{"var_no_init", "var x;", ast.StmtVar},
		{"block", "{ say 1; say 2; }", ast.StmtBlock},
		{"empty_block", "{ }", ast.StmtBlock},
		{"if", "if (a) say 1;", ast.StmtIf},
		{"if_else", "if (a) say 1; else { say 2; }", ast.StmtIf},
		{"while", "while (x < 3) x = x + 1;", ast.StmtWhile},
		{"say", "say \"hi\";", ast.StmtSay},
		{"goto", "goto(Kitchen);", ast.StmtGoto},
		{"return_top_level", "return 1;", ast.StmtReturn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustParse(t, tt.input)
			stmts := r.program().Stmts
			if len(stmts) != 1 {
				t.Fatalf("want 1 statement, got %d", len(stmts))
			}
			if got := r.arenas.Stmts.Get(stmts[0]).Kind; got != tt.kind {
				t.Fatalf("kind = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestIfElseShape(t *testing.T) {
	r := mustParse(t, "if (a) say 1; else if (b) say 2;")
	outer, ok := r.arenas.Stmts.If(r.program().Stmts[0])
	if !ok {
		t.Fatalf("expected if")
	}
	if !outer.Else.IsValid() {
		t.Fatalf("missing else branch")
	}
	inner, ok := r.arenas.Stmts.If(outer.Else)
	if !ok {
		t.Fatalf("else branch is not if")
	}
	if inner.Else.IsValid() {
		t.Fatalf("inner if must have no else")
	}
}

func TestVarWithoutInitializer(t *testing.T) {
	r := mustParse(t, "var lamp;")
	v, _ := r.arenas.Stmts.Var(r.program().Stmts[0])
	if v.Name.Text != "lamp" || v.Init.IsValid() {
		t.Fatalf("unexpected var %+v", v)
	}
}

func TestFunctionDeclaration(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		params []string
		body   int
	}{
		{"no_params", "function f() { }", nil, 0},
		{"one_param", "function greet(name) { say name; }", []string{"name"}, 1},
		{"many_params", "function add(a, b, c) { return a + b + c; }", []string{"a", "b", "c"}, 1},
		{"bare_return", "function f() { return; }", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustParse(t, tt.input)
			prog := r.program()
			if len(prog.Functions) != 1 || len(prog.Stmts) != 0 {
				t.Fatalf("functions=%d stmts=%d", len(prog.Functions), len(prog.Stmts))
			}
			fn, _ := r.arenas.Stmts.Function(prog.Functions[0])
			if len(fn.Params) != len(tt.params) {
				t.Fatalf("params = %d, want %d", len(fn.Params), len(tt.params))
			}
			for i, p := range tt.params {
				if fn.Params[i].Text != p {
					t.Fatalf("param %d = %q, want %q", i, fn.Params[i].Text, p)
				}
			}
			body, ok := r.arenas.Stmts.Block(fn.Body)
			if !ok {
				t.Fatalf("function body is not a block")
			}
			if len(body.Stmts) != tt.body {
				t.Fatalf("body stmts = %d, want %d", len(body.Stmts), tt.body)
			}
		})
	}
}

func TestBareReturnHasNoValue(t *testing.T) {
	r := mustParse(t, "return;")
	ret, _ := r.arenas.Stmts.Return(r.program().Stmts[0])
	if ret.Value.IsValid() {
		t.Fatalf("bare return must have no value")
	}
	if ret.Keyword.Text != "return" {
		t.Fatalf("keyword = %q", ret.Keyword.Text)
	}
}

func TestRoomDeclaration(t *testing.T) {
	src := `room Hall {
  description: "A long hall.";
  exits: 2;
  item Lamp { lit: false; weight: 1.5; }
  item Key { }
  when entered {
    say "Welcome";
    goto(Kitchen);
  }
}
function greet(name) { return "hi " + name; }
say greet("you");
`
	r := mustParse(t, src)
	prog := r.program()
	if len(prog.Rooms) != 1 || len(prog.Functions) != 1 || len(prog.Stmts) != 1 {
		t.Fatalf("rooms=%d functions=%d stmts=%d", len(prog.Rooms), len(prog.Functions), len(prog.Stmts))
	}

	room, ok := r.arenas.Decls.Room(prog.Rooms[0])
	if !ok {
		t.Fatalf("expected room decl")
	}
	if room.Name.Text != "Hall" {
		t.Fatalf("room name = %q", room.Name.Text)
	}
	if len(room.Props) != 2 || room.Props[0].Name.Text != "description" || room.Props[1].Name.Text != "exits" {
		t.Fatalf("unexpected props %+v", room.Props)
	}
	if len(room.Items) != 2 {
		t.Fatalf("items = %d", len(room.Items))
	}
	lamp, _ := r.arenas.Decls.Item(room.Items[0])
	if lamp.Name.Text != "Lamp" || len(lamp.Props) != 2 {
		t.Fatalf("unexpected lamp %+v", lamp)
	}
	if len(room.Events) != 1 || room.Events[0].Name.Text != "entered" {
		t.Fatalf("unexpected events %+v", room.Events)
	}
	body, _ := r.arenas.Stmts.Block(room.Events[0].Body)
	if len(body.Stmts) != 2 {
		t.Fatalf("event body stmts = %d", len(body.Stmts))
	}

	// span комнаты: от 'room' до закрывающей '}'
	sp := r.arenas.Decls.Get(prog.Rooms[0]).Span
	if sp.Start != 0 || src[sp.End-1] != '}' {
		t.Fatalf("room span = %s", sp)
	}
}

func TestEventWithIdentifierName(t *testing.T) {
	r := mustParse(t, "room R { when examined { say 1; } }")
	room, _ := r.arenas.Decls.Room(r.program().Rooms[0])
	if len(room.Events) != 1 || room.Events[0].Name.Text != "examined" {
		t.Fatalf("unexpected events %+v", room.Events)
	}
}

func TestProgramKeepsSourceOrderPerList(t *testing.T) {
	r := mustParse(t, "say 1; room A { } say 2; function f() { } room B { }")
	prog := r.program()
	if len(prog.Rooms) != 2 || len(prog.Stmts) != 2 || len(prog.Functions) != 1 {
		t.Fatalf("rooms=%d stmts=%d functions=%d", len(prog.Rooms), len(prog.Stmts), len(prog.Functions))
	}
	a, _ := r.arenas.Decls.Room(prog.Rooms[0])
	b, _ := r.arenas.Decls.Room(prog.Rooms[1])
	if a.Name.Text != "A" || b.Name.Text != "B" {
		t.Fatalf("room order %q %q", a.Name.Text, b.Name.Text)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	r := mustParse(t, "say 1;")
	if again := r.parser.Parse(); again != r.prog {
		t.Fatalf("second Parse returned %v, want %v", again, r.prog)
	}
	if n := len(r.program().Stmts); n != 1 {
		t.Fatalf("stmts = %d after second Parse", n)
	}
}

func TestEmptyInput(t *testing.T) {
	for _, src := range []string{"", "   \n\t", "// just a comment\n"} {
		r := mustParse(t, src)
		prog := r.program()
		if len(prog.Rooms)+len(prog.Functions)+len(prog.Stmts) != 0 {
			t.Fatalf("%q: expected empty program", src)
		}
	}
}
