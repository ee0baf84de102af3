package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"storyscript/internal/ast"
	"storyscript/internal/source"
)

// ASTNodeOutput — общее представление узла для tree/JSON/YAML вывода.
type ASTNodeOutput struct {
	Type     string          `json:"type" yaml:"type"`
	Kind     string          `json:"kind,omitempty" yaml:"kind,omitempty"`
	Span     string          `json:"span" yaml:"span"`
	Fields   map[string]any  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildASTOutput строит дерево вывода для программы. Порядок детей:
// комнаты, функции, операторы — как они хранятся в Program.
func BuildASTOutput(builder *ast.Builder, prog ast.ProgramID, fs *source.FileSet) (ASTNodeOutput, error) {
	if builder == nil || !prog.IsValid() {
		return ASTNodeOutput{}, fmt.Errorf("program %d not found", prog)
	}
	p := builder.Programs.Get(prog)
	if p == nil {
		return ASTNodeOutput{}, fmt.Errorf("program %d not found", prog)
	}

	root := ASTNodeOutput{Type: "Program", Span: formatSpan(p.Span, fs)}
	if fs != nil {
		if f := fs.Get(p.Span.File); f != nil {
			root.Fields = map[string]any{"file": f.FormatPath("auto", fs.BaseDir())}
		}
	}
	b := astOutputBuilder{arenas: builder, fs: fs}
	for _, id := range p.Rooms {
		root.Children = append(root.Children, b.decl(id))
	}
	for _, id := range p.Functions {
		root.Children = append(root.Children, b.stmt(id))
	}
	for _, id := range p.Stmts {
		root.Children = append(root.Children, b.stmt(id))
	}
	return root, nil
}

// FormatASTJSON выводит AST программы в JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, prog ast.ProgramID, fs *source.FileSet) error {
	out, err := BuildASTOutput(builder, prog, fs)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// FormatASTYAML выводит AST программы в YAML.
func FormatASTYAML(w io.Writer, builder *ast.Builder, prog ast.ProgramID, fs *source.FileSet) error {
	out, err := BuildASTOutput(builder, prog, fs)
	if err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return err
	}
	return encoder.Close()
}

type astOutputBuilder struct {
	arenas *ast.Builder
	fs     *source.FileSet
}

func (b astOutputBuilder) decl(id ast.DeclID) ASTNodeOutput {
	d := b.arenas.Decls.Get(id)
	if d == nil {
		return ASTNodeOutput{Type: "Decl", Kind: "<nil>"}
	}
	out := ASTNodeOutput{Type: "Decl", Kind: d.Kind.String(), Span: formatSpan(d.Span, b.fs)}

	switch d.Kind {
	case ast.DeclRoom:
		room, ok := b.arenas.Decls.Room(id)
		if !ok {
			break
		}
		out.Fields = map[string]any{"name": room.Name.Text}
		for _, prop := range room.Props {
			out.Children = append(out.Children, b.property(prop))
		}
		for _, item := range room.Items {
			out.Children = append(out.Children, b.decl(item))
		}
		for _, ev := range room.Events {
			out.Children = append(out.Children, ASTNodeOutput{
				Type:     "Event",
				Span:     formatSpan(ev.Name.Span.Cover(b.arenas.Stmts.Get(ev.Body).Span), b.fs),
				Fields:   map[string]any{"name": ev.Name.Text},
				Children: []ASTNodeOutput{b.stmt(ev.Body)},
			})
		}

	case ast.DeclItem:
		item, ok := b.arenas.Decls.Item(id)
		if !ok {
			break
		}
		out.Fields = map[string]any{"name": item.Name.Text}
		for _, prop := range item.Props {
			out.Children = append(out.Children, b.property(prop))
		}
	}
	return out
}

func (b astOutputBuilder) property(prop ast.Property) ASTNodeOutput {
	return ASTNodeOutput{
		Type:     "Property",
		Span:     formatSpan(prop.Name.Span.Cover(b.arenas.Exprs.Get(prop.Value).Span), b.fs),
		Fields:   map[string]any{"name": prop.Name.Text},
		Children: []ASTNodeOutput{b.expr(prop.Value)},
	}
}

func (b astOutputBuilder) stmt(id ast.StmtID) ASTNodeOutput {
	st := b.arenas.Stmts.Get(id)
	if st == nil {
		return ASTNodeOutput{Type: "Stmt", Kind: "<nil>"}
	}
	out := ASTNodeOutput{Type: "Stmt", Kind: st.Kind.String(), Span: formatSpan(st.Span, b.fs)}

	switch st.Kind {
	case ast.StmtExpr:
		if data, ok := b.arenas.Stmts.Expr(id); ok {
			out.Children = []ASTNodeOutput{b.expr(data.Expr)}
		}

	case ast.StmtVar:
		if data, ok := b.arenas.Stmts.Var(id); ok {
			out.Fields = map[string]any{"name": data.Name.Text}
			if data.Init.IsValid() {
				out.Children = []ASTNodeOutput{b.expr(data.Init)}
			}
		}

	case ast.StmtBlock:
		if data, ok := b.arenas.Stmts.Block(id); ok {
			for _, child := range data.Stmts {
				out.Children = append(out.Children, b.stmt(child))
			}
		}

	case ast.StmtIf:
		if data, ok := b.arenas.Stmts.If(id); ok {
			out.Children = []ASTNodeOutput{b.expr(data.Cond), b.stmt(data.Then)}
			if data.Else.IsValid() {
				out.Children = append(out.Children, b.stmt(data.Else))
			}
		}

	case ast.StmtWhile:
		if data, ok := b.arenas.Stmts.While(id); ok {
			out.Children = []ASTNodeOutput{b.expr(data.Cond), b.stmt(data.Body)}
		}

	case ast.StmtFunction:
		if data, ok := b.arenas.Stmts.Function(id); ok {
			params := make([]string, 0, len(data.Params))
			for _, p := range data.Params {
				params = append(params, p.Text)
			}
			out.Fields = map[string]any{"name": data.Name.Text, "params": params}
			out.Children = []ASTNodeOutput{b.stmt(data.Body)}
		}

	case ast.StmtReturn:
		if data, ok := b.arenas.Stmts.Return(id); ok && data.Value.IsValid() {
			out.Children = []ASTNodeOutput{b.expr(data.Value)}
		}

	case ast.StmtSay:
		if data, ok := b.arenas.Stmts.Say(id); ok {
			out.Children = []ASTNodeOutput{b.expr(data.Message)}
		}

	case ast.StmtGoto:
		if data, ok := b.arenas.Stmts.Goto(id); ok {
			out.Children = []ASTNodeOutput{b.expr(data.Dest)}
		}
	}
	return out
}

func (b astOutputBuilder) expr(id ast.ExprID) ASTNodeOutput {
	e := b.arenas.Exprs.Get(id)
	if e == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "<nil>"}
	}
	out := ASTNodeOutput{Type: "Expr", Kind: e.Kind.String(), Span: formatSpan(e.Span, b.fs)}

	switch e.Kind {
	case ast.ExprLiteral:
		if lit, ok := b.arenas.Exprs.Literal(id); ok {
			var value any
			switch lit.Kind {
			case ast.LitNumber:
				value = lit.Number
			case ast.LitString:
				value = lit.Str
			case ast.LitBool:
				value = lit.Bool
			}
			out.Fields = map[string]any{"value": value}
		}

	case ast.ExprVariable:
		if v, ok := b.arenas.Exprs.Variable(id); ok {
			out.Fields = map[string]any{"name": v.Name.Text}
		}

	case ast.ExprBinary:
		if bin, ok := b.arenas.Exprs.Binary(id); ok {
			out.Fields = map[string]any{"op": bin.Op.Text}
			out.Children = []ASTNodeOutput{b.expr(bin.Left), b.expr(bin.Right)}
		}

	case ast.ExprUnary:
		if un, ok := b.arenas.Exprs.Unary(id); ok {
			out.Fields = map[string]any{"op": un.Op.Text}
			out.Children = []ASTNodeOutput{b.expr(un.Operand)}
		}

	case ast.ExprCall:
		if call, ok := b.arenas.Exprs.Call(id); ok {
			out.Fields = map[string]any{"args": len(call.Args)}
			out.Children = append(out.Children, b.expr(call.Callee))
			for _, arg := range call.Args {
				out.Children = append(out.Children, b.expr(arg))
			}
		}
	}
	return out
}

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to start and end positions and returns "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
