package ast

import (
	"fmt"

	"storyscript/internal/source"
)

// NodeClass tells which arena a Node refers to.
type NodeClass uint8

const (
	ClassProgram NodeClass = iota + 1
	ClassDecl
	ClassStmt
	ClassExpr
)

// Node is a lightweight reference used by Inspect.
type Node struct {
	Class NodeClass
	ID    uint32
	Span  source.Span
}

func (n Node) Program() ProgramID { return ProgramID(n.ID) }
func (n Node) Decl() DeclID       { return DeclID(n.ID) }
func (n Node) Stmt() StmtID       { return StmtID(n.ID) }
func (n Node) Expr() ExprID       { return ExprID(n.ID) }

// Inspect walks the tree rooted at prog depth-first in source order, calling fn
// before visiting each node's children. If fn returns false the children are skipped.
// Absent optional children (NoExprID, NoStmtID) are not visited.
func Inspect(b *Builder, prog ProgramID, fn func(Node) bool) {
	p := b.Programs.Get(prog)
	if p == nil {
		return
	}
	w := walker{b: b, fn: fn}
	if !fn(Node{Class: ClassProgram, ID: uint32(prog), Span: p.Span}) {
		return
	}
	for _, id := range p.Rooms {
		w.decl(id)
	}
	for _, id := range p.Functions {
		w.stmt(id)
	}
	for _, id := range p.Stmts {
		w.stmt(id)
	}
}

type walker struct {
	b  *Builder
	fn func(Node) bool
}

func (w *walker) decl(id DeclID) {
	d := w.b.Decls.Get(id)
	if d == nil || !w.fn(Node{Class: ClassDecl, ID: uint32(id), Span: d.Span}) {
		return
	}
	switch d.Kind {
	case DeclRoom:
		room, _ := w.b.Decls.Room(id)
		for _, prop := range room.Props {
			w.expr(prop.Value)
		}
		for _, item := range room.Items {
			w.decl(item)
		}
		for _, ev := range room.Events {
			w.stmt(ev.Body)
		}
	case DeclItem:
		item, _ := w.b.Decls.Item(id)
		for _, prop := range item.Props {
			w.expr(prop.Value)
		}
	default:
		panic(fmt.Sprintf("ast: unknown decl kind %d", d.Kind))
	}
}

func (w *walker) stmt(id StmtID) {
	st := w.b.Stmts.Get(id)
	if st == nil || !w.fn(Node{Class: ClassStmt, ID: uint32(id), Span: st.Span}) {
		return
	}
	s := w.b.Stmts
	switch st.Kind {
	case StmtExpr:
		data, _ := s.Expr(id)
		w.expr(data.Expr)
	case StmtVar:
		data, _ := s.Var(id)
		w.expr(data.Init)
	case StmtBlock:
		data, _ := s.Block(id)
		for _, child := range data.Stmts {
			w.stmt(child)
		}
	case StmtIf:
		data, _ := s.If(id)
		w.expr(data.Cond)
		w.stmt(data.Then)
		w.stmt(data.Else)
	case StmtWhile:
		data, _ := s.While(id)
		w.expr(data.Cond)
		w.stmt(data.Body)
	case StmtFunction:
		data, _ := s.Function(id)
		w.stmt(data.Body)
	case StmtReturn:
		data, _ := s.Return(id)
		w.expr(data.Value)
	case StmtSay:
		data, _ := s.Say(id)
		w.expr(data.Message)
	case StmtGoto:
		data, _ := s.Goto(id)
		w.expr(data.Dest)
	default:
		panic(fmt.Sprintf("ast: unknown stmt kind %d", st.Kind))
	}
}

func (w *walker) expr(id ExprID) {
	ex := w.b.Exprs.Get(id)
	if ex == nil || !w.fn(Node{Class: ClassExpr, ID: uint32(id), Span: ex.Span}) {
		return
	}
	e := w.b.Exprs
	switch ex.Kind {
	case ExprLiteral, ExprVariable:
	case ExprBinary:
		data, _ := e.Binary(id)
		w.expr(data.Left)
		w.expr(data.Right)
	case ExprUnary:
		data, _ := e.Unary(id)
		w.expr(data.Operand)
	case ExprCall:
		data, _ := e.Call(id)
		w.expr(data.Callee)
		for _, arg := range data.Args {
			w.expr(arg)
		}
	default:
		panic(fmt.Sprintf("ast: unknown expr kind %d", ex.Kind))
	}
}

// NodeCount is the per-family size of a tree.
type NodeCount struct {
	Decls int
	Stmts int
	Exprs int
}

func (c NodeCount) Total() int { return c.Decls + c.Stmts + c.Exprs }

// CountNodes returns how many nodes are reachable from prog.
func CountNodes(b *Builder, prog ProgramID) NodeCount {
	var c NodeCount
	Inspect(b, prog, func(n Node) bool {
		switch n.Class {
		case ClassDecl:
			c.Decls++
		case ClassStmt:
			c.Stmts++
		case ClassExpr:
			c.Exprs++
		}
		return true
	})
	return c
}
