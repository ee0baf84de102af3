package ast

import (
	"storyscript/internal/source"
)

type Hints struct{ Programs, Decls, Stmts, Exprs uint }

// Builder owns every arena of one parse. It is not safe for concurrent use;
// parse files in parallel with one Builder each.
type Builder struct {
	Programs *Programs
	Decls    *Decls
	Stmts    *Stmts
	Exprs    *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Programs == 0 {
		hints.Programs = 1
	}
	if hints.Decls == 0 {
		hints.Decls = 1 << 5
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Programs: NewPrograms(hints.Programs),
		Decls:    NewDecls(hints.Decls),
		Stmts:    NewStmts(hints.Stmts),
		Exprs:    NewExprs(hints.Exprs),
	}
}

// HintsForSize guesses arena capacities from the source length.
func HintsForSize(n int) Hints {
	per := uint(n/8) + 1
	return Hints{Programs: 1, Decls: uint(n/256) + 1, Stmts: per, Exprs: per * 2}
}

func (b *Builder) NewProgram(sp source.Span) ProgramID {
	return b.Programs.New(sp)
}

func (b *Builder) PushRoom(prog ProgramID, room DeclID) {
	p := b.Programs.Get(prog)
	p.Rooms = append(p.Rooms, room)
}

func (b *Builder) PushFunction(prog ProgramID, fn StmtID) {
	p := b.Programs.Get(prog)
	p.Functions = append(p.Functions, fn)
}

func (b *Builder) PushStmt(prog ProgramID, st StmtID) {
	p := b.Programs.Get(prog)
	p.Stmts = append(p.Stmts, st)
}

// SetProgramSpan records the final extent of the program.
func (b *Builder) SetProgramSpan(prog ProgramID, sp source.Span) {
	b.Programs.Get(prog).Span = sp
}
