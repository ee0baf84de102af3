package ast

import (
	"storyscript/internal/source"
)

// Program is the root of one parsed file. Rooms, functions and top-level
// statements are kept in separate sequences, each in source order.
type Program struct {
	Span      source.Span
	Rooms     []DeclID
	Functions []StmtID // StmtFunction
	Stmts     []StmtID
}

type Programs struct {
	Arena *Arena[Program]
}

func NewPrograms(capHint uint) *Programs {
	return &Programs{
		Arena: NewArena[Program](capHint),
	}
}

func (p *Programs) New(sp source.Span) ProgramID {
	return ProgramID(p.Arena.Allocate(Program{
		Span:      sp,
		Rooms:     make([]DeclID, 0),
		Functions: make([]StmtID, 0),
		Stmts:     make([]StmtID, 0),
	}))
}

func (p *Programs) Get(id ProgramID) *Program {
	return p.Arena.Get(uint32(id))
}
