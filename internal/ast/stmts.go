package ast

import (
	"storyscript/internal/source"
	"storyscript/internal/token"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena     *Arena[Stmt]
	Exprs     *Arena[StmtExprData]
	Vars      *Arena[StmtVarData]
	Blocks    *Arena[StmtBlockData]
	Ifs       *Arena[StmtIfData]
	Whiles    *Arena[StmtWhileData]
	Functions *Arena[StmtFunctionData]
	Returns   *Arena[StmtReturnData]
	Says      *Arena[StmtSayData]
	Gotos     *Arena[StmtGotoData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Exprs:     NewArena[StmtExprData](capHint),
		Vars:      NewArena[StmtVarData](capHint / 4),
		Blocks:    NewArena[StmtBlockData](capHint / 4),
		Ifs:       NewArena[StmtIfData](capHint / 8),
		Whiles:    NewArena[StmtWhileData](capHint / 8),
		Functions: NewArena[StmtFunctionData](capHint / 8),
		Returns:   NewArena[StmtReturnData](capHint / 8),
		Says:      NewArena[StmtSayData](capHint / 4),
		Gotos:     NewArena[StmtGotoData](capHint / 8),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewVar(span source.Span, name token.Token, init ExprID) StmtID {
	return s.new(StmtVar, span, s.Vars.Allocate(StmtVarData{Name: name, Init: init}))
}

func (s *Stmts) Var(id StmtID) (*StmtVarData, bool) {
	p, ok := s.payload(id, StmtVar)
	if !ok {
		return nil, false
	}
	return s.Vars.Get(p), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(StmtBlockData{Stmts: append([]StmtID(nil), stmts...)}))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewFunction(span source.Span, name token.Token, params []token.Token, body StmtID) StmtID {
	payload := s.Functions.Allocate(StmtFunctionData{
		Name:   name,
		Params: append([]token.Token(nil), params...),
		Body:   body,
	})
	return s.new(StmtFunction, span, payload)
}

func (s *Stmts) Function(id StmtID) (*StmtFunctionData, bool) {
	p, ok := s.payload(id, StmtFunction)
	if !ok {
		return nil, false
	}
	return s.Functions.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, keyword token.Token, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(StmtReturnData{Keyword: keyword, Value: value}))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewSay(span source.Span, msg ExprID) StmtID {
	return s.new(StmtSay, span, s.Says.Allocate(StmtSayData{Message: msg}))
}

func (s *Stmts) Say(id StmtID) (*StmtSayData, bool) {
	p, ok := s.payload(id, StmtSay)
	if !ok {
		return nil, false
	}
	return s.Says.Get(p), true
}

func (s *Stmts) NewGoto(span source.Span, dest ExprID) StmtID {
	return s.new(StmtGoto, span, s.Gotos.Allocate(StmtGotoData{Dest: dest}))
}

func (s *Stmts) Goto(id StmtID) (*StmtGotoData, bool) {
	p, ok := s.payload(id, StmtGoto)
	if !ok {
		return nil, false
	}
	return s.Gotos.Get(p), true
}
