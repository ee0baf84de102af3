package ast

import (
	"storyscript/internal/source"
	"storyscript/internal/token"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota + 1
	StmtVar
	StmtBlock
	StmtIf
	StmtWhile
	StmtFunction
	StmtReturn
	StmtSay
	StmtGoto
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "ExprStmt"
	case StmtVar:
		return "Var"
	case StmtBlock:
		return "Block"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtFunction:
		return "Function"
	case StmtReturn:
		return "Return"
	case StmtSay:
		return "Say"
	case StmtGoto:
		return "Goto"
	default:
		return "Stmt(?)"
	}
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtExprData struct {
	Expr ExprID
}

type StmtVarData struct {
	Name token.Token
	Init ExprID // NoExprID без инициализатора
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmtID без else
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

type StmtFunctionData struct {
	Name   token.Token
	Params []token.Token
	Body   StmtID // всегда StmtBlock
}

type StmtReturnData struct {
	Keyword token.Token
	Value   ExprID // NoExprID для голого return
}

type StmtSayData struct {
	Message ExprID
}

type StmtGotoData struct {
	Dest ExprID
}
