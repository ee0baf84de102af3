package ast

import (
	"storyscript/internal/source"
	"storyscript/internal/token"
)

type ExprKind uint8

const (
	ExprLiteral ExprKind = iota + 1
	ExprVariable
	ExprBinary
	ExprUnary
	ExprCall
)

func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVariable:
		return "Variable"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprCall:
		return "Call"
	default:
		return "Expr(?)"
	}
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitNumber LitKind = iota + 1
	LitString
	LitBool
)

func (k LitKind) String() string {
	switch k {
	case LitNumber:
		return "number"
	case LitString:
		return "string"
	case LitBool:
		return "bool"
	default:
		return "?"
	}
}

// ExprLiteralData хранит значение литерала; заполнено только поле, соответствующее Kind.
type ExprLiteralData struct {
	Kind   LitKind
	Number float64
	Str    string // без кавычек
	Bool   bool
}

type ExprVariableData struct {
	Name token.Token
}

// ExprBinaryData also covers assignment (Op.Kind == token.Assign) and the
// logical 'and' / 'or' operators.
type ExprBinaryData struct {
	Left  ExprID
	Op    token.Token
	Right ExprID
}

type ExprUnaryData struct {
	Op      token.Token
	Operand ExprID
}

type ExprCallData struct {
	Callee ExprID
	Paren  token.Token // closing ')'
	Args   []ExprID
}
