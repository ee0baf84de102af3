package token

import (
	"storyscript/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Pos  source.LineCol // line/column of the first byte
	Err  string         // lexical error message, set only for Invalid
}

// IsLiteral reports whether the token is a number, string, or boolean literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= Dot
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwRoom && t.Kind <= KwOr
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsEOF reports whether the token marks end of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// IsDeclStart reports whether the token begins a top-level declaration or statement
// that error recovery may resume from.
func (t Token) IsDeclStart() bool {
	switch t.Kind {
	case KwRoom, KwItem, KwFunction, KwVar, KwIf, KwWhile, KwReturn, KwSay, KwGoto:
		return true
	default:
		return false
	}
}
