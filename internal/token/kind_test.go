package token_test

import (
	"testing"

	"storyscript/internal/source"
	"storyscript/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.NumberLit, token.StringLit, token.KwTrue, token.KwFalse}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwVar, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Assign, token.EqEq, token.BangEq,
		token.Lt, token.Gt, token.LtEq, token.GtEq,
		token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.Colon, token.Comma, token.Semicolon, token.Dot,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
		if k.Lexeme() == "" {
			t.Fatalf("%v must have a fixed lexeme", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwIf, token.NumberLit, token.EOF}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestIsKeywordAndIdent(t *testing.T) {
	if !tok(token.Ident).IsIdent() {
		t.Fatalf("Ident should be ident")
	}
	if tok(token.KwRoom).IsIdent() {
		t.Fatalf("KwRoom must not be ident")
	}
	if !tok(token.KwOr).IsKeyword() || !tok(token.KwRoom).IsKeyword() {
		t.Fatalf("keyword range broken")
	}
	if tok(token.Ident).IsKeyword() || tok(token.Plus).IsKeyword() {
		t.Fatalf("non-keywords reported as keywords")
	}
}

func TestIsDeclStart(t *testing.T) {
	sync := map[token.Kind]bool{
		token.KwRoom: true, token.KwItem: true, token.KwFunction: true,
		token.KwVar: true, token.KwIf: true, token.KwWhile: true,
		token.KwReturn: true, token.KwSay: true, token.KwGoto: true,
	}
	for k := token.Invalid; k <= token.Dot; k++ {
		if got := tok(k).IsDeclStart(); got != sync[k] {
			t.Fatalf("%v.IsDeclStart() = %v, want %v", k, got, sync[k])
		}
	}
}

func TestKindStringAndDescribe(t *testing.T) {
	tests := []struct {
		kind     token.Kind
		name     string
		describe string
	}{
		{token.KwRoom, "KwRoom", "'room'"},
		{token.Semicolon, "Semicolon", "';'"},
		{token.Ident, "Ident", "identifier"},
		{token.StringLit, "StringLit", "string"},
		{token.EOF, "EOF", "end of input"},
		{token.Invalid, "Invalid", "invalid token"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.kind.Describe(); got != tt.describe {
			t.Errorf("Describe() = %q, want %q", got, tt.describe)
		}
	}
}
