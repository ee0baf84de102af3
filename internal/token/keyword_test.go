package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"room":     KwRoom,
		"item":     KwItem,
		"var":      KwVar,
		"function": KwFunction,
		"if":       KwIf,
		"else":     KwElse,
		"while":    KwWhile,
		"for":      KwFor,
		"return":   KwReturn,
		"when":     KwWhen,
		"entered":  KwEntered,
		"say":      KwSay,
		"goto":     KwGoto,
		"true":     KwTrue,
		"false":    KwFalse,
		"not":      KwNot,
		"and":      KwAnd,
		"or":       KwOr,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
		if got.Lexeme() != lexeme {
			t.Fatalf("%v.Lexeme() = %q, want %q", got, got.Lexeme(), lexeme)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// регистр важен
	notKw := []string{
		"Room", "ITEM", "Say", "True",
		"rooms", "sayer", "fn", "let", "",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}
