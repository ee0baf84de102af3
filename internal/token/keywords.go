package token

var keywords = map[string]Kind{
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

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только точное совпадение распознаётся.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
