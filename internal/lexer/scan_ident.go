package lexer

import (
	"storyscript/internal/token"
)

// [A-Za-z_][A-Za-z0-9_]*, затем поиск по таблице ключевых слов.
func (lx *Lexer) scanIdentOrKeyword(start Mark) token.Token {
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)
	if kw, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = kw
	}
	return tok
}
