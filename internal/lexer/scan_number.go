package lexer

import (
	"storyscript/internal/token"
)

// digits ('.' digits)? — точка без цифры после неё остаётся отдельным Dot токеном.
func (lx *Lexer) scanNumber(start Mark) token.Token {
	lx.eatDigits()
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump() // '.'
		lx.eatDigits()
	}
	return lx.emit(token.NumberLit, start)
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
