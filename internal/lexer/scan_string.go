package lexer

import (
	"storyscript/internal/diag"
	"storyscript/internal/token"
)

// "..." без escape-последовательностей; переводы строк внутри разрешены.
// Текст токена включает кавычки.
func (lx *Lexer) scanString(start Mark) token.Token {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '"' {
			return lx.emit(token.StringLit, start)
		}
	}
	// EOF без закрывающей кавычки
	tok := lx.emitInvalid(start, MsgUnterminatedString)
	lx.errLex(diag.LexUnterminatedString, tok.Span, MsgUnterminatedString)
	return tok
}
