package lexer

import (
	"storyscript/internal/diag"
	"storyscript/internal/token"
)

// Однобайтовый lookahead: '=' / '==', '!' / '!=', '<' / '<=', '>' / '>='.
// '//' сюда не попадает — его съедает skipTrivia.
func (lx *Lexer) scanOperatorOrPunct(start Mark) token.Token {
	ch := lx.cursor.Peek()
	if ch >= utf8RuneSelf {
		// не-ASCII: съедаем руну целиком, чтобы Text оставался валидной подстрокой
		lx.bumpRune()
		return lx.unknownChar(start)
	}

	lx.cursor.Bump()
	switch ch {
	case '+':
		return lx.emit(token.Plus, start)
	case '-':
		return lx.emit(token.Minus, start)
	case '*':
		return lx.emit(token.Star, start)
	case '/':
		return lx.emit(token.Slash, start)
	case '%':
		return lx.emit(token.Percent, start)
	case '=':
		if lx.cursor.Eat('=') {
			return lx.emit(token.EqEq, start)
		}
		return lx.emit(token.Assign, start)
	case '!':
		if lx.cursor.Eat('=') {
			return lx.emit(token.BangEq, start)
		}
		return lx.emit(token.KwNot, start)
	case '<':
		if lx.cursor.Eat('=') {
			return lx.emit(token.LtEq, start)
		}
		return lx.emit(token.Lt, start)
	case '>':
		if lx.cursor.Eat('=') {
			return lx.emit(token.GtEq, start)
		}
		return lx.emit(token.Gt, start)
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '{':
		return lx.emit(token.LBrace, start)
	case '}':
		return lx.emit(token.RBrace, start)
	case ':':
		return lx.emit(token.Colon, start)
	case ',':
		return lx.emit(token.Comma, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case '.':
		return lx.emit(token.Dot, start)
	default:
		return lx.unknownChar(start)
	}
}

func (lx *Lexer) unknownChar(start Mark) token.Token {
	tok := lx.emitInvalid(start, MsgUnexpectedChar)
	lx.errLex(diag.LexUnknownChar, tok.Span, MsgUnexpectedChar)
	return tok
}
