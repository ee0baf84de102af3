package lexer

import (
	"unicode/utf8"
)

const utf8RuneSelf = utf8.RuneSelf

// bumpRune сдвигает курсор на одну руну (минимум один байт для битого UTF-8).
func (lx *Lexer) bumpRune() {
	_, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
	if sz == 0 {
		return
	}
	for range sz {
		lx.cursor.Bump()
	}
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
