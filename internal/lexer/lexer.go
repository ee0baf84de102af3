package lexer

import (
	"storyscript/internal/dialect"
	"storyscript/internal/source"
	"storyscript/internal/token"
)

// Lexical error messages carried in token.Token.Err.
const (
	MsgUnexpectedChar     = "Unexpected character."
	MsgUnterminatedString = "Unterminated string."
)

// Lexer is a pull-based scanner over one source file.
// A Lexer is not safe for concurrent use and belongs to a single parser.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	peeking bool

	prev    token.Token // последний токен, отданный Next
	hasPrev bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF в той же позиции.
func (lx *Lexer) Next() token.Token {
	tok := lx.scan()
	if !lx.peeking && lx.opts.DialectEvidence != nil {
		lx.observe(tok)
	}
	return tok
}

// observe кормит сборщик диалектных улик; на Peek не вызывается,
// иначе один токен был бы учтён дважды.
func (lx *Lexer) observe(tok token.Token) {
	if tok.Kind == token.Ident {
		dialect.RecordIdent(lx.opts.DialectEvidence, tok.Text, tok.Span)
	}
	if lx.hasPrev {
		dialect.ObserveTokenPair(lx.opts.DialectEvidence, lx.prev, tok)
	}
	lx.prev, lx.hasPrev = tok, true
}

func (lx *Lexer) scan() token.Token {
	lx.skipTrivia()

	start := lx.cursor.Mark()
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.cursor.SpanFrom(start),
			Pos:  start.Pos(),
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword(start)
	case isDec(ch):
		return lx.scanNumber(start)
	case ch == '"':
		return lx.scanString(start)
	default:
		return lx.scanOperatorOrPunct(start)
	}
}

// Peek возвращает следующий токен, не потребляя его.
// Курсор (смещение, строка, колонка) восстанавливается целиком.
func (lx *Lexer) Peek() token.Token {
	m := lx.cursor.Mark()
	lx.peeking = true
	tok := lx.Next()
	lx.peeking = false
	lx.cursor.Reset(m)
	return tok
}

// Tokenize drains the lexer and returns every token including the final EOF.
func (lx *Lexer) Tokenize() []token.Token {
	toks := make([]token.Token, 0, len(lx.file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Location returns the position of the scan cursor.
func (lx *Lexer) Location() source.Location {
	return source.Location{File: lx.file.Path, Line: lx.cursor.Line, Col: lx.cursor.Col}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Pos:  start.Pos(),
	}
}

func (lx *Lexer) emitInvalid(start Mark, msg string) token.Token {
	tok := lx.emit(token.Invalid, start)
	tok.Err = msg
	return tok
}
