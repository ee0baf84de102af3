package format

import (
	"errors"
	"fmt"
	"strings"

	"storyscript/internal/lexer"
	"storyscript/internal/source"
	"storyscript/internal/token"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

// ErrLexical is returned for sources containing Invalid tokens.
var ErrLexical = errors.New("format: lexical errors present")

// comment — `//` комментарий из промежутка между токенами.
type comment struct {
	text     string
	newlines int // переводов строки перед комментарием
}

type gap struct {
	comments []comment
	newlines int // переводов строки после последнего комментария
}

// scanGap разбирает промежуток между токенами: там только пробелы и комментарии.
func scanGap(b []byte) gap {
	var g gap
	nl := 0
	for i := 0; i < len(b); {
		switch {
		case b[i] == '\n':
			nl++
			i++
		case b[i] == '/' && i+1 < len(b) && b[i+1] == '/':
			j := i
			for j < len(b) && b[j] != '\n' {
				j++
			}
			g.comments = append(g.comments, comment{
				text:     strings.TrimRight(string(b[i:j]), " \t\r"),
				newlines: nl,
			})
			nl = 0
			i = j
		default:
			i++
		}
	}
	g.newlines = nl
	return g
}

type printer struct {
	w         *Writer
	prev      token.Token
	hasPrev   bool
	newline   bool // следующий токен начинается с новой строки
	unary     bool // prev — унарный оператор
	afterOpen bool // последним записан '{'
	parens    int
}

// FormatFile re-emits sf with canonical indentation and spacing. The file is
// expected to parse cleanly; only lexical validity is checked here.
func FormatFile(sf *source.File, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	toks := lexer.New(sf, lexer.Options{}).Tokenize()
	for _, tok := range toks {
		if tok.Kind == token.Invalid {
			return nil, fmt.Errorf("%w at %d:%d", ErrLexical, tok.Pos.Line, tok.Pos.Col)
		}
	}

	p := printer{w: NewWriter(len(sf.Content)+1, opt)}
	var prevEnd uint32
	for i, tok := range toks {
		g := scanGap(sf.Content[prevEnd:tok.Span.Start])
		p.comments(g)
		if tok.Kind == token.EOF {
			break
		}
		p.token(tok, toks[i+1], g)
		prevEnd = tok.Span.End
	}
	p.w.Newline()
	return p.w.Bytes(), nil
}

func (p *printer) blankAllowed() bool {
	return len(p.w.buf) > 0 && !p.afterOpen
}

func (p *printer) comments(g gap) {
	for _, c := range g.comments {
		switch {
		case c.newlines == 0 && p.hasPrev && !p.w.atLineStart:
			// хвостовой комментарий на строке токена
			p.w.Space()
		case c.newlines >= 2 && p.blankAllowed():
			p.w.BlankLine()
		default:
			p.w.Newline()
		}
		p.w.WriteString(c.text)
		p.w.Newline()
		p.afterOpen = false
	}
}

func (p *printer) token(tok, next token.Token, g gap) {
	if tok.Kind == token.RBrace {
		p.w.IndentPop()
		if !p.afterOpen || len(g.comments) > 0 {
			p.w.Newline()
		}
		p.w.WriteString(tok.Text)
	} else {
		switch {
		case p.newline || p.w.atLineStart:
			if g.newlines >= 2 && p.blankAllowed() {
				p.w.BlankLine()
			} else {
				p.w.Newline()
			}
		case p.spaceBefore(tok):
			p.w.Space()
		}
		p.w.WriteString(tok.Text)
	}

	p.newline = false
	switch tok.Kind {
	case token.LBrace:
		p.w.IndentPush()
		p.newline = true
	case token.Semicolon:
		p.newline = p.parens == 0
	case token.RBrace:
		p.newline = next.Kind != token.KwElse
	case token.LParen:
		p.parens++
	case token.RParen:
		if p.parens > 0 {
			p.parens--
		}
	}
	p.unary = isPrefixOp(tok) && !p.operandEnd()
	p.prev, p.hasPrev = tok, true
	p.afterOpen = tok.Kind == token.LBrace
}

// operandEnd: prev завершает операнд, значит следующий '-' бинарный.
func (p *printer) operandEnd() bool {
	if !p.hasPrev {
		return false
	}
	switch p.prev.Kind {
	case token.Ident, token.StringLit, token.NumberLit, token.KwTrue, token.KwFalse, token.RParen:
		return true
	}
	return false
}

func isPrefixOp(tok token.Token) bool {
	return tok.Kind == token.Minus || (tok.Kind == token.KwNot && tok.Text == "!")
}

func (p *printer) spaceBefore(tok token.Token) bool {
	if !p.hasPrev {
		return false
	}
	switch tok.Kind {
	case token.RParen, token.Comma, token.Semicolon, token.Dot, token.Colon:
		return false
	case token.LParen:
		// вызов и goto(...) пишутся слитно
		switch p.prev.Kind {
		case token.Ident, token.RParen, token.KwGoto:
			return false
		}
	}
	switch p.prev.Kind {
	case token.LParen, token.Dot:
		return false
	}
	return !p.unary
}
