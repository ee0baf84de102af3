package parser

import (
	"context"
	"strconv"

	"storyscript/internal/ast"
	"storyscript/internal/diag"
	"storyscript/internal/lexer"
	"storyscript/internal/source"
	"storyscript/internal/token"
	"storyscript/internal/trace"
)

type Options struct {
	MaxErrors     uint // 0 — без ограничения
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// ParseError is one recorded syntax error.
type ParseError struct {
	Location source.Location
	Span     source.Span
	Message  string
}

// Error renders the error as file:line:col: Error: message.
func (e ParseError) Error() string {
	return e.Location.String() + ": Error: " + e.Message
}

type Result struct {
	Program  ast.ProgramID
	Errors   []ParseError
	HadError bool
}

// Parser — состояние парсера на один файл.
// Один токен lookahead (current) и один lookback (previous).
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	opts     Options
	current  token.Token
	previous token.Token
	program  ast.ProgramID
	hadError bool
	errors   []ParseError
	tokens   int

	tracer trace.Tracer
	spanID uint64
}

// New creates a parser over lx and pulls the first token.
func New(lx *lexer.Lexer, arenas *ast.Builder, opts Options) *Parser {
	p := &Parser{
		lx:     lx,
		arenas: arenas,
		opts:   opts,
		tracer: trace.Nop,
	}
	p.advance()
	return p
}

// ParseFile — входная точка для разбора одного файла.
// Трейсер берётся из ctx; проход оборачивается в span "parse".
func ParseFile(ctx context.Context, lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID)

	p := New(lx, arenas, opts)
	p.tracer = tr
	p.spanID = span.ID()
	prog := p.Parse()

	span.WithExtra("file", lx.File().Path).
		WithExtra("tokens", strconv.Itoa(p.tokens)).
		WithExtra("errors", strconv.Itoa(len(p.errors))).
		End("")

	return Result{
		Program:  prog,
		Errors:   p.Diagnostics(),
		HadError: p.HadError(),
	}
}

// Parse разбирает весь файл и возвращает корень. Всегда возвращает дерево;
// после ошибок оно может быть неполным — смотрите HadError.
// Повторный вызов возвращает тот же ProgramID.
func (p *Parser) Parse() ast.ProgramID {
	if p.program.IsValid() {
		return p.program
	}
	start := p.current.Span
	p.program = p.arenas.NewProgram(start)
	for !p.check(token.EOF) {
		p.parseTopLevel()
	}
	p.arenas.SetProgramSpan(p.program, start.Cover(p.current.Span))
	return p.program
}

// HadError reports whether any syntax error was recorded.
func (p *Parser) HadError() bool {
	return p.hadError
}

// Diagnostics returns a copy of the recorded syntax errors in source order of detection.
func (p *Parser) Diagnostics() []ParseError {
	return append([]ParseError(nil), p.errors...)
}

// parseTopLevel — граница ошибок: если конструкция сорвалась, синхронизируемся
// и продолжаем со следующей.
func (p *Parser) parseTopLevel() {
	switch {
	case p.match(token.KwRoom):
		if id, ok := p.parseRoom(); ok {
			p.arenas.PushRoom(p.program, id)
			return
		}
	case p.match(token.KwFunction):
		if id, ok := p.parseFunction(); ok {
			p.arenas.PushFunction(p.program, id)
			return
		}
	default:
		if id, ok := p.parseStatement(); ok {
			p.arenas.PushStmt(p.program, id)
			return
		}
	}
	p.synchronize()
}
