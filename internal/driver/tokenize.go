package driver

import (
	"context"
	"strconv"

	"storyscript/internal/diag"
	"storyscript/internal/lexer"
	"storyscript/internal/source"
	"storyscript/internal/token"
	"storyscript/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize загружает файл и прогоняет по нему лексер до EOF.
func Tokenize(ctx context.Context, path string, maxDiagnostics int) (*TokenizeResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "tokenize", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
	tokens := lexFile(ctx, file, bag)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// lexFile — проход "lex": все токены файла, включая EOF.
func lexFile(ctx context.Context, file *source.File, bag *diag.Bag) []token.Token {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", trace.CurrentSpan(ctx).SpanID)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	tokens := lx.Tokenize()
	span.WithExtra("file", file.Path).
		WithExtra("tokens", strconv.Itoa(len(tokens))).
		End("")
	return tokens
}
