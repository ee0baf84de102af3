package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"storyscript/internal/ast"
	"storyscript/internal/diag"
	"storyscript/internal/dialect"
	"storyscript/internal/lexer"
	"storyscript/internal/parser"
	"storyscript/internal/source"
	"storyscript/internal/trace"
)

type ParseResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File // nil, если файл не загрузился
	Builder *ast.Builder // nil для результата из кэша
	Program ast.ProgramID
	Errors  []parser.ParseError
	Bag     *diag.Bag
	Failed  bool // были ошибки лексера, парсера или I/O
	Cached  bool
}

// Parse загружает и разбирает один файл.
func Parse(ctx context.Context, path string, maxDiagnostics int) (*ParseResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "parse_file")
	defer span.End("")

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}

	res := parseLoaded(ctx, fs, fs.Get(fileID), maxDiagnostics)
	return res, nil
}

// ParseSource разбирает содержимое из памяти (stdin, тесты).
func ParseSource(ctx context.Context, name string, content []byte, maxDiagnostics int) *ParseResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseLoaded(ctx, fs, fs.Get(fileID), maxDiagnostics)
}

// parseLoaded — разбор уже загруженного файла. Безопасен для параллельного
// вызова на одном FileSet: FileSet только читается.
func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, maxDiagnostics int) *ParseResult {
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	evidence := dialect.NewEvidence()
	lx := lexer.New(file, lexer.Options{Reporter: rep, DialectEvidence: evidence})
	builder := ast.NewBuilder(ast.HintsForSize(len(file.Content)))

	opts := parser.Options{
		Reporter:  rep,
		MaxErrors: maxErrorsFor(maxDiagnostics),
	}
	result := parser.ParseFile(ctx, lx, builder, opts)
	emitAlienHints(rep, bag, evidence)
	bag.Sort()

	return &ParseResult{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Builder: builder,
		Program: result.Program,
		Errors:  result.Errors,
		Bag:     bag,
		Failed:  result.HadError || bag.HasErrors(),
	}
}

func maxErrorsFor(maxDiagnostics int) uint {
	if maxDiagnostics <= 0 {
		return 0
	}
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	return maxErrors
}
