package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"storyscript/internal/diag"
	"storyscript/internal/source"
	"storyscript/internal/token"
	"storyscript/internal/trace"
)

// SourceExt — расширение исходников StoryScript.
const SourceExt = ".story"

// DirOptions настраивает параллельную обработку каталога.
type DirOptions struct {
	MaxDiagnostics int
	Jobs           int        // <= 0 — GOMAXPROCS
	Cache          *DiskCache // nil — без кэша
	// OnFile вызывается из рабочих горутин после каждого файла.
	OnFile func(FileEvent)
}

// FileEvent сообщает о завершении обработки одного файла.
type FileEvent struct {
	Path   string
	Done   int
	Total  int
	Failed bool
	Cached bool
	Errors int // диагностики уровня error в файле
}

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // Путь к файлу
	FileID source.FileID // ID файла в FileSet
	Tokens []token.Token // Токены файла
	Bag    *diag.Bag     // Диагностики
}

// ListSourceFiles возвращает отсортированный список всех *.story файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// preload загружает все файлы последовательно: дальше FileSet только читается.
// Для незагрузившегося файла регистрируется пустой виртуальный файл, чтобы
// диагностике было к чему привязать спан.
func preload(dir string, files []string) (*source.FileSet, map[string]source.FileID, map[string]error) {
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			// Сохраняем ошибку загрузки для последующей обработки
			loadErrors[path] = err
			fileID = fileSet.AddVirtual(path, nil)
		}
		fileIDs[path] = fileID
	}
	return fileSet, fileIDs, loadErrors
}

func loadErrorBag(fileID source.FileID, maxDiagnostics int, err error) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	sp := source.Span{File: fileID}
	bag.Add(diag.NewError(diag.IOLoadFileError, sp, "failed to load file: "+err.Error()))
	return bag
}

func jobLimit(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(min(jobs, files), 1)
}

// TokenizeDir токенизирует все *.story файлы в директории параллельно
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "tokenize_dir")
	defer span.End("")

	fileSet, fileIDs, loadErrors := preload(dir, files)

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				results[i] = TokenizeDirResult{Path: path, FileID: fileIDs[path], Bag: loadErrorBag(fileIDs[path], maxDiagnostics, loadErr)}
				return nil
			}

			fileID := fileIDs[path]
			bag := diag.NewBag(maxDiagnostics)
			tokens := lexFile(gctx, fileSet.Get(fileID), bag)
			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Tokens: tokens,
				Bag:    bag,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// ParseDir парсит все *.story файлы в директории параллельно.
// Порядок результатов совпадает с отсортированным списком путей.
func ParseDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []*ParseResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "parse_dir", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")

	fileSet, fileIDs, loadErrors := preload(dir, files)

	results := make([]*ParseResult, len(files))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			fileSpan := trace.Begin(tr, trace.ScopeFile, "file", span.ID()).WithExtra("path", path)
			fctx := trace.WithSpanContext(gctx, trace.SpanContext{SpanID: fileSpan.ID()})

			var res *ParseResult
			if loadErr, hadError := loadErrors[path]; hadError {
				res = &ParseResult{
					Path:    path,
					FileSet: fileSet,
					Bag:     loadErrorBag(fileIDs[path], opts.MaxDiagnostics, loadErr),
					Failed:  true,
				}
			} else {
				res = parseCached(fctx, fileSet, fileSet.Get(fileIDs[path]), opts)
			}
			results[i] = res
			fileSpan.End("")

			if opts.OnFile != nil {
				opts.OnFile(FileEvent{
					Path:   path,
					Done:   int(done.Add(1)),
					Total:  len(files),
					Failed: res.Failed,
					Cached: res.Cached,
					Errors: res.Bag.Count(diag.SevError),
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// parseCached сначала смотрит в кэш; промах разбирает файл и сохраняет результат.
// Ошибки кэша не фатальны: они только попадают в трассу.
func parseCached(ctx context.Context, fs *source.FileSet, file *source.File, opts DirOptions) *ParseResult {
	if opts.Cache == nil {
		return parseLoaded(ctx, fs, file, opts.MaxDiagnostics)
	}
	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	key := KeyFor(file, opts.MaxDiagnostics)
	var payload DiskPayload
	hit, err := opts.Cache.Get(key, &payload)
	if err != nil {
		trace.Point(tr, trace.ScopeFile, "cache_error", err.Error(), parent)
	}
	if hit {
		trace.Point(tr, trace.ScopeFile, "cache_hit", file.Path, parent)
		return &ParseResult{
			Path:    file.Path,
			FileSet: fs,
			File:    file,
			Bag:     restoreBag(&payload, file.ID, opts.MaxDiagnostics),
			Failed:  payload.Failed,
			Cached:  true,
		}
	}

	res := parseLoaded(ctx, fs, file, opts.MaxDiagnostics)
	if err := opts.Cache.Put(key, payloadFromResult(res)); err != nil {
		trace.Point(tr, trace.ScopeFile, "cache_error", err.Error(), parent)
	}
	return res
}
