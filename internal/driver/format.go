package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"storyscript/internal/format"
	"storyscript/internal/source"
	"storyscript/internal/trace"
)

// ErrParseErrors is returned for files that cannot be formatted because they
// do not parse cleanly.
var ErrParseErrors = errors.New("format: parse errors present")

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check          bool
	MaxDiagnostics int
	Options        format.Options
	Stdout         bool
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// FormatPaths форматирует файлы и каталоги (рекурсивно, только *.story).
// В режиме Check файлы не меняются, Changed говорит, изменил бы их fmt.
// В режиме Stdout результат возвращается в Formatted, диск не трогается.
// Файлы с синтаксическими ошибками не форматируются: Err оборачивает ErrParseErrors.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "format_paths")
	defer span.End("")

	files, err := collectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, formatOne(ctx, path, opts))
	}
	return results, nil
}

func formatOne(ctx context.Context, path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}
	formatted, changed, err := formatSingleFile(ctx, path, opts)
	switch {
	case err != nil:
		res.Err = err
	case opts.Check:
		res.Changed = changed
	case opts.Stdout:
		res.Formatted, res.Changed = formatted, changed
	case changed:
		res.Err = rewriteFile(path, formatted)
		res.Changed = res.Err == nil
	}
	return res
}

// rewriteFile сохраняет права исходного файла.
func rewriteFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, content, mode)
}

func formatSingleFile(ctx context.Context, path string, opts FormatOptions) (formatted []byte, changed bool, err error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, false, err
	}
	sf := fileSet.Get(fileID)

	if res := parseLoaded(ctx, fileSet, sf, opts.MaxDiagnostics); res.Failed {
		return nil, false, firstErrorf(fileSet, res)
	}
	if formatted, err = format.FormatFile(sf, opts.Options); err != nil {
		return nil, false, err
	}

	// Load нормализует CRLF/BOM: такие файлы всегда считаем изменёнными
	normalized := sf.Flags.Has(source.FileHadBOM) || sf.Flags.Has(source.FileNormalizedCRLF)
	return formatted, normalized || !bytes.Equal(sf.Content, formatted), nil
}

// firstErrorf оборачивает ErrParseErrors первой ошибкой файла.
func firstErrorf(fileSet *source.FileSet, res *ParseResult) error {
	for _, d := range res.Bag.Items() {
		if d.IsError() {
			return fmt.Errorf("%w: %s: %s", ErrParseErrors, fileSet.Location(d.Primary), d.Message)
		}
	}
	return ErrParseErrors
}

// collectSourceFiles раскрывает каталоги; явно указанные файлы берутся
// только с расширением .story. Результат отсортирован и без повторов.
func collectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	set := make(map[string]struct{})
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if filepath.Ext(p) == SourceExt {
				set[p] = struct{}{}
			}
			continue
		}
		listed, err := ListSourceFiles(p)
		if err != nil {
			return nil, err
		}
		for _, f := range listed {
			set[f] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set)), nil
}
