package source

import (
	"bytes"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalize срезает BOM и заменяет \r\n на \n. Одиночный \r остаётся:
// лексер считает его пробелом. Возвращённые флаги нужны fmt, чтобы
// понять, изменится ли файл при перезаписи.
func normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

// normalizePath даёт одинаковый вид путей на всех платформах (для golden-файлов и кэша).
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

func RelativePath(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return path, err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return path, err
	}
	return filepath.ToSlash(rel), nil
}

func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}
	return filepath.ToSlash(abs), nil
}

func BaseName(path string) string {
	return filepath.Base(path)
}
