package source

import (
	"crypto/sha256"
	"os"
)

// FileSet владеет всеми файлами одного запуска. FileID — индекс в files,
// поэтому ID стабильны и никогда не переиспользуются. Повторное
// добавление того же пути создаёт новую версию; старая остаётся
// доступной по своему ID.
//
// FileSet не синхронизирован: драйвер сначала загружает все файлы,
// а параллельный разбор только читает.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string // "" — текущая директория
}

func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase задаёт директорию, от которой считаются
// относительные пути в диагностиках (корень проекта или каталог check).
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{latest: make(map[string]FileID), baseDir: baseDir}
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

// Add кладёт уже нормализованное содержимое и возвращает новый FileID.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	id := FileID(mustU32(len(fs.files)))
	path = normalizePath(path)
	fs.files = append(fs.files, File{
		ID:         id,
		Path:       path,
		Content:    content,
		LineStarts: lineStarts(content),
		Hash:       sha256.Sum256(content),
		Flags:      flags,
	})
	fs.latest[path] = id
	return id
}

// Load читает файл с диска, срезает BOM и приводит переводы строк к \n.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- путь задаёт пользователь CLI
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := normalize(raw)
	return fs.Add(path, content, flags), nil
}

// AddVirtual — файл из памяти (stdin, тесты). Содержимое не нормализуется.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get возвращает файл по ID или nil. Безопасен на nil FileSet.
func (fs *FileSet) Get(id FileID) *File {
	if fs == nil || int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// GetLatest — ID последней версии файла с данным путём.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// Resolve переводит оба конца span в строки и колонки.
// Для неизвестного файла возвращает нулевые позиции.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.Position(span.Start), f.Position(span.End)
}

// Location — начало span в виде file:line:col; неизвестный файл даёт 1:1 без пути.
func (fs *FileSet) Location(span Span) Location {
	f := fs.Get(span.File)
	if f == nil {
		return Location{Line: 1, Col: 1}
	}
	lc := f.Position(span.Start)
	return Location{File: f.Path, Line: lc.Line, Col: lc.Col}
}

// Len — число файлов вместе с устаревшими версиями.
func (fs *FileSet) Len() int {
	return len(fs.files)
}
