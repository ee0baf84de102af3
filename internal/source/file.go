package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
)

type (
	FileID    uint32
	FileFlags uint8
)

const (
	FileVirtual        FileFlags = 1 << iota // добавлен не с диска (тест, stdin, ошибка загрузки)
	FileHadBOM                               // при загрузке срезан UTF-8 BOM
	FileNormalizedCRLF                       // \r\n заменены на \n
)

func (f FileFlags) Has(flag FileFlags) bool { return f&flag != 0 }

// File — нормализованное содержимое одного .story файла. Все смещения
// в Span отсчитываются от Content, а не от байтов на диске.
type File struct {
	ID         FileID
	Path       string
	Content    []byte
	LineStarts []uint32 // LineStarts[i] — смещение начала строки i+1; всегда есть 0
	Hash       [32]byte
	Flags      FileFlags
}

// LineCol — позиция для людей. Обе координаты с 1, колонка в байтах.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Location — позиция вместе с путём файла, печатается как file:line:col.
type Location struct {
	File string
	Line uint32
	Col  uint32
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

func lineStarts(content []byte) []uint32 {
	starts := make([]uint32, 1, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, mustU32(i+1))
		}
	}
	return starts
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("source offset overflow: %w", err))
	}
	return v
}

// LineCount — число строк; файл, оканчивающийся на '\n', имеет
// последнюю пустую строку.
func (f *File) LineCount() uint32 {
	return mustU32(len(f.LineStarts))
}

// LineRange возвращает смещение начала строки и начала следующей
// (или конец файла для последней). Для несуществующей строки ok=false.
func (f *File) LineRange(line uint32) (start, next uint32, ok bool) {
	if line == 0 || line > f.LineCount() {
		return 0, 0, false
	}
	start = f.LineStarts[line-1]
	if line < f.LineCount() {
		return start, f.LineStarts[line], true
	}
	return start, mustU32(len(f.Content)), true
}

// Position переводит смещение в LineCol. Смещения за концом файла
// прижимаются к последней строке.
func (f *File) Position(off uint32) LineCol {
	if len(f.LineStarts) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	// первая строка, начинающаяся правее off, минус один
	i := sort.Search(len(f.LineStarts), func(i int) bool { return f.LineStarts[i] > off }) - 1
	i = max(i, 0)
	return LineCol{Line: mustU32(i + 1), Col: off - f.LineStarts[i] + 1}
}

// GetLine возвращает текст строки (с 1) без завершающего '\n';
// для несуществующей строки — "".
func (f *File) GetLine(line uint32) string {
	start, next, ok := f.LineRange(line)
	if !ok {
		return ""
	}
	if next > start && f.Content[next-1] == '\n' {
		next--
	}
	return string(f.Content[start:next])
}

// FormatPath печатает путь файла в одном из режимов:
// "absolute", "relative" (к baseDir или cwd), "basename", "auto".
// auto оставляет относительные и короткие пути как есть.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd() //nolint:errcheck
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
