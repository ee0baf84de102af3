package diagfmt

import (
	"fmt"
	"strings"

	"storyscript/internal/diag"
	"storyscript/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, fmt.Errorf("nil FileSet")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}

	startPos, endPos := fs.Resolve(edit.Span)
	startLine := startPos.Line
	endLine := endPos.Line
	if endLine < startLine {
		endLine = startLine
	}

	blockStart, blockEnd := previewBlock(file, startLine, endLine)

	original := make([]byte, blockEnd-blockStart)
	copy(original, file.Content[blockStart:blockEnd])

	relStart := int(edit.Span.Start - blockStart)
	relEnd := int(edit.Span.End - blockStart)

	if relStart < 0 || relStart > len(original) {
		return fixEditPreview{}, fmt.Errorf("edit span start %d out of range for preview block", relStart)
	}
	if relEnd < relStart || relEnd > len(original) {
		return fixEditPreview{}, fmt.Errorf("edit span end %d out of range for preview block", relEnd)
	}

	after := make([]byte, 0, len(original)+len(edit.NewText))
	after = append(after, original[:relStart]...)
	after = append(after, edit.NewText...)
	after = append(after, original[relEnd:]...)

	return fixEditPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := string(content)
	// завершающий '\n' не даёт лишней пустой строки
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

// previewBlock — байты целых строк first..last включая завершающий '\n'
// последней строки. Строки за концом файла прижимаются к концу.
func previewBlock(f *source.File, first, last uint32) (start, end uint32) {
	_, eof, _ := f.LineRange(f.LineCount())
	start, _, ok := f.LineRange(first)
	if !ok {
		return eof, eof
	}
	if _, end, ok = f.LineRange(last); !ok {
		end = eof
	}
	return start, max(end, start)
}
