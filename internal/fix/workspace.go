package fix

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"storyscript/internal/diag"
	"storyscript/internal/source"
)

// workspace копит принятые правки по файлам. Файлы на диске
// не трогаются до commit.
type workspace struct {
	fs    *source.FileSet
	files map[source.FileID][]diag.FixEdit // в порядке принятия
}

func newWorkspace(fs *source.FileSet) *workspace {
	return &workspace{fs: fs, files: make(map[source.FileID][]diag.FixEdit)}
}

// stage принимает все правки одного исправления или ни одной.
// Непустая строка — причина отказа.
func (w *workspace) stage(edits []diag.FixEdit) string {
	for _, e := range edits {
		file := w.fs.Get(e.Span.File)
		switch {
		case file == nil:
			return "unknown target file"
		case file.Flags.Has(source.FileVirtual):
			return "target file is virtual"
		case e.Span.Start > e.Span.End || int(e.Span.End) > len(file.Content):
			return "edit span out of range"
		}
		for _, prev := range w.files[e.Span.File] {
			if spansConflict(prev, e) {
				return fmt.Sprintf("conflicts with previously applied edits in %s", displayPath(w.fs, e.Span.File, "auto"))
			}
		}
	}
	// правки внутри одного исправления тоже не должны пересекаться
	for i := range edits {
		for j := i + 1; j < len(edits); j++ {
			if edits[i].Span.File == edits[j].Span.File && spansConflict(edits[i], edits[j]) {
				return "fix edits overlap"
			}
		}
	}
	for _, e := range edits {
		w.files[e.Span.File] = append(w.files[e.Span.File], e)
	}
	return ""
}

// spansConflict: пересечение полуоткрытых интервалов. Две вставки
// не конфликтуют; вставка конфликтует с заменой, если попадает внутрь неё.
func spansConflict(a, b diag.FixEdit) bool {
	as, ae := a.Span.Start, a.Span.End
	bs, be := b.Span.Start, b.Span.End
	switch {
	case as == ae && bs == be:
		return false
	case as == ae:
		return bs <= as && as < be
	case bs == be:
		return as <= bs && bs < ae
	}
	return as < be && bs < ae
}

// render собирает новое содержимое: исходные байты между правками плюс
// NewText. Вставки в одну точку идут в порядке принятия.
func render(content []byte, edits []diag.FixEdit) []byte {
	ordered := slices.Clone(edits)
	slices.SortStableFunc(ordered, func(a, b diag.FixEdit) int {
		return cmp.Or(cmp.Compare(a.Span.Start, b.Span.Start), cmp.Compare(a.Span.End, b.Span.End))
	})
	out := make([]byte, 0, len(content)+8*len(ordered))
	at := uint32(0)
	for _, e := range ordered {
		out = append(out, content[at:e.Span.Start]...)
		out = append(out, e.NewText...)
		at = e.Span.End
	}
	return append(out, content[at:]...)
}

// commit пишет файлы по возрастанию FileID, сохраняя права доступа.
// Содержимое File в FileSet остаётся исходным.
func (w *workspace) commit(dryRun bool) ([]FileChange, error) {
	ids := make([]source.FileID, 0, len(w.files))
	for id := range w.files {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	changes := make([]FileChange, 0, len(ids))
	for _, id := range ids {
		file := w.fs.Get(id)
		edits := w.files[id]
		content := render(file.Content, edits)
		if !dryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, content, mode); err != nil {
				return changes, fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		changes = append(changes, FileChange{
			Path:      displayPath(w.fs, id, "relative"),
			EditCount: len(edits),
			Content:   content,
		})
	}
	return changes, nil
}
