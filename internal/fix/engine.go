package fix

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"storyscript/internal/diag"
	"storyscript/internal/source"
)

// ErrNoFixes — ни одно исправление не применилось (или их не было).
var ErrNoFixes = errors.New("no applicable fixes found")

type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota // первое по позиции исправление
	ApplyModeAll
	ApplyModeID // только исправление с ApplyOptions.TargetID
)

type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	DryRun   bool // посчитать изменения, но не писать файлы
}

type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange — итог по одному файлу; Content заполнен и в dry-run.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

// FixID — стабильный идентификатор для --id: CODE-file-start-index.
// Не меняется между запусками, пока файл не отредактирован.
func FixID(d diag.Diagnostic, idx int) string {
	return fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
}

type candidate struct {
	id   string
	diag diag.Diagnostic
	fix  diag.Fix
}

// Apply применяет исправления из диагностик. Правки всех выбранных
// исправлений считаются в координатах исходного файла; исправление,
// пересекающееся с уже принятым, пропускается целиком.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	res := &ApplyResult{}
	if fs == nil {
		return res, errors.New("fix: FileSet is nil")
	}

	cands := collect(diagnostics, res)
	selected := pick(cands, opts, res)
	if len(selected) == 0 {
		return res, ErrNoFixes
	}

	ws := newWorkspace(fs)
	for _, c := range selected {
		if reason := ws.stage(c.fix.Edits); reason != "" {
			res.Skipped = append(res.Skipped, SkippedFix{ID: c.id, Title: c.fix.Title, Reason: reason})
			continue
		}
		res.Applied = append(res.Applied, AppliedFix{
			ID:          c.id,
			Title:       c.fix.Title,
			Code:        c.diag.Code,
			Message:     c.diag.Message,
			PrimaryPath: displayPath(fs, c.diag.Primary.File, "auto"),
			EditCount:   len(c.fix.Edits),
		})
	}
	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}

	changes, err := ws.commit(opts.DryRun)
	res.FileChanges = changes
	return res, err
}

// collect разворачивает Fixes всех диагностик в кандидатов, упорядоченных
// по позиции. Пустые исправления и повторные ID уходят в Skipped.
func collect(diagnostics []diag.Diagnostic, res *ApplyResult) []candidate {
	var cands []candidate
	seen := make(map[string]struct{})
	for _, d := range diagnostics {
		for i, f := range d.Fixes {
			id := FixID(d, i)
			reason := ""
			if len(f.Edits) == 0 {
				reason = "fix has no edits"
			} else if _, dup := seen[id]; dup {
				reason = "duplicate fix id"
			}
			if reason != "" {
				res.Skipped = append(res.Skipped, SkippedFix{ID: id, Title: f.Title, Reason: reason})
				continue
			}
			seen[id] = struct{}{}
			cands = append(cands, candidate{id: id, diag: d, fix: f})
		}
	}
	slices.SortStableFunc(cands, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		return cmp.Or(
			cmp.Compare(pa.File, pb.File),
			cmp.Compare(pa.Start, pb.Start),
			cmp.Compare(pa.End, pb.End),
			cmp.Compare(a.diag.Code, b.diag.Code),
			cmp.Compare(a.id, b.id),
		)
	})
	return cands
}

func pick(cands []candidate, opts ApplyOptions, res *ApplyResult) []candidate {
	if len(cands) == 0 {
		return nil
	}
	switch opts.Mode {
	case ApplyModeAll:
		return cands
	case ApplyModeOnce:
		return cands[:1]
	case ApplyModeID:
		if i := slices.IndexFunc(cands, func(c candidate) bool { return c.id == opts.TargetID }); i >= 0 {
			return cands[i : i+1]
		}
		res.Skipped = append(res.Skipped, SkippedFix{ID: opts.TargetID, Reason: "fix id not found"})
	}
	return nil
}

func displayPath(fs *source.FileSet, id source.FileID, mode string) string {
	f := fs.Get(id)
	if f == nil {
		return ""
	}
	return f.FormatPath(mode, fs.BaseDir())
}
