package diag

import (
	"cmp"
	"math"
	"slices"

	"storyscript/internal/source"
)

// DefaultMaxDiagnostics — лимит Bag, если он не задан явно (--max-diagnostics).
const DefaultMaxDiagnostics = 100

// Bag — диагностики одного файла (или одного запуска) с верхним
// пределом. Переполнение не ошибка: лишнее отбрасывается, а парсер
// отдельно останавливается по своему MaxErrors.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag: max <= 0 означает DefaultMaxDiagnostics, больше MaxUint16 не бывает.
func NewBag(max int) *Bag {
	if max <= 0 {
		max = DefaultMaxDiagnostics
	}
	max = min(max, math.MaxUint16)
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   uint16(max), //nolint:gosec // ограничено выше
	}
}

// Add возвращает false, если лимит уже достигнут.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.max }
func (b *Bag) Len() int    { return len(b.items) }

// Items — внутренний срез без копии; вызывающий не должен его менять.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Count — число диагностик уровня sev и выше.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= sev {
			n++
		}
	}
	return n
}

func (b *Bag) HasErrors() bool   { return b.Count(SevError) > 0 }
func (b *Bag) HasWarnings() bool { return b.Count(SevWarning) > 0 }

// Merge дописывает чужие диагностики, при необходимости поднимая лимит.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	total := min(len(b.items)+len(other.items), math.MaxUint16)
	b.max = max(b.max, uint16(total)) //nolint:gosec // ограничено выше
	b.items = append(b.items, other.items...)
}

// compareDiagnostics задаёт порядок вывода: файл, начало, конец, затем
// более серьёзные раньше, затем по коду.
func compareDiagnostics(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Primary.File, b.Primary.File),
		cmp.Compare(a.Primary.Start, b.Primary.Start),
		cmp.Compare(a.Primary.End, b.Primary.End),
		cmp.Compare(b.Severity, a.Severity),
		cmp.Compare(a.Code, b.Code),
	)
}

// Sort упорядочивает диагностики детерминированно; равные сохраняют
// порядок появления.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, compareDiagnostics)
}

// Dedup оставляет первую диагностику для каждой пары (код, primary span).
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
