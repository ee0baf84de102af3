package diag

import (
	"sync"

	"storyscript/internal/source"
)

// DedupReporter отбрасывает повторы: один и тот же код на одном и том же
// спане с тем же текстом. Лексер и восстановление парсера могут дважды
// наткнуться на один токен (например, при повторном Peek после
// synchronize), пользователю нужна одна строка.
//
// Безопасен для конкурентного использования.
type DedupReporter struct {
	next Reporter

	mu         sync.Mutex
	seen       map[dedupKey]struct{}
	suppressed int
}

type dedupKey struct {
	code Code
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil {
		return
	}
	// severity не входит в ключ: info и error с одним текстом на одном месте
	// всё равно дубль, первым побеждает тот, кто пришёл раньше.
	key := dedupKey{code: code, span: primary, msg: msg}
	r.mu.Lock()
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		r.mu.Unlock()
		return
	}
	r.seen[key] = struct{}{}
	r.mu.Unlock()

	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}

// Suppressed — сколько повторов было отброшено.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.suppressed
}
