package dialect

import "storyscript/internal/source"

// Hint — один признак чужого диалекта: ключевое слово Python, стрелка
// Ink и т.п. Сам по себе это не диагностика; решение принимает Classifier.
type Hint struct {
	Dialect Kind
	Score   int
	Reason  string
	Span    source.Span
}

// Evidence копит признаки одного файла, пока лексер его сканирует.
// Все методы безопасны на nil: лексер без Evidence просто ничего не собирает.
type Evidence struct {
	hints  []Hint
	scores [kindCount]int
	first  [kindCount]int // индекс первого hint диалекта в hints, +1; 0 — нет
}

func NewEvidence() *Evidence {
	return &Evidence{hints: make([]Hint, 0, 16)}
}

// Add запоминает hint. Неположительный счёт и неизвестный диалект
// сохраняются в Hints, но на сумму не влияют.
func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
	if h.Score <= 0 || h.Dialect <= Unknown || h.Dialect >= kindCount {
		return
	}
	e.scores[h.Dialect] += h.Score
	if e.first[h.Dialect] == 0 {
		e.first[h.Dialect] = len(e.hints)
	}
}

func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}

// Score — сумма очков диалекта d.
func (e *Evidence) Score(d Kind) int {
	if e == nil || d <= Unknown || d >= kindCount {
		return 0
	}
	return e.scores[d]
}

// First — самый ранний засчитанный hint диалекта d; к нему драйвер
// привязывает подсказку.
func (e *Evidence) First(d Kind) (Hint, bool) {
	if e == nil || d <= Unknown || d >= kindCount || e.first[d] == 0 {
		return Hint{}, false
	}
	return e.hints[e.first[d]-1], true
}
