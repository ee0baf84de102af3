package dialect

// Classification — итог подсчёта: лидер, второй и доля лидера в общей сумме.
type Classification struct {
	Kind            Kind
	Score           int
	TotalScore      int
	Confidence      float64
	RunnerUp        Kind
	RunnerUpScore   int
	ObservedSignals int
}

// Classifier выбирает доминирующий диалект. Порог применяет вызывающий (Eligible).
type Classifier struct{}

func (Classifier) Classify(e *Evidence) Classification {
	c := Classification{ObservedSignals: len(e.Hints())}
	if c.ObservedSignals == 0 {
		return c
	}
	for k := Legacy; k < kindCount; k++ {
		score := e.Score(k)
		c.TotalScore += score
		switch {
		case score > c.Score:
			c.RunnerUp, c.RunnerUpScore = c.Kind, c.Score
			c.Kind, c.Score = k, score
		case score > c.RunnerUpScore:
			c.RunnerUp, c.RunnerUpScore = k, score
		}
	}
	if c.TotalScore > 0 {
		c.Confidence = float64(c.Score) / float64(c.TotalScore)
	}
	return c
}

// лидер должен опережать второго хотя бы на столько очков
const dominanceMargin = 2

// минимальный счёт, после которого подсказка имеет смысл; Ink и
// табличный диалект делят с StoryScript больше слов, поэтому порог выше
var thresholds = [kindCount]int{
	Legacy:     5,
	Ink:        5,
	Python:     4,
	JavaScript: 4,
}

func Threshold(kind Kind) int {
	if kind <= Unknown || kind >= kindCount {
		return 100
	}
	return thresholds[kind]
}

// Eligible: счёт дотянул до порога и лидер уверенно впереди.
func Eligible(c Classification) bool {
	if c.Kind == Unknown || c.Score < Threshold(c.Kind) {
		return false
	}
	return c.RunnerUpScore == 0 || c.Score >= c.RunnerUpScore+dominanceMargin
}
