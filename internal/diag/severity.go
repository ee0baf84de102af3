package diag

import (
	"fmt"
	"strings"
)

// Severity — важность диагностики. Порядок значений важен: Bag.HasErrors и
// сортировка сравнивают уровни через >=.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String — верхний регистр, как в JSON и pretty-выводе.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Title — "Error", "Warning", "Info" для однострочных форматов
// (file:line:col: Error: message).
func (s Severity) Title() string {
	switch s {
	case SevError:
		return "Error"
	case SevWarning:
		return "Warning"
	default:
		return "Info"
	}
}

// ParseSeverity принимает имя уровня без учёта регистра ("error", "WARNING", "info").
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return SevInfo, nil
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return SevInfo, fmt.Errorf("unknown severity %q", name)
}
