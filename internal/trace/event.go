package trace

import (
	"fmt"
	"strings"
	"time"
)

// Level — насколько подробно писать трейс. Каждый следующий уровень
// включает все scope предыдущего.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // только аварийные дампы кольцевого буфера
	LevelPhase        // driver + проходы lex/parse
	LevelDetail       // + отдельные файлы и попадания в кэш
	LevelDebug        // + события парсера (synchronize)
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// самый подробный scope, который пропускает уровень; 0 — ничего
var levelMaxScope = [...]Scope{0, 0, ScopePass, ScopeFile, ScopeNode}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit сообщает, пропускает ли уровень событие данного scope.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelMaxScope) {
		return false
	}
	return scope != 0 && scope <= levelMaxScope[l]
}

type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat // периодический сигнал «процесс жив»
)

var kindNames = [...]string{"unknown", "begin", "end", "point", "heartbeat"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[0]
}

// Scope — гранулярность события; меньшее значение означает более крупную операцию.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // check/parse/fmt целиком
	ScopePass                    // lex, parse одного файла
	ScopeFile                    // обработка файла в параллельном обходе
	ScopeNode                    // восстановление парсера
)

var scopeNames = [...]string{"unknown", "driver", "pass", "file", "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return scopeNames[0]
}

// Event — одна запись трейса. Seq назначает приёмник в момент записи,
// поэтому порядок в выводе совпадает с порядком Seq.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 для корневого span
	GID      uint64 // горутина, из которой пришло событие
	Name     string // "parse", "file", "synchronize"
	Detail   string
	Extra    map[string]string
}
