package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

type Format uint8

const (
	FormatAuto   Format = iota // по расширению --trace файла
	FormatText                 // для человека
	FormatNDJSON               // по объекту JSON на строку, для jq
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// время в текстовом формате отсчитывается от загрузки пакета,
// то есть фактически от старта storyc
var epoch = time.Now()

// FormatEvent сериализует событие с завершающим '\n'.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendNDJSON(nil, ev)
	}
	return appendText(nil, ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func appendNDJSON(dst []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format(time.RFC3339Nano),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		GID:      ev.GID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	if err != nil {
		// в событии только строки и числа; сюда не попадаем
		data = fmt.Appendf(nil, `{"name":%q,"error":%q}`, ev.Name, err.Error())
	}
	dst = append(dst, data...)
	return append(dst, '\n')
}

var kindMarks = [...]string{KindSpanBegin: "→ ", KindSpanEnd: "← ", KindPoint: "• ", KindHeartbeat: "♡ "}

// appendText: "[  12.345ms] g7   → parse (detail) {k=v}".
// Дочерние события сдвинуты на два пробела.
func appendText(dst []byte, ev *Event) []byte {
	var elapsed time.Duration
	if !ev.Time.IsZero() {
		elapsed = ev.Time.Sub(epoch)
	}
	dst = fmt.Appendf(dst, "[%9.3fms] ", float64(elapsed.Microseconds())/1000)
	if ev.GID != 0 {
		dst = fmt.Appendf(dst, "g%-4d", ev.GID)
	}
	if ev.ParentID != 0 {
		dst = append(dst, "  "...)
	}
	if int(ev.Kind) < len(kindMarks) {
		dst = append(dst, kindMarks[ev.Kind]...)
	}
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = fmt.Appendf(dst, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		pairs := make([]string, 0, len(ev.Extra))
		for _, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			pairs = append(pairs, k+"="+ev.Extra[k])
		}
		dst = fmt.Appendf(dst, " {%s}", strings.Join(pairs, ", "))
	}
	return append(dst, '\n')
}
