package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"

	"storyscript/internal/driver"
)

func newTestModel(files ...string) (*progressModel, chan driver.FileEvent) {
	events := make(chan driver.FileEvent, len(files))
	m := NewProgressModel("checking", "/proj", files, events).(*progressModel)
	return m, events
}

func TestProgressModel_ApplyEvents(t *testing.T) {
	m, _ := newTestModel("/proj/a.story", "/proj/sub/b.story", "/proj/c.story")

	m.Update(eventMsg(driver.FileEvent{Path: "/proj/sub/b.story", Failed: true, Errors: 3}))
	m.Update(eventMsg(driver.FileEvent{Path: "/proj/c.story", Cached: true}))
	m.Update(eventMsg(driver.FileEvent{Path: "/elsewhere.story"}))

	want := []fileStatus{statusQueued, statusFailed, statusCached}
	for i, s := range want {
		if m.items[i].status != s {
			t.Fatalf("item %d: got %v, want %v", i, m.items[i].status, s)
		}
	}
	if m.completed() != 2 || m.counts[statusFailed] != 1 {
		t.Fatalf("completed=%d failed=%d", m.completed(), m.counts[statusFailed])
	}

	view := m.View()
	if !strings.Contains(view, "checking (2/3), 1 failed") {
		t.Fatalf("header missing from view:\n%s", view)
	}
	if !strings.Contains(view, "3 err") {
		t.Fatalf("failed file must show its error count:\n%s", view)
	}
	if !strings.Contains(view, "sub/b.story") || strings.Contains(view, "/proj/") {
		t.Fatalf("names must be relative to base:\n%s", view)
	}
}

func TestProgressModel_DoneOnClose(t *testing.T) {
	m, events := newTestModel("/proj/a.story")
	close(events)

	msg := m.waitEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if cmd == nil || !m.done {
		t.Fatal("expected quit command after done")
	}
	if !strings.Contains(m.View(), "done: checking") {
		t.Fatalf("unexpected view:\n%s", m.View())
	}
	// после завершения спиннер не тикает
	if _, cmd := m.Update(spinner.TickMsg{}); cmd != nil {
		t.Fatal("spinner must stop after done")
	}
}

func TestProgressModel_EmptyView(t *testing.T) {
	m, _ := newTestModel()
	if m.View() != "" {
		t.Fatal("empty model must render nothing")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"averyverylongname", 10, "averyve..."},
		{"abcdef", 3, "abc"},
		{"日本語テキスト", 7, "日本..."},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestProgressModel_CollapsesLongLists(t *testing.T) {
	files := make([]string, maxRows+5)
	for i := range files {
		files[i] = fmt.Sprintf("/proj/f%02d.story", i)
	}
	m, _ := newTestModel(files...)
	last := files[len(files)-1]
	m.Update(eventMsg(driver.FileEvent{Path: last, Failed: true, Errors: 1}))

	view := m.View()
	if !strings.Contains(view, "f16.story") {
		t.Fatalf("failed file must stay visible:\n%s", view)
	}
	if !strings.Contains(view, "… 5 more") {
		t.Fatalf("hidden rows must be summarised:\n%s", view)
	}
}
