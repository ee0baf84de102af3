package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"storyscript/internal/driver"
)

type fileStatus uint8

const (
	statusQueued fileStatus = iota
	statusOK
	statusCached
	statusFailed
)

var statusNames = [...]string{"queued", "ok", "cached", "failed"}

func (s fileStatus) String() string { return statusNames[s] }

// сколько строк файлов держим на экране; остальные сворачиваются в «… N more»
const maxRows = 12

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = [...]lipgloss.Style{
		statusQueued: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		statusOK:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		statusCached: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		statusFailed: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

type fileItem struct {
	name   string
	status fileStatus
	errors int
}

type progressModel struct {
	title   string
	events  <-chan driver.FileEvent
	spinner spinner.Model
	bar     progress.Model
	items   []fileItem
	index   map[string]int
	counts  [len(statusNames)]int
	width   int
	done    bool
}

type (
	eventMsg driver.FileEvent
	doneMsg  struct{}
)

// NewProgressModel — модель Bubble Tea для storyc check по каталогу.
// Пути показываются относительно base; модель завершается, когда
// events закрыт.
func NewProgressModel(title, base string, files []string, events <-chan driver.FileEvent) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		items:   make([]fileItem, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, path := range files {
		m.items[i] = fileItem{name: relativeTo(base, path)}
		m.index[path] = i
	}
	m.counts[statusQueued] = len(files)
	return m
}

func relativeTo(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitEvent())
}

func (m *progressModel) waitEvent() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.record(driver.FileEvent(msg)), m.waitEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// record обновляет статус файла; события для чужих путей игнорируются.
func (m *progressModel) record(ev driver.FileEvent) tea.Cmd {
	i, ok := m.index[ev.Path]
	if !ok {
		return nil
	}
	status := statusOK
	if ev.Failed {
		status = statusFailed
	} else if ev.Cached {
		status = statusCached
	}
	item := &m.items[i]
	m.counts[item.status]--
	m.counts[status]++
	item.status, item.errors = status, ev.Errors
	return m.bar.SetPercent(float64(m.completed()) / float64(len(m.items)))
}

func (m *progressModel) completed() int {
	return len(m.items) - m.counts[statusQueued]
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.completed(), len(m.items))
	if n := m.counts[statusFailed]; n > 0 {
		header += fmt.Sprintf(", %d failed", n)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-14, 20)
	rows := m.visibleRows()
	for _, i := range rows {
		it := m.items[i]
		label := it.status.String()
		if it.status == statusFailed && it.errors > 0 {
			label = fmt.Sprintf("%d err", it.errors)
		}
		fmt.Fprintf(&b, "  %s %s\n", statusStyle[it.status].Render(fmt.Sprintf("%8s", label)), truncate(it.name, nameWidth))
	}
	if hidden := len(m.items) - len(rows); hidden > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  … %d more", hidden)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visibleRows: упавшие файлы всегда видны, остальные по порядку,
// пока хватает места.
func (m *progressModel) visibleRows() []int {
	if len(m.items) <= maxRows {
		rows := make([]int, len(m.items))
		for i := range rows {
			rows[i] = i
		}
		return rows
	}
	rows := make([]int, 0, maxRows)
	for i, it := range m.items {
		if it.status == statusFailed && len(rows) < maxRows {
			rows = append(rows, i)
		}
	}
	for i, it := range m.items {
		if len(rows) >= maxRows {
			break
		}
		if it.status != statusFailed {
			rows = append(rows, i)
		}
	}
	return rows
}

func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
