package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bibi-cli/bibi/internal/storage"
	"github.com/bibi-cli/bibi/internal/task"
)

// taskFilter selects which tasks the TUI shows.
type taskFilter int

const (
	filterAll taskFilter = iota
	filterPending
	filterDone
)

// RunTUI starts the read-only task browser over the task file.
func RunTUI(ctx context.Context, store *storage.Store) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(store)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	store        *storage.Store
	loadErr      error
	tasks        []task.Task
	filter       taskFilter
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(store *storage.Store) *tuiModel {
	return &tuiModel{
		store:        store,
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = filterPending
			return m, nil
		case "2":
			m.filter = filterDone
			return m, nil
		case "0":
			m.filter = filterAll
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.tasks)
	writeFilterLine(&b, m.filter)
	writeTasks(&b, m.visibleTasks())
	b.WriteString(fmt.Sprintf("Task file: %s\n\n", m.store.Path()))
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func (m *tuiModel) refresh() {
	tasks, err := m.store.Load()
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		return
	}
	m.loadErr = nil
	m.tasks = tasks.Tasks()
}

// visibleTasks returns tasks matching the filter, paired with their
// original 1-based positions so numbering matches the repl.
func (m *tuiModel) visibleTasks() []task.Match {
	var visible []task.Match
	for i, t := range m.tasks {
		switch m.filter {
		case filterPending:
			if t.Done {
				continue
			}
		case filterDone:
			if !t.Done {
				continue
			}
		}
		visible = append(visible, task.Match{Index: i + 1, Task: t})
	}
	return visible
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeTitle(b *strings.Builder) {
	title := "bibi tasks"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, tasks []task.Task) {
	done := 0
	for _, t := range tasks {
		if t.Done {
			done++
		}
	}
	b.WriteString(fmt.Sprintf("  Total: %d  Pending: %d  Done: %d\n\n",
		len(tasks), len(tasks)-done, done))
}

func writeFilterLine(b *strings.Builder, filter taskFilter) {
	switch filter {
	case filterPending:
		b.WriteString("Filter: pending (0 to clear)\n\n")
	case filterDone:
		b.WriteString("Filter: done (0 to clear)\n\n")
	}
}

func writeTasks(b *strings.Builder, visible []task.Match) {
	if len(visible) == 0 {
		b.WriteString("  No tasks to show.\n\n")
		return
	}
	for _, m := range visible {
		b.WriteString(fmt.Sprintf("  %d. %s\n", m.Index, m.Task))
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh now\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Show pending tasks only\n")
	b.WriteString("  2            Show done tasks only\n")
	b.WriteString("  0            Show all tasks\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
