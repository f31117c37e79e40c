package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"darwin/internal/driver"
)

// maxActiveRows ограничивает число файлов "в работе" на экране
const maxActiveRows = 8

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	total   int
	status  map[string]driver.Status
	active  []string // файлы в работе, в порядке начала
	counts  map[driver.Status]int
	tokens  int
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders tokenization
// progress for files. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	status := make(map[string]driver.Status, len(files))
	for _, f := range files {
		status[f] = driver.StatusQueued
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		total:   len(files),
		status:  status,
		counts:  map[driver.Status]int{driver.StatusQueued: len(files)},
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(10, msg.Width-4)
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) finished() int {
	return m.counts[driver.StatusDone] + m.counts[driver.StatusCached] + m.counts[driver.StatusError]
}

func (m *progressModel) View() string {
	if m.total == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d files, %d tokens", m.title, m.finished(), m.total, m.tokens)
	if n := m.counts[driver.StatusCached]; n > 0 {
		header += fmt.Sprintf(", %d cached", n)
	}
	if n := m.counts[driver.StatusError]; n > 0 {
		header += fmt.Sprintf(", %d failed", n)
	}
	header += ")"
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(20, m.width-16)
	for i, path := range m.active {
		if i == maxActiveRows {
			fmt.Fprintf(&b, "  %12s +%d more\n", "", len(m.active)-maxActiveRows)
			break
		}
		label := styleStatus(driver.StatusWorking).Render(fmt.Sprintf("%12s", "scanning"))
		fmt.Fprintf(&b, "  %s %s\n", label, truncate(path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent переводит файл в новое состояние и обновляет полосу прогресса.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	prev, ok := m.status[ev.File]
	if !ok || prev == ev.Status {
		return nil
	}
	m.counts[prev]--
	m.counts[ev.Status]++
	m.status[ev.File] = ev.Status

	switch {
	case ev.Status == driver.StatusWorking:
		m.active = append(m.active, ev.File)
	case ev.Terminal():
		m.active = slices.DeleteFunc(m.active, func(p string) bool { return p == ev.File })
		m.tokens += ev.Tokens
	}

	if m.total == 0 {
		return nil
	}
	return m.prog.SetPercent(float64(m.finished()) / float64(m.total))
}

func styleStatus(status driver.Status) lipgloss.Style {
	switch status {
	case driver.StatusDone, driver.StatusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case driver.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case driver.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
