package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/refcount"
	"github.com/wippyai/refcount/track"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	expiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// handleEntry is one live handle shown in the table. Exactly one of shared
// and weak is set.
type handleEntry struct {
	label  string
	target string
	shared *refcount.Shared[buffer]
	weak   *refcount.Weak[buffer]
}

type demoModel struct {
	input    textinput.Model
	recorder *track.Recorder
	counter  *track.Counter
	handles  []*handleEntry
	status   string
	errMsg   string
	nextNum  int
}

func newDemoModel() *demoModel {
	ti := textinput.New()
	ti.Placeholder = "new frame"
	ti.Prompt = "> "
	ti.Width = 48
	ti.Focus()

	m := &demoModel{
		input:    ti,
		recorder: track.NewRecorder(),
		counter:  track.NewCounter(),
		nextNum:  1,
	}
	refcount.Subscribe(m.recorder)
	refcount.Subscribe(m.counter)
	return m
}

func (m *demoModel) teardown() {
	for _, e := range m.handles {
		if e.shared != nil {
			e.shared.Release()
		} else {
			e.weak.Release()
		}
	}
	m.handles = nil
	refcount.Unsubscribe(m.recorder)
	refcount.Unsubscribe(m.counter)
}

func (m *demoModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.teardown()
			return m, tea.Quit

		case "enter":
			m.status, m.errMsg = "", ""
			m.execute(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *demoModel) execute(line string) {
	if line == "" {
		return
	}
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "new":
		if len(args) != 1 {
			m.errMsg = "usage: new <name>"
			return
		}
		s := refcount.NewShared(&buffer{name: args[0], data: make([]byte, 16)})
		m.add(args[0], s, nil)

	case "clone":
		e := m.find(args)
		if e == nil {
			return
		}
		if e.shared != nil {
			m.add(e.target, e.shared.Clone(), nil)
		} else {
			m.add(e.target, nil, e.weak.Clone())
		}

	case "downgrade":
		e := m.find(args)
		if e == nil {
			return
		}
		if e.shared == nil {
			m.errMsg = e.label + " is already an observer"
			return
		}
		m.add(e.target, nil, e.shared.Downgrade())

	case "lock":
		e := m.find(args)
		if e == nil {
			return
		}
		if e.weak == nil {
			m.errMsg = e.label + " is not an observer"
			return
		}
		s := e.weak.Lock()
		if s.Get() == nil {
			m.status = e.label + " is expired; lock failed"
			return
		}
		m.add(e.target, s, nil)

	case "reset":
		if len(args) < 1 || len(args) > 2 {
			m.errMsg = "usage: reset <handle> [name]"
			return
		}
		e := m.find(args[:1])
		if e == nil {
			return
		}
		if e.shared == nil {
			m.errMsg = e.label + " is not an owner"
			return
		}
		if len(args) == 2 {
			e.shared.Reset(&buffer{name: args[1], data: make([]byte, 16)})
			e.target = args[1]
			m.status = e.label + " now owns " + args[1]
		} else {
			e.shared.Reset(nil)
			m.remove(e)
			m.status = e.label + " reset to empty"
		}

	case "release":
		e := m.find(args)
		if e == nil {
			return
		}
		if e.shared != nil {
			e.shared.Release()
		} else {
			e.weak.Release()
		}
		m.remove(e)
		m.status = "released " + e.label

	default:
		m.errMsg = "commands: new clone downgrade lock reset release"
	}
}

func (m *demoModel) add(target string, s *refcount.Shared[buffer], w *refcount.Weak[buffer]) {
	e := &handleEntry{target: target, shared: s, weak: w}
	if s != nil {
		e.label = fmt.Sprintf("s%d", m.nextNum)
	} else {
		e.label = fmt.Sprintf("w%d", m.nextNum)
	}
	m.nextNum++
	m.handles = append(m.handles, e)
	m.status = "created " + e.label
}

func (m *demoModel) find(args []string) *handleEntry {
	if len(args) != 1 {
		m.errMsg = "expected a handle label"
		return nil
	}
	for _, e := range m.handles {
		if e.label == args[0] {
			return e
		}
	}
	m.errMsg = "no handle " + args[0]
	return nil
}

func (m *demoModel) remove(e *handleEntry) {
	for i, h := range m.handles {
		if h == e {
			m.handles = append(m.handles[:i], m.handles[i+1:]...)
			return
		}
	}
}

func (m *demoModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("refcount demo"))
	b.WriteString(fmt.Sprintf("  live blocks: %d  live values: %d\n\n",
		m.counter.LiveBlocks(), m.counter.LiveValues()))

	if len(m.handles) == 0 {
		b.WriteString("no handles; try: new frame\n")
	}
	for _, e := range m.handles {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-4s", e.label)))
		if e.shared != nil {
			b.WriteString(fmt.Sprintf("shared  %-10s ", e.target))
			b.WriteString(countStyle.Render(fmt.Sprintf("use=%d", e.shared.UseCount())))
		} else {
			b.WriteString(fmt.Sprintf("weak    %-10s ", e.target))
			if e.weak.Expired() {
				b.WriteString(expiredStyle.Render("expired"))
			} else {
				b.WriteString(countStyle.Render(fmt.Sprintf("use=%d", e.weak.UseCount())))
			}
		}
		b.WriteString("\n")
	}

	if events := m.recorder.Tail(5); len(events) > 0 {
		b.WriteString("\n")
		for _, e := range events {
			b.WriteString(eventStyle.Render(fmt.Sprintf("  %s block=%d", e.Kind, e.Block)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("new clone downgrade lock reset release • esc quit"))

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newDemoModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
