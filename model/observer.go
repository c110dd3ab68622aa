package model

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/miosa/osa-launch/msg"
	"github.com/miosa/osa-launch/style"
	"github.com/miosa/osa-launch/vm"
)

const maxHistory = 8

// ObserverModel renders one observer's received emissions, newest last.
type ObserverModel struct {
	id         int
	history    []vm.State
	received   int
	subscribed bool
	width      int
}

// NewObserver returns a panel for observer id (1-based for display).
func NewObserver(id int) ObserverModel {
	return ObserverModel{id: id, subscribed: true}
}

// Push records a received state. Only the last maxHistory are kept.
func (m *ObserverModel) Push(s vm.State) {
	m.history = append(m.history, s)
	m.received++
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

// History returns the retained emissions, oldest first.
func (m ObserverModel) History() []vm.State { return m.history }

// Received returns the total number of emissions seen.
func (m ObserverModel) Received() int { return m.received }

// SetSubscribed marks the panel as live or detached.
func (m *ObserverModel) SetSubscribed(v bool) { m.subscribed = v }

// IsSubscribed reports whether the observer is currently subscribed.
func (m ObserverModel) IsSubscribed() bool { return m.subscribed }

// SetWidth sets the outer width of the panel.
func (m *ObserverModel) SetWidth(w int) { m.width = w }

// Init satisfies tea.Model. No I/O required on start.
func (m ObserverModel) Init() tea.Cmd {
	return nil
}

// Update records StateChanged messages addressed to this observer.
func (m ObserverModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch v := message.(type) {
	case msg.StateChanged:
		if v.Observer == m.id {
			m.Push(v.State)
		}
	case msg.ObserverClosed:
		if v.Observer == m.id {
			m.subscribed = false
		}
	}
	return m, nil
}

// View renders the panel with a title, status line and history.
func (m ObserverModel) View() string {
	var b strings.Builder
	b.WriteString(style.ObserverTitle.Render(fmt.Sprintf("Observer %d", m.id)))
	b.WriteString("  ")
	if m.subscribed {
		b.WriteString(style.Faint.Render(fmt.Sprintf("live · %d received", m.received)))
	} else {
		b.WriteString(style.Hint.Render(fmt.Sprintf("unsubscribed · %d received", m.received)))
	}
	for _, s := range m.history {
		b.WriteByte('\n')
		b.WriteString(RenderState(s))
	}

	box := style.ObserverBorder
	if m.width > 2 {
		box = box.Width(m.width - 2)
	}
	return box.Render(b.String())
}

// RenderState formats a state as "icon label".
func RenderState(s vm.State) string {
	switch s.Kind {
	case vm.KindRunning:
		return style.StateRunning.Render("◼") + " running"
	case vm.KindFinished:
		return style.StateFinished.Render("✔") + " finished " + style.Faint.Render(truncate(s.Result, 24))
	case vm.KindFailed:
		return style.StateFailed.Render("✘") + " failed " + style.Faint.Render(truncate(errText(s.Err), 24))
	default:
		return style.StateWaiting.Render("◻") + " waiting"
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "…"
}
