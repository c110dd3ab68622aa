package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/miosa/osa-launch/style"
)

// ToastLevel classifies toast severity.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastWarning
	ToastError
)

const maxToasts = 3

// ttl returns how long a toast of this level stays visible.
func (l ToastLevel) ttl() time.Duration {
	switch l {
	case ToastError:
		return 8 * time.Second
	case ToastWarning:
		return 5 * time.Second
	default:
		return 3 * time.Second
	}
}

type toast struct {
	message string
	level   ToastLevel
	repeats int
	expiry  time.Time
}

// ToastsModel holds launch and failure notices, newest last.
type ToastsModel struct {
	queue []toast
	now   func() time.Time
}

// NewToasts creates an empty ToastsModel.
func NewToasts() ToastsModel {
	return ToastsModel{now: time.Now}
}

// Add enqueues a notice. Repeating the newest notice bumps its counter and
// expiry instead of stacking a copy. Oldest notices are dropped past
// maxToasts.
func (m *ToastsModel) Add(message string, level ToastLevel) {
	expiry := m.clock().Add(level.ttl())
	if n := len(m.queue); n > 0 {
		last := &m.queue[n-1]
		if last.message == message && last.level == level {
			last.repeats++
			last.expiry = expiry
			return
		}
	}
	m.queue = append(m.queue, toast{message: message, level: level, expiry: expiry})
	if len(m.queue) > maxToasts {
		m.queue = m.queue[len(m.queue)-maxToasts:]
	}
}

// Tick prunes expired toasts. Call on every msg.TickMsg.
func (m *ToastsModel) Tick() {
	now := m.clock()
	alive := m.queue[:0]
	for _, t := range m.queue {
		if now.Before(t.expiry) {
			alive = append(alive, t)
		}
	}
	m.queue = alive
}

// Len reports how many toasts are visible.
func (m ToastsModel) Len() int {
	return len(m.queue)
}

// View renders visible notices as right-aligned colored lines.
func (m ToastsModel) View(termWidth int) string {
	if len(m.queue) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.queue))
	for _, t := range m.queue {
		icon, color := toastIconColor(t.level)
		text := t.message
		if t.repeats > 0 {
			text = fmt.Sprintf("%s (\u00D7%d)", text, t.repeats+1)
		}
		rendered := lipgloss.NewStyle().
			Foreground(color).
			Render(fmt.Sprintf(" %s %s ", icon, text))
		pad := max(termWidth-lipgloss.Width(rendered), 0)
		lines = append(lines, strings.Repeat(" ", pad)+rendered)
	}
	return strings.Join(lines, "\n")
}

func (m ToastsModel) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

func toastIconColor(level ToastLevel) (string, lipgloss.TerminalColor) {
	switch level {
	case ToastWarning:
		return "\u26A0", style.Warning // ⚠
	case ToastError:
		return "\u2718", style.Error // ✘
	default:
		return "\u25B8", style.Secondary // ▸
	}
}
