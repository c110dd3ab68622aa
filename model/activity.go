package model

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/miosa/osa-launch/style"
)

// ActivityModel renders a spinner and elapsed timer while a computation runs.
type ActivityModel struct {
	sp        spinner.Model
	active    bool
	startTime time.Time
	now       func() time.Time
}

// NewActivity constructs an ActivityModel with a Dot spinner.
func NewActivity() ActivityModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = style.SpinnerStyle
	return ActivityModel{sp: sp, now: time.Now}
}

// Start activates the display and resets the elapsed timer.
func (m *ActivityModel) Start() {
	m.active = true
	m.startTime = m.now()
}

// Stop hides the display.
func (m *ActivityModel) Stop() {
	m.active = false
}

// IsActive reports whether the spinner is shown.
func (m ActivityModel) IsActive() bool { return m.active }

// Elapsed returns the time since Start, or zero when inactive.
func (m ActivityModel) Elapsed() time.Duration {
	if !m.active {
		return 0
	}
	return m.now().Sub(m.startTime)
}

// Init satisfies tea.Model.
func (m ActivityModel) Init() tea.Cmd {
	return m.sp.Tick
}

// Update advances the spinner.
func (m ActivityModel) Update(teaMsg tea.Msg) (ActivityModel, tea.Cmd) {
	if v, ok := teaMsg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(v)
		return m, cmd
	}
	return m, nil
}

// View renders "⣾ Computing… (3s)". Returns "" when inactive.
func (m ActivityModel) View() string {
	if !m.active {
		return ""
	}
	return fmt.Sprintf("%s Computing… (%s)", m.sp.View(), formatElapsed(m.Elapsed()))
}

// formatElapsed renders a duration as a concise string.
// Examples: 3s, 1m 23s
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%dm %ds", m, s)
}
