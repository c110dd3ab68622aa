package model

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/miosa/osa-launch/style"
)

// BannerModel renders the one-line header:
//
//	launch dev · delay 2s · 3 cycles
//
// It is driven by setter calls; Update handles no messages.
type BannerModel struct {
	version string
	delay   time.Duration
	cycles  int
	width   int
}

// NewBanner returns a BannerModel for the given build version.
func NewBanner(version string) BannerModel {
	if version == "" {
		version = "dev"
	}
	return BannerModel{version: version}
}

// SetVersion sets the build version shown in the header.
func (m *BannerModel) SetVersion(v string) {
	if v != "" {
		m.version = v
	}
}

// SetDelay sets the configured computation delay shown in the header.
func (m *BannerModel) SetDelay(d time.Duration) { m.delay = d }

// IncCycles records one completed launch cycle.
func (m *BannerModel) IncCycles() { m.cycles++ }

// Cycles returns the number of completed cycles.
func (m BannerModel) Cycles() int { return m.cycles }

// SetWidth sets the render width.
func (m *BannerModel) SetWidth(w int) { m.width = w }

// Init satisfies tea.Model. The banner requires no I/O on start.
func (m BannerModel) Init() tea.Cmd {
	return nil
}

// Update satisfies tea.Model. The banner is static; all messages pass through.
func (m BannerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the header line.
func (m BannerModel) View() string {
	sep := style.Faint.Render(" · ")
	title := style.HeaderTitle.Render(fmt.Sprintf("launch %s", m.version))
	delay := style.HeaderDetail.Render(fmt.Sprintf("delay %s", m.delay))
	cycles := style.HeaderDetail.Render(fmt.Sprintf("%d cycle%s", m.cycles, pluralS(m.cycles)))

	line := title + sep + delay + sep + cycles
	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
