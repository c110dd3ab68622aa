package style

import "github.com/charmbracelet/lipgloss"

// Colors — default dark palette; SetTheme swaps them.
var (
	Primary   lipgloss.TerminalColor = lipgloss.Color("#7C3AED") // violet-600
	Secondary lipgloss.TerminalColor = lipgloss.Color("#06B6D4") // cyan-500
	Success   lipgloss.TerminalColor = lipgloss.Color("#22C55E") // green-500
	Warning   lipgloss.TerminalColor = lipgloss.Color("#F59E0B") // amber-500
	Error     lipgloss.TerminalColor = lipgloss.Color("#EF4444") // red-500
	Muted     lipgloss.TerminalColor = lipgloss.Color("#6B7280") // gray-500
	Dim       lipgloss.TerminalColor = lipgloss.Color("#374151") // gray-700
	Border    lipgloss.TerminalColor = lipgloss.Color("#4B5563") // gray-600
)

// Base styles. Rebuilt by SetTheme.
var (
	Faint     lipgloss.Style
	ErrorText lipgloss.Style

	// Header
	HeaderTitle  lipgloss.Style
	HeaderDetail lipgloss.Style

	// Main panel
	Panel        lipgloss.Style
	PanelTitle   lipgloss.Style
	SpinnerStyle lipgloss.Style

	// Observer panels
	ObserverBorder lipgloss.Style
	ObserverTitle  lipgloss.Style

	// State icons
	StateWaiting  lipgloss.Style
	StateRunning  lipgloss.Style
	StateFinished lipgloss.Style
	StateFailed   lipgloss.Style

	// Hint text (key help)
	Hint lipgloss.Style
)

func init() {
	rebuild()
}

func rebuild() {
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	HeaderTitle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
	HeaderDetail = lipgloss.NewStyle().
		Foreground(Muted)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
	PanelTitle = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(Primary)

	ObserverBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Dim).
		Padding(0, 1)
	ObserverTitle = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	StateWaiting = lipgloss.NewStyle().Foreground(Muted)
	StateRunning = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	StateFinished = lipgloss.NewStyle().Foreground(Success)
	StateFailed = lipgloss.NewStyle().Foreground(Error)

	Hint = lipgloss.NewStyle().
		Foreground(Dim)
}
