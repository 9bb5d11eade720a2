package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the core UI styles
var Theme = struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Panel    lipgloss.Style
	Heading  lipgloss.Style
	Button   lipgloss.Style
	Selected lipgloss.Style
	Edition  lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}{
	App: lipgloss.NewStyle().
		Padding(1, 2),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7B61FF")).
		MarginBottom(1),
	Panel: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Padding(0, 1),
	Heading: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")),
	Button: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#464646")).
		Padding(0, 1).
		MarginBottom(1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#009632")).
		Bold(true).
		Padding(0, 1).
		MarginBottom(1),
	Edition: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")).
		Padding(0, 1),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#959595")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF0000")),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5A9")),
}
