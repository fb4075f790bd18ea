package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#8BC34A")
	muted   = lipgloss.Color("#7A8494")
	border  = lipgloss.Color("#2a3850")
	success = lipgloss.Color("#8BC34A")
)

type Styles struct {
	Header     lipgloss.Style
	Title      lipgloss.Style
	Price      lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Pane       lipgloss.Style
	ActivePane lipgloss.Style
	Notice     lipgloss.Style
	Total      lipgloss.Style
}

func DefaultStyles() Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Title:      lipgloss.NewStyle().Bold(true),
		Price:      lipgloss.NewStyle().Foreground(accent),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Pane:       pane,
		ActivePane: pane.BorderForeground(accent),
		Notice:     lipgloss.NewStyle().Bold(true).Foreground(success),
		Total:      lipgloss.NewStyle().Bold(true),
	}
}
