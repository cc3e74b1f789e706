package menu

import "github.com/charmbracelet/lipgloss"

// CursorMarker is the prefix shown on the selected menu row.
const CursorMarker = "▸ "

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

var (
	accentColor = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}

	headingText  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "6", Dark: "14"})
	selectedText = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	mutedText    = lipgloss.NewStyle().Foreground(mutedColor)
)

// MenuBorder returns the rounded green border drawn around the main menu.
func MenuBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1)
}

// FormBorder returns the dim rounded border drawn around the input form.
func FormBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mutedColor).
		Padding(0, 1)
}
