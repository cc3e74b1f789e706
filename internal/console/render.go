package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/smileynet/contactbook/internal/contact"
)

// Column colors follow the order Name, Phone, Email, Tags, Created.
var columnColors = [5]lipgloss.AdaptiveColor{
	{Light: "6", Dark: "14"}, // cyan
	{Light: "3", Dark: "11"}, // yellow
	{Light: "2", Dark: "10"}, // green
	{Light: "5", Dark: "13"}, // magenta
	{Light: "0", Dark: "15"}, // white
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "5", Dark: "13"})
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	outcomeColors = map[Outcome]lipgloss.AdaptiveColor{
		OutcomeSuccess: {Light: "2", Dark: "10"},
		OutcomeEmpty:   {Light: "1", Dark: "9"},
		OutcomeFailure: {Light: "1", Dark: "9"},
	}
)

// Panel wraps body in a rounded border with an optional title line.
func Panel(title, body string, color lipgloss.TerminalColor) string {
	if title != "" {
		body = lipgloss.NewStyle().Bold(true).Foreground(color).Render(title) + "\n" + body
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Render(body)
}

// MenuText lists the menu items one per line as "<key>. <label>".
func MenuText() string {
	lines := make([]string, len(Items))
	for i, it := range Items {
		lines[i] = it.Key + ". " + it.Label
	}
	return strings.Join(lines, "\n")
}

// Table renders contacts as a bordered table, one row per contact.
func Table(contacts []*contact.Contact, timeFormat string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})).
		Headers("Name", "Phone", "Email", "Tags", "Created").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1).Foreground(columnColors[col%len(columnColors)])
		})

	for _, c := range contacts {
		t.Row(c.Name, c.Phone, c.Email, strings.Join(c.Tags, ", "), c.CreatedAt.Format(timeFormat))
	}
	return titleStyle.Render("Contacts") + "\n" + t.Render()
}

// Render formats a Result: the message in a panel (a plain line when it
// introduces a table) followed by the contact table.
func Render(r Result, timeFormat string) string {
	var parts []string
	color := outcomeColors[r.Outcome]

	switch {
	case r.Message != "" && len(r.Contacts) > 0:
		parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(color).Render(r.Message))
	case r.Message != "":
		parts = append(parts, Panel("", r.Message, color))
	}
	if len(r.Contacts) > 0 {
		parts = append(parts, Table(r.Contacts, timeFormat))
	}
	return strings.Join(parts, "\n")
}
