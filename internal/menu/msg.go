// Package menu implements the interactive contact book menu as a Bubble Tea
// program. Separate from internal/console, which holds the actions it runs
// and the plain prompt used without a terminal.
package menu

// Mode represents the current menu screen.
type Mode int

const (
	ModeMenu    Mode = iota // Choosing an action from the main menu.
	ModeForm                // Filling in the selected action's fields.
	ModeResults             // Showing what the action produced.
)
