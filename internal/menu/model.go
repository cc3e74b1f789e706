package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/contactbook/internal/console"
	"github.com/smileynet/contactbook/internal/contact"
)

// headingHeight is the number of lines above the results viewport.
const headingHeight = 2

// Model is the root Bubble Tea model for the contact book menu.
// Actions run synchronously inside Update, so the book is only ever
// touched from the Bubble Tea update loop.
type Model struct {
	book       console.Book
	mode       Mode
	cursor     int
	action     console.Action
	inputs     []textinput.Model
	focusIdx   int
	result     console.Result
	banner     string
	timeFormat string
	width      int
	height     int
	viewport   viewport.Model
	help       help.Model
	menuKeys   menuKeys
	formKeys   formKeys
	resultKeys resultKeys
	quitting   bool
}

// Option configures a Model.
type Option func(*Model)

// WithTimeFormat sets the layout for the Created column.
func WithTimeFormat(layout string) Option {
	return func(m *Model) {
		if layout != "" {
			m.timeFormat = layout
		}
	}
}

// WithBanner sets a message shown under the menu until the first action.
func WithBanner(msg string) Option {
	return func(m *Model) {
		m.banner = msg
	}
}

// NewModel creates a menu Model over book, starting at the main menu.
func NewModel(book console.Book, opts ...Option) Model {
	m := Model{
		book:       book,
		mode:       ModeMenu,
		timeFormat: contact.DefaultTimeFormat,
		viewport:   viewport.New(80, 20),
		help:       help.New(),
		menuKeys:   MenuKeyMap(),
		formKeys:   FormKeyMap(),
		resultKeys: ResultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = m.contentHeight()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case ModeForm:
			return m.updateForm(msg)
		case ModeResults:
			return m.updateResults(msg)
		default:
			return m.updateMenu(msg)
		}
	}

	if m.mode == ModeForm {
		return m.updateFocusedInput(msg)
	}
	return m, nil
}

// contentHeight returns the usable height for the results viewport,
// accounting for the heading and the help bar.
func (m Model) contentHeight() int {
	h := m.height - headingHeight - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.menuKeys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.menuKeys.Up):
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(console.Items) - 1
		}
		return m, nil

	case key.Matches(msg, m.menuKeys.Down):
		m.cursor++
		if m.cursor >= len(console.Items) {
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, m.menuKeys.Select):
		return m.choose(console.Items[m.cursor])

	case key.Matches(msg, m.menuKeys.Digit):
		if item, ok := console.Lookup(msg.String()); ok {
			return m.choose(item)
		}
	}
	return m, nil
}

// choose starts the action behind item: exit quits, field-less actions run
// immediately, the rest open a form.
func (m Model) choose(item console.Item) (tea.Model, tea.Cmd) {
	m.banner = ""
	m.action = item.Action

	if item.Action == console.ActionExit {
		m.quitting = true
		return m, tea.Quit
	}

	fields := item.Action.Fields()
	if len(fields) == 0 {
		return m.showResult(console.Execute(m.book, item.Action, nil)), nil
	}

	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 256
		m.inputs[i] = ti
	}
	m.focusIdx = 0
	m.mode = ModeForm
	cmd := m.inputs[0].Focus()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.mode = ModeMenu
		m.inputs = nil
		return m, nil

	case key.Matches(msg, m.formKeys.Next):
		cmd := m.focus(m.focusIdx + 1)
		return m, cmd

	case key.Matches(msg, m.formKeys.Prev):
		cmd := m.focus(m.focusIdx - 1)
		return m, cmd

	case key.Matches(msg, m.formKeys.Submit):
		if m.focusIdx < len(m.inputs)-1 {
			cmd := m.focus(m.focusIdx + 1)
			return m, cmd
		}
		return m.submit(), nil
	}

	return m.updateFocusedInput(msg)
}

// focus moves input focus to idx, wrapping around the form.
func (m *Model) focus(idx int) tea.Cmd {
	n := len(m.inputs)
	if n == 0 {
		return nil
	}
	idx = ((idx % n) + n) % n
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = idx
	return m.inputs[idx].Focus()
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focusIdx >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	return m, cmd
}

// submit runs the current action with the form's values.
func (m Model) submit() Model {
	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = strings.TrimSpace(in.Value())
	}
	m.inputs = nil
	return m.showResult(console.Execute(m.book, m.action, values))
}

func (m Model) showResult(r console.Result) Model {
	m.result = r
	m.mode = ModeResults
	m.viewport.SetContent(console.Render(r, m.timeFormat))
	m.viewport.GotoTop()
	return m
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.resultKeys.Back) {
		m.mode = ModeMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the current screen with the help bar.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var body string
	switch m.mode {
	case ModeForm:
		body = m.viewForm()
	case ModeResults:
		body = m.viewResults()
	default:
		body = m.viewMenu()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(HelpBindings(m.mode)))
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(headingText.Render("Menu:"))
	for i, it := range console.Items {
		b.WriteByte('\n')
		line := it.Key + ". " + it.Label
		if i == m.cursor {
			b.WriteString(selectedText.Render(CursorMarker + line))
		} else {
			b.WriteString("  " + line)
		}
	}

	menu := lipgloss.JoinVertical(lipgloss.Left,
		headingText.Render("Contact Book"),
		MenuBorder().Render(b.String()),
	)
	if m.banner != "" {
		menu += "\n" + mutedText.Render(m.banner)
	}
	return menu
}

func (m Model) viewForm() string {
	fields := m.action.Fields()

	var b strings.Builder
	for i, in := range m.inputs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if i < len(fields) {
			b.WriteString(fields[i].Prompt)
		}
		b.WriteByte('\n')
		b.WriteString(in.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headingText.Render(m.action.Title()),
		FormBorder().Render(b.String()),
	)
}

func (m Model) viewResults() string {
	return headingText.Render(m.action.Title()) + "\n\n" + m.viewport.View()
}
