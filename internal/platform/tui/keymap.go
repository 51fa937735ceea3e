package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the key bindings for a match.
type KeyMap struct {
	Row     key.Binding
	Col     key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Row, k.Col, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Row, k.Col},
		{k.Restart, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Row: key.NewBinding(
			key.WithKeys("a", "b", "c", "d", "A", "B", "C", "D"),
			key.WithHelp("a-d", "row"),
		),
		Col: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "column"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new match"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ClickText maps a key press to the text a click on the board label would
// select: row keys give an upper-case letter, column keys a digit.
func (k KeyMap) ClickText(msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, k.Row):
		return strings.ToUpper(msg.String()), true
	case key.Matches(msg, k.Col):
		return msg.String(), true
	}
	return "", false
}
