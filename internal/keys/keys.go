// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the chrome keybindings for the edit screen. Formatting
// chords (ctrl+b and friends) are not listed here; they resolve through
// the editor keymap table so user bindings from the config apply.
type KeyMap struct {
	// Cursor movement
	CursorLeft  key.Binding
	CursorRight key.Binding
	WordLeft    key.Binding
	WordRight   key.Binding
	LineStart   key.Binding
	LineEnd     key.Binding

	// Selection
	ExtendLeft  key.Binding
	ExtendRight key.Binding
	SelectAll   key.Binding

	// Panes and overlays
	ToggleSource     key.Binding
	HistoryInspector key.Binding
	Help             key.Binding

	// Document
	SaveDoc  key.Binding
	ReadOnly key.Binding

	// General
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Cursor movement
		CursorLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "move left"),
		),
		CursorRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "move right"),
		),
		WordLeft: key.NewBinding(
			key.WithKeys("alt+left"),
			key.WithHelp("alt+←", "word left"),
		),
		WordRight: key.NewBinding(
			key.WithKeys("alt+right"),
			key.WithHelp("alt+→", "word right"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "start of text"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "end of text"),
		),

		// Selection
		ExtendLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "extend selection left"),
		),
		ExtendRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "extend selection right"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all"),
		),

		// Panes and overlays
		ToggleSource: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle source view"),
		),
		HistoryInspector: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "history inspector"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),

		// Document
		SaveDoc: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save document"),
		),
		ReadOnly: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "toggle read-only"),
		),

		// General
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "collapse selection / close overlay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CursorLeft, k.CursorRight, k.WordLeft, k.WordRight, k.LineStart, k.LineEnd}, // Movement
		{k.ExtendLeft, k.ExtendRight, k.SelectAll, k.Escape},                           // Selection
		{k.ToggleSource, k.HistoryInspector, k.SaveDoc, k.ReadOnly},                    // Panes / document
		{k.Help, k.Quit},                                                               // General
	}
}
