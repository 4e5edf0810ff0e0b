// Package keymap resolves keyboard chords to editor commands.
//
// The table is ordered and the first binding whose key and modifier set
// both match wins. Modifiers must agree exactly, so mod+shift+z never
// falls through to the mod+z binding.
package keymap

import "strings"

// Binding routes one keyboard chord to a command invocation.
type Binding struct {
	Key     string // lower-case key name: "b", "z", "]", "1"
	Mod     bool   // ctrl or meta, whichever the platform uses
	Shift   bool
	Alt     bool
	Command string
	Args    []any
}

// Chord is a normalized key-down event as reported by the host.
type Chord struct {
	Key   string
	Mod   bool
	Shift bool
	Alt   bool
}

// Table is an ordered shortcut list.
type Table struct {
	bindings []Binding
}

// New builds a table from bindings in resolution order.
func New(bindings ...Binding) *Table {
	return &Table{bindings: bindings}
}

// Default returns the stock editing shortcuts.
func Default() *Table {
	return New(
		Binding{Key: "b", Mod: true, Command: "bold"},
		Binding{Key: "i", Mod: true, Command: "italic"},
		Binding{Key: "u", Mod: true, Command: "underline"},
		Binding{Key: "x", Mod: true, Shift: true, Command: "strikethrough"},
		Binding{Key: "e", Mod: true, Command: "code"},
		Binding{Key: "k", Mod: true, Command: "link"},
		Binding{Key: "z", Mod: true, Shift: true, Command: "redo"},
		Binding{Key: "z", Mod: true, Command: "undo"},
		Binding{Key: "y", Mod: true, Command: "redo"},
		Binding{Key: "]", Mod: true, Command: "indent"},
		Binding{Key: "[", Mod: true, Command: "outdent"},
		Binding{Key: "1", Mod: true, Alt: true, Command: "heading", Args: []any{1}},
		Binding{Key: "2", Mod: true, Alt: true, Command: "heading", Args: []any{2}},
		Binding{Key: "3", Mod: true, Alt: true, Command: "heading", Args: []any{3}},
		Binding{Key: "4", Mod: true, Alt: true, Command: "heading", Args: []any{4}},
		Binding{Key: "5", Mod: true, Alt: true, Command: "heading", Args: []any{5}},
		Binding{Key: "6", Mod: true, Alt: true, Command: "heading", Args: []any{6}},
		Binding{Key: "0", Mod: true, Alt: true, Command: "paragraph"},
	)
}

// Bind prepends a binding, so embedder overrides win over the defaults.
func (t *Table) Bind(b Binding) {
	t.bindings = append([]Binding{b}, t.bindings...)
}

// Resolve returns the first binding matching the chord. Matching requires
// exact agreement on all three modifier flags, not just the named one.
func (t *Table) Resolve(c Chord) (Binding, bool) {
	key := strings.ToLower(c.Key)
	for _, b := range t.bindings {
		if b.Key == key && b.Mod == c.Mod && b.Shift == c.Shift && b.Alt == c.Alt {
			return b, true
		}
	}
	return Binding{}, false
}

// Bindings returns a copy of the table in resolution order.
func (t *Table) Bindings() []Binding {
	return append([]Binding(nil), t.bindings...)
}
