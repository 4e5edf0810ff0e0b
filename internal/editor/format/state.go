package format

// ListKind identifies the list container type active at a point.
type ListKind string

const (
	ListNone      ListKind = ""
	ListOrdered   ListKind = "ordered"
	ListUnordered ListKind = "unordered"
)

// Alignment is one of the four canonical text alignments. Resolution maps
// vendor-prefixed and logical values onto these before they reach callers.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// State is a value snapshot of the formatting active at a point in the
// document. Each recompute produces a whole new State; snapshots are never
// patched in place.
type State struct {
	Bold        bool
	Italic      bool
	Underline   bool
	Strike      bool
	Code        bool
	Subscript   bool
	Superscript bool

	Link       string
	Heading    int
	List       ListKind
	Blockquote bool
	Alignment  Alignment

	FontSize        string
	FontFamily      string
	Color           string
	BackgroundColor string
}

// Default returns the all-off state with left alignment.
func Default() State {
	return State{Alignment: AlignLeft}
}

// Diff returns the names of fields that differ between two snapshots, in a
// fixed field order. An empty result means the states are identical.
func Diff(prev, cur State) []string {
	var changed []string
	record := func(name string, differs bool) {
		if differs {
			changed = append(changed, name)
		}
	}

	record("bold", prev.Bold != cur.Bold)
	record("italic", prev.Italic != cur.Italic)
	record("underline", prev.Underline != cur.Underline)
	record("strike", prev.Strike != cur.Strike)
	record("code", prev.Code != cur.Code)
	record("subscript", prev.Subscript != cur.Subscript)
	record("superscript", prev.Superscript != cur.Superscript)
	record("link", prev.Link != cur.Link)
	record("heading", prev.Heading != cur.Heading)
	record("list", prev.List != cur.List)
	record("blockquote", prev.Blockquote != cur.Blockquote)
	record("alignment", prev.Alignment != cur.Alignment)
	record("fontSize", prev.FontSize != cur.FontSize)
	record("fontFamily", prev.FontFamily != cur.FontFamily)
	record("color", prev.Color != cur.Color)
	record("backgroundColor", prev.BackgroundColor != cur.BackgroundColor)

	return changed
}

// ChangeSource tags what triggered a format-state recompute.
type ChangeSource string

const (
	SourceSelection ChangeSource = "selection"
	SourceCommand   ChangeSource = "command"
	SourceInput     ChangeSource = "input"
)

// ChangeEvent describes a format-state transition. Producers only emit it
// when Changed is non-empty.
type ChangeEvent struct {
	Previous *State
	Current  State
	Changed  []string
	Source   ChangeSource
}
