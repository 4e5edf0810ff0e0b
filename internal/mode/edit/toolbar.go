package edit

import (
	"strings"

	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/plume/internal/editor/format"
	"github.com/zjrosen/plume/internal/flags"
	"github.com/zjrosen/plume/internal/ui/styles"
)

// toolbarItem is one clickable button. group mirrors the command's
// exclusive group so the display-enforcement flag can police rivals.
type toolbarItem struct {
	label   string
	command string
	args    []any
	group   string
	active  func(format.State) bool
}

func toolbarItems() []toolbarItem {
	return []toolbarItem{
		{label: "B", command: "bold",
			active: func(s format.State) bool { return s.Bold }},
		{label: "I", command: "italic",
			active: func(s format.State) bool { return s.Italic }},
		{label: "U", command: "underline",
			active: func(s format.State) bool { return s.Underline }},
		{label: "S", command: "strikethrough",
			active: func(s format.State) bool { return s.Strike }},
		{label: "</>", command: "code",
			active: func(s format.State) bool { return s.Code }},
		{label: "x₂", command: "subscript", group: "script",
			active: func(s format.State) bool { return s.Subscript }},
		{label: "x²", command: "superscript", group: "script",
			active: func(s format.State) bool { return s.Superscript }},
		{label: "Tx", command: "removeFormat"},

		{label: "H1", command: "heading", args: []any{1}, group: "block",
			active: func(s format.State) bool { return s.Heading == 1 }},
		{label: "H2", command: "heading", args: []any{2}, group: "block",
			active: func(s format.State) bool { return s.Heading == 2 }},
		{label: "H3", command: "heading", args: []any{3}, group: "block",
			active: func(s format.State) bool { return s.Heading == 3 }},
		{label: "¶", command: "paragraph", group: "block",
			active: func(s format.State) bool { return s.Heading == 0 && !s.Blockquote }},
		{label: "❝", command: "blockquote", group: "block",
			active: func(s format.State) bool { return s.Blockquote }},
		{label: "{}", command: "codeBlock", group: "block"},

		{label: "•", command: "unorderedList", group: "list",
			active: func(s format.State) bool { return s.List == format.ListUnordered }},
		{label: "1.", command: "orderedList", group: "list",
			active: func(s format.State) bool { return s.List == format.ListOrdered }},

		{label: "⇐", command: "alignLeft", group: "alignment",
			active: func(s format.State) bool { return s.Alignment == format.AlignLeft }},
		{label: "⇔", command: "alignCenter", group: "alignment",
			active: func(s format.State) bool { return s.Alignment == format.AlignCenter }},
		{label: "⇒", command: "alignRight", group: "alignment",
			active: func(s format.State) bool { return s.Alignment == format.AlignRight }},
		{label: "⇶", command: "alignJustify", group: "alignment",
			active: func(s format.State) bool { return s.Alignment == format.AlignJustify }},

		{label: "🔗", command: "link",
			active: func(s format.State) bool { return s.Link != "" }},
		{label: "―", command: "insertHorizontalRule"},

		{label: "↶", command: "undo"},
		{label: "↷", command: "redo"},
	}
}

func toolbarZoneID(item toolbarItem) string {
	return "toolbar:" + item.label
}

// renderToolbar draws the button row from live command metadata: the
// format state decides active, enablement comes from the registry, and
// each button is zone-marked for mouse clicks.
func (m Model) renderToolbar() string {
	st := m.svc.Editor.FormatState()
	enforce := m.svc.Flags.Enabled(flags.FlagEnforceExclusiveGroups)
	claimed := make(map[string]bool)

	parts := make([]string, 0, 24)
	for _, item := range toolbarItems() {
		meta, known := m.svc.Editor.Command(item.command)
		enabled := known && meta.Enabled
		active := item.active != nil && item.active(st)
		if active && enforce && item.group != "" {
			if claimed[item.group] {
				active = false
			} else {
				claimed[item.group] = true
			}
		}
		parts = append(parts,
			zone.Mark(toolbarZoneID(item), styles.ToolbarButton(item.label, active, enabled)))
	}
	return styles.StatusBarStyle.Render(strings.Join(parts, " "))
}
