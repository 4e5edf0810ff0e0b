package edit

import (
	"fmt"
	"strings"

	"github.com/zjrosen/plume/internal/editor/keymap"
	"github.com/zjrosen/plume/internal/log"
	"github.com/zjrosen/plume/internal/ui/markdown"
	"github.com/zjrosen/plume/internal/ui/styles"
)

var helpGroupNames = []string{"Movement", "Selection", "Panes & document", "General"}

func (m Model) renderHelp() string {
	body := m.helpView
	if body == "" {
		body = m.buildHelp()
	}
	w := min(m.width-6, 68)
	if w < 30 {
		w = 30
	}
	h := min(m.height-2, strings.Count(body, "\n")+3)
	return styles.RenderWithTitleBorder(body, "Help", w, h, true,
		styles.OverlayTitleColor, styles.OverlayBorderColor)
}

// buildHelp renders the keybinding reference as markdown: the chrome keys
// first, then the formatting chords from the live keymap table so user
// overrides from the config show up with their real keys.
func (m Model) buildHelp() string {
	var b strings.Builder
	groups := m.keys.FullHelp()
	for i, group := range groups {
		name := "Other"
		if i < len(helpGroupNames) {
			name = helpGroupNames[i]
		}
		fmt.Fprintf(&b, "## %s\n\n", name)
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "- `%s` %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Formatting\n\n")
	seen := make(map[string]bool)
	for _, binding := range m.km.Bindings() {
		chord := chordLabel(binding)
		if seen[chord] {
			continue
		}
		seen[chord] = true
		fmt.Fprintf(&b, "- `%s` %s\n", chord, commandLabel(binding))
	}

	width := min(m.width-10, 62)
	if width < 24 {
		width = 24
	}
	r, err := markdown.New(width, m.svc.Config.UI.MarkdownStyle)
	if err != nil {
		log.ErrorErr(log.CatUI, "help renderer init failed", err)
		return b.String()
	}
	out, err := r.Render(b.String())
	if err != nil {
		log.ErrorErr(log.CatUI, "help render failed", err)
		return b.String()
	}
	return strings.TrimRight(out, "\n")
}

func chordLabel(b keymap.Binding) string {
	var parts []string
	if b.Mod {
		parts = append(parts, "ctrl")
	}
	if b.Alt {
		parts = append(parts, "alt")
	}
	if b.Shift {
		parts = append(parts, "shift")
	}
	parts = append(parts, b.Key)
	return strings.Join(parts, "+")
}

func commandLabel(b keymap.Binding) string {
	if len(b.Args) == 0 {
		return b.Command
	}
	args := make([]string, len(b.Args))
	for i, a := range b.Args {
		args[i] = fmt.Sprint(a)
	}
	return b.Command + " " + strings.Join(args, " ")
}
