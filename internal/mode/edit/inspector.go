package edit

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/plume/internal/textdiff"
	"github.com/zjrosen/plume/internal/ui/styles"
)

// renderInspector draws the history overlay: the snapshot list with the
// engine's current position marked, and the diff of the transition into
// the highlighted entry.
func (m Model) renderInspector() string {
	entries, pos := m.svc.Editor.History()
	w := min(m.width-8, 76)
	if w < 30 {
		w = 30
	}
	inner := w - 4

	sel := m.inspectorSel
	if sel < 0 {
		sel = 0
	}
	if sel >= len(entries) {
		sel = len(entries) - 1
	}

	var lines []string
	for i, e := range entries {
		marker := "  "
		if i == pos {
			marker = styles.SelectionIndicatorStyle.Render("> ")
		}
		stamp := lipgloss.NewStyle().Foreground(styles.TextDescriptionColor).
			Render(e.CreatedAt.Format("15:04:05"))
		label := fmt.Sprintf("%s#%02d  %s", marker, i, stamp)
		if i > 0 {
			ins, del := textdiff.Stats(entries[i-1].Content, e.Content)
			label += "  " +
				lipgloss.NewStyle().Foreground(styles.StatusSuccessColor).Render(fmt.Sprintf("+%d", ins)) +
				"/" +
				lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Render(fmt.Sprintf("-%d", del))
		}
		if i == sel {
			label = lipgloss.NewStyle().Background(styles.SelectionBackgroundColor).Render(label)
		}
		lines = append(lines, styles.TruncateString(label, inner))
	}

	lines = append(lines, "")
	if sel > 0 {
		lines = append(lines, wordwrap.String(
			textdiff.Pretty(entries[sel-1].Content, entries[sel].Content), inner))
	} else if len(entries) > 0 {
		lines = append(lines, wordwrap.String(entries[sel].Content, inner))
	}
	lines = append(lines, "",
		lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("j/k: move  esc: close"))

	body := strings.Join(lines, "\n")
	h := min(m.height-2, strings.Count(body, "\n")+3)
	if h < 6 {
		h = 6
	}
	return styles.RenderWithTitleBorder(body, "History", w, h, true,
		styles.OverlayTitleColor, styles.OverlayBorderColor)
}
