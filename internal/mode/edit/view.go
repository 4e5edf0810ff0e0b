package edit

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/plume/internal/ui/overlay"
	"github.com/zjrosen/plume/internal/ui/styles"
)

var (
	selectionStyle lipgloss.Style
	caretStyle     lipgloss.Style
)

// Theme changes swap the color variables out from under package-level
// styles, so they rebuild through the registered hook.
func init() {
	rebuildPaneStyles()
	rebuildMarkupStyles()
	styles.RegisterStyleRebuilder(func() {
		rebuildPaneStyles()
		rebuildMarkupStyles()
	})
}

func rebuildPaneStyles() {
	selectionStyle = lipgloss.NewStyle().Background(styles.SelectionBackgroundColor)
	caretStyle = lipgloss.NewStyle().Reverse(true)
}

// View implements mode.Controller.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	var sections []string
	if m.svc.Config.UI.ShowToolbar {
		sections = append(sections, m.renderToolbar())
	}

	paneHeight := m.height - len(sections)
	if m.svc.Config.UI.ShowStatusBar {
		paneHeight--
	}
	if paneHeight < 3 {
		paneHeight = 3
	}

	title := "Document"
	content := m.renderDocument()
	if m.showSource {
		title = "Source"
		content = m.renderSource()
	}
	sections = append(sections, styles.RenderWithTitleBorder(
		content, title, m.width, paneHeight,
		m.svc.Editor.Focused(),
		styles.OverlayTitleColor, styles.BorderHighlightFocusColor))

	if m.svc.Config.UI.ShowStatusBar {
		sections = append(sections, m.renderStatusBar())
	}

	base := lipgloss.JoinVertical(lipgloss.Left, sections...)

	switch m.overlay {
	case overlayHelp:
		return overlay.Place(
			overlay.Config{Width: m.width, Height: m.height, Position: overlay.Center},
			m.renderHelp(), base)
	case overlayInspector:
		return overlay.Place(
			overlay.Config{Width: m.width, Height: m.height, Position: overlay.Center},
			m.renderInspector(), base)
	case overlayLink:
		return overlay.Place(
			overlay.Config{Width: m.width, Height: m.height, Position: overlay.Center},
			m.renderLinkPrompt(), base)
	}
	return base
}

func (m Model) wrapWidth() int {
	w := m.svc.Config.UI.WrapWidth
	if w <= 0 || w > m.width-4 {
		w = m.width - 4
	}
	if w < 10 {
		w = 10
	}
	return w
}

// renderDocument shows the plain-text projection with the live selection
// highlighted, or a reverse-video caret when collapsed.
func (m Model) renderDocument() string {
	text := m.svc.Editor.GetText()
	runes := []rune(text)
	start, end := min(m.cursor, m.anchor), max(m.cursor, m.anchor)
	start = clampOffset(text, start)
	end = clampOffset(text, end)

	var b strings.Builder
	if start == end {
		// Caret covers the grapheme cluster to its right, or a trailing
		// cell at the end of the document.
		clEnd := nextBoundary(text, start)
		b.WriteString(string(runes[:start]))
		if clEnd > start {
			b.WriteString(caretStyle.Render(string(runes[start:clEnd])))
			b.WriteString(string(runes[clEnd:]))
		} else {
			b.WriteString(caretStyle.Render(" "))
		}
	} else {
		b.WriteString(string(runes[:start]))
		b.WriteString(selectionStyle.Render(string(runes[start:end])))
		b.WriteString(string(runes[end:]))
	}
	return wordwrap.String(b.String(), m.wrapWidth())
}

func (m Model) renderSource() string {
	highlighted := highlightMarkup(m.svc.Editor.GetContent())
	return wordwrap.String(highlighted, m.wrapWidth())
}

// renderStatusBar shows position, active block context, document state,
// and the most recent message.
func (m Model) renderStatusBar() string {
	ed := m.svc.Editor
	text := ed.GetText()
	st := ed.FormatState()

	parts := []string{fmt.Sprintf("col %d", displayColumn(text, m.cursor)+1)}
	if sel, ok := ed.Selection(); ok && !sel.Collapsed {
		parts = append(parts, fmt.Sprintf("sel %d", abs(m.cursor-m.anchor)))
	}

	switch {
	case st.Heading > 0:
		parts = append(parts, styles.BlockIndicator("heading", fmt.Sprintf("H%d", st.Heading)))
	case st.Blockquote:
		parts = append(parts, styles.BlockIndicator("quote", "quote"))
	case st.List == "ordered":
		parts = append(parts, styles.BlockIndicator("list", "1."))
	case st.List == "unordered":
		parts = append(parts, styles.BlockIndicator("list", "•"))
	}
	if st.Link != "" {
		parts = append(parts, styles.BlockIndicator("link", styles.TruncateString(st.Link, 24)))
	}
	if st.Code {
		parts = append(parts, styles.BlockIndicator("code", "code"))
	}

	if ed.ReadOnly() {
		parts = append(parts, "RO")
	}
	if m.dirty() {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.StatusWarningColor).Render("*"))
	}

	msg := m.statusMsg
	if msg == "" {
		msg, _ = m.feed.snapshot()
	}
	if msg != "" {
		parts = append(parts, styles.TruncateString(msg, m.width/2))
	}

	left := strings.Join(parts, "  ")
	right := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("f1 help")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return styles.StatusBarStyle.Render(styles.TruncateString(left, m.width))
	}
	return styles.StatusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderLinkPrompt() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.linkInput.View(),
		"",
		styles.PromptLabelStyle.Render(
			styles.TruncateString("enter: apply  esc: cancel  (empty removes the link)", 52)),
	)
	border := styles.FormTextInputBorderColor
	if m.linkInput.Focused() {
		border = styles.FormTextInputFocusedBorderColor
	}
	return styles.RenderWithTitleBorder(body, "Link", 56, 5,
		m.linkInput.Focused(), styles.OverlayTitleColor, border)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
