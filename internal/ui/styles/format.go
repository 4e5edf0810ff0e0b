// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	// Need to truncate - leave room for ellipsis
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	// Truncate rune by rune
	result := ""
	for _, r := range s {
		test := result + string(r)
		if lipgloss.Width(test) > maxWidth-3 {
			break
		}
		result = test
	}

	return result + "..."
}

// ToolbarButton renders a toolbar label in the style matching its state:
// disabled wins over active, active wins over the plain inactive look.
func ToolbarButton(label string, active, enabled bool) string {
	switch {
	case !enabled:
		return ToolbarDisabledStyle.Render(label)
	case active:
		return ToolbarActiveStyle.Render(label)
	default:
		return ToolbarInactiveStyle.Render(label)
	}
}

// BlockIndicator renders a block-format label (status bar, toolbar edge)
// in the color assigned to that block kind. Unknown kinds fall back to
// secondary text.
func BlockIndicator(kind, label string) string {
	switch kind {
	case "heading":
		return FormatHeadingStyle.Render(label)
	case "link":
		return FormatLinkStyle.Render(label)
	case "code":
		return FormatCodeStyle.Render(label)
	case "quote":
		return FormatQuoteStyle.Render(label)
	case "list":
		return FormatListStyle.Render(label)
	default:
		return lipgloss.NewStyle().Foreground(TextSecondaryColor).Render(label)
	}
}
