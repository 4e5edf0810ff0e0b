// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Status bar, secondary info
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, footers
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // Description/body text
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Input placeholders

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Success states
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Warnings
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors

	// Selection indicator color (used for ">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	// Selection background color (used to highlight the selected span in the source pane)
	SelectionBackgroundColor = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}

	// Toolbar mark button colors
	ToolbarActiveColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToolbarInactiveColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
	ToolbarDisabledColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}

	// Block format indicator colors
	FormatHeadingColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	FormatLinkColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	FormatCodeColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	FormatQuoteColor   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
	FormatListColor    = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	// HTML source syntax highlighting colors (Catppuccin Mocha)
	MarkupTagColor     = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve
	MarkupAttrColor    = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"} // teal
	MarkupStringColor  = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"} // yellow
	MarkupEntityColor  = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"} // peach
	MarkupCommentColor = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"} // overlay0
	MarkupPunctColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // blue
	MarkupTextColor    = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#CCCCCC"}

	// Selection indicator style (used for ">" prefix in lists: history inspector, pickers)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Form colors
	FormTextInputBorderColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}
	FormTextInputFocusedBorderColor = lipgloss.AdaptiveColor{Light: "#FFF", Dark: "#FFF"}
	FormTextInputLabelColor         = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}
	FormTextInputFocusedLabelColor  = lipgloss.AdaptiveColor{Light: "#FFF", Dark: "#FFF"}

	// Overlay colors
	OverlayTitleColor         = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#C9C9C9"}
	OverlayBorderColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Toolbar mark button styles
	ToolbarActiveStyle   = lipgloss.NewStyle().Foreground(ToolbarActiveColor).Bold(true)
	ToolbarInactiveStyle = lipgloss.NewStyle().Foreground(ToolbarInactiveColor)
	ToolbarDisabledStyle = lipgloss.NewStyle().Foreground(ToolbarDisabledColor).Faint(true)

	// Block format indicator styles
	FormatHeadingStyle = lipgloss.NewStyle().Foreground(FormatHeadingColor).Bold(true)
	FormatLinkStyle    = lipgloss.NewStyle().Foreground(FormatLinkColor).Underline(true)
	FormatCodeStyle    = lipgloss.NewStyle().Foreground(FormatCodeColor)
	FormatQuoteStyle   = lipgloss.NewStyle().Foreground(FormatQuoteColor).Italic(true)
	FormatListStyle    = lipgloss.NewStyle().Foreground(FormatListColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Prompt input styles (link/font prompts)
	PromptInputStyle        = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	PromptLabelStyle        = lipgloss.NewStyle().Foreground(FormTextInputLabelColor)
	PromptLabelFocusedStyle = lipgloss.NewStyle().Foreground(FormTextInputFocusedLabelColor)
)
