// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
// This avoids import cycles (styles can't import the packages that use it,
// but they can register).
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Use this to rebuild styles in packages that depend on styles.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	// Step 1: Start with default preset
	colors := maps.Clone(DefaultPreset.Colors)

	// Step 2: Apply preset if specified
	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	// Step 3: Apply individual color overrides
	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	// Step 4: Apply colors to variables
	applyColors(colors)

	// Step 5: Rebuild all Style objects
	rebuildStyles()

	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Helper to create adaptive color (uses same color for both modes)
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	// Text hierarchy
	if c, ok := colors[TokenTextPrimary]; ok {
		TextPrimaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextSecondary]; ok {
		TextSecondaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextMuted]; ok {
		TextMutedColor = makeColor(c)
	}
	if c, ok := colors[TokenTextDescription]; ok {
		TextDescriptionColor = makeColor(c)
	}
	if c, ok := colors[TokenTextPlaceholder]; ok {
		TextPlaceholderColor = makeColor(c)
	}

	// Borders
	if c, ok := colors[TokenBorderDefault]; ok {
		BorderDefaultColor = makeColor(c)
	}
	if c, ok := colors[TokenBorderFocus]; ok {
		FormTextInputFocusedBorderColor = makeColor(c)
		FormTextInputFocusedLabelColor = makeColor(c)
	}
	if c, ok := colors[TokenBorderHighlight]; ok {
		BorderHighlightFocusColor = makeColor(c)
	}

	// Status
	if c, ok := colors[TokenStatusSuccess]; ok {
		StatusSuccessColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusWarning]; ok {
		StatusWarningColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusError]; ok {
		StatusErrorColor = makeColor(c)
	}

	// Selection
	if c, ok := colors[TokenSelectionIndicator]; ok {
		SelectionIndicatorColor = makeColor(c)
	}
	if c, ok := colors[TokenSelectionBackground]; ok {
		SelectionBackgroundColor = makeColor(c)
	}

	// Forms
	if c, ok := colors[TokenFormBorder]; ok {
		FormTextInputBorderColor = makeColor(c)
		FormTextInputLabelColor = makeColor(c)
	}
	if c, ok := colors[TokenFormBorderFocus]; ok {
		FormTextInputFocusedBorderColor = makeColor(c)
	}
	if c, ok := colors[TokenFormLabel]; ok {
		FormTextInputLabelColor = makeColor(c)
	}
	if c, ok := colors[TokenFormLabelFocus]; ok {
		FormTextInputFocusedLabelColor = makeColor(c)
	}

	// Overlays
	if c, ok := colors[TokenOverlayTitle]; ok {
		OverlayTitleColor = makeColor(c)
	}
	if c, ok := colors[TokenOverlayBorder]; ok {
		OverlayBorderColor = makeColor(c)
	}

	// Toolbar
	if c, ok := colors[TokenToolbarActive]; ok {
		ToolbarActiveColor = makeColor(c)
	}
	if c, ok := colors[TokenToolbarInactive]; ok {
		ToolbarInactiveColor = makeColor(c)
	}
	if c, ok := colors[TokenToolbarDisabled]; ok {
		ToolbarDisabledColor = makeColor(c)
	}

	// Block format indicators
	if c, ok := colors[TokenFormatHeading]; ok {
		FormatHeadingColor = makeColor(c)
	}
	if c, ok := colors[TokenFormatLink]; ok {
		FormatLinkColor = makeColor(c)
	}
	if c, ok := colors[TokenFormatCode]; ok {
		FormatCodeColor = makeColor(c)
	}
	if c, ok := colors[TokenFormatQuote]; ok {
		FormatQuoteColor = makeColor(c)
	}
	if c, ok := colors[TokenFormatList]; ok {
		FormatListColor = makeColor(c)
	}

	// Markup highlighting
	if c, ok := colors[TokenMarkupTag]; ok {
		MarkupTagColor = makeColor(c)
	}
	if c, ok := colors[TokenMarkupAttr]; ok {
		MarkupAttrColor = makeColor(c)
	}
	if c, ok := colors[TokenMarkupString]; ok {
		MarkupStringColor = makeColor(c)
	}
	if c, ok := colors[TokenMarkupEntity]; ok {
		MarkupEntityColor = makeColor(c)
	}
	if c, ok := colors[TokenMarkupComment]; ok {
		MarkupCommentColor = makeColor(c)
	}
	if c, ok := colors[TokenMarkupPunct]; ok {
		MarkupPunctColor = makeColor(c)
	}
	if c, ok := colors[TokenMarkupText]; ok {
		MarkupTextColor = makeColor(c)
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	// Selection indicator
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Toolbar mark buttons
	ToolbarActiveStyle = lipgloss.NewStyle().Foreground(ToolbarActiveColor).Bold(true)
	ToolbarInactiveStyle = lipgloss.NewStyle().Foreground(ToolbarInactiveColor)
	ToolbarDisabledStyle = lipgloss.NewStyle().Foreground(ToolbarDisabledColor).Faint(true)

	// Block format indicators
	FormatHeadingStyle = lipgloss.NewStyle().Foreground(FormatHeadingColor).Bold(true)
	FormatLinkStyle = lipgloss.NewStyle().Foreground(FormatLinkColor).Underline(true)
	FormatCodeStyle = lipgloss.NewStyle().Foreground(FormatCodeColor)
	FormatQuoteStyle = lipgloss.NewStyle().Foreground(FormatQuoteColor).Italic(true)
	FormatListStyle = lipgloss.NewStyle().Foreground(FormatListColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	// Prompt inputs
	PromptInputStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	PromptLabelStyle = lipgloss.NewStyle().Foreground(FormTextInputLabelColor)
	PromptLabelFocusedStyle = lipgloss.NewStyle().Foreground(FormTextInputFocusedLabelColor)

	// Call registered rebuilders (e.g., edit mode source highlighting)
	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
