// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextDescription ColorToken = "text.description"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault   ColorToken = "border.default"
	TokenBorderFocus     ColorToken = "border.focus"
	TokenBorderHighlight ColorToken = "border.highlight"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator  ColorToken = "selection.indicator"
	TokenSelectionBackground ColorToken = "selection.background"

	// Forms
	TokenFormBorder      ColorToken = "form.border"
	TokenFormBorderFocus ColorToken = "form.border.focus" //nolint:gosec // UI color token, not credentials
	TokenFormLabel       ColorToken = "form.label"
	TokenFormLabelFocus  ColorToken = "form.label.focus"

	// Overlays/Modals
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	// Toolbar mark buttons
	TokenToolbarActive   ColorToken = "toolbar.active"
	TokenToolbarInactive ColorToken = "toolbar.inactive"
	TokenToolbarDisabled ColorToken = "toolbar.disabled"

	// Block format indicators
	TokenFormatHeading ColorToken = "format.heading"
	TokenFormatLink    ColorToken = "format.link"
	TokenFormatCode    ColorToken = "format.code"
	TokenFormatQuote   ColorToken = "format.quote"
	TokenFormatList    ColorToken = "format.list"

	// HTML source syntax highlighting
	TokenMarkupTag     ColorToken = "markup.tag"
	TokenMarkupAttr    ColorToken = "markup.attr"
	TokenMarkupString  ColorToken = "markup.string"
	TokenMarkupEntity  ColorToken = "markup.entity"
	TokenMarkupComment ColorToken = "markup.comment"
	TokenMarkupPunct   ColorToken = "markup.punct"
	TokenMarkupText    ColorToken = "markup.text"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		// Text hierarchy
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenTextDescription,
		TokenTextPlaceholder,

		// Borders
		TokenBorderDefault,
		TokenBorderFocus,
		TokenBorderHighlight,

		// Status indicators
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		// Selection
		TokenSelectionIndicator,
		TokenSelectionBackground,

		// Forms
		TokenFormBorder,
		TokenFormBorderFocus,
		TokenFormLabel,
		TokenFormLabelFocus,

		// Overlays/Modals
		TokenOverlayTitle,
		TokenOverlayBorder,

		// Toolbar mark buttons
		TokenToolbarActive,
		TokenToolbarInactive,
		TokenToolbarDisabled,

		// Block format indicators
		TokenFormatHeading,
		TokenFormatLink,
		TokenFormatCode,
		TokenFormatQuote,
		TokenFormatList,

		// HTML source syntax highlighting
		TokenMarkupTag,
		TokenMarkupAttr,
		TokenMarkupString,
		TokenMarkupEntity,
		TokenMarkupComment,
		TokenMarkupPunct,
		TokenMarkupText,
	}
}
