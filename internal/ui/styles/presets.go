// Package styles contains Lip Gloss style definitions.
package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the current plume color scheme.
// Color values extracted from styles.go AdaptiveColor definitions (Dark values).
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default plume theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenTextDescription: "#999999",
		TokenTextPlaceholder: "#777777",

		// Borders
		TokenBorderDefault:   "#696969",
		TokenBorderFocus:     "#FFFFFF",
		TokenBorderHighlight: "#54A0FF",

		// Status indicators
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		// Selection
		TokenSelectionIndicator:  "#FFFFFF",
		TokenSelectionBackground: "#1A5276",

		// Forms
		TokenFormBorder:      "#8C8C8C",
		TokenFormBorderFocus: "#FFFFFF",
		TokenFormLabel:       "#8C8C8C",
		TokenFormLabelFocus:  "#FFFFFF",

		// Overlays/Modals
		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",

		// Toolbar mark buttons
		TokenToolbarActive:   "#54A0FF",
		TokenToolbarInactive: "#999999",
		TokenToolbarDisabled: "#666666",

		// Block format indicators
		TokenFormatHeading: "#7D56F4",
		TokenFormatLink:    "#54A0FF",
		TokenFormatCode:    "#FECA57",
		TokenFormatQuote:   "#999999",
		TokenFormatList:    "#73F59F",

		// HTML source syntax highlighting (Catppuccin Mocha inspired)
		TokenMarkupTag:     "#CBA6F7",
		TokenMarkupAttr:    "#94E2D5",
		TokenMarkupString:  "#F9E2AF",
		TokenMarkupEntity:  "#FAB387",
		TokenMarkupComment: "#6C7086",
		TokenMarkupPunct:   "#89B4FA",
		TokenMarkupText:    "#CCCCCC",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
// Mocha flavor - warm, cozy dark theme with pastel colors.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#CDD6F4", // text
		TokenTextSecondary:   "#BAC2DE", // subtext1
		TokenTextMuted:       "#6C7086", // overlay0
		TokenTextDescription: "#A6ADC8", // subtext0
		TokenTextPlaceholder: "#585B70", // surface2

		// Borders
		TokenBorderDefault:   "#6C7086", // overlay0
		TokenBorderFocus:     "#CDD6F4", // text
		TokenBorderHighlight: "#89B4FA", // blue

		// Status indicators
		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		// Selection
		TokenSelectionIndicator:  "#CDD6F4", // text
		TokenSelectionBackground: "#45475A", // surface1

		// Forms
		TokenFormBorder:      "#6C7086", // overlay0
		TokenFormBorderFocus: "#CDD6F4", // text
		TokenFormLabel:       "#6C7086", // overlay0
		TokenFormLabelFocus:  "#CDD6F4", // text

		// Overlays/Modals
		TokenOverlayTitle:  "#CDD6F4", // text
		TokenOverlayBorder: "#6C7086", // overlay0

		// Toolbar mark buttons
		TokenToolbarActive:   "#89B4FA", // blue
		TokenToolbarInactive: "#A6ADC8", // subtext0
		TokenToolbarDisabled: "#585B70", // surface2

		// Block format indicators
		TokenFormatHeading: "#CBA6F7", // mauve
		TokenFormatLink:    "#89B4FA", // blue
		TokenFormatCode:    "#F9E2AF", // yellow
		TokenFormatQuote:   "#A6ADC8", // subtext0
		TokenFormatList:    "#A6E3A1", // green

		// HTML source syntax highlighting
		TokenMarkupTag:     "#CBA6F7", // mauve
		TokenMarkupAttr:    "#94E2D5", // teal
		TokenMarkupString:  "#F9E2AF", // yellow
		TokenMarkupEntity:  "#FAB387", // peach
		TokenMarkupComment: "#6C7086", // overlay0
		TokenMarkupPunct:   "#89B4FA", // blue
		TokenMarkupText:    "#CDD6F4", // text
	},
}

// CatppuccinLattePreset is the Catppuccin Latte (light) theme.
// Colors from: https://catppuccin.com/palette
// Latte flavor - light theme for bright environments.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Catppuccin Latte - warm, cozy light theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#4C4F69", // text
		TokenTextSecondary:   "#5C5F77", // subtext1
		TokenTextMuted:       "#9CA0B0", // overlay0
		TokenTextDescription: "#6C6F85", // subtext0
		TokenTextPlaceholder: "#ACB0BE", // surface2

		// Borders
		TokenBorderDefault:   "#9CA0B0", // overlay0
		TokenBorderFocus:     "#4C4F69", // text
		TokenBorderHighlight: "#1E66F5", // blue

		// Status indicators
		TokenStatusSuccess: "#40A02B", // green
		TokenStatusWarning: "#DF8E1D", // yellow
		TokenStatusError:   "#D20F39", // red

		// Selection
		TokenSelectionIndicator:  "#4C4F69", // text
		TokenSelectionBackground: "#BCC0CC", // surface1

		// Forms
		TokenFormBorder:      "#9CA0B0", // overlay0
		TokenFormBorderFocus: "#4C4F69", // text
		TokenFormLabel:       "#9CA0B0", // overlay0
		TokenFormLabelFocus:  "#4C4F69", // text

		// Overlays/Modals
		TokenOverlayTitle:  "#4C4F69", // text
		TokenOverlayBorder: "#9CA0B0", // overlay0

		// Toolbar mark buttons
		TokenToolbarActive:   "#1E66F5", // blue
		TokenToolbarInactive: "#6C6F85", // subtext0
		TokenToolbarDisabled: "#ACB0BE", // surface2

		// Block format indicators
		TokenFormatHeading: "#8839EF", // mauve
		TokenFormatLink:    "#1E66F5", // blue
		TokenFormatCode:    "#DF8E1D", // yellow
		TokenFormatQuote:   "#6C6F85", // subtext0
		TokenFormatList:    "#40A02B", // green

		// HTML source syntax highlighting
		TokenMarkupTag:     "#8839EF", // mauve
		TokenMarkupAttr:    "#179299", // teal
		TokenMarkupString:  "#DF8E1D", // yellow
		TokenMarkupEntity:  "#FE640B", // peach
		TokenMarkupComment: "#9CA0B0", // overlay0
		TokenMarkupPunct:   "#1E66F5", // blue
		TokenMarkupText:    "#4C4F69", // text
	},
}

// DraculaPreset is the Dracula theme.
// Colors from: https://draculatheme.com/contribute
// Dark theme with vibrant, high-contrast colors.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#F8F8F2", // foreground
		TokenTextSecondary:   "#F8F8F2", // foreground
		TokenTextMuted:       "#6272A4", // comment
		TokenTextDescription: "#F8F8F2", // foreground
		TokenTextPlaceholder: "#6272A4", // comment

		// Borders
		TokenBorderDefault:   "#6272A4", // comment
		TokenBorderFocus:     "#F8F8F2", // foreground
		TokenBorderHighlight: "#BD93F9", // purple

		// Status indicators
		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#F1FA8C", // yellow
		TokenStatusError:   "#FF5555", // red

		// Selection
		TokenSelectionIndicator:  "#F8F8F2", // foreground
		TokenSelectionBackground: "#44475A", // current line

		// Forms
		TokenFormBorder:      "#6272A4", // comment
		TokenFormBorderFocus: "#F8F8F2", // foreground
		TokenFormLabel:       "#6272A4", // comment
		TokenFormLabelFocus:  "#F8F8F2", // foreground

		// Overlays/Modals
		TokenOverlayTitle:  "#F8F8F2", // foreground
		TokenOverlayBorder: "#6272A4", // comment

		// Toolbar mark buttons
		TokenToolbarActive:   "#BD93F9", // purple
		TokenToolbarInactive: "#F8F8F2", // foreground
		TokenToolbarDisabled: "#6272A4", // comment

		// Block format indicators
		TokenFormatHeading: "#BD93F9", // purple
		TokenFormatLink:    "#8BE9FD", // cyan
		TokenFormatCode:    "#F1FA8C", // yellow
		TokenFormatQuote:   "#6272A4", // comment
		TokenFormatList:    "#50FA7B", // green

		// HTML source syntax highlighting
		TokenMarkupTag:     "#FF79C6", // pink
		TokenMarkupAttr:    "#50FA7B", // green
		TokenMarkupString:  "#F1FA8C", // yellow
		TokenMarkupEntity:  "#FFB86C", // orange
		TokenMarkupComment: "#6272A4", // comment
		TokenMarkupPunct:   "#BD93F9", // purple
		TokenMarkupText:    "#F8F8F2", // foreground
	},
}

// NordPreset is the Nord theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
// Arctic, north-bluish color palette with calm, muted tones.
// Polar Night: #2E3440, #3B4252, #434C5E, #4C566A (backgrounds)
// Snow Storm: #D8DEE9, #E5E9F0, #ECEFF4 (text)
// Frost: #8FBCBB, #88C0D0, #81A1C1, #5E81AC (accents)
// Aurora: #BF616A (red), #D08770 (orange), #EBCB8B (yellow), #A3BE8C (green), #B48EAD (purple)
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#ECEFF4", // snow storm 3
		TokenTextSecondary:   "#E5E9F0", // snow storm 2
		TokenTextMuted:       "#4C566A", // polar night 4
		TokenTextDescription: "#D8DEE9", // snow storm 1
		TokenTextPlaceholder: "#4C566A", // polar night 4

		// Borders
		TokenBorderDefault:   "#4C566A", // polar night 4
		TokenBorderFocus:     "#ECEFF4", // snow storm 3
		TokenBorderHighlight: "#88C0D0", // frost 2

		// Status indicators
		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusWarning: "#EBCB8B", // aurora yellow
		TokenStatusError:   "#BF616A", // aurora red

		// Selection
		TokenSelectionIndicator:  "#ECEFF4", // snow storm 3
		TokenSelectionBackground: "#434C5E", // polar night 3

		// Forms
		TokenFormBorder:      "#4C566A", // polar night 4
		TokenFormBorderFocus: "#ECEFF4", // snow storm 3
		TokenFormLabel:       "#4C566A", // polar night 4
		TokenFormLabelFocus:  "#ECEFF4", // snow storm 3

		// Overlays/Modals
		TokenOverlayTitle:  "#ECEFF4", // snow storm 3
		TokenOverlayBorder: "#4C566A", // polar night 4

		// Toolbar mark buttons
		TokenToolbarActive:   "#88C0D0", // frost 2
		TokenToolbarInactive: "#D8DEE9", // snow storm 1
		TokenToolbarDisabled: "#4C566A", // polar night 4

		// Block format indicators
		TokenFormatHeading: "#B48EAD", // aurora purple
		TokenFormatLink:    "#88C0D0", // frost 2
		TokenFormatCode:    "#EBCB8B", // aurora yellow
		TokenFormatQuote:   "#D8DEE9", // snow storm 1
		TokenFormatList:    "#A3BE8C", // aurora green

		// HTML source syntax highlighting
		TokenMarkupTag:     "#81A1C1", // frost 3
		TokenMarkupAttr:    "#8FBCBB", // frost 1
		TokenMarkupString:  "#EBCB8B", // aurora yellow
		TokenMarkupEntity:  "#D08770", // aurora orange
		TokenMarkupComment: "#4C566A", // polar night 4
		TokenMarkupPunct:   "#5E81AC", // frost 4
		TokenMarkupText:    "#ECEFF4", // snow storm 3
	},
}

// HighContrastPreset is a high contrast theme for accessibility.
// Designed for users with visual impairments or those who prefer maximum visibility.
// All colors meet WCAG AAA contrast requirements (7:1 minimum ratio against black).
// No subtle or muted colors - everything is clearly visible.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		// Text hierarchy - pure white for maximum visibility
		TokenTextPrimary:     "#FFFFFF",
		TokenTextSecondary:   "#FFFFFF",
		TokenTextMuted:       "#FFFFFF", // no muted colors in high contrast
		TokenTextDescription: "#FFFFFF",
		TokenTextPlaceholder: "#CCCCCC", // slightly dimmed but still readable

		// Borders - white for maximum visibility
		TokenBorderDefault:   "#FFFFFF",
		TokenBorderFocus:     "#FFFF00", // bright yellow for focus
		TokenBorderHighlight: "#00FFFF", // cyan for highlights

		// Status indicators - pure, saturated colors
		TokenStatusSuccess: "#00FF00", // pure green
		TokenStatusWarning: "#FFFF00", // pure yellow
		TokenStatusError:   "#FF0000", // pure red

		// Selection - bright indicator
		TokenSelectionIndicator:  "#FFFF00", // yellow for visibility
		TokenSelectionBackground: "#0000FF", // blue background reads under white text

		// Forms - white borders for visibility
		TokenFormBorder:      "#FFFFFF",
		TokenFormBorderFocus: "#FFFF00", // yellow focus
		TokenFormLabel:       "#FFFFFF",
		TokenFormLabelFocus:  "#FFFF00",

		// Overlays/Modals - white borders
		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",

		// Toolbar mark buttons - active state must be unmistakable
		TokenToolbarActive:   "#FFFF00", // yellow
		TokenToolbarInactive: "#FFFFFF", // white
		TokenToolbarDisabled: "#808080", // gray

		// Block format indicators - distinct colors
		TokenFormatHeading: "#FF00FF", // magenta
		TokenFormatLink:    "#00FFFF", // cyan
		TokenFormatCode:    "#FFFF00", // yellow
		TokenFormatQuote:   "#FFFFFF", // white
		TokenFormatList:    "#00FF00", // green

		// HTML source syntax highlighting - high contrast
		TokenMarkupTag:     "#FF00FF", // magenta
		TokenMarkupAttr:    "#00FFFF", // cyan
		TokenMarkupString:  "#FFFF00", // yellow
		TokenMarkupEntity:  "#FF8800", // orange
		TokenMarkupComment: "#808080", // gray (only muted color - comments are inert)
		TokenMarkupPunct:   "#FFFFFF", // white
		TokenMarkupText:    "#FFFFFF", // white
	},
}
