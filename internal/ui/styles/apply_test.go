package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyTheme_DefaultPreset(t *testing.T) {
	err := ApplyTheme(ThemeConfig{})
	require.NoError(t, err)
	require.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
}

func TestApplyTheme_NamedPreset(t *testing.T) {
	Presets["scratch"] = Preset{
		Name:        "scratch",
		Description: "test-only preset",
		Colors: map[ColorToken]string{
			TokenMarkupTag: "#FF0000",
		},
	}
	defer delete(Presets, "scratch")

	err := ApplyTheme(ThemeConfig{Preset: "scratch"})
	require.NoError(t, err)
	require.Equal(t, "#FF0000", MarkupTagColor.Dark)
}

func TestApplyTheme_ColorOverride(t *testing.T) {
	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"selection.background": "#00FF00",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "#00FF00", SelectionBackgroundColor.Dark)
}

func TestApplyTheme_OverrideBeatsPreset(t *testing.T) {
	Presets["scratch2"] = Preset{
		Name:        "scratch2",
		Description: "test-only preset",
		Colors: map[ColorToken]string{
			TokenTextPrimary: "#FF0000",
			TokenFormatLink:  "#0000FF",
		},
	}
	defer delete(Presets, "scratch2")

	err := ApplyTheme(ThemeConfig{
		Preset: "scratch2",
		Colors: map[string]string{
			"text.primary": "#00FF00",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "#00FF00", TextPrimaryColor.Dark, "the explicit override wins")
}

func TestApplyTheme_UnknownPreset(t *testing.T) {
	err := ApplyTheme(ThemeConfig{Preset: "nonexistent"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown theme preset")
}

func TestApplyTheme_UnknownToken(t *testing.T) {
	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"invalid.token": "#FF0000",
		},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown color token")
}

func TestApplyTheme_InvalidHexColor(t *testing.T) {
	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{
			"text.primary": "not-a-color",
		},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid hex color")
}

func TestApplyTheme_FiresRegisteredRebuilders(t *testing.T) {
	// The edit screen rebuilds its pane and markup styles through this
	// hook; a theme change that skipped it would leave stale colors.
	fired := 0
	RegisterStyleRebuilder(func() { fired++ })
	defer func() { styleRebuilders = styleRebuilders[:len(styleRebuilders)-1] }()

	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, 1, fired)

	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, 2, fired)
}

func TestIsValidToken(t *testing.T) {
	tests := []struct {
		token ColorToken
		valid bool
	}{
		{TokenTextPrimary, true},
		{TokenStatusError, true},
		{TokenSelectionBackground, true},
		{TokenMarkupEntity, true},
		{ColorToken("selection.background"), true},
		{ColorToken("invalid.token"), false},
		{ColorToken(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.token), func(t *testing.T) {
			require.Equal(t, tt.valid, isValidToken(tt.token))
		})
	}
}

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		color string
		valid bool
	}{
		{"#FFF", true},
		{"#FFFFFF", true},
		{"#abc", true},
		{"#AbCdEf", true},
		{"#123456", true},
		{"FFFFFF", false},
		{"#FF", false},
		{"#FFFFFFF", false},
		{"#GGGGGG", false},
		{"not-color", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			require.Equal(t, tt.valid, isValidHexColor(tt.color))
		})
	}
}
