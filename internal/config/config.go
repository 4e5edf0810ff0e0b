// Package config provides configuration types and defaults for plume.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/plume/internal/log"
)

// BindingConfig defines a single keyboard binding for the editor keymap.
// Bindings are resolved first-match-wins, so order matters: user bindings
// are prepended to the defaults and shadow them.
type BindingConfig struct {
	Key     string `mapstructure:"key"`     // base key, e.g. "b"
	Mod     bool   `mapstructure:"mod"`     // ctrl on most platforms, meta on macOS
	Shift   bool   `mapstructure:"shift"`
	Alt     bool   `mapstructure:"alt"`
	Command string `mapstructure:"command"` // command name to execute
	Args    []any  `mapstructure:"args"`    // positional command arguments, e.g. [3] for heading
}

// Config holds all configuration options for plume.
type Config struct {
	AutoReload bool            `mapstructure:"auto_reload"`
	Editor     EditorConfig    `mapstructure:"editor"`
	UI         UIConfig        `mapstructure:"ui"`
	Theme      ThemeConfig     `mapstructure:"theme"`
	Bindings   []BindingConfig `mapstructure:"bindings"`
	Tracing    TracingConfig   `mapstructure:"tracing"`
	Flags      map[string]bool `mapstructure:"flags"`
}

// EditorConfig holds engine tuning options.
type EditorConfig struct {
	HistoryCapacity   int  `mapstructure:"history_capacity"`    // undo entries kept (default 100)
	HistoryDebounceMs int  `mapstructure:"history_debounce_ms"` // quiet period before an undo snapshot (default 300)
	ReadOnly          bool `mapstructure:"read_only"`           // open documents read-only
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	ShowToolbar   bool   `mapstructure:"show_toolbar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
	WrapWidth     int    `mapstructure:"wrap_width"`     // plain-text preview wrap column (default 72)
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     text:
	//       primary: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "text.primary": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// TracingConfig holds trace export configuration for the command pipeline.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/plume/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/plume/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "plume", "traces", "traces.jsonl")
}

// ValidateBindings checks keyboard binding configuration for errors.
// Returns nil if bindings are valid or empty (defaults still apply).
func ValidateBindings(bindings []BindingConfig) error {
	for i, b := range bindings {
		if b.Key == "" {
			return fmt.Errorf("binding %d: key is required", i)
		}
		if b.Command == "" {
			return fmt.Errorf("binding %d (%s): command is required", i, b.Key)
		}
	}
	return nil
}

// ValidateEditor checks editor tuning for errors.
// Zero values are valid and fall back to engine defaults.
func ValidateEditor(ed EditorConfig) error {
	if ed.HistoryCapacity < 0 {
		return fmt.Errorf("editor.history_capacity must be >= 0, got %d", ed.HistoryCapacity)
	}
	if ed.HistoryDebounceMs < 0 {
		return fmt.Errorf("editor.history_debounce_ms must be >= 0, got %d", ed.HistoryDebounceMs)
	}
	return nil
}

// ValidateUI checks user interface configuration for errors.
func ValidateUI(ui UIConfig) error {
	if ui.MarkdownStyle != "" && ui.MarkdownStyle != "dark" && ui.MarkdownStyle != "light" {
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
	if ui.WrapWidth < 0 {
		return fmt.Errorf("ui.wrap_width must be >= 0, got %d", ui.WrapWidth)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	// Validate Exporter is a valid option
	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		// FilePath is required when Exporter is "file"
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}

		// OTLPEndpoint is required when Exporter is "otlp"
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Validate checks the whole configuration for errors.
func Validate(cfg Config) error {
	if err := ValidateEditor(cfg.Editor); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	if err := ValidateBindings(cfg.Bindings); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoReload: true,
		Editor: EditorConfig{
			HistoryCapacity:   100,
			HistoryDebounceMs: 300,
			ReadOnly:          false,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			ShowToolbar:   true,
			MarkdownStyle: "dark",
			WrapWidth:     72,
		},
		Theme: ThemeConfig{
			// Default theme uses the "default" preset
			Preset: "",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Plume Configuration

# Reload the open document when the file changes on disk
auto_reload: true

# Editor engine settings
editor:
  history_capacity: 100      # Undo entries kept before the oldest is evicted
  history_debounce_ms: 300   # Quiet period before changes become one undo step
  # read_only: true          # Open documents read-only

# UI settings
ui:
  show_status_bar: true   # Show status bar at bottom
  show_toolbar: true      # Show the formatting toolbar
  # markdown_style: dark  # Help rendering style: "dark" (default) or "light"
  wrap_width: 72          # Plain-text preview wrap column

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default plume theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   catppuccin-latte  - Warm, cozy light theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   text.primary: "#FFFFFF"
  #   status.error: "#FF0000"

# Keyboard bindings - prepended to the defaults, first match wins
# bindings:
#   - key: d
#     mod: true
#     command: strikethrough
#
#   - key: "2"
#     mod: true
#     alt: true
#     command: heading
#     args: [2]
#
# Binding options:
#   key: Base key (required)
#   mod: Require ctrl/meta (default false)
#   shift: Require shift (default false)
#   alt: Require alt (default false)
#   command: Command name to execute (required) - see 'plume commands'
#   args: Positional arguments passed to the command

# Trace export configuration
# Enables visibility into command execution, normalization, and sanitization
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/plume/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)

# Feature flags
# flags:
#   enforce-exclusive-groups: true  # Toolbar deactivates rival group members
#   history-inspector: true         # Ctrl+H history diff overlay
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
