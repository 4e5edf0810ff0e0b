package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/plume/internal/app"
	"github.com/zjrosen/plume/internal/config"
	"github.com/zjrosen/plume/internal/editor"
	"github.com/zjrosen/plume/internal/flags"
	"github.com/zjrosen/plume/internal/log"
	"github.com/zjrosen/plume/internal/mode"
	"github.com/zjrosen/plume/internal/tracing"
	"github.com/zjrosen/plume/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "plume [file]",
	Short:   "A terminal rich-text editor",
	Long:    `A terminal rich-text editor built on an embeddable editing engine: formatting commands, selection-aware format state, undo history, and sanitized HTML documents.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/plume/config.yaml)")
	rootCmd.Flags().Bool("debug", false,
		"write a debug log next to the config file")
	rootCmd.Flags().Bool("read-only", false,
		"open the document read-only")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable reloading the document when the file changes on disk")
	rootCmd.Flags().Bool("trace", false,
		"enable tracing regardless of the config file setting")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("editor.history_capacity", defaults.Editor.HistoryCapacity)
	viper.SetDefault("editor.history_debounce_ms", defaults.Editor.HistoryDebounceMs)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_toolbar", defaults.UI.ShowToolbar)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("ui.wrap_width", defaults.UI.WrapWidth)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .plume/config.yaml (current directory)
		// 2. ~/.config/plume/config.yaml (user config)
		if _, err := os.Stat(".plume/config.yaml"); err == nil {
			viper.SetConfigFile(".plume/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "plume"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .plume/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".plume/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if readOnly, _ := cmd.Flags().GetBool("read-only"); readOnly {
		cfg.Editor.ReadOnly = true
	}
	if noAutoReload, _ := cmd.Flags().GetBool("no-auto-reload"); noAutoReload {
		cfg.AutoReload = false
	}
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		cfg.Tracing.Enabled = true
	}

	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = ".plume/config.yaml"
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logPath := filepath.Join(filepath.Dir(configFilePath), "debug.log")
		if cleanup, err := log.Init(logPath); err == nil {
			defer cleanup()
		}
	}

	if err := applyTheme(cfg); err != nil {
		return err
	}

	// Fall back to the terminal background for the help style when the
	// config does not pin one.
	if cfg.UI.MarkdownStyle == "" {
		if termenv.HasDarkBackground() {
			cfg.UI.MarkdownStyle = "dark"
		} else {
			cfg.UI.MarkdownStyle = "light"
		}
	}

	provider, err := newTraceProvider(cfg, configFilePath)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = provider.Shutdown(ctx)
		cancel()
	}()

	var docPath string
	var content string
	if len(args) == 1 {
		docPath = args[0]
		data, err := os.ReadFile(docPath) //nolint:gosec // G304: user-supplied document path
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", docPath, err)
		}
		content = string(data)
	}

	ed, err := editor.New(editor.Options{
		Content:         content,
		ReadOnly:        cfg.Editor.ReadOnly,
		HistoryCapacity: cfg.Editor.HistoryCapacity,
		HistoryDebounce: time.Duration(cfg.Editor.HistoryDebounceMs) * time.Millisecond,
		Tracer:          provider.Tracer(),
	})
	if err != nil {
		return fmt.Errorf("creating editor: %w", err)
	}

	zone.NewGlobal()
	model := app.New(mode.Services{
		Editor:     ed,
		Config:     &cfg,
		ConfigPath: configFilePath,
		DocPath:    docPath,
		Flags:      flags.New(cfg.Flags),
	})

	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func applyTheme(cfg config.Config) error {
	if cfg.Theme.Mode == "dark" || cfg.Theme.Mode == "light" {
		lipgloss.SetHasDarkBackground(cfg.Theme.Mode == "dark")
	}
	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	return nil
}

// newTraceProvider maps the config section onto the tracing subsystem,
// deriving the file exporter path from the config location when unset.
func newTraceProvider(cfg config.Config, configFilePath string) (*tracing.Provider, error) {
	tc := tracing.DefaultConfig()
	tc.Enabled = cfg.Tracing.Enabled
	if cfg.Tracing.Exporter != "" {
		tc.Exporter = cfg.Tracing.Exporter
	}
	if cfg.Tracing.OTLPEndpoint != "" {
		tc.OTLPEndpoint = cfg.Tracing.OTLPEndpoint
	}
	if cfg.Tracing.SampleRate > 0 {
		tc.SampleRate = cfg.Tracing.SampleRate
	}
	tc.FilePath = cfg.Tracing.FilePath
	if tc.FilePath == "" {
		tc.FilePath = filepath.Join(filepath.Dir(configFilePath), "traces", "traces.jsonl")
	}
	return tracing.NewProvider(tc)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
