// Package mode defines the mode controller interface and shared services.
package mode

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/plume/internal/config"
	"github.com/zjrosen/plume/internal/editor"
	"github.com/zjrosen/plume/internal/flags"
)

// AppMode identifies the current application mode.
type AppMode int

const (
	ModeEdit AppMode = iota
)

// Controller defines the interface all modes must implement.
type Controller interface {
	// Init returns initial commands for the mode.
	Init() tea.Cmd

	// Update handles messages and returns updated model and commands.
	Update(msg tea.Msg) (Controller, tea.Cmd)

	// View renders the mode's UI.
	View() string

	// SetSize handles terminal resize events.
	SetSize(width, height int) Controller
}

// Services contains shared dependencies injected into mode controllers.
type Services struct {
	Editor     *editor.Editor
	Config     *config.Config
	ConfigPath string
	DocPath    string
	Flags      *flags.Registry
}
