// Package app contains the root application model.
package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/plume/internal/keys"
	"github.com/zjrosen/plume/internal/log"
	"github.com/zjrosen/plume/internal/mode"
	"github.com/zjrosen/plume/internal/mode/edit"
	"github.com/zjrosen/plume/internal/watcher"
)

// Model is the root application state. It owns the active mode controller
// and the document file watcher; everything else lives in the services.
type Model struct {
	currentMode mode.AppMode
	edit        mode.Controller

	services mode.Services
	keys     keys.KeyMap

	width  int
	height int

	watcherHandle *watcher.Watcher
	changes       <-chan struct{}
}

// New creates the application model. Auto-reload silently degrades to off
// when the watcher cannot start; the editor works fine without it.
func New(services mode.Services) Model {
	m := Model{
		currentMode: mode.ModeEdit,
		edit:        edit.New(services),
		services:    services,
		keys:        keys.DefaultKeyMap(),
	}

	if services.Config.AutoReload && services.DocPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(services.DocPath))
		if err != nil {
			log.ErrorErr(log.CatWatcher, "watcher init failed", err, "path", services.DocPath)
			return m
		}
		ch, err := w.Start()
		if err != nil {
			log.ErrorErr(log.CatWatcher, "watcher start failed", err, "path", services.DocPath)
			_ = w.Stop()
			return m
		}
		m.watcherHandle = w
		m.changes = ch
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.edit.Init()}
	if m.changes != nil {
		cmds = append(cmds, m.waitForChange())
	}
	return tea.Batch(cmds...)
}

// waitForChange blocks on the watcher channel and surfaces the next disk
// change as a message. Re-armed after every delivery.
func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return edit.FileChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.edit = m.edit.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

	case edit.FileChangedMsg:
		var cmd tea.Cmd
		m.edit, cmd = m.edit.Update(msg)
		return m, tea.Batch(cmd, m.waitForChange())
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return m, cmd
}

// View implements tea.Model. zone.Scan strips the click-zone markers and
// records their screen positions for mouse routing.
func (m Model) View() string {
	return zone.Scan(m.edit.View())
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	m.services.Editor.Destroy()
	return nil
}
