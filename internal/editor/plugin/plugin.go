// Package plugin defines the contract embedders implement to extend an
// editor with their own commands. Plugins are handed to the editor at
// construction time and live for the editor's lifetime.
package plugin

import "github.com/zjrosen/plume/internal/editor/command"

// Plugin contributes commands to an editor instance.
type Plugin interface {
	// Name identifies the plugin for later lookup.
	Name() string

	// Commands returns the command definitions the plugin registers.
	// A name colliding with a builtin is stored but never resolved;
	// builtins win lookups.
	Commands() []*command.Command
}

// Host is the slice of the editor surface a plugin receives during setup.
type Host interface {
	Execute(name string, args ...any)
	Subscribe(event string, fn func(payload any)) string
}

// Initializer is an optional second phase for plugins that want the host
// once their commands are registered.
type Initializer interface {
	Setup(h Host)
}
