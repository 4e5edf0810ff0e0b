// Package command implements the editing command registry and executor.
// Commands are stored in a name-keyed table rather than an enumeration
// because plugins extend the set at construction time; each entry couples
// a handler with declarative metadata consumed by toolbars and the
// executor's enablement check.
package command

import (
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/editor/format"
	"github.com/zjrosen/plume/internal/editor/history"
	"github.com/zjrosen/plume/internal/editor/sanitize"
	"github.com/zjrosen/plume/internal/editor/selection"
)

// Kind tags how a command behaves.
type Kind string

const (
	// KindToggle commands idempotently apply or remove a mark.
	KindToggle Kind = "toggle"
	// KindApply commands set a value such as a heading level or color.
	KindApply Kind = "apply"
	// KindAction commands fire and forget (undo, insert rule).
	KindAction Kind = "action"
)

// Context carries what a handler may touch while mutating the surface.
type Context struct {
	Root      *html.Node
	Selection *selection.Manager
	History   *history.Manager
	Sanitizer *sanitize.Sanitizer
	Resolver  *format.Resolver
	Args      []any
}

// CurrentFormat resolves the format state at the active selection.
func (c *Context) CurrentFormat() format.State {
	if state, ok := c.Selection.Current(); ok {
		return state.Format
	}
	return format.Default()
}

// Command couples a handler with its declarative metadata.
type Command struct {
	Name     string
	Category string
	Kind     Kind

	// DefaultArgs are used when the caller supplies none, so a toolbar
	// button can invoke heading without knowing the level.
	DefaultArgs []any

	// RequiresSelection disables the command while the selection is
	// collapsed or absent.
	RequiresSelection bool

	// ExclusiveGroup hints to toolbars that only one member of the group
	// should display active. The executor does not enforce it.
	ExclusiveGroup string

	// Toolbar marks commands meant to surface as toolbar buttons.
	Toolbar bool

	// CanExecute is an optional extra enablement predicate.
	CanExecute func(ctx *Context) bool

	Handler func(ctx *Context) error
}

// Metadata is the read-only projection of a command handed to embedders,
// with enablement computed at snapshot time.
type Metadata struct {
	Name              string
	Category          string
	Kind              Kind
	DefaultArgs       []any
	RequiresSelection bool
	ExclusiveGroup    string
	Toolbar           bool
	Enabled           bool
}

// Registry maps command names to handlers plus metadata. Builtins live in
// the primary table; plugin registrations land in a flat fallback map
// consulted when the primary lookup misses, so builtins always win.
type Registry struct {
	builtin map[string]*Command
	plugin  map[string]*Command
}

// NewRegistry builds a registry preloaded with the builtin command set.
func NewRegistry() *Registry {
	r := &Registry{
		builtin: make(map[string]*Command),
		plugin:  make(map[string]*Command),
	}
	for _, cmd := range builtins() {
		r.builtin[cmd.Name] = cmd
	}
	return r
}

// Lookup resolves a command by name, builtins first.
func (r *Registry) Lookup(name string) (*Command, bool) {
	if cmd, ok := r.builtin[name]; ok {
		return cmd, true
	}
	cmd, ok := r.plugin[name]
	return cmd, ok
}

// RegisterPlugin adds a plugin command to the fallback map. A name that
// shadows a builtin is stored but never resolved, which keeps registration
// order-independent and permissive.
func (r *Registry) RegisterPlugin(cmd *Command) error {
	if cmd == nil || cmd.Name == "" {
		return fmt.Errorf("plugin command requires a name")
	}
	if cmd.Handler == nil {
		return fmt.Errorf("plugin command %q requires a handler", cmd.Name)
	}
	r.plugin[cmd.Name] = cmd
	return nil
}

// Names returns every resolvable command name, sorted.
func (r *Registry) Names() []string {
	seen := make(map[string]bool, len(r.builtin)+len(r.plugin))
	for name := range r.builtin {
		seen[name] = true
	}
	for name := range r.plugin {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every resolvable command, sorted by name.
func (r *Registry) All() []*Command {
	names := r.Names()
	cmds := make([]*Command, 0, len(names))
	for _, name := range names {
		cmd, _ := r.Lookup(name)
		cmds = append(cmds, cmd)
	}
	return cmds
}

// stringArg extracts a string argument, reporting false for anything else.
// Malformed arguments make handlers silent no-ops rather than errors.
func stringArg(args []any, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	s, ok := args[i].(string)
	return s, ok
}

// intArg extracts an integer argument, accepting ints, floats, and
// numeric strings since commands arrive from loosely typed UI bindings.
func intArg(args []any, i int) (int, bool) {
	if i >= len(args) {
		return 0, false
	}
	switch v := args[i].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
