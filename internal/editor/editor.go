// Package editor assembles the engine behind one embeddable facade: a
// parsed document surface, selection tracking, format resolution,
// normalization, debounced history, sanitization, and the command
// pipeline, with a synchronous event bus for state-change notifications.
//
// One Editor corresponds to one editable surface. A single mutex
// serializes the public entry points and the timer callbacks; event
// callbacks run outside it and may call back in.
package editor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/editor/command"
	"github.com/zjrosen/plume/internal/editor/dom"
	"github.com/zjrosen/plume/internal/editor/format"
	"github.com/zjrosen/plume/internal/editor/history"
	"github.com/zjrosen/plume/internal/editor/normalize"
	"github.com/zjrosen/plume/internal/editor/plugin"
	"github.com/zjrosen/plume/internal/editor/sanitize"
	"github.com/zjrosen/plume/internal/editor/schedule"
	"github.com/zjrosen/plume/internal/editor/selection"
	"github.com/zjrosen/plume/internal/log"
)

// Options configures a new Editor. The zero value is usable: an empty
// document, default history bounds, real timers, no measurer, no plugins.
type Options struct {
	// Content is the initial markup. It is sanitized and normalized
	// before the first history snapshot.
	Content string

	// ReadOnly starts the editor with commands disabled.
	ReadOnly bool

	// HistoryCapacity and HistoryDebounce tune the undo stack.
	// Non-positive values fall back to the history defaults.
	HistoryCapacity int
	HistoryDebounce time.Duration

	// Scheduler drives the history debounce timer and the deferred
	// selection re-reads. Nil means real timers; tests pass
	// schedule.NewManual().
	Scheduler schedule.Scheduler

	// Measurer supplies selection rectangles. Nil leaves rects absent.
	Measurer selection.Measurer

	// Tracer records command spans. Nil disables tracing.
	Tracer trace.Tracer

	// Plugins register extra commands at construction.
	Plugins []plugin.Plugin

	// OnChange, when set, receives the serialized content on every
	// change, ahead of bus subscribers.
	OnChange func(content string)
}

// Editor is an embeddable rich-text engine instance.
type Editor struct {
	mu         sync.Mutex
	root       *html.Node
	sanitizer  *sanitize.Sanitizer
	resolver   *format.Resolver
	sel        *selection.Manager
	hist       *history.Manager
	registry   *command.Registry
	exec       *command.Executor
	scheduler  schedule.Scheduler
	plugins    map[string]plugin.Plugin
	subs       map[string][]subscriber
	pending    []emission
	lastFormat format.State
	readOnly   bool
	focused    bool
	destroyed  bool
}

// New builds an Editor or fails outright; there is no partially usable
// instance. After construction every runtime condition resolves to a
// silent no-op or an absent value, never an error.
func New(opts Options) (*Editor, error) {
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = schedule.Timers{}
	}

	sanitizer := sanitize.New()
	nodes, err := dom.ParseFragment(sanitizer.Sanitize(opts.Content))
	if err != nil {
		return nil, fmt.Errorf("parse initial content: %w", err)
	}

	root := dom.NewElement("div")
	dom.ReplaceChildren(root, nodes...)
	normalize.Normalize(root)

	resolver := format.NewResolver(root)

	e := &Editor{
		root:       root,
		sanitizer:  sanitizer,
		resolver:   resolver,
		sel:        selection.NewManager(root, resolver, opts.Measurer),
		hist:       history.NewManager(opts.HistoryCapacity, opts.HistoryDebounce, scheduler),
		registry:   command.NewRegistry(),
		scheduler:  scheduler,
		plugins:    make(map[string]plugin.Plugin),
		subs:       make(map[string][]subscriber),
		lastFormat: format.Default(),
		readOnly:   opts.ReadOnly,
	}

	for _, p := range opts.Plugins {
		if p == nil {
			continue
		}
		name := p.Name()
		if name == "" {
			return nil, errors.New("plugin with empty name")
		}
		if _, dup := e.plugins[name]; dup {
			return nil, fmt.Errorf("duplicate plugin %q", name)
		}
		for _, cmd := range p.Commands() {
			if err := e.registry.RegisterPlugin(cmd); err != nil {
				return nil, fmt.Errorf("plugin %q: %w", name, err)
			}
		}
		e.plugins[name] = p
	}

	e.exec = command.NewExecutor(command.ExecutorConfig{
		Registry:  e.registry,
		Root:      root,
		Selection: e.sel,
		History:   e.hist,
		Sanitizer: sanitizer,
		Resolver:  resolver,
		Scheduler: scheduler,
		Tracer:    opts.Tracer,
		// Only called from Execute, which always holds e.mu.
		ReadOnly: func() bool { return e.readOnly },
		Hooks: command.Hooks{
			Changed:        e.noteChange,
			FormatChanged:  e.noteFormat,
			DeferredReread: e.rereadSelection,
		},
	})

	e.hist.PushImmediate(dom.RenderChildren(root), nil)

	if opts.OnChange != nil {
		onChange := opts.OnChange
		e.subs[EventChange] = append(e.subs[EventChange], subscriber{
			token: uuid.NewString(),
			fn: func(payload any) {
				if content, ok := payload.(string); ok {
					onChange(content)
				}
			},
		})
	}

	for _, p := range opts.Plugins {
		if init, ok := p.(plugin.Initializer); ok {
			init.Setup(e)
		}
	}

	// Ready is deferred so a subscriber attached right after New still
	// sees it.
	scheduler.Defer(func() {
		e.mu.Lock()
		if e.destroyed {
			e.mu.Unlock()
			return
		}
		e.queueEmit(EventReady, nil)
		pending := e.takeEmits()
		e.mu.Unlock()
		fire(pending)
	})

	log.Debug(log.CatEditor, "editor constructed",
		"plugins", len(e.plugins), "readOnly", e.readOnly)
	return e, nil
}

// Execute runs a named command through the pipeline. The formatting
// helpers are thin wrappers over this; plugin commands have no wrappers
// and come through here.
func (e *Editor) Execute(name string, args ...any) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.exec.Execute(name, args...)
	pending := e.takeEmits()
	e.mu.Unlock()
	fire(pending)
}

// GetContent returns the serialized document markup.
func (e *Editor) GetContent() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return dom.RenderChildren(e.root)
}

// SetContent replaces the document. The markup is sanitized, the
// selection drops, and the snapshot records immediately rather than
// behind the debounce window. Unparseable markup leaves the document
// unchanged.
func (e *Editor) SetContent(markup string) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	nodes, err := dom.ParseFragment(e.sanitizer.Sanitize(markup))
	if err != nil {
		log.Debug(log.CatEditor, "set content dropped", "error", err.Error())
		e.mu.Unlock()
		return
	}
	e.exec.CancelRereads()
	dom.ReplaceChildren(e.root, nodes...)
	normalize.Normalize(e.root)
	e.sel.ClearActive()

	content := dom.RenderChildren(e.root)
	e.hist.PushImmediate(content, nil)
	e.queueEmit(EventChange, content)
	e.queueEmit(EventSelectionChange, nil)
	e.noteFormat(e.exec.CurrentFormat(), format.SourceInput)
	pending := e.takeEmits()
	e.mu.Unlock()
	fire(pending)
}

// GetText returns the plain-text projection of the document.
func (e *Editor) GetText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return dom.PlainText(e.root)
}

// IsEmpty reports whether the document has no text and at most one trivial
// child element, which is what an emptied surface leaves behind (typically
// a lone paragraph holding a line break). A lone image or rule is content,
// not emptiness.
func (e *Editor) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if dom.HasTextContent(e.root) {
		return false
	}
	switch dom.ChildCount(e.root) {
	case 0:
		return true
	case 1:
		c := e.root.FirstChild
		return dom.IsText(c) || dom.IsTrivialElement(c)
	}
	return false
}

// Selection returns the current selection state when one exists.
func (e *Editor) Selection() (selection.State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Current()
}

// SetSelection activates rng as the ambient selection and emits the
// selection notifications. Any pending deferred re-read is cancelled;
// this notification supersedes it.
func (e *Editor) SetSelection(rng selection.Range) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.exec.CancelRereads()
	e.sel.Set(rng)
	e.queueEmit(EventSelectionChange, e.selectionPayload())
	e.noteFormat(e.exec.CurrentFormat(), format.SourceSelection)
	pending := e.takeEmits()
	e.mu.Unlock()
	fire(pending)
}

// SelectText activates the range between two plain-text rune offsets,
// the same projection history entries record. Offsets clamp to the
// document's text; reversed offsets select forward.
func (e *Editor) SelectText(start, end int) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	rng := selection.FromTextOffsets(e.root, start, end)
	e.exec.CancelRereads()
	e.sel.Set(rng)
	e.queueEmit(EventSelectionChange, e.selectionPayload())
	e.noteFormat(e.exec.CurrentFormat(), format.SourceSelection)
	pending := e.takeEmits()
	e.mu.Unlock()
	fire(pending)
}

// SelectAll selects the whole document's text.
func (e *Editor) SelectAll() {
	e.mu.Lock()
	length := len([]rune(dom.PlainText(e.root)))
	e.mu.Unlock()
	e.SelectText(0, length)
}

// ClearSelection drops the ambient selection.
func (e *Editor) ClearSelection() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.exec.CancelRereads()
	e.sel.ClearActive()
	e.queueEmit(EventSelectionChange, nil)
	e.noteFormat(e.exec.CurrentFormat(), format.SourceSelection)
	pending := e.takeEmits()
	e.mu.Unlock()
	fire(pending)
}

// SaveSelection pushes the active range onto the snapshot stack.
func (e *Editor) SaveSelection(cause selection.Cause) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return false
	}
	return e.sel.Save(cause)
}

// RestoreSelection pops the newest snapshot back into the active range.
// A restore is a selection write, so it emits like any other.
func (e *Editor) RestoreSelection() bool {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return false
	}
	e.exec.CancelRereads()
	ok := e.sel.Restore()
	if ok {
		e.queueEmit(EventSelectionChange, e.selectionPayload())
		e.noteFormat(e.exec.CurrentFormat(), format.SourceSelection)
	}
	pending := e.takeEmits()
	e.mu.Unlock()
	fire(pending)
	return ok
}

// Focus marks the surface focused.
func (e *Editor) Focus() {
	e.mu.Lock()
	if e.destroyed || e.focused {
		e.mu.Unlock()
		return
	}
	e.focused = true
	e.queueEmit(EventFocus, nil)
	pending := e.takeEmits()
	e.mu.Unlock()
	fire(pending)
}

// Blur marks the surface unfocused.
func (e *Editor) Blur() {
	e.mu.Lock()
	if e.destroyed || !e.focused {
		e.mu.Unlock()
		return
	}
	e.focused = false
	e.queueEmit(EventBlur, nil)
	pending := e.takeEmits()
	e.mu.Unlock()
	fire(pending)
}

// Focused reports whether the surface is focused.
func (e *Editor) Focused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focused
}

// SetComposing toggles the IME soft lock. While composing, selection
// reads return absent so the engine never races an input method's own
// session.
func (e *Editor) SetComposing(composing bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.sel.SetComposing(composing)
}

// ReadOnly reports whether commands are disabled.
func (e *Editor) ReadOnly() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.readOnly
}

// SetReadOnly flips read-only mode and notifies when the value changed.
func (e *Editor) SetReadOnly(readOnly bool) {
	e.mu.Lock()
	if e.destroyed || e.readOnly == readOnly {
		e.mu.Unlock()
		return
	}
	e.readOnly = readOnly
	e.queueEmit(EventReadOnlyChange, readOnly)
	pending := e.takeEmits()
	e.mu.Unlock()
	fire(pending)
}

// CanUndo reports whether an undo step is available.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanRedo()
}

// History returns the recorded snapshots oldest-first and the current
// position, for undo menus and inspectors.
func (e *Editor) History() ([]history.Entry, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.Entries(), e.hist.Position()
}

// FormatState resolves the format at the active selection, or the
// default state when none exists.
func (e *Editor) FormatState() format.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exec.CurrentFormat()
}

// Command returns one command's metadata snapshot with enablement
// computed now.
func (e *Editor) Command(name string) (command.Metadata, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cmd, ok := e.registry.Lookup(name)
	if !ok {
		return command.Metadata{}, false
	}
	return e.exec.Snapshot(cmd), true
}

// Commands returns the full metadata table, name-sorted.
func (e *Editor) Commands() []command.Metadata {
	e.mu.Lock()
	defer e.mu.Unlock()
	all := e.registry.All()
	table := make([]command.Metadata, 0, len(all))
	for _, cmd := range all {
		table = append(table, e.exec.Snapshot(cmd))
	}
	return table
}

// Plugin returns the plugin registered under name, or nil.
func (e *Editor) Plugin(name string) plugin.Plugin {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.plugins[name]
}

// Destroy tears the editor down: pending timers are cancelled, destroy
// fires as the final event, and every later call is ignored.
func (e *Editor) Destroy() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.destroyed = true
	e.exec.CancelRereads()
	e.hist.Clear()
	e.sel.ClearActive()
	e.sel.ClearSnapshots()
	e.queueEmit(EventDestroy, nil)
	pending := e.takeEmits()
	e.subs = nil
	e.mu.Unlock()
	fire(pending)
	log.Debug(log.CatEditor, "editor destroyed")
}

// noteChange stages the change event. Runs inside Execute with e.mu held.
func (e *Editor) noteChange(content string) {
	e.queueEmit(EventChange, content)
}

// noteFormat diffs against the last seen state and stages a formatChange
// when anything moved. Runs with e.mu held.
func (e *Editor) noteFormat(state format.State, source format.ChangeSource) {
	changed := format.Diff(e.lastFormat, state)
	if len(changed) == 0 {
		return
	}
	prev := e.lastFormat
	e.lastFormat = state
	e.queueEmit(EventFormatChange, format.ChangeEvent{
		Previous: &prev,
		Current:  state,
		Changed:  changed,
		Source:   source,
	})
}

// rereadSelection is the deferred post-mutation re-read. It arrives on a
// scheduler goroutine, so it takes the lock itself.
func (e *Editor) rereadSelection() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.queueEmit(EventSelectionChange, e.selectionPayload())
	e.noteFormat(e.exec.CurrentFormat(), format.SourceSelection)
	pending := e.takeEmits()
	e.mu.Unlock()
	fire(pending)
}

// selectionPayload projects the current selection for the bus: the state
// by value when present, untyped nil when absent.
func (e *Editor) selectionPayload() any {
	if state, ok := e.sel.Current(); ok {
		return state
	}
	return nil
}
