package command

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/editor/dom"
	"github.com/zjrosen/plume/internal/editor/format"
	"github.com/zjrosen/plume/internal/editor/history"
	"github.com/zjrosen/plume/internal/editor/normalize"
	"github.com/zjrosen/plume/internal/editor/sanitize"
	"github.com/zjrosen/plume/internal/editor/schedule"
	"github.com/zjrosen/plume/internal/editor/selection"
	"github.com/zjrosen/plume/internal/log"
	"github.com/zjrosen/plume/internal/tracing"
)

// Hooks are the executor's outbound notifications, wired by the editor.
// Nil hooks are skipped. Changed and FormatChanged fire synchronously
// inside Execute; DeferredReread fires later through the scheduler.
type Hooks struct {
	Changed        func(content string)
	FormatChanged  func(state format.State, source format.ChangeSource)
	DeferredReread func()
}

// ExecutorConfig wires the executor's collaborators.
type ExecutorConfig struct {
	Registry  *Registry
	Root      *html.Node
	Selection *selection.Manager
	History   *history.Manager
	Sanitizer *sanitize.Sanitizer
	Resolver  *format.Resolver
	Scheduler schedule.Scheduler
	Tracer    trace.Tracer
	ReadOnly  func() bool
	Hooks     Hooks
}

// Executor runs named commands through the mandatory pipeline: resolve
// arguments, invoke the handler, normalize the surface, record history,
// and emit notifications. Nothing here escalates to a failure after
// construction; bad invocations resolve to silent no-ops.
type Executor struct {
	registry  *Registry
	root      *html.Node
	sel       *selection.Manager
	hist      *history.Manager
	sanitizer *sanitize.Sanitizer
	resolver  *format.Resolver
	scheduler schedule.Scheduler
	tracer    trace.Tracer
	readOnly  func() bool
	hooks     Hooks

	mu          sync.Mutex
	deferred    map[uint64]schedule.Cancel
	deferredSeq uint64
}

// NewExecutor builds an executor. Nil optional collaborators get inert
// defaults: a no-op tracer, real timers, and a never-read-only predicate.
func NewExecutor(cfg ExecutorConfig) *Executor {
	if cfg.Tracer == nil {
		cfg.Tracer = noop.NewTracerProvider().Tracer("noop")
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = schedule.Timers{}
	}
	if cfg.ReadOnly == nil {
		cfg.ReadOnly = func() bool { return false }
	}
	return &Executor{
		registry:  cfg.Registry,
		root:      cfg.Root,
		sel:       cfg.Selection,
		hist:      cfg.History,
		sanitizer: cfg.Sanitizer,
		resolver:  cfg.Resolver,
		scheduler: cfg.Scheduler,
		tracer:    cfg.Tracer,
		readOnly:  cfg.ReadOnly,
		hooks:     cfg.Hooks,
	}
}

// Execute runs a named command through the full pipeline. Read-only
// editors, unknown names, and disabled commands drop the request
// silently.
func (ex *Executor) Execute(name string, args ...any) {
	if ex.readOnly() {
		log.Debug(log.CatCommand, "execute skipped, read-only", "command", name)
		return
	}
	cmd, ok := ex.registry.Lookup(name)
	if !ok {
		log.Debug(log.CatCommand, "unknown command dropped", "command", name)
		return
	}
	if !ex.Enabled(cmd) {
		log.Debug(log.CatCommand, "command disabled", "command", name)
		return
	}
	if len(args) == 0 {
		args = cmd.DefaultArgs
	}

	spanCtx, span := ex.tracer.Start(context.Background(), tracing.SpanPrefixCommand+name,
		trace.WithAttributes(
			attribute.String(tracing.AttrCommandName, name),
			attribute.String(tracing.AttrCommandKind, string(cmd.Kind)),
			attribute.Int(tracing.AttrCommandArgs, len(args)),
		))
	defer span.End()

	if err := cmd.Handler(ex.context(args)); err != nil {
		// Handlers never raise for well-typed input; anything else was a
		// malformed invocation and the command counts as a no-op.
		span.RecordError(err)
		log.Debug(log.CatCommand, "handler declined", "command", name, "error", err.Error())
	}

	_, nspan := ex.tracer.Start(spanCtx, tracing.SpanNormalize)
	normalize.Normalize(ex.root)
	nspan.End()

	content := dom.RenderChildren(ex.root)
	ex.hist.Push(content, ex.selectionOffsets())
	span.AddEvent(tracing.EventHistoryRecorded)

	if ex.hooks.Changed != nil {
		ex.hooks.Changed(content)
		span.AddEvent(tracing.EventChangeEmitted)
	}
	if ex.hooks.FormatChanged != nil {
		// Synchronous on purpose: ambient selection-change notifications
		// are not reliable right after a programmatic mutation.
		ex.hooks.FormatChanged(ex.CurrentFormat(), format.SourceCommand)
		span.AddEvent(tracing.EventFormatEmitted)
	}
	ex.scheduleReread()
	span.AddEvent(tracing.EventRereadScheduled)

	log.Debug(log.CatCommand, "executed", "command", name, "kind", string(cmd.Kind))
}

// Enabled reports whether cmd can run right now: the editor is not
// read-only, a non-collapsed selection exists when the command requires
// one, and any custom predicate agrees.
func (ex *Executor) Enabled(cmd *Command) bool {
	if ex.readOnly() {
		return false
	}
	if cmd.RequiresSelection {
		state, ok := ex.sel.Current()
		if !ok || state.Collapsed {
			return false
		}
	}
	if cmd.CanExecute != nil {
		return cmd.CanExecute(ex.context(nil))
	}
	return true
}

// Snapshot projects cmd to its metadata with enablement computed now.
func (ex *Executor) Snapshot(cmd *Command) Metadata {
	return Metadata{
		Name:              cmd.Name,
		Category:          cmd.Category,
		Kind:              cmd.Kind,
		DefaultArgs:       append([]any(nil), cmd.DefaultArgs...),
		RequiresSelection: cmd.RequiresSelection,
		ExclusiveGroup:    cmd.ExclusiveGroup,
		Toolbar:           cmd.Toolbar,
		Enabled:           ex.Enabled(cmd),
	}
}

// CurrentFormat resolves the format state at the active selection, falling
// back to the default state when no usable selection exists.
func (ex *Executor) CurrentFormat() format.State {
	if state, ok := ex.sel.Current(); ok {
		return state.Format
	}
	return format.Default()
}

// CancelRereads drops pending deferred re-reads. Called when an ambient
// selection change arrives first and makes them redundant.
func (ex *Executor) CancelRereads() {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	for _, cancel := range ex.deferred {
		cancel()
	}
	ex.deferred = nil
}

// scheduleReread queues the post-mutation selection re-read. Multiple
// pending re-reads fire in the order they were scheduled; a fired re-read
// releases only its own handle so CancelRereads can still stop the rest.
func (ex *Executor) scheduleReread() {
	if ex.hooks.DeferredReread == nil {
		return
	}
	ex.mu.Lock()
	ex.deferredSeq++
	id := ex.deferredSeq
	ex.mu.Unlock()

	cancel := ex.scheduler.Defer(func() {
		ex.hooks.DeferredReread()
		ex.mu.Lock()
		delete(ex.deferred, id)
		ex.mu.Unlock()
	})

	ex.mu.Lock()
	if ex.deferred == nil {
		ex.deferred = make(map[uint64]schedule.Cancel)
	}
	ex.deferred[id] = cancel
	ex.mu.Unlock()
}

func (ex *Executor) context(args []any) *Context {
	return &Context{
		Root:      ex.root,
		Selection: ex.sel,
		History:   ex.hist,
		Sanitizer: ex.sanitizer,
		Resolver:  ex.resolver,
		Args:      args,
	}
}

// selectionOffsets projects the active selection to plain-text offsets so
// a history entry can carry it. A missing selection records nothing.
func (ex *Executor) selectionOffsets() *history.TextOffsets {
	state, ok := ex.sel.Current()
	if !ok {
		return nil
	}
	return &history.TextOffsets{
		Start: selection.TextOffset(ex.root, state.Range.Start),
		End:   selection.TextOffset(ex.root, state.Range.End),
	}
}
