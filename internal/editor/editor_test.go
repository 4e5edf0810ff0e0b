package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/editor/command"
	"github.com/zjrosen/plume/internal/editor/dom"
	"github.com/zjrosen/plume/internal/editor/format"
	"github.com/zjrosen/plume/internal/editor/plugin"
	"github.com/zjrosen/plume/internal/editor/schedule"
	"github.com/zjrosen/plume/internal/editor/selection"
)

func newTestEditor(t *testing.T, markup string) (*Editor, *schedule.Manual) {
	t.Helper()
	sched := schedule.NewManual()
	ed, err := New(Options{Content: markup, Scheduler: sched})
	require.NoError(t, err, "editor should construct")
	return ed, sched
}

func findTextNode(t *testing.T, root *html.Node, substr string) *html.Node {
	t.Helper()
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if dom.IsText(n) && strings.Contains(n.Data, substr) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	require.NotNil(t, found, "no text node containing %q", substr)
	return found
}

func selectText(t *testing.T, ed *Editor, word string) {
	t.Helper()
	tn := findTextNode(t, ed.root, word)
	start := len([]rune(tn.Data[:strings.Index(tn.Data, word)]))
	ed.SetSelection(selection.Range{
		Start: selection.Boundary{Node: tn, Offset: start},
		End:   selection.Boundary{Node: tn, Offset: start + len([]rune(word))},
	})
}

type stubPlugin struct {
	name string
	cmds []*command.Command
	host plugin.Host
}

func (p *stubPlugin) Name() string                 { return p.name }
func (p *stubPlugin) Commands() []*command.Command { return p.cmds }
func (p *stubPlugin) Setup(h plugin.Host)          { p.host = h }

func TestNew_SanitizesInitialContent(t *testing.T) {
	ed, _ := newTestEditor(t, `<p onclick="steal()">hi<script>alert(1)</script></p>`)

	assert.Equal(t, "<p>hi</p>", ed.GetContent(),
		"initial content should pass through the sanitizer")
}

func TestNew_EmitsReadyThroughScheduler(t *testing.T) {
	ed, sched := newTestEditor(t, "<p>hi</p>")

	var ready int
	ed.Subscribe(EventReady, func(any) { ready++ })
	assert.Zero(t, ready, "ready should wait for the scheduler")

	sched.Flush()
	assert.Equal(t, 1, ready, "ready should fire exactly once")
}

func TestNew_RejectsBrokenPlugin(t *testing.T) {
	_, err := New(Options{
		Scheduler: schedule.NewManual(),
		Plugins: []plugin.Plugin{
			&stubPlugin{name: "broken", cmds: []*command.Command{{Name: "nameless"}}},
		},
	})
	require.Error(t, err, "a plugin command without a handler should fail construction")
}

func TestNew_RejectsDuplicatePluginNames(t *testing.T) {
	_, err := New(Options{
		Scheduler: schedule.NewManual(),
		Plugins: []plugin.Plugin{
			&stubPlugin{name: "twin"},
			&stubPlugin{name: "twin"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate plugin")
}

func TestPlugin_SetupAndLookup(t *testing.T) {
	p := &stubPlugin{
		name: "stamp-kit",
		cmds: []*command.Command{{
			Name:     "stamp",
			Category: "insert",
			Kind:     command.KindAction,
			Handler: func(ctx *command.Context) error {
				block := dom.NewElement("p")
				dom.AppendChild(block, dom.NewText("stamped"))
				dom.AppendChild(ctx.Root, block)
				return nil
			},
		}},
	}
	sched := schedule.NewManual()
	ed, err := New(Options{Content: "<p>doc</p>", Scheduler: sched, Plugins: []plugin.Plugin{p}})
	require.NoError(t, err)

	assert.NotNil(t, p.host, "setup should run during construction")
	assert.Equal(t, p, ed.Plugin("stamp-kit"))
	assert.Nil(t, ed.Plugin("missing"))

	ed.Execute("stamp")
	assert.Equal(t, "<p>doc</p><p>stamped</p>", ed.GetContent())
}

func TestSetContent_SanitizesAndNotifies(t *testing.T) {
	ed, _ := newTestEditor(t, "<p>old</p>")

	var changes []string
	var selections []any
	ed.Subscribe(EventChange, func(p any) { changes = append(changes, p.(string)) })
	ed.Subscribe(EventSelectionChange, func(p any) { selections = append(selections, p) })

	ed.SetContent(`<p>new</p><script>x()</script>`)

	assert.Equal(t, "<p>new</p>", ed.GetContent())
	require.Len(t, changes, 1)
	assert.Equal(t, "<p>new</p>", changes[0])
	require.Len(t, selections, 1)
	assert.Nil(t, selections[0], "selection should drop on content replacement")
}

func TestGetText_ProjectsBlocks(t *testing.T) {
	ed, _ := newTestEditor(t, "<p>hello</p><p>world</p>")

	assert.Equal(t, "hello\nworld", ed.GetText())
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		empty  bool
	}{
		{name: "nothing", markup: "", empty: true},
		{name: "lone empty paragraph", markup: "<p><br/></p>", empty: true},
		{name: "text", markup: "<p>hi</p>", empty: false},
		{name: "two empty blocks", markup: "<p></p><p></p>", empty: false},
		{name: "lone image is content", markup: `<img src="https://e.example/x.png"/>`, empty: false},
		{name: "lone rule is content", markup: "<hr/>", empty: false},
		{name: "paragraph holding an image", markup: `<p><img src="https://e.example/x.png"/></p>`, empty: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, _ := newTestEditor(t, tt.markup)
			assert.Equal(t, tt.empty, ed.IsEmpty())
		})
	}
}

func TestBold_NotificationOrdering(t *testing.T) {
	ed, sched := newTestEditor(t, "<p>hello</p>")
	selectText(t, ed, "hello")

	var events []string
	var formats []format.ChangeEvent
	ed.Subscribe(EventChange, func(any) { events = append(events, "change") })
	ed.Subscribe(EventFormatChange, func(p any) {
		ev := p.(format.ChangeEvent)
		events = append(events, "format:"+string(ev.Source))
		formats = append(formats, ev)
	})
	ed.Subscribe(EventSelectionChange, func(any) { events = append(events, "selection") })

	ed.Bold()
	assert.Equal(t, "<p><b>hello</b></p>", ed.GetContent())
	assert.Equal(t, []string{"change", "format:command"}, events,
		"synchronous phase should complete before the deferred re-read")

	sched.Flush()
	assert.Equal(t, []string{"change", "format:command", "selection"}, events,
		"the re-read emits selection only; format already settled in the synchronous phase")

	require.Len(t, formats, 1)
	assert.Contains(t, formats[0].Changed, "bold")
	require.NotNil(t, formats[0].Previous)
	assert.False(t, formats[0].Previous.Bold)
	assert.True(t, formats[0].Current.Bold)
}

func TestFormatChange_SuppressedWhenNothingMoved(t *testing.T) {
	ed, _ := newTestEditor(t, "<p>hello</p>")
	selectText(t, ed, "hello")

	var changeCount, formatCount int
	ed.Subscribe(EventChange, func(any) { changeCount++ })
	ed.Subscribe(EventFormatChange, func(any) { formatCount++ })

	ed.AlignLeft()

	assert.Equal(t, 1, changeCount, "content gained a style attribute")
	assert.Zero(t, formatCount, "alignment was already left")
}

func TestSetSelection_CancelsPendingReread(t *testing.T) {
	ed, sched := newTestEditor(t, "<p>hello world</p>")
	selectText(t, ed, "hello")

	var selEvents int
	ed.Subscribe(EventSelectionChange, func(any) { selEvents++ })

	ed.Bold()
	selectText(t, ed, "world")
	assert.Equal(t, 1, selEvents, "the explicit selection change emits once")

	sched.Flush()
	assert.Equal(t, 1, selEvents, "the superseded re-read should never fire")
}

func TestDeferredRereads_FireInScheduledOrder(t *testing.T) {
	ed, sched := newTestEditor(t, "<p>hello world</p>")
	selectText(t, ed, "hello")

	var selEvents int
	ed.Subscribe(EventSelectionChange, func(any) { selEvents++ })

	ed.Bold()
	ed.Italic()
	assert.Zero(t, selEvents, "re-reads wait for the scheduler")

	sched.Flush()
	assert.Equal(t, 2, selEvents, "each execution schedules its own re-read")
}

func TestRestoreSelection_RoundTrip(t *testing.T) {
	ed, _ := newTestEditor(t, "<p>hello</p>")
	selectText(t, ed, "hello")

	require.True(t, ed.SaveSelection(selection.CauseToolbar))
	ed.ClearSelection()
	_, ok := ed.Selection()
	require.False(t, ok, "selection should be absent after clearing")

	var payloads []any
	ed.Subscribe(EventSelectionChange, func(p any) { payloads = append(payloads, p) })

	require.True(t, ed.RestoreSelection())
	st, ok := ed.Selection()
	require.True(t, ok)
	assert.Equal(t, "hello", st.Text)

	require.Len(t, payloads, 1)
	state, ok := payloads[0].(selection.State)
	require.True(t, ok, "payload should carry the restored state")
	assert.Equal(t, "hello", state.Text)

	assert.False(t, ed.RestoreSelection(), "the snapshot stack is spent")
}

func TestFocusBlur_EmitOncePerTransition(t *testing.T) {
	ed, _ := newTestEditor(t, "")

	var events []string
	ed.Subscribe(EventFocus, func(any) { events = append(events, "focus") })
	ed.Subscribe(EventBlur, func(any) { events = append(events, "blur") })

	ed.Focus()
	ed.Focus()
	assert.True(t, ed.Focused())
	ed.Blur()
	ed.Blur()
	assert.False(t, ed.Focused())

	assert.Equal(t, []string{"focus", "blur"}, events)
}

func TestSetReadOnly_GatesCommandsAndNotifies(t *testing.T) {
	ed, _ := newTestEditor(t, "<p>hello</p>")
	selectText(t, ed, "hello")

	var flags []bool
	ed.Subscribe(EventReadOnlyChange, func(p any) { flags = append(flags, p.(bool)) })

	ed.SetReadOnly(true)
	ed.SetReadOnly(true)
	require.True(t, ed.ReadOnly())

	ed.Bold()
	assert.Equal(t, "<p>hello</p>", ed.GetContent(), "read-only editor should drop commands")

	meta, ok := ed.Command("bold")
	require.True(t, ok)
	assert.False(t, meta.Enabled)

	ed.SetReadOnly(false)
	ed.Bold()
	assert.Equal(t, "<p><b>hello</b></p>", ed.GetContent())

	assert.Equal(t, []bool{true, false}, flags, "only real transitions notify")
}

func TestSetComposing_SuppressesSelectionReads(t *testing.T) {
	ed, _ := newTestEditor(t, "<p>hello</p>")
	selectText(t, ed, "hello")

	ed.SetComposing(true)
	_, ok := ed.Selection()
	assert.False(t, ok, "selection reads report absent during composition")
	assert.Equal(t, format.Default(), ed.FormatState())

	ed.Bold()
	assert.Equal(t, "<p>hello</p>", ed.GetContent(),
		"selection-requiring commands stay disabled during composition")

	ed.SetComposing(false)
	_, ok = ed.Selection()
	assert.True(t, ok, "the range survives the composition session")
}

func TestUndoRedo_ThroughFacade(t *testing.T) {
	ed, _ := newTestEditor(t, "<p>hello</p>")
	selectText(t, ed, "hello")

	ed.Bold()
	require.Equal(t, "<p><b>hello</b></p>", ed.GetContent())

	ed.Undo()
	assert.Equal(t, "<p>hello</p>", ed.GetContent())

	ed.Redo()
	assert.Equal(t, "<p><b>hello</b></p>", ed.GetContent())
}

func TestEventBus_OrderAndUnsubscribe(t *testing.T) {
	ed, _ := newTestEditor(t, "")

	var order []string
	ed.Subscribe("ping", func(any) { order = append(order, "first") })
	mid := ed.Subscribe("ping", func(any) { order = append(order, "second") })
	ed.Subscribe("ping", func(any) { order = append(order, "third") })

	ed.Emit("ping", nil)
	assert.Equal(t, []string{"first", "second", "third"}, order,
		"fan-out should follow subscription order")

	require.True(t, ed.Unsubscribe(mid))
	assert.False(t, ed.Unsubscribe(mid), "a token is spent after removal")

	order = nil
	ed.Emit("ping", nil)
	assert.Equal(t, []string{"first", "third"}, order)

	assert.Empty(t, ed.Subscribe("ping", nil), "nil callbacks are rejected")
}

func TestEmit_PassesPayloadThrough(t *testing.T) {
	ed, _ := newTestEditor(t, "")

	var got any
	ed.Subscribe("custom", func(p any) { got = p })
	ed.Emit("custom", 42)

	assert.Equal(t, 42, got)
}

func TestDestroy_FinalEventThenInert(t *testing.T) {
	ed, sched := newTestEditor(t, "<p>hello</p>")

	var events []string
	ed.Subscribe(EventDestroy, func(any) { events = append(events, "destroy") })
	ed.Subscribe(EventChange, func(any) { events = append(events, "change") })
	ed.Subscribe(EventReady, func(any) { events = append(events, "ready") })

	ed.Destroy()
	ed.Destroy()
	ed.Execute("insertText", "x")
	ed.SetContent("<p>x</p>")

	assert.Equal(t, []string{"destroy"}, events)
	assert.Equal(t, "<p>hello</p>", ed.GetContent(), "content freezes after destroy")
	assert.Empty(t, ed.Subscribe(EventChange, func(any) {}),
		"subscribe after destroy returns no token")

	sched.Flush()
	assert.Equal(t, []string{"destroy"}, events, "the pending ready must not fire after destroy")
}

func TestOnChange_RunsBeforeBusSubscribers(t *testing.T) {
	var order []string
	sched := schedule.NewManual()
	ed, err := New(Options{
		Content:   "<p>hello</p>",
		Scheduler: sched,
		OnChange:  func(string) { order = append(order, "callback") },
	})
	require.NoError(t, err)

	selectText(t, ed, "hello")
	ed.Subscribe(EventChange, func(any) { order = append(order, "subscriber") })

	ed.Bold()
	assert.Equal(t, []string{"callback", "subscriber"}, order)
}

func TestPaste_ScrubsOfficeNoise(t *testing.T) {
	ed, _ := newTestEditor(t, "<p>before</p>")

	ed.Paste(`<!--[if mso]--><p class="MsoNormal">pasted<o:p></o:p></p>`)

	assert.Equal(t, "<p>before</p><p>pasted</p>", ed.GetContent())
}

func TestCommands_MetadataTable(t *testing.T) {
	ed, _ := newTestEditor(t, "<p>hello</p>")

	table := ed.Commands()
	require.GreaterOrEqual(t, len(table), 30, "all builtins should be present")

	names := make([]string, 0, len(table))
	var bold *command.Metadata
	for i := range table {
		names = append(names, table[i].Name)
		if table[i].Name == "bold" {
			bold = &table[i]
		}
	}
	assert.IsNonDecreasing(t, names, "table should be name-sorted")

	require.NotNil(t, bold)
	assert.Equal(t, command.KindToggle, bold.Kind)
	assert.True(t, bold.Toolbar)
	assert.True(t, bold.RequiresSelection)
	assert.False(t, bold.Enabled, "no selection means bold is disabled")

	_, ok := ed.Command("noSuchCommand")
	assert.False(t, ok)
}

func TestSelectText_PlacesSelectionByOffsets(t *testing.T) {
	ed, _ := newTestEditor(t, "<p>hello <b>brave</b> world</p>")

	ed.SelectText(6, 11)

	state, ok := ed.Selection()
	require.True(t, ok, "selection should exist after SelectText")
	assert.Equal(t, "brave", state.Text)
	assert.True(t, state.Format.Bold, "format should resolve at the selected span")
}

func TestSelectAll_CoversDocumentText(t *testing.T) {
	ed, _ := newTestEditor(t, "<p>one</p><p>two</p>")

	ed.SelectAll()

	state, ok := ed.Selection()
	require.True(t, ok)
	assert.Equal(t, "onetwo", state.Text)
}

func TestSelectText_EmitsSelectionAndFormatChange(t *testing.T) {
	ed, _ := newTestEditor(t, "<p>plain <b>bold</b></p>")

	var selections, formats int
	ed.Subscribe(EventSelectionChange, func(any) { selections++ })
	ed.Subscribe(EventFormatChange, func(any) { formats++ })

	ed.SelectText(6, 10)

	assert.Equal(t, 1, selections, "selection change should fire")
	assert.Equal(t, 1, formats, "format change should fire for the bold span")
}

func TestHistoryIntrospection(t *testing.T) {
	ed, sched := newTestEditor(t, "<p>hello</p>")

	assert.False(t, ed.CanUndo(), "initial snapshot alone offers no undo")
	assert.False(t, ed.CanRedo())

	selectText(t, ed, "hello")
	ed.Execute("bold")
	sched.Flush()

	require.True(t, ed.CanUndo(), "a recorded change should be undoable")
	entries, pos := ed.History()
	require.Len(t, entries, 2)
	assert.Equal(t, 1, pos)
	assert.Equal(t, "<p>hello</p>", entries[0].Content)

	ed.Undo()
	assert.True(t, ed.CanRedo(), "undo should open the redo branch")
}
