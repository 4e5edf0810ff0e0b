package edit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/plume/internal/config"
	"github.com/zjrosen/plume/internal/editor"
	"github.com/zjrosen/plume/internal/editor/schedule"
	"github.com/zjrosen/plume/internal/flags"
	"github.com/zjrosen/plume/internal/mode"
)

// TestMain initializes the global zone manager for all tests in this package.
func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

type fixture struct {
	model Model
	ed    *editor.Editor
	sched *schedule.Manual
	cfg   *config.Config
}

func newFixture(t *testing.T, markup string) *fixture {
	t.Helper()
	sched := schedule.NewManual()
	ed, err := editor.New(editor.Options{Content: markup, Scheduler: sched})
	require.NoError(t, err, "editor should construct")
	t.Cleanup(ed.Destroy)

	cfg := config.Defaults()
	m := New(mode.Services{
		Editor: ed,
		Config: &cfg,
		Flags: flags.New(map[string]bool{
			flags.FlagHistoryInspector: true,
		}),
	})
	sized := m.SetSize(80, 24)
	return &fixture{model: sized.(Model), ed: ed, sched: sched, cfg: &cfg}
}

func (f *fixture) press(t *testing.T, msg tea.KeyMsg) {
	t.Helper()
	ctrl, _ := f.model.Update(msg)
	f.model = ctrl.(Model)
}

func (f *fixture) typeText(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		f.press(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestNew_FocusesEditorWithCollapsedSelection(t *testing.T) {
	f := newFixture(t, "<p>hello</p>")
	assert.True(t, f.ed.Focused())

	sel, ok := f.ed.Selection()
	require.True(t, ok)
	assert.True(t, sel.Collapsed)
}

func TestTyping_InsertsAtCaret(t *testing.T) {
	f := newFixture(t, "<p>world</p>")
	f.typeText(t, "hi ")
	assert.Equal(t, "hi world", f.ed.GetText())
	assert.Equal(t, 3, f.model.cursor)
}

func TestTyping_SpaceKey(t *testing.T) {
	f := newFixture(t, "<p>ab</p>")
	f.press(t, keyOf(tea.KeyRight))
	f.press(t, keyOf(tea.KeySpace))
	assert.Equal(t, "a b", f.ed.GetText())
}

func TestCursorMovement_ArrowsAndWordJumps(t *testing.T) {
	f := newFixture(t, "<p>one two</p>")

	f.press(t, keyOf(tea.KeyRight))
	assert.Equal(t, 1, f.model.cursor)

	f.press(t, keyOf(tea.KeyLeft))
	assert.Equal(t, 0, f.model.cursor)

	// Word right lands past "one", word right again past "two".
	f.press(t, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	assert.Equal(t, 3, f.model.cursor)
	f.press(t, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	assert.Equal(t, 7, f.model.cursor)

	f.press(t, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	assert.Equal(t, 4, f.model.cursor)

	f.press(t, keyOf(tea.KeyHome))
	assert.Equal(t, 0, f.model.cursor)
	f.press(t, keyOf(tea.KeyEnd))
	assert.Equal(t, 7, f.model.cursor)
}

func TestSelection_ShiftArrowsExtend(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	f.press(t, keyOf(tea.KeyShiftRight))
	f.press(t, keyOf(tea.KeyShiftRight))
	assert.Equal(t, 0, f.model.anchor)
	assert.Equal(t, 2, f.model.cursor)

	sel, ok := f.ed.Selection()
	require.True(t, ok)
	assert.False(t, sel.Collapsed)

	// Left collapses to the selection start.
	f.press(t, keyOf(tea.KeyLeft))
	assert.Equal(t, 0, f.model.cursor)
	assert.Equal(t, f.model.cursor, f.model.anchor)
}

func TestSelection_EscapeCollapses(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	f.press(t, keyOf(tea.KeyShiftRight))
	require.NotEqual(t, f.model.anchor, f.model.cursor)

	f.press(t, keyOf(tea.KeyEscape))
	assert.Equal(t, f.model.anchor, f.model.cursor)
}

func TestSelectAll(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	f.press(t, keyOf(tea.KeyCtrlA))
	assert.Equal(t, 0, f.model.anchor)
	assert.Equal(t, 3, f.model.cursor)
}

func TestBackspace_DeletesPreviousCluster(t *testing.T) {
	f := newFixture(t, "<p>ab</p>")
	f.press(t, keyOf(tea.KeyEnd))
	f.press(t, keyOf(tea.KeyBackspace))
	assert.Equal(t, "a", f.ed.GetText())
	assert.Equal(t, 1, f.model.cursor)
}

func TestDelete_RemovesNextCluster(t *testing.T) {
	f := newFixture(t, "<p>ab</p>")
	f.press(t, keyOf(tea.KeyDelete))
	assert.Equal(t, "b", f.ed.GetText())
	assert.Equal(t, 0, f.model.cursor)
}

func TestBackspace_RemovesSelection(t *testing.T) {
	f := newFixture(t, "<p>hello</p>")
	f.press(t, keyOf(tea.KeyShiftRight))
	f.press(t, keyOf(tea.KeyShiftRight))
	f.press(t, keyOf(tea.KeyBackspace))
	assert.Equal(t, "llo", f.ed.GetText())
}

func TestBackspace_AtStartIsNoOp(t *testing.T) {
	f := newFixture(t, "<p>ab</p>")
	f.press(t, keyOf(tea.KeyBackspace))
	assert.Equal(t, "ab", f.ed.GetText())
}

func TestChord_BoldSelection(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	f.press(t, keyOf(tea.KeyCtrlA))
	f.press(t, keyOf(tea.KeyCtrlB))
	f.sched.Flush()
	assert.Contains(t, f.ed.GetContent(), "<b>")
	assert.True(t, f.ed.FormatState().Bold)
}

func TestChord_HeadingWithArgs(t *testing.T) {
	f := newFixture(t, "<p>title</p>")
	f.press(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}, Alt: true})
	// alt+2 alone is not bound; ctrl+alt+2 is.
	assert.NotContains(t, f.ed.GetContent(), "<h2>")
}

func TestConfigBinding_ShadowsDefault(t *testing.T) {
	sched := schedule.NewManual()
	ed, err := editor.New(editor.Options{Content: "<p>abc</p>", Scheduler: sched})
	require.NoError(t, err)
	t.Cleanup(ed.Destroy)

	cfg := config.Defaults()
	cfg.Bindings = []config.BindingConfig{
		{Key: "b", Mod: true, Command: "italic"},
	}
	ctrl := New(mode.Services{Editor: ed, Config: &cfg, Flags: flags.New(nil)}).SetSize(80, 24)
	f := &fixture{model: ctrl.(Model), ed: ed, sched: sched, cfg: &cfg}

	f.press(t, keyOf(tea.KeyCtrlA))
	f.press(t, keyOf(tea.KeyCtrlB))
	f.sched.Flush()
	assert.True(t, f.ed.FormatState().Italic)
	assert.False(t, f.ed.FormatState().Bold)
}

func TestUndoChord_RestoresContentAndSelection(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	f.typeText(t, "x")
	f.sched.Flush()
	require.Equal(t, "xabc", f.ed.GetText())

	f.press(t, keyOf(tea.KeyCtrlZ))
	assert.Equal(t, "abc", f.ed.GetText())
	assert.LessOrEqual(t, f.model.cursor, len([]rune(f.ed.GetText())))
}

func TestReadOnly_BlocksTypingWithNotice(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	f.press(t, keyOf(tea.KeyCtrlR))
	require.True(t, f.ed.ReadOnly())

	f.typeText(t, "z")
	assert.Equal(t, "abc", f.ed.GetText())
	assert.Equal(t, "document is read-only", f.model.statusMsg)

	f.press(t, keyOf(tea.KeyCtrlR))
	assert.False(t, f.ed.ReadOnly())
}

func TestToggleSource_SwitchesPane(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	require.False(t, f.model.showSource)

	f.press(t, keyOf(tea.KeyTab))
	assert.True(t, f.model.showSource)
	assert.Contains(t, f.model.View(), "Source")

	f.press(t, keyOf(tea.KeyTab))
	assert.False(t, f.model.showSource)
}

func TestHelpOverlay_OpensAndAnyKeyCloses(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	f.press(t, keyOf(tea.KeyF1))
	assert.Equal(t, overlayHelp, f.model.overlay)
	assert.NotEmpty(t, f.model.helpView)

	f.press(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Equal(t, overlayNone, f.model.overlay)
	// The dismissing key must not reach the document.
	assert.Equal(t, "abc", f.ed.GetText())
}

func TestHistoryInspector_RequiresFlag(t *testing.T) {
	sched := schedule.NewManual()
	ed, err := editor.New(editor.Options{Content: "<p>abc</p>", Scheduler: sched})
	require.NoError(t, err)
	t.Cleanup(ed.Destroy)

	cfg := config.Defaults()
	ctrl := New(mode.Services{Editor: ed, Config: &cfg, Flags: flags.New(nil)}).SetSize(80, 24)
	f := &fixture{model: ctrl.(Model), ed: ed, sched: sched, cfg: &cfg}

	f.press(t, keyOf(tea.KeyCtrlH))
	assert.Equal(t, overlayNone, f.model.overlay)
	assert.Contains(t, f.model.statusMsg, "history-inspector")
}

func TestHistoryInspector_OpensAndNavigates(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	f.typeText(t, "x")
	f.sched.Flush()

	f.press(t, keyOf(tea.KeyCtrlH))
	require.Equal(t, overlayInspector, f.model.overlay)

	entries, pos := f.ed.History()
	require.NotEmpty(t, entries)
	assert.Equal(t, pos, f.model.inspectorSel)

	f.press(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, max(pos-1, 0), f.model.inspectorSel)

	f.press(t, keyOf(tea.KeyEscape))
	assert.Equal(t, overlayNone, f.model.overlay)
}

func TestLinkPrompt_AppliesURL(t *testing.T) {
	f := newFixture(t, "<p>click here</p>")
	f.press(t, keyOf(tea.KeyCtrlA))
	f.press(t, keyOf(tea.KeyCtrlK))
	require.Equal(t, overlayLink, f.model.overlay)

	for _, r := range "https://example.com" {
		f.press(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	f.press(t, keyOf(tea.KeyEnter))

	assert.Equal(t, overlayNone, f.model.overlay)
	assert.Contains(t, f.ed.GetContent(), `href="https://example.com"`)
}

func TestLinkPrompt_EmptyValueUnlinks(t *testing.T) {
	f := newFixture(t, `<p><a href="https://old.example">click</a></p>`)
	f.press(t, keyOf(tea.KeyCtrlA))
	f.press(t, keyOf(tea.KeyCtrlK))
	require.Equal(t, overlayLink, f.model.overlay)

	// Prompt prefills the existing URL; clear it.
	f.model.linkInput.SetValue("")
	f.press(t, keyOf(tea.KeyEnter))

	assert.NotContains(t, f.ed.GetContent(), "href")
}

func TestLinkPrompt_PrefillsCurrentURL(t *testing.T) {
	f := newFixture(t, `<p><a href="https://old.example">click</a></p>`)
	f.press(t, keyOf(tea.KeyCtrlA))
	f.press(t, keyOf(tea.KeyCtrlK))
	assert.Equal(t, "https://old.example", f.model.linkInput.Value())

	f.press(t, keyOf(tea.KeyEscape))
	assert.Equal(t, overlayNone, f.model.overlay)
}

func TestSaveDocument_WritesFile(t *testing.T) {
	sched := schedule.NewManual()
	ed, err := editor.New(editor.Options{Content: "<p>abc</p>", Scheduler: sched})
	require.NoError(t, err)
	t.Cleanup(ed.Destroy)

	path := filepath.Join(t.TempDir(), "doc.html")
	cfg := config.Defaults()
	ctrl := New(mode.Services{Editor: ed, Config: &cfg, DocPath: path, Flags: flags.New(nil)}).SetSize(80, 24)
	f := &fixture{model: ctrl.(Model), ed: ed, sched: sched, cfg: &cfg}

	f.typeText(t, "x")
	require.True(t, f.model.dirty())

	f.press(t, keyOf(tea.KeyCtrlS))
	assert.False(t, f.model.dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f.ed.GetContent(), string(data))
}

func TestFileChanged_ReloadsWhenClean(t *testing.T) {
	sched := schedule.NewManual()
	ed, err := editor.New(editor.Options{Content: "<p>abc</p>", Scheduler: sched})
	require.NoError(t, err)
	t.Cleanup(ed.Destroy)

	path := filepath.Join(t.TempDir(), "doc.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>from disk</p>"), 0o644))

	cfg := config.Defaults()
	ctrl := New(mode.Services{Editor: ed, Config: &cfg, DocPath: path, Flags: flags.New(nil)}).SetSize(80, 24)
	f := &fixture{model: ctrl.(Model), ed: ed, sched: sched, cfg: &cfg}

	// lastSaved matches the initial content, so the reload applies.
	next, _ := f.model.Update(FileChangedMsg{})
	f.model = next.(Model)
	assert.Equal(t, "from disk", f.ed.GetText())
}

func TestFileChanged_KeepsUnsavedEdits(t *testing.T) {
	sched := schedule.NewManual()
	ed, err := editor.New(editor.Options{Content: "<p>abc</p>", Scheduler: sched})
	require.NoError(t, err)
	t.Cleanup(ed.Destroy)

	path := filepath.Join(t.TempDir(), "doc.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>from disk</p>"), 0o644))

	cfg := config.Defaults()
	ctrl := New(mode.Services{Editor: ed, Config: &cfg, DocPath: path, Flags: flags.New(nil)}).SetSize(80, 24)
	f := &fixture{model: ctrl.(Model), ed: ed, sched: sched, cfg: &cfg}

	f.typeText(t, "x")
	next, _ := f.model.Update(FileChangedMsg{})
	f.model = next.(Model)

	assert.Equal(t, "xabc", f.ed.GetText())
	assert.Contains(t, f.model.statusMsg, "unsaved")
}

func TestMouse_ToolbarClickTogglesBold(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	f.press(t, keyOf(tea.KeyCtrlA))

	// Zone registration is asynchronous via a channel worker in bubblezone;
	// re-scan and wait until the zone resolves.
	var z *zone.ZoneInfo
	for retries := 0; retries < 10; retries++ {
		_ = zone.Scan(f.model.View())
		z = zone.Get("toolbar:B")
		if z != nil && !z.IsZero() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z)
	require.False(t, z.IsZero(), "toolbar zone should be registered after Scan")

	clickX := z.StartX + (z.EndX-z.StartX)/2
	ctrl, _ := f.model.Update(tea.MouseMsg{
		X:      clickX,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	f.model = ctrl.(Model)
	f.sched.Flush()

	assert.True(t, f.ed.FormatState().Bold)
}

func TestView_StatusBarShowsReadOnlyAndDirty(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	f.typeText(t, "x")
	f.press(t, keyOf(tea.KeyCtrlR))

	view := f.model.View()
	assert.Contains(t, view, "RO")
	assert.Contains(t, view, "*")
}

func TestView_BeforeSizeIsPlaceholder(t *testing.T) {
	sched := schedule.NewManual()
	ed, err := editor.New(editor.Options{Content: "<p>abc</p>", Scheduler: sched})
	require.NoError(t, err)
	t.Cleanup(ed.Destroy)

	cfg := config.Defaults()
	m := New(mode.Services{Editor: ed, Config: &cfg, Flags: flags.New(nil)})
	assert.Equal(t, "loading...", m.View())
}
