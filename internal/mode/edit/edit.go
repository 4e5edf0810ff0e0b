// Package edit hosts the editing surface: a document pane bound to one
// engine instance, the formatting toolbar, a status bar, and the source,
// help, history, and link overlays.
//
// The caret and selection anchor live here as rune offsets into the
// document's plain-text projection; every movement is pushed into the
// engine through its text-offset selection API so command execution,
// format resolution, and history snapshots all see the same range.
package edit

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/plume/internal/editor"
	"github.com/zjrosen/plume/internal/editor/format"
	"github.com/zjrosen/plume/internal/editor/keymap"
	"github.com/zjrosen/plume/internal/flags"
	"github.com/zjrosen/plume/internal/keys"
	"github.com/zjrosen/plume/internal/log"
	"github.com/zjrosen/plume/internal/mode"
	"github.com/zjrosen/plume/internal/ui/styles"
)

// FileChangedMsg signals that the open document changed on disk.
type FileChangedMsg struct{}

// overlayKind identifies which overlay, if any, sits above the panes.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlayInspector
	overlayLink
)

// eventFeed records the most recent bus notification for the status bar.
// Subscribers run synchronously inside editor calls, but the history
// debounce timer can also fire one, so access is locked.
type eventFeed struct {
	mu    sync.Mutex
	last  string
	count int
}

func (f *eventFeed) note(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = s
	f.count++
}

func (f *eventFeed) snapshot() (string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.count
}

// Model holds the edit screen state.
type Model struct {
	svc  mode.Services
	keys keys.KeyMap
	km   *keymap.Table
	feed *eventFeed

	cursor int // caret, rune offset into the plain-text projection
	anchor int // selection anchor; equals cursor when collapsed

	showSource   bool
	overlay      overlayKind
	inspectorSel int
	linkInput    textinput.Model

	statusMsg string
	lastSaved string
	helpView  string // cached rendered help, invalidated on resize

	width  int
	height int
}

// New creates the edit screen bound to the services' editor instance.
func New(svc mode.Services) Model {
	km := keymap.Default()
	// Bind prepends, so walk user bindings backwards to keep their
	// config order as the resolution order.
	for i := len(svc.Config.Bindings) - 1; i >= 0; i-- {
		b := svc.Config.Bindings[i]
		km.Bind(keymap.Binding{
			Key:     strings.ToLower(b.Key),
			Mod:     b.Mod,
			Shift:   b.Shift,
			Alt:     b.Alt,
			Command: b.Command,
			Args:    b.Args,
		})
	}

	ti := textinput.New()
	ti.Prompt = "URL: "
	ti.Placeholder = "https://"
	ti.Width = 40
	ti.PromptStyle = styles.PromptLabelFocusedStyle
	ti.TextStyle = styles.PromptInputStyle
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor)

	feed := &eventFeed{}
	svc.Editor.Subscribe(editor.EventFormatChange, func(payload any) {
		ev, ok := payload.(format.ChangeEvent)
		if !ok {
			return
		}
		feed.note("format: " + strings.Join(ev.Changed, ","))
	})
	svc.Editor.Subscribe(editor.EventChange, func(any) {
		feed.note("change")
	})
	svc.Editor.Subscribe(editor.EventReadOnlyChange, func(payload any) {
		if ro, ok := payload.(bool); ok {
			feed.note(fmt.Sprintf("readOnly: %v", ro))
		}
	})

	m := Model{
		svc:       svc,
		keys:      keys.DefaultKeyMap(),
		km:        km,
		feed:      feed,
		linkInput: ti,
		lastSaved: svc.Editor.GetContent(),
	}
	svc.Editor.Focus()
	svc.Editor.SelectText(0, 0)
	return m
}

// Init implements mode.Controller.
func (m Model) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

// SetSize implements mode.Controller.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.helpView = ""
	return m
}

// Update implements mode.Controller.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case FileChangedMsg:
		return m.reloadFromDisk(), nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch m.overlay {
	case overlayLink:
		return m.handleLinkPromptKey(msg)
	case overlayInspector:
		return m.handleInspectorKey(msg)
	case overlayHelp:
		// Any key dismisses the help overlay.
		m.overlay = overlayNone
		return m, nil
	}

	ed := m.svc.Editor
	text := ed.GetText()

	switch {
	case key.Matches(msg, m.keys.CursorLeft):
		if m.cursor != m.anchor {
			m.cursor = min(m.cursor, m.anchor)
		} else {
			m.cursor = prevBoundary(text, m.cursor)
		}
		m.anchor = m.cursor
		return m.syncSelection(), nil

	case key.Matches(msg, m.keys.CursorRight):
		if m.cursor != m.anchor {
			m.cursor = max(m.cursor, m.anchor)
		} else {
			m.cursor = nextBoundary(text, m.cursor)
		}
		m.anchor = m.cursor
		return m.syncSelection(), nil

	case key.Matches(msg, m.keys.WordLeft):
		m.cursor = prevWord(text, m.cursor)
		m.anchor = m.cursor
		return m.syncSelection(), nil

	case key.Matches(msg, m.keys.WordRight):
		m.cursor = nextWord(text, m.cursor)
		m.anchor = m.cursor
		return m.syncSelection(), nil

	case key.Matches(msg, m.keys.LineStart):
		m.cursor = 0
		m.anchor = 0
		return m.syncSelection(), nil

	case key.Matches(msg, m.keys.LineEnd):
		m.cursor = len([]rune(text))
		m.anchor = m.cursor
		return m.syncSelection(), nil

	case key.Matches(msg, m.keys.ExtendLeft):
		m.cursor = prevBoundary(text, m.cursor)
		return m.syncSelection(), nil

	case key.Matches(msg, m.keys.ExtendRight):
		m.cursor = nextBoundary(text, m.cursor)
		return m.syncSelection(), nil

	case key.Matches(msg, m.keys.SelectAll):
		m.anchor = 0
		m.cursor = len([]rune(text))
		ed.SelectAll()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSource):
		m.showSource = !m.showSource
		return m, nil

	case key.Matches(msg, m.keys.HistoryInspector):
		if !m.svc.Flags.Enabled(flags.FlagHistoryInspector) {
			m.statusMsg = "history inspector is disabled (flags: history-inspector)"
			return m, nil
		}
		entries, pos := ed.History()
		if len(entries) == 0 {
			return m, nil
		}
		m.overlay = overlayInspector
		m.inspectorSel = pos
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		if m.helpView == "" {
			m.helpView = m.buildHelp()
		}
		return m, nil

	case key.Matches(msg, m.keys.SaveDoc):
		return m.saveDocument(), nil

	case key.Matches(msg, m.keys.ReadOnly):
		ed.SetReadOnly(!ed.ReadOnly())
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.cursor != m.anchor {
			m.anchor = m.cursor
			return m.syncSelection(), nil
		}
		m.statusMsg = ""
		return m, nil
	}

	// Formatting chords resolve through the editor keymap so config
	// bindings shadow the defaults.
	if chord, ok := chordFromKey(msg); ok {
		if binding, ok := m.km.Resolve(chord); ok {
			return m.runCommand(binding.Command, binding.Args), nil
		}
		return m, nil
	}

	return m.handleTextKey(msg), nil
}

// handleTextKey turns plain keystrokes into content edits.
func (m Model) handleTextKey(msg tea.KeyMsg) Model {
	ed := m.svc.Editor
	if ed.ReadOnly() {
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace ||
			msg.Type == tea.KeyBackspace || msg.Type == tea.KeyDelete {
			m.statusMsg = "document is read-only"
		}
		return m
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return m
		}
		return m.insertText(string(msg.Runes))

	case tea.KeySpace:
		return m.insertText(" ")

	case tea.KeyEnter:
		start := min(m.cursor, m.anchor)
		ed.Execute("insertHTML", "<br/>")
		m.cursor = clampOffset(ed.GetText(), start)
		m.anchor = m.cursor
		return m.syncSelection()

	case tea.KeyBackspace:
		return m.deleteSpan(true)

	case tea.KeyDelete:
		return m.deleteSpan(false)
	}

	return m
}

func (m Model) insertText(s string) Model {
	ed := m.svc.Editor
	start := min(m.cursor, m.anchor)
	ed.Execute("insertText", s)
	m.cursor = clampOffset(ed.GetText(), start+len([]rune(s)))
	m.anchor = m.cursor
	return m.syncSelection()
}

// deleteSpan removes the selection, or one grapheme cluster next to the
// caret when the selection is collapsed.
func (m Model) deleteSpan(backward bool) Model {
	ed := m.svc.Editor
	text := ed.GetText()
	start, end := min(m.cursor, m.anchor), max(m.cursor, m.anchor)
	if start == end {
		if backward {
			start = prevBoundary(text, end)
		} else {
			end = nextBoundary(text, start)
		}
		if start == end {
			return m
		}
		ed.SelectText(start, end)
	}
	ed.Execute("insertText", "")
	m.cursor = clampOffset(ed.GetText(), start)
	m.anchor = m.cursor
	return m.syncSelection()
}

// runCommand executes a named editor command. A link command without a
// prepared URL opens the prompt overlay instead.
func (m Model) runCommand(name string, args []any) Model {
	if name == "link" && len(args) == 0 {
		return m.openLinkPrompt()
	}
	ed := m.svc.Editor
	ed.Execute(name, args...)

	// Undo and redo restore the selection recorded with the snapshot;
	// pull the caret back from it. Everything else just re-clamps.
	if name == "undo" || name == "redo" {
		entries, pos := ed.History()
		if pos >= 0 && pos < len(entries) && entries[pos].Selection != nil {
			m.anchor = entries[pos].Selection.Start
			m.cursor = entries[pos].Selection.End
		}
	}
	text := ed.GetText()
	m.cursor = clampOffset(text, m.cursor)
	m.anchor = clampOffset(text, m.anchor)
	return m
}

func (m Model) openLinkPrompt() Model {
	m.overlay = overlayLink
	m.linkInput.SetValue(m.svc.Editor.FormatState().Link)
	m.linkInput.CursorEnd()
	m.linkInput.Focus()
	return m
}

func (m Model) handleLinkPromptKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.overlay = overlayNone
		m.linkInput.Blur()
		return m, nil
	case tea.KeyEnter:
		url := strings.TrimSpace(m.linkInput.Value())
		m.overlay = overlayNone
		m.linkInput.Blur()
		if url == "" {
			m.svc.Editor.Execute("unlink")
		} else {
			m.svc.Editor.Execute("link", url)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.linkInput, cmd = m.linkInput.Update(msg)
	return m, cmd
}

func (m Model) handleInspectorKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	entries, _ := m.svc.Editor.History()
	switch msg.String() {
	case "esc", "q", "ctrl+h":
		m.overlay = overlayNone
	case "up", "k":
		if m.inspectorSel > 0 {
			m.inspectorSel--
		}
	case "down", "j":
		if m.inspectorSel < len(entries)-1 {
			m.inspectorSel++
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (mode.Controller, tea.Cmd) {
	if m.overlay != overlayNone || !m.svc.Config.UI.ShowToolbar {
		return m, nil
	}
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	for _, item := range toolbarItems() {
		if z := zone.Get(toolbarZoneID(item)); z != nil && z.InBounds(msg) {
			return m.runCommand(item.command, item.args), nil
		}
	}
	return m, nil
}

// syncSelection pushes the local caret and anchor into the engine.
func (m Model) syncSelection() Model {
	m.svc.Editor.SelectText(m.anchor, m.cursor)
	return m
}

func (m Model) saveDocument() Model {
	if m.svc.DocPath == "" {
		m.statusMsg = "no file to save to"
		return m
	}
	content := m.svc.Editor.GetContent()
	if err := os.WriteFile(m.svc.DocPath, []byte(content), 0o644); err != nil {
		log.ErrorErr(log.CatUI, "save failed", err, "path", m.svc.DocPath)
		m.statusMsg = "save failed: " + err.Error()
		return m
	}
	m.lastSaved = content
	m.statusMsg = "saved " + m.svc.DocPath
	return m
}

// reloadFromDisk replaces the document with the on-disk version unless
// there are unsaved edits, which always win.
func (m Model) reloadFromDisk() Model {
	if m.svc.DocPath == "" {
		return m
	}
	if m.dirty() {
		m.statusMsg = "file changed on disk; keeping unsaved edits"
		return m
	}
	data, err := os.ReadFile(m.svc.DocPath)
	if err != nil {
		log.ErrorErr(log.CatUI, "reload failed", err, "path", m.svc.DocPath)
		m.statusMsg = "reload failed: " + err.Error()
		return m
	}
	ed := m.svc.Editor
	ed.SetContent(string(data))
	m.lastSaved = ed.GetContent()
	text := ed.GetText()
	m.cursor = clampOffset(text, m.cursor)
	m.anchor = m.cursor
	m.statusMsg = "reloaded from disk"
	return m.syncSelection()
}

func (m Model) dirty() bool {
	return m.svc.Editor.GetContent() != m.lastSaved
}

// chordFromKey normalizes a key event into a keymap chord. Only modified
// single-rune keys qualify; unmodified keys are text input and named keys
// (arrows, tab) belong to the chrome bindings.
func chordFromKey(msg tea.KeyMsg) (keymap.Chord, bool) {
	var c keymap.Chord
	parts := strings.Split(msg.String(), "+")
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl":
			c.Mod = true
		case "alt":
			c.Alt = true
		case "shift":
			c.Shift = true
		default:
			return keymap.Chord{}, false
		}
	}
	if !c.Mod && !c.Alt {
		return keymap.Chord{}, false
	}
	runes := []rune(parts[len(parts)-1])
	if len(runes) != 1 {
		return keymap.Chord{}, false
	}
	r := runes[0]
	if unicode.IsUpper(r) {
		c.Shift = true
		r = unicode.ToLower(r)
	}
	c.Key = string(r)
	return c, true
}
