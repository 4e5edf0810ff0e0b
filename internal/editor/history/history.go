// Package history implements the debounced undo/redo snapshot stack over
// serialized content. Interactive edits funnel through Push, which absorbs
// keystroke bursts behind a debounce window; programmatic replacement uses
// PushImmediate. The stack is bounded and a push after undos overwrites the
// redo branch.
package history

import (
	"sync"
	"time"

	"github.com/zjrosen/plume/internal/editor/schedule"
	"github.com/zjrosen/plume/internal/log"
)

const (
	DefaultCapacity = 100
	DefaultDebounce = 300 * time.Millisecond
)

// TextOffsets is an optional plain-text selection recorded alongside a
// snapshot, interpretable by the embedder on restore.
type TextOffsets struct {
	Start int
	End   int
}

// Entry is one recorded content snapshot. Entries are never mutated after
// creation.
type Entry struct {
	Content   string
	Selection *TextOffsets
	CreatedAt time.Time
}

type pendingPush struct {
	content string
	sel     *TextOffsets
}

// Manager owns the snapshot sequence and the current position (-1 when
// empty).
type Manager struct {
	mu        sync.Mutex
	entries   []Entry
	position  int
	capacity  int
	debounce  time.Duration
	scheduler schedule.Scheduler
	cancel    schedule.Cancel
	pending   *pendingPush
	last      string
	now       func() time.Time
}

// NewManager builds a history manager. Non-positive capacity or debounce
// fall back to the defaults.
func NewManager(capacity int, debounce time.Duration, scheduler schedule.Scheduler) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Manager{
		position:  -1,
		capacity:  capacity,
		debounce:  debounce,
		scheduler: scheduler,
		now:       time.Now,
	}
}

// Push records content behind the debounce window. Identical content to
// the last push is dropped outright. The last-content comparison updates
// immediately so a keystroke burst restarts one timer instead of racing
// several.
func (m *Manager) Push(content string, sel *TextOffsets) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if content == m.last {
		return
	}
	m.last = content
	if m.cancel != nil {
		m.cancel()
	}
	p := &pendingPush{content: content, sel: sel}
	m.pending = p
	m.cancel = m.scheduler.AfterFunc(m.debounce, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.pending != p {
			return
		}
		m.pending = nil
		m.cancel = nil
		m.addEntryLocked(p.content, p.sel)
	})
}

// PushImmediate cancels any pending debounce and appends synchronously if
// content differs from the last push. Used for non-interactive replacement
// (initial load, programmatic setContent) where debouncing would be wrong.
func (m *Manager) PushImmediate(content string, sel *TextOffsets) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropPendingLocked()
	if content == m.last {
		return
	}
	m.last = content
	m.addEntryLocked(content, sel)
}

// Undo steps back one entry and returns it. A pending debounced push is
// committed first so the newest change is what gets undone. Reports false
// at or before the first entry.
func (m *Manager) Undo() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitPendingLocked()
	if m.position <= 0 {
		return Entry{}, false
	}
	m.position--
	entry := m.entries[m.position]
	m.last = entry.Content
	log.Debug(log.CatHistory, "undo", "position", m.position)
	return entry, true
}

// Redo steps forward one entry and returns it, reporting false at the
// tail. A pending push is committed first, which by construction leaves
// nothing to redo.
func (m *Manager) Redo() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitPendingLocked()
	if m.position >= len(m.entries)-1 {
		return Entry{}, false
	}
	m.position++
	entry := m.entries[m.position]
	m.last = entry.Content
	log.Debug(log.CatHistory, "redo", "position", m.position)
	return entry, true
}

// CanUndo reports whether a step back is available. A pending debounced
// push counts: Undo commits it before stepping.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending != nil {
		return len(m.entries) > 0
	}
	return m.position > 0
}

// CanRedo reports whether a step forward is available. A pending push
// means no: committing it discards the redo branch.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending == nil && m.position >= 0 && m.position < len(m.entries)-1
}

// Clear resets to the empty state and cancels any pending debounce.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropPendingLocked()
	m.entries = nil
	m.position = -1
	m.last = ""
}

// Len returns how many entries are recorded.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Position returns the current index, -1 when empty.
func (m *Manager) Position() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

// Entries returns a copy of the recorded sequence, oldest first.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...)
}

// dropPendingLocked cancels a pending push without recording it.
func (m *Manager) dropPendingLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.pending = nil
}

// commitPendingLocked records a pending push right now instead of waiting
// out the debounce.
func (m *Manager) commitPendingLocked() {
	if m.pending == nil {
		return
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	p := m.pending
	m.pending = nil
	m.addEntryLocked(p.content, p.sel)
}

// addEntryLocked truncates the redo branch, appends, and enforces the
// capacity bound by evicting the oldest entry. The position always lands
// on the appended entry.
func (m *Manager) addEntryLocked(content string, sel *TextOffsets) {
	m.entries = append(m.entries[:m.position+1], Entry{
		Content:   content,
		Selection: sel,
		CreatedAt: m.now(),
	})
	if len(m.entries) > m.capacity {
		m.entries = m.entries[1:]
	}
	m.position = len(m.entries) - 1
	log.Debug(log.CatHistory, "entry recorded", "entries", len(m.entries), "position", m.position)
}
