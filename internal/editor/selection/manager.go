package selection

import (
	"time"

	"golang.org/x/net/html"

	"github.com/zjrosen/plume/internal/editor/dom"
	"github.com/zjrosen/plume/internal/editor/format"
	"github.com/zjrosen/plume/internal/log"
)

// Cause tags why a selection snapshot was saved.
type Cause string

const (
	CauseToolbar  Cause = "toolbar"
	CauseDropdown Cause = "dropdown"
	CauseModal    Cause = "modal"
	CauseFloating Cause = "floating"
	CauseManual   Cause = "manual"
)

// Snapshot is a caller-saved copy of a range with provenance. Snapshots
// stack so nested UI interactions (a toolbar opening a picker that itself
// saves) restore in the right order.
type Snapshot struct {
	Range   Range
	Cause   Cause
	SavedAt time.Time
}

// Rect is a bounding rectangle in embedder coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Measurer lets an embedder report layout geometry for a range. The engine
// itself has no layout; without a measurer every rect is absent.
type Measurer interface {
	RangeRect(rng Range) (Rect, bool)
}

// State is the derived read projection of the active selection. It is
// recomputed on every query and never cached.
type State struct {
	Range     Range
	Collapsed bool
	Text      string
	Rect      *Rect
	Format    format.State
}

// Manager owns the selection lifecycle: the active range (the engine's
// stand-in for the host's ambient selection cursor), the snapshot stack,
// and the composition soft lock.
type Manager struct {
	root      *html.Node
	resolver  *format.Resolver
	measurer  Measurer
	active    *Range
	snapshots []Snapshot
	composing bool
	now       func() time.Time
}

// NewManager builds a manager for the surface rooted at root. measurer may
// be nil.
func NewManager(root *html.Node, resolver *format.Resolver, measurer Measurer) *Manager {
	return &Manager{
		root:     root,
		resolver: resolver,
		measurer: measurer,
		now:      time.Now,
	}
}

// Set records rng as the active selection after clamping offsets and
// ordering the boundaries.
func (m *Manager) Set(rng Range) {
	if rng.Start.Node == nil || rng.End.Node == nil {
		m.ClearActive()
		return
	}
	clamped := Clamp(rng)
	m.active = &clamped
}

// ClearActive drops the active selection.
func (m *Manager) ClearActive() {
	m.active = nil
}

// SetComposing toggles the IME soft lock. While composing, selection reads
// report absence so the engine never races an in-progress composition
// session.
func (m *Manager) SetComposing(composing bool) {
	m.composing = composing
}

// IsComposing reports whether a composition session is in progress.
func (m *Manager) IsComposing() bool {
	return m.composing
}

// IsWithinContent reports whether the active selection lies inside the
// editable surface. False with no selection or during composition.
func (m *Manager) IsWithinContent() bool {
	if m.active == nil || m.composing {
		return false
	}
	return dom.Contains(m.root, m.active.Start.Node) && dom.Contains(m.root, m.active.End.Node)
}

// Active returns an owned copy of the raw active range, un-normalized.
func (m *Manager) Active() (Range, bool) {
	if m.active == nil {
		return Range{}, false
	}
	return *m.active, true
}

// Current returns the selection state, or false when no usable selection
// exists. The embedded range is normalized and owned by the caller.
func (m *Manager) Current() (State, bool) {
	if !m.IsWithinContent() {
		return State{}, false
	}
	rng := Normalize(m.root, *m.active)
	state := State{
		Range:     rng,
		Collapsed: rng.Collapsed(),
		Text:      RangeText(m.root, rng),
	}
	if !state.Collapsed && m.measurer != nil {
		if rect, ok := m.measurer.RangeRect(rng); ok {
			state.Rect = &rect
		}
	}
	state.Format = m.resolver.Compute(rng.Start.Node, rng.Start.Offset, state.Collapsed)
	return state, true
}

// Save pushes a normalized copy of the active range tagged with cause.
// It reports false, without pushing, during composition or when no usable
// selection exists.
func (m *Manager) Save(cause Cause) bool {
	if !m.IsWithinContent() {
		return false
	}
	m.snapshots = append(m.snapshots, Snapshot{
		Range:   Normalize(m.root, *m.active),
		Cause:   cause,
		SavedAt: m.now(),
	})
	log.Debug(log.CatSelection, "selection saved", "cause", string(cause), "depth", len(m.snapshots))
	return true
}

// Restore pops the most recent snapshot and reapplies it as the active
// selection, reporting whether a snapshot existed. Callers re-emit
// selection and format notifications after a successful restore.
func (m *Manager) Restore() bool {
	if len(m.snapshots) == 0 {
		return false
	}
	snap := m.snapshots[len(m.snapshots)-1]
	m.snapshots = m.snapshots[:len(m.snapshots)-1]
	m.Set(snap.Range)
	log.Debug(log.CatSelection, "selection restored", "cause", string(snap.Cause), "depth", len(m.snapshots))
	return true
}

// ClearSnapshots drops the entire snapshot stack.
func (m *Manager) ClearSnapshots() {
	m.snapshots = nil
}

// SnapshotDepth returns how many snapshots are stacked.
func (m *Manager) SnapshotDepth() int {
	return len(m.snapshots)
}
