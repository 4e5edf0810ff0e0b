// Package schedule abstracts delayed-callback scheduling. The engine's
// only asynchrony is a debounce timer and a deferred post-mutation re-read;
// routing both through a Scheduler keeps them deterministic under test.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Cancel revokes a scheduled callback. Safe to call more than once; firing
// after cancellation never happens.
type Cancel func()

// Scheduler runs callbacks later. Implementations only promise
// cancel-and-reschedule semantics, not real parallelism.
type Scheduler interface {
	// AfterFunc runs fn once delay has elapsed.
	AfterFunc(delay time.Duration, fn func()) Cancel

	// Defer runs fn after the current operation completes. It stands in
	// for a next-paint hook.
	Defer(fn func()) Cancel
}

// Timers schedules on the real clock.
type Timers struct{}

// AfterFunc implements Scheduler.
func (Timers) AfterFunc(delay time.Duration, fn func()) Cancel {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// Defer implements Scheduler.
func (s Timers) Defer(fn func()) Cancel {
	return s.AfterFunc(0, fn)
}

// Manual is a deterministic Scheduler driven by explicit ticks. Tests and
// single-threaded embedders advance it themselves.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTask
}

type manualTask struct {
	seq      int
	due      time.Duration
	fn       func()
	canceled bool
}

// NewManual returns a scheduler whose clock starts at zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(delay time.Duration, fn func()) Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()
	task := &manualTask{seq: m.seq, due: m.now + delay, fn: fn}
	m.seq++
	m.pending = append(m.pending, task)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		task.canceled = true
	}
}

// Defer implements Scheduler; deferred callbacks fire on the next Advance
// or Flush.
func (m *Manual) Defer(fn func()) Cancel {
	return m.AfterFunc(0, fn)
}

// Advance moves the clock forward and fires every task due on the way, in
// due-then-schedule order. Callbacks may schedule further tasks; those fire
// too if they fall within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	for {
		task := m.popDue(target)
		if task == nil {
			break
		}
		m.now = task.due
		m.mu.Unlock()
		task.fn()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// Flush fires everything pending regardless of due time.
func (m *Manual) Flush() {
	for {
		m.mu.Lock()
		task := m.popDue(1<<62 - 1)
		m.mu.Unlock()
		if task == nil {
			return
		}
		task.fn()
	}
}

// Pending reports how many live tasks are queued.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, t := range m.pending {
		if !t.canceled {
			count++
		}
	}
	return count
}

// popDue removes and returns the earliest live task due at or before
// target, discarding canceled tasks along the way. Caller holds the lock.
func (m *Manual) popDue(target time.Duration) *manualTask {
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].due != m.pending[j].due {
			return m.pending[i].due < m.pending[j].due
		}
		return m.pending[i].seq < m.pending[j].seq
	})
	for len(m.pending) > 0 {
		t := m.pending[0]
		if t.canceled {
			m.pending = m.pending[1:]
			continue
		}
		if t.due > target {
			return nil
		}
		m.pending = m.pending[1:]
		return t
	}
	return nil
}
