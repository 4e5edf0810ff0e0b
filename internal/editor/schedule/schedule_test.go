package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual_FiresInDueOrder(t *testing.T) {
	m := NewManual()
	var order []string

	m.AfterFunc(200*time.Millisecond, func() { order = append(order, "late") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "early") })
	m.Defer(func() { order = append(order, "deferred") })

	m.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"deferred"}, order, "only due tasks fire")

	m.Advance(200 * time.Millisecond)
	assert.Equal(t, []string{"deferred", "early", "late"}, order)
}

func TestManual_CancelPreventsFiring(t *testing.T) {
	m := NewManual()
	fired := false

	cancel := m.AfterFunc(100*time.Millisecond, func() { fired = true })
	cancel()
	cancel() // double cancel is safe

	m.Advance(time.Second)
	assert.False(t, fired)
	assert.Zero(t, m.Pending())
}

func TestManual_RescheduleDuringCallback(t *testing.T) {
	m := NewManual()
	var hits int

	m.AfterFunc(100*time.Millisecond, func() {
		hits++
		m.AfterFunc(100*time.Millisecond, func() { hits++ })
	})

	m.Advance(250 * time.Millisecond)
	assert.Equal(t, 2, hits, "a task scheduled mid-advance still fires inside the window")
}

func TestManual_FlushFiresEverything(t *testing.T) {
	m := NewManual()
	var hits int

	m.AfterFunc(time.Hour, func() { hits++ })
	m.Defer(func() { hits++ })
	require.Equal(t, 2, m.Pending())

	m.Flush()

	assert.Equal(t, 2, hits)
	assert.Zero(t, m.Pending())
}

func TestTimers_AfterFuncFires(t *testing.T) {
	done := make(chan struct{})

	Timers{}.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func TestTimers_CancelStopsTimer(t *testing.T) {
	fired := make(chan struct{}, 1)

	cancel := Timers{}.AfterFunc(50*time.Millisecond, func() { fired <- struct{}{} })
	cancel()

	select {
	case <-fired:
		t.Fatal("canceled timer fired")
	case <-time.After(150 * time.Millisecond):
	}
}
