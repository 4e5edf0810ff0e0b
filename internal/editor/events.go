package editor

import "github.com/google/uuid"

// Events emitted by an Editor.
const (
	// EventReady fires once, deferred through the scheduler, after
	// construction completes. No payload.
	EventReady = "ready"

	// EventChange carries the serialized content string. Emitted after
	// every command execution and content replacement.
	EventChange = "change"

	// EventSelectionChange carries a selection.State, or nil when the
	// selection became absent.
	EventSelectionChange = "selectionChange"

	// EventFormatChange carries a format.ChangeEvent. Emitted only when
	// at least one field actually moved.
	EventFormatChange = "formatChange"

	// EventFocus and EventBlur carry no payload.
	EventFocus = "focus"
	EventBlur  = "blur"

	// EventReadOnlyChange carries the new read-only flag as a bool.
	EventReadOnlyChange = "readOnlyChange"

	// EventDestroy fires last; afterwards the editor drops every
	// subscriber and ignores all calls.
	EventDestroy = "destroy"
)

type subscriber struct {
	token string
	fn    func(payload any)
}

// emission is one staged fan-out. The subscriber list is snapshotted when
// the emission is queued so delivery matches the subscribers present at
// the moment the state changed, not at the moment the lock released.
type emission struct {
	event   string
	payload any
	subs    []subscriber
}

// Subscribe registers fn for event and returns an opaque token for
// Unsubscribe. Callbacks run synchronously in subscription order, outside
// the editor's internal lock, so they may call back into the editor.
func (e *Editor) Subscribe(event string, fn func(payload any)) string {
	if fn == nil {
		return ""
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return ""
	}
	token := uuid.NewString()
	e.subs[event] = append(e.subs[event], subscriber{token: token, fn: fn})
	return token
}

// Unsubscribe removes the subscription identified by token and reports
// whether anything was removed.
func (e *Editor) Unsubscribe(token string) bool {
	if token == "" {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for event, list := range e.subs {
		for i, s := range list {
			if s.token == token {
				e.subs[event] = append(list[:i], list[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Emit fans payload out to event's subscribers. Engine notifications use
// the Event names above; embedders may publish their own events through
// the same bus.
func (e *Editor) Emit(event string, payload any) {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.queueEmit(event, payload)
	pending := e.takeEmits()
	e.mu.Unlock()
	fire(pending)
}

// queueEmit stages an emission for delivery after the caller releases the
// lock. Callers hold e.mu.
func (e *Editor) queueEmit(event string, payload any) {
	list := e.subs[event]
	if len(list) == 0 {
		return
	}
	e.pending = append(e.pending, emission{
		event:   event,
		payload: payload,
		subs:    append([]subscriber(nil), list...),
	})
}

// takeEmits drains the staged emissions. Callers hold e.mu.
func (e *Editor) takeEmits() []emission {
	pending := e.pending
	e.pending = nil
	return pending
}

// fire delivers staged emissions. Never called with e.mu held.
func fire(pending []emission) {
	for _, em := range pending {
		for _, s := range em.subs {
			s.fn(em.payload)
		}
	}
}
