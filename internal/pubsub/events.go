// Package pubsub fans values out from one producer to many channel
// subscribers. The editing engine's own event bus is synchronous and
// ordered and lives elsewhere; this package covers the asynchronous side
// feeds around it, such as log lines streaming into TUI listeners.
package pubsub

import (
	"context"
	"time"
)

// EventType labels what a delivery represents. Producers define their own
// values; the broker only carries them.
type EventType string

// Event is one delivery: a typed payload stamped at publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out receive channels scoped to a context.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher accepts typed payloads for fan-out.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
