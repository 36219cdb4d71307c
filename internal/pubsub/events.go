// Package pubsub fans out session updates and log entries to subscribers,
// most notably the bubbletea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// CreatedEvent carries a newly written entry, e.g. a log line.
	CreatedEvent EventType = "created"
	// RefreshedEvent carries the result of a scheduler tick.
	RefreshedEvent EventType = "refreshed"
	// ReconfiguredEvent carries the first result after options or the
	// timestamp changed.
	ReconfiguredEvent EventType = "reconfigured"
	// StoppedEvent is published once when a session is torn down.
	StoppedEvent EventType = "stopped"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}
