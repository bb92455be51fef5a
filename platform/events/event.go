// Package events carries notifications between modules of one process:
// a region change committed by the configuration module, a finished
// renormalization pass, and whatever subscribers want to react to them.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is a fact that already happened and was committed.
type Event interface {
	// EventName is the subscription key, e.g. "contacts.renormalized".
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent is embedded by concrete events. ID lets log lines from several
// handlers of one publication be correlated.
type BaseEvent struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// EventID returns the publication id.
func (e BaseEvent) EventID() uuid.UUID {
	return e.ID
}

// NewBaseEvent stamps a new publication.
func NewBaseEvent() BaseEvent {
	return BaseEvent{ID: uuid.New(), Timestamp: time.Now()}
}

// Handler reacts to one event. A returned error is reported by the bus and
// does not undo the publisher's work.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus fans events out to subscribers by name. Publishers call it only after
// their transaction committed.
type Bus interface {
	// Publish returns at once; handlers run in the background.
	Publish(ctx context.Context, event Event)
	// PublishSync runs every handler before returning their joined errors.
	PublishSync(ctx context.Context, event Event) error
	Subscribe(eventName string, handler Handler)
}
