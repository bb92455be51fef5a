package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"party_phonecountry/platform/logger"
)

type testEvent struct {
	BaseEvent
}

func (testEvent) EventName() string { return "test.event" }

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())

	var calls atomic.Int32
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		calls.Add(1)
		return nil
	}))
	bus.Subscribe("other.event", HandlerFunc(func(ctx context.Context, event Event) error {
		t.Error("unexpected delivery to other.event")
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	bus.Wait()

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 deliveries, got %d", got)
	}
}

func TestPublishSyncJoinsHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	errFirst := errors.New("first")
	errSecond := errors.New("second")

	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error { return errFirst }))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error { return errSecond }))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, errFirst) || !errors.Is(err, errSecond) {
		t.Fatalf("expected both handler errors, got %v", err)
	}
}

func TestNewBaseEventIsStamped(t *testing.T) {
	a, b := NewBaseEvent(), NewBaseEvent()
	if a.ID == b.ID {
		t.Fatal("expected distinct publication ids")
	}
	if a.OccurredAt().IsZero() {
		t.Fatal("expected timestamp set")
	}
	if eventID(testEvent{BaseEvent: a}) != a.ID.String() {
		t.Fatal("expected event id resolved through the embedded base event")
	}
}
