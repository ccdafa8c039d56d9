package mocks

import (
	"context"
	"sync"

	"github.com/market-scout/marketscout/internal/domain/event"
)

// EventPublisher is a mock implementation of messaging.EventPublisher.
type EventPublisher struct {
	mu sync.RWMutex

	// Published events
	events []event.Event

	// Events by type for easier querying
	byType map[string][]event.Event

	// Call tracking
	Calls struct {
		Publish int
	}

	// Error injection
	Errors struct {
		Publish error
	}
}

// NewEventPublisher creates a new mock EventPublisher.
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		events: make([]event.Event, 0),
		byType: make(map[string][]event.Event),
	}
}

func (m *EventPublisher) Publish(ctx context.Context, evt event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Publish++

	if m.Errors.Publish != nil {
		return m.Errors.Publish
	}

	m.events = append(m.events, evt)
	m.byType[evt.EventType()] = append(m.byType[evt.EventType()], evt)
	return nil
}

// Events returns all published events.
func (m *EventPublisher) Events() []event.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]event.Event, len(m.events))
	copy(out, m.events)
	return out
}

// EventsOfType returns all published events of the given type.
func (m *EventPublisher) EventsOfType(eventType string) []event.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byType[eventType]
}
