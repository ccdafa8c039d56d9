package messaging

import (
	"context"

	"github.com/market-scout/marketscout/internal/domain/event"
)

// EventPublisher defines the interface for publishing domain events.
type EventPublisher interface {
	// Publish publishes a single event.
	Publish(ctx context.Context, evt event.Event) error
}

// Topic names for platform events. The transport adapter prepends its
// service prefix, so these are bare aggregate tokens.
const (
	TopicUserEvents   = "user"
	TopicMarketEvents = "market"
	TopicTokenEvents  = "token"
)

// TopicForEvent returns the appropriate topic for an event type.
func TopicForEvent(evt event.Event) string {
	switch evt.AggregateType() {
	case event.AggregateTypeMarket:
		return TopicMarketEvents
	case event.AggregateTypeToken:
		return TopicTokenEvents
	default:
		return TopicUserEvents
	}
}
