package event

import (
	"time"

	"github.com/market-scout/marketscout/internal/domain/model"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventID returns the unique identifier for this event instance.
	EventID() string

	// EventType returns the type name of the event (e.g., "review.recorded").
	EventType() string

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// AggregateType returns the type of aggregate (e.g., "market", "user").
	AggregateType() string
}

// BaseEvent provides common fields for all domain events.
type BaseEvent struct {
	eventID       string
	eventType     string
	occurredAt    time.Time
	aggregateID   string
	aggregateType string
}

// NewBaseEvent creates a new BaseEvent.
func NewBaseEvent(eventType string, aggregateID string, aggregateType string) BaseEvent {
	return BaseEvent{
		eventID:       model.NewID(),
		eventType:     eventType,
		occurredAt:    time.Now().UTC(),
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
	}
}

func (e BaseEvent) EventID() string       { return e.eventID }
func (e BaseEvent) EventType() string     { return e.eventType }
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }
func (e BaseEvent) AggregateID() string   { return e.aggregateID }
func (e BaseEvent) AggregateType() string { return e.aggregateType }

// Aggregate types
const (
	AggregateTypeUser   = "user"
	AggregateTypeMarket = "market"
	AggregateTypeToken  = "token"
)

// Event types
const (
	// User events
	EventTypeUserRegistered = "user.registered"
	EventTypeUserLoggedOut  = "user.logged_out"

	// Token events
	EventTypeTokenRefreshed     = "token.refreshed"
	EventTypeTokenReuseDetected = "token.reuse_detected"

	// Market events
	EventTypeMarketCreated      = "market.created"
	EventTypeReviewRecorded     = "review.recorded"
	EventTypeLeaderboardRebuilt = "leaderboard.rebuilt"
)
