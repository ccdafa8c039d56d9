package event

// TokenRefreshed is emitted on each successful refresh rotation.
type TokenRefreshed struct {
	BaseEvent
	UserID   string `json:"user_id"`
	FamilyID string `json:"family_id"`
}

// NewTokenRefreshed creates a new TokenRefreshed event.
func NewTokenRefreshed(userID, familyID string) TokenRefreshed {
	return TokenRefreshed{
		BaseEvent: NewBaseEvent(EventTypeTokenRefreshed, familyID, AggregateTypeToken),
		UserID:    userID,
		FamilyID:  familyID,
	}
}

// TokenReuseDetected is emitted when a rotated-away refresh token is
// replayed. Consumers should treat this as a security signal: the family is
// already revoked by the time the event is published.
type TokenReuseDetected struct {
	BaseEvent
	UserID   string `json:"user_id"`
	FamilyID string `json:"family_id"`
}

// NewTokenReuseDetected creates a new TokenReuseDetected event.
func NewTokenReuseDetected(userID, familyID string) TokenReuseDetected {
	return TokenReuseDetected{
		BaseEvent: NewBaseEvent(EventTypeTokenReuseDetected, familyID, AggregateTypeToken),
		UserID:    userID,
		FamilyID:  familyID,
	}
}
