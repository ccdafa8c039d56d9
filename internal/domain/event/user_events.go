package event

// UserRegistered is emitted when a new user account is created.
type UserRegistered struct {
	BaseEvent
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// NewUserRegistered creates a new UserRegistered event.
func NewUserRegistered(userID, username string) UserRegistered {
	return UserRegistered{
		BaseEvent: NewBaseEvent(EventTypeUserRegistered, userID, AggregateTypeUser),
		UserID:    userID,
		Username:  username,
	}
}

// UserLoggedOut is emitted when a user logs out of one or all sessions.
type UserLoggedOut struct {
	BaseEvent
	UserID      string `json:"user_id"`
	AllSessions bool   `json:"all_sessions"`
}

// NewUserLoggedOut creates a new UserLoggedOut event.
func NewUserLoggedOut(userID string, allSessions bool) UserLoggedOut {
	return UserLoggedOut{
		BaseEvent:   NewBaseEvent(EventTypeUserLoggedOut, userID, AggregateTypeUser),
		UserID:      userID,
		AllSessions: allSessions,
	}
}
