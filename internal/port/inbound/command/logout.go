package command

import "context"

// Logout revokes the current access token and its refresh family.
type Logout struct {
	// AccessToken is the raw credential from the request context.
	AccessToken string
}

func (c Logout) CommandName() string {
	return "marketscout.logout"
}

// LogoutHandler handles the Logout command.
type LogoutHandler interface {
	Handle(ctx context.Context, cmd Logout) error
}

// LogoutAll invalidates every credential a user holds, across all devices,
// by recording a global cutover timestamp.
type LogoutAll struct {
	UserID string
}

func (c LogoutAll) CommandName() string {
	return "marketscout.logout_all"
}

// LogoutAllHandler handles the LogoutAll command.
type LogoutAllHandler interface {
	Handle(ctx context.Context, cmd LogoutAll) error
}
