package command

import (
	"context"
	"time"
)

// Login authenticates a user by password and starts a new token family.
type Login struct {
	Username string
	Password string
}

func (c Login) CommandName() string {
	return "marketscout.login"
}

// LoginResult contains the issued credential pair.
type LoginResult struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// LoginHandler handles the Login command.
type LoginHandler interface {
	Handle(ctx context.Context, cmd Login) (LoginResult, error)
}
