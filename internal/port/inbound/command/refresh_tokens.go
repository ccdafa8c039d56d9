package command

import (
	"context"
	"time"
)

// RefreshTokens rotates a refresh token into a new credential pair within
// the same family.
type RefreshTokens struct {
	RefreshToken string
}

func (c RefreshTokens) CommandName() string {
	return "marketscout.refresh_tokens"
}

// RefreshTokensResult contains the new credential pair.
type RefreshTokensResult struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// RefreshTokensHandler handles the RefreshTokens command.
type RefreshTokensHandler interface {
	Handle(ctx context.Context, cmd RefreshTokens) (RefreshTokensResult, error)
}
