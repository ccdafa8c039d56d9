package command

import (
	"context"

	"github.com/market-scout/marketscout/internal/port/inbound/command"

	"github.com/market-scout/marketscout/internal/app/service"
)

// refreshTokensHandler implements command.RefreshTokensHandler.
type refreshTokensHandler struct {
	tokenService *service.TokenService
}

// NewRefreshTokensHandler creates a new RefreshTokensHandler.
func NewRefreshTokensHandler(tokenService *service.TokenService) command.RefreshTokensHandler {
	return &refreshTokensHandler{tokenService: tokenService}
}

func (h *refreshTokensHandler) Handle(ctx context.Context, cmd command.RefreshTokens) (command.RefreshTokensResult, error) {
	pair, err := h.tokenService.Rotate(ctx, cmd.RefreshToken)
	if err != nil {
		return command.RefreshTokensResult{}, err
	}

	return command.RefreshTokensResult{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}, nil
}
