package command

import (
	"context"
	"errors"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/port/inbound/command"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"
	"github.com/market-scout/marketscout/pkg/password"

	"github.com/market-scout/marketscout/internal/app/service"
)

// loginHandler implements command.LoginHandler.
type loginHandler struct {
	userRepo     repository.UserRepository
	tokenService *service.TokenService
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(
	userRepo repository.UserRepository,
	tokenService *service.TokenService,
) command.LoginHandler {
	return &loginHandler{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

func (h *loginHandler) Handle(ctx context.Context, cmd command.Login) (command.LoginResult, error) {
	user, err := h.userRepo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return command.LoginResult{}, domainerror.ErrInvalidCredentials
		}
		return command.LoginResult{}, err
	}

	if !password.Verify(user.PasswordHash(), cmd.Password) {
		return command.LoginResult{}, domainerror.ErrInvalidCredentials
	}

	// A fresh login always starts a new token family.
	pair, err := h.tokenService.IssuePair(ctx, user, user.Scopes(), "")
	if err != nil {
		return command.LoginResult{}, err
	}

	return command.LoginResult{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}, nil
}
