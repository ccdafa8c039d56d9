package command

import (
	"context"
	"errors"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/port/inbound/command"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"

	"github.com/market-scout/marketscout/internal/app/service"
)

// verifyEmailHandler implements command.VerifyEmailHandler.
type verifyEmailHandler struct {
	userRepo     repository.UserRepository
	tokenService *service.TokenService
}

// NewVerifyEmailHandler creates a new VerifyEmailHandler.
func NewVerifyEmailHandler(
	userRepo repository.UserRepository,
	tokenService *service.TokenService,
) command.VerifyEmailHandler {
	return &verifyEmailHandler{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

func (h *verifyEmailHandler) Handle(ctx context.Context, cmd command.VerifyEmail) error {
	email, err := h.tokenService.ConfirmEmailToken(cmd.Token, service.PurposeEmailVerify)
	if err != nil {
		return err
	}

	user, err := h.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domainerror.ErrUserNotFound
		}
		return err
	}

	user.VerifyEmail()
	return h.userRepo.Update(ctx, user)
}
