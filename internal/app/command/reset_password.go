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

// requestPasswordResetHandler implements command.RequestPasswordResetHandler.
type requestPasswordResetHandler struct {
	userRepo     repository.UserRepository
	tokenService *service.TokenService
}

// NewRequestPasswordResetHandler creates a new RequestPasswordResetHandler.
func NewRequestPasswordResetHandler(
	userRepo repository.UserRepository,
	tokenService *service.TokenService,
) command.RequestPasswordResetHandler {
	return &requestPasswordResetHandler{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

func (h *requestPasswordResetHandler) Handle(ctx context.Context, cmd command.RequestPasswordReset) (command.RequestPasswordResetResult, error) {
	if _, err := h.userRepo.FindByEmail(ctx, cmd.Email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return command.RequestPasswordResetResult{}, domainerror.ErrUserNotFound
		}
		return command.RequestPasswordResetResult{}, err
	}

	token, err := h.tokenService.GenerateEmailToken(cmd.Email, service.PurposePasswordReset)
	if err != nil {
		return command.RequestPasswordResetResult{}, err
	}

	return command.RequestPasswordResetResult{ResetToken: token}, nil
}

// resetPasswordHandler implements command.ResetPasswordHandler.
type resetPasswordHandler struct {
	userRepo     repository.UserRepository
	tokenService *service.TokenService
}

// NewResetPasswordHandler creates a new ResetPasswordHandler.
func NewResetPasswordHandler(
	userRepo repository.UserRepository,
	tokenService *service.TokenService,
) command.ResetPasswordHandler {
	return &resetPasswordHandler{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

func (h *resetPasswordHandler) Handle(ctx context.Context, cmd command.ResetPassword) error {
	email, err := h.tokenService.ConfirmEmailToken(cmd.Token, service.PurposePasswordReset)
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

	hash, err := password.Hash(cmd.NewPassword)
	if err != nil {
		return err
	}
	user.ChangePassword(hash)

	if err := h.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// Every credential issued before the reset is now suspect.
	return h.tokenService.SetGlobalCutover(ctx, user.ID())
}
