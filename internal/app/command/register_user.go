package command

import (
	"context"
	"errors"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/domain/event"
	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/inbound/command"
	"github.com/market-scout/marketscout/internal/port/outbound/messaging"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"
	"github.com/market-scout/marketscout/pkg/password"

	"github.com/market-scout/marketscout/internal/app/service"
)

// registerUserHandler implements command.RegisterUserHandler.
type registerUserHandler struct {
	userRepo     repository.UserRepository
	tokenService *service.TokenService
	publisher    messaging.EventPublisher
}

// NewRegisterUserHandler creates a new RegisterUserHandler.
func NewRegisterUserHandler(
	userRepo repository.UserRepository,
	tokenService *service.TokenService,
	publisher messaging.EventPublisher,
) command.RegisterUserHandler {
	return &registerUserHandler{
		userRepo:     userRepo,
		tokenService: tokenService,
		publisher:    publisher,
	}
}

func (h *registerUserHandler) Handle(ctx context.Context, cmd command.RegisterUser) (command.RegisterUserResult, error) {
	hash, err := password.Hash(cmd.Password)
	if err != nil {
		return command.RegisterUserResult{}, err
	}

	user, err := model.NewUser(cmd.Username, cmd.Email, hash)
	if err != nil {
		return command.RegisterUserResult{}, err
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return command.RegisterUserResult{}, domainerror.ErrUserAlreadyExists
		}
		return command.RegisterUserResult{}, err
	}

	verificationToken, err := h.tokenService.GenerateEmailToken(user.Email(), service.PurposeEmailVerify)
	if err != nil {
		return command.RegisterUserResult{}, err
	}

	_ = h.publisher.Publish(ctx, event.NewUserRegistered(user.ID(), user.Username()))

	return command.RegisterUserResult{
		UserID:            user.ID(),
		VerificationToken: verificationToken,
	}, nil
}
