package command

import (
	"context"

	"github.com/market-scout/marketscout/internal/domain/event"
	"github.com/market-scout/marketscout/internal/port/inbound/command"
	"github.com/market-scout/marketscout/internal/port/outbound/messaging"

	"github.com/market-scout/marketscout/internal/app/service"
)

// logoutHandler implements command.LogoutHandler.
type logoutHandler struct {
	tokenService *service.TokenService
	publisher    messaging.EventPublisher
}

// NewLogoutHandler creates a new LogoutHandler.
func NewLogoutHandler(
	tokenService *service.TokenService,
	publisher messaging.EventPublisher,
) command.LogoutHandler {
	return &logoutHandler{
		tokenService: tokenService,
		publisher:    publisher,
	}
}

func (h *logoutHandler) Handle(ctx context.Context, cmd command.Logout) error {
	claims, err := h.tokenService.Validate(ctx, cmd.AccessToken, service.TokenUseAccess)
	if err != nil {
		return err
	}

	// Revoke the access token for its remaining lifetime, then kill the
	// family so the paired refresh token cannot rotate either. Both are
	// security-sensitive writes: failures propagate.
	if err := h.tokenService.RevokeCurrent(ctx, cmd.AccessToken); err != nil {
		return err
	}
	if claims.FamilyID != "" {
		if err := h.tokenService.RevokeFamily(ctx, claims.FamilyID); err != nil {
			return err
		}
	}

	_ = h.publisher.Publish(ctx, event.NewUserLoggedOut(claims.Subject, false))
	return nil
}

// logoutAllHandler implements command.LogoutAllHandler.
type logoutAllHandler struct {
	tokenService *service.TokenService
	publisher    messaging.EventPublisher
}

// NewLogoutAllHandler creates a new LogoutAllHandler.
func NewLogoutAllHandler(
	tokenService *service.TokenService,
	publisher messaging.EventPublisher,
) command.LogoutAllHandler {
	return &logoutAllHandler{
		tokenService: tokenService,
		publisher:    publisher,
	}
}

func (h *logoutAllHandler) Handle(ctx context.Context, cmd command.LogoutAll) error {
	if err := h.tokenService.SetGlobalCutover(ctx, cmd.UserID); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, event.NewUserLoggedOut(cmd.UserID, true))
	return nil
}
