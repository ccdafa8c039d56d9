package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/domain/event"
	"github.com/market-scout/marketscout/internal/port/inbound/command"
	"github.com/market-scout/marketscout/internal/testutil/mocks"

	"github.com/market-scout/marketscout/internal/app/service"
)

func newCommandTestTokenService(t *testing.T, store *mocks.TokenStore) *service.TokenService {
	t.Helper()

	svc, err := service.NewTokenService(service.TokenConfig{
		Issuer:               "marketscout",
		Audience:             "marketscout",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		SigningKey:           []byte("test-signing-key"),
	}, store, mocks.NewEventPublisher(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestRegisterUserHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and returns a verification token", func(t *testing.T) {
		userRepo := mocks.NewUserRepository()
		publisher := mocks.NewEventPublisher()
		tokens := newCommandTestTokenService(t, mocks.NewTokenStore())
		handler := NewRegisterUserHandler(userRepo, tokens, publisher)

		result, err := handler.Handle(ctx, command.RegisterUser{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "correct horse battery staple",
		})
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if result.UserID == "" {
			t.Error("expected a user ID")
		}
		if result.VerificationToken == "" {
			t.Error("expected a verification token")
		}

		// The token confirms only for its issued purpose.
		email, err := tokens.ConfirmEmailToken(result.VerificationToken, service.PurposeEmailVerify)
		if err != nil {
			t.Fatalf("ConfirmEmailToken: %v", err)
		}
		if email != "alice@example.com" {
			t.Errorf("email = %q, want alice@example.com", email)
		}
		if _, err := tokens.ConfirmEmailToken(result.VerificationToken, service.PurposePasswordReset); !errors.Is(err, domainerror.ErrTokenInvalid) {
			t.Errorf("cross-purpose confirm err = %v, want ErrTokenInvalid", err)
		}

		if got := len(publisher.EventsOfType(event.EventTypeUserRegistered)); got != 1 {
			t.Errorf("registered events = %d, want 1", got)
		}

		user, err := userRepo.FindByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("FindByUsername: %v", err)
		}
		if user.EmailVerified() {
			t.Error("new account must start unverified")
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		userRepo := mocks.NewUserRepository()
		tokens := newCommandTestTokenService(t, mocks.NewTokenStore())
		handler := NewRegisterUserHandler(userRepo, tokens, mocks.NewEventPublisher())

		cmd := command.RegisterUser{Username: "alice", Email: "alice@example.com", Password: "pw12345678"}
		if _, err := handler.Handle(ctx, cmd); err != nil {
			t.Fatalf("first Handle: %v", err)
		}
		if _, err := handler.Handle(ctx, cmd); !errors.Is(err, domainerror.ErrUserAlreadyExists) {
			t.Errorf("err = %v, want ErrUserAlreadyExists", err)
		}
	})
}
