package command

import (
	"context"
	"errors"
	"testing"

	"github.com/market-scout/marketscout/internal/app/service"
	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/domain/event"
	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/inbound/command"
	"github.com/market-scout/marketscout/internal/testutil/mocks"
)

func TestLogoutHandler(t *testing.T) {
	ctx := context.Background()

	newSession := func(t *testing.T, store *mocks.TokenStore, tokens *service.TokenService) (*model.User, *service.TokenPair) {
		t.Helper()
		user, err := model.NewUser("alice", "alice@example.com", "hash")
		if err != nil {
			t.Fatalf("NewUser: %v", err)
		}
		user.VerifyEmail()
		pair, err := tokens.IssuePair(ctx, user, nil, "")
		if err != nil {
			t.Fatalf("IssuePair: %v", err)
		}
		return user, pair
	}

	t.Run("ends the session and its refresh chain", func(t *testing.T) {
		store := mocks.NewTokenStore()
		tokens := newCommandTestTokenService(t, store)
		publisher := mocks.NewEventPublisher()
		handler := NewLogoutHandler(tokens, publisher)

		_, pair := newSession(t, store, tokens)

		if err := handler.Handle(ctx, command.Logout{AccessToken: pair.AccessToken}); err != nil {
			t.Fatalf("Handle: %v", err)
		}

		// The access token is revoked and the paired refresh token can no
		// longer rotate: its family pointer is gone.
		if _, err := tokens.Validate(ctx, pair.AccessToken, service.TokenUseAccess); !errors.Is(err, domainerror.ErrTokenRevoked) {
			t.Errorf("Validate after logout = %v, want ErrTokenRevoked", err)
		}
		if _, err := tokens.Rotate(ctx, pair.RefreshToken); !errors.Is(err, domainerror.ErrInvalidFamily) {
			t.Errorf("Rotate after logout = %v, want ErrInvalidFamily", err)
		}

		if got := len(publisher.EventsOfType(event.EventTypeUserLoggedOut)); got != 1 {
			t.Errorf("logged-out events = %d, want 1", got)
		}
	})

	t.Run("family deletion failure propagates", func(t *testing.T) {
		store := mocks.NewTokenStore()
		tokens := newCommandTestTokenService(t, store)
		handler := NewLogoutHandler(tokens, mocks.NewEventPublisher())

		_, pair := newSession(t, store, tokens)
		store.Errors.DeleteFamily = errors.New("redis down")

		if err := handler.Handle(ctx, command.Logout{AccessToken: pair.AccessToken}); err == nil {
			t.Error("Handle succeeded despite family deletion failure")
		}
	})

	t.Run("logout-all records a cutover for the user", func(t *testing.T) {
		store := mocks.NewTokenStore()
		tokens := newCommandTestTokenService(t, store)
		publisher := mocks.NewEventPublisher()
		handler := NewLogoutAllHandler(tokens, publisher)

		user, _ := newSession(t, store, tokens)

		if err := handler.Handle(ctx, command.LogoutAll{UserID: user.ID()}); err != nil {
			t.Fatalf("Handle: %v", err)
		}

		if store.Calls.SetCutover != 1 {
			t.Errorf("SetCutover calls = %d, want 1", store.Calls.SetCutover)
		}
		if got := len(publisher.EventsOfType(event.EventTypeUserLoggedOut)); got != 1 {
			t.Errorf("logged-out events = %d, want 1", got)
		}
	})
}
