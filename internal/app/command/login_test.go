package command

import (
	"context"
	"errors"
	"testing"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/inbound/command"
	"github.com/market-scout/marketscout/internal/testutil/mocks"
	"github.com/market-scout/marketscout/pkg/password"
)

func seedUser(t *testing.T, repo *mocks.UserRepository, username, plaintext string) *model.User {
	t.Helper()

	hash, err := password.Hash(plaintext)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	user, err := model.NewUser(username, username+"@example.com", hash)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	user.VerifyEmail()
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return user
}

func TestLoginHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials yield a fresh pair", func(t *testing.T) {
		userRepo := mocks.NewUserRepository()
		store := mocks.NewTokenStore()
		tokens := newCommandTestTokenService(t, store)
		handler := NewLoginHandler(userRepo, tokens)

		seedUser(t, userRepo, "alice", "hunter2hunter2")

		result, err := handler.Handle(ctx, command.Login{Username: "alice", Password: "hunter2hunter2"})
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if result.AccessToken == "" || result.RefreshToken == "" {
			t.Error("expected both credentials")
		}
		if store.Calls.SetFamilyPointer != 1 {
			t.Errorf("family pointers stored = %d, want 1", store.Calls.SetFamilyPointer)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := mocks.NewUserRepository()
		handler := NewLoginHandler(userRepo, newCommandTestTokenService(t, mocks.NewTokenStore()))

		seedUser(t, userRepo, "alice", "hunter2hunter2")

		if _, err := handler.Handle(ctx, command.Login{Username: "alice", Password: "wrong"}); !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown user is indistinguishable from a wrong password", func(t *testing.T) {
		handler := NewLoginHandler(mocks.NewUserRepository(), newCommandTestTokenService(t, mocks.NewTokenStore()))

		if _, err := handler.Handle(ctx, command.Login{Username: "nobody", Password: "pw"}); !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("each login starts its own family", func(t *testing.T) {
		userRepo := mocks.NewUserRepository()
		store := mocks.NewTokenStore()
		tokens := newCommandTestTokenService(t, store)
		handler := NewLoginHandler(userRepo, tokens)

		seedUser(t, userRepo, "alice", "hunter2hunter2")

		cmd := command.Login{Username: "alice", Password: "hunter2hunter2"}
		if _, err := handler.Handle(ctx, cmd); err != nil {
			t.Fatalf("first login: %v", err)
		}
		if _, err := handler.Handle(ctx, cmd); err != nil {
			t.Fatalf("second login: %v", err)
		}
		if store.Calls.SetFamilyPointer != 2 {
			t.Errorf("family pointers stored = %d, want 2", store.Calls.SetFamilyPointer)
		}
	})
}
