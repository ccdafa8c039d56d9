package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/domain/event"
	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/testutil/mocks"
)

func newTestTokenService(t *testing.T, store *mocks.TokenStore, publisher *mocks.EventPublisher) *TokenService {
	t.Helper()

	svc, err := NewTokenService(TokenConfig{
		Issuer:               "marketscout",
		Audience:             "marketscout",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		SigningKey:           []byte("test-signing-key"),
	}, store, publisher, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func newTestUser(t *testing.T) *model.User {
	t.Helper()

	user, err := model.NewUser("alice", "alice@example.com", "hash")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	user.VerifyEmail()
	return user
}

func TestTokenService_IssuePair(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a valid pair and stores the family pointer", func(t *testing.T) {
		store := mocks.NewTokenStore()
		svc := newTestTokenService(t, store, mocks.NewEventPublisher())
		user := newTestUser(t)

		pair, err := svc.IssuePair(ctx, user, user.Scopes(), "")
		if err != nil {
			t.Fatalf("IssuePair: %v", err)
		}
		if pair.FamilyID == "" {
			t.Error("expected a generated family ID")
		}
		if _, ok := store.FamilyPointer(pair.FamilyID); !ok {
			t.Error("expected family pointer to be stored")
		}

		claims, err := svc.Validate(ctx, pair.AccessToken, TokenUseAccess)
		if err != nil {
			t.Fatalf("Validate access: %v", err)
		}
		if claims.Subject != user.ID() {
			t.Errorf("subject = %q, want %q", claims.Subject, user.ID())
		}
		if _, err := svc.Validate(ctx, pair.RefreshToken, TokenUseRefresh); err != nil {
			t.Fatalf("Validate refresh: %v", err)
		}
	})

	t.Run("fails closed when the store write fails", func(t *testing.T) {
		store := mocks.NewTokenStore()
		store.Errors.SetFamilyPointer = errors.New("redis down")
		svc := newTestTokenService(t, store, mocks.NewEventPublisher())

		if _, err := svc.IssuePair(ctx, newTestUser(t), nil, ""); err == nil {
			t.Fatal("expected error when store write fails")
		}
	})

	t.Run("refresh token cannot authenticate as access", func(t *testing.T) {
		store := mocks.NewTokenStore()
		svc := newTestTokenService(t, store, mocks.NewEventPublisher())

		pair, err := svc.IssuePair(ctx, newTestUser(t), nil, "")
		if err != nil {
			t.Fatalf("IssuePair: %v", err)
		}
		if _, err := svc.Validate(ctx, pair.RefreshToken, TokenUseAccess); !errors.Is(err, domainerror.ErrTokenInvalid) {
			t.Errorf("err = %v, want ErrTokenInvalid", err)
		}
		if _, err := svc.Validate(ctx, pair.AccessToken, TokenUseRefresh); !errors.Is(err, domainerror.ErrTokenInvalid) {
			t.Errorf("err = %v, want ErrTokenInvalid", err)
		}
	})
}

func TestTokenService_Rotate(t *testing.T) {
	ctx := context.Background()

	t.Run("rotation keeps the family and invalidates the consumed token", func(t *testing.T) {
		store := mocks.NewTokenStore()
		svc := newTestTokenService(t, store, mocks.NewEventPublisher())

		first, err := svc.IssuePair(ctx, newTestUser(t), nil, "")
		if err != nil {
			t.Fatalf("IssuePair: %v", err)
		}

		second, err := svc.Rotate(ctx, first.RefreshToken)
		if err != nil {
			t.Fatalf("Rotate: %v", err)
		}
		if second.FamilyID != first.FamilyID {
			t.Errorf("family = %q, want %q", second.FamilyID, first.FamilyID)
		}

		// The consumed refresh token is revoked outright.
		if _, err := svc.Validate(ctx, first.RefreshToken, TokenUseRefresh); !errors.Is(err, domainerror.ErrTokenRevoked) {
			t.Errorf("consumed token err = %v, want ErrTokenRevoked", err)
		}
		// The new one rotates fine.
		if _, err := svc.Rotate(ctx, second.RefreshToken); err != nil {
			t.Fatalf("second Rotate: %v", err)
		}
	})

	t.Run("replay kills the whole family", func(t *testing.T) {
		store := mocks.NewTokenStore()
		publisher := mocks.NewEventPublisher()
		svc := newTestTokenService(t, store, publisher)

		first, err := svc.IssuePair(ctx, newTestUser(t), nil, "")
		if err != nil {
			t.Fatalf("IssuePair: %v", err)
		}
		second, err := svc.Rotate(ctx, first.RefreshToken)
		if err != nil {
			t.Fatalf("Rotate: %v", err)
		}

		// Replaying the consumed refresh token kills the whole family.
		if _, err := svc.Rotate(ctx, first.RefreshToken); !errors.Is(err, domainerror.ErrReuseDetected) {
			t.Fatalf("replay err = %v, want ErrReuseDetected", err)
		}
		if _, ok := store.FamilyPointer(second.FamilyID); ok {
			t.Error("expected family pointer to be destroyed on reuse")
		}
		if got := len(publisher.EventsOfType(event.EventTypeTokenReuseDetected)); got != 1 {
			t.Errorf("reuse events = %d, want 1", got)
		}

		// Even the legitimate holder is now locked out.
		if _, err := svc.Rotate(ctx, second.RefreshToken); !errors.Is(err, domainerror.ErrInvalidFamily) {
			t.Errorf("post-reuse rotate err = %v, want ErrInvalidFamily", err)
		}
	})

	t.Run("rotation against a dead family fails", func(t *testing.T) {
		store := mocks.NewTokenStore()
		svc := newTestTokenService(t, store, mocks.NewEventPublisher())

		pair, err := svc.IssuePair(ctx, newTestUser(t), nil, "")
		if err != nil {
			t.Fatalf("IssuePair: %v", err)
		}
		if err := svc.RevokeFamily(ctx, pair.FamilyID); err != nil {
			t.Fatalf("RevokeFamily: %v", err)
		}

		if _, err := svc.Rotate(ctx, pair.RefreshToken); !errors.Is(err, domainerror.ErrInvalidFamily) {
			t.Errorf("err = %v, want ErrInvalidFamily", err)
		}
	})

	t.Run("garbage input is rejected before touching the store", func(t *testing.T) {
		store := mocks.NewTokenStore()
		svc := newTestTokenService(t, store, mocks.NewEventPublisher())

		if _, err := svc.Rotate(ctx, "not-a-token"); !errors.Is(err, domainerror.ErrTokenInvalid) {
			t.Errorf("err = %v, want ErrTokenInvalid", err)
		}
		if store.Calls.RotateFamilyPointer != 0 {
			t.Error("expected no rotation attempt for a malformed token")
		}
	})
}

func TestTokenService_RevokeCurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked access token fails validation", func(t *testing.T) {
		store := mocks.NewTokenStore()
		svc := newTestTokenService(t, store, mocks.NewEventPublisher())

		pair, err := svc.IssuePair(ctx, newTestUser(t), nil, "")
		if err != nil {
			t.Fatalf("IssuePair: %v", err)
		}
		if err := svc.RevokeCurrent(ctx, pair.AccessToken); err != nil {
			t.Fatalf("RevokeCurrent: %v", err)
		}

		if _, err := svc.Validate(ctx, pair.AccessToken, TokenUseAccess); !errors.Is(err, domainerror.ErrTokenRevoked) {
			t.Errorf("err = %v, want ErrTokenRevoked", err)
		}
	})

	t.Run("malformed token is rejected", func(t *testing.T) {
		svc := newTestTokenService(t, mocks.NewTokenStore(), mocks.NewEventPublisher())

		if err := svc.RevokeCurrent(ctx, "garbage"); !errors.Is(err, domainerror.ErrTokenInvalid) {
			t.Errorf("err = %v, want ErrTokenInvalid", err)
		}
	})
}

func TestTokenService_GlobalCutover(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewTokenStore()
	svc := newTestTokenService(t, store, mocks.NewEventPublisher())
	user := newTestUser(t)

	pair, err := svc.IssuePair(ctx, user, nil, "")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	// The cutover must land strictly after the pair's issued-at second.
	if err := store.SetCutover(ctx, user.ID(), time.Now().UTC().Add(2*time.Second)); err != nil {
		t.Fatalf("SetCutover: %v", err)
	}

	if _, err := svc.Validate(ctx, pair.AccessToken, TokenUseAccess); !errors.Is(err, domainerror.ErrTokenSuperseded) {
		t.Errorf("pre-cutover access err = %v, want ErrTokenSuperseded", err)
	}
	if _, err := svc.Validate(ctx, pair.RefreshToken, TokenUseRefresh); !errors.Is(err, domainerror.ErrTokenSuperseded) {
		t.Errorf("pre-cutover refresh err = %v, want ErrTokenSuperseded", err)
	}
}

func TestTokenService_ValidateFailsClosedOnStoreError(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewTokenStore()
	svc := newTestTokenService(t, store, mocks.NewEventPublisher())

	pair, err := svc.IssuePair(ctx, newTestUser(t), nil, "")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	store.Errors.IsTokenRevoked = errors.New("redis down")
	if _, err := svc.Validate(ctx, pair.AccessToken, TokenUseAccess); err == nil {
		t.Fatal("expected validation to fail when the revocation check fails")
	}
}
