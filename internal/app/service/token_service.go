package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/domain/event"
	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/outbound/cache"
	"github.com/market-scout/marketscout/internal/port/outbound/messaging"
)

// TokenUse distinguishes access from refresh credentials. A refresh token
// can never authenticate a request and an access token can never rotate.
type TokenUse string

const (
	TokenUseAccess  TokenUse = "access"
	TokenUseRefresh TokenUse = "refresh"
)

// Claims are the claims carried by both credential kinds.
type Claims struct {
	Scopes        []string `json:"scopes,omitempty"`
	EmailVerified bool     `json:"email_verified"`
	FamilyID      string   `json:"family_id,omitempty"`
	TokenUse      string   `json:"token_use"`
	jwt.RegisteredClaims
}

// TokenPair is one access/refresh credential pair bound to a family.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	FamilyID         string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenConfig holds configuration for token generation.
type TokenConfig struct {
	Issuer               string
	Audience             string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	SigningKey           []byte
}

// DefaultTokenConfig returns default token configuration.
func DefaultTokenConfig() TokenConfig {
	return TokenConfig{
		Issuer:               "marketscout",
		Audience:             "marketscout",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 14 * 24 * time.Hour,
	}
}

// TokenService issues, rotates, revokes, and validates credential pairs.
// Each login session is a family: a chain of refresh rotations with at
// most one valid refresh credential at any time.
type TokenService struct {
	config    TokenConfig
	store     cache.TokenStore
	publisher messaging.EventPublisher
	logger    *zap.Logger
}

// NewTokenService creates a new TokenService.
func NewTokenService(
	config TokenConfig,
	store cache.TokenStore,
	publisher messaging.EventPublisher,
	logger *zap.Logger,
) (*TokenService, error) {
	if len(config.SigningKey) == 0 {
		return nil, errors.New("token signing key is required")
	}
	if config.AccessTokenDuration <= 0 {
		config.AccessTokenDuration = DefaultTokenConfig().AccessTokenDuration
	}
	if config.RefreshTokenDuration <= 0 {
		config.RefreshTokenDuration = DefaultTokenConfig().RefreshTokenDuration
	}

	return &TokenService{
		config:    config,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// IssuePair mints a fresh access/refresh pair. An empty familyID starts a
// new family; a non-empty one continues an existing session. The store
// write is the commit point: if it fails, no pair is issued (fail-closed).
func (s *TokenService) IssuePair(ctx context.Context, user *model.User, scopes []string, familyID string) (*TokenPair, error) {
	if familyID == "" {
		familyID = model.NewID()
	}

	pair, refreshID, err := s.mintPair(user.ID(), scopes, user.EmailVerified(), familyID)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetFamilyPointer(ctx, familyID, refreshID, s.config.RefreshTokenDuration); err != nil {
		return nil, fmt.Errorf("failed to store family pointer: %w", err)
	}

	return pair, nil
}

// Rotate exchanges a presented refresh credential for a new pair within
// the same family. If the presented credential is not the family's current
// pointer it has been replayed: the whole family dies and the caller gets
// ErrReuseDetected.
func (s *TokenService) Rotate(ctx context.Context, presentedRefresh string) (*TokenPair, error) {
	claims, err := s.Validate(ctx, presentedRefresh, TokenUseRefresh)
	if err != nil {
		// A refresh credential with a revocation marker was consumed by an
		// earlier rotation. Presenting it again is a replay.
		if errors.Is(err, domainerror.ErrTokenRevoked) {
			return nil, s.handleReuse(ctx, presentedRefresh)
		}
		return nil, err
	}
	if claims.FamilyID == "" {
		return nil, domainerror.ErrInvalidFamily
	}

	pair, newRefreshID, err := s.mintPair(claims.Subject, claims.Scopes, claims.EmailVerified, claims.FamilyID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.store.RotateFamilyPointer(ctx, claims.FamilyID, claims.ID, newRefreshID, s.config.RefreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to rotate family pointer: %w", err)
	}

	switch outcome {
	case cache.RotateMissing:
		return nil, domainerror.ErrInvalidFamily

	case cache.RotateMismatch:
		// A rotated-away refresh token was replayed. The store has
		// already destroyed the family pointer; revoke the presented
		// credential for its remaining lifetime as well.
		if err := s.revokeByClaims(ctx, claims); err != nil {
			return nil, err
		}
		return nil, s.reuseDetected(ctx, claims)
	}

	// Mark the consumed refresh credential revoked so it also fails the
	// bare validity check, not just the pointer comparison.
	if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
		if err := s.store.RevokeToken(ctx, claims.ID, ttl); err != nil {
			return nil, fmt.Errorf("failed to revoke consumed refresh token: %w", err)
		}
	}

	_ = s.publisher.Publish(ctx, event.NewTokenRefreshed(claims.Subject, claims.FamilyID))

	return pair, nil
}

// RevokeCurrent marks the presented credential's ID as revoked for exactly
// its remaining lifetime, so the marker self-expires in step with the
// credential it blocks.
func (s *TokenService) RevokeCurrent(ctx context.Context, rawToken string) error {
	claims, err := s.parseLenient(rawToken)
	if err != nil {
		return domainerror.ErrTokenInvalid
	}
	return s.revokeByClaims(ctx, claims)
}

// RevokeFamily deletes the family pointer. Any future rotation against the
// family fails with ErrInvalidFamily.
func (s *TokenService) RevokeFamily(ctx context.Context, familyID string) error {
	if err := s.store.DeleteFamily(ctx, familyID); err != nil {
		return fmt.Errorf("failed to delete token family: %w", err)
	}
	return nil
}

// SetGlobalCutover records now as the user's invalidation boundary. All
// credentials issued before it are rejected by Validate.
func (s *TokenService) SetGlobalCutover(ctx context.Context, userID string) error {
	if err := s.store.SetCutover(ctx, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set logout cutover: %w", err)
	}
	return nil
}

// Validate checks a credential for the given use: signature and expiry,
// revocation marker, and the subject's global cutover. Store failures
// propagate — an unreachable store is never treated as "not revoked".
func (s *TokenService) Validate(ctx context.Context, rawToken string, use TokenUse) (*Claims, error) {
	claims, err := s.parse(rawToken)
	if err != nil {
		return nil, domainerror.ErrTokenInvalid
	}
	if claims.TokenUse != string(use) {
		return nil, domainerror.ErrTokenInvalid
	}

	revoked, err := s.store.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, domainerror.ErrTokenRevoked
	}

	cutover, ok, err := s.store.Cutover(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to check logout cutover: %w", err)
	}
	if ok && claims.IssuedAt != nil && claims.IssuedAt.Time.Before(cutover) {
		return nil, domainerror.ErrTokenSuperseded
	}

	return claims, nil
}

func (s *TokenService) mintPair(userID string, scopes []string, emailVerified bool, familyID string) (*TokenPair, string, error) {
	now := time.Now().UTC()
	accessExpiresAt := now.Add(s.config.AccessTokenDuration)
	refreshExpiresAt := now.Add(s.config.RefreshTokenDuration)
	refreshID := uuid.NewString()

	accessToken, err := s.sign(Claims{
		Scopes:        scopes,
		EmailVerified: emailVerified,
		FamilyID:      familyID,
		TokenUse:      string(TokenUseAccess),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.config.Issuer,
			Audience:  jwt.ClaimStrings{s.config.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiresAt),
			ID:        uuid.NewString(),
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.sign(Claims{
		Scopes:        scopes,
		EmailVerified: emailVerified,
		FamilyID:      familyID,
		TokenUse:      string(TokenUseRefresh),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.config.Issuer,
			Audience:  jwt.ClaimStrings{s.config.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExpiresAt),
			ID:        refreshID,
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		FamilyID:         familyID,
		AccessExpiresAt:  accessExpiresAt,
		RefreshExpiresAt: refreshExpiresAt,
	}, refreshID, nil
}

// handleReuse kills the family of a replayed refresh credential. The
// family deletion is security-sensitive: a store failure propagates rather
// than masquerading as a clean reuse rejection.
func (s *TokenService) handleReuse(ctx context.Context, rawToken string) error {
	claims, err := s.parseLenient(rawToken)
	if err != nil {
		return domainerror.ErrTokenInvalid
	}
	if claims.FamilyID != "" {
		if err := s.store.DeleteFamily(ctx, claims.FamilyID); err != nil {
			return fmt.Errorf("failed to delete token family: %w", err)
		}
	}
	return s.reuseDetected(ctx, claims)
}

func (s *TokenService) reuseDetected(ctx context.Context, claims *Claims) error {
	s.logger.Warn("refresh token reuse detected, family revoked",
		zap.String("user_id", claims.Subject),
		zap.String("family_id", claims.FamilyID),
	)
	_ = s.publisher.Publish(ctx, event.NewTokenReuseDetected(claims.Subject, claims.FamilyID))
	return domainerror.ErrReuseDetected
}

func (s *TokenService) revokeByClaims(ctx context.Context, claims *Claims) error {
	if claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		// Already expired, independently invalid.
		return nil
	}
	if err := s.store.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *TokenService) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.config.SigningKey)
}

func (s *TokenService) parse(rawToken string) (*Claims, error) {
	return s.parseWith(rawToken)
}

// parseLenient accepts expired tokens. Used by revocation, where an
// expired credential simply needs no marker.
func (s *TokenService) parseLenient(rawToken string) (*Claims, error) {
	return s.parseWith(rawToken, jwt.WithoutClaimsValidation())
}

func (s *TokenService) parseWith(rawToken string, extra ...jwt.ParserOption) (*Claims, error) {
	opts := append([]jwt.ParserOption{
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithAudience(s.config.Audience),
		jwt.WithExpirationRequired(),
	}, extra...)

	token, err := jwt.ParseWithClaims(rawToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.config.SigningKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrTokenInvalid
	}
	return claims, nil
}
