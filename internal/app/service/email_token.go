package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
)

// Purposes for short-lived email-delivered tokens.
const (
	PurposeEmailVerify   = "email_verify"
	PurposePasswordReset = "password_reset"
)

const emailTokenDuration = time.Hour

type emailTokenClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// GenerateEmailToken mints a purpose-bound token carrying the user's email
// address, used in verification and password-reset links.
func (s *TokenService) GenerateEmailToken(email, purpose string) (string, error) {
	now := time.Now().UTC()
	claims := emailTokenClaims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    s.config.Issuer,
			Audience:  jwt.ClaimStrings{s.config.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(emailTokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.config.SigningKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign email token: %w", err)
	}
	return signed, nil
}

// ConfirmEmailToken verifies a purpose-bound token and returns the email
// address it was issued for. A token minted for one purpose never confirms
// another.
func (s *TokenService) ConfirmEmailToken(rawToken, purpose string) (string, error) {
	token, err := jwt.ParseWithClaims(rawToken, &emailTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.config.SigningKey, nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithAudience(s.config.Audience))
	if err != nil {
		return "", domainerror.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*emailTokenClaims)
	if !ok || !token.Valid || claims.Purpose != purpose {
		return "", domainerror.ErrTokenInvalid
	}
	return claims.Subject, nil
}
