package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/market-scout/marketscout/internal/app/service"
	domainerror "github.com/market-scout/marketscout/internal/domain/error"
)

type contextKey string

const (
	claimsContextKey contextKey = "claims"
	tokenContextKey  contextKey = "raw_token"
)

// requireAuth validates the bearer access token and stashes its claims and
// the raw credential in the request context. Unverified accounts hold a
// valid token but may not pass.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required, please re-authenticate"})
			return
		}

		claims, err := s.tokens.Validate(r.Context(), raw, service.TokenUseAccess)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if !claims.EmailVerified {
			s.writeError(w, r, domainerror.ErrEmailNotVerified)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		ctx = context.WithValue(ctx, tokenContextKey, raw)
		next(w, r.WithContext(ctx))
	}
}

func claimsFrom(ctx context.Context) *service.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*service.Claims)
	return claims
}

func rawTokenFrom(ctx context.Context) string {
	raw, _ := ctx.Value(tokenContextKey).(string)
	return raw
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// callerIdentity resolves the caller's user ID without rejecting the
// request. Cached read endpoints use it to partition entries per user when
// a credential is present.
func (s *Server) callerIdentity(r *http.Request) string {
	raw := bearerToken(r)
	if raw == "" {
		return ""
	}
	claims, err := s.tokens.Validate(r.Context(), raw, service.TokenUseAccess)
	if err != nil {
		return ""
	}
	return claims.Subject
}
