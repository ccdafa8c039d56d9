package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses. Every credential
// failure collapses into the same 401 so a caller cannot distinguish a
// replayed token from an expired one.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.Error(err),
		)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: msg})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domainerror.ErrReuseDetected),
		errors.Is(err, domainerror.ErrInvalidFamily),
		errors.Is(err, domainerror.ErrTokenInvalid),
		errors.Is(err, domainerror.ErrTokenRevoked),
		errors.Is(err, domainerror.ErrTokenSuperseded):
		return http.StatusUnauthorized, "authentication required, please re-authenticate"
	case errors.Is(err, domainerror.ErrInvalidCredentials):
		return http.StatusUnauthorized, domainerror.ErrInvalidCredentials.Error()
	case errors.Is(err, domainerror.ErrEmailNotVerified):
		return http.StatusForbidden, domainerror.ErrEmailNotVerified.Error()
	case errors.Is(err, domainerror.ErrUserAlreadyExists),
		errors.Is(err, domainerror.ErrMarketNameTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domainerror.ErrUserNotFound),
		errors.Is(err, domainerror.ErrMarketNotFound),
		errors.Is(err, domainerror.ErrNoReviews),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domainerror.ErrMarketNameRequired),
		errors.Is(err, domainerror.ErrRatingOutOfRange),
		errors.Is(err, domainerror.ErrSentimentOutOfRange),
		errors.Is(err, domainerror.ErrReviewTextRequired):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
