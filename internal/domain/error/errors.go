package error

import "errors"

// Token lifecycle errors
var (
	// ErrInvalidFamily is returned when a refresh rotation is attempted
	// against a family whose pointer is missing or expired. The caller must
	// force full re-authentication.
	ErrInvalidFamily = errors.New("refresh token family is invalid or expired")

	// ErrReuseDetected is returned when an already-rotated-away refresh
	// token is replayed. The whole family is revoked as a side effect.
	ErrReuseDetected = errors.New("refresh token reuse detected")

	// ErrTokenInvalid covers malformed, expired, revoked, and
	// wrong-audience credentials. Callers present all of these to the end
	// user as a uniform re-authenticate signal.
	ErrTokenInvalid = errors.New("token is invalid")

	ErrTokenRevoked = errors.New("token has been revoked")

	// ErrTokenSuperseded is returned when a credential's issued-at predates
	// the subject's global logout cutover.
	ErrTokenSuperseded = errors.New("token predates global logout")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailNotVerified   = errors.New("email address is not verified")
)

// Market and review errors
var (
	ErrMarketNotFound      = errors.New("market not found")
	ErrMarketNameRequired  = errors.New("market name is required")
	ErrMarketNameTaken     = errors.New("market with this name already exists")
	ErrRatingOutOfRange    = errors.New("rating must be between 1 and 5")
	ErrSentimentOutOfRange = errors.New("sentiment must be between -1 and 1")
	ErrReviewTextRequired  = errors.New("review text is required")
	ErrNoReviews           = errors.New("market has no reviews")
)
