package cache

import (
	"context"
	"time"
)

// RotateOutcome is the result of an atomic family-pointer rotation attempt.
type RotateOutcome int

const (
	// RotateOK means the presented token matched the current pointer and
	// the pointer now names the new token.
	RotateOK RotateOutcome = iota

	// RotateMissing means no pointer exists for the family (expired or
	// revoked). The caller must force full re-authentication.
	RotateMissing

	// RotateMismatch means the presented token was rotated away earlier
	// and has been replayed. The store has already destroyed the family
	// pointer as part of the same atomic operation.
	RotateMismatch
)

// TokenStore holds the fast-expiring security state behind the token
// lifecycle: refresh-family pointers, revoked-credential markers, and
// global logout cutovers. All mutations are atomic store primitives; any
// store failure must be treated as a hard failure by security-sensitive
// callers.
type TokenStore interface {
	// SetFamilyPointer records tokenID as the single valid refresh
	// credential for the family. TTL tracks the refresh token lifetime.
	SetFamilyPointer(ctx context.Context, familyID, tokenID string, ttl time.Duration) error

	// RotateFamilyPointer atomically compares presentedID to the current
	// pointer and, on match, replaces it with newID. On mismatch the
	// family pointer is destroyed in the same atomic step.
	RotateFamilyPointer(ctx context.Context, familyID, presentedID, newID string, ttl time.Duration) (RotateOutcome, error)

	// DeleteFamily removes the family pointer, invalidating all future
	// rotations against it.
	DeleteFamily(ctx context.Context, familyID string) error

	// RevokeToken marks a credential ID as revoked for exactly its
	// remaining lifetime, so the marker self-expires with the credential.
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsTokenRevoked checks for a revocation marker.
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)

	// SetCutover records at as the user's global invalidation boundary.
	// Credentials issued before it are rejected.
	SetCutover(ctx context.Context, userID string, at time.Time) error

	// Cutover returns the user's invalidation boundary, if any.
	Cutover(ctx context.Context, userID string) (time.Time, bool, error)
}
