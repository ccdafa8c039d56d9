package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/market-scout/marketscout/internal/port/outbound/cache"
)

const (
	familyKeyPrefix  = "rt:"
	revokedKeyPrefix = "revoked:"
	cutoverKeyPrefix = "logout_after:"
)

// rotateScript is the atomic compare-and-swap for the refresh-family
// pointer. Comparing and replacing in one script closes the race window a
// client-side get-then-set would leave between two concurrent rotations.
// On mismatch the pointer is destroyed in the same step, killing every
// descendant of the family.
var rotateScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current then
  return "missing"
end
if current ~= ARGV[1] then
  redis.call("DEL", KEYS[1])
  return "mismatch"
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return "ok"
`)

// tokenStore implements cache.TokenStore.
type tokenStore struct {
	client    *redis.Client
	namespace string
}

// NewTokenStore creates a new TokenStore. All keys are namespaced by
// environment so several deployments can share one Redis.
func NewTokenStore(client *redis.Client, namespace string) cache.TokenStore {
	return &tokenStore{
		client:    client,
		namespace: namespace,
	}
}

func (s *tokenStore) SetFamilyPointer(ctx context.Context, familyID, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(familyKeyPrefix+familyID), tokenID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set family pointer: %w", err)
	}
	return nil
}

func (s *tokenStore) RotateFamilyPointer(ctx context.Context, familyID, presentedID, newID string, ttl time.Duration) (cache.RotateOutcome, error) {
	result, err := rotateScript.Run(ctx, s.client,
		[]string{s.key(familyKeyPrefix + familyID)},
		presentedID, newID, ttl.Milliseconds(),
	).Text()
	if err != nil {
		return cache.RotateMissing, fmt.Errorf("failed to rotate family pointer: %w", err)
	}

	switch result {
	case "ok":
		return cache.RotateOK, nil
	case "mismatch":
		return cache.RotateMismatch, nil
	default:
		return cache.RotateMissing, nil
	}
}

func (s *tokenStore) DeleteFamily(ctx context.Context, familyID string) error {
	if err := s.client.Del(ctx, s.key(familyKeyPrefix+familyID)).Err(); err != nil {
		return fmt.Errorf("failed to delete family pointer: %w", err)
	}
	return nil
}

func (s *tokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return nil
	}

	// Value doesn't matter, we just check existence.
	if err := s.client.Set(ctx, s.key(revokedKeyPrefix+tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add revocation marker: %w", err)
	}
	return nil
}

func (s *tokenStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	count, err := s.client.Exists(ctx, s.key(revokedKeyPrefix+tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation marker: %w", err)
	}
	return count > 0, nil
}

func (s *tokenStore) SetCutover(ctx context.Context, userID string, at time.Time) error {
	// No TTL: a cutover is only ever superseded by a later one.
	if err := s.client.Set(ctx, s.key(cutoverKeyPrefix+userID), at.Unix(), 0).Err(); err != nil {
		return fmt.Errorf("failed to set logout cutover: %w", err)
	}
	return nil
}

func (s *tokenStore) Cutover(ctx context.Context, userID string) (time.Time, bool, error) {
	val, err := s.client.Get(ctx, s.key(cutoverKeyPrefix+userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to get logout cutover: %w", err)
	}

	sec, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("malformed logout cutover %q: %w", val, err)
	}
	return time.Unix(sec, 0).UTC(), true, nil
}

func (s *tokenStore) key(suffix string) string {
	return s.namespace + ":" + suffix
}
