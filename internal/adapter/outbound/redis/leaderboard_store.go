package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/outbound/cache"
)

const (
	statsKeyPrefix = "stats:"
	leaderboardKey = "leaderboard"

	fieldRatingSum    = "rating_sum"
	fieldSentimentSum = "sentiment_sum"
	fieldReviewCount  = "review_count"
)

// leaderboardStore implements cache.LeaderboardStore.
type leaderboardStore struct {
	client    *redis.Client
	namespace string
}

// NewLeaderboardStore creates a new LeaderboardStore.
func NewLeaderboardStore(client *redis.Client, namespace string) cache.LeaderboardStore {
	return &leaderboardStore{
		client:    client,
		namespace: namespace,
	}
}

// IncrementStats issues the three increments and the read-back as one
// MULTI/EXEC transaction. No concurrent increment can interleave between
// the writes and the HGETALL, so the returned snapshot is exactly the
// post-increment state for this review.
func (s *leaderboardStore) IncrementStats(ctx context.Context, marketID string, rating int, sentiment float64) (model.MarketStats, error) {
	key := s.key(statsKeyPrefix + marketID)

	var readBack *redis.MapStringStringCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrByFloat(ctx, key, fieldRatingSum, float64(rating))
		pipe.HIncrByFloat(ctx, key, fieldSentimentSum, sentiment)
		pipe.HIncrBy(ctx, key, fieldReviewCount, 1)
		readBack = pipe.HGetAll(ctx, key)
		return nil
	})
	if err != nil {
		return model.MarketStats{}, fmt.Errorf("failed to increment market stats: %w", err)
	}

	return parseStats(readBack.Val()), nil
}

func (s *leaderboardStore) SetScore(ctx context.Context, marketID string, score float64) error {
	err := s.client.ZAdd(ctx, s.key(leaderboardKey), redis.Z{
		Score:  score,
		Member: marketID,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to set leaderboard score: %w", err)
	}
	return nil
}

func (s *leaderboardStore) ReplaceAll(ctx context.Context, entries []model.LeaderboardEntry) error {
	key := s.key(leaderboardKey)

	members := make([]redis.Z, len(entries))
	for i, e := range entries {
		members[i] = redis.Z{Score: e.Score, Member: e.MarketID}
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(members) > 0 {
			pipe.ZAdd(ctx, key, members...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace leaderboard: %w", err)
	}
	return nil
}

func (s *leaderboardStore) TopN(ctx context.Context, n int64) ([]model.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	members, err := s.client.ZRevRangeWithScores(ctx, s.key(leaderboardKey), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard range: %w", err)
	}

	entries := make([]model.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		id, ok := m.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{MarketID: id, Score: m.Score})
	}
	return entries, nil
}

func (s *leaderboardStore) key(suffix string) string {
	return s.namespace + ":" + suffix
}

// parseStats coerces the store's text field values into numbers. Absent or
// malformed fields fall back to zero rather than failing the read.
func parseStats(fields map[string]string) model.MarketStats {
	return model.MarketStats{
		RatingSum:    parseFloatField(fields, fieldRatingSum),
		SentimentSum: parseFloatField(fields, fieldSentimentSum),
		ReviewCount:  parseIntField(fields, fieldReviewCount),
	}
}

func parseFloatField(fields map[string]string, name string) float64 {
	v, ok := fields[name]
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseIntField(fields map[string]string, name string) int64 {
	v, ok := fields[name]
	if !ok {
		return 0
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return i
}
