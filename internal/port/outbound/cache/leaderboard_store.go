package cache

import (
	"context"

	"github.com/market-scout/marketscout/internal/domain/model"
)

// LeaderboardStore maintains the per-market stats accumulators and the
// global sorted leaderboard in the fast key-value store.
type LeaderboardStore interface {
	// IncrementStats folds one review into the market's accumulator and
	// returns the post-increment totals. The increments and the read-back
	// must be issued as a single atomic batch so the returned stats
	// reflect exactly this increment and no later one.
	IncrementStats(ctx context.Context, marketID string, rating int, sentiment float64) (model.MarketStats, error)

	// SetScore sets the market's leaderboard entry, overwriting any prior
	// score.
	SetScore(ctx context.Context, marketID string, score float64) error

	// ReplaceAll atomically replaces the entire leaderboard with entries.
	ReplaceAll(ctx context.Context, entries []model.LeaderboardEntry) error

	// TopN returns up to n entries in descending score order.
	TopN(ctx context.Context, n int64) ([]model.LeaderboardEntry, error)
}
