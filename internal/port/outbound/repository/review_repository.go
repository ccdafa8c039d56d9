package repository

import (
	"context"

	"github.com/market-scout/marketscout/internal/domain/model"
)

// ReviewAggregates holds the true averages computed directly from the
// store of record. This is the reconciliation source for leaderboard
// rebuilds, correcting any drift in the incremental accumulators.
type ReviewAggregates struct {
	AvgRating    float64
	AvgSentiment float64
	ReviewCount  int64
}

// ReviewRepository is the store-of-record access for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error

	ListByMarket(ctx context.Context, marketID string) ([]*model.Review, error)

	// AggregateByMarket computes true averages over all reviews of a
	// market. A market with no reviews returns zero counts, not an error.
	AggregateByMarket(ctx context.Context, marketID string) (ReviewAggregates, error)
}
