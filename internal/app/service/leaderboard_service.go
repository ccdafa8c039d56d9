package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/domain/event"
	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/outbound/cache"
	"github.com/market-scout/marketscout/internal/port/outbound/messaging"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"
)

// LeaderboardService folds reviews into per-market running stats and keeps
// the composite-score leaderboard current.
type LeaderboardService struct {
	store      cache.LeaderboardStore
	marketRepo repository.MarketRepository
	reviewRepo repository.ReviewRepository
	publisher  messaging.EventPublisher
	weights    ScoreWeights
	logger     *zap.Logger
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	store cache.LeaderboardStore,
	marketRepo repository.MarketRepository,
	reviewRepo repository.ReviewRepository,
	publisher messaging.EventPublisher,
	weights ScoreWeights,
	logger *zap.Logger,
) *LeaderboardService {
	return &LeaderboardService{
		store:      store,
		marketRepo: marketRepo,
		reviewRepo: reviewRepo,
		publisher:  publisher,
		weights:    weights,
		logger:     logger,
	}
}

// RecordReview folds one review into the market's accumulator, updates
// its leaderboard entry, and returns the new composite score. The
// increment and read-back happen in one atomic batch, so the recomputed
// averages reflect exactly this review and no concurrent one. Failures
// propagate: the caller should know its review did not get fully
// reflected in ranking.
func (s *LeaderboardService) RecordReview(ctx context.Context, marketID string, rating int, sentiment float64) (float64, error) {
	if rating < 1 || rating > 5 {
		return 0, domainerror.ErrRatingOutOfRange
	}
	if sentiment < -1 || sentiment > 1 {
		return 0, domainerror.ErrSentimentOutOfRange
	}

	stats, err := s.store.IncrementStats(ctx, marketID, rating, sentiment)
	if err != nil {
		return 0, fmt.Errorf("failed to update market stats: %w", err)
	}

	// Post-increment count can't be zero, but a malformed accumulator
	// must not turn into a division by zero.
	if stats.ReviewCount == 0 {
		s.logger.Warn("zero review count after increment, skipping score update",
			zap.String("market_id", marketID),
		)
		return 0, nil
	}

	score := CompositeScore(s.weights, stats.AvgRating(), stats.AvgSentiment(), stats.ReviewCount)

	if err := s.store.SetScore(ctx, marketID, score); err != nil {
		return 0, fmt.Errorf("failed to update leaderboard score: %w", err)
	}

	return score, nil
}

// Rebuild recomputes the whole leaderboard from the store of record. This
// is the reconciliation path: true averages come from the review table,
// not the accumulators, correcting drift from any missed increments.
// Markets whose aggregates cannot be read are logged and skipped so one
// bad row does not abort the rebuild.
func (s *LeaderboardService) Rebuild(ctx context.Context) error {
	markets, err := s.marketRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active markets: %w", err)
	}

	entries := make([]model.LeaderboardEntry, 0, len(markets))
	skipped := 0

	for _, m := range markets {
		agg, err := s.reviewRepo.AggregateByMarket(ctx, m.ID())
		if err != nil {
			s.logger.Error("failed to aggregate reviews for market, skipping",
				zap.String("market_id", m.ID()),
				zap.Error(err),
			)
			skipped++
			continue
		}

		// Zero-review markets are skipped: average-of-zero is undefined.
		if agg.ReviewCount == 0 {
			continue
		}

		entries = append(entries, model.LeaderboardEntry{
			MarketID: m.ID(),
			Score:    CompositeScore(s.weights, agg.AvgRating, agg.AvgSentiment, agg.ReviewCount),
		})
	}

	if err := s.store.ReplaceAll(ctx, entries); err != nil {
		return fmt.Errorf("failed to replace leaderboard: %w", err)
	}

	s.logger.Info("leaderboard rebuilt",
		zap.Int("markets", len(entries)),
		zap.Int("skipped", skipped),
	)
	_ = s.publisher.Publish(ctx, event.NewLeaderboardRebuilt(len(entries), skipped))

	return nil
}

// TopN returns up to n leaderboard entries in descending score order.
func (s *LeaderboardService) TopN(ctx context.Context, n int64) ([]model.LeaderboardEntry, error) {
	entries, err := s.store.TopN(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return entries, nil
}
