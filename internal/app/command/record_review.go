package command

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/domain/event"
	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/inbound/command"
	"github.com/market-scout/marketscout/internal/port/outbound/cache"
	"github.com/market-scout/marketscout/internal/port/outbound/messaging"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"
	"github.com/market-scout/marketscout/internal/port/outbound/sentiment"

	"github.com/market-scout/marketscout/internal/app/service"
)

// recordReviewHandler implements command.RecordReviewHandler.
type recordReviewHandler struct {
	marketRepo    repository.MarketRepository
	reviewRepo    repository.ReviewRepository
	scorer        sentiment.Scorer
	leaderboard   *service.LeaderboardService
	responseCache cache.ResponseCache
	publisher     messaging.EventPublisher
	logger        *zap.Logger
}

// NewRecordReviewHandler creates a new RecordReviewHandler.
func NewRecordReviewHandler(
	marketRepo repository.MarketRepository,
	reviewRepo repository.ReviewRepository,
	scorer sentiment.Scorer,
	leaderboard *service.LeaderboardService,
	responseCache cache.ResponseCache,
	publisher messaging.EventPublisher,
	logger *zap.Logger,
) command.RecordReviewHandler {
	return &recordReviewHandler{
		marketRepo:    marketRepo,
		reviewRepo:    reviewRepo,
		scorer:        scorer,
		leaderboard:   leaderboard,
		responseCache: responseCache,
		publisher:     publisher,
		logger:        logger,
	}
}

func (h *recordReviewHandler) Handle(ctx context.Context, cmd command.RecordReview) (command.RecordReviewResult, error) {
	market, err := h.marketRepo.FindByID(ctx, cmd.MarketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return command.RecordReviewResult{}, domainerror.ErrMarketNotFound
		}
		return command.RecordReviewResult{}, err
	}
	if market.Deleted() {
		return command.RecordReviewResult{}, domainerror.ErrMarketNotFound
	}

	sentimentScore, err := h.scorer.Score(ctx, cmd.Comment)
	if err != nil {
		return command.RecordReviewResult{}, fmt.Errorf("failed to score sentiment: %w", err)
	}

	review, err := model.NewReview(cmd.MarketID, cmd.UserID, cmd.Comment, cmd.Rating, sentimentScore)
	if err != nil {
		return command.RecordReviewResult{}, err
	}

	// Persist first: the review is the system of record, the leaderboard
	// only a derived view. If the leaderboard update fails the caller
	// learns its review is not yet reflected in ranking; a rebuild
	// reconciles it.
	if err := h.reviewRepo.Create(ctx, review); err != nil {
		return command.RecordReviewResult{}, err
	}

	score, err := h.leaderboard.RecordReview(ctx, cmd.MarketID, cmd.Rating, sentimentScore)
	if err != nil {
		return command.RecordReviewResult{}, err
	}

	// The cached sentiment summary for this market is now stale.
	sentimentKey := cache.RequestKey("/markets/"+cmd.MarketID+"/sentiment", nil)
	if err := h.responseCache.Invalidate(ctx, sentimentKey); err != nil {
		h.logger.Warn("failed to invalidate sentiment cache",
			zap.String("market_id", cmd.MarketID),
			zap.Error(err),
		)
	}

	_ = h.publisher.Publish(ctx, event.NewReviewRecorded(cmd.MarketID, cmd.UserID, cmd.Rating, sentimentScore, score))

	return command.RecordReviewResult{
		ReviewID:       review.ID(),
		SentimentScore: sentimentScore,
	}, nil
}
