package query

import (
	"context"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/port/inbound/query"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"
)

// getMarketSentimentHandler implements query.GetMarketSentimentHandler.
type getMarketSentimentHandler struct {
	reviewRepo repository.ReviewRepository
}

// NewGetMarketSentimentHandler creates a new GetMarketSentimentHandler.
func NewGetMarketSentimentHandler(reviewRepo repository.ReviewRepository) query.GetMarketSentimentHandler {
	return &getMarketSentimentHandler{reviewRepo: reviewRepo}
}

func (h *getMarketSentimentHandler) Handle(ctx context.Context, qry query.GetMarketSentiment) (query.MarketSentimentResult, error) {
	agg, err := h.reviewRepo.AggregateByMarket(ctx, qry.MarketID)
	if err != nil {
		return query.MarketSentimentResult{}, err
	}
	if agg.ReviewCount == 0 {
		return query.MarketSentimentResult{}, domainerror.ErrNoReviews
	}

	return query.MarketSentimentResult{
		MarketID:     qry.MarketID,
		AvgSentiment: agg.AvgSentiment,
		ReviewCount:  agg.ReviewCount,
	}, nil
}
