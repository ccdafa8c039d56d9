package query

import (
	"context"

	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/inbound/query"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"
)

// listMarketsHandler implements query.ListMarketsHandler.
type listMarketsHandler struct {
	marketRepo repository.MarketRepository
}

// NewListMarketsHandler creates a new ListMarketsHandler.
func NewListMarketsHandler(marketRepo repository.MarketRepository) query.ListMarketsHandler {
	return &listMarketsHandler{marketRepo: marketRepo}
}

func (h *listMarketsHandler) Handle(ctx context.Context, qry query.ListMarkets) ([]*model.Market, error) {
	return h.marketRepo.ListActive(ctx)
}
