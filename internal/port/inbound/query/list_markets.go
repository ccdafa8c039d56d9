package query

import (
	"context"

	"github.com/market-scout/marketscout/internal/domain/model"
)

// ListMarkets returns all active markets.
type ListMarkets struct{}

func (q ListMarkets) QueryName() string {
	return "marketscout.list_markets"
}

// ListMarketsHandler handles the ListMarkets query.
type ListMarketsHandler interface {
	Handle(ctx context.Context, qry ListMarkets) ([]*model.Market, error)
}
