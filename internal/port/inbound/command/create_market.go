package command

import "context"

// CreateMarket adds a new market to the platform.
type CreateMarket struct {
	Name    string
	Address string
	Type    string
}

func (c CreateMarket) CommandName() string {
	return "marketscout.create_market"
}

// CreateMarketResult contains the new market's ID.
type CreateMarketResult struct {
	MarketID string
}

// CreateMarketHandler handles the CreateMarket command.
type CreateMarketHandler interface {
	Handle(ctx context.Context, cmd CreateMarket) (CreateMarketResult, error)
}
