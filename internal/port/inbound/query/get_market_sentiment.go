package query

import "context"

// GetMarketSentiment returns the average sentiment over all of a market's
// reviews, computed from the store of record.
type GetMarketSentiment struct {
	MarketID string
}

func (q GetMarketSentiment) QueryName() string {
	return "marketscout.get_market_sentiment"
}

// MarketSentimentResult is the sentiment summary for a market.
type MarketSentimentResult struct {
	MarketID     string  `json:"market_id"`
	AvgSentiment float64 `json:"average_sentiment"`
	ReviewCount  int64   `json:"reviews_count"`
}

// GetMarketSentimentHandler handles the GetMarketSentiment query.
type GetMarketSentimentHandler interface {
	Handle(ctx context.Context, qry GetMarketSentiment) (MarketSentimentResult, error)
}
