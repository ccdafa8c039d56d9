package event

// MarketCreated is emitted when a new market is added.
type MarketCreated struct {
	BaseEvent
	MarketID string `json:"market_id"`
	Name     string `json:"name"`
}

// NewMarketCreated creates a new MarketCreated event.
func NewMarketCreated(marketID, name string) MarketCreated {
	return MarketCreated{
		BaseEvent: NewBaseEvent(EventTypeMarketCreated, marketID, AggregateTypeMarket),
		MarketID:  marketID,
		Name:      name,
	}
}

// ReviewRecorded is emitted after a review has been persisted and folded
// into the leaderboard.
type ReviewRecorded struct {
	BaseEvent
	MarketID  string  `json:"market_id"`
	UserID    string  `json:"user_id"`
	Rating    int     `json:"rating"`
	Sentiment float64 `json:"sentiment"`
	Score     float64 `json:"score"`
}

// NewReviewRecorded creates a new ReviewRecorded event.
func NewReviewRecorded(marketID, userID string, rating int, sentiment, score float64) ReviewRecorded {
	return ReviewRecorded{
		BaseEvent: NewBaseEvent(EventTypeReviewRecorded, marketID, AggregateTypeMarket),
		MarketID:  marketID,
		UserID:    userID,
		Rating:    rating,
		Sentiment: sentiment,
		Score:     score,
	}
}

// LeaderboardRebuilt is emitted after a full leaderboard rebuild completes.
type LeaderboardRebuilt struct {
	BaseEvent
	MarketCount  int `json:"market_count"`
	SkippedCount int `json:"skipped_count"`
}

// NewLeaderboardRebuilt creates a new LeaderboardRebuilt event.
func NewLeaderboardRebuilt(marketCount, skippedCount int) LeaderboardRebuilt {
	return LeaderboardRebuilt{
		BaseEvent:    NewBaseEvent(EventTypeLeaderboardRebuilt, "leaderboard", AggregateTypeMarket),
		MarketCount:  marketCount,
		SkippedCount: skippedCount,
	}
}
