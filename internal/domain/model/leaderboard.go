package model

// MarketStats is the per-market running accumulator maintained in the
// key-value store: sums instead of averages so each new review is an O(1)
// increment with no prior read.
type MarketStats struct {
	RatingSum    float64
	SentimentSum float64
	ReviewCount  int64
}

// AvgRating returns the running average rating. Callers must guard
// ReviewCount > 0.
func (s MarketStats) AvgRating() float64 {
	return s.RatingSum / float64(s.ReviewCount)
}

// AvgSentiment returns the running average sentiment score.
func (s MarketStats) AvgSentiment() float64 {
	return s.SentimentSum / float64(s.ReviewCount)
}

// LeaderboardEntry is one market's position in the popularity ranking.
type LeaderboardEntry struct {
	MarketID string  `json:"id"`
	Score    float64 `json:"score"`
}
