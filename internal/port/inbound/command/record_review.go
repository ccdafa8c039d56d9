package command

import "context"

// RecordReview posts a review: the text is sentiment-scored, the review is
// persisted, and the market's leaderboard entry is updated.
type RecordReview struct {
	MarketID string
	UserID   string
	Comment  string
	Rating   int
}

func (c RecordReview) CommandName() string {
	return "marketscout.record_review"
}

// RecordReviewResult contains the persisted review's ID and the sentiment
// score assigned to it.
type RecordReviewResult struct {
	ReviewID       string
	SentimentScore float64
}

// RecordReviewHandler handles the RecordReview command.
type RecordReviewHandler interface {
	Handle(ctx context.Context, cmd RecordReview) (RecordReviewResult, error)
}
