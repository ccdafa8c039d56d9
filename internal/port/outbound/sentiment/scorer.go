package sentiment

import "context"

// Scorer maps free-form review text to a sentiment score in [-1, 1].
// Invoked before a review is persisted; the score feeds the leaderboard
// accumulator.
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}
