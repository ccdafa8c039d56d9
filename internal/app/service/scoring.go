package service

import (
	"math"
)

// ScoreWeights controls the influence of each factor on the composite
// popularity score. Kept as configuration so the blend can be tuned
// without redeploying logic.
type ScoreWeights struct {
	AvgRating    float64
	AvgSentiment float64
	ReviewCount  float64
}

// DefaultScoreWeights returns the standard blend.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		AvgRating:    0.6,
		AvgSentiment: 0.3,
		ReviewCount:  0.1,
	}
}

// scorePrecision is the number of decimal places scores are rounded to.
// Fixed rounding keeps leaderboard ordering reproducible and avoids
// floating-point jitter reordering equal-intent scores.
const scorePrecision = 4

// CompositeScore maps (average rating, average sentiment, review count) to
// a single bounded popularity number.
//
//   - sentiment is native [-1, 1]; (s+1)*2.5 lifts it onto a [0, 5] scale
//   - review volume contributes log10(n+1)*10, so heavily-reviewed markets
//     gain ground with diminishing returns rather than dominating by volume
//
// Pure function: no I/O, shared by the incremental and rebuild paths.
func CompositeScore(w ScoreWeights, avgRating, avgSentiment float64, reviewCount int64) float64 {
	score := avgRating*w.AvgRating +
		(avgSentiment+1)*2.5*w.AvgSentiment +
		math.Log10(float64(reviewCount)+1)*10*w.ReviewCount

	return roundTo(score, scorePrecision)
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
