package model

import (
	"strings"
	"time"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
)

// Review represents a single user review of a market. Reviews are
// append-only; the running stats accumulator assumes they are never edited
// or removed.
type Review struct {
	id             string
	marketID       string
	userID         string
	comment        string
	rating         int
	sentimentScore float64
	createdAt      time.Time
}

// NewReview creates a new Review. The sentiment score comes from the
// sentiment scorer, not from user input.
func NewReview(marketID, userID, comment string, rating int, sentimentScore float64) (*Review, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, domainerror.ErrReviewTextRequired
	}
	if rating < 1 || rating > 5 {
		return nil, domainerror.ErrRatingOutOfRange
	}
	if sentimentScore < -1 || sentimentScore > 1 {
		return nil, domainerror.ErrSentimentOutOfRange
	}

	return &Review{
		id:             NewID(),
		marketID:       marketID,
		userID:         userID,
		comment:        comment,
		rating:         rating,
		sentimentScore: sentimentScore,
		createdAt:      time.Now().UTC(),
	}, nil
}

// ReconstructReview creates a Review from persisted data.
func ReconstructReview(
	id string,
	marketID string,
	userID string,
	comment string,
	rating int,
	sentimentScore float64,
	createdAt time.Time,
) *Review {
	return &Review{
		id:             id,
		marketID:       marketID,
		userID:         userID,
		comment:        comment,
		rating:         rating,
		sentimentScore: sentimentScore,
		createdAt:      createdAt,
	}
}

func (r *Review) ID() string              { return r.id }
func (r *Review) MarketID() string        { return r.marketID }
func (r *Review) UserID() string          { return r.userID }
func (r *Review) Comment() string         { return r.comment }
func (r *Review) Rating() int             { return r.rating }
func (r *Review) SentimentScore() float64 { return r.sentimentScore }
func (r *Review) CreatedAt() time.Time    { return r.createdAt }
