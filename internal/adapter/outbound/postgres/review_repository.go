package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"
)

// reviewRepository implements repository.ReviewRepository.
type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(pool *pgxpool.Pool) repository.ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO reviews (id, market_id, user_id, comment, rating, sentiment_score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		review.ID(), review.MarketID(), review.UserID(), review.Comment(),
		review.Rating(), review.SentimentScore(), review.CreatedAt(),
	)
	return err
}

func (r *reviewRepository) ListByMarket(ctx context.Context, marketID string) ([]*model.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, market_id, user_id, comment, rating, sentiment_score, created_at
		 FROM reviews WHERE market_id = $1 ORDER BY created_at DESC`,
		marketID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		var (
			id, mID, userID, comment string
			rating                   int
			sentimentScore           float64
			createdAt                time.Time
		)
		if err := rows.Scan(&id, &mID, &userID, &comment, &rating, &sentimentScore, &createdAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, model.ReconstructReview(id, mID, userID, comment, rating, sentimentScore, createdAt))
	}
	return reviews, rows.Err()
}

// AggregateByMarket computes true averages straight from the review table.
// COALESCE keeps zero-review markets at zero counts instead of NULL scans.
func (r *reviewRepository) AggregateByMarket(ctx context.Context, marketID string) (repository.ReviewAggregates, error) {
	var agg repository.ReviewAggregates
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0),
		        COALESCE(AVG(sentiment_score), 0),
		        COUNT(*)
		 FROM reviews WHERE market_id = $1`,
		marketID,
	).Scan(&agg.AvgRating, &agg.AvgSentiment, &agg.ReviewCount)
	if err != nil {
		return repository.ReviewAggregates{}, err
	}
	return agg, nil
}
