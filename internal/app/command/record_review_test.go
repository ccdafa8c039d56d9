package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
	"github.com/market-scout/marketscout/internal/domain/event"
	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/inbound/command"
	"github.com/market-scout/marketscout/internal/port/outbound/cache"
	"github.com/market-scout/marketscout/internal/testutil/mocks"

	"github.com/market-scout/marketscout/internal/app/service"
)

type recordReviewFixture struct {
	marketRepo    *mocks.MarketRepository
	reviewRepo    *mocks.ReviewRepository
	scorer        *mocks.SentimentScorer
	store         *mocks.LeaderboardStore
	responseCache *mocks.ResponseCache
	publisher     *mocks.EventPublisher
	handler       command.RecordReviewHandler
}

func newRecordReviewFixture() *recordReviewFixture {
	f := &recordReviewFixture{
		marketRepo:    mocks.NewMarketRepository(),
		reviewRepo:    mocks.NewReviewRepository(),
		scorer:        mocks.NewSentimentScorer(),
		store:         mocks.NewLeaderboardStore(),
		responseCache: mocks.NewResponseCache(),
		publisher:     mocks.NewEventPublisher(),
	}

	leaderboard := service.NewLeaderboardService(
		f.store, f.marketRepo, f.reviewRepo, f.publisher, service.DefaultScoreWeights(), zap.NewNop(),
	)
	f.handler = NewRecordReviewHandler(
		f.marketRepo, f.reviewRepo, f.scorer, leaderboard, f.responseCache, f.publisher, zap.NewNop(),
	)
	return f
}

func (f *recordReviewFixture) seedMarket(t *testing.T) *model.Market {
	t.Helper()

	m, err := model.NewMarket("Ferry Plaza", "1 Ferry Building", "farmers")
	if err != nil {
		t.Fatalf("NewMarket: %v", err)
	}
	if err := f.marketRepo.Create(context.Background(), m); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return m
}

func TestRecordReviewHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("persists, scores, ranks, and invalidates", func(t *testing.T) {
		f := newRecordReviewFixture()
		m := f.seedMarket(t)
		f.scorer.Scores["Wonderful fresh produce."] = 0.75

		result, err := f.handler.Handle(ctx, command.RecordReview{
			MarketID: m.ID(),
			UserID:   "user-1",
			Comment:  "Wonderful fresh produce.",
			Rating:   5,
		})
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		if result.ReviewID == "" {
			t.Error("expected a review ID")
		}
		if result.SentimentScore != 0.75 {
			t.Errorf("sentiment = %v, want 0.75", result.SentimentScore)
		}

		// Persisted to the store of record.
		reviews, err := f.reviewRepo.ListByMarket(ctx, m.ID())
		if err != nil {
			t.Fatalf("ListByMarket: %v", err)
		}
		if len(reviews) != 1 {
			t.Fatalf("reviews = %d, want 1", len(reviews))
		}

		// Ranked.
		want := service.CompositeScore(service.DefaultScoreWeights(), 5, 0.75, 1)
		if got, ok := f.store.Score(m.ID()); !ok || got != want {
			t.Errorf("leaderboard score = %v (present %v), want %v", got, ok, want)
		}

		// The market's cached sentiment summary is gone.
		sentimentKey := cache.RequestKey("/markets/"+m.ID()+"/sentiment", nil)
		found := false
		for _, k := range f.responseCache.Invalidated {
			if k == sentimentKey {
				found = true
			}
		}
		if !found {
			t.Errorf("expected invalidation of %q, got %v", sentimentKey, f.responseCache.Invalidated)
		}

		if got := len(f.publisher.EventsOfType(event.EventTypeReviewRecorded)); got != 1 {
			t.Errorf("review events = %d, want 1", got)
		}
	})

	t.Run("unknown market", func(t *testing.T) {
		f := newRecordReviewFixture()

		_, err := f.handler.Handle(ctx, command.RecordReview{
			MarketID: "missing", UserID: "u", Comment: "text", Rating: 3,
		})
		if !errors.Is(err, domainerror.ErrMarketNotFound) {
			t.Errorf("err = %v, want ErrMarketNotFound", err)
		}
	})

	t.Run("invalid rating never reaches the repositories", func(t *testing.T) {
		f := newRecordReviewFixture()
		m := f.seedMarket(t)

		_, err := f.handler.Handle(ctx, command.RecordReview{
			MarketID: m.ID(), UserID: "u", Comment: "text", Rating: 9,
		})
		if !errors.Is(err, domainerror.ErrRatingOutOfRange) {
			t.Errorf("err = %v, want ErrRatingOutOfRange", err)
		}
		if f.reviewRepo.Calls.Create != 0 {
			t.Error("expected no persisted review for invalid rating")
		}
	})

	t.Run("scorer failure aborts before persistence", func(t *testing.T) {
		f := newRecordReviewFixture()
		m := f.seedMarket(t)
		f.scorer.Errors.Score = errors.New("lexicon unavailable")

		if _, err := f.handler.Handle(ctx, command.RecordReview{
			MarketID: m.ID(), UserID: "u", Comment: "text", Rating: 3,
		}); err == nil {
			t.Fatal("expected error when scoring fails")
		}
		if f.reviewRepo.Calls.Create != 0 {
			t.Error("expected no persisted review when scoring fails")
		}
	})

	t.Run("invalidation failure does not fail the review", func(t *testing.T) {
		f := newRecordReviewFixture()
		m := f.seedMarket(t)
		f.responseCache.Errors.Invalidate = errors.New("redis down")

		if _, err := f.handler.Handle(ctx, command.RecordReview{
			MarketID: m.ID(), UserID: "u", Comment: "great", Rating: 4,
		}); err != nil {
			t.Fatalf("Handle: %v", err)
		}
	})

	t.Run("deleted market rejects reviews", func(t *testing.T) {
		f := newRecordReviewFixture()
		deletedAt := time.Now().UTC()
		m := model.ReconstructMarket("m-gone", "Closed Market", "addr", "farmers", &deletedAt, time.Now().UTC())
		if err := f.marketRepo.Create(ctx, m); err != nil {
			t.Fatalf("Create: %v", err)
		}

		_, err := f.handler.Handle(ctx, command.RecordReview{
			MarketID: m.ID(), UserID: "u", Comment: "text", Rating: 3,
		})
		if !errors.Is(err, domainerror.ErrMarketNotFound) {
			t.Errorf("err = %v, want ErrMarketNotFound", err)
		}
	})
}
