// Package mocks provides mock implementations of ports for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"
)

// --- UserRepository Mock ---

// UserRepository is a mock implementation of repository.UserRepository.
type UserRepository struct {
	mu sync.RWMutex

	// Storage
	users      map[string]*model.User // by ID
	byUsername map[string]string      // username -> ID
	byEmail    map[string]string      // email -> ID

	// Call tracking
	Calls struct {
		Create         int
		Update         int
		FindByID       int
		FindByUsername int
		FindByEmail    int
	}

	// Error injection
	Errors struct {
		Create         error
		Update         error
		FindByID       error
		FindByUsername error
		FindByEmail    error
	}
}

// NewUserRepository creates a new mock UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:      make(map[string]*model.User),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Create++

	if m.Errors.Create != nil {
		return m.Errors.Create
	}

	if _, ok := m.byUsername[user.Username()]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := m.byEmail[user.Email()]; ok {
		return repository.ErrDuplicate
	}

	m.users[user.ID()] = user
	m.byUsername[user.Username()] = user.ID()
	m.byEmail[user.Email()] = user.ID()
	return nil
}

func (m *UserRepository) Update(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Update++

	if m.Errors.Update != nil {
		return m.Errors.Update
	}

	if _, ok := m.users[user.ID()]; !ok {
		return repository.ErrNotFound
	}
	m.users[user.ID()] = user
	return nil
}

func (m *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.FindByID++

	if m.Errors.FindByID != nil {
		return nil, m.Errors.FindByID
	}

	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.FindByUsername++

	if m.Errors.FindByUsername != nil {
		return nil, m.Errors.FindByUsername
	}

	id, ok := m.byUsername[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m.users[id], nil
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.FindByEmail++

	if m.Errors.FindByEmail != nil {
		return nil, m.Errors.FindByEmail
	}

	id, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m.users[id], nil
}

// --- MarketRepository Mock ---

// MarketRepository is a mock implementation of repository.MarketRepository.
type MarketRepository struct {
	mu sync.RWMutex

	// Storage
	markets map[string]*model.Market // by ID
	order   []string                 // insertion order for ListActive

	// Call tracking
	Calls struct {
		Create       int
		FindByID     int
		ListActive   int
		ExistsByName int
	}

	// Error injection
	Errors struct {
		Create       error
		FindByID     error
		ListActive   error
		ExistsByName error
	}
}

// NewMarketRepository creates a new mock MarketRepository.
func NewMarketRepository() *MarketRepository {
	return &MarketRepository{
		markets: make(map[string]*model.Market),
	}
}

func (m *MarketRepository) Create(ctx context.Context, market *model.Market) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Create++

	if m.Errors.Create != nil {
		return m.Errors.Create
	}

	for _, existing := range m.markets {
		if existing.Name() == market.Name() {
			return repository.ErrDuplicate
		}
	}

	m.markets[market.ID()] = market
	m.order = append(m.order, market.ID())
	return nil
}

func (m *MarketRepository) FindByID(ctx context.Context, id string) (*model.Market, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.FindByID++

	if m.Errors.FindByID != nil {
		return nil, m.Errors.FindByID
	}

	market, ok := m.markets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return market, nil
}

func (m *MarketRepository) ListActive(ctx context.Context) ([]*model.Market, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.ListActive++

	if m.Errors.ListActive != nil {
		return nil, m.Errors.ListActive
	}

	out := make([]*model.Market, 0, len(m.order))
	for _, id := range m.order {
		if market := m.markets[id]; !market.Deleted() {
			out = append(out, market)
		}
	}
	return out, nil
}

func (m *MarketRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.ExistsByName++

	if m.Errors.ExistsByName != nil {
		return false, m.Errors.ExistsByName
	}

	for _, market := range m.markets {
		if market.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

// --- ReviewRepository Mock ---

// ReviewRepository is a mock implementation of repository.ReviewRepository.
type ReviewRepository struct {
	mu sync.RWMutex

	// Storage
	byMarket map[string][]*model.Review

	// Per-market aggregate overrides for rebuild tests. When set, the
	// override wins over the stored reviews.
	Aggregates map[string]repository.ReviewAggregates

	// Call tracking
	Calls struct {
		Create            int
		ListByMarket      int
		AggregateByMarket int
	}

	// Error injection
	Errors struct {
		Create            error
		ListByMarket      error
		AggregateByMarket error
	}

	// AggregateErrors injects per-market aggregation failures.
	AggregateErrors map[string]error
}

// NewReviewRepository creates a new mock ReviewRepository.
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{
		byMarket:        make(map[string][]*model.Review),
		Aggregates:      make(map[string]repository.ReviewAggregates),
		AggregateErrors: make(map[string]error),
	}
}

func (m *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Create++

	if m.Errors.Create != nil {
		return m.Errors.Create
	}

	m.byMarket[review.MarketID()] = append(m.byMarket[review.MarketID()], review)
	return nil
}

func (m *ReviewRepository) ListByMarket(ctx context.Context, marketID string) ([]*model.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.ListByMarket++

	if m.Errors.ListByMarket != nil {
		return nil, m.Errors.ListByMarket
	}

	return m.byMarket[marketID], nil
}

func (m *ReviewRepository) AggregateByMarket(ctx context.Context, marketID string) (repository.ReviewAggregates, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.AggregateByMarket++

	if m.Errors.AggregateByMarket != nil {
		return repository.ReviewAggregates{}, m.Errors.AggregateByMarket
	}
	if err, ok := m.AggregateErrors[marketID]; ok {
		return repository.ReviewAggregates{}, err
	}
	if agg, ok := m.Aggregates[marketID]; ok {
		return agg, nil
	}

	reviews := m.byMarket[marketID]
	if len(reviews) == 0 {
		return repository.ReviewAggregates{}, nil
	}

	var ratingSum, sentimentSum float64
	for _, r := range reviews {
		ratingSum += float64(r.Rating())
		sentimentSum += r.SentimentScore()
	}
	n := float64(len(reviews))
	return repository.ReviewAggregates{
		AvgRating:    ratingSum / n,
		AvgSentiment: sentimentSum / n,
		ReviewCount:  int64(len(reviews)),
	}, nil
}
