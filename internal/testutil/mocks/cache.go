package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/outbound/cache"
)

// --- TokenStore Mock ---

// TokenStore is a mock implementation of cache.TokenStore.
type TokenStore struct {
	mu sync.RWMutex

	// Storage
	families map[string]string    // familyID -> current token ID
	revoked  map[string]struct{}  // token ID -> revoked
	cutovers map[string]time.Time // userID -> cutover

	// Call tracking
	Calls struct {
		SetFamilyPointer    int
		RotateFamilyPointer int
		DeleteFamily        int
		RevokeToken         int
		IsTokenRevoked      int
		SetCutover          int
		Cutover             int
	}

	// Error injection
	Errors struct {
		SetFamilyPointer    error
		RotateFamilyPointer error
		DeleteFamily        error
		RevokeToken         error
		IsTokenRevoked      error
		SetCutover          error
		Cutover             error
	}
}

// NewTokenStore creates a new mock TokenStore.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		families: make(map[string]string),
		revoked:  make(map[string]struct{}),
		cutovers: make(map[string]time.Time),
	}
}

func (m *TokenStore) SetFamilyPointer(ctx context.Context, familyID, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.SetFamilyPointer++

	if m.Errors.SetFamilyPointer != nil {
		return m.Errors.SetFamilyPointer
	}

	m.families[familyID] = tokenID
	return nil
}

func (m *TokenStore) RotateFamilyPointer(ctx context.Context, familyID, presentedID, newID string, ttl time.Duration) (cache.RotateOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.RotateFamilyPointer++

	if m.Errors.RotateFamilyPointer != nil {
		return cache.RotateMissing, m.Errors.RotateFamilyPointer
	}

	current, ok := m.families[familyID]
	if !ok {
		return cache.RotateMissing, nil
	}
	if current != presentedID {
		delete(m.families, familyID)
		return cache.RotateMismatch, nil
	}
	m.families[familyID] = newID
	return cache.RotateOK, nil
}

func (m *TokenStore) DeleteFamily(ctx context.Context, familyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.DeleteFamily++

	if m.Errors.DeleteFamily != nil {
		return m.Errors.DeleteFamily
	}

	delete(m.families, familyID)
	return nil
}

func (m *TokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.RevokeToken++

	if m.Errors.RevokeToken != nil {
		return m.Errors.RevokeToken
	}

	m.revoked[tokenID] = struct{}{}
	return nil
}

func (m *TokenStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.IsTokenRevoked++

	if m.Errors.IsTokenRevoked != nil {
		return false, m.Errors.IsTokenRevoked
	}

	_, ok := m.revoked[tokenID]
	return ok, nil
}

func (m *TokenStore) SetCutover(ctx context.Context, userID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.SetCutover++

	if m.Errors.SetCutover != nil {
		return m.Errors.SetCutover
	}

	m.cutovers[userID] = at
	return nil
}

func (m *TokenStore) Cutover(ctx context.Context, userID string) (time.Time, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.Cutover++

	if m.Errors.Cutover != nil {
		return time.Time{}, false, m.Errors.Cutover
	}

	at, ok := m.cutovers[userID]
	return at, ok, nil
}

// FamilyPointer returns the current token ID for a family, if any.
func (m *TokenStore) FamilyPointer(familyID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.families[familyID]
	return id, ok
}

// --- LeaderboardStore Mock ---

// LeaderboardStore is a mock implementation of cache.LeaderboardStore.
type LeaderboardStore struct {
	mu sync.RWMutex

	// Storage
	stats  map[string]model.MarketStats
	scores map[string]float64

	// Call tracking
	Calls struct {
		IncrementStats int
		SetScore       int
		ReplaceAll     int
		TopN           int
	}

	// Error injection
	Errors struct {
		IncrementStats error
		SetScore       error
		ReplaceAll     error
		TopN           error
	}
}

// NewLeaderboardStore creates a new mock LeaderboardStore.
func NewLeaderboardStore() *LeaderboardStore {
	return &LeaderboardStore{
		stats:  make(map[string]model.MarketStats),
		scores: make(map[string]float64),
	}
}

func (m *LeaderboardStore) IncrementStats(ctx context.Context, marketID string, rating int, sentiment float64) (model.MarketStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.IncrementStats++

	if m.Errors.IncrementStats != nil {
		return model.MarketStats{}, m.Errors.IncrementStats
	}

	s := m.stats[marketID]
	s.RatingSum += float64(rating)
	s.SentimentSum += sentiment
	s.ReviewCount++
	m.stats[marketID] = s
	return s, nil
}

func (m *LeaderboardStore) SetScore(ctx context.Context, marketID string, score float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.SetScore++

	if m.Errors.SetScore != nil {
		return m.Errors.SetScore
	}

	m.scores[marketID] = score
	return nil
}

func (m *LeaderboardStore) ReplaceAll(ctx context.Context, entries []model.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.ReplaceAll++

	if m.Errors.ReplaceAll != nil {
		return m.Errors.ReplaceAll
	}

	m.scores = make(map[string]float64, len(entries))
	for _, e := range entries {
		m.scores[e.MarketID] = e.Score
	}
	return nil
}

func (m *LeaderboardStore) TopN(ctx context.Context, n int64) ([]model.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.TopN++

	if m.Errors.TopN != nil {
		return nil, m.Errors.TopN
	}

	entries := make([]model.LeaderboardEntry, 0, len(m.scores))
	for id, score := range m.scores {
		entries = append(entries, model.LeaderboardEntry{MarketID: id, Score: score})
	}
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].Score > entries[i].Score {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}
	if int64(len(entries)) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// Score returns the current leaderboard score for a market, if any.
func (m *LeaderboardStore) Score(marketID string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	score, ok := m.scores[marketID]
	return score, ok
}

// Stats returns the current accumulator for a market.
func (m *LeaderboardStore) Stats(marketID string) model.MarketStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats[marketID]
}

// --- ResponseCache Mock ---

// ResponseCache is a mock implementation of cache.ResponseCache.
type ResponseCache struct {
	mu sync.RWMutex

	// Storage
	entries map[string][]byte

	// Call tracking
	Calls struct {
		Get        int
		Set        int
		Invalidate int
	}

	// Error injection
	Errors struct {
		Get        error
		Set        error
		Invalidate error
	}

	// Invalidated records every key passed to Invalidate.
	Invalidated []string
}

// NewResponseCache creates a new mock ResponseCache.
func NewResponseCache() *ResponseCache {
	return &ResponseCache{
		entries: make(map[string][]byte),
	}
}

func (m *ResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.Get++

	if m.Errors.Get != nil {
		return nil, m.Errors.Get
	}

	return m.entries[key], nil
}

func (m *ResponseCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Set++

	if m.Errors.Set != nil {
		return m.Errors.Set
	}

	m.entries[key] = body
	return nil
}

func (m *ResponseCache) Invalidate(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Invalidate++
	m.Invalidated = append(m.Invalidated, keys...)

	if m.Errors.Invalidate != nil {
		return m.Errors.Invalidate
	}

	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

// Entry returns the cached body for a key, if any.
func (m *ResponseCache) Entry(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	body, ok := m.entries[key]
	return body, ok
}
