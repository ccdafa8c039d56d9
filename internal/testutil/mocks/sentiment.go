package mocks

import (
	"context"
	"sync"
)

// SentimentScorer is a mock implementation of sentiment.Scorer. Texts are
// looked up in Scores; an unknown text scores zero.
type SentimentScorer struct {
	mu sync.RWMutex

	// Scores maps review text to the sentiment to return for it.
	Scores map[string]float64

	// Call tracking
	Calls struct {
		Score int
	}

	// Error injection
	Errors struct {
		Score error
	}
}

// NewSentimentScorer creates a new mock SentimentScorer.
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{
		Scores: make(map[string]float64),
	}
}

func (m *SentimentScorer) Score(ctx context.Context, text string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.Score++

	if m.Errors.Score != nil {
		return 0, m.Errors.Score
	}

	return m.Scores[text], nil
}
