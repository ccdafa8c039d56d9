package sentiment

import (
	"context"
	"testing"
)

func TestLexiconScorer(t *testing.T) {
	ctx := context.Background()
	scorer := NewLexiconScorer()

	score := func(t *testing.T, text string) float64 {
		t.Helper()
		s, err := scorer.Score(ctx, text)
		if err != nil {
			t.Fatalf("Score(%q): %v", text, err)
		}
		return s
	}

	t.Run("positive text scores positive", func(t *testing.T) {
		if s := score(t, "The produce was fresh and the vendors were friendly."); s <= 0 {
			t.Errorf("score = %v, want > 0", s)
		}
	})

	t.Run("negative text scores negative", func(t *testing.T) {
		if s := score(t, "Stale bread, rude staff, overpriced everything."); s >= 0 {
			t.Errorf("score = %v, want < 0", s)
		}
	})

	t.Run("negation flips polarity", func(t *testing.T) {
		plain := score(t, "the cheese was good")
		negated := score(t, "the cheese was not good")
		if plain <= 0 {
			t.Fatalf("plain score = %v, want > 0", plain)
		}
		if negated >= 0 {
			t.Errorf("negated score = %v, want < 0", negated)
		}
	})

	t.Run("neutral or empty text scores zero", func(t *testing.T) {
		if s := score(t, ""); s != 0 {
			t.Errorf("empty score = %v, want 0", s)
		}
		if s := score(t, "the stall is on the corner"); s != 0 {
			t.Errorf("neutral score = %v, want 0", s)
		}
	})

	t.Run("score stays within bounds", func(t *testing.T) {
		s := score(t, "amazing amazing amazing awesome excellent outstanding")
		if s < -1 || s > 1 {
			t.Errorf("score = %v, out of [-1, 1]", s)
		}
	})

	t.Run("punctuation and case do not matter", func(t *testing.T) {
		a := score(t, "DELICIOUS!")
		b := score(t, "delicious")
		if a != b {
			t.Errorf("case/punctuation changed the score: %v vs %v", a, b)
		}
	})
}
