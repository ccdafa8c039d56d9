package service

import (
	"math"
	"testing"
)

func TestCompositeScore(t *testing.T) {
	weights := DefaultScoreWeights()

	t.Run("known blend", func(t *testing.T) {
		// 5.0*0.6 + (0.8+1)*2.5*0.3 + log10(2)*10*0.1
		got := CompositeScore(weights, 5.0, 0.8, 1)
		if got != 4.651 {
			t.Errorf("score = %v, want 4.651", got)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := CompositeScore(weights, 3.7, -0.25, 42)
		b := CompositeScore(weights, 3.7, -0.25, 42)
		if a != b {
			t.Errorf("same inputs scored differently: %v vs %v", a, b)
		}
	})

	t.Run("zero reviews scores on rating and sentiment alone", func(t *testing.T) {
		got := CompositeScore(weights, 4.0, 0.0, 0)
		want := 4.0*0.6 + 1*2.5*0.3
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("score = %v, want %v", got, want)
		}
	})

	t.Run("monotonic in each factor", func(t *testing.T) {
		base := CompositeScore(weights, 3.0, 0.0, 10)

		if higher := CompositeScore(weights, 4.0, 0.0, 10); higher <= base {
			t.Errorf("raising rating did not raise score: %v <= %v", higher, base)
		}
		if higher := CompositeScore(weights, 3.0, 0.5, 10); higher <= base {
			t.Errorf("raising sentiment did not raise score: %v <= %v", higher, base)
		}
		if higher := CompositeScore(weights, 3.0, 0.0, 100); higher <= base {
			t.Errorf("raising volume did not raise score: %v <= %v", higher, base)
		}
	})

	t.Run("volume has diminishing returns", func(t *testing.T) {
		firstStep := CompositeScore(weights, 3.0, 0.0, 10) - CompositeScore(weights, 3.0, 0.0, 1)
		laterStep := CompositeScore(weights, 3.0, 0.0, 1000) - CompositeScore(weights, 3.0, 0.0, 991)
		if laterStep >= firstStep {
			t.Errorf("volume gain did not diminish: +9 reviews worth %v early, %v late", firstStep, laterStep)
		}
	})

	t.Run("rounded to four decimals", func(t *testing.T) {
		got := CompositeScore(weights, 3.333333, 0.123456, 7)
		scaled := got * 1e4
		if scaled != math.Round(scaled) {
			t.Errorf("score %v carries more than four decimals", got)
		}
	})
}
