package sentiment

import (
	"context"
	"strings"

	"github.com/market-scout/marketscout/internal/port/outbound/sentiment"
)

// lexiconScorer is a small valence-lexicon sentiment scorer. Each word
// carries a polarity; a negating word flips the polarity of the word that
// follows it. The compound score is the normalized sum, clamped to [-1, 1].
type lexiconScorer struct {
	valence map[string]float64
}

// NewLexiconScorer creates a Scorer backed by the built-in lexicon.
func NewLexiconScorer() sentiment.Scorer {
	return &lexiconScorer{valence: defaultValence}
}

func (s *lexiconScorer) Score(_ context.Context, text string) (float64, error) {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0, nil
	}

	var sum float64
	var hits int
	negate := false

	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"()")
		if negations[w] {
			negate = true
			continue
		}

		v, ok := s.valence[w]
		if !ok {
			negate = false
			continue
		}
		if negate {
			v = -v
			negate = false
		}
		sum += v
		hits++
	}

	if hits == 0 {
		return 0, nil
	}

	score := sum / float64(hits)
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score, nil
}

var negations = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"hardly":  true,
	"barely":  true,
	"isn't":   true,
	"wasn't":  true,
	"don't":   true,
	"didn't":  true,
	"doesn't": true,
	"can't":   true,
	"won't":   true,
}

var defaultValence = map[string]float64{
	"amazing":      0.9,
	"awesome":      0.9,
	"excellent":    0.9,
	"outstanding":  0.9,
	"delicious":    0.8,
	"fantastic":    0.8,
	"wonderful":    0.8,
	"fresh":        0.7,
	"great":        0.7,
	"love":         0.7,
	"loved":        0.7,
	"best":         0.7,
	"friendly":     0.6,
	"good":         0.5,
	"nice":         0.5,
	"tasty":        0.5,
	"clean":        0.4,
	"fine":         0.3,
	"okay":         0.1,
	"ok":           0.1,
	"mediocre":     -0.3,
	"bland":        -0.4,
	"overpriced":   -0.4,
	"stale":        -0.5,
	"dirty":        -0.5,
	"slow":         -0.4,
	"bad":          -0.5,
	"poor":         -0.5,
	"rude":         -0.6,
	"disappointed": -0.6,
	"awful":        -0.8,
	"terrible":     -0.8,
	"horrible":     -0.8,
	"disgusting":   -0.9,
	"worst":        -0.9,
	"rotten":       -0.9,
}
