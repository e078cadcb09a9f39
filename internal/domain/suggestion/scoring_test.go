//go:build unit

package suggestion_test

import (
	"testing"
	"time"

	"bookswap/internal/domain/suggestion"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strongCandidate(region string) suggestion.CandidateProfile {
	return suggestion.CandidateProfile{
		TrustScore:         100,
		CompletedExchanges: 10,
		AverageRating:      5,
		Region:             region,
		Verified:           true,
		LastActiveAt:       time.Now(),
	}
}

func exactMatch(condition suggestion.Condition, priority int) []suggestion.BookMatch {
	return []suggestion.BookMatch{{
		Book:     suggestion.BookOffer{ID: uuid.New(), Title: "Dune", Condition: condition},
		Want:     suggestion.Want{Title: "Dune", Priority: priority},
		Score:    1.0,
		Priority: priority,
	}}
}

func TestDefaultWeights(t *testing.T) {
	require.NoError(t, suggestion.DefaultWeights().Validate())
}

func TestWeightsValidate(t *testing.T) {
	w := suggestion.DefaultWeights()
	w.BookMatch += 0.1
	assert.ErrorIs(t, w.Validate(), suggestion.ErrInvalidWeights)
}

func TestScore(t *testing.T) {
	w := suggestion.DefaultWeights()

	t.Run("perfect candidate scores 1.0", func(t *testing.T) {
		give := exactMatch(suggestion.ConditionNew, suggestion.MaxWantPriority)
		receive := exactMatch(suggestion.ConditionNew, suggestion.MaxWantPriority)

		total, c := suggestion.Score(w, "tokyo", strongCandidate("tokyo"), give, receive)

		assert.InDelta(t, 1.0, total, 1e-9)
		assert.InDelta(t, 1.0, c.BookMatch, 1e-9)
		assert.InDelta(t, 1.0, c.TrustScore, 1e-9)
		assert.InDelta(t, 1.0, c.Geographic, 1e-9)
	})

	t.Run("different region decays the geographic component", func(t *testing.T) {
		give := exactMatch(suggestion.ConditionNew, suggestion.MaxWantPriority)
		receive := exactMatch(suggestion.ConditionNew, suggestion.MaxWantPriority)

		sameTotal, same := suggestion.Score(w, "tokyo", strongCandidate("tokyo"), give, receive)
		farTotal, far := suggestion.Score(w, "tokyo", strongCandidate("osaka"), give, receive)

		assert.InDelta(t, 1.0, same.Geographic, 1e-9)
		assert.InDelta(t, 0.3, far.Geographic, 1e-9)
		// Exactly the geographic weight times the component drop.
		assert.InDelta(t, w.Geographic*0.7, sameTotal-farTotal, 1e-9)
	})

	t.Run("history saturates at ten completed exchanges", func(t *testing.T) {
		give := exactMatch(suggestion.ConditionGood, 5)

		cand := strongCandidate("tokyo")
		cand.CompletedExchanges = 5
		_, half := suggestion.Score(w, "tokyo", cand, give, nil)
		assert.InDelta(t, 0.5, half.ExchangeHistory, 1e-9)

		cand.CompletedExchanges = 25
		_, capped := suggestion.Score(w, "tokyo", cand, give, nil)
		assert.InDelta(t, 1.0, capped.ExchangeHistory, 1e-9)
	})

	t.Run("one-sided matches are halved not discarded", func(t *testing.T) {
		give := exactMatch(suggestion.ConditionNew, suggestion.MaxWantPriority)

		_, c := suggestion.Score(w, "tokyo", strongCandidate("tokyo"), give, nil)

		assert.InDelta(t, 0.5, c.BookMatch, 1e-9)
		assert.InDelta(t, 0.5, c.Priority, 1e-9)
		assert.InDelta(t, 0.5, c.Condition, 1e-9)
	})

	t.Run("trust and rating normalize to their scales", func(t *testing.T) {
		give := exactMatch(suggestion.ConditionGood, 5)

		cand := strongCandidate("tokyo")
		cand.TrustScore = 50
		cand.AverageRating = 2.5
		_, c := suggestion.Score(w, "tokyo", cand, give, nil)

		assert.InDelta(t, 0.5, c.TrustScore, 1e-9)
		assert.InDelta(t, 0.5, c.Rating, 1e-9)
	})

	t.Run("unverified candidate gets zero verification", func(t *testing.T) {
		give := exactMatch(suggestion.ConditionGood, 5)

		cand := strongCandidate("tokyo")
		cand.Verified = false
		_, c := suggestion.Score(w, "tokyo", cand, give, nil)

		assert.Zero(t, c.Verification)
	})
}

func TestConditionScores(t *testing.T) {
	cases := map[suggestion.Condition]float64{
		suggestion.ConditionNew:     1.0,
		suggestion.ConditionLikeNew: 0.8,
		suggestion.ConditionGood:    0.6,
		suggestion.ConditionFair:    0.4,
		suggestion.ConditionPoor:    0.2,
	}
	for cond, want := range cases {
		assert.InDelta(t, want, cond.Score(), 1e-9, "condition %s", cond)
	}

	_, err := suggestion.NewCondition("pristine")
	assert.ErrorIs(t, err, suggestion.ErrUnknownCondition)
}
