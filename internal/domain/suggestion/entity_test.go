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

func validPairs() []suggestion.BookPair {
	return []suggestion.BookPair{{
		MyBookID:    uuid.New(),
		TheirBookID: uuid.New(),
		Score:       0.85,
		Reasons:     []string{"exact title match"},
	}}
}

func TestNewSuggestion(t *testing.T) {
	now := time.Now()
	expires := now.Add(7 * 24 * time.Hour)

	t.Run("basic success case", func(t *testing.T) {
		memberID := uuid.New()
		candidateID := uuid.New()

		s, err := suggestion.NewSuggestion(memberID, candidateID, 0.72, validPairs(), expires, now)
		require.NoError(t, err)
		require.NotNil(t, s)

		assert.NotEqual(t, uuid.Nil, s.ID())
		assert.Equal(t, memberID, s.MemberID())
		assert.Equal(t, 1, s.MatchingBooks())
		assert.False(t, s.IsViewed())
		assert.Nil(t, s.ViewedAt())
	})

	t.Run("subject and candidate must differ", func(t *testing.T) {
		id := uuid.New()
		_, err := suggestion.NewSuggestion(id, id, 0.5, validPairs(), expires, now)
		assert.ErrorIs(t, err, suggestion.ErrSameMember)
	})

	t.Run("score range", func(t *testing.T) {
		_, err := suggestion.NewSuggestion(uuid.New(), uuid.New(), -0.1, validPairs(), expires, now)
		assert.ErrorIs(t, err, suggestion.ErrScoreOutOfRange)

		_, err = suggestion.NewSuggestion(uuid.New(), uuid.New(), 1.1, validPairs(), expires, now)
		assert.ErrorIs(t, err, suggestion.ErrScoreOutOfRange)
	})

	t.Run("needs at least one pair", func(t *testing.T) {
		_, err := suggestion.NewSuggestion(uuid.New(), uuid.New(), 0.5, nil, expires, now)
		assert.ErrorIs(t, err, suggestion.ErrNoPairs)
	})

	t.Run("pair score range", func(t *testing.T) {
		pairs := validPairs()
		pairs[0].Score = 1.5
		_, err := suggestion.NewSuggestion(uuid.New(), uuid.New(), 0.5, pairs, expires, now)
		assert.ErrorIs(t, err, suggestion.ErrScoreOutOfRange)
	})
}

func TestMarkViewed(t *testing.T) {
	now := time.Now()
	expires := now.Add(7 * 24 * time.Hour)

	t.Run("subject marks viewed once", func(t *testing.T) {
		memberID := uuid.New()
		s, err := suggestion.NewSuggestion(memberID, uuid.New(), 0.5, validPairs(), expires, now)
		require.NoError(t, err)

		viewedAt := now.Add(time.Hour)
		require.NoError(t, s.MarkViewed(memberID, viewedAt))
		assert.True(t, s.IsViewed())
		require.NotNil(t, s.ViewedAt())
		assert.Equal(t, viewedAt, *s.ViewedAt())

		// Re-marking keeps the original timestamp.
		require.NoError(t, s.MarkViewed(memberID, viewedAt.Add(time.Hour)))
		assert.Equal(t, viewedAt, *s.ViewedAt())
	})

	t.Run("only the subject may mark viewed", func(t *testing.T) {
		candidateID := uuid.New()
		s, err := suggestion.NewSuggestion(uuid.New(), candidateID, 0.5, validPairs(), expires, now)
		require.NoError(t, err)

		assert.ErrorIs(t, s.MarkViewed(candidateID, now), suggestion.ErrNotSubject)
		assert.ErrorIs(t, s.MarkViewed(uuid.New(), now), suggestion.ErrNotSubject)
	})
}

func TestReplaceable(t *testing.T) {
	now := time.Now()
	memberID := uuid.New()

	s, err := suggestion.NewSuggestion(memberID, uuid.New(), 0.5, validPairs(), now.Add(time.Hour), now)
	require.NoError(t, err)

	assert.False(t, s.Replaceable(now))
	assert.True(t, s.Replaceable(now.Add(2*time.Hour)), "expired suggestions are replaceable")

	require.NoError(t, s.MarkViewed(memberID, now))
	assert.True(t, s.Replaceable(now), "viewed suggestions are replaceable")
}
