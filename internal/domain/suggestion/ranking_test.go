//go:build unit

package suggestion_test

import (
	"sort"
	"testing"
	"time"

	"bookswap/internal/domain/suggestion"

	"github.com/stretchr/testify/assert"
)

func TestCandidateRank(t *testing.T) {
	now := time.Now()

	t.Run("higher score wins regardless of the other keys", func(t *testing.T) {
		high := suggestion.CandidateRank{Score: 0.8, MatchingBooks: 1, LastActiveAt: now.Add(-time.Hour)}
		low := suggestion.CandidateRank{Score: 0.7, MatchingBooks: 5, LastActiveAt: now}

		assert.True(t, high.RanksAbove(low))
		assert.False(t, low.RanksAbove(high))
	})

	t.Run("score tie breaks toward more matching books", func(t *testing.T) {
		oneBook := suggestion.CandidateRank{Score: 0.8, MatchingBooks: 1, LastActiveAt: now}
		twoBooks := suggestion.CandidateRank{Score: 0.8, MatchingBooks: 2, LastActiveAt: now.Add(-time.Hour)}

		assert.True(t, twoBooks.RanksAbove(oneBook))
		assert.False(t, oneBook.RanksAbove(twoBooks))
	})

	t.Run("full tie breaks toward more recent activity", func(t *testing.T) {
		stale := suggestion.CandidateRank{Score: 0.8, MatchingBooks: 2, LastActiveAt: now.Add(-24 * time.Hour)}
		fresh := suggestion.CandidateRank{Score: 0.8, MatchingBooks: 2, LastActiveAt: now}

		assert.True(t, fresh.RanksAbove(stale))
		assert.False(t, stale.RanksAbove(fresh))
	})

	t.Run("sorting keeps the richer match when scores are equal", func(t *testing.T) {
		ranks := []suggestion.CandidateRank{
			{Score: 0.8, MatchingBooks: 1, LastActiveAt: now},
			{Score: 0.8, MatchingBooks: 2, LastActiveAt: now.Add(-time.Hour)},
			{Score: 0.9, MatchingBooks: 1, LastActiveAt: now.Add(-48 * time.Hour)},
		}
		sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].RanksAbove(ranks[j]) })

		assert.InDelta(t, 0.9, ranks[0].Score, 1e-9)
		assert.Equal(t, 2, ranks[1].MatchingBooks)
		assert.Equal(t, 1, ranks[2].MatchingBooks)
	})
}
