//go:build unit

package suggestion_test

import (
	"testing"

	"bookswap/internal/domain/suggestion"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offer(title, author, isbn, category string) suggestion.BookOffer {
	return suggestion.BookOffer{
		ID:        uuid.New(),
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		Category:  category,
		Condition: suggestion.ConditionGood,
	}
}

func TestMatchBooks(t *testing.T) {
	t.Run("match tier precedence", func(t *testing.T) {
		cases := []struct {
			name   string
			offer  suggestion.BookOffer
			want   suggestion.Want
			score  float64
			reason string
		}{
			{
				name:   "ISBN beats everything",
				offer:  offer("Different Title", "Different Author", "978-0-441-01359-3", ""),
				want:   suggestion.Want{ISBN: "9780441013593", Priority: 5},
				score:  1.0,
				reason: "exact ISBN match",
			},
			{
				name:   "title match is case and space insensitive",
				offer:  offer("  dune  ", "", "", ""),
				want:   suggestion.Want{Title: "DUNE", Priority: 5},
				score:  1.0,
				reason: "exact title match",
			},
			{
				name:   "author match",
				offer:  offer("Children of Dune", "Frank Herbert", "", ""),
				want:   suggestion.Want{Title: "Dune Messiah", Author: "Frank Herbert", Priority: 5},
				score:  0.7,
				reason: "same author",
			},
			{
				name:   "category match",
				offer:  offer("Foundation", "Isaac Asimov", "", "sci-fi"),
				want:   suggestion.Want{Title: "Hyperion", Category: "sci-fi", Priority: 5},
				score:  0.4,
				reason: "same category",
			},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				matches := suggestion.MatchBooks([]suggestion.BookOffer{c.offer}, []suggestion.Want{c.want})
				require.Len(t, matches, 1)
				assert.InDelta(t, c.score, matches[0].Score, 1e-9)
				assert.Contains(t, matches[0].Reasons, c.reason)
			})
		}
	})

	t.Run("no textual match needs high priority", func(t *testing.T) {
		o := offer("Unrelated", "Nobody", "", "")

		low := suggestion.MatchBooks([]suggestion.BookOffer{o}, []suggestion.Want{{Title: "Dune", Priority: 4}})
		assert.Empty(t, low)

		high := suggestion.MatchBooks([]suggestion.BookOffer{o}, []suggestion.Want{{Title: "Dune", Priority: 5}})
		require.Len(t, high, 1)
		assert.InDelta(t, 0.1, high[0].Score, 1e-9)
	})

	t.Run("high priority want is annotated", func(t *testing.T) {
		o := offer("Dune", "", "", "")
		matches := suggestion.MatchBooks([]suggestion.BookOffer{o}, []suggestion.Want{{Title: "Dune", Priority: 8}})
		require.Len(t, matches, 1)
		assert.Contains(t, matches[0].Reasons, "high-priority want")
	})

	t.Run("excellent condition is annotated", func(t *testing.T) {
		o := offer("Dune", "", "", "")
		o.Condition = suggestion.ConditionLikeNew
		matches := suggestion.MatchBooks([]suggestion.BookOffer{o}, []suggestion.Want{{Title: "Dune", Priority: 5}})
		require.Len(t, matches, 1)
		assert.Contains(t, matches[0].Reasons, "excellent condition")
	})

	t.Run("each offer and want is used at most once", func(t *testing.T) {
		// One copy of Dune, two wants that both match it exactly.
		dune := offer("Dune", "Frank Herbert", "", "")
		wants := []suggestion.Want{
			{Title: "Dune", Priority: 9},
			{Title: "dune", Priority: 3},
		}

		matches := suggestion.MatchBooks([]suggestion.BookOffer{dune}, wants)
		require.Len(t, matches, 1)
		// The higher-priority want wins the single copy.
		assert.Equal(t, 9, matches[0].Priority)
	})

	t.Run("greedy assignment takes best matches first", func(t *testing.T) {
		exact := offer("Dune", "Frank Herbert", "", "sci-fi")
		byAuthor := offer("Dune Messiah", "Frank Herbert", "", "sci-fi")
		wants := []suggestion.Want{
			{Title: "Dune", Author: "Frank Herbert", Priority: 5},
			{Author: "Frank Herbert", Priority: 5},
		}

		matches := suggestion.MatchBooks([]suggestion.BookOffer{exact, byAuthor}, wants)
		require.Len(t, matches, 2)
		assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
		assert.Equal(t, exact.ID, matches[0].Book.ID)
		assert.InDelta(t, 0.7, matches[1].Score, 1e-9)
	})
}

func TestPair(t *testing.T) {
	mk := func(scores ...float64) []suggestion.BookMatch {
		out := make([]suggestion.BookMatch, 0, len(scores))
		for _, s := range scores {
			out = append(out, suggestion.BookMatch{
				Book:  suggestion.BookOffer{ID: uuid.New()},
				Score: s,
			})
		}
		return out
	}

	t.Run("pairs rank by rank with mean score", func(t *testing.T) {
		give := mk(1.0, 0.7)
		receive := mk(0.8, 0.4)

		pairs := suggestion.Pair(give, receive, 5)
		require.Len(t, pairs, 2)
		assert.Equal(t, give[0].Book.ID, pairs[0].MyBookID)
		assert.Equal(t, receive[0].Book.ID, pairs[0].TheirBookID)
		assert.InDelta(t, 0.9, pairs[0].Score, 1e-9)
		assert.InDelta(t, 0.55, pairs[1].Score, 1e-9)
	})

	t.Run("limited by the shorter direction and topN", func(t *testing.T) {
		assert.Len(t, suggestion.Pair(mk(1, 1, 1), mk(1), 5), 1)
		assert.Len(t, suggestion.Pair(mk(1, 1, 1), mk(1, 1, 1), 2), 2)
		assert.Empty(t, suggestion.Pair(mk(1, 1), nil, 5))
	})

	t.Run("reasons are merged without duplicates", func(t *testing.T) {
		give := []suggestion.BookMatch{{
			Book:    suggestion.BookOffer{ID: uuid.New()},
			Score:   1.0,
			Reasons: []string{"exact title match", "excellent condition"},
		}}
		receive := []suggestion.BookMatch{{
			Book:    suggestion.BookOffer{ID: uuid.New()},
			Score:   1.0,
			Reasons: []string{"excellent condition", "same author"},
		}}

		pairs := suggestion.Pair(give, receive, 5)
		require.Len(t, pairs, 1)
		assert.Equal(t, []string{"exact title match", "excellent condition", "same author"}, pairs[0].Reasons)
	})
}
