package suggestion

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// BookOffer is a book a member has available for exchange.
type BookOffer struct {
	ID        uuid.UUID
	Title     string
	Author    string
	ISBN      string
	Category  string
	Condition Condition
}

// Want is one want-list entry with its 0-10 priority.
type Want struct {
	Title    string
	Author   string
	ISBN     string
	Category string
	Priority int
}

// BookMatch is one offered book matched against one want, with the
// normalized match score, the priority of the satisfied want, and the
// human-readable reasons that justify it.
type BookMatch struct {
	Book     BookOffer
	Want     Want
	Score    float64
	Priority int
	Reasons  []string
}

// Per-tier base scores, highest precedence first. A pairing with no
// textual match at all still carries a floor score so that priority and
// condition alone can surface it.
const (
	scoreExactMatch    = 1.0
	scoreAuthorMatch   = 0.7
	scoreCategoryMatch = 0.4
	scoreNoTextMatch   = 0.1
)

// MatchBooks greedily assigns offers to wants, best matches first. Each
// offer and each want is used at most once, so a single copy is never
// counted against multiple wants.
func MatchBooks(offers []BookOffer, wants []Want) []BookMatch {
	type scored struct {
		offerIdx int
		wantIdx  int
		match    BookMatch
	}

	var candidates []scored
	for oi, offer := range offers {
		for wi, want := range wants {
			if m, ok := matchOne(offer, want); ok {
				candidates = append(candidates, scored{offerIdx: oi, wantIdx: wi, match: m})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].match.Score != candidates[j].match.Score {
			return candidates[i].match.Score > candidates[j].match.Score
		}
		return candidates[i].match.Priority > candidates[j].match.Priority
	})

	usedOffers := make(map[int]bool, len(offers))
	usedWants := make(map[int]bool, len(wants))
	var out []BookMatch
	for _, c := range candidates {
		if usedOffers[c.offerIdx] || usedWants[c.wantIdx] {
			continue
		}
		usedOffers[c.offerIdx] = true
		usedWants[c.wantIdx] = true
		out = append(out, c.match)
	}
	return out
}

func matchOne(offer BookOffer, want Want) (BookMatch, bool) {
	var (
		score   float64
		reasons []string
	)

	switch {
	case want.ISBN != "" && offer.ISBN != "" && normalizeISBN(offer.ISBN) == normalizeISBN(want.ISBN):
		score = scoreExactMatch
		reasons = append(reasons, "exact ISBN match")
	case want.Title != "" && foldEqual(offer.Title, want.Title):
		score = scoreExactMatch
		reasons = append(reasons, "exact title match")
	case want.Author != "" && foldEqual(offer.Author, want.Author):
		score = scoreAuthorMatch
		reasons = append(reasons, "same author")
	case want.Category != "" && foldEqual(offer.Category, want.Category):
		score = scoreCategoryMatch
		reasons = append(reasons, "same category")
	default:
		// Only keep non-textual pairings when the want is pressing enough
		// to justify surfacing an unrelated book.
		if want.Priority < MaxWantPriority/2 {
			return BookMatch{}, false
		}
		score = scoreNoTextMatch
	}

	if want.Priority >= 8 {
		reasons = append(reasons, "high-priority want")
	}
	switch offer.Condition {
	case ConditionNew, ConditionLikeNew:
		reasons = append(reasons, "excellent condition")
	}

	return BookMatch{
		Book:     offer,
		Want:     want,
		Score:    score,
		Priority: want.Priority,
		Reasons:  reasons,
	}, true
}

// Pair combines the give-direction and receive-direction matches into
// concrete (book-from-subject, book-from-candidate) pairs, rank by rank,
// capped at topN. The pair score is the mean of both directions' match
// scores.
func Pair(give, receive []BookMatch, topN int) []BookPair {
	n := len(give)
	if len(receive) < n {
		n = len(receive)
	}
	if topN > 0 && n > topN {
		n = topN
	}

	pairs := make([]BookPair, 0, n)
	for i := 0; i < n; i++ {
		reasons := append([]string{}, give[i].Reasons...)
		for _, r := range receive[i].Reasons {
			if !containsString(reasons, r) {
				reasons = append(reasons, r)
			}
		}
		pairs = append(pairs, BookPair{
			MyBookID:    give[i].Book.ID,
			TheirBookID: receive[i].Book.ID,
			Score:       (give[i].Score + receive[i].Score) / 2,
			Reasons:     reasons,
		})
	}
	return pairs
}

func normalizeISBN(isbn string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, isbn)
}

func foldEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
