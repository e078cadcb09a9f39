package suggestion

import "time"

// CandidateRank carries the ordering keys for one candidate in a
// generation pass. Ties on score break toward the candidate with more
// matching books, then toward the one active most recently.
type CandidateRank struct {
	Score         float64
	MatchingBooks int
	LastActiveAt  time.Time
}

// RanksAbove reports whether r should be kept ahead of other.
func (r CandidateRank) RanksAbove(other CandidateRank) bool {
	if r.Score != other.Score {
		return r.Score > other.Score
	}
	if r.MatchingBooks != other.MatchingBooks {
		return r.MatchingBooks > other.MatchingBooks
	}
	return r.LastActiveAt.After(other.LastActiveAt)
}
