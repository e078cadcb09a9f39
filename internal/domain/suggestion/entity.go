package suggestion

import (
	"time"

	"github.com/google/uuid"
)

// BookPair is one concrete book-for-book match justifying part of a
// suggestion's score.
type BookPair struct {
	MyBookID    uuid.UUID
	TheirBookID uuid.UUID
	Score       float64
	Reasons     []string
}

// Suggestion is an asymmetric scored pairing of a subject member with a
// candidate partner. Immutable once created: it is viewed, expires, or is
// superseded by a fresh generation pass.
type Suggestion struct {
	id            uuid.UUID
	memberID      uuid.UUID
	candidateID   uuid.UUID
	matchScore    float64
	matchingBooks int
	pairs         []BookPair
	isViewed      bool
	viewedAt      *time.Time
	expiresAt     time.Time
	createdAt     time.Time
}

func NewSuggestion(memberID, candidateID uuid.UUID, matchScore float64, pairs []BookPair, expiresAt, now time.Time) (*Suggestion, error) {
	if memberID == candidateID {
		return nil, ErrSameMember
	}
	if matchScore < 0 || matchScore > 1 {
		return nil, ErrScoreOutOfRange
	}
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}
	for _, p := range pairs {
		if p.Score < 0 || p.Score > 1 {
			return nil, ErrScoreOutOfRange
		}
	}

	return &Suggestion{
		id:            uuid.New(),
		memberID:      memberID,
		candidateID:   candidateID,
		matchScore:    matchScore,
		matchingBooks: len(pairs),
		pairs:         pairs,
		expiresAt:     expiresAt,
		createdAt:     now,
	}, nil
}

func ReconstructSuggestion(
	id, memberID, candidateID uuid.UUID,
	matchScore float64,
	matchingBooks int,
	pairs []BookPair,
	isViewed bool,
	viewedAt *time.Time,
	expiresAt, createdAt time.Time,
) *Suggestion {
	return &Suggestion{
		id:            id,
		memberID:      memberID,
		candidateID:   candidateID,
		matchScore:    matchScore,
		matchingBooks: matchingBooks,
		pairs:         pairs,
		isViewed:      isViewed,
		viewedAt:      viewedAt,
		expiresAt:     expiresAt,
		createdAt:     createdAt,
	}
}

// MarkViewed flags the suggestion as seen by its subject. Re-marking is a
// no-op; score data is never mutated.
func (s *Suggestion) MarkViewed(actorID uuid.UUID, now time.Time) error {
	if actorID != s.memberID {
		return ErrNotSubject
	}
	if s.isViewed {
		return nil
	}
	s.isViewed = true
	s.viewedAt = &now
	return nil
}

func (s *Suggestion) IsExpired(now time.Time) bool {
	return now.After(s.expiresAt)
}

// Replaceable reports whether a fresh generation pass may supersede this
// row: expired or already-viewed suggestions are fair game, untouched live
// ones are kept as-is.
func (s *Suggestion) Replaceable(now time.Time) bool {
	return s.isViewed || s.IsExpired(now)
}

func (s *Suggestion) ID() uuid.UUID          { return s.id }
func (s *Suggestion) MemberID() uuid.UUID    { return s.memberID }
func (s *Suggestion) CandidateID() uuid.UUID { return s.candidateID }
func (s *Suggestion) MatchScore() float64    { return s.matchScore }
func (s *Suggestion) MatchingBooks() int     { return s.matchingBooks }
func (s *Suggestion) Pairs() []BookPair      { return s.pairs }
func (s *Suggestion) IsViewed() bool         { return s.isViewed }
func (s *Suggestion) ViewedAt() *time.Time   { return s.viewedAt }
func (s *Suggestion) ExpiresAt() time.Time   { return s.expiresAt }
func (s *Suggestion) CreatedAt() time.Time   { return s.createdAt }
