package queries

import (
	"context"
	"time"

	"bookswap/internal/infra"

	"github.com/google/uuid"
)

type BookPairView struct {
	MyBookID       uuid.UUID `json:"my_book_id"`
	MyBookTitle    string    `json:"my_book_title"`
	TheirBookID    uuid.UUID `json:"their_book_id"`
	TheirBookTitle string    `json:"their_book_title"`
	Score          float64   `json:"score"`
	Reasons        []string  `json:"reasons"`
}

type SuggestionView struct {
	ID            uuid.UUID      `json:"id"`
	MemberID      uuid.UUID      `json:"member_id"`
	CandidateID   uuid.UUID      `json:"candidate_id"`
	MatchScore    float64        `json:"match_score"`
	MatchingBooks int32          `json:"matching_books"`
	Pairs         []BookPairView `json:"pairs"`
	IsViewed      bool           `json:"is_viewed"`
	ViewedAt      *time.Time     `json:"viewed_at,omitempty"`
	ExpiresAt     time.Time      `json:"expires_at"`
	CreatedAt     time.Time      `json:"created_at"`
}

type SuggestionListItem struct {
	ID            uuid.UUID `json:"id"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	MatchScore    float64   `json:"match_score"`
	MatchingBooks int32     `json:"matching_books"`
	IsViewed      bool      `json:"is_viewed"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}

type SuggestionFilters struct {
	// IncludeViewed keeps already-viewed suggestions in the listing;
	// expired ones are always excluded.
	IncludeViewed bool
}

type SuggestionReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SuggestionView, error)
	// FindForMember lists live suggestions ranked by score; expiry is
	// evaluated against now in SQL so the cutoff is consistent per call.
	FindForMember(ctx context.Context, memberID uuid.UUID, includeViewed bool, now time.Time, limit int32) ([]*SuggestionListItem, error)
}

type SuggestionQueries interface {
	GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*SuggestionView, error)
	ListForMember(ctx context.Context, memberID uuid.UUID, filters SuggestionFilters, now time.Time, limit int) ([]*SuggestionListItem, error)
}

type suggestionQueriesImpl struct {
	repo SuggestionReadStore
}

func NewSuggestionQueries(repo SuggestionReadStore) SuggestionQueries {
	return &suggestionQueriesImpl{repo: repo}
}

func (q *suggestionQueriesImpl) GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*SuggestionView, error) {
	sv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSuggestionNotFound
		}
		return nil, err
	}
	// Suggestions are private to their subject; the candidate never sees
	// them.
	if !canReadAsParty(actorRole, actorID == sv.MemberID) {
		return nil, ErrAccessDenied
	}
	return sv, nil
}

func (q *suggestionQueriesImpl) ListForMember(ctx context.Context, memberID uuid.UUID, filters SuggestionFilters, now time.Time, limit int) ([]*SuggestionListItem, error) {
	limit = ValidateLimit(limit)
	return q.repo.FindForMember(ctx, memberID, filters.IncludeViewed, now, int32(limit))
}
