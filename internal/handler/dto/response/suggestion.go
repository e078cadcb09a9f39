package response

import (
	"time"

	"bookswap/internal/usecase/queries"
)

type BookPairResponse struct {
	MyBookID       string   `json:"my_book_id"`
	MyBookTitle    string   `json:"my_book_title"`
	TheirBookID    string   `json:"their_book_id"`
	TheirBookTitle string   `json:"their_book_title"`
	Score          float64  `json:"score"`
	Reasons        []string `json:"reasons"`
}

type SuggestionResponse struct {
	ID            string             `json:"id"`
	MemberID      string             `json:"member_id"`
	CandidateID   string             `json:"candidate_id"`
	MatchScore    float64            `json:"match_score"`
	MatchingBooks int32              `json:"matching_books"`
	Pairs         []BookPairResponse `json:"pairs"`
	IsViewed      bool               `json:"is_viewed"`
	ViewedAt      *int64             `json:"viewed_at,omitempty"`
	ExpiresAt     int64              `json:"expires_at"`
	CreatedAt     int64              `json:"created_at"`
}

func FromSuggestionView(v *queries.SuggestionView) *SuggestionResponse {
	pairs := make([]BookPairResponse, len(v.Pairs))
	for i, p := range v.Pairs {
		pairs[i] = BookPairResponse{
			MyBookID:       p.MyBookID.String(),
			MyBookTitle:    p.MyBookTitle,
			TheirBookID:    p.TheirBookID.String(),
			TheirBookTitle: p.TheirBookTitle,
			Score:          p.Score,
			Reasons:        p.Reasons,
		}
	}
	return &SuggestionResponse{
		ID:            v.ID.String(),
		MemberID:      v.MemberID.String(),
		CandidateID:   v.CandidateID.String(),
		MatchScore:    v.MatchScore,
		MatchingBooks: v.MatchingBooks,
		Pairs:         pairs,
		IsViewed:      v.IsViewed,
		ViewedAt:      unixPtr(v.ViewedAt),
		ExpiresAt:     v.ExpiresAt.Unix(),
		CreatedAt:     v.CreatedAt.Unix(),
	}
}

type SuggestionListItemResponse struct {
	ID            string  `json:"id"`
	CandidateID   string  `json:"candidate_id"`
	MatchScore    float64 `json:"match_score"`
	MatchingBooks int32   `json:"matching_books"`
	IsViewed      bool    `json:"is_viewed"`
	ExpiresAt     int64   `json:"expires_at"`
	CreatedAt     int64   `json:"created_at"`
}

func FromSuggestionList(items []*queries.SuggestionListItem) []*SuggestionListItemResponse {
	res := make([]*SuggestionListItemResponse, len(items))
	for i, it := range items {
		res[i] = &SuggestionListItemResponse{
			ID:            it.ID.String(),
			CandidateID:   it.CandidateID.String(),
			MatchScore:    it.MatchScore,
			MatchingBooks: it.MatchingBooks,
			IsViewed:      it.IsViewed,
			ExpiresAt:     it.ExpiresAt.Unix(),
			CreatedAt:     it.CreatedAt.Unix(),
		}
	}
	return res
}

type GenerateSuggestionsResponse struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
}

func unixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	u := t.Unix()
	return &u
}
