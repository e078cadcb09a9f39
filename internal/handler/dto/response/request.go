package response

import (
	"bookswap/internal/usecase/queries"
)

type RequestBookResponse struct {
	BookID  string `json:"book_id"`
	OwnerID string `json:"owner_id"`
	Role    string `json:"role"`
	Title   string `json:"title"`
	Author  string `json:"author"`
}

type RequestResponse struct {
	ID              string                `json:"id"`
	RequesterID     string                `json:"requester_id"`
	ReceiverID      string                `json:"receiver_id"`
	Status          string                `json:"status"`
	Message         string                `json:"message"`
	RejectionReason *string               `json:"rejection_reason,omitempty"`
	Books           []RequestBookResponse `json:"books"`
	ExchangeID      *string               `json:"exchange_id,omitempty"`
	RespondedAt     *int64                `json:"responded_at,omitempty"`
	CreatedAt       int64                 `json:"created_at"`
	UpdatedAt       int64                 `json:"updated_at"`
}

func FromRequestView(v *queries.RequestView) *RequestResponse {
	books := make([]RequestBookResponse, len(v.Books))
	for i, b := range v.Books {
		books[i] = RequestBookResponse{
			BookID:  b.BookID.String(),
			OwnerID: b.OwnerID.String(),
			Role:    b.Role,
			Title:   b.Title,
			Author:  b.Author,
		}
	}

	resp := &RequestResponse{
		ID:              v.ID.String(),
		RequesterID:     v.RequesterID.String(),
		ReceiverID:      v.ReceiverID.String(),
		Status:          v.Status,
		Message:         v.Message,
		RejectionReason: v.RejectionReason,
		Books:           books,
		CreatedAt:       v.CreatedAt.Unix(),
		UpdatedAt:       v.UpdatedAt.Unix(),
	}
	if v.ExchangeID != nil {
		id := v.ExchangeID.String()
		resp.ExchangeID = &id
	}
	if v.RespondedAt != nil {
		t := v.RespondedAt.Unix()
		resp.RespondedAt = &t
	}
	return resp
}

type RequestListItemResponse struct {
	ID          string `json:"id"`
	RequesterID string `json:"requester_id"`
	ReceiverID  string `json:"receiver_id"`
	Status      string `json:"status"`
	BookCount   int32  `json:"book_count"`
	CreatedAt   int64  `json:"created_at"`
}

type RequestListResponse struct {
	Items      []*RequestListItemResponse `json:"items"`
	NextCursor string                     `json:"next_cursor,omitempty"`
}

func FromRequestList(items []*queries.RequestListItem, next *queries.Cursor) *RequestListResponse {
	res := make([]*RequestListItemResponse, len(items))
	for i, it := range items {
		res[i] = &RequestListItemResponse{
			ID:          it.ID.String(),
			RequesterID: it.RequesterID.String(),
			ReceiverID:  it.ReceiverID.String(),
			Status:      it.Status,
			BookCount:   it.BookCount,
			CreatedAt:   it.CreatedAt.Unix(),
		}
	}
	out := &RequestListResponse{Items: res}
	if next != nil {
		out.NextCursor = next.After
	}
	return out
}
