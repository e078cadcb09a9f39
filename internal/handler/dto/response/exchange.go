package response

import (
	"bookswap/internal/usecase/queries"
)

type MeetingResponse struct {
	Location     string   `json:"location"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Time         int64    `json:"time"`
	Notes        string   `json:"notes,omitempty"`
	ConfirmedByA bool     `json:"confirmed_by_a"`
	ConfirmedByB bool     `json:"confirmed_by_b"`
	ScheduledBy  string   `json:"scheduled_by"`
}

type BookTransferResponse struct {
	BookID       string `json:"book_id"`
	FromMemberID string `json:"from_member_id"`
	ToMemberID   string `json:"to_member_id"`
	Title        string `json:"title"`
}

type CancellationResponse struct {
	Reason  string `json:"reason"`
	Details string `json:"details,omitempty"`
}

type ExchangeResponse struct {
	ID                 string                 `json:"id"`
	RequestID          string                 `json:"request_id"`
	MemberAID          string                 `json:"member_a_id"`
	MemberBID          string                 `json:"member_b_id"`
	Status             string                 `json:"status"`
	MemberAConfirmed   bool                   `json:"member_a_confirmed"`
	MemberBConfirmed   bool                   `json:"member_b_confirmed"`
	MemberAConfirmedAt *int64                 `json:"member_a_confirmed_at,omitempty"`
	MemberBConfirmedAt *int64                 `json:"member_b_confirmed_at,omitempty"`
	CompletedAt        *int64                 `json:"completed_at,omitempty"`
	Meeting            *MeetingResponse       `json:"meeting,omitempty"`
	Cancellation       *CancellationResponse  `json:"cancellation,omitempty"`
	Books              []BookTransferResponse `json:"books"`
	CreatedAt          int64                  `json:"created_at"`
	UpdatedAt          int64                  `json:"updated_at"`
}

func FromExchangeView(v *queries.ExchangeView) *ExchangeResponse {
	books := make([]BookTransferResponse, len(v.Books))
	for i, b := range v.Books {
		books[i] = BookTransferResponse{
			BookID:       b.BookID.String(),
			FromMemberID: b.FromMemberID.String(),
			ToMemberID:   b.ToMemberID.String(),
			Title:        b.Title,
		}
	}

	resp := &ExchangeResponse{
		ID:                 v.ID.String(),
		RequestID:          v.RequestID.String(),
		MemberAID:          v.MemberAID.String(),
		MemberBID:          v.MemberBID.String(),
		Status:             v.Status,
		MemberAConfirmed:   v.MemberAConfirmed,
		MemberBConfirmed:   v.MemberBConfirmed,
		MemberAConfirmedAt: unixPtr(v.MemberAConfirmedAt),
		MemberBConfirmedAt: unixPtr(v.MemberBConfirmedAt),
		CompletedAt:        unixPtr(v.CompletedAt),
		Books:              books,
		CreatedAt:          v.CreatedAt.Unix(),
		UpdatedAt:          v.UpdatedAt.Unix(),
	}
	if v.Meeting != nil {
		resp.Meeting = &MeetingResponse{
			Location:     v.Meeting.Location,
			Lat:          v.Meeting.Lat,
			Lng:          v.Meeting.Lng,
			Time:         v.Meeting.Time.Unix(),
			Notes:        v.Meeting.Notes,
			ConfirmedByA: v.Meeting.ConfirmedByA,
			ConfirmedByB: v.Meeting.ConfirmedByB,
			ScheduledBy:  v.Meeting.ScheduledBy.String(),
		}
	}
	if v.Cancellation != nil {
		resp.Cancellation = &CancellationResponse{
			Reason:  v.Cancellation.Reason,
			Details: v.Cancellation.Details,
		}
	}
	return resp
}

type ExchangeListItemResponse struct {
	ID          string `json:"id"`
	MemberAID   string `json:"member_a_id"`
	MemberBID   string `json:"member_b_id"`
	Status      string `json:"status"`
	MeetingTime *int64 `json:"meeting_time,omitempty"`
	BookCount   int32  `json:"book_count"`
	CreatedAt   int64  `json:"created_at"`
}

type ExchangeListResponse struct {
	Items      []*ExchangeListItemResponse `json:"items"`
	NextCursor string                      `json:"next_cursor,omitempty"`
}

func FromExchangeList(items []*queries.ExchangeListItem, next *queries.Cursor) *ExchangeListResponse {
	res := make([]*ExchangeListItemResponse, len(items))
	for i, it := range items {
		res[i] = &ExchangeListItemResponse{
			ID:          it.ID.String(),
			MemberAID:   it.MemberAID.String(),
			MemberBID:   it.MemberBID.String(),
			Status:      it.Status,
			MeetingTime: unixPtr(it.MeetingTime),
			BookCount:   it.BookCount,
			CreatedAt:   it.CreatedAt.Unix(),
		}
	}
	out := &ExchangeListResponse{Items: res}
	if next != nil {
		out.NextCursor = next.After
	}
	return out
}
