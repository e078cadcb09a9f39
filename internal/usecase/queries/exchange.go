package queries

import (
	"context"
	"time"

	"bookswap/internal/infra"

	"github.com/google/uuid"
)

type MeetingView struct {
	Location     string    `json:"location"`
	Lat          *float64  `json:"lat,omitempty"`
	Lng          *float64  `json:"lng,omitempty"`
	Time         time.Time `json:"time"`
	Notes        string    `json:"notes,omitempty"`
	ConfirmedByA bool      `json:"confirmed_by_a"`
	ConfirmedByB bool      `json:"confirmed_by_b"`
	ScheduledBy  uuid.UUID `json:"scheduled_by"`
}

type BookTransferView struct {
	BookID       uuid.UUID `json:"book_id"`
	FromMemberID uuid.UUID `json:"from_member_id"`
	ToMemberID   uuid.UUID `json:"to_member_id"`
	Title        string    `json:"title"`
}

type CancellationView struct {
	Reason  string `json:"reason"`
	Details string `json:"details,omitempty"`
}

type ExchangeView struct {
	ID                 uuid.UUID          `json:"id"`
	RequestID          uuid.UUID          `json:"request_id"`
	MemberAID          uuid.UUID          `json:"member_a_id"`
	MemberBID          uuid.UUID          `json:"member_b_id"`
	Status             string             `json:"status"`
	MemberAConfirmed   bool               `json:"member_a_confirmed"`
	MemberBConfirmed   bool               `json:"member_b_confirmed"`
	MemberAConfirmedAt *time.Time         `json:"member_a_confirmed_at,omitempty"`
	MemberBConfirmedAt *time.Time         `json:"member_b_confirmed_at,omitempty"`
	CompletedAt        *time.Time         `json:"completed_at,omitempty"`
	Meeting            *MeetingView       `json:"meeting,omitempty"`
	Cancellation       *CancellationView  `json:"cancellation,omitempty"`
	Books              []BookTransferView `json:"books"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type ExchangeListItem struct {
	ID          uuid.UUID  `json:"id"`
	MemberAID   uuid.UUID  `json:"member_a_id"`
	MemberBID   uuid.UUID  `json:"member_b_id"`
	Status      string     `json:"status"`
	MeetingTime *time.Time `json:"meeting_time,omitempty"`
	BookCount   int32      `json:"book_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ExchangeFilters struct {
	Status *string
}

type ExchangeReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExchangeView, error)
	FindForMemberFirstPage(ctx context.Context, memberID uuid.UUID, filters ExchangeFilters, limit int32) ([]*ExchangeListItem, error)
	FindForMemberKeyset(ctx context.Context, memberID uuid.UUID, filters ExchangeFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ExchangeListItem, error)
}

type ExchangeQueries interface {
	GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*ExchangeView, error)
	ListForMember(ctx context.Context, memberID uuid.UUID, filters ExchangeFilters, cursor *Cursor, limit int) ([]*ExchangeListItem, *Cursor, error)
}

type exchangeQueriesImpl struct {
	repo ExchangeReadStore
}

func NewExchangeQueries(repo ExchangeReadStore) ExchangeQueries {
	return &exchangeQueriesImpl{repo: repo}
}

func (q *exchangeQueriesImpl) GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*ExchangeView, error) {
	ev, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrExchangeNotFound
		}
		return nil, err
	}
	isParty := actorID == ev.MemberAID || actorID == ev.MemberBID
	if !canReadAsParty(actorRole, isParty) {
		return nil, ErrAccessDenied
	}
	return ev, nil
}

func (q *exchangeQueriesImpl) ListForMember(ctx context.Context, memberID uuid.UUID, filters ExchangeFilters, cursor *Cursor, limit int) ([]*ExchangeListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var (
		rows []*ExchangeListItem
		err  error
	)
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindForMemberFirstPage(ctx, memberID, filters, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindForMemberKeyset(ctx, memberID, filters, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
