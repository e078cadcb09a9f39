package queries

import (
	"context"
	"time"

	"bookswap/internal/infra"

	"github.com/google/uuid"
)

type RequestBookView struct {
	BookID  uuid.UUID `json:"book_id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Role    string    `json:"role"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
}

type RequestView struct {
	ID              uuid.UUID         `json:"id"`
	RequesterID     uuid.UUID         `json:"requester_id"`
	ReceiverID      uuid.UUID         `json:"receiver_id"`
	Status          string            `json:"status"`
	Message         string            `json:"message"`
	RejectionReason *string           `json:"rejection_reason,omitempty"`
	Books           []RequestBookView `json:"books"`
	ExchangeID      *uuid.UUID        `json:"exchange_id,omitempty"`
	RespondedAt     *time.Time        `json:"responded_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type RequestListItem struct {
	ID          uuid.UUID `json:"id"`
	RequesterID uuid.UUID `json:"requester_id"`
	ReceiverID  uuid.UUID `json:"receiver_id"`
	Status      string    `json:"status"`
	BookCount   int32     `json:"book_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// RequestDirection selects which side of the member's requests to list.
type RequestDirection string

const (
	DirectionIncoming RequestDirection = "incoming"
	DirectionOutgoing RequestDirection = "outgoing"
)

type RequestFilters struct {
	Direction RequestDirection
	Status    *string
}

type RequestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	FindForMemberFirstPage(ctx context.Context, memberID uuid.UUID, filters RequestFilters, limit int32) ([]*RequestListItem, error)
	FindForMemberKeyset(ctx context.Context, memberID uuid.UUID, filters RequestFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*RequestListItem, error)
}

type RequestQueries interface {
	GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*RequestView, error)
	ListForMember(ctx context.Context, memberID uuid.UUID, filters RequestFilters, cursor *Cursor, limit int) ([]*RequestListItem, *Cursor, error)
}

type requestQueriesImpl struct {
	repo RequestReadStore
}

func NewRequestQueries(repo RequestReadStore) RequestQueries {
	return &requestQueriesImpl{repo: repo}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*RequestView, error) {
	rv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	isParty := actorID == rv.RequesterID || actorID == rv.ReceiverID
	if !canReadAsParty(actorRole, isParty) {
		return nil, ErrAccessDenied
	}
	return rv, nil
}

func (q *requestQueriesImpl) ListForMember(ctx context.Context, memberID uuid.UUID, filters RequestFilters, cursor *Cursor, limit int) ([]*RequestListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var (
		rows []*RequestListItem
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
