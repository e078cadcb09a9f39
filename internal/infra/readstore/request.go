package readstore

import (
	"context"
	"time"

	"bookswap/internal/infra"
	"bookswap/internal/infra/db"
	"bookswap/internal/pkg/pgconv"
	"bookswap/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RequestReadStore struct {
	dbtx db.DBTX
}

func NewRequestReadStore(dbtx db.DBTX) *RequestReadStore {
	return &RequestReadStore{dbtx: dbtx}
}

func (s *RequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	sqlStr, args, err := dialect.From(goqu.T("exchange_requests").As("r")).Prepared(true).
		Select(
			goqu.I("r.id"), goqu.I("r.requester_id"), goqu.I("r.receiver_id"),
			goqu.I("r.status"), goqu.I("r.message"), goqu.I("r.rejection_reason"),
			goqu.I("r.responded_at"), goqu.I("r.created_at"), goqu.I("r.updated_at"),
			goqu.I("e.id").As("exchange_id"),
		).
		LeftJoin(goqu.T("exchanges").As("e"), goqu.On(goqu.I("e.request_id").Eq(goqu.I("r.id")))).
		Where(goqu.I("r.id").Eq(pgconv.UUIDToPgtype(id))).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request view query", err)
	}

	var (
		rowID, requesterID, receiverID pgtype.UUID
		status, message                string
		rejectionReason                pgtype.Text
		respondedAt                    pgtype.Timestamptz
		createdAt, updatedAt           pgtype.Timestamptz
		exchangeID                     pgtype.UUID
	)
	err = s.dbtx.QueryRow(ctx, sqlStr, args...).Scan(
		&rowID, &requesterID, &receiverID, &status, &message,
		&rejectionReason, &respondedAt, &createdAt, &updatedAt, &exchangeID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load request view", err)
	}

	books, err := s.loadBooks(ctx, id)
	if err != nil {
		return nil, err
	}

	return &queries.RequestView{
		ID:              uuid.UUID(rowID.Bytes),
		RequesterID:     uuid.UUID(requesterID.Bytes),
		ReceiverID:      uuid.UUID(receiverID.Bytes),
		Status:          status,
		Message:         message,
		RejectionReason: pgconv.StringPtrFromPgtype(rejectionReason),
		Books:           books,
		ExchangeID:      pgconv.UUIDPtrFromPgtype(exchangeID),
		RespondedAt:     pgconv.TimePtrFromPgtype(respondedAt),
		CreatedAt:       pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:       pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

func (s *RequestReadStore) loadBooks(ctx context.Context, requestID uuid.UUID) ([]queries.RequestBookView, error) {
	sqlStr, args, err := dialect.From(goqu.T("request_books").As("rb")).Prepared(true).
		Select(
			goqu.I("rb.book_id"), goqu.I("rb.owner_id"), goqu.I("rb.role"),
			goqu.I("b.title"), goqu.I("b.author"),
		).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("rb.book_id")))).
		Where(goqu.I("rb.request_id").Eq(pgconv.UUIDToPgtype(requestID))).
		Order(goqu.I("rb.sort_order").Asc()).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request book views query", err)
	}

	rows, err := s.dbtx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load request book views", err)
	}
	defer rows.Close()

	var books []queries.RequestBookView
	for rows.Next() {
		var (
			bookID, ownerID     pgtype.UUID
			role, title, author string
		)
		if err := rows.Scan(&bookID, &ownerID, &role, &title, &author); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request book view", err)
		}
		books = append(books, queries.RequestBookView{
			BookID:  uuid.UUID(bookID.Bytes),
			OwnerID: uuid.UUID(ownerID.Bytes),
			Role:    role,
			Title:   title,
			Author:  author,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request book views", err)
	}
	return books, nil
}

func (s *RequestReadStore) FindForMemberFirstPage(ctx context.Context, memberID uuid.UUID, filters queries.RequestFilters, limit int32) ([]*queries.RequestListItem, error) {
	ds := s.listDataset(memberID, filters).Limit(uint(limit))
	return s.scanList(ctx, ds)
}

func (s *RequestReadStore) FindForMemberKeyset(ctx context.Context, memberID uuid.UUID, filters queries.RequestFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.RequestListItem, error) {
	ds := s.listDataset(memberID, filters).
		Where(goqu.L("(r.created_at, r.id) < (?, ?)",
			pgconv.TimeToPgtype(lastCreatedAt), pgconv.UUIDToPgtype(lastID))).
		Limit(uint(limit))
	return s.scanList(ctx, ds)
}

func (s *RequestReadStore) listDataset(memberID uuid.UUID, filters queries.RequestFilters) *goqu.SelectDataset {
	ds := dialect.From(goqu.T("exchange_requests").As("r")).Prepared(true).
		Select(
			goqu.I("r.id"), goqu.I("r.requester_id"), goqu.I("r.receiver_id"),
			goqu.I("r.status"),
			goqu.L("(SELECT COUNT(*) FROM request_books rb WHERE rb.request_id = r.id)").As("book_count"),
			goqu.I("r.created_at"),
		).
		Order(goqu.I("r.created_at").Desc(), goqu.I("r.id").Desc())

	switch filters.Direction {
	case queries.DirectionIncoming:
		ds = ds.Where(goqu.I("r.receiver_id").Eq(pgconv.UUIDToPgtype(memberID)))
	case queries.DirectionOutgoing:
		ds = ds.Where(goqu.I("r.requester_id").Eq(pgconv.UUIDToPgtype(memberID)))
	default:
		ds = ds.Where(goqu.Or(
			goqu.I("r.requester_id").Eq(pgconv.UUIDToPgtype(memberID)),
			goqu.I("r.receiver_id").Eq(pgconv.UUIDToPgtype(memberID)),
		))
	}
	if filters.Status != nil {
		ds = ds.Where(goqu.I("r.status").Eq(*filters.Status))
	}
	return ds
}

func (s *RequestReadStore) scanList(ctx context.Context, ds *goqu.SelectDataset) ([]*queries.RequestListItem, error) {
	sqlStr, args, err := ds.ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request list query", err)
	}

	rows, err := s.dbtx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load request list", err)
	}
	defer rows.Close()

	var items []*queries.RequestListItem
	for rows.Next() {
		var (
			id, requesterID, receiverID pgtype.UUID
			status                      string
			bookCount                   int32
			createdAt                   pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &requesterID, &receiverID, &status, &bookCount, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request list item", err)
		}
		items = append(items, &queries.RequestListItem{
			ID:          uuid.UUID(id.Bytes),
			RequesterID: uuid.UUID(requesterID.Bytes),
			ReceiverID:  uuid.UUID(receiverID.Bytes),
			Status:      status,
			BookCount:   bookCount,
			CreatedAt:   pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request list", err)
	}
	return items, nil
}
