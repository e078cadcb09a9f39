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

type ExchangeReadStore struct {
	dbtx db.DBTX
}

func NewExchangeReadStore(dbtx db.DBTX) *ExchangeReadStore {
	return &ExchangeReadStore{dbtx: dbtx}
}

func (s *ExchangeReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ExchangeView, error) {
	sqlStr, args, err := dialect.From("exchanges").Prepared(true).
		Select("id", "request_id", "member_a_id", "member_b_id", "status",
			"member_a_confirmed", "member_b_confirmed",
			"member_a_confirmed_at", "member_b_confirmed_at", "completed_at",
			"meeting_location", "meeting_lat", "meeting_lng", "meeting_time",
			"meeting_notes", "meeting_confirmed_by_a", "meeting_confirmed_by_b",
			"meeting_scheduled_by", "cancel_reason", "cancel_details",
			"created_at", "updated_at").
		Where(goqu.Ex{"id": pgconv.UUIDToPgtype(id)}).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build exchange view query", err)
	}

	var (
		rowID, requestID, memberAID, memberBID pgtype.UUID
		status                                 string
		memberAConfirmed, memberBConfirmed     bool
		memberAConfirmedAt                     pgtype.Timestamptz
		memberBConfirmedAt                     pgtype.Timestamptz
		completedAt                            pgtype.Timestamptz
		meetingLocation, meetingNotes          pgtype.Text
		meetingLat, meetingLng                 pgtype.Float8
		meetingTime                            pgtype.Timestamptz
		meetingConfirmedByA                    bool
		meetingConfirmedByB                    bool
		meetingScheduledBy                     pgtype.UUID
		cancelReason, cancelDetails            pgtype.Text
		createdAt, updatedAt                   pgtype.Timestamptz
	)
	err = s.dbtx.QueryRow(ctx, sqlStr, args...).Scan(
		&rowID, &requestID, &memberAID, &memberBID, &status,
		&memberAConfirmed, &memberBConfirmed,
		&memberAConfirmedAt, &memberBConfirmedAt, &completedAt,
		&meetingLocation, &meetingLat, &meetingLng, &meetingTime,
		&meetingNotes, &meetingConfirmedByA, &meetingConfirmedByB,
		&meetingScheduledBy, &cancelReason, &cancelDetails,
		&createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("exchange not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load exchange view", err)
	}

	books, err := s.loadBooks(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &queries.ExchangeView{
		ID:                 uuid.UUID(rowID.Bytes),
		RequestID:          uuid.UUID(requestID.Bytes),
		MemberAID:          uuid.UUID(memberAID.Bytes),
		MemberBID:          uuid.UUID(memberBID.Bytes),
		Status:             status,
		MemberAConfirmed:   memberAConfirmed,
		MemberBConfirmed:   memberBConfirmed,
		MemberAConfirmedAt: pgconv.TimePtrFromPgtype(memberAConfirmedAt),
		MemberBConfirmedAt: pgconv.TimePtrFromPgtype(memberBConfirmedAt),
		CompletedAt:        pgconv.TimePtrFromPgtype(completedAt),
		Books:              books,
		CreatedAt:          pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:          pgconv.TimeFromPgtype(updatedAt),
	}

	if meetingLocation.Valid {
		view.Meeting = &queries.MeetingView{
			Location:     meetingLocation.String,
			Lat:          pgconv.Float64PtrFromPgtype(meetingLat),
			Lng:          pgconv.Float64PtrFromPgtype(meetingLng),
			Time:         pgconv.TimeFromPgtype(meetingTime),
			Notes:        meetingNotes.String,
			ConfirmedByA: meetingConfirmedByA,
			ConfirmedByB: meetingConfirmedByB,
			ScheduledBy:  uuid.UUID(meetingScheduledBy.Bytes),
		}
	}
	if cancelReason.Valid {
		view.Cancellation = &queries.CancellationView{
			Reason:  cancelReason.String,
			Details: cancelDetails.String,
		}
	}
	return view, nil
}

func (s *ExchangeReadStore) loadBooks(ctx context.Context, exchangeID uuid.UUID) ([]queries.BookTransferView, error) {
	sqlStr, args, err := dialect.From(goqu.T("exchange_books").As("eb")).Prepared(true).
		Select(
			goqu.I("eb.book_id"), goqu.I("eb.from_member_id"),
			goqu.I("eb.to_member_id"), goqu.I("b.title"),
		).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("eb.book_id")))).
		Where(goqu.I("eb.exchange_id").Eq(pgconv.UUIDToPgtype(exchangeID))).
		Order(goqu.I("eb.sort_order").Asc()).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build transfer views query", err)
	}

	rows, err := s.dbtx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load transfer views", err)
	}
	defer rows.Close()

	var books []queries.BookTransferView
	for rows.Next() {
		var (
			bookID, fromID, toID pgtype.UUID
			title                string
		)
		if err := rows.Scan(&bookID, &fromID, &toID, &title); err != nil {
			return nil, infra.WrapRepoErr("failed to scan transfer view", err)
		}
		books = append(books, queries.BookTransferView{
			BookID:       uuid.UUID(bookID.Bytes),
			FromMemberID: uuid.UUID(fromID.Bytes),
			ToMemberID:   uuid.UUID(toID.Bytes),
			Title:        title,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate transfer views", err)
	}
	return books, nil
}

func (s *ExchangeReadStore) FindForMemberFirstPage(ctx context.Context, memberID uuid.UUID, filters queries.ExchangeFilters, limit int32) ([]*queries.ExchangeListItem, error) {
	ds := s.listDataset(memberID, filters).Limit(uint(limit))
	return s.scanList(ctx, ds)
}

func (s *ExchangeReadStore) FindForMemberKeyset(ctx context.Context, memberID uuid.UUID, filters queries.ExchangeFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ExchangeListItem, error) {
	ds := s.listDataset(memberID, filters).
		Where(goqu.L("(e.created_at, e.id) < (?, ?)",
			pgconv.TimeToPgtype(lastCreatedAt), pgconv.UUIDToPgtype(lastID))).
		Limit(uint(limit))
	return s.scanList(ctx, ds)
}

func (s *ExchangeReadStore) listDataset(memberID uuid.UUID, filters queries.ExchangeFilters) *goqu.SelectDataset {
	ds := dialect.From(goqu.T("exchanges").As("e")).Prepared(true).
		Select(
			goqu.I("e.id"), goqu.I("e.member_a_id"), goqu.I("e.member_b_id"),
			goqu.I("e.status"), goqu.I("e.meeting_time"),
			goqu.L("(SELECT COUNT(*) FROM exchange_books eb WHERE eb.exchange_id = e.id)").As("book_count"),
			goqu.I("e.created_at"),
		).
		Where(goqu.Or(
			goqu.I("e.member_a_id").Eq(pgconv.UUIDToPgtype(memberID)),
			goqu.I("e.member_b_id").Eq(pgconv.UUIDToPgtype(memberID)),
		)).
		Order(goqu.I("e.created_at").Desc(), goqu.I("e.id").Desc())

	if filters.Status != nil {
		ds = ds.Where(goqu.I("e.status").Eq(*filters.Status))
	}
	return ds
}

func (s *ExchangeReadStore) scanList(ctx context.Context, ds *goqu.SelectDataset) ([]*queries.ExchangeListItem, error) {
	sqlStr, args, err := ds.ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build exchange list query", err)
	}

	rows, err := s.dbtx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load exchange list", err)
	}
	defer rows.Close()

	var items []*queries.ExchangeListItem
	for rows.Next() {
		var (
			id, memberAID, memberBID pgtype.UUID
			status                   string
			meetingTime              pgtype.Timestamptz
			bookCount                int32
			createdAt                pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &memberAID, &memberBID, &status, &meetingTime, &bookCount, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan exchange list item", err)
		}
		items = append(items, &queries.ExchangeListItem{
			ID:          uuid.UUID(id.Bytes),
			MemberAID:   uuid.UUID(memberAID.Bytes),
			MemberBID:   uuid.UUID(memberBID.Bytes),
			Status:      status,
			MeetingTime: pgconv.TimePtrFromPgtype(meetingTime),
			BookCount:   bookCount,
			CreatedAt:   pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate exchange list", err)
	}
	return items, nil
}
