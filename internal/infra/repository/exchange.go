package repository

import (
	"context"

	"bookswap/internal/domain/exchange"
	"bookswap/internal/infra"
	"bookswap/internal/infra/db"
	"bookswap/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ExchangeRepository struct{}

func NewExchangeRepository() *ExchangeRepository {
	return &ExchangeRepository{}
}

var exchangeColumns = []any{
	"id", "request_id", "member_a_id", "member_b_id", "status",
	"member_a_confirmed", "member_b_confirmed",
	"member_a_confirmed_at", "member_b_confirmed_at", "completed_at",
	"meeting_location", "meeting_lat", "meeting_lng", "meeting_time",
	"meeting_notes", "meeting_confirmed_by_a", "meeting_confirmed_by_b",
	"meeting_scheduled_by", "cancel_reason", "cancel_details",
	"version", "created_at", "updated_at",
}

func (r *ExchangeRepository) Create(ctx context.Context, dbtx db.DBTX, ex *exchange.Exchange) error {
	rec := exchangeRecord(ex)
	rec["id"] = pgconv.UUIDToPgtype(ex.ID())
	rec["request_id"] = pgconv.UUIDToPgtype(ex.RequestID())
	rec["member_a_id"] = pgconv.UUIDToPgtype(ex.MemberAID())
	rec["member_b_id"] = pgconv.UUIDToPgtype(ex.MemberBID())
	rec["created_at"] = pgconv.TimeToPgtype(ex.CreatedAt())

	sqlStr, args, err := dialect.Insert("exchanges").Prepared(true).Rows(rec).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build exchange insert", err)
	}
	if _, err = dbtx.Exec(ctx, sqlStr, args...); err != nil {
		return infra.WrapRepoErr("failed to insert exchange", err)
	}

	rows := make([]any, 0, len(ex.Books()))
	for _, t := range ex.Books() {
		rows = append(rows, goqu.Record{
			"exchange_id":    pgconv.UUIDToPgtype(ex.ID()),
			"book_id":        pgconv.UUIDToPgtype(t.BookID),
			"from_member_id": pgconv.UUIDToPgtype(t.FromMemberID),
			"to_member_id":   pgconv.UUIDToPgtype(t.ToMemberID),
			"sort_order":     t.SortOrder,
		})
	}
	sqlStr, args, err = dialect.Insert("exchange_books").Prepared(true).Rows(rows...).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build exchange books insert", err)
	}
	if _, err = dbtx.Exec(ctx, sqlStr, args...); err != nil {
		return infra.WrapRepoErr("failed to insert exchange books", err)
	}
	return nil
}

func (r *ExchangeRepository) GetForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*exchange.Exchange, error) {
	sqlStr, args, err := dialect.From("exchanges").Prepared(true).
		Select(exchangeColumns...).
		Where(goqu.Ex{"id": pgconv.UUIDToPgtype(id)}).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build exchange lock query", err)
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
		version                                int64
		createdAt, updatedAt                   pgtype.Timestamptz
	)
	err = dbtx.QueryRow(ctx, sqlStr, args...).Scan(
		&rowID, &requestID, &memberAID, &memberBID, &status,
		&memberAConfirmed, &memberBConfirmed,
		&memberAConfirmedAt, &memberBConfirmedAt, &completedAt,
		&meetingLocation, &meetingLat, &meetingLng, &meetingTime,
		&meetingNotes, &meetingConfirmedByA, &meetingConfirmedByB,
		&meetingScheduledBy, &cancelReason, &cancelDetails,
		&version, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("exchange not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock exchange", err)
	}

	books, err := r.loadBooks(ctx, dbtx, id)
	if err != nil {
		return nil, err
	}

	st, err := exchange.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt exchange status", err)
	}

	var meeting *exchange.Meeting
	if meetingLocation.Valid {
		var coords *exchange.Coordinates
		if meetingLat.Valid && meetingLng.Valid {
			coords = &exchange.Coordinates{Lat: meetingLat.Float64, Lng: meetingLng.Float64}
		}
		meeting = exchange.ReconstructMeeting(
			meetingLocation.String,
			coords,
			pgconv.TimeFromPgtype(meetingTime),
			meetingNotes.String,
			meetingConfirmedByA,
			meetingConfirmedByB,
			uuid.UUID(meetingScheduledBy.Bytes),
		)
	}

	var cancellation *exchange.Cancellation
	if cancelReason.Valid {
		reason, rerr := exchange.NewCancelReason(cancelReason.String)
		if rerr != nil {
			return nil, infra.WrapRepoErr("corrupt cancel reason", rerr)
		}
		cancellation = &exchange.Cancellation{Reason: reason, Details: cancelDetails.String}
	}

	return exchange.Reconstruct(
		uuid.UUID(rowID.Bytes),
		uuid.UUID(requestID.Bytes),
		uuid.UUID(memberAID.Bytes),
		uuid.UUID(memberBID.Bytes),
		st,
		memberAConfirmed, memberBConfirmed,
		pgconv.TimePtrFromPgtype(memberAConfirmedAt),
		pgconv.TimePtrFromPgtype(memberBConfirmedAt),
		pgconv.TimePtrFromPgtype(completedAt),
		meeting,
		cancellation,
		books,
		version,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *ExchangeRepository) loadBooks(ctx context.Context, dbtx db.DBTX, exchangeID uuid.UUID) ([]exchange.BookTransfer, error) {
	sqlStr, args, err := dialect.From("exchange_books").Prepared(true).
		Select("book_id", "from_member_id", "to_member_id", "sort_order").
		Where(goqu.Ex{"exchange_id": pgconv.UUIDToPgtype(exchangeID)}).
		Order(goqu.I("sort_order").Asc()).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build exchange books query", err)
	}

	rows, err := dbtx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load exchange books", err)
	}
	defer rows.Close()

	var transfers []exchange.BookTransfer
	for rows.Next() {
		var (
			bookID, fromID, toID pgtype.UUID
			sortOrder            int
		)
		if err := rows.Scan(&bookID, &fromID, &toID, &sortOrder); err != nil {
			return nil, infra.WrapRepoErr("failed to scan exchange book", err)
		}
		transfers = append(transfers, exchange.BookTransfer{
			BookID:       uuid.UUID(bookID.Bytes),
			FromMemberID: uuid.UUID(fromID.Bytes),
			ToMemberID:   uuid.UUID(toID.Bytes),
			SortOrder:    sortOrder,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate exchange books", err)
	}
	return transfers, nil
}

// Update writes every mutable column guarded by the version the caller
// loaded. Zero rows affected means a concurrent writer got there first.
func (r *ExchangeRepository) Update(ctx context.Context, dbtx db.DBTX, ex *exchange.Exchange, expectedVersion int64) error {
	sqlStr, args, err := dialect.Update("exchanges").Prepared(true).
		Set(exchangeRecord(ex)).
		Where(goqu.Ex{
			"id":      pgconv.UUIDToPgtype(ex.ID()),
			"version": expectedVersion,
		}).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build exchange update", err)
	}

	tag, err := dbtx.Exec(ctx, sqlStr, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update exchange", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("exchange version mismatch", nil, infra.KindConflict)
	}
	return nil
}

// exchangeRecord maps the mutable columns of an exchange row.
func exchangeRecord(ex *exchange.Exchange) goqu.Record {
	rec := goqu.Record{
		"status":                 ex.Status().String(),
		"member_a_confirmed":     ex.MemberAConfirmed(),
		"member_b_confirmed":     ex.MemberBConfirmed(),
		"member_a_confirmed_at":  pgconv.TimePtrToPgtype(ex.MemberAConfirmedAt()),
		"member_b_confirmed_at":  pgconv.TimePtrToPgtype(ex.MemberBConfirmedAt()),
		"completed_at":           pgconv.TimePtrToPgtype(ex.CompletedAt()),
		"meeting_location":       pgtype.Text{},
		"meeting_lat":            pgtype.Float8{},
		"meeting_lng":            pgtype.Float8{},
		"meeting_time":           pgtype.Timestamptz{},
		"meeting_notes":          pgtype.Text{},
		"meeting_confirmed_by_a": false,
		"meeting_confirmed_by_b": false,
		"meeting_scheduled_by":   pgtype.UUID{},
		"cancel_reason":          pgtype.Text{},
		"cancel_details":         pgtype.Text{},
		"version":                ex.Version(),
		"updated_at":             pgconv.TimeToPgtype(ex.UpdatedAt()),
	}

	if m := ex.Meeting(); m != nil {
		rec["meeting_location"] = pgconv.StringToPgtype(m.Location())
		if c := m.Coordinates(); c != nil {
			rec["meeting_lat"] = pgtype.Float8{Float64: c.Lat, Valid: true}
			rec["meeting_lng"] = pgtype.Float8{Float64: c.Lng, Valid: true}
		}
		rec["meeting_time"] = pgconv.TimeToPgtype(m.Time())
		rec["meeting_notes"] = pgconv.StringToPgtype(m.Notes())
		rec["meeting_confirmed_by_a"] = m.ConfirmedByA()
		rec["meeting_confirmed_by_b"] = m.ConfirmedByB()
		rec["meeting_scheduled_by"] = pgconv.UUIDToPgtype(m.ScheduledBy())
	}
	if c := ex.Cancellation(); c != nil {
		rec["cancel_reason"] = pgconv.StringToPgtype(c.Reason.String())
		rec["cancel_details"] = pgconv.StringToPgtype(c.Details)
	}
	return rec
}
