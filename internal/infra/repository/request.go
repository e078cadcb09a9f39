package repository

import (
	"context"

	"bookswap/internal/domain/request"
	"bookswap/internal/infra"
	"bookswap/internal/infra/db"
	"bookswap/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RequestRepository struct{}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{}
}

func (r *RequestRepository) Create(ctx context.Context, dbtx db.DBTX, req *request.Request) error {
	sqlStr, args, err := dialect.Insert("exchange_requests").Prepared(true).Rows(goqu.Record{
		"id":               pgconv.UUIDToPgtype(req.ID()),
		"requester_id":     pgconv.UUIDToPgtype(req.RequesterID()),
		"receiver_id":      pgconv.UUIDToPgtype(req.ReceiverID()),
		"status":           req.Status().String(),
		"message":          req.Message(),
		"rejection_reason": pgconv.StringPtrToPgtype(req.RejectionReason()),
		"responded_at":     pgconv.TimePtrToPgtype(req.RespondedAt()),
		"created_at":       pgconv.TimeToPgtype(req.CreatedAt()),
		"updated_at":       pgconv.TimeToPgtype(req.UpdatedAt()),
	}).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build request insert", err)
	}
	if _, err = dbtx.Exec(ctx, sqlStr, args...); err != nil {
		return infra.WrapRepoErr("failed to insert request", err)
	}

	rows := make([]any, 0, len(req.Books()))
	for i, line := range req.Books() {
		rows = append(rows, goqu.Record{
			"request_id": pgconv.UUIDToPgtype(req.ID()),
			"book_id":    pgconv.UUIDToPgtype(line.BookID),
			"owner_id":   pgconv.UUIDToPgtype(line.OwnerID),
			"role":       string(line.Role),
			"sort_order": i,
		})
	}
	sqlStr, args, err = dialect.Insert("request_books").Prepared(true).Rows(rows...).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build request books insert", err)
	}
	if _, err = dbtx.Exec(ctx, sqlStr, args...); err != nil {
		return infra.WrapRepoErr("failed to insert request books", err)
	}
	return nil
}

func (r *RequestRepository) GetForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*request.Request, error) {
	sqlStr, args, err := dialect.From("exchange_requests").Prepared(true).
		Select("id", "requester_id", "receiver_id", "status", "message",
			"rejection_reason", "responded_at", "created_at", "updated_at").
		Where(goqu.Ex{"id": pgconv.UUIDToPgtype(id)}).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request lock query", err)
	}

	var (
		rowID, requesterID, receiverID pgtype.UUID
		status, message                string
		rejectionReason                pgtype.Text
		respondedAt                    pgtype.Timestamptz
		createdAt, updatedAt           pgtype.Timestamptz
	)
	err = dbtx.QueryRow(ctx, sqlStr, args...).Scan(
		&rowID, &requesterID, &receiverID, &status, &message,
		&rejectionReason, &respondedAt, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock request", err)
	}

	books, err := r.loadBooks(ctx, dbtx, id)
	if err != nil {
		return nil, err
	}

	st, err := request.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt request status", err)
	}

	return request.ReconstructRequest(
		uuid.UUID(rowID.Bytes),
		uuid.UUID(requesterID.Bytes),
		uuid.UUID(receiverID.Bytes),
		st,
		message,
		pgconv.StringPtrFromPgtype(rejectionReason),
		books,
		pgconv.TimePtrFromPgtype(respondedAt),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *RequestRepository) loadBooks(ctx context.Context, dbtx db.DBTX, requestID uuid.UUID) ([]request.BookLine, error) {
	sqlStr, args, err := dialect.From("request_books").Prepared(true).
		Select("book_id", "owner_id", "role").
		Where(goqu.Ex{"request_id": pgconv.UUIDToPgtype(requestID)}).
		Order(goqu.I("sort_order").Asc()).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request books query", err)
	}

	rows, err := dbtx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load request books", err)
	}
	defer rows.Close()

	var lines []request.BookLine
	for rows.Next() {
		var (
			bookID, ownerID pgtype.UUID
			role            string
		)
		if err := rows.Scan(&bookID, &ownerID, &role); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request book", err)
		}
		lines = append(lines, request.BookLine{
			BookID:  uuid.UUID(bookID.Bytes),
			OwnerID: uuid.UUID(ownerID.Bytes),
			Role:    request.BookRole(role),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request books", err)
	}
	return lines, nil
}

// UpdateStatus writes the response-cycle columns; book lines are immutable
// after creation.
func (r *RequestRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, req *request.Request) error {
	sqlStr, args, err := dialect.Update("exchange_requests").Prepared(true).
		Set(goqu.Record{
			"status":           req.Status().String(),
			"rejection_reason": pgconv.StringPtrToPgtype(req.RejectionReason()),
			"responded_at":     pgconv.TimePtrToPgtype(req.RespondedAt()),
			"updated_at":       pgconv.TimeToPgtype(req.UpdatedAt()),
		}).
		Where(goqu.Ex{"id": pgconv.UUIDToPgtype(req.ID())}).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build request update", err)
	}

	tag, err := dbtx.Exec(ctx, sqlStr, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("request vanished during update", nil, infra.KindNotFound)
	}
	return nil
}
