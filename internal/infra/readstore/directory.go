package readstore

import (
	"context"

	"bookswap/internal/infra"
	"bookswap/internal/infra/db"
	"bookswap/internal/pkg/pgconv"
	"bookswap/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// candidateScanLimit caps how many members one generation pass evaluates.
const candidateScanLimit = 200

// DirectoryReadStore serves the member/book/want directory, which this
// core reads but never writes.
type DirectoryReadStore struct {
	dbtx db.DBTX
}

func NewDirectoryReadStore(dbtx db.DBTX) *DirectoryReadStore {
	return &DirectoryReadStore{dbtx: dbtx}
}

func (s *DirectoryReadStore) MemberByID(ctx context.Context, id uuid.UUID) (*shared.MemberSnapshot, error) {
	sqlStr, args, err := dialect.From("members").Prepared(true).
		Select("id", "region", "trust_score", "average_rating",
			"completed_exchanges", "verified", "role", "last_active_at").
		Where(goqu.Ex{"id": pgconv.UUIDToPgtype(id)}).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build member query", err)
	}

	var (
		rowID              pgtype.UUID
		region, role       string
		trustScore         float64
		averageRating      float64
		completedExchanges int
		verified           bool
		lastActiveAt       pgtype.Timestamptz
	)
	err = s.dbtx.QueryRow(ctx, sqlStr, args...).Scan(
		&rowID, &region, &trustScore, &averageRating,
		&completedExchanges, &verified, &role, &lastActiveAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("member not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load member", err)
	}

	return &shared.MemberSnapshot{
		ID:                 uuid.UUID(rowID.Bytes),
		Region:             region,
		TrustScore:         trustScore,
		AverageRating:      averageRating,
		CompletedExchanges: completedExchanges,
		Verified:           verified,
		IsAdmin:            role == "admin",
		LastActiveAt:       pgconv.TimeFromPgtype(lastActiveAt),
	}, nil
}

func (s *DirectoryReadStore) BooksByIDs(ctx context.Context, ids []uuid.UUID) ([]shared.BookSnapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	pgIDs := make([]any, 0, len(ids))
	for _, id := range ids {
		pgIDs = append(pgIDs, pgconv.UUIDToPgtype(id))
	}

	sqlStr, args, err := dialect.From("books").Prepared(true).
		Select("id", "owner_id", "title", "author", "isbn", "category", "condition", "available").
		Where(goqu.C("id").In(pgIDs...)).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build books query", err)
	}
	return s.scanBooks(ctx, sqlStr, args)
}

func (s *DirectoryReadStore) AvailableBooksOf(ctx context.Context, memberID uuid.UUID) ([]shared.BookSnapshot, error) {
	sqlStr, args, err := dialect.From("books").Prepared(true).
		Select("id", "owner_id", "title", "author", "isbn", "category", "condition", "available").
		Where(goqu.Ex{
			"owner_id":  pgconv.UUIDToPgtype(memberID),
			"available": true,
		}).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build available books query", err)
	}
	return s.scanBooks(ctx, sqlStr, args)
}

func (s *DirectoryReadStore) scanBooks(ctx context.Context, sqlStr string, args []any) ([]shared.BookSnapshot, error) {
	rows, err := s.dbtx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load books", err)
	}
	defer rows.Close()

	var books []shared.BookSnapshot
	for rows.Next() {
		var (
			id, ownerID         pgtype.UUID
			title, author, isbn string
			category, condition string
			available           bool
		)
		if err := rows.Scan(&id, &ownerID, &title, &author, &isbn, &category, &condition, &available); err != nil {
			return nil, infra.WrapRepoErr("failed to scan book", err)
		}
		books = append(books, shared.BookSnapshot{
			ID:        uuid.UUID(id.Bytes),
			OwnerID:   uuid.UUID(ownerID.Bytes),
			Title:     title,
			Author:    author,
			ISBN:      isbn,
			Category:  category,
			Condition: condition,
			Available: available,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate books", err)
	}
	return books, nil
}

func (s *DirectoryReadStore) WantsOf(ctx context.Context, memberID uuid.UUID) ([]shared.WantSnapshot, error) {
	sqlStr, args, err := dialect.From("want_list").Prepared(true).
		Select("member_id", "title", "author", "isbn", "category", "priority").
		Where(goqu.Ex{"member_id": pgconv.UUIDToPgtype(memberID)}).
		Order(goqu.I("priority").Desc()).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build wants query", err)
	}

	rows, err := s.dbtx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load wants", err)
	}
	defer rows.Close()

	var wants []shared.WantSnapshot
	for rows.Next() {
		var (
			mID                           pgtype.UUID
			title, author, isbn, category string
			priority                      int
		)
		if err := rows.Scan(&mID, &title, &author, &isbn, &category, &priority); err != nil {
			return nil, infra.WrapRepoErr("failed to scan want", err)
		}
		wants = append(wants, shared.WantSnapshot{
			MemberID: uuid.UUID(mID.Bytes),
			Title:    title,
			Author:   author,
			ISBN:     isbn,
			Category: category,
			Priority: priority,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate wants", err)
	}
	return wants, nil
}

// CandidatesFor pre-filters the directory to members who could plausibly
// pair with the subject: anyone else with at least one available book and
// at least one want entry, most recently active first. Mutual-interest
// filtering happens in the scoring pass.
func (s *DirectoryReadStore) CandidatesFor(ctx context.Context, subjectID uuid.UUID) ([]uuid.UUID, error) {
	sqlStr, args, err := dialect.From(goqu.T("members").As("m")).Prepared(true).
		Select(goqu.I("m.id")).
		Where(
			goqu.I("m.id").Neq(pgconv.UUIDToPgtype(subjectID)),
			goqu.L("EXISTS (SELECT 1 FROM books b WHERE b.owner_id = m.id AND b.available)"),
			goqu.L("EXISTS (SELECT 1 FROM want_list w WHERE w.member_id = m.id)"),
		).
		Order(goqu.I("m.last_active_at").Desc()).
		Limit(candidateScanLimit).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build candidates query", err)
	}

	rows, err := s.dbtx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load candidates", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan candidate", err)
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate candidates", err)
	}
	return ids, nil
}
