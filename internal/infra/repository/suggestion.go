package repository

import (
	"context"

	"bookswap/internal/domain/suggestion"
	"bookswap/internal/infra"
	"bookswap/internal/infra/db"
	"bookswap/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type SuggestionRepository struct{}

func NewSuggestionRepository() *SuggestionRepository {
	return &SuggestionRepository{}
}

func (r *SuggestionRepository) Create(ctx context.Context, dbtx db.DBTX, s *suggestion.Suggestion) error {
	sqlStr, args, err := dialect.Insert("exchange_suggestions").Prepared(true).Rows(goqu.Record{
		"id":             pgconv.UUIDToPgtype(s.ID()),
		"member_id":      pgconv.UUIDToPgtype(s.MemberID()),
		"candidate_id":   pgconv.UUIDToPgtype(s.CandidateID()),
		"match_score":    s.MatchScore(),
		"matching_books": s.MatchingBooks(),
		"is_viewed":      s.IsViewed(),
		"viewed_at":      pgconv.TimePtrToPgtype(s.ViewedAt()),
		"expires_at":     pgconv.TimeToPgtype(s.ExpiresAt()),
		"created_at":     pgconv.TimeToPgtype(s.CreatedAt()),
	}).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build suggestion insert", err)
	}
	if _, err = dbtx.Exec(ctx, sqlStr, args...); err != nil {
		return infra.WrapRepoErr("failed to insert suggestion", err)
	}

	rows := make([]any, 0, len(s.Pairs()))
	for i, p := range s.Pairs() {
		reasons, merr := json.Marshal(p.Reasons)
		if merr != nil {
			return infra.WrapRepoErr("failed to marshal pair reasons", merr)
		}
		rows = append(rows, goqu.Record{
			"suggestion_id": pgconv.UUIDToPgtype(s.ID()),
			"my_book_id":    pgconv.UUIDToPgtype(p.MyBookID),
			"their_book_id": pgconv.UUIDToPgtype(p.TheirBookID),
			"score":         p.Score,
			"reasons":       string(reasons),
			"sort_order":    i,
		})
	}
	sqlStr, args, err = dialect.Insert("suggestion_book_pairs").Prepared(true).Rows(rows...).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build suggestion pairs insert", err)
	}
	if _, err = dbtx.Exec(ctx, sqlStr, args...); err != nil {
		return infra.WrapRepoErr("failed to insert suggestion pairs", err)
	}
	return nil
}

// DeleteForPair removes every suggestion for the pair and their pairs
// rows explicitly; the schema has no cascade to lean on. Viewed rows
// accumulate across view-and-regenerate cycles, so the delete is scoped
// to the pair rather than a single suggestion id.
func (r *SuggestionRepository) DeleteForPair(ctx context.Context, dbtx db.DBTX, memberID, candidateID uuid.UUID) error {
	pairFilter := goqu.Ex{
		"member_id":    pgconv.UUIDToPgtype(memberID),
		"candidate_id": pgconv.UUIDToPgtype(candidateID),
	}

	ids := dialect.From("exchange_suggestions").
		Select("id").
		Where(pairFilter)

	sqlStr, args, err := dialect.Delete("suggestion_book_pairs").Prepared(true).
		Where(goqu.C("suggestion_id").In(ids)).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build suggestion pairs delete", err)
	}
	if _, err = dbtx.Exec(ctx, sqlStr, args...); err != nil {
		return infra.WrapRepoErr("failed to delete suggestion pairs", err)
	}

	sqlStr, args, err = dialect.Delete("exchange_suggestions").Prepared(true).
		Where(pairFilter).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build suggestion delete", err)
	}
	if _, err = dbtx.Exec(ctx, sqlStr, args...); err != nil {
		return infra.WrapRepoErr("failed to delete suggestions", err)
	}
	return nil
}

func (r *SuggestionRepository) GetForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*suggestion.Suggestion, error) {
	sqlStr, args, err := dialect.From("exchange_suggestions").Prepared(true).
		Select("id", "member_id", "candidate_id", "match_score", "matching_books",
			"is_viewed", "viewed_at", "expires_at", "created_at").
		Where(goqu.Ex{"id": pgconv.UUIDToPgtype(id)}).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build suggestion lock query", err)
	}
	return r.scanSuggestion(ctx, dbtx, sqlStr, args)
}

// FindForPair loads the newest suggestion for a subject/candidate pair,
// regardless of viewed state. The partial unique index guarantees an
// unviewed live row, when one exists, is that newest row.
func (r *SuggestionRepository) FindForPair(ctx context.Context, dbtx db.DBTX, memberID, candidateID uuid.UUID) (*suggestion.Suggestion, error) {
	sqlStr, args, err := dialect.From("exchange_suggestions").Prepared(true).
		Select("id", "member_id", "candidate_id", "match_score", "matching_books",
			"is_viewed", "viewed_at", "expires_at", "created_at").
		Where(goqu.Ex{
			"member_id":    pgconv.UUIDToPgtype(memberID),
			"candidate_id": pgconv.UUIDToPgtype(candidateID),
		}).
		Order(goqu.I("created_at").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build suggestion pair query", err)
	}
	return r.scanSuggestion(ctx, dbtx, sqlStr, args)
}

func (r *SuggestionRepository) scanSuggestion(ctx context.Context, dbtx db.DBTX, sqlStr string, args []any) (*suggestion.Suggestion, error) {
	var (
		rowID, memberID, candidateID pgtype.UUID
		matchScore                   float64
		matchingBooks                int
		isViewed                     bool
		viewedAt                     pgtype.Timestamptz
		expiresAt, createdAt         pgtype.Timestamptz
	)
	err := dbtx.QueryRow(ctx, sqlStr, args...).Scan(
		&rowID, &memberID, &candidateID, &matchScore, &matchingBooks,
		&isViewed, &viewedAt, &expiresAt, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("suggestion not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load suggestion", err)
	}

	pairs, err := r.loadPairs(ctx, dbtx, uuid.UUID(rowID.Bytes))
	if err != nil {
		return nil, err
	}

	return suggestion.ReconstructSuggestion(
		uuid.UUID(rowID.Bytes),
		uuid.UUID(memberID.Bytes),
		uuid.UUID(candidateID.Bytes),
		matchScore,
		matchingBooks,
		pairs,
		isViewed,
		pgconv.TimePtrFromPgtype(viewedAt),
		pgconv.TimeFromPgtype(expiresAt),
		pgconv.TimeFromPgtype(createdAt),
	), nil
}

func (r *SuggestionRepository) loadPairs(ctx context.Context, dbtx db.DBTX, suggestionID uuid.UUID) ([]suggestion.BookPair, error) {
	sqlStr, args, err := dialect.From("suggestion_book_pairs").Prepared(true).
		Select("my_book_id", "their_book_id", "score", "reasons").
		Where(goqu.Ex{"suggestion_id": pgconv.UUIDToPgtype(suggestionID)}).
		Order(goqu.I("sort_order").Asc()).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build suggestion pairs query", err)
	}

	rows, err := dbtx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load suggestion pairs", err)
	}
	defer rows.Close()

	var pairs []suggestion.BookPair
	for rows.Next() {
		var (
			myBookID, theirBookID pgtype.UUID
			score                 float64
			reasonsJSON           []byte
		)
		if err := rows.Scan(&myBookID, &theirBookID, &score, &reasonsJSON); err != nil {
			return nil, infra.WrapRepoErr("failed to scan suggestion pair", err)
		}
		var reasons []string
		if len(reasonsJSON) > 0 {
			if err := json.Unmarshal(reasonsJSON, &reasons); err != nil {
				return nil, infra.WrapRepoErr("corrupt pair reasons", err)
			}
		}
		pairs = append(pairs, suggestion.BookPair{
			MyBookID:    uuid.UUID(myBookID.Bytes),
			TheirBookID: uuid.UUID(theirBookID.Bytes),
			Score:       score,
			Reasons:     reasons,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate suggestion pairs", err)
	}
	return pairs, nil
}

func (r *SuggestionRepository) MarkViewed(ctx context.Context, dbtx db.DBTX, s *suggestion.Suggestion) error {
	sqlStr, args, err := dialect.Update("exchange_suggestions").Prepared(true).
		Set(goqu.Record{
			"is_viewed": s.IsViewed(),
			"viewed_at": pgconv.TimePtrToPgtype(s.ViewedAt()),
		}).
		Where(goqu.Ex{"id": pgconv.UUIDToPgtype(s.ID())}).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build suggestion view update", err)
	}

	tag, err := dbtx.Exec(ctx, sqlStr, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to mark suggestion viewed", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("suggestion vanished during update", nil, infra.KindNotFound)
	}
	return nil
}
