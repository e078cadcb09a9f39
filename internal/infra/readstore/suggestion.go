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
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type SuggestionReadStore struct {
	dbtx db.DBTX
}

func NewSuggestionReadStore(dbtx db.DBTX) *SuggestionReadStore {
	return &SuggestionReadStore{dbtx: dbtx}
}

func (s *SuggestionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SuggestionView, error) {
	sqlStr, args, err := dialect.From("exchange_suggestions").Prepared(true).
		Select("id", "member_id", "candidate_id", "match_score", "matching_books",
			"is_viewed", "viewed_at", "expires_at", "created_at").
		Where(goqu.Ex{"id": pgconv.UUIDToPgtype(id)}).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build suggestion view query", err)
	}

	var (
		rowID, memberID, candidateID pgtype.UUID
		matchScore                   float64
		matchingBooks                int32
		isViewed                     bool
		viewedAt                     pgtype.Timestamptz
		expiresAt, createdAt         pgtype.Timestamptz
	)
	err = s.dbtx.QueryRow(ctx, sqlStr, args...).Scan(
		&rowID, &memberID, &candidateID, &matchScore, &matchingBooks,
		&isViewed, &viewedAt, &expiresAt, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("suggestion not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load suggestion view", err)
	}

	pairs, err := s.loadPairs(ctx, id)
	if err != nil {
		return nil, err
	}

	return &queries.SuggestionView{
		ID:            uuid.UUID(rowID.Bytes),
		MemberID:      uuid.UUID(memberID.Bytes),
		CandidateID:   uuid.UUID(candidateID.Bytes),
		MatchScore:    matchScore,
		MatchingBooks: matchingBooks,
		Pairs:         pairs,
		IsViewed:      isViewed,
		ViewedAt:      pgconv.TimePtrFromPgtype(viewedAt),
		ExpiresAt:     pgconv.TimeFromPgtype(expiresAt),
		CreatedAt:     pgconv.TimeFromPgtype(createdAt),
	}, nil
}

func (s *SuggestionReadStore) loadPairs(ctx context.Context, suggestionID uuid.UUID) ([]queries.BookPairView, error) {
	sqlStr, args, err := dialect.From(goqu.T("suggestion_book_pairs").As("p")).Prepared(true).
		Select(
			goqu.I("p.my_book_id"), goqu.I("mb.title"),
			goqu.I("p.their_book_id"), goqu.I("tb.title"),
			goqu.I("p.score"), goqu.I("p.reasons"),
		).
		Join(goqu.T("books").As("mb"), goqu.On(goqu.I("mb.id").Eq(goqu.I("p.my_book_id")))).
		Join(goqu.T("books").As("tb"), goqu.On(goqu.I("tb.id").Eq(goqu.I("p.their_book_id")))).
		Where(goqu.I("p.suggestion_id").Eq(pgconv.UUIDToPgtype(suggestionID))).
		Order(goqu.I("p.sort_order").Asc()).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build pair views query", err)
	}

	rows, err := s.dbtx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load pair views", err)
	}
	defer rows.Close()

	var pairs []queries.BookPairView
	for rows.Next() {
		var (
			myBookID, theirBookID pgtype.UUID
			myTitle, theirTitle   string
			score                 float64
			reasonsJSON           []byte
		)
		if err := rows.Scan(&myBookID, &myTitle, &theirBookID, &theirTitle, &score, &reasonsJSON); err != nil {
			return nil, infra.WrapRepoErr("failed to scan pair view", err)
		}
		var reasons []string
		if len(reasonsJSON) > 0 {
			if err := json.Unmarshal(reasonsJSON, &reasons); err != nil {
				return nil, infra.WrapRepoErr("corrupt pair reasons", err)
			}
		}
		pairs = append(pairs, queries.BookPairView{
			MyBookID:       uuid.UUID(myBookID.Bytes),
			MyBookTitle:    myTitle,
			TheirBookID:    uuid.UUID(theirBookID.Bytes),
			TheirBookTitle: theirTitle,
			Score:          score,
			Reasons:        reasons,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate pair views", err)
	}
	return pairs, nil
}

func (s *SuggestionReadStore) FindForMember(ctx context.Context, memberID uuid.UUID, includeViewed bool, now time.Time, limit int32) ([]*queries.SuggestionListItem, error) {
	// Ranking mirrors the generation pass: score, then matching-book
	// count, then most recently active candidate.
	ds := dialect.From(goqu.T("exchange_suggestions").As("s")).Prepared(true).
		Select(
			goqu.I("s.id"), goqu.I("s.candidate_id"), goqu.I("s.match_score"),
			goqu.I("s.matching_books"), goqu.I("s.is_viewed"),
			goqu.I("s.expires_at"), goqu.I("s.created_at"),
		).
		Join(goqu.T("members").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("s.candidate_id")))).
		Where(
			goqu.I("s.member_id").Eq(pgconv.UUIDToPgtype(memberID)),
			goqu.I("s.expires_at").Gt(pgconv.TimeToPgtype(now)),
		).
		Order(
			goqu.I("s.match_score").Desc(),
			goqu.I("s.matching_books").Desc(),
			goqu.I("c.last_active_at").Desc(),
		).
		Limit(uint(limit))
	if !includeViewed {
		ds = ds.Where(goqu.I("s.is_viewed").IsFalse())
	}

	sqlStr, args, err := ds.ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build suggestion list query", err)
	}

	rows, err := s.dbtx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load suggestion list", err)
	}
	defer rows.Close()

	var items []*queries.SuggestionListItem
	for rows.Next() {
		var (
			id, candidateID      pgtype.UUID
			matchScore           float64
			matchingBooks        int32
			isViewed             bool
			expiresAt, createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &candidateID, &matchScore, &matchingBooks, &isViewed, &expiresAt, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan suggestion list item", err)
		}
		items = append(items, &queries.SuggestionListItem{
			ID:            uuid.UUID(id.Bytes),
			CandidateID:   uuid.UUID(candidateID.Bytes),
			MatchScore:    matchScore,
			MatchingBooks: matchingBooks,
			IsViewed:      isViewed,
			ExpiresAt:     pgconv.TimeFromPgtype(expiresAt),
			CreatedAt:     pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate suggestion list", err)
	}
	return items, nil
}
