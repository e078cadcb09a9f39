//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type MemberOpts struct {
	Region             string
	TrustScore         float64
	AverageRating      float64
	CompletedExchanges int
	Verified           bool
	Role               string
}

func CreateTestMember(t *testing.T, db DBLike, opts MemberOpts) uuid.UUID {
	t.Helper()

	if opts.Region == "" {
		opts.Region = "tokyo"
	}
	if opts.Role == "" {
		opts.Role = "member"
	}

	memberID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO members (id, region, trust_score, average_rating, completed_exchanges, verified, role, last_active_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
		memberID, opts.Region, opts.TrustScore, opts.AverageRating, opts.CompletedExchanges, opts.Verified, opts.Role)
	require.NoError(t, err)

	return memberID
}

type BookOpts struct {
	Title     string
	Author    string
	ISBN      string
	Category  string
	Condition string
	Available bool
}

func CreateTestBook(t *testing.T, db DBLike, ownerID uuid.UUID, opts BookOpts) uuid.UUID {
	t.Helper()

	if opts.Title == "" {
		opts.Title = "Untitled"
	}
	if opts.Condition == "" {
		opts.Condition = "good"
	}

	bookID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO books (id, owner_id, title, author, isbn, category, condition, available)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		bookID, ownerID, opts.Title, opts.Author, opts.ISBN, opts.Category, opts.Condition, opts.Available)
	require.NoError(t, err)

	return bookID
}

type WantOpts struct {
	Title    string
	Author   string
	ISBN     string
	Category string
	Priority int
}

func AddTestWant(t *testing.T, db DBLike, memberID uuid.UUID, opts WantOpts) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO want_list (id, member_id, title, author, isbn, category, priority)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New(), memberID, opts.Title, opts.Author, opts.ISBN, opts.Category, opts.Priority)
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
