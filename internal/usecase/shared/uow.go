package shared

import (
	"context"

	"bookswap/internal/domain/exchange"
	"bookswap/internal/domain/request"
	"bookswap/internal/domain/suggestion"
	"bookswap/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Requests() RequestRepository
	Exchanges() ExchangeRepository
	Suggestions() SuggestionRepository
	Events() EventRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the write-side lookups commands need: directory data
// owned by external collaborators plus small snapshots of this core's own
// rows.
type CommandReads interface {
	MemberByID(ctx context.Context, id uuid.UUID) (*MemberSnapshot, error)
	BooksByIDs(ctx context.Context, ids []uuid.UUID) ([]BookSnapshot, error)
	AvailableBooksOf(ctx context.Context, memberID uuid.UUID) ([]BookSnapshot, error)
	WantsOf(ctx context.Context, memberID uuid.UUID) ([]WantSnapshot, error)
	CandidatesFor(ctx context.Context, subjectID uuid.UUID) ([]uuid.UUID, error)
	SuggestionForPair(ctx context.Context, memberID, candidateID uuid.UUID) (*suggestion.Suggestion, error)
}

type RequestRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, req *request.Request) error
	// GetForUpdate loads the request and its book lines under a row lock.
	GetForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*request.Request, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, req *request.Request) error
}

type ExchangeRepository interface {
	// Create persists the exchange and its book transfers. A second
	// exchange for the same request violates the unique constraint and
	// surfaces as a duplicate-key repository error.
	Create(ctx context.Context, dbtx db.DBTX, ex *exchange.Exchange) error
	GetForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*exchange.Exchange, error)
	// Update writes all mutable columns guarded by the version loaded at
	// read time; zero rows affected surfaces as a conflict error.
	Update(ctx context.Context, dbtx db.DBTX, ex *exchange.Exchange, expectedVersion int64) error
}

type SuggestionRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, s *suggestion.Suggestion) error
	// DeleteForPair removes every suggestion for the subject/candidate
	// pair together with its book pairs in the same transaction; no
	// reliance on cascade semantics.
	DeleteForPair(ctx context.Context, dbtx db.DBTX, memberID, candidateID uuid.UUID) error
	GetForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*suggestion.Suggestion, error)
	MarkViewed(ctx context.Context, dbtx db.DBTX, s *suggestion.Suggestion) error
}

type EventRepository interface {
	Append(ctx context.Context, dbtx db.DBTX, event DomainEvent) error
}
