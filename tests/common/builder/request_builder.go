//go:build unit || e2e

package builder

import (
	"time"

	domrequest "bookswap/internal/domain/request"
	reqdto "bookswap/internal/handler/dto/request"
	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
)

type RequestBuilder struct {
	RequesterID      uuid.UUID
	ReceiverID       uuid.UUID
	OfferedBookIDs   []uuid.UUID
	RequestedBookIDs []uuid.UUID
	Message          string
	CreatedAt        time.Time
}

func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		RequesterID:      uuid.New(),
		ReceiverID:       uuid.New(),
		OfferedBookIDs:   []uuid.UUID{uuid.New()},
		RequestedBookIDs: []uuid.UUID{uuid.New()},
		Message:          "Interested in a swap?",
		CreatedAt:        time.Now(),
	}
}

func (b *RequestBuilder) With(mutate func(*RequestBuilder)) *RequestBuilder {
	mutate(b)
	return b
}

func (b *RequestBuilder) BuildDomain() (*domrequest.Request, error) {
	return domrequest.NewRequest(b.RequesterID, b.ReceiverID, b.BuildBookLines(), b.Message, b.CreatedAt)
}

func (b *RequestBuilder) BuildBookLines() []domrequest.BookLine {
	var lines []domrequest.BookLine
	for _, id := range b.OfferedBookIDs {
		lines = append(lines, domrequest.BookLine{BookID: id, OwnerID: b.RequesterID, Role: domrequest.RoleOffered})
	}
	for _, id := range b.RequestedBookIDs {
		lines = append(lines, domrequest.BookLine{BookID: id, OwnerID: b.ReceiverID, Role: domrequest.RoleRequested})
	}
	return lines
}

func (b *RequestBuilder) BuildCreateRequestDTO() reqdto.CreateExchangeRequestRequest {
	return reqdto.CreateExchangeRequestRequest{
		ReceiverID:       b.ReceiverID,
		OfferedBookIDs:   b.OfferedBookIDs,
		RequestedBookIDs: b.RequestedBookIDs,
		Message:          b.Message,
	}
}

func (b *RequestBuilder) BuildViewQuery() *queries.RequestView {
	var books []queries.RequestBookView
	for _, id := range b.OfferedBookIDs {
		books = append(books, queries.RequestBookView{BookID: id, OwnerID: b.RequesterID, Role: "offered", Title: "Offered Book"})
	}
	for _, id := range b.RequestedBookIDs {
		books = append(books, queries.RequestBookView{BookID: id, OwnerID: b.ReceiverID, Role: "requested", Title: "Requested Book"})
	}
	return &queries.RequestView{
		ID:          uuid.New(),
		RequesterID: b.RequesterID,
		ReceiverID:  b.ReceiverID,
		Status:      "pending",
		Message:     b.Message,
		Books:       books,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}

func (b *RequestBuilder) BuildListItem() *queries.RequestListItem {
	return &queries.RequestListItem{
		ID:          uuid.New(),
		RequesterID: b.RequesterID,
		ReceiverID:  b.ReceiverID,
		Status:      "pending",
		BookCount:   int32(len(b.OfferedBookIDs) + len(b.RequestedBookIDs)),
		CreatedAt:   b.CreatedAt,
	}
}

// Fluent builder methods
func (b *RequestBuilder) WithRequesterID(id uuid.UUID) *RequestBuilder {
	b.RequesterID = id
	return b
}

func (b *RequestBuilder) WithReceiverID(id uuid.UUID) *RequestBuilder {
	b.ReceiverID = id
	return b
}

func (b *RequestBuilder) WithOfferedBookIDs(ids ...uuid.UUID) *RequestBuilder {
	b.OfferedBookIDs = ids
	return b
}

func (b *RequestBuilder) WithRequestedBookIDs(ids ...uuid.UUID) *RequestBuilder {
	b.RequestedBookIDs = ids
	return b
}

func (b *RequestBuilder) WithMessage(message string) *RequestBuilder {
	b.Message = message
	return b
}

func (b *RequestBuilder) WithCreatedAt(createdAt time.Time) *RequestBuilder {
	b.CreatedAt = createdAt
	return b
}
