//go:build unit || e2e

package builder

import (
	"time"

	domexchange "bookswap/internal/domain/exchange"
	reqdto "bookswap/internal/handler/dto/request"
	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
)

type ExchangeBuilder struct {
	RequestID uuid.UUID
	MemberAID uuid.UUID
	MemberBID uuid.UUID
	Books     []domexchange.BookTransfer
	CreatedAt time.Time
}

func NewExchangeBuilder() *ExchangeBuilder {
	b := &ExchangeBuilder{
		RequestID: uuid.New(),
		MemberAID: uuid.New(),
		MemberBID: uuid.New(),
		CreatedAt: time.Now(),
	}
	b.Books = []domexchange.BookTransfer{
		{BookID: uuid.New(), FromMemberID: b.MemberAID, ToMemberID: b.MemberBID, SortOrder: 0},
		{BookID: uuid.New(), FromMemberID: b.MemberBID, ToMemberID: b.MemberAID, SortOrder: 1},
	}
	return b
}

func (b *ExchangeBuilder) With(mutate func(*ExchangeBuilder)) *ExchangeBuilder {
	mutate(b)
	return b
}

func (b *ExchangeBuilder) BuildDomain() (*domexchange.Exchange, error) {
	return domexchange.NewFromAcceptedRequest(b.RequestID, b.MemberAID, b.MemberBID, b.Books, b.CreatedAt)
}

func (b *ExchangeBuilder) BuildProposeMeetingDTO(at time.Time) reqdto.ProposeMeetingRequest {
	return reqdto.ProposeMeetingRequest{
		Location: "Shibuya station, Hachiko exit",
		Time:     at,
		Notes:    "I'll carry a red tote bag",
	}
}

func (b *ExchangeBuilder) BuildCancelDTO() reqdto.CancelExchangeRequest {
	return reqdto.CancelExchangeRequest{
		Reason:  "user_cancelled",
		Details: "Schedule conflict",
	}
}

func (b *ExchangeBuilder) BuildViewQuery() *queries.ExchangeView {
	books := make([]queries.BookTransferView, len(b.Books))
	for i, tr := range b.Books {
		books[i] = queries.BookTransferView{
			BookID:       tr.BookID,
			FromMemberID: tr.FromMemberID,
			ToMemberID:   tr.ToMemberID,
			Title:        "Some Book",
		}
	}
	return &queries.ExchangeView{
		ID:        uuid.New(),
		RequestID: b.RequestID,
		MemberAID: b.MemberAID,
		MemberBID: b.MemberBID,
		Status:    "accepted",
		Books:     books,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}

func (b *ExchangeBuilder) BuildListItem() *queries.ExchangeListItem {
	return &queries.ExchangeListItem{
		ID:        uuid.New(),
		MemberAID: b.MemberAID,
		MemberBID: b.MemberBID,
		Status:    "accepted",
		BookCount: int32(len(b.Books)),
		CreatedAt: b.CreatedAt,
	}
}

// Fluent builder methods
func (b *ExchangeBuilder) WithRequestID(id uuid.UUID) *ExchangeBuilder {
	b.RequestID = id
	return b
}

func (b *ExchangeBuilder) WithMemberAID(id uuid.UUID) *ExchangeBuilder {
	b.MemberAID = id
	return b
}

func (b *ExchangeBuilder) WithMemberBID(id uuid.UUID) *ExchangeBuilder {
	b.MemberBID = id
	return b
}

func (b *ExchangeBuilder) WithBooks(books ...domexchange.BookTransfer) *ExchangeBuilder {
	b.Books = books
	return b
}

func (b *ExchangeBuilder) WithCreatedAt(createdAt time.Time) *ExchangeBuilder {
	b.CreatedAt = createdAt
	return b
}
