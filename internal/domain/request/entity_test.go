//go:build unit

package request_test

import (
	"strings"
	"testing"
	"time"

	"bookswap/internal/domain/request"
	"bookswap/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.RequestBuilder)
	errIs  error
}

func TestNewRequest(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewRequestBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, request.StatusPending, actual.Status())
		assert.Len(t, actual.OfferedBooks(), 1)
		assert.Len(t, actual.RequestedBooks(), 1)
		assert.Nil(t, actual.RespondedAt())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("party validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "requester equals receiver",
				mutate: func(b *builder.RequestBuilder) {
					b.ReceiverID = b.RequesterID
				},
				errIs: request.ErrSelfRequest,
			},
			{
				name:   "no offered books",
				mutate: func(b *builder.RequestBuilder) { b.OfferedBookIDs = nil },
				errIs:  request.ErrNoOfferedBooks,
			},
			{
				name:   "no requested books",
				mutate: func(b *builder.RequestBuilder) { b.RequestedBookIDs = nil },
				errIs:  request.ErrNoRequestedBooks,
			},
			{
				name: "same book on both sides",
				mutate: func(b *builder.RequestBuilder) {
					shared := uuid.New()
					b.OfferedBookIDs = []uuid.UUID{shared}
					b.RequestedBookIDs = []uuid.UUID{shared}
				},
				errIs: request.ErrDuplicateBook,
			},
		})
	})

	t.Run("message validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty message is allowed",
				mutate: func(b *builder.RequestBuilder) { b.Message = "" },
			},
			{
				name: "maximum length message",
				mutate: func(b *builder.RequestBuilder) {
					b.Message = strings.Repeat("a", request.MaxMessageLength)
				},
			},
			{
				name: "message exceeds maximum length",
				mutate: func(b *builder.RequestBuilder) {
					b.Message = strings.Repeat("a", request.MaxMessageLength+1)
				},
				errIs: request.ErrMessageTooLong,
			},
		})
	})

	t.Run("book line attribution", func(t *testing.T) {
		b := builder.NewRequestBuilder()
		lines := b.BuildBookLines()
		// Attribute an offered book to the receiver instead of the requester.
		lines[0].OwnerID = b.ReceiverID

		actual, err := request.NewRequest(b.RequesterID, b.ReceiverID, lines, b.Message, b.CreatedAt)
		require.Nil(t, actual)
		require.ErrorIs(t, err, request.ErrBookNotOwnedByParty)
	})
}

func TestRequestTransitions(t *testing.T) {
	now := time.Now()

	t.Run("accept by receiver", func(t *testing.T) {
		b := builder.NewRequestBuilder()
		req, err := b.BuildDomain()
		require.NoError(t, err)

		later := now.Add(time.Minute)
		require.NoError(t, req.Accept(b.ReceiverID, later))
		assert.Equal(t, request.StatusAccepted, req.Status())
		require.NotNil(t, req.RespondedAt())
		assert.Equal(t, later, *req.RespondedAt())
	})

	t.Run("accept by non-receiver is forbidden", func(t *testing.T) {
		b := builder.NewRequestBuilder()
		req, err := b.BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, req.Accept(b.RequesterID, now), request.ErrNotReceiver)
		assert.ErrorIs(t, req.Accept(uuid.New(), now), request.ErrNotReceiver)
		assert.Equal(t, request.StatusPending, req.Status())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		b := builder.NewRequestBuilder()
		req, err := b.BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, req.Reject(b.ReceiverID, "   ", now), request.ErrMissingRejectReason)

		require.NoError(t, req.Reject(b.ReceiverID, "Not interested", now))
		assert.Equal(t, request.StatusRejected, req.Status())
		require.NotNil(t, req.RejectionReason())
		assert.Equal(t, "Not interested", *req.RejectionReason())
	})

	t.Run("cancel by requester only", func(t *testing.T) {
		b := builder.NewRequestBuilder()
		req, err := b.BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, req.Cancel(b.ReceiverID, now), request.ErrNotRequester)

		require.NoError(t, req.Cancel(b.RequesterID, now))
		assert.Equal(t, request.StatusCancelled, req.Status())
	})

	t.Run("responding twice is rejected", func(t *testing.T) {
		b := builder.NewRequestBuilder()
		req, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, req.Accept(b.ReceiverID, now))

		assert.ErrorIs(t, req.Accept(b.ReceiverID, now), request.ErrInvalidTransition)
		assert.ErrorIs(t, req.Reject(b.ReceiverID, "too late", now), request.ErrInvalidTransition)
		assert.ErrorIs(t, req.Cancel(b.RequesterID, now), request.ErrInvalidTransition)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewRequestBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
