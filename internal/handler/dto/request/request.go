package request

import (
	"bookswap/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateExchangeRequestRequest struct {
	ReceiverID       uuid.UUID   `json:"receiver_id" binding:"required"`
	OfferedBookIDs   []uuid.UUID `json:"offered_book_ids" binding:"required,min=1"`
	RequestedBookIDs []uuid.UUID `json:"requested_book_ids" binding:"required,min=1"`
	Message          string      `json:"message" binding:"max=500"`
}

func (r *CreateExchangeRequestRequest) ToInput() commands.CreateRequestInput {
	return commands.CreateRequestInput{
		ReceiverID:       r.ReceiverID,
		OfferedBookIDs:   r.OfferedBookIDs,
		RequestedBookIDs: r.RequestedBookIDs,
		Message:          r.Message,
	}
}

type RespondRequestRequest struct {
	Action          string `json:"action" binding:"required,oneof=accept reject"`
	RejectionReason string `json:"rejection_reason" binding:"max=500"`
}
