package commands

import (
	"context"
	"errors"

	"bookswap/internal/domain/exchange"
	"bookswap/internal/domain/request"
	"bookswap/internal/infra"
	"bookswap/internal/pkg/clock"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRequestInput struct {
	ReceiverID       uuid.UUID
	OfferedBookIDs   []uuid.UUID
	RequestedBookIDs []uuid.UUID
	Message          string
}

type RespondAction string

const (
	RespondAccept RespondAction = "accept"
	RespondReject RespondAction = "reject"
)

type RespondResult struct {
	Status string
	// ExchangeID is set when the response was an acceptance.
	ExchangeID *uuid.UUID
}

type RequestCommands interface {
	Create(ctx context.Context, requesterID uuid.UUID, input CreateRequestInput) (uuid.UUID, error)
	Respond(ctx context.Context, requestID, responderID uuid.UUID, action RespondAction, rejectionReason string) (*RespondResult, error)
	Cancel(ctx context.Context, requestID, actorID uuid.UUID) error
}

type requestCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRequestCommands(uow shared.UnitOfWork, clk clock.Clock) RequestCommands {
	return &requestCommandsImpl{uow: uow, clock: clk}
}

func (uc *requestCommandsImpl) Create(ctx context.Context, requesterID uuid.UUID, input CreateRequestInput) (uuid.UUID, error) {
	if len(input.OfferedBookIDs) == 0 || len(input.RequestedBookIDs) == 0 {
		return uuid.Nil, errs.Mark(request.ErrNoOfferedBooks, ErrValidation)
	}

	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		lines, derr := uc.buildBookLines(ctx, tx, requesterID, input)
		if derr != nil {
			return derr
		}

		req, derr := request.NewRequest(requesterID, input.ReceiverID, lines, input.Message, uc.clock.Now())
		if derr != nil {
			return mapRequestErr(derr)
		}

		if derr = tx.Requests().Create(ctx, tx.DB(), req); derr != nil {
			if infra.IsKind(derr, infra.KindForeignKeyViolated) {
				return errs.Mark(derr, ErrMemberNotFound)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		createdID = req.ID()

		reqID := req.ID()
		return appendEvent(ctx, tx, shared.DomainEvent{
			Topic:      shared.TopicRequestCreated,
			RequestID:  &reqID,
			ActorID:    requesterID,
			Status:     req.Status().String(),
			OccurredAt: uc.clock.Now(),
		})
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

// buildBookLines resolves every referenced book against the directory and
// attributes it to the party its role implies. Ownership and availability
// are checked here, at the boundary; the entity enforces list shape.
func (uc *requestCommandsImpl) buildBookLines(ctx context.Context, tx shared.Tx, requesterID uuid.UUID, input CreateRequestInput) ([]request.BookLine, error) {
	ids := make([]uuid.UUID, 0, len(input.OfferedBookIDs)+len(input.RequestedBookIDs))
	ids = append(ids, input.OfferedBookIDs...)
	ids = append(ids, input.RequestedBookIDs...)

	books, err := tx.Reads().BooksByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	byID := make(map[uuid.UUID]shared.BookSnapshot, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	lines := make([]request.BookLine, 0, len(ids))
	appendLines := func(bookIDs []uuid.UUID, ownerID uuid.UUID, role request.BookRole) error {
		for _, id := range bookIDs {
			b, ok := byID[id]
			if !ok {
				return errs.Mark(errs.New("referenced book does not exist"), ErrBookNotFound)
			}
			if b.OwnerID != ownerID {
				return errs.Mark(request.ErrBookNotOwnedByParty, ErrInvalidOwnership)
			}
			if !b.Available {
				return errs.Mark(errs.New("book is not available for exchange"), ErrInvalidState)
			}
			lines = append(lines, request.BookLine{BookID: id, OwnerID: ownerID, Role: role})
		}
		return nil
	}

	if err := appendLines(input.OfferedBookIDs, requesterID, request.RoleOffered); err != nil {
		return nil, err
	}
	if err := appendLines(input.RequestedBookIDs, input.ReceiverID, request.RoleRequested); err != nil {
		return nil, err
	}
	return lines, nil
}

func (uc *requestCommandsImpl) Respond(ctx context.Context, requestID, responderID uuid.UUID, action RespondAction, rejectionReason string) (*RespondResult, error) {
	if action != RespondAccept && action != RespondReject {
		return nil, errs.Mark(errs.New("unknown respond action"), ErrValidation)
	}

	var result RespondResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		req, derr := tx.Requests().GetForUpdate(ctx, tx.DB(), requestID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrRequestNotFound)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		now := uc.clock.Now()
		if action == RespondReject {
			if derr = req.Reject(responderID, rejectionReason, now); derr != nil {
				return mapRequestErr(derr)
			}
			if derr = tx.Requests().UpdateStatus(ctx, tx.DB(), req); derr != nil {
				return errs.Mark(derr, ErrDatabaseOperationFailed)
			}
			result.Status = req.Status().String()

			return appendEvent(ctx, tx, shared.DomainEvent{
				Topic:      shared.TopicRequestRejected,
				RequestID:  &requestID,
				ActorID:    responderID,
				Status:     req.Status().String(),
				OccurredAt: now,
			})
		}

		if derr = req.Accept(responderID, now); derr != nil {
			return mapRequestErr(derr)
		}
		if derr = tx.Requests().UpdateStatus(ctx, tx.DB(), req); derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		ex, derr := exchange.NewFromAcceptedRequest(
			req.ID(), req.RequesterID(), req.ReceiverID(), transfersFromRequest(req), now)
		if derr != nil {
			return errs.Mark(derr, ErrValidation)
		}

		if derr = tx.Exchanges().Create(ctx, tx.DB(), ex); derr != nil {
			// The unique constraint on request_id is the backstop against a
			// request ever being accepted twice.
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return errs.Mark(derr, ErrInvalidState)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		result.Status = req.Status().String()
		exID := ex.ID()
		result.ExchangeID = &exID

		if derr = appendEvent(ctx, tx, shared.DomainEvent{
			Topic:      shared.TopicRequestAccepted,
			RequestID:  &requestID,
			ActorID:    responderID,
			Status:     req.Status().String(),
			OccurredAt: now,
		}); derr != nil {
			return derr
		}
		return appendEvent(ctx, tx, shared.DomainEvent{
			Topic:      shared.TopicExchangeAccepted,
			ExchangeID: &exID,
			ActorID:    responderID,
			Status:     ex.Status().String(),
			OccurredAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (uc *requestCommandsImpl) Cancel(ctx context.Context, requestID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		req, derr := tx.Requests().GetForUpdate(ctx, tx.DB(), requestID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrRequestNotFound)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		now := uc.clock.Now()
		if derr = req.Cancel(actorID, now); derr != nil {
			return mapRequestErr(derr)
		}
		if derr = tx.Requests().UpdateStatus(ctx, tx.DB(), req); derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		return appendEvent(ctx, tx, shared.DomainEvent{
			Topic:      shared.TopicRequestCancelled,
			RequestID:  &requestID,
			ActorID:    actorID,
			Status:     req.Status().String(),
			OccurredAt: now,
		})
	})
}

// transfersFromRequest snapshots the request's book lines into concrete
// transfers: offered books move requester -> receiver, requested books the
// other way.
func transfersFromRequest(req *request.Request) []exchange.BookTransfer {
	lines := req.Books()
	transfers := make([]exchange.BookTransfer, 0, len(lines))
	for i, l := range lines {
		t := exchange.BookTransfer{BookID: l.BookID, SortOrder: i}
		if l.Role == request.RoleOffered {
			t.FromMemberID = req.RequesterID()
			t.ToMemberID = req.ReceiverID()
		} else {
			t.FromMemberID = req.ReceiverID()
			t.ToMemberID = req.RequesterID()
		}
		transfers = append(transfers, t)
	}
	return transfers
}

func mapRequestErr(err error) error {
	switch {
	case errors.Is(err, request.ErrNotReceiver), errors.Is(err, request.ErrNotRequester):
		return errs.Mark(err, ErrForbidden)
	case errors.Is(err, request.ErrInvalidTransition):
		return errs.Mark(err, ErrInvalidState)
	default:
		return errs.Mark(err, ErrValidation)
	}
}

func appendEvent(ctx context.Context, tx shared.Tx, event shared.DomainEvent) error {
	if err := tx.Events().Append(ctx, tx.DB(), event); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
