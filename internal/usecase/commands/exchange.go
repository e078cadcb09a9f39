package commands

import (
	"context"
	"errors"
	"time"

	"bookswap/internal/domain/exchange"
	"bookswap/internal/infra"
	"bookswap/internal/pkg/clock"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProposeMeetingInput struct {
	Location    string
	Coordinates *exchange.Coordinates
	Time        time.Time
	Notes       string
}

type CancelExchangeInput struct {
	Reason  string
	Details string
}

type ExchangeCommands interface {
	ProposeMeeting(ctx context.Context, exchangeID, actorID uuid.UUID, input ProposeMeetingInput) error
	// ConfirmMeeting reports whether this confirmation was the second one,
	// i.e. whether the meeting became scheduled.
	ConfirmMeeting(ctx context.Context, exchangeID, actorID uuid.UUID) (scheduled bool, err error)
	Start(ctx context.Context, exchangeID, actorID uuid.UUID) error
	// ConfirmCompletion reports whether the exchange reached completed.
	ConfirmCompletion(ctx context.Context, exchangeID, actorID uuid.UUID) (completed bool, err error)
	Cancel(ctx context.Context, exchangeID, actorID uuid.UUID, input CancelExchangeInput) error
}

type exchangeCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewExchangeCommands(uow shared.UnitOfWork, clk clock.Clock) ExchangeCommands {
	return &exchangeCommandsImpl{uow: uow, clock: clk}
}

func (uc *exchangeCommandsImpl) ProposeMeeting(ctx context.Context, exchangeID, actorID uuid.UUID, input ProposeMeetingInput) error {
	return uc.mutate(ctx, exchangeID, func(tx shared.Tx, ex *exchange.Exchange, now time.Time) (*shared.DomainEvent, error) {
		if err := ex.ProposeMeeting(actorID, input.Location, input.Coordinates, input.Time, input.Notes, now); err != nil {
			return nil, mapExchangeErr(err)
		}
		exID := ex.ID()
		return &shared.DomainEvent{
			Topic:      shared.TopicExchangeMeetingProposed,
			ExchangeID: &exID,
			ActorID:    actorID,
			Status:     ex.Status().String(),
			OccurredAt: now,
		}, nil
	})
}

func (uc *exchangeCommandsImpl) ConfirmMeeting(ctx context.Context, exchangeID, actorID uuid.UUID) (bool, error) {
	var scheduled bool
	err := uc.mutate(ctx, exchangeID, func(tx shared.Tx, ex *exchange.Exchange, now time.Time) (*shared.DomainEvent, error) {
		loadedVersion := ex.Version()
		var derr error
		scheduled, derr = ex.ConfirmMeeting(actorID, now)
		if derr != nil {
			return nil, mapExchangeErr(derr)
		}
		if ex.Version() == loadedVersion {
			// Re-confirming is an idempotent no-op; nothing changed, so
			// consumers get no event.
			return nil, nil
		}
		exID := ex.ID()
		return &shared.DomainEvent{
			Topic:      shared.TopicExchangeMeetingConfirmed,
			ExchangeID: &exID,
			ActorID:    actorID,
			Status:     ex.Status().String(),
			OccurredAt: now,
		}, nil
	})
	if err != nil {
		return false, err
	}
	return scheduled, nil
}

func (uc *exchangeCommandsImpl) Start(ctx context.Context, exchangeID, actorID uuid.UUID) error {
	return uc.mutate(ctx, exchangeID, func(tx shared.Tx, ex *exchange.Exchange, now time.Time) (*shared.DomainEvent, error) {
		if err := ex.Start(actorID, now); err != nil {
			return nil, mapExchangeErr(err)
		}
		exID := ex.ID()
		return &shared.DomainEvent{
			Topic:      shared.TopicExchangeStarted,
			ExchangeID: &exID,
			ActorID:    actorID,
			Status:     ex.Status().String(),
			OccurredAt: now,
		}, nil
	})
}

func (uc *exchangeCommandsImpl) ConfirmCompletion(ctx context.Context, exchangeID, actorID uuid.UUID) (bool, error) {
	var completed bool
	err := uc.mutate(ctx, exchangeID, func(tx shared.Tx, ex *exchange.Exchange, now time.Time) (*shared.DomainEvent, error) {
		var derr error
		completed, derr = ex.ConfirmCompletion(actorID, now)
		if derr != nil {
			return nil, mapExchangeErr(derr)
		}
		if !completed {
			return nil, nil
		}
		exID := ex.ID()
		return &shared.DomainEvent{
			Topic:      shared.TopicExchangeCompleted,
			ExchangeID: &exID,
			ActorID:    actorID,
			Status:     ex.Status().String(),
			OccurredAt: now,
		}, nil
	})
	if err != nil {
		return false, err
	}
	return completed, nil
}

func (uc *exchangeCommandsImpl) Cancel(ctx context.Context, exchangeID, actorID uuid.UUID, input CancelExchangeInput) error {
	reason, err := exchange.NewCancelReason(input.Reason)
	if err != nil {
		return errs.Mark(err, ErrValidation)
	}

	return uc.mutate(ctx, exchangeID, func(tx shared.Tx, ex *exchange.Exchange, now time.Time) (*shared.DomainEvent, error) {
		isAdmin := false
		if _, perr := ex.PartyOf(actorID); perr != nil {
			// Non-parties may cancel only with administrator standing.
			actor, merr := tx.Reads().MemberByID(ctx, actorID)
			if merr != nil {
				if infra.IsKind(merr, infra.KindNotFound) {
					return nil, errs.Mark(merr, ErrForbidden)
				}
				return nil, errs.Mark(merr, ErrDatabaseOperationFailed)
			}
			if !actor.IsAdmin {
				return nil, errs.Mark(exchange.ErrNotParty, ErrForbidden)
			}
			isAdmin = true
		}

		if derr := ex.Cancel(actorID, isAdmin, reason, input.Details, now); derr != nil {
			return nil, mapExchangeErr(derr)
		}
		exID := ex.ID()
		return &shared.DomainEvent{
			Topic:      shared.TopicExchangeCancelled,
			ExchangeID: &exID,
			ActorID:    actorID,
			Status:     ex.Status().String(),
			OccurredAt: now,
		}, nil
	})
}

// mutate runs the load -> domain op -> guarded update cycle shared by all
// exchange commands. The version captured at load time guards the update;
// a lost race retries through the unit of work and only surfaces as a
// conflict once retries are exhausted.
func (uc *exchangeCommandsImpl) mutate(
	ctx context.Context,
	exchangeID uuid.UUID,
	op func(tx shared.Tx, ex *exchange.Exchange, now time.Time) (*shared.DomainEvent, error),
) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ex, derr := tx.Exchanges().GetForUpdate(ctx, tx.DB(), exchangeID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrExchangeNotFound)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		loadedVersion := ex.Version()

		event, derr := op(tx, ex, uc.clock.Now())
		if derr != nil {
			return derr
		}

		if derr = tx.Exchanges().Update(ctx, tx.DB(), ex, loadedVersion); derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return errs.Mark(derr, ErrConflict)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		if event == nil {
			return nil
		}
		return appendEvent(ctx, tx, *event)
	})
	return err
}

func mapExchangeErr(err error) error {
	switch {
	case errors.Is(err, exchange.ErrNotParty):
		return errs.Mark(err, ErrForbidden)
	case errors.Is(err, exchange.ErrInvalidTransition),
		errors.Is(err, exchange.ErrTerminalState),
		errors.Is(err, exchange.ErrMeetingNotProposable),
		errors.Is(err, exchange.ErrNoMeetingProposed),
		errors.Is(err, exchange.ErrMeetingNotConfirmed):
		return errs.Mark(err, ErrInvalidState)
	default:
		return errs.Mark(err, ErrValidation)
	}
}
