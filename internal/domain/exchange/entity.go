package exchange

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookTransfer records one concrete book moving between the parties,
// snapshotted from the originating request so the exchange stays stable
// even if the request's lines were ever mutated.
type BookTransfer struct {
	BookID       uuid.UUID
	FromMemberID uuid.UUID
	ToMemberID   uuid.UUID
	SortOrder    int
}

// Cancellation captures why a non-terminal exchange was aborted.
type Cancellation struct {
	Reason  CancelReason
	Details string
}

type Exchange struct {
	id                 uuid.UUID
	requestID          uuid.UUID
	memberAID          uuid.UUID
	memberBID          uuid.UUID
	status             Status
	memberAConfirmed   bool
	memberBConfirmed   bool
	memberAConfirmedAt *time.Time
	memberBConfirmedAt *time.Time
	completedAt        *time.Time
	meeting            *Meeting
	cancellation       *Cancellation
	books              []BookTransfer
	version            int64
	createdAt          time.Time
	updatedAt          time.Time
}

// NewFromAcceptedRequest creates the single exchange paired with a request
// the instant it is accepted. Member A is the requester, member B the
// receiver. The exchange is born accepted; the pending status only exists
// for reconstruction of historic rows.
func NewFromAcceptedRequest(requestID, requesterID, receiverID uuid.UUID, books []BookTransfer, now time.Time) (*Exchange, error) {
	if len(books) == 0 {
		return nil, ErrNoBooks
	}
	return &Exchange{
		id:        uuid.New(),
		requestID: requestID,
		memberAID: requesterID,
		memberBID: receiverID,
		status:    StatusAccepted,
		books:     books,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id, requestID, memberAID, memberBID uuid.UUID,
	status Status,
	memberAConfirmed, memberBConfirmed bool,
	memberAConfirmedAt, memberBConfirmedAt, completedAt *time.Time,
	meeting *Meeting,
	cancellation *Cancellation,
	books []BookTransfer,
	version int64,
	createdAt, updatedAt time.Time,
) *Exchange {
	return &Exchange{
		id:                 id,
		requestID:          requestID,
		memberAID:          memberAID,
		memberBID:          memberBID,
		status:             status,
		memberAConfirmed:   memberAConfirmed,
		memberBConfirmed:   memberBConfirmed,
		memberAConfirmedAt: memberAConfirmedAt,
		memberBConfirmedAt: memberBConfirmedAt,
		completedAt:        completedAt,
		meeting:            meeting,
		cancellation:       cancellation,
		books:              books,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// PartyOf resolves which side of the exchange a member is on.
func (e *Exchange) PartyOf(memberID uuid.UUID) (Party, error) {
	switch memberID {
	case e.memberAID:
		return PartyA, nil
	case e.memberBID:
		return PartyB, nil
	}
	return "", ErrNotParty
}

// ProposeMeeting sets or overwrites the meeting while the exchange is
// accepted or meeting-scheduled. Overwriting resets both confirmation
// flags and, if the exchange had already reached meeting_scheduled, drops
// it back to accepted until both parties confirm again.
func (e *Exchange) ProposeMeeting(actorID uuid.UUID, location string, coords *Coordinates, at time.Time, notes string, now time.Time) error {
	if _, err := e.PartyOf(actorID); err != nil {
		return err
	}
	if e.status != StatusAccepted && e.status != StatusMeetingScheduled {
		if e.status.IsTerminal() {
			return ErrTerminalState
		}
		return ErrMeetingNotProposable
	}

	meeting, err := NewMeeting(location, coords, at, notes, actorID, now)
	if err != nil {
		return err
	}

	if e.status == StatusMeetingScheduled {
		next, terr := nextStatus(e.status, ActionReopenMeeting)
		if terr != nil {
			return terr
		}
		e.status = next
	}

	e.meeting = meeting
	e.touch(now)
	return nil
}

// ConfirmMeeting sets the caller's own confirmation flag. Re-confirming is
// a no-op. The second confirmation transitions accepted to
// meeting_scheduled and reports scheduled=true.
func (e *Exchange) ConfirmMeeting(actorID uuid.UUID, now time.Time) (scheduled bool, err error) {
	party, err := e.PartyOf(actorID)
	if err != nil {
		return false, err
	}
	if e.meeting == nil {
		return false, ErrNoMeetingProposed
	}
	if e.status != StatusAccepted {
		if e.status == StatusMeetingScheduled {
			// Both flags are already set; nothing to do.
			return false, nil
		}
		if e.status.IsTerminal() {
			return false, ErrTerminalState
		}
		return false, ErrInvalidTransition
	}

	if e.meeting.confirmed(party) {
		return false, nil
	}
	e.meeting.confirm(party)
	e.touch(now)

	if !e.meeting.BothConfirmed() {
		return false, nil
	}

	next, terr := nextStatus(e.status, ActionScheduleMeeting)
	if terr != nil {
		return false, terr
	}
	e.status = next
	return true, nil
}

// Start moves a fully meeting-confirmed exchange into progress. Either
// party may start; the transition table guarantees it is unreachable
// before both meeting confirmations are set.
func (e *Exchange) Start(actorID uuid.UUID, now time.Time) error {
	if _, err := e.PartyOf(actorID); err != nil {
		return err
	}
	if e.meeting == nil || !e.meeting.BothConfirmed() {
		return ErrMeetingNotConfirmed
	}
	next, err := nextStatus(e.status, ActionStart)
	if err != nil {
		return err
	}
	e.status = next
	e.touch(now)
	return nil
}

// ConfirmCompletion records the caller's completion confirmation. Setting
// a flag that is already true is a no-op. The second confirmation performs
// the in_progress -> completed transition and stamps completed_at once.
func (e *Exchange) ConfirmCompletion(actorID uuid.UUID, now time.Time) (completed bool, err error) {
	party, err := e.PartyOf(actorID)
	if err != nil {
		return false, err
	}
	if e.status != StatusInProgress {
		if e.status.IsTerminal() {
			return false, ErrTerminalState
		}
		return false, ErrInvalidTransition
	}

	switch party {
	case PartyA:
		if e.memberAConfirmed {
			return false, nil
		}
		e.memberAConfirmed = true
		e.memberAConfirmedAt = &now
	case PartyB:
		if e.memberBConfirmed {
			return false, nil
		}
		e.memberBConfirmed = true
		e.memberBConfirmedAt = &now
	}
	e.touch(now)

	if !(e.memberAConfirmed && e.memberBConfirmed) {
		return false, nil
	}

	next, terr := nextStatus(e.status, ActionComplete)
	if terr != nil {
		return false, terr
	}
	e.status = next
	e.completedAt = &now
	return true, nil
}

// Cancel aborts the exchange from any non-terminal state. The actor must
// be a party unless acting as an administrator.
func (e *Exchange) Cancel(actorID uuid.UUID, isAdmin bool, reason CancelReason, details string, now time.Time) error {
	if !isAdmin {
		if _, err := e.PartyOf(actorID); err != nil {
			return err
		}
	}
	details = strings.TrimSpace(details)
	if len(details) > MaxDetailsLength {
		return ErrDetailsTooLong
	}
	next, err := nextStatus(e.status, ActionCancel)
	if err != nil {
		return err
	}
	e.status = next
	e.cancellation = &Cancellation{Reason: reason, Details: details}
	e.touch(now)
	return nil
}

func (e *Exchange) touch(now time.Time) {
	e.version++
	e.updatedAt = now
}

func (e *Exchange) ID() uuid.UUID                  { return e.id }
func (e *Exchange) RequestID() uuid.UUID           { return e.requestID }
func (e *Exchange) MemberAID() uuid.UUID           { return e.memberAID }
func (e *Exchange) MemberBID() uuid.UUID           { return e.memberBID }
func (e *Exchange) Status() Status                 { return e.status }
func (e *Exchange) MemberAConfirmed() bool         { return e.memberAConfirmed }
func (e *Exchange) MemberBConfirmed() bool         { return e.memberBConfirmed }
func (e *Exchange) MemberAConfirmedAt() *time.Time { return e.memberAConfirmedAt }
func (e *Exchange) MemberBConfirmedAt() *time.Time { return e.memberBConfirmedAt }
func (e *Exchange) CompletedAt() *time.Time        { return e.completedAt }
func (e *Exchange) Meeting() *Meeting              { return e.meeting }
func (e *Exchange) Cancellation() *Cancellation    { return e.cancellation }
func (e *Exchange) Books() []BookTransfer          { return e.books }
func (e *Exchange) Version() int64                 { return e.version }
func (e *Exchange) CreatedAt() time.Time           { return e.createdAt }
func (e *Exchange) UpdatedAt() time.Time           { return e.updatedAt }
