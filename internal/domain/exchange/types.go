package exchange

import "errors"

var (
	ErrNotParty             = errors.New("member is not a party to this exchange")
	ErrInvalidTransition    = errors.New("exchange status does not allow this action")
	ErrTerminalState        = errors.New("exchange is already in a terminal state")
	ErrMeetingNotProposable = errors.New("meeting can only be proposed before the exchange starts")
	ErrMeetingInPast        = errors.New("meeting time must be in the future")
	ErrNoMeetingProposed    = errors.New("no meeting has been proposed")
	ErrMeetingNotConfirmed  = errors.New("both parties must confirm the meeting first")
	ErrLocationTooLong      = errors.New("meeting location exceeds maximum length")
	ErrNotesTooLong         = errors.New("meeting notes exceed maximum length")
	ErrEmptyLocation        = errors.New("meeting location is required")
	ErrDetailsTooLong       = errors.New("cancellation details exceed maximum length")
	ErrUnknownStatus        = errors.New("unknown exchange status")
	ErrUnknownCancelReason  = errors.New("unknown cancellation reason")
	ErrNoBooks              = errors.New("an exchange must move at least one book")
)

const (
	MaxLocationLength = 255
	MaxNotesLength    = 500
	MaxDetailsLength  = 500
)

type Status string

const (
	StatusPending          Status = "pending"
	StatusAccepted         Status = "accepted"
	StatusMeetingScheduled Status = "meeting_scheduled"
	StatusInProgress       Status = "in_progress"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusMeetingScheduled,
		StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrUnknownStatus
}

func (s Status) String() string { return string(s) }

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type CancelReason string

const (
	CancelUserCancelled  CancelReason = "user_cancelled"
	CancelNoShow         CancelReason = "no_show"
	CancelBothNoShow     CancelReason = "both_no_show"
	CancelDispute        CancelReason = "dispute"
	CancelAdminCancelled CancelReason = "admin_cancelled"
)

func NewCancelReason(s string) (CancelReason, error) {
	switch CancelReason(s) {
	case CancelUserCancelled, CancelNoShow, CancelBothNoShow,
		CancelDispute, CancelAdminCancelled:
		return CancelReason(s), nil
	}
	return "", ErrUnknownCancelReason
}

func (r CancelReason) String() string { return string(r) }

// Party identifies which side of the exchange a member is on.
type Party string

const (
	PartyA Party = "a"
	PartyB Party = "b"
)
