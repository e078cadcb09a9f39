package request

import "errors"

var (
	ErrSelfRequest         = errors.New("requester and receiver must differ")
	ErrNoOfferedBooks      = errors.New("at least one offered book is required")
	ErrNoRequestedBooks    = errors.New("at least one requested book is required")
	ErrBookNotOwnedByParty = errors.New("book is not owned by the attributed party")
	ErrDuplicateBook       = errors.New("book listed more than once")
	ErrNotReceiver         = errors.New("only the receiver may respond")
	ErrNotRequester        = errors.New("only the requester may cancel")
	ErrMissingRejectReason = errors.New("rejection reason is required")
	ErrMessageTooLong      = errors.New("message exceeds maximum length")
	ErrInvalidTransition   = errors.New("request status does not allow this action")
	ErrUnknownStatus       = errors.New("unknown request status")
)

const MaxMessageLength = 500

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrUnknownStatus
}

func (s Status) String() string { return string(s) }

func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// BookRole tags a request line as offered by the requester or requested
// from the receiver.
type BookRole string

const (
	RoleOffered   BookRole = "offered"
	RoleRequested BookRole = "requested"
)
