package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookLine is one book referenced by a request, attributed to the party
// that owns it.
type BookLine struct {
	BookID  uuid.UUID
	OwnerID uuid.UUID
	Role    BookRole
}

type Request struct {
	id              uuid.UUID
	requesterID     uuid.UUID
	receiverID      uuid.UUID
	status          Status
	message         string
	rejectionReason *string
	books           []BookLine
	respondedAt     *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewRequest creates a pending request. Ownership against the live
// directory is checked by the caller; the entity enforces the structural
// invariants: distinct parties, non-empty book lists on both sides, and
// every line attributed to the party its role implies.
func NewRequest(requesterID, receiverID uuid.UUID, books []BookLine, message string, now time.Time) (*Request, error) {
	if requesterID == receiverID {
		return nil, ErrSelfRequest
	}

	message = strings.TrimSpace(message)
	if len(message) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	var offered, requested int
	seen := make(map[uuid.UUID]struct{}, len(books))
	for _, b := range books {
		if _, dup := seen[b.BookID]; dup {
			return nil, ErrDuplicateBook
		}
		seen[b.BookID] = struct{}{}

		switch b.Role {
		case RoleOffered:
			if b.OwnerID != requesterID {
				return nil, ErrBookNotOwnedByParty
			}
			offered++
		case RoleRequested:
			if b.OwnerID != receiverID {
				return nil, ErrBookNotOwnedByParty
			}
			requested++
		}
	}
	if offered == 0 {
		return nil, ErrNoOfferedBooks
	}
	if requested == 0 {
		return nil, ErrNoRequestedBooks
	}

	return &Request{
		id:          uuid.New(),
		requesterID: requesterID,
		receiverID:  receiverID,
		status:      StatusPending,
		message:     message,
		books:       books,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructRequest(
	id, requesterID, receiverID uuid.UUID,
	status Status,
	message string,
	rejectionReason *string,
	books []BookLine,
	respondedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Request {
	return &Request{
		id:              id,
		requesterID:     requesterID,
		receiverID:      receiverID,
		status:          status,
		message:         message,
		rejectionReason: rejectionReason,
		books:           books,
		respondedAt:     respondedAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Accept moves a pending request to accepted. The paired exchange is
// created by the caller in the same transaction.
func (r *Request) Accept(responderID uuid.UUID, now time.Time) error {
	if responderID != r.receiverID {
		return ErrNotReceiver
	}
	next, err := nextStatus(r.status, ActionAccept)
	if err != nil {
		return err
	}
	r.status = next
	r.respondedAt = &now
	r.updatedAt = now
	return nil
}

func (r *Request) Reject(responderID uuid.UUID, reason string, now time.Time) error {
	if responderID != r.receiverID {
		return ErrNotReceiver
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrMissingRejectReason
	}
	next, err := nextStatus(r.status, ActionReject)
	if err != nil {
		return err
	}
	r.status = next
	r.rejectionReason = &reason
	r.respondedAt = &now
	r.updatedAt = now
	return nil
}

func (r *Request) Cancel(actorID uuid.UUID, now time.Time) error {
	if actorID != r.requesterID {
		return ErrNotRequester
	}
	next, err := nextStatus(r.status, ActionCancel)
	if err != nil {
		return err
	}
	r.status = next
	r.updatedAt = now
	return nil
}

func (r *Request) OfferedBooks() []BookLine {
	return r.booksByRole(RoleOffered)
}

func (r *Request) RequestedBooks() []BookLine {
	return r.booksByRole(RoleRequested)
}

func (r *Request) booksByRole(role BookRole) []BookLine {
	var out []BookLine
	for _, b := range r.books {
		if b.Role == role {
			out = append(out, b)
		}
	}
	return out
}

func (r *Request) IsParty(memberID uuid.UUID) bool {
	return memberID == r.requesterID || memberID == r.receiverID
}

func (r *Request) ID() uuid.UUID            { return r.id }
func (r *Request) RequesterID() uuid.UUID   { return r.requesterID }
func (r *Request) ReceiverID() uuid.UUID    { return r.receiverID }
func (r *Request) Status() Status           { return r.status }
func (r *Request) Message() string          { return r.message }
func (r *Request) RejectionReason() *string { return r.rejectionReason }
func (r *Request) Books() []BookLine        { return r.books }
func (r *Request) RespondedAt() *time.Time  { return r.respondedAt }
func (r *Request) CreatedAt() time.Time     { return r.createdAt }
func (r *Request) UpdatedAt() time.Time     { return r.updatedAt }
