package commands

import "bookswap/internal/pkg/errs"

// Usecase-level failure taxonomy. Handlers map these onto HTTP statuses;
// repositories and domain errors are marked with one of these before they
// leave the usecase layer.
var (
	ErrRequestNotFound    = errs.New("exchange request not found")
	ErrExchangeNotFound   = errs.New("exchange not found")
	ErrSuggestionNotFound = errs.New("suggestion not found")
	ErrBookNotFound       = errs.New("book not found")
	ErrMemberNotFound     = errs.New("member not found")

	// InvalidOwnership: a referenced book is not owned by the claimed party
	ErrInvalidOwnership = errs.New("book not owned by the claimed party")
	// Forbidden: the actor is not a party to the request/exchange
	ErrForbidden = errs.New("actor is not a party to this operation")
	// InvalidState: the operation is not legal in the entity's current status
	ErrInvalidState = errs.New("operation not allowed in current state")
	// ValidationError: malformed input
	ErrValidation = errs.New("validation error")
	// Conflict: concurrent-write race still present after internal retries
	ErrConflict = errs.New("concurrent update conflict")

	ErrDatabaseOperationFailed = errs.New("database operation failed")
)
