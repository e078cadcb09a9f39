package errs

import "errors"

// Domain-specific sentinel errors for the usecase layers
var (
	// Request negotiation errors
	ErrRequestNotFound = errors.New("exchange request not found")

	// Exchange errors
	ErrExchangeNotFound = errors.New("exchange not found")

	// Suggestion errors
	ErrSuggestionNotFound = errors.New("suggestion not found")

	// Directory errors
	ErrBookNotFound   = errors.New("book not found")
	ErrMemberNotFound = errors.New("member not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
