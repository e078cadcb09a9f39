package queries

import "bookswap/internal/pkg/errs"

// Roles carried in the access token.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

var (
	ErrRequestNotFound    = errs.New("exchange request not found")
	ErrExchangeNotFound   = errs.New("exchange not found")
	ErrSuggestionNotFound = errs.New("suggestion not found")
	ErrAccessDenied       = errs.New("actor may not read this resource")
	ErrInvalidCursor      = errs.New("invalid pagination cursor")
)

func canReadAsParty(actorRole string, actorIsParty bool) bool {
	return actorRole == RoleAdmin || actorIsParty
}
