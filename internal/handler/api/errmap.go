package api

import (
	"errors"
	"net/http"

	"bookswap/internal/handler/httperr"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// errMissingIdentity covers the unreachable case where an authenticated
// route runs without the middleware having set the member identity.
var errMissingIdentity = errors.New("authenticated member missing from context")

// abortCommandErr translates the usecase failure taxonomy onto HTTP.
func abortCommandErr(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrRequestNotFound),
		errors.Is(err, commands.ErrExchangeNotFound),
		errors.Is(err, commands.ErrSuggestionNotFound),
		errors.Is(err, commands.ErrBookNotFound),
		errors.Is(err, commands.ErrMemberNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, msg, nil)
	case errors.Is(err, commands.ErrInvalidOwnership):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, msg, nil)
	case errors.Is(err, commands.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, msg, nil)
	case errors.Is(err, commands.ErrInvalidState),
		errors.Is(err, commands.ErrConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, msg, nil)
	case errors.Is(err, commands.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func abortQueryErr(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, queries.ErrRequestNotFound),
		errors.Is(err, queries.ErrExchangeNotFound),
		errors.Is(err, queries.ErrSuggestionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, msg, nil)
	case errors.Is(err, queries.ErrAccessDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err, msg, nil)
	case errors.Is(err, queries.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
