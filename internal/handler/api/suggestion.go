package api

import (
	"net/http"
	"strconv"
	"time"

	resdto "bookswap/internal/handler/dto/response"
	"bookswap/internal/handler/httperr"
	"bookswap/internal/handler/middleware"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SuggestionHandler struct {
	cmds commands.SuggestionCommands
	q    queries.SuggestionQueries
}

func NewSuggestionHandler(cmds commands.SuggestionCommands, q queries.SuggestionQueries) *SuggestionHandler {
	return &SuggestionHandler{cmds: cmds, q: q}
}

// @Summary Generate suggestions
// @Description Run a suggestion generation pass for the caller
// @Tags suggestions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.GenerateSuggestionsResponse
// @Failure 404 {object} map[string]string
// @Router /suggestions/generate [post]
func (h *SuggestionHandler) Generate(c *gin.Context) {
	actorID, ok := middleware.GetMemberID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}

	result, err := h.cmds.Generate(c.Request.Context(), actorID)
	if err != nil {
		abortCommandErr(c, err, "Generate suggestions failed")
		return
	}
	c.JSON(http.StatusOK, resdto.GenerateSuggestionsResponse{
		Generated: result.Generated,
		Skipped:   result.Skipped,
	})
}

// @Summary List own suggestions
// @Description List the caller's live suggestions ranked by score
// @Tags suggestions
// @Produce json
// @Security BearerAuth
// @Param include_viewed query bool false "Include already-viewed suggestions"
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.SuggestionListItemResponse
// @Router /suggestions [get]
func (h *SuggestionHandler) List(c *gin.Context) {
	actorID, ok := middleware.GetMemberID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}

	filters := queries.SuggestionFilters{
		IncludeViewed: c.Query("include_viewed") == "true",
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.q.ListForMember(c.Request.Context(), actorID, filters, time.Now(), limit)
	if err != nil {
		abortQueryErr(c, err, "Failed to list suggestions")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSuggestionList(items))
}

// @Summary Get suggestion
// @Description Get a suggestion with its book pairs; subject only
// @Tags suggestions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Suggestion ID"
// @Success 200 {object} resdto.SuggestionResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /suggestions/{id} [get]
func (h *SuggestionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetMemberID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetMemberRole(c)

	view, err := h.q.GetByID(c.Request.Context(), id, actorID, role)
	if err != nil {
		abortQueryErr(c, err, "Failed to load suggestion")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSuggestionView(view))
}

// @Summary Mark suggestion viewed
// @Description Mark a suggestion as seen; subject only, idempotent
// @Tags suggestions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Suggestion ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /suggestions/{id}/view [post]
func (h *SuggestionHandler) MarkViewed(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetMemberID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}

	if err = h.cmds.MarkViewed(c.Request.Context(), id, actorID); err != nil {
		abortCommandErr(c, err, "Mark viewed failed")
		return
	}
	c.Status(http.StatusNoContent)
}
