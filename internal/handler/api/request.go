package api

import (
	"net/http"
	"strconv"

	reqdto "bookswap/internal/handler/dto/request"
	resdto "bookswap/internal/handler/dto/response"
	"bookswap/internal/handler/httperr"
	"bookswap/internal/handler/middleware"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestHandler struct {
	cmds commands.RequestCommands
	q    queries.RequestQueries
}

func NewRequestHandler(cmds commands.RequestCommands, q queries.RequestQueries) *RequestHandler {
	return &RequestHandler{cmds: cmds, q: q}
}

// @Summary Create exchange request
// @Description Propose a book exchange to another member
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateExchangeRequestRequest true "Create request"
// @Success 201 {object} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	actorID, ok := middleware.GetMemberID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateExchangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), actorID, req.ToInput())
	if err != nil {
		abortCommandErr(c, err, "Create request failed")
		return
	}

	role, _ := middleware.GetMemberRole(c)
	view, err := h.q.GetByID(c.Request.Context(), id, actorID, role)
	if err != nil {
		abortQueryErr(c, err, "Failed to load request")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRequestView(view))
}

// @Summary Get exchange request
// @Description Get an exchange request by ID; parties only
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
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
		abortQueryErr(c, err, "Failed to load request")
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary List own exchange requests
// @Description List the caller's incoming or outgoing requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param direction query string false "incoming or outgoing"
// @Param status query string false "Status filter"
// @Param cursor query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.RequestListResponse
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	actorID, ok := middleware.GetMemberID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}

	filters := queries.RequestFilters{
		Direction: queries.RequestDirection(c.Query("direction")),
	}
	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	var cursor *queries.Cursor
	if after := c.Query("cursor"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.ListForMember(c.Request.Context(), actorID, filters, cursor, limit)
	if err != nil {
		abortQueryErr(c, err, "Failed to list requests")
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestList(items, next))
}

// @Summary Respond to exchange request
// @Description Accept or reject a pending request; receiver only. Accepting creates the exchange.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.RespondRequestRequest true "Respond request"
// @Success 200 {object} resdto.RequestResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/respond [post]
func (h *RequestHandler) Respond(c *gin.Context) {
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
	var req reqdto.RespondRequestRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	_, err = h.cmds.Respond(c.Request.Context(), id, actorID,
		commands.RespondAction(req.Action), req.RejectionReason)
	if err != nil {
		abortCommandErr(c, err, "Respond failed")
		return
	}

	role, _ := middleware.GetMemberRole(c)
	view, err := h.q.GetByID(c.Request.Context(), id, actorID, role)
	if err != nil {
		abortQueryErr(c, err, "Failed to load request")
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary Cancel exchange request
// @Description Cancel a pending request; requester only
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id} [delete]
func (h *RequestHandler) Cancel(c *gin.Context) {
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

	if err = h.cmds.Cancel(c.Request.Context(), id, actorID); err != nil {
		abortCommandErr(c, err, "Cancel failed")
		return
	}
	c.Status(http.StatusNoContent)
}
