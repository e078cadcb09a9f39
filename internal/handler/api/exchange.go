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

type ExchangeHandler struct {
	cmds commands.ExchangeCommands
	q    queries.ExchangeQueries
}

func NewExchangeHandler(cmds commands.ExchangeCommands, q queries.ExchangeQueries) *ExchangeHandler {
	return &ExchangeHandler{cmds: cmds, q: q}
}

// @Summary Get exchange
// @Description Get an exchange by ID; parties only
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exchange ID"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /exchanges/{id} [get]
func (h *ExchangeHandler) Get(c *gin.Context) {
	id, actorID, role, ok := h.identify(c)
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, actorID, role)
	if err != nil {
		abortQueryErr(c, err, "Failed to load exchange")
		return
	}
	c.JSON(http.StatusOK, resdto.FromExchangeView(view))
}

// @Summary List own exchanges
// @Description List the caller's exchanges newest first
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param cursor query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.ExchangeListResponse
// @Router /exchanges [get]
func (h *ExchangeHandler) List(c *gin.Context) {
	actorID, ok := middleware.GetMemberID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}

	var filters queries.ExchangeFilters
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
		abortQueryErr(c, err, "Failed to list exchanges")
		return
	}
	c.JSON(http.StatusOK, resdto.FromExchangeList(items, next))
}

// @Summary Propose meeting
// @Description Propose or replace the meeting for an exchange; replacing resets both confirmations
// @Tags exchanges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exchange ID"
// @Param request body reqdto.ProposeMeetingRequest true "Propose meeting request"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /exchanges/{id}/meeting [put]
func (h *ExchangeHandler) ProposeMeeting(c *gin.Context) {
	id, actorID, role, ok := h.identify(c)
	if !ok {
		return
	}
	var req reqdto.ProposeMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err := h.cmds.ProposeMeeting(c.Request.Context(), id, actorID, req.ToInput()); err != nil {
		abortCommandErr(c, err, "Propose meeting failed")
		return
	}
	h.respondWithView(c, id, actorID, role)
}

// @Summary Confirm meeting
// @Description Confirm the proposed meeting; the second confirmation schedules it
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exchange ID"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /exchanges/{id}/meeting/confirm [post]
func (h *ExchangeHandler) ConfirmMeeting(c *gin.Context) {
	id, actorID, role, ok := h.identify(c)
	if !ok {
		return
	}

	if _, err := h.cmds.ConfirmMeeting(c.Request.Context(), id, actorID); err != nil {
		abortCommandErr(c, err, "Confirm meeting failed")
		return
	}
	h.respondWithView(c, id, actorID, role)
}

// @Summary Start exchange
// @Description Move a meeting-confirmed exchange into progress
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exchange ID"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /exchanges/{id}/start [post]
func (h *ExchangeHandler) Start(c *gin.Context) {
	id, actorID, role, ok := h.identify(c)
	if !ok {
		return
	}

	if err := h.cmds.Start(c.Request.Context(), id, actorID); err != nil {
		abortCommandErr(c, err, "Start failed")
		return
	}
	h.respondWithView(c, id, actorID, role)
}

// @Summary Confirm completion
// @Description Confirm the handover happened; the second confirmation completes the exchange
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exchange ID"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /exchanges/{id}/complete [post]
func (h *ExchangeHandler) ConfirmCompletion(c *gin.Context) {
	id, actorID, role, ok := h.identify(c)
	if !ok {
		return
	}

	if _, err := h.cmds.ConfirmCompletion(c.Request.Context(), id, actorID); err != nil {
		abortCommandErr(c, err, "Confirm completion failed")
		return
	}
	h.respondWithView(c, id, actorID, role)
}

// @Summary Cancel exchange
// @Description Cancel a non-terminal exchange; parties or administrators
// @Tags exchanges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exchange ID"
// @Param request body reqdto.CancelExchangeRequest true "Cancel exchange request"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /exchanges/{id}/cancel [post]
func (h *ExchangeHandler) Cancel(c *gin.Context) {
	id, actorID, role, ok := h.identify(c)
	if !ok {
		return
	}
	var req reqdto.CancelExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err := h.cmds.Cancel(c.Request.Context(), id, actorID, req.ToInput()); err != nil {
		abortCommandErr(c, err, "Cancel failed")
		return
	}
	h.respondWithView(c, id, actorID, role)
}

func (h *ExchangeHandler) identify(c *gin.Context) (exchangeID, actorID uuid.UUID, role string, ok bool) {
	exchangeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, uuid.Nil, "", false
	}
	actorID, found := middleware.GetMemberID(c)
	if !found {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, "", false
	}
	role, _ = middleware.GetMemberRole(c)
	return exchangeID, actorID, role, true
}

func (h *ExchangeHandler) respondWithView(c *gin.Context, id, actorID uuid.UUID, role string) {
	view, err := h.q.GetByID(c.Request.Context(), id, actorID, role)
	if err != nil {
		abortQueryErr(c, err, "Failed to load exchange")
		return
	}
	c.JSON(http.StatusOK, resdto.FromExchangeView(view))
}
