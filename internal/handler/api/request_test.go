//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"bookswap/internal/handler/api"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"
	"bookswap/tests/common/builder"
	"bookswap/tests/common/httptest"
	"bookswap/tests/common/testutil"
	commandsmock "bookswap/tests/mock/commands"
	queriesmock "bookswap/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RequestHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRequestCommands
	mockQueries  *queriesmock.MockRequestQueries
	handler      *api.RequestHandler
	actorID      uuid.UUID
}

func (s *RequestHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRequestCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRequestQueries(s.mockCtrl)
	s.handler = api.NewRequestHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("member_id", s.actorID)
		c.Set("member_role", queries.RoleMember)
		c.Next()
	}

	s.router.POST("/requests", authMiddleware, s.handler.Create)
	s.router.GET("/requests", authMiddleware, s.handler.List)
	s.router.GET("/requests/:id", authMiddleware, s.handler.Get)
	s.router.POST("/requests/:id/respond", authMiddleware, s.handler.Respond)
	s.router.DELETE("/requests/:id", authMiddleware, s.handler.Cancel)
}

func (s *RequestHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRequestHandlerSuite(t *testing.T) {
	suite.Run(t, new(RequestHandlerTestSuite))
}

type testCaseRequest struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *RequestHandlerTestSuite) TestCreate() {
	url := "/requests"

	b := builder.NewRequestBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildViewQuery()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.actorID, gomock.Any()).
			Return(returnView.ID, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID, s.actorID, queries.RoleMember).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID.String(), body["id"])
		s.Equal("pending", body["status"])
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseRequest{
			{name: "missing field: receiver_id", mutate: testutil.Field("receiver_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: offered_book_ids", mutate: testutil.Field("offered_book_ids", nil), expectCode: http.StatusBadRequest},
			{name: "empty offered_book_ids", mutate: testutil.Field("offered_book_ids", []string{}), expectCode: http.StatusBadRequest},
			{name: "missing field: requested_book_ids", mutate: testutil.Field("requested_book_ids", nil), expectCode: http.StatusBadRequest},
			{name: "message too long", mutate: testutil.Field("message", strings.Repeat("a", 501)), expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: command failures map onto status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "unknown book", err: commands.ErrBookNotFound, expectCode: http.StatusNotFound},
			{name: "book owned by someone else", err: commands.ErrInvalidOwnership, expectCode: http.StatusUnprocessableEntity},
			{name: "book unavailable", err: commands.ErrInvalidState, expectCode: http.StatusConflict},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), s.actorID, gomock.Any()).
					Return(uuid.Nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *RequestHandlerTestSuite) TestGet() {
	returnView := builder.NewRequestBuilder().BuildViewQuery()

	s.Run("success: returns the request", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID, s.actorID, queries.RoleMember).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests/"+returnView.ID.String(), nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.ID.String(), body["id"])
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 403 when not a party", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id, s.actorID, queries.RoleMember).
			Return(nil, queries.ErrAccessDenied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 404 when missing", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id, s.actorID, queries.RoleMember).
			Return(nil, queries.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *RequestHandlerTestSuite) TestList() {
	s.Run("success: returns items and next cursor", func() {
		items := []*queries.RequestListItem{
			builder.NewRequestBuilder().BuildListItem(),
			builder.NewRequestBuilder().BuildListItem(),
		}
		next := &queries.Cursor{After: "v1:cursor"}

		s.mockQueries.EXPECT().
			ListForMember(gomock.Any(), s.actorID, queries.RequestFilters{Direction: queries.DirectionIncoming}, nil, 0).
			Return(items, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests?direction=incoming", nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body["items"], 2)
		s.Equal("v1:cursor", body["next_cursor"])
	})

	s.Run("error: 400 on invalid cursor", func() {
		s.mockQueries.EXPECT().
			ListForMember(gomock.Any(), s.actorID, gomock.Any(), &queries.Cursor{After: "bogus"}, 0).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests?cursor=bogus", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestRespond
// ================================================================================

func (s *RequestHandlerTestSuite) TestRespond() {
	returnView := builder.NewRequestBuilder().BuildViewQuery()
	returnView.Status = "accepted"
	url := "/requests/" + returnView.ID.String() + "/respond"

	s.Run("success: accepting returns the refreshed request", func() {
		exchangeID := uuid.New()
		s.mockCommands.EXPECT().
			Respond(gomock.Any(), returnView.ID, s.actorID, commands.RespondAccept, "").
			Return(&commands.RespondResult{Status: "accepted", ExchangeID: &exchangeID}, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID, s.actorID, queries.RoleMember).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"action": "accept"}, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("accepted", body["status"])
	})

	s.Run("error: 400 on unknown action", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"action": "maybe"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 403 when responder is not the receiver", func() {
		s.mockCommands.EXPECT().
			Respond(gomock.Any(), returnView.ID, s.actorID, commands.RespondAccept, "").
			Return(nil, commands.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"action": "accept"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 409 when already responded", func() {
		s.mockCommands.EXPECT().
			Respond(gomock.Any(), returnView.ID, s.actorID, commands.RespondReject, "busy").
			Return(nil, commands.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"action": "reject", "rejection_reason": "busy"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *RequestHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/requests/" + id.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.actorID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 when not the requester", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.actorID).Return(commands.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}
