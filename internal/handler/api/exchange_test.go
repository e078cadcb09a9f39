//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

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

type ExchangeHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockExchangeCommands
	mockQueries  *queriesmock.MockExchangeQueries
	handler      *api.ExchangeHandler
	actorID      uuid.UUID
}

func (s *ExchangeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockExchangeCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockExchangeQueries(s.mockCtrl)
	s.handler = api.NewExchangeHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("member_id", s.actorID)
		c.Set("member_role", queries.RoleMember)
		c.Next()
	}

	s.router.GET("/exchanges", authMiddleware, s.handler.List)
	s.router.GET("/exchanges/:id", authMiddleware, s.handler.Get)
	s.router.PUT("/exchanges/:id/meeting", authMiddleware, s.handler.ProposeMeeting)
	s.router.POST("/exchanges/:id/meeting/confirm", authMiddleware, s.handler.ConfirmMeeting)
	s.router.POST("/exchanges/:id/start", authMiddleware, s.handler.Start)
	s.router.POST("/exchanges/:id/complete", authMiddleware, s.handler.ConfirmCompletion)
	s.router.POST("/exchanges/:id/cancel", authMiddleware, s.handler.Cancel)
}

func (s *ExchangeHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestExchangeHandlerSuite(t *testing.T) {
	suite.Run(t, new(ExchangeHandlerTestSuite))
}

func (s *ExchangeHandlerTestSuite) expectRefreshedView(view *queries.ExchangeView) {
	s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.actorID, queries.RoleMember).
		Return(view, nil).Times(1)
}

// ================================================================================
// TestProposeMeeting
// ================================================================================

func (s *ExchangeHandlerTestSuite) TestProposeMeeting() {
	b := builder.NewExchangeBuilder()
	view := b.BuildViewQuery()
	url := "/exchanges/" + view.ID.String() + "/meeting"
	reqBody := b.BuildProposeMeetingDTO(time.Now().Add(24 * time.Hour))

	s.Run("success: returns the refreshed exchange", func() {
		s.mockCommands.EXPECT().
			ProposeMeeting(gomock.Any(), view.ID, s.actorID, gomock.Any()).
			Return(nil).Times(1)
		s.expectRefreshedView(view)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID.String(), body["id"])
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing location", mutate: testutil.Field("location", nil)},
			{name: "missing time", mutate: testutil.Field("time", nil)},
			{name: "latitude out of range", mutate: testutil.Field("lat", 91.0)},
			{name: "longitude out of range", mutate: testutil.Field("lng", -181.0)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 409 when the exchange already started", func() {
		s.mockCommands.EXPECT().
			ProposeMeeting(gomock.Any(), view.ID, s.actorID, gomock.Any()).
			Return(commands.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 403 when not a party", func() {
		s.mockCommands.EXPECT().
			ProposeMeeting(gomock.Any(), view.ID, s.actorID, gomock.Any()).
			Return(commands.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// TestLifecycleEndpoints
// ================================================================================

func (s *ExchangeHandlerTestSuite) TestConfirmMeeting() {
	view := builder.NewExchangeBuilder().BuildViewQuery()
	view.Status = "meeting_scheduled"
	url := "/exchanges/" + view.ID.String() + "/meeting/confirm"

	s.Run("success: second confirmation schedules the meeting", func() {
		s.mockCommands.EXPECT().ConfirmMeeting(gomock.Any(), view.ID, s.actorID).
			Return(true, nil).Times(1)
		s.expectRefreshedView(view)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("meeting_scheduled", body["status"])
	})

	s.Run("error: 409 without a proposed meeting", func() {
		s.mockCommands.EXPECT().ConfirmMeeting(gomock.Any(), view.ID, s.actorID).
			Return(false, commands.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *ExchangeHandlerTestSuite) TestStart() {
	view := builder.NewExchangeBuilder().BuildViewQuery()
	view.Status = "in_progress"
	url := "/exchanges/" + view.ID.String() + "/start"

	s.Run("success", func() {
		s.mockCommands.EXPECT().Start(gomock.Any(), view.ID, s.actorID).Return(nil).Times(1)
		s.expectRefreshedView(view)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("in_progress", body["status"])
	})

	s.Run("error: 409 before both meeting confirmations", func() {
		s.mockCommands.EXPECT().Start(gomock.Any(), view.ID, s.actorID).
			Return(commands.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *ExchangeHandlerTestSuite) TestConfirmCompletion() {
	view := builder.NewExchangeBuilder().BuildViewQuery()
	view.Status = "completed"
	url := "/exchanges/" + view.ID.String() + "/complete"

	s.Run("success: completion after both confirm", func() {
		s.mockCommands.EXPECT().ConfirmCompletion(gomock.Any(), view.ID, s.actorID).
			Return(true, nil).Times(1)
		s.expectRefreshedView(view)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("completed", body["status"])
	})

	s.Run("error: 409 when a concurrent update won", func() {
		s.mockCommands.EXPECT().ConfirmCompletion(gomock.Any(), view.ID, s.actorID).
			Return(false, commands.ErrConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *ExchangeHandlerTestSuite) TestCancel() {
	b := builder.NewExchangeBuilder()
	view := b.BuildViewQuery()
	view.Status = "cancelled"
	url := "/exchanges/" + view.ID.String() + "/cancel"
	reqBody := b.BuildCancelDTO()

	s.Run("success", func() {
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), view.ID, s.actorID, commands.CancelExchangeInput{Reason: "user_cancelled", Details: "Schedule conflict"}).
			Return(nil).Times(1)
		s.expectRefreshedView(view)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body["status"])
	})

	s.Run("error: 400 on missing reason", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("reason", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 409 when already terminal", func() {
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), view.ID, s.actorID, gomock.Any()).
			Return(commands.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *ExchangeHandlerTestSuite) TestList() {
	s.Run("success: filters by status", func() {
		items := []*queries.ExchangeListItem{builder.NewExchangeBuilder().BuildListItem()}
		status := "accepted"

		s.mockQueries.EXPECT().
			ListForMember(gomock.Any(), s.actorID, queries.ExchangeFilters{Status: &status}, nil, 0).
			Return(items, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/exchanges?status=accepted", nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body["items"], 1)
	})
}
