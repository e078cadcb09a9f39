package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bookswap/internal/handler/api"
	"bookswap/internal/handler/middleware"
	"bookswap/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	requestHandler *api.RequestHandler,
	exchangeHandler *api.ExchangeHandler,
	suggestionHandler *api.SuggestionHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, requestHandler, exchangeHandler, suggestionHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	requestHandler *api.RequestHandler,
	exchangeHandler *api.ExchangeHandler,
	suggestionHandler *api.SuggestionHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		requests := apiGroup.Group("/requests")
		requests.Use(authMiddleware.RequireAuth())
		{
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "", Handler: requestHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: requestHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: requestHandler.Get},
				{Method: http.MethodPost, Path: "/:id/respond", Handler: requestHandler.Respond},
				{Method: http.MethodDelete, Path: "/:id", Handler: requestHandler.Cancel},
			})
		}

		exchanges := apiGroup.Group("/exchanges")
		exchanges.Use(authMiddleware.RequireAuth())
		{
			addRoutes(exchanges, []route{
				{Method: http.MethodGet, Path: "", Handler: exchangeHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: exchangeHandler.Get},
				{Method: http.MethodPut, Path: "/:id/meeting", Handler: exchangeHandler.ProposeMeeting},
				{Method: http.MethodPost, Path: "/:id/meeting/confirm", Handler: exchangeHandler.ConfirmMeeting},
				{Method: http.MethodPost, Path: "/:id/start", Handler: exchangeHandler.Start},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: exchangeHandler.ConfirmCompletion},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: exchangeHandler.Cancel},
			})
		}

		suggestions := apiGroup.Group("/suggestions")
		suggestions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(suggestions, []route{
				{Method: http.MethodPost, Path: "/generate", Handler: suggestionHandler.Generate},
				{Method: http.MethodGet, Path: "", Handler: suggestionHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: suggestionHandler.Get},
				{Method: http.MethodPost, Path: "/:id/view", Handler: suggestionHandler.MarkViewed},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
