package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	httpmw "github.com/johnquangdev/meeting-minutes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	authMiddleware echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers.
// A nil authMiddleware leaves the API open, for local single-user setups.
func NewRouter(cfg *config.Config, meetingHandler *Meeting, authMiddleware echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		authMiddleware: authMiddleware,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")
	if rt.authMiddleware != nil {
		v1.Use(rt.authMiddleware)
	}

	rt.setupMeetingRoutes(v1)
}

// setupMeetingRoutes configures meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	// Writes need an editor token when auth is on
	var write []echo.MiddlewareFunc
	if rt.authMiddleware != nil {
		write = append(write, httpmw.RequireWrite())
	}

	if rt.meetingHandler == nil {
		meetings.Any("", rt.notImplemented)
		meetings.Any("/*", rt.notImplemented)
		g.GET("/stats", rt.notImplemented)
		return
	}

	h := rt.meetingHandler
	meetings.GET("", h.ListMeetings)
	meetings.POST("", h.CreateMeeting, write...)
	meetings.GET("/:id", h.GetMeeting)
	meetings.DELETE("/:id", h.DeleteMeeting, write...)
	meetings.PUT("/:id/minutes", h.UpdateMinutes, write...)
	meetings.PUT("/:id/speakers", h.RenameSpeakers, write...)
	meetings.POST("/:id/summarize", h.RegenerateMinutes, write...)
	meetings.GET("/:id/export", h.ExportMeeting)
	g.GET("/stats", h.Statistics)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	environment := ""
	if rt.cfg != nil {
		environment = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": environment,
		"time":        time.Now().Format(time.RFC3339),
	})
}
