package routes

import (
	"net/http"

	"folio/internal/handlers"
	"folio/internal/services"
	"folio/internal/tasks/rate"

	"github.com/labstack/echo/v4"
)

// SetupAssistantRoutes mounts the chat endpoint. limiter may be nil,
// in which case only the global per-process rate limit applies.
func SetupAssistantRoutes(e *echo.Echo, assistant *services.AssistantService, limiter *rate.Limiter) {
	assistantHandler := handlers.NewAssistantHandler(assistant)

	base := e.Group("/api/v1")
	if limiter != nil {
		base.Use(chatRateLimit(limiter))
	}
	base.POST("/assistant/chat", assistantHandler.Chat)
}

// chatRateLimit throttles per client IP. Completion calls are the
// most expensive thing this server does, so the window is shared
// across instances through redis.
func chatRateLimit(limiter *rate.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				// Redis trouble should not take the assistant down.
				return next(c)
			}
			if !allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Too many requests, slow down",
				})
			}
			return next(c)
		}
	}
}
