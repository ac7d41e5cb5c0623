package routes

import (
	"folio/internal/api/middleware"
	"folio/internal/handlers"
	"folio/internal/services"
	"folio/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

func SetupGrantRoutes(e *echo.Echo, grants *services.GrantService, auth *middleware.AuthMiddleware) {
	log := logger.New("grant_routes")

	grantHandler := handlers.NewGrantHandler(grants)

	admin := e.Group("/api/v1/admin")
	admin.Use(auth.Middleware())
	admin.Use(middleware.RequireAdmin())

	admin.POST("/grants", grantHandler.IssueGrant)

	log.Success("Grant routes initialized successfully")
}
