package api

import (
	"net/http"

	"folio/internal/api/middleware"
	"folio/internal/handlers"
	"folio/internal/models"
	"folio/internal/routes"

	_ "folio/docs/swagger"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Folio API")
	})
	// Health check
	// @Summary Health check
	// @Description Check if the server is running
	// @Accept json
	// @Produce json
	// @Success 200 {object} map[string]string "OK"
	// @Router /health [get]
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	auth := middleware.NewAuthMiddleware(s.config.JWT.Secret, s.db, s.store, s.cache)

	var media models.MediaURLGenerator
	var avatars handlers.AvatarStore
	if s.storage != nil {
		media = s.storage
		avatars = s.storage
	}

	routes.SetupAuthRoutes(s.echo, s.db, s.store, s.cache, auth)
	routes.SetupCatalogRoutes(s.echo, media, auth)
	routes.SetupAssistantRoutes(s.echo, s.assistant, s.limiter)
	routes.SetupGrantRoutes(s.echo, s.grants, auth)
	routes.SetupUploadRoutes(s.echo, s.db, avatars, auth)
}
