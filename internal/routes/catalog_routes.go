package routes

import (
	"folio/internal/api/middleware"
	"folio/internal/handlers"
	"folio/internal/models"
	"folio/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

func SetupCatalogRoutes(e *echo.Echo, media models.MediaURLGenerator, auth *middleware.AuthMiddleware) {
	log := logger.New("catalog_routes")

	catalogHandler := handlers.NewCatalogHandler(media)

	base := e.Group("/api/v1")
	// Catalog routes serve anonymous and signed-in callers alike; the
	// viewer, when present, only widens what the filters let through.
	base.Use(auth.OptionalViewer())

	base.GET("/gallery", catalogHandler.ListGallery)
	base.GET("/documents", catalogHandler.ListDocuments)
	base.GET("/documents/:id/download", catalogHandler.DownloadDocument)
	base.GET("/projects", catalogHandler.ListProjects)
	base.GET("/skills", catalogHandler.ListSkills)
	base.GET("/site", catalogHandler.GetSite)

	log.Success("Catalog routes initialized successfully")
}
