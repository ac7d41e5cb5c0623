package routes

import (
	"folio/internal/api/middleware"
	"folio/internal/handlers"
	"folio/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupUploadRoutes(e *echo.Echo, db *gorm.DB, storage handlers.AvatarStore, auth *middleware.AuthMiddleware) {
	log := logger.New("upload_routes")

	uploadHandler := handlers.NewUploadHandler(db, storage)

	profile := e.Group("/api/v1/profile")
	profile.Use(auth.Middleware())

	profile.POST("/avatar", uploadHandler.UploadAvatar)

	log.Success("Upload routes initialized successfully")
}
