package routes

import (
	"folio/internal/api/middleware"
	"folio/internal/handlers"
	"folio/internal/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupAuthRoutes(e *echo.Echo, db *gorm.DB, store services.ProfileStore, cache *services.SessionCache, auth *middleware.AuthMiddleware) {
	authHandler := handlers.NewAuthHandler(db, store, cache)

	base := e.Group("/api/v1")

	// Public auth routes group
	authGroup := base.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.RefreshToken)

	// Protected auth routes (require authentication)
	protected := base.Group("/auth")
	protected.Use(auth.Middleware())
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/me", authHandler.GetMe)
}
