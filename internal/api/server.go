package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-advanced-admin/admin"
	admingorm "github.com/go-advanced-admin/orm-gorm"
	adminecho "github.com/go-advanced-admin/web-echo"
	"golang.org/x/time/rate"

	"folio/internal/api/validator"
	"folio/internal/config"
	"folio/internal/models"
	"folio/internal/services"
	taskrate "folio/internal/tasks/rate"
	"folio/internal/utils"

	console "folio/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	db        *gorm.DB
	store     services.ProfileStore
	cache     *services.SessionCache
	grants    *services.GrantService
	assistant *services.AssistantService
	storage   *services.S3Service
	limiter   *taskrate.Limiter
}

var log = console.New("API-Server")

// NewServer @title Folio API
// @version 1.0
// @description Backend for the portfolio site: auth, grants, catalog and assistant.
// @host localhost:8080
// @BasePath /api/v1
func NewServer(cfg *config.Config, db *gorm.DB, cache *services.SessionCache, storage *services.S3Service, limiter *taskrate.Limiter) *Server {
	e := echo.New()

	// Create custom validator
	e.Validator = validator.NewValidator()

	// Configure middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentLength},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	e.Use(middleware.BodyLimit("10M"))

	// Custom error handler
	e.HTTPErrorHandler = customHTTPErrorHandler

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	store := services.NewGormProfileStore(db)

	s := &Server{
		echo:      e,
		config:    cfg,
		db:        db,
		store:     store,
		cache:     cache,
		grants:    services.NewGrantService(store),
		assistant: services.NewAssistantService(cfg.Assistant),
		storage:   storage,
		limiter:   limiter,
	}

	s.setupAdminPanel()
	s.registerRoutes()
	return s
}

// setupAdminPanel mounts the model admin UI. Panel access requires a
// bearer token carrying the elevated role; there is no backdoor login.
func (s *Server) setupAdminPanel() {
	gormIntegrator := admingorm.NewIntegrator(s.db)
	echoIntegrator := adminecho.NewIntegrator(s.echo.Group(""))

	permissionChecker := func(
		request admin.PermissionRequest, ctx interface{},
	) (bool, error) {
		c, ok := ctx.(echo.Context)
		if !ok {
			return false, nil
		}
		authHeader := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return false, nil
		}
		claims, err := utils.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return false, nil
		}
		return claims.Role == string(models.ProfileRoleAdmin), nil
	}

	adminPanel, err := admin.NewPanel(
		gormIntegrator, echoIntegrator, permissionChecker, nil,
	)
	if err != nil {
		log.Error("Failed to create admin panel", err)
		return
	}

	_, err = adminPanel.RegisterApp(
		"Folio",
		"Folio Admin Panel",
		nil,
	)
	if err != nil {
		log.Error("Failed to register admin app", err)
	}
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Health check endpoint
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// Custom HTTP error handler
func customHTTPErrorHandler(err error, c echo.Context) {
	var (
		code    = http.StatusInternalServerError
		message interface{}
	)

	switch e := err.(type) {
	case *echo.HTTPError:
		code = e.Code
		message = e.Message
	case validator.ValidationErrors:
		code = http.StatusBadRequest
		message = formatValidationErrors(e)
	default:
		message = http.StatusText(code)
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]interface{}{
				"error": message,
				"code":  code,
				"time":  time.Now().Format(time.RFC3339),
			})
		}
		if err != nil {
			c.Echo().Logger.Error(err)
		}
	}
}

// formatValidationErrors formats validation errors into a map
func formatValidationErrors(errors validator.ValidationErrors) map[string]string {
	errMap := make(map[string]string)
	for _, err := range errors {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		switch tag {
		case "required":
			errMap[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errMap[field] = fmt.Sprintf("%s must be a valid email", field)
		case "min":
			errMap[field] = fmt.Sprintf("%s must be at least %s", field, param)
		case "max":
			errMap[field] = fmt.Sprintf("%s must be at most %s", field, param)
		case "oneof":
			errMap[field] = fmt.Sprintf("%s must be one of [%s]", field, param)
		case "profile_role":
			errMap[field] = fmt.Sprintf("%s must be either 'user' or 'admin'", field)
		case "visibility":
			errMap[field] = fmt.Sprintf("%s must be either 'public' or 'private'", field)
		default:
			errMap[field] = fmt.Sprintf("%s failed validation: %s", field, tag)
		}
	}
	return errMap
}
