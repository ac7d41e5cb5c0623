package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"folio/internal/models"
	"folio/internal/services"
	"folio/internal/utils/logger"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var log = logger.New("auth_middleware")

// viewerKey is the context key the resolved profile is stored under.
// A request that carries no usable credentials has no entry at all.
const viewerKey = "viewer"

type AuthMiddleware struct {
	jwtSecret string
	db        *gorm.DB
	store     services.ProfileStore
	cache     *services.SessionCache
}

type Claims struct {
	ProfileID string `json:"profile_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// NewAuthMiddleware builds the middleware. cache may be nil, in which
// case every request resolves the viewer from the store.
func NewAuthMiddleware(jwtSecret string, db *gorm.DB, store services.ProfileStore, cache *services.SessionCache) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		db:        db,
		store:     store,
		cache:     cache,
	}
}

// Middleware requires a valid bearer token and resolves the viewer.
func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c)
			if err != nil {
				return err
			}
			if err := m.authenticate(c, tokenString); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// OptionalViewer resolves the viewer when credentials are present but
// lets anonymous requests through with no viewer set. Catalog routes
// use this: public items must render for everyone.
func (m *AuthMiddleware) OptionalViewer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A missing, malformed, or stale credential on a public
			// route means anonymous, not rejected.
			if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
				if tokenString, err := bearerToken(c); err == nil {
					m.authenticate(c, tokenString)
				}
			}
			return next(c)
		}
	}
}

// RequireAdmin gates a route on the elevated role. Must run after
// Middleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			viewer := GetViewer(c)
			if viewer == nil || viewer.Role != models.ProfileRoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
	}
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
	}
	return tokenParts[1], nil
}

// authenticate validates the token against its live auth transaction,
// resolves the viewer profile, and stores both in the request context.
func (m *AuthMiddleware) authenticate(c echo.Context, tokenString string) error {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		log.Error("Failed to parse token", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token has expired")
	}

	// The token must still map to a live auth transaction; logout
	// deletes the row and kills the session server-side.
	transaction := &models.AuthTransaction{}
	if err := m.db.Where("profile_id = ? AND token = ?",
		claims.ProfileID, tokenString).First(transaction).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Session not found")
	}

	viewer := m.lookupProfile(c, claims.ProfileID)
	if viewer == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Profile not found")
	}

	c.Set(viewerKey, viewer)
	c.Set("profileID", viewer.ID)
	c.Set("email", viewer.Email)
	c.Set("role", string(viewer.Role))

	return nil
}

// lookupProfile reads through the session cache. The snapshot is a
// cache, not the source of truth: misses and undecodable entries fall
// back to the store, and the fresh record is re-cached.
func (m *AuthMiddleware) lookupProfile(c echo.Context, profileID string) *models.Profile {
	ctx := c.Request().Context()

	if m.cache != nil {
		if profile := m.cache.Get(ctx, profileID); profile != nil {
			return profile
		}
	}

	profile, err := m.store.ByID(ctx, profileID)
	if err != nil {
		return nil
	}
	if m.cache != nil {
		m.cache.Put(ctx, profile)
	}
	return profile
}

// GetViewer returns the resolved profile, or nil for anonymous callers.
func GetViewer(c echo.Context) *models.Profile {
	if viewer, ok := c.Get(viewerKey).(*models.Profile); ok {
		return viewer
	}
	return nil
}

// GetProfileID Helper functions to get values from context
func GetProfileID(c echo.Context) string {
	if id, ok := c.Get("profileID").(string); ok {
		return id
	}
	return ""
}

func GetRole(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok {
		return role
	}
	return ""
}
