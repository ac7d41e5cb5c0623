package handlers

import (
	"net/http"
	"time"

	"folio/internal/models"
	"folio/internal/services"
	"folio/internal/utils"
	"folio/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db    *gorm.DB
	store services.ProfileStore
	cache *services.SessionCache
	log   *logger.Logger
}

func NewAuthHandler(db *gorm.DB, store services.ProfileStore, cache *services.SessionCache) *AuthHandler {
	return &AuthHandler{
		db:    db,
		store: store,
		cache: cache,
		log:   logger.New("AuthHandler"),
	}
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"displayName" validate:"required,min=2"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

const profileSyncMessage = "Account created but profile setup is still in progress. Please sign in again in a moment."

// Register handles sign-up: it hashes the password, mints the access key and
// sequential custom id, and waits for the profile row to become readable
// before confirming the account.
// @Summary Register a new profile
// @Description Register with email, password and display name
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} map[string]string "Profile registered successfully"
// @Failure 400 {object} map[string]string "Validation error or email exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Failure 503 {object} map[string]string "Profile propagation timed out"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var existing models.Profile
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	accessKey, err := utils.GenerateAccessKey()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate access key"})
	}

	tx := h.db.Begin()
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start transaction"})
	}

	seq, err := services.NewGormProfileStore(tx).NextCustomSeq(c.Request().Context())
	if err != nil {
		tx.Rollback()
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to allocate profile id"})
	}

	profile := models.Profile{
		Email:       req.Email,
		Password:    string(hashedPassword),
		DisplayName: req.DisplayName,
		Role:        models.ProfileRoleUser,
		AccessKey:   accessKey,
		CustomID:    utils.FormatCustomID(seq),
	}

	if err := tx.Create(&profile).Error; err != nil {
		tx.Rollback()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email already exists"})
	}

	if err := tx.Commit().Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to commit transaction"})
	}

	// The account is only confirmed once the profile row reads back.
	// If propagation never settles the caller gets a retry hint, not a
	// half-created session.
	if _, err := services.WaitForProfile(c.Request().Context(), h.store, profile.ID); err != nil {
		h.log.Warn("Profile %s not readable after creation", profile.ID)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": profileSyncMessage})
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message":   "Profile registered successfully",
		"customId":  profile.CustomID,
		"accessKey": profile.AccessKey,
	})
}

// Login authenticates a profile and opens a server-side session.
// @Summary Login
// @Description Authenticate and return JWT plus refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]string "JWT token"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var profile models.Profile
	if err := h.db.Where("email = ?", req.Email).First(&profile).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	token, err := utils.GenerateJWT(profile)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}
	refreshToken, err := utils.GenerateRefreshToken(profile)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	authtransaction := &models.AuthTransaction{
		ProfileID: profile.ID,
		Token:     token,
		Refresh:   refreshToken,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	if err := h.db.Create(authtransaction).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create auth transaction"})
	}

	// Fresh sign-in always reseeds the session snapshot so stale
	// grant state from a previous session cannot leak through.
	if h.cache != nil {
		h.cache.Invalidate(c.Request().Context(), profile.ID)
		h.cache.Put(c.Request().Context(), &profile)
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token, "refresh_token": refreshToken})
}

// Logout deletes the auth transaction and drops the cached session.
// @Summary Logout
// @Description Invalidate the current session token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	profileID := c.Get("profileID").(string)

	authHeader := c.Request().Header.Get("Authorization")
	tokenString := ""
	if len(authHeader) > 7 {
		tokenString = authHeader[7:]
	}

	if err := h.db.Where("profile_id = ? AND token = ?", profileID, tokenString).
		Delete(&models.AuthTransaction{}).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete session"})
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request().Context(), profileID)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// RefreshToken swaps a valid refresh token for a new token pair.
// @Summary Refresh token
// @Description Exchange a refresh token for a new JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]string "New token pair"
// @Failure 401 {object} map[string]string "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	claims, err := utils.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	var transaction models.AuthTransaction
	if err := h.db.Where("profile_id = ? AND refresh = ?", claims.ProfileID, req.RefreshToken).
		First(&transaction).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Session not found"})
	}

	profile, err := h.store.ByID(c.Request().Context(), claims.ProfileID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Profile not found"})
	}

	token, err := utils.GenerateJWT(*profile)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}
	refreshToken, err := utils.GenerateRefreshToken(*profile)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	transaction.Token = token
	transaction.Refresh = refreshToken
	transaction.ExpiresAt = time.Now().Add(24 * time.Hour)
	if err := h.db.Save(&transaction).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update session"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token, "refresh_token": refreshToken})
}

// GetMe returns the authenticated profile, grants included.
// @Summary Current profile
// @Description Return the signed-in profile with its granted resources
// @Tags auth
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c echo.Context) error {
	viewer, ok := c.Get("viewer").(*models.Profile)
	if !ok || viewer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	return c.JSON(http.StatusOK, viewer)
}
