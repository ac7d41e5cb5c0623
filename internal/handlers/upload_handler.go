package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"folio/internal/models"
	"folio/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AvatarStore is the slice of object storage the upload path needs.
type AvatarStore interface {
	UploadAvatar(ctx context.Context, file []byte, filename, contentType string) (string, error)
}

type UploadHandler struct {
	db      *gorm.DB
	storage AvatarStore
	log     *logger.Logger
}

func NewUploadHandler(db *gorm.DB, storage AvatarStore) *UploadHandler {
	return &UploadHandler{
		db:      db,
		storage: storage,
		log:     logger.New("upload_handler"),
	}
}

const maxAvatarSize = 5 << 20

// UploadAvatar replaces the caller's profile picture.
// @Summary Upload an avatar
// @Description Upload a profile picture for the signed-in profile
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image to upload"
// @Success 200 {object} map[string]string "Avatar uploaded successfully"
// @Failure 400 {object} map[string]string "Validation error or file not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /profile/avatar [post]
func (h *UploadHandler) UploadAvatar(c echo.Context) error {
	contentType := c.Request().Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Content-Type must be multipart/form-data",
		})
	}

	if h.storage == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Storage handler not configured",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.log.Error("Failed to get file from request", err)
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "No file provided",
		})
	}

	if file.Size > maxAvatarSize {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "File too large",
		})
	}

	fileType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(fileType, "image/") {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Only image uploads are accepted",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to read file",
		})
	}

	key, err := h.storage.UploadAvatar(c.Request().Context(), content, file.Filename, fileType)
	if err != nil {
		h.log.Error("Failed to upload avatar", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to upload file",
		})
	}

	profileID := c.Get("profileID").(string)
	if err := h.db.Model(&models.Profile{}).
		Where("id = ?", profileID).
		Update("avatar_key", key).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to save avatar",
		})
	}

	h.log.Success("Avatar uploaded for profile %s", profileID)

	return c.JSON(http.StatusOK, map[string]string{
		"message":   "Avatar uploaded successfully",
		"avatarKey": key,
	})
}
