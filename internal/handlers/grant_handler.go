package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"folio/internal/catalog"
	"folio/internal/services"
	"folio/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

type GrantHandler struct {
	grants *services.GrantService
	log    *logger.Logger
}

func NewGrantHandler(grants *services.GrantService) *GrantHandler {
	return &GrantHandler{grants: grants, log: logger.New("GrantHandler")}
}

type GrantRequest struct {
	AccessKey  string `json:"accessKey" validate:"required"`
	ResourceID string `json:"resourceId" validate:"required"`
}

// IssueGrant adds one resource to the grant set of the profile holding
// the given access key. Re-issuing an existing grant succeeds without
// rewriting anything.
// @Summary Issue a resource grant
// @Description Grant a private resource to the profile identified by its access key
// @Tags grants
// @Accept json
// @Produce json
// @Param request body GrantRequest true "Grant details"
// @Success 200 {object} map[string]string "Grant issued"
// @Failure 400 {object} map[string]string "Validation error or unknown resource"
// @Failure 404 {object} map[string]string "Access key not found"
// @Failure 409 {object} map[string]string "Concurrent update conflict"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /admin/grants [post]
func (h *GrantHandler) IssueGrant(c echo.Context) error {
	var req GrantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if !catalog.KnownResource(req.ResourceID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown resource id"})
	}

	label, err := h.grants.Issue(c.Request().Context(), req.AccessKey, req.ResourceID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccessKeyNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "access key not found"})
		case errors.Is(err, services.ErrGrantConflict):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Grant update conflicted with a concurrent change, please retry"})
		default:
			h.log.Error("Failed to issue grant", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to issue grant"})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Access to %s granted to %s", req.ResourceID, label),
	})
}
