package handlers

import (
	"net/http"
	"strings"
	"time"

	"folio/internal/access"
	"folio/internal/api/middleware"
	"folio/internal/catalog"
	"folio/internal/models"
	"folio/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	media models.MediaURLGenerator
	log   *logger.Logger
}

// NewCatalogHandler builds the handler. media may be nil when object
// storage is not configured; downloads then fall back to public URLs.
func NewCatalogHandler(media models.MediaURLGenerator) *CatalogHandler {
	return &CatalogHandler{media: media, log: logger.New("CatalogHandler")}
}

// ListGallery returns the gallery entries the caller may see, after
// optional label and search narrowing.
// @Summary List gallery items
// @Description List visible gallery items, optionally filtered by label and search term
// @Tags catalog
// @Produce json
// @Param label query string false "Label chip (Official, Unofficial, All)"
// @Param q query string false "Search term"
// @Success 200 {array} catalog.GalleryItem
// @Router /gallery [get]
func (h *CatalogHandler) ListGallery(c echo.Context) error {
	viewer := middleware.GetViewer(c)

	items := catalog.Visible(catalog.Gallery, viewer)
	items = catalog.GalleryByLabel(items, c.QueryParam("label"))
	items = catalog.Search(items, c.QueryParam("q"))

	return c.JSON(http.StatusOK, items)
}

// ListDocuments returns the document entries the caller may see.
// @Summary List documents
// @Description List visible documents, optionally filtered by labels and search term
// @Tags catalog
// @Produce json
// @Param labels query string false "Comma-separated labels"
// @Param q query string false "Search term"
// @Success 200 {array} catalog.DocumentItem
// @Router /documents [get]
func (h *CatalogHandler) ListDocuments(c echo.Context) error {
	viewer := middleware.GetViewer(c)

	var labels []string
	if raw := strings.TrimSpace(c.QueryParam("labels")); raw != "" {
		for _, l := range strings.Split(raw, ",") {
			if l = strings.TrimSpace(l); l != "" {
				labels = append(labels, l)
			}
		}
	}

	items := catalog.Visible(catalog.Documents, viewer)
	items = catalog.DocumentsByLabel(items, labels)
	items = catalog.Search(items, c.QueryParam("q"))

	return c.JSON(http.StatusOK, items)
}

// DownloadDocument resolves a document to a download URL. Private
// documents held in object storage get a short-lived signed URL.
// @Summary Download a document
// @Description Resolve a document id to a download URL the caller is allowed to use
// @Tags catalog
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} map[string]string "Download URL"
// @Failure 404 {object} map[string]string "Not found"
// @Router /documents/{id}/download [get]
func (h *CatalogHandler) DownloadDocument(c echo.Context) error {
	viewer := middleware.GetViewer(c)

	doc, ok := catalog.DocumentByID(c.Param("id"))
	// An id the caller may not view is indistinguishable from one that
	// does not exist.
	if !ok || !access.CanView(doc.ID, doc.Visibility, viewer) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Document not found"})
	}

	if doc.StorageKey != "" && h.media != nil {
		url, err := h.media.GetSignedURL(c.Request().Context(), doc.StorageKey, 15*time.Minute)
		if err != nil {
			h.log.Error("Failed to sign document URL", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to resolve download"})
		}
		return c.JSON(http.StatusOK, map[string]string{"url": url})
	}

	if doc.FileURL == "" {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Document not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"url": doc.FileURL})
}

// ListProjects returns the project showcase.
// @Summary List projects
// @Tags catalog
// @Produce json
// @Success 200 {array} catalog.Project
// @Router /projects [get]
func (h *CatalogHandler) ListProjects(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.Projects)
}

// ListSkills returns the skill matrix.
// @Summary List skills
// @Tags catalog
// @Produce json
// @Success 200 {array} catalog.Skill
// @Router /skills [get]
func (h *CatalogHandler) ListSkills(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.Skills)
}

// GetSite returns the static site metadata shown on the landing page.
// @Summary Site metadata
// @Tags catalog
// @Produce json
// @Success 200 {object} catalog.SiteInfo
// @Router /site [get]
func (h *CatalogHandler) GetSite(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.Site)
}
