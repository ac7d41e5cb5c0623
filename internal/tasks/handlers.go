package tasks

import (
	"context"
	"time"

	"folio/internal/models"
	"folio/internal/services"
	"folio/internal/utils/logger"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// TaskHandler handles task processing
type TaskHandler struct {
	db     *gorm.DB
	logger *logger.Logger
	cache  *services.SessionCache
}

// NewTaskHandler creates a new TaskHandler. cache may be nil.
func NewTaskHandler(db *gorm.DB, cache *services.SessionCache) *TaskHandler {
	return &TaskHandler{
		db:     db,
		logger: logger.New("task_handler"),
		cache:  cache,
	}
}

// HandleSessionCleanup deletes expired auth transactions and drops the
// session snapshots of the profiles they belonged to.
func (h *TaskHandler) HandleSessionCleanup(ctx context.Context, t *asynq.Task) error {
	var expired []models.AuthTransaction
	if err := h.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Find(&expired).Error; err != nil {
		return h.logger.Error("failed to list expired sessions", err)
	}

	if len(expired) == 0 {
		h.logger.Debug("no expired sessions to clean")
		return nil
	}

	if err := h.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.AuthTransaction{}).Error; err != nil {
		return h.logger.Error("failed to delete expired sessions", err)
	}

	if h.cache != nil {
		seen := make(map[string]bool, len(expired))
		for _, tr := range expired {
			if !seen[tr.ProfileID] {
				seen[tr.ProfileID] = true
				h.cache.Invalidate(ctx, tr.ProfileID)
			}
		}
	}

	h.logger.Success("cleaned up %d expired sessions", len(expired))
	return nil
}
