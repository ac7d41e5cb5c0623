package services

import (
	"context"
	"errors"
	"time"

	"folio/internal/models"
	"folio/internal/utils/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrAccessKeyNotFound is returned when no profile carries the
	// given access key. Surfaced to the administrator verbatim.
	ErrAccessKeyNotFound = errors.New("access key not found")

	// ErrGrantConflict is returned when a concurrent grant bumped the
	// profile's grant version between our read and write. Retryable.
	ErrGrantConflict = errors.New("grant update conflicted with a concurrent change")

	// ErrProfileSync is returned when a freshly created profile record
	// is still not readable after the bounded re-check window.
	ErrProfileSync = errors.New("profile record not yet available")
)

// ProfileStore is the narrow persistence surface the access subsystem
// needs. Lookups by id and by access key are both supported; the grant
// write is a conditional update keyed on the optimistic version token.
type ProfileStore interface {
	ByID(ctx context.Context, id string) (*models.Profile, error)
	ByAccessKey(ctx context.Context, accessKey string) (*models.Profile, error)
	PersistGrants(ctx context.Context, accessKey string, grants []string, version int64) error
}

// GormProfileStore implements ProfileStore on the Postgres profile table.
type GormProfileStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db, log: logger.New("profile_store")}
}

func (s *GormProfileStore) ByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *GormProfileStore) ByAccessKey(ctx context.Context, accessKey string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("access_key = ? AND is_deleted = ?", accessKey, false).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessKeyNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// PersistGrants writes the grant set back, keyed by access key, but
// only if the version token still matches what the caller read. A
// stale token means another grant landed in between; the caller
// re-reads and retries instead of overwriting it.
func (s *GormProfileStore) PersistGrants(ctx context.Context, accessKey string, grants []string, version int64) error {
	res := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("access_key = ? AND grant_version = ? AND is_deleted = ?", accessKey, version, false).
		Updates(map[string]interface{}{
			"granted_resources": datatypes.NewJSONSlice(grants),
			"grant_version":     version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Missing row and stale version look the same here; check which.
		if _, err := s.ByAccessKey(ctx, accessKey); err != nil {
			return err
		}
		return ErrGrantConflict
	}
	return nil
}

// NextCustomSeq reserves the next human-facing sequential id.
func (s *GormProfileStore) NextCustomSeq(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Profile{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count + 1, nil
}

// WaitForProfile re-reads a freshly created profile until it is
// visible, with a growing delay between attempts. Creation can race
// read replicas, so the record may lag the sign-up response.
func WaitForProfile(ctx context.Context, store ProfileStore, id string) (*models.Profile, error) {
	const maxAttempts = 5
	delay := 200 * time.Millisecond

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		profile, err := store.ByID(ctx, id)
		if err == nil {
			return profile, nil
		}

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return nil, ErrProfileSync
}
