package services

import (
	"context"
	"errors"

	"folio/internal/events"
	"folio/internal/utils/logger"
)

// grantRetries bounds how often a conflicted grant write is retried
// before the conflict is surfaced to the caller.
const grantRetries = 3

// GrantIssued is the payload emitted on the event bus after a grant
// lands, so caches holding profile snapshots can drop them.
type GrantIssued struct {
	ProfileID  string `json:"profileId"`
	AccessKey  string `json:"accessKey"`
	ResourceID string `json:"resourceId"`
}

// GrantService appends resource ids to a profile's grant set. The
// profile is addressed by its access key, treated as a bearer
// capability for administration.
type GrantService struct {
	store ProfileStore
	log   *logger.Logger
}

func NewGrantService(store ProfileStore) *GrantService {
	return &GrantService{store: store, log: logger.New("grant_service")}
}

// Issue adds resourceID to the grant set of the profile holding
// accessKey and returns a label of the grantee for confirmation
// messaging. Granting an already-held resource is a no-op. Concurrent
// grants to the same profile are retried against the fresh grant set;
// after grantRetries conflicts the operation fails with
// ErrGrantConflict rather than dropping either update.
func (s *GrantService) Issue(ctx context.Context, accessKey, resourceID string) (string, error) {
	for attempt := 0; attempt < grantRetries; attempt++ {
		profile, err := s.store.ByAccessKey(ctx, accessKey)
		if err != nil {
			return "", err
		}

		for _, grant := range profile.GrantedResources {
			if grant == resourceID {
				s.log.Info("Grant already present for %s, nothing to do", profile.CustomID)
				return profile.Label(), nil
			}
		}

		grants := append(append([]string{}, profile.GrantedResources...), resourceID)

		err = s.store.PersistGrants(ctx, accessKey, grants, profile.GrantVersion)
		if err == nil {
			s.log.Success("Granted %s to %s", resourceID, profile.CustomID)
			events.Emit("grants.issued", &GrantIssued{
				ProfileID:  profile.ID,
				AccessKey:  accessKey,
				ResourceID: resourceID,
			})
			return profile.Label(), nil
		}
		if !errors.Is(err, ErrGrantConflict) {
			return "", err
		}
		s.log.Warn("Grant version drift for %s, retrying (%d/%d)", profile.CustomID, attempt+1, grantRetries)
	}
	return "", ErrGrantConflict
}
