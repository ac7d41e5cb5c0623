package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"folio/internal/models"
	"folio/internal/utils/logger"

	"github.com/redis/go-redis/v9"
)

// sessionTTL bounds how long a cached snapshot may serve reads without
// touching the profile table. The cache is never the source of truth:
// it is written on sign-in, dropped on sign-out and on every grant,
// and simply expires otherwise.
const sessionTTL = 15 * time.Minute

// SessionCache keeps a JSON snapshot of the current viewer's profile
// in Redis, keyed by profile id.
type SessionCache struct {
	client *redis.Client
	log    *logger.Logger
}

func NewSessionCache(addr, username, password string, db int) *SessionCache {
	return &SessionCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Username: username,
			Password: password,
			DB:       db,
		}),
		log: logger.New("session_cache"),
	}
}

func sessionKey(profileID string) string {
	return fmt.Sprintf("session:profile:%s", profileID)
}

// Put stores a fresh snapshot. Called at sign-in and after any
// read-through miss.
func (c *SessionCache) Put(ctx context.Context, profile *models.Profile) {
	payload, err := json.Marshal(profile)
	if err != nil {
		c.log.Warn("Failed to marshal profile snapshot: %v", err)
		return
	}
	if err := c.client.Set(ctx, sessionKey(profile.ID), payload, sessionTTL).Err(); err != nil {
		c.log.Warn("Failed to cache profile snapshot: %v", err)
	}
}

// Get returns the cached snapshot, or nil on miss or decode failure.
// Cache trouble is never an auth failure.
func (c *SessionCache) Get(ctx context.Context, profileID string) *models.Profile {
	payload, err := c.client.Get(ctx, sessionKey(profileID)).Bytes()
	if err != nil {
		return nil
	}
	var profile models.Profile
	if err := json.Unmarshal(payload, &profile); err != nil {
		c.log.Warn("Dropping undecodable profile snapshot: %v", err)
		c.Invalidate(ctx, profileID)
		return nil
	}
	return &profile
}

// Invalidate drops the snapshot. Called at sign-out and whenever a
// grant changes the profile, so the next access decision sees the
// fresh grant set.
func (c *SessionCache) Invalidate(ctx context.Context, profileID string) {
	if err := c.client.Del(ctx, sessionKey(profileID)).Err(); err != nil {
		c.log.Warn("Failed to invalidate profile snapshot: %v", err)
	}
}

func (c *SessionCache) Close() error {
	return c.client.Close()
}
