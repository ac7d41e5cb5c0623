package models

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
)

// MediaURLGenerator produces short-lived signed URLs for stored media objects
type MediaURLGenerator interface {
	GetSignedURL(ctx context.Context, key string, duration time.Duration) (string, error)
}

var (
	urlGenerator MediaURLGenerator
	registryMu   sync.RWMutex
)

// RegisterMediaURLGenerator sets the URL generator used to resolve avatar keys
func RegisterMediaURLGenerator(generator MediaURLGenerator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	urlGenerator = generator
}

func (p *Profile) AfterFind(tx *gorm.DB) error {
	if p.AvatarKey == "" {
		return nil
	}

	registryMu.RLock()
	generator := urlGenerator
	registryMu.RUnlock()

	if generator != nil {
		// Generate URL with 1-hour expiry
		url, err := generator.GetSignedURL(tx.Statement.Context, p.AvatarKey, time.Hour)
		if err != nil {
			return fmt.Errorf("failed to generate signed URL: %w", err)
		}
		p.AvatarURL = url
	}
	return nil
}
