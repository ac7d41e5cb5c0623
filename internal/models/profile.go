package models

import (
	"time"

	"folio/internal/events"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Profile is the application-level record of an authenticated user,
// distinct from the bare credential pair it signs in with.
type Profile struct {
	Base
	Email       string      `gorm:"uniqueIndex;not null" json:"email"`
	Password    string      `gorm:"not null" json:"-"`
	DisplayName string      `gorm:"not null" json:"displayName" validate:"required,min=2"`
	Role        ProfileRole `gorm:"not null;default:'user'" json:"role"`

	// AccessKey is a bearer-style secret used only to target grant
	// issuance, never for login. Generated once at sign-up.
	AccessKey string `gorm:"uniqueIndex;not null" json:"accessKey"`

	// CustomID is the human-facing sequential identifier shown in the
	// account view, e.g. EXP-0042.
	CustomID string `gorm:"uniqueIndex;not null" json:"customId"`

	// GrantedResources holds the resource ids this profile may view
	// beyond public ones. The sentinel "*" grants all private resources.
	GrantedResources datatypes.JSONSlice[string] `json:"grantedResources"`

	// GrantVersion is the optimistic concurrency token for updates to
	// GrantedResources. Bumped on every successful grant persist.
	GrantVersion int64 `gorm:"not null;default:0" json:"-"`

	AvatarKey string `json:"avatarKey,omitempty"`
	AvatarURL string `gorm:"-" json:"avatarUrl,omitempty"` // Virtual field
}

func (p *Profile) AfterCreate(tx *gorm.DB) error {
	events.Emit("profiles.created", p)
	return nil
}

// Label returns the human-readable identifier used in grant
// confirmation messaging.
func (p *Profile) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.CustomID
}

type AuthTransaction struct {
	Base
	ProfileID string    `gorm:"type:uuid;not null;index" json:"profileId"`
	Profile   *Profile  `json:"profile,omitempty"`
	Token     string    `gorm:"not null;index" json:"token"`
	Refresh   string    `gorm:"not null" json:"refresh"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
}
