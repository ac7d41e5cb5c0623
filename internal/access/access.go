// Package access holds the single access decision function for catalog
// resources. Every view of private content goes through CanView; no
// caller re-derives the admin/grant check on its own.
package access

import (
	"folio/internal/models"
)

// Visibility is the per-item flag gating whether the decision function
// consults the viewer's grants at all.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// GrantAll is the sentinel grant entry meaning "all private resources".
const GrantAll = "*"

// CanView reports whether viewer may see the resource. A nil viewer is
// an unauthenticated caller. Pure function of its inputs: callers must
// re-evaluate it whenever the viewer changes (login, logout, a grant
// landing), never cache the result.
//
// Malformed visibility values are a caller contract violation and
// evaluate like private.
func CanView(resourceID string, visibility Visibility, viewer *models.Profile) bool {
	if visibility == VisibilityPublic {
		return true
	}
	if viewer == nil {
		return false
	}
	if viewer.Role == models.ProfileRoleAdmin {
		return true
	}
	for _, grant := range viewer.GrantedResources {
		if grant == GrantAll || grant == resourceID {
			return true
		}
	}
	return false
}
