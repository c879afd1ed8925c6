package services

import (
	"github.com/turathhub/archive-backend/internal/types"
)

// CanModerate reports whether a contributor's work publishes without
// review. Staff and superusers always qualify; otherwise the profile
// must hold one of the special privilege tiers (moderator or above).
func CanModerate(user *types.User, profile *types.UserProfile) bool {
	if user == nil {
		return false
	}
	if user.IsStaff || user.IsSuperuser {
		return true
	}
	if profile == nil {
		return false
	}
	return profile.Tier().AtLeast(types.TierModerator)
}
