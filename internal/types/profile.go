package types

import (
	"time"

	"github.com/google/uuid"
)

// PrivilegeTier names the manually assigned profile ranks that carry
// moderation authority. Ordinary members hold small activity ranks;
// the three special tiers were historically encoded as 997-999 and the
// stored values are kept for compatibility with existing rows.
type PrivilegeTier int

const (
	TierMember     PrivilegeTier = 0
	TierModerator  PrivilegeTier = 997
	TierConsultant PrivilegeTier = 998
	TierExpert     PrivilegeTier = 999
)

func (t PrivilegeTier) AtLeast(other PrivilegeTier) bool {
	return t >= other
}

func (t PrivilegeTier) Label() string {
	switch t {
	case TierModerator:
		return "Moderator"
	case TierConsultant:
		return "Consultant"
	case TierExpert:
		return "Expert"
	default:
		return ""
	}
}

// UserProfile extends User 1:1. It is created in the same transaction
// as its user; no code path may observe a user without a profile.
type UserProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Bio       string    `gorm:"column:bio" json:"bio"`
	PhotoURL  string    `gorm:"column:photo_url" json:"photo_url"`
	Rank      int       `gorm:"not null;default:1;column:rank" json:"rank"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profile"
}

func (p *UserProfile) Tier() PrivilegeTier {
	switch PrivilegeTier(p.Rank) {
	case TierModerator, TierConsultant, TierExpert:
		return PrivilegeTier(p.Rank)
	default:
		return TierMember
	}
}

// ActivityRank is the gamification badge earned by volume of
// contributions (submissions plus comments).
func ActivityRank(activityCount int64) string {
	switch {
	case activityCount >= 100:
		return "Advanced Digitizer"
	case activityCount >= 50:
		return "Intermediate Digitizer"
	case activityCount >= 10:
		return "Beginner Digitizer"
	default:
		return ""
	}
}

type Badge struct {
	Text string `json:"text"`
}

// Badges returns the display badges in priority order: administrative
// flags first, then the special tier, then the activity rank.
func (p *UserProfile) Badges(user *User, activityCount int64) []Badge {
	var badges []Badge
	if user != nil && user.IsSuperuser {
		badges = append(badges, Badge{Text: "Site Creator"})
	} else if user != nil && user.IsStaff {
		badges = append(badges, Badge{Text: "Admin"})
	}
	if label := p.Tier().Label(); label != "" {
		badges = append(badges, Badge{Text: label})
	}
	if rank := ActivityRank(activityCount); rank != "" {
		badges = append(badges, Badge{Text: rank})
	}
	return badges
}
