package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrivilegeTier(t *testing.T) {
	assert.Equal(t, TierMember, (&UserProfile{Rank: 1}).Tier())
	assert.Equal(t, TierMember, (&UserProfile{Rank: 500}).Tier())
	assert.Equal(t, TierModerator, (&UserProfile{Rank: 997}).Tier())
	assert.Equal(t, TierConsultant, (&UserProfile{Rank: 998}).Tier())
	assert.Equal(t, TierExpert, (&UserProfile{Rank: 999}).Tier())

	assert.True(t, TierModerator.AtLeast(TierModerator))
	assert.True(t, TierExpert.AtLeast(TierModerator))
	assert.False(t, TierMember.AtLeast(TierModerator))
}

func TestActivityRank(t *testing.T) {
	assert.Empty(t, ActivityRank(0))
	assert.Empty(t, ActivityRank(9))
	assert.Equal(t, "Beginner Digitizer", ActivityRank(10))
	assert.Equal(t, "Beginner Digitizer", ActivityRank(49))
	assert.Equal(t, "Intermediate Digitizer", ActivityRank(50))
	assert.Equal(t, "Advanced Digitizer", ActivityRank(100))
	assert.Equal(t, "Advanced Digitizer", ActivityRank(5000))
}

func TestBadgesPriority(t *testing.T) {
	superuser := &User{IsSuperuser: true}
	staff := &User{IsStaff: true}
	member := &User{}

	badges := (&UserProfile{Rank: 998}).Badges(superuser, 60)
	assert.Equal(t, []Badge{{Text: "Site Creator"}, {Text: "Consultant"}, {Text: "Intermediate Digitizer"}}, badges)

	badges = (&UserProfile{Rank: 1}).Badges(staff, 3)
	assert.Equal(t, []Badge{{Text: "Admin"}}, badges)

	badges = (&UserProfile{Rank: 999}).Badges(member, 0)
	assert.Equal(t, []Badge{{Text: "Expert"}}, badges)

	badges = (&UserProfile{Rank: 1}).Badges(member, 12)
	assert.Equal(t, []Badge{{Text: "Beginner Digitizer"}}, badges)

	assert.Empty(t, (&UserProfile{Rank: 1}).Badges(member, 0))
}
