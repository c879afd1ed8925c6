package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turathhub/archive-backend/internal/apierr"
)

func TestDashboardCountsAndRecents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "collector", userOpts{})
	object := env.createObject(t, "Hasawi chest")

	for i := 0; i < 3; i++ {
		_, err := env.submissionSvc.Submit(ctx, member.ID, catalogInput(fmt.Sprintf("Chest %d", i)))
		require.NoError(t, err)
	}
	_, err := env.proposalSvc.Propose(ctx, member.ID, object.ID, "", map[string]string{"title": "Hasawi dowry chest"})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := env.socialSvc.PostComment(ctx, member.ID, object.ID, fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
	}
	_, _, err = env.socialSvc.ToggleObjectLike(ctx, member.ID, object.ID)
	require.NoError(t, err)

	dashboard, err := env.profileSvc.GetDashboard(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), dashboard.Counts.Submissions)
	assert.Equal(t, int64(1), dashboard.Counts.EditProposals)
	assert.Equal(t, int64(2), dashboard.Counts.Comments)
	assert.Equal(t, int64(1), dashboard.Counts.LikesGiven)
	assert.Len(t, dashboard.RecentSubmissions, 3)
	assert.Len(t, dashboard.RecentProposals, 1)
	assert.Len(t, dashboard.RecentComments, 2)
	assert.Len(t, dashboard.RecentLikes, 1)
}

func TestDashboardRecentsAreCapped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "busybee", userOpts{})

	for i := 0; i < 8; i++ {
		_, err := env.submissionSvc.Submit(ctx, member.ID, catalogInput(fmt.Sprintf("Item %d", i)))
		require.NoError(t, err)
	}

	dashboard, err := env.profileSvc.GetDashboard(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), dashboard.Counts.Submissions)
	assert.Len(t, dashboard.RecentSubmissions, recentItemLimit)
}

func TestPublicProfileHidesPrivateFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "publicface", userOpts{rank: 998})
	commenter := env.createUser(t, "fan", userOpts{})
	object := env.createObject(t, "Thobe with silver thread")

	comment, err := env.socialSvc.PostComment(ctx, member.ID, object.ID, "family heirloom")
	require.NoError(t, err)
	_, _, err = env.socialSvc.ToggleCommentLike(ctx, commenter.ID, comment.ID)
	require.NoError(t, err)

	profile, err := env.profileSvc.GetPublicProfile(ctx, "PublicFace")
	require.NoError(t, err)
	assert.Equal(t, "publicface", profile.Username)
	assert.Equal(t, int64(1), profile.Counts.Comments)
	assert.Equal(t, int64(1), profile.LikesReceived)
	require.Len(t, profile.Badges, 1)
	assert.Equal(t, "Consultant", profile.Badges[0].Text)

	_, err = env.profileSvc.GetPublicProfile(ctx, "nobody")
	require.Error(t, err)
	assert.Equal(t, 404, apierr.StatusOf(err))
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "editor", userOpts{})

	updated, err := env.profileSvc.UpdateProfile(ctx, member.ID, ProfileUpdateInput{
		Bio:      "  Weaver from Al-Ahsa.  ",
		PhotoURL: "https://example.com/me.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "Weaver from Al-Ahsa.", updated.Bio)
	assert.Equal(t, "https://example.com/me.jpg", updated.PhotoURL)

	stored, err := env.profiles.GetByUserID(ctx, nil, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weaver from Al-Ahsa.", stored.Bio)
}
