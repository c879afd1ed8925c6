package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/types"
)

func TestSubmitQueuesForOrdinaryMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "amina", userOpts{})

	result, err := env.submissionSvc.Submit(ctx, member.ID, catalogInput("Asir woven rug"))
	require.NoError(t, err)

	assert.Equal(t, types.StatusPending, result.Submission.Status)
	assert.Nil(t, result.Object)
	assert.Nil(t, result.Submission.ConvertedObjectID)

	// Nothing was published.
	objects, err := env.heritage.List(ctx, nil, repoFilter())
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestSubmitAutoApprovesForPrivilegedContributors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		opts userOpts
	}{
		{"staff", userOpts{staff: true}},
		{"superuser", userOpts{superuser: true}},
		{"moderator tier", userOpts{rank: 997}},
		{"expert tier", userOpts{rank: 999}},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			contributor := env.createUser(t, fmt.Sprintf("privileged%d", i), tc.opts)
			result, err := env.submissionSvc.Submit(ctx, contributor.ID, catalogInput("Auto "+tc.name))
			require.NoError(t, err)

			assert.Equal(t, types.StatusApproved, result.Submission.Status)
			require.NotNil(t, result.Object)
			require.NotNil(t, result.Submission.ConvertedObjectID)
			assert.Equal(t, result.Object.ID, *result.Submission.ConvertedObjectID)

			published, err := env.heritage.GetByID(ctx, nil, result.Object.ID)
			require.NoError(t, err)
			require.NotNil(t, published)
			assert.Equal(t, "Auto "+tc.name, published.Title)
		})
	}
}

func TestReviewApproveConverts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "karim", userOpts{})
	reviewer := env.createUser(t, "reviewer", userOpts{staff: true})

	submitted, err := env.submissionSvc.Submit(ctx, member.ID, catalogInput("Pending censer"))
	require.NoError(t, err)

	result, err := env.submissionSvc.Review(ctx, reviewer.ID, submitted.Submission.ID, true)
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, result.Submission.Status)
	require.NotNil(t, result.Object)

	published, err := env.heritage.GetByID(ctx, nil, result.Object.ID)
	require.NoError(t, err)
	require.NotNil(t, published)
	assert.Equal(t, "Pending censer", published.Title)
	assert.Equal(t, member.ID, result.Submission.UserID)
}

func TestReviewRejectIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "nora", userOpts{})
	reviewer := env.createUser(t, "admin2", userOpts{staff: true})

	submitted, err := env.submissionSvc.Submit(ctx, member.ID, catalogInput("Rejected bowl"))
	require.NoError(t, err)

	result, err := env.submissionSvc.Review(ctx, reviewer.ID, submitted.Submission.ID, false)
	require.NoError(t, err)
	assert.Equal(t, types.StatusRejected, result.Submission.Status)
	assert.Nil(t, result.Object)

	// A rejected submission cannot be re-reviewed into approval.
	_, err = env.submissionSvc.Review(ctx, reviewer.ID, submitted.Submission.ID, true)
	require.Error(t, err)
	assert.Equal(t, 409, apierr.StatusOf(err))
}

func TestReviewTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "tariq", userOpts{})
	reviewer := env.createUser(t, "admin3", userOpts{staff: true})

	submitted, err := env.submissionSvc.Submit(ctx, member.ID, catalogInput("Twice-reviewed dagger"))
	require.NoError(t, err)

	_, err = env.submissionSvc.Review(ctx, reviewer.ID, submitted.Submission.ID, true)
	require.NoError(t, err)

	_, err = env.submissionSvc.Review(ctx, reviewer.ID, submitted.Submission.ID, true)
	require.Error(t, err)
	assert.Equal(t, "precondition_violation", apierr.CodeOf(err))

	// Exactly one catalog entry came out of it.
	objects, err := env.heritage.List(ctx, nil, repoFilter())
	require.NoError(t, err)
	assert.Len(t, objects, 1)
}

func TestReviewRequiresStaff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "sami", userOpts{})
	moderator := env.createUser(t, "mod997", userOpts{rank: 997})

	submitted, err := env.submissionSvc.Submit(ctx, member.ID, catalogInput("Guarded astrolabe"))
	require.NoError(t, err)

	// Tier authority auto-approves own work but does not grant access
	// to the review queue.
	_, err = env.submissionSvc.Review(ctx, moderator.ID, submitted.Submission.ID, true)
	require.Error(t, err)
	assert.Equal(t, 403, apierr.StatusOf(err))

	_, err = env.submissionSvc.ListPending(ctx, member.ID)
	require.Error(t, err)
	assert.Equal(t, 403, apierr.StatusOf(err))
}

func TestSubmitValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "lina", userOpts{})

	bad := catalogInput("Bad region basket")
	bad.Region = "atlantis"
	_, err := env.submissionSvc.Submit(ctx, member.ID, bad)
	require.Error(t, err)
	assert.Equal(t, 400, apierr.StatusOf(err))

	bad = catalogInput("Bad date basket")
	bad.OriginDate = "long ago"
	_, err = env.submissionSvc.Submit(ctx, member.ID, bad)
	require.Error(t, err)

	bad = catalogInput("")
	_, err = env.submissionSvc.Submit(ctx, member.ID, bad)
	require.Error(t, err)
}
