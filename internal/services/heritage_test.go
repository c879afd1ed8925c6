package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/repos"
	"github.com/turathhub/archive-backend/internal/types"
)

func TestListFiltersCatalog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	riyadhPot := &types.HeritageObject{
		ID: uuid.New(), Title: "Riyadh coffee pot", Description: "d",
		Region: types.RegionRiyadh, ObjectType: types.TypeVessel, ICHDomain: types.ICHCrafts,
	}
	jazanBasket := &types.HeritageObject{
		ID: uuid.New(), Title: "Jazan basket", Description: "d",
		Region: types.RegionJazan, ObjectType: types.TypeTool, ICHDomain: types.ICHCrafts,
	}
	for _, obj := range []*types.HeritageObject{riyadhPot, jazanBasket} {
		_, err := env.heritage.Create(ctx, nil, obj)
		require.NoError(t, err)
	}

	all, err := env.heritageSvc.List(ctx, repos.ObjectFilter{}, uuid.Nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byRegion, err := env.heritageSvc.List(ctx, repos.ObjectFilter{Region: "Jazan"}, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, byRegion, 1)
	assert.Equal(t, jazanBasket.ID, byRegion[0].Object.ID)

	byType, err := env.heritageSvc.List(ctx, repos.ObjectFilter{ObjectType: "vessel"}, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, riyadhPot.ID, byType[0].Object.ID)

	byQuery, err := env.heritageSvc.List(ctx, repos.ObjectFilter{Query: "coffee"}, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, riyadhPot.ID, byQuery[0].Object.ID)

	none, err := env.heritageSvc.List(ctx, repos.ObjectFilter{Region: "jazan", ObjectType: "vessel"}, uuid.Nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListCarriesViewerLikeState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	viewer := env.createUser(t, "browser", userOpts{})
	other := env.createUser(t, "otherfan", userOpts{})
	liked := env.createObject(t, "Liked object")
	unliked := env.createObject(t, "Unliked object")

	_, _, err := env.socialSvc.ToggleObjectLike(ctx, viewer.ID, liked.ID)
	require.NoError(t, err)
	_, _, err = env.socialSvc.ToggleObjectLike(ctx, other.ID, liked.ID)
	require.NoError(t, err)

	summaries, err := env.heritageSvc.List(ctx, repos.ObjectFilter{}, viewer.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := map[uuid.UUID]*ObjectSummary{}
	for _, s := range summaries {
		byID[s.Object.ID] = s
	}
	assert.True(t, byID[liked.ID].Liked)
	assert.Equal(t, int64(2), byID[liked.ID].LikeCount)
	assert.False(t, byID[unliked.ID].Liked)
	assert.Equal(t, int64(0), byID[unliked.ID].LikeCount)

	// Anonymous viewers see counts but never a liked flag.
	anon, err := env.heritageSvc.List(ctx, repos.ObjectFilter{}, uuid.Nil)
	require.NoError(t, err)
	for _, s := range anon {
		assert.False(t, s.Liked)
	}
}

func TestGetObjectDetail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	viewer := env.createUser(t, "detailer", userOpts{})
	object := env.createObject(t, "Detailed object")

	_, _, err := env.socialSvc.ToggleObjectLike(ctx, viewer.ID, object.ID)
	require.NoError(t, err)

	summary, err := env.heritageSvc.Get(ctx, object.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, object.ID, summary.Object.ID)
	assert.True(t, summary.Liked)
	assert.Equal(t, int64(1), summary.LikeCount)

	_, err = env.heritageSvc.Get(ctx, uuid.New(), viewer.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apierr.StatusOf(err))
}

func TestCreateDirectRequiresStaff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "plainuser", userOpts{rank: 997})
	staff := env.createUser(t, "staffmaker", userOpts{staff: true})

	// Even tier authority is not enough for the direct path.
	_, err := env.heritageSvc.CreateDirect(ctx, member.ID, catalogInput("Skipped queue"))
	require.Error(t, err)
	assert.Equal(t, 403, apierr.StatusOf(err))

	object, err := env.heritageSvc.CreateDirect(ctx, staff.ID, catalogInput("Staff created"))
	require.NoError(t, err)
	require.NotNil(t, object)

	stored, err := env.heritage.GetByID(ctx, nil, object.ID)
	require.NoError(t, err)
	assert.Equal(t, "Staff created", stored.Title)

	// No submission record accompanies a direct creation.
	submissions, err := env.submissions.ListByUser(ctx, nil, staff.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, submissions)
}
