package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/turathhub/archive-backend/internal/db"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/repos"
	"github.com/turathhub/archive-backend/internal/types"
)

type testEnv struct {
	db *gorm.DB

	users        repos.UserRepo
	profiles     repos.ProfileRepo
	tokens       repos.UserTokenRepo
	heritage     repos.HeritageRepo
	submissions  repos.SubmissionRepo
	proposals    repos.ProposalRepo
	comments     repos.CommentRepo
	objectLikes  repos.HeritageLikeRepo
	commentLikes repos.CommentLikeRepo

	google *fakeGoogleVerifier

	auth          AuthService
	heritageSvc   HeritageService
	submissionSvc SubmissionService
	proposalSvc   ProposalService
	socialSvc     SocialService
	profileSvc    ProfileService
}

// fakeGoogleVerifier returns a canned identity so sign-in paths can be
// exercised without the network.
type fakeGoogleVerifier struct {
	identity *GoogleIdentity
	err      error
}

func (f *fakeGoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	path := filepath.Join(t.TempDir(), "archive_test.db")
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	log, err := logger.New("development")
	require.NoError(t, err)

	env := &testEnv{
		db:           gdb,
		users:        repos.NewUserRepo(gdb, log),
		profiles:     repos.NewProfileRepo(gdb, log),
		tokens:       repos.NewUserTokenRepo(gdb, log),
		heritage:     repos.NewHeritageRepo(gdb, log),
		submissions:  repos.NewSubmissionRepo(gdb, log),
		proposals:    repos.NewProposalRepo(gdb, log),
		comments:     repos.NewCommentRepo(gdb, log),
		objectLikes:  repos.NewHeritageLikeRepo(gdb, log),
		commentLikes: repos.NewCommentLikeRepo(gdb, log),
		google:       &fakeGoogleVerifier{},
	}
	env.auth = NewAuthService(gdb, env.users, env.profiles, env.tokens, env.google, "test-secret", log)
	env.heritageSvc = NewHeritageService(gdb, env.heritage, env.objectLikes, env.users, log)
	env.submissionSvc = NewSubmissionService(gdb, env.submissions, env.heritage, env.users, env.profiles, log)
	env.proposalSvc = NewProposalService(gdb, env.proposals, env.heritage, env.users, env.profiles, log)
	env.socialSvc = NewSocialService(gdb, env.comments, env.objectLikes, env.commentLikes, env.heritage, env.users, env.profiles, env.submissions, log)
	env.profileSvc = NewProfileService(gdb, env.users, env.profiles, env.submissions, env.proposals, env.comments, env.objectLikes, env.commentLikes, log)
	return env
}

type userOpts struct {
	staff     bool
	superuser bool
	rank      int
}

func (te *testEnv) createUser(t *testing.T, username string, opts userOpts) *types.User {
	t.Helper()
	if opts.rank == 0 {
		opts.rank = 1
	}
	user := &types.User{
		ID:          uuid.New(),
		Email:       username + "@example.com",
		Username:    username,
		IsStaff:     opts.staff,
		IsSuperuser: opts.superuser,
	}
	ctx := context.Background()
	_, err := te.users.Create(ctx, nil, user)
	require.NoError(t, err)
	_, err = te.profiles.Create(ctx, nil, &types.UserProfile{
		ID:     uuid.New(),
		UserID: user.ID,
		Rank:   opts.rank,
	})
	require.NoError(t, err)
	return user
}

func (te *testEnv) createObject(t *testing.T, title string) *types.HeritageObject {
	t.Helper()
	object := &types.HeritageObject{
		ID:          uuid.New(),
		Title:       title,
		Description: "A catalogued heritage object.",
		Region:      types.RegionRiyadh,
		ObjectType:  types.TypeVessel,
		ICHDomain:   types.ICHCrafts,
		OriginDate:  time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := te.heritage.Create(context.Background(), nil, object)
	require.NoError(t, err)
	return object
}

func repoFilter() repos.ObjectFilter {
	return repos.ObjectFilter{}
}

func catalogInput(title string) CatalogInput {
	return CatalogInput{
		Title:       title,
		Description: "Collected during the 1987 field survey.",
		Region:      string(types.RegionAsir),
		ObjectType:  string(types.TypeTextile),
		ICHDomain:   string(types.ICHCrafts),
		OriginDate:  "1940-06-01",
		Maker:       "unknown",
	}
}
