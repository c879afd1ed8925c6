package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/normalization"
	"github.com/turathhub/archive-backend/internal/repos"
	"github.com/turathhub/archive-backend/internal/types"
)

// ActivityCounts aggregates a member's contributions.
type ActivityCounts struct {
	Submissions   int64 `json:"submissions"`
	EditProposals int64 `json:"edit_proposals"`
	Comments      int64 `json:"comments"`
	LikesGiven    int64 `json:"likes_given"`
}

// Dashboard is the signed-in member's own overview: counts plus the
// most recent items in each stream.
type Dashboard struct {
	User              *types.User           `json:"user"`
	Profile           *types.UserProfile    `json:"profile"`
	Badges            []types.Badge         `json:"badges"`
	Counts            ActivityCounts        `json:"counts"`
	RecentSubmissions []*types.Submission   `json:"recent_submissions"`
	RecentProposals   []*types.EditProposal `json:"recent_proposals"`
	RecentComments    []*types.Comment      `json:"recent_comments"`
	RecentLikes       []*types.HeritageLike `json:"recent_likes"`
}

// PublicProfile is what any visitor sees on a member page. Email and
// moderation flags stay private; badges and counts are public.
type PublicProfile struct {
	Username      string         `json:"username"`
	Bio           string         `json:"bio"`
	PhotoURL      string         `json:"photo_url"`
	Badges        []types.Badge  `json:"badges"`
	Counts        ActivityCounts `json:"counts"`
	LikesReceived int64          `json:"likes_received"`
}

type ProfileUpdateInput struct {
	Bio      string `json:"bio"`
	PhotoURL string `json:"photo_url"`
}

type ProfileService interface {
	GetDashboard(ctx context.Context, actorID uuid.UUID) (*Dashboard, error)
	GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error)
	UpdateProfile(ctx context.Context, actorID uuid.UUID, input ProfileUpdateInput) (*types.UserProfile, error)
}

type profileService struct {
	db              *gorm.DB
	userRepo        repos.UserRepo
	profileRepo     repos.ProfileRepo
	submissionRepo  repos.SubmissionRepo
	proposalRepo    repos.ProposalRepo
	commentRepo     repos.CommentRepo
	objectLikeRepo  repos.HeritageLikeRepo
	commentLikeRepo repos.CommentLikeRepo
	log             *logger.Logger
}

func NewProfileService(
	db *gorm.DB,
	userRepo repos.UserRepo,
	profileRepo repos.ProfileRepo,
	submissionRepo repos.SubmissionRepo,
	proposalRepo repos.ProposalRepo,
	commentRepo repos.CommentRepo,
	objectLikeRepo repos.HeritageLikeRepo,
	commentLikeRepo repos.CommentLikeRepo,
	baseLog *logger.Logger,
) ProfileService {
	return &profileService{
		db:              db,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		submissionRepo:  submissionRepo,
		proposalRepo:    proposalRepo,
		commentRepo:     commentRepo,
		objectLikeRepo:  objectLikeRepo,
		commentLikeRepo: commentLikeRepo,
		log:             baseLog.With("service", "ProfileService"),
	}
}

const recentItemLimit = 5

func (ps *profileService) GetDashboard(ctx context.Context, actorID uuid.UUID) (*Dashboard, error) {
	user, err := ps.userRepo.GetByID(ctx, nil, actorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.Unauthorized("Account no longer exists")
	}
	profile, err := ps.profileRepo.GetByUserID(ctx, nil, actorID)
	if err != nil {
		return nil, err
	}

	counts, err := ps.countActivity(ctx, actorID)
	if err != nil {
		return nil, err
	}

	recentSubmissions, err := ps.submissionRepo.ListByUser(ctx, nil, actorID, recentItemLimit)
	if err != nil {
		return nil, err
	}
	recentProposals, err := ps.proposalRepo.ListByUser(ctx, nil, actorID, recentItemLimit)
	if err != nil {
		return nil, err
	}
	recentComments, err := ps.commentRepo.ListRecentByUser(ctx, nil, actorID, recentItemLimit)
	if err != nil {
		return nil, err
	}
	recentLikes, err := ps.objectLikeRepo.ListRecentByUser(ctx, nil, actorID, recentItemLimit)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		User:              user,
		Profile:           profile,
		Counts:            counts,
		RecentSubmissions: recentSubmissions,
		RecentProposals:   recentProposals,
		RecentComments:    recentComments,
		RecentLikes:       recentLikes,
	}
	if profile != nil {
		dashboard.Badges = profile.Badges(user, counts.Submissions+counts.Comments)
	}
	return dashboard, nil
}

func (ps *profileService) GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	username = normalization.ParseInputString(username)
	user, err := ps.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.NotFound("No member named %q", username)
	}
	profile, err := ps.profileRepo.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}

	counts, err := ps.countActivity(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	likesReceived, err := ps.commentLikeRepo.CountReceivedByAuthor(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}

	out := &PublicProfile{
		Username:      user.Username,
		Counts:        counts,
		LikesReceived: likesReceived,
	}
	if profile != nil {
		out.Bio = profile.Bio
		out.PhotoURL = profile.PhotoURL
		out.Badges = profile.Badges(user, counts.Submissions+counts.Comments)
	}
	return out, nil
}

func (ps *profileService) UpdateProfile(ctx context.Context, actorID uuid.UUID, input ProfileUpdateInput) (*types.UserProfile, error) {
	profile, err := ps.profileRepo.GetByUserID(ctx, nil, actorID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apierr.NotFound("Profile does not exist")
	}
	profile.Bio = normalization.TrimInput(input.Bio)
	profile.PhotoURL = normalization.TrimInput(input.PhotoURL)
	if err := ps.profileRepo.Save(ctx, nil, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (ps *profileService) countActivity(ctx context.Context, userID uuid.UUID) (ActivityCounts, error) {
	var counts ActivityCounts
	var err error
	if counts.Submissions, err = ps.submissionRepo.CountByUser(ctx, nil, userID); err != nil {
		return counts, err
	}
	if counts.EditProposals, err = ps.proposalRepo.CountByUser(ctx, nil, userID); err != nil {
		return counts, err
	}
	if counts.Comments, err = ps.commentRepo.CountActiveByUser(ctx, nil, userID); err != nil {
		return counts, err
	}
	if counts.LikesGiven, err = ps.objectLikeRepo.CountByUser(ctx, nil, userID); err != nil {
		return counts, err
	}
	return counts, nil
}
