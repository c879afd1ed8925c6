package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/normalization"
	"github.com/turathhub/archive-backend/internal/repos"
	"github.com/turathhub/archive-backend/internal/types"
)

// CommentAuthor is the display identity attached to each comment,
// including the badges the author has earned and their aggregate
// comment stats. Computed on read so a rank change or a fresh like
// shows up immediately.
type CommentAuthor struct {
	ID            uuid.UUID     `json:"id"`
	Username      string        `json:"username"`
	PhotoURL      string        `json:"photo_url"`
	Badges        []types.Badge `json:"badges"`
	TotalComments int64         `json:"total_comments"`
	LikesReceived int64         `json:"likes_received"`
}

type CommentView struct {
	ID        uuid.UUID      `json:"id"`
	Body      string         `json:"body"`
	Author    *CommentAuthor `json:"author,omitempty"`
	LikeCount int64          `json:"like_count"`
	Liked     bool           `json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
}

// CommentThread is a top-level comment with its single level of
// replies, oldest reply first.
type CommentThread struct {
	CommentView
	Replies []*CommentView `json:"replies"`
}

type SocialService interface {
	// ToggleObjectLike flips the actor's like on a catalog entry and
	// returns the resulting state and total.
	ToggleObjectLike(ctx context.Context, actorID, objectID uuid.UUID) (bool, int64, error)
	ToggleCommentLike(ctx context.Context, actorID, commentID uuid.UUID) (bool, int64, error)
	PostComment(ctx context.Context, actorID, objectID uuid.UUID, body string) (*types.Comment, error)
	// PostReply attaches a reply to a top-level comment. Replying to a
	// reply is rejected; threads stay one level deep.
	PostReply(ctx context.Context, actorID, parentID uuid.UUID, body string) (*types.Comment, error)
	// DeleteComment soft-deletes. Author or staff only. Replies and
	// likes pointing at the comment are kept.
	DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error
	// ListComments returns the thread view for an object: non-deleted
	// top-level comments ordered by like count then recency, each with
	// its replies. viewerID may be uuid.Nil.
	ListComments(ctx context.Context, objectID, viewerID uuid.UUID) ([]*CommentThread, error)
}

type socialService struct {
	db              *gorm.DB
	commentRepo     repos.CommentRepo
	objectLikeRepo  repos.HeritageLikeRepo
	commentLikeRepo repos.CommentLikeRepo
	heritageRepo    repos.HeritageRepo
	userRepo        repos.UserRepo
	profileRepo     repos.ProfileRepo
	submissionRepo  repos.SubmissionRepo
	log             *logger.Logger
}

func NewSocialService(
	db *gorm.DB,
	commentRepo repos.CommentRepo,
	objectLikeRepo repos.HeritageLikeRepo,
	commentLikeRepo repos.CommentLikeRepo,
	heritageRepo repos.HeritageRepo,
	userRepo repos.UserRepo,
	profileRepo repos.ProfileRepo,
	submissionRepo repos.SubmissionRepo,
	baseLog *logger.Logger,
) SocialService {
	return &socialService{
		db:              db,
		commentRepo:     commentRepo,
		objectLikeRepo:  objectLikeRepo,
		commentLikeRepo: commentLikeRepo,
		heritageRepo:    heritageRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		submissionRepo:  submissionRepo,
		log:             baseLog.With("service", "SocialService"),
	}
}

func (sc *socialService) ToggleObjectLike(ctx context.Context, actorID, objectID uuid.UUID) (bool, int64, error) {
	object, err := sc.heritageRepo.GetByID(ctx, nil, objectID)
	if err != nil {
		return false, 0, err
	}
	if object == nil {
		return false, 0, apierr.NotFound("Catalog entry %s does not exist", objectID)
	}

	var liked bool
	err = sc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := sc.objectLikeRepo.Get(ctx, tx, actorID, objectID)
		if err != nil {
			return err
		}
		if existing != nil {
			liked = false
			return sc.objectLikeRepo.Delete(ctx, tx, existing.ID)
		}
		liked = true
		return sc.objectLikeRepo.Create(ctx, tx, &types.HeritageLike{
			ID:       uuid.New(),
			UserID:   actorID,
			ObjectID: objectID,
		})
	})
	if err != nil {
		if !liked {
			return false, 0, err
		}
		// A concurrent toggle can slip a row in between the read and
		// the insert; the unique index rejects ours and the like
		// already stands. Only the insert path recovers this way.
		existing, getErr := sc.objectLikeRepo.Get(ctx, nil, actorID, objectID)
		if getErr != nil || existing == nil {
			return false, 0, err
		}
	}

	count, err := sc.objectLikeRepo.CountForObject(ctx, nil, objectID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (sc *socialService) ToggleCommentLike(ctx context.Context, actorID, commentID uuid.UUID) (bool, int64, error) {
	comment, err := sc.commentRepo.GetByID(ctx, nil, commentID)
	if err != nil {
		return false, 0, err
	}
	if comment == nil || comment.IsDeleted {
		return false, 0, apierr.NotFound("Comment %s does not exist", commentID)
	}

	var liked bool
	err = sc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := sc.commentLikeRepo.Get(ctx, tx, actorID, commentID)
		if err != nil {
			return err
		}
		if existing != nil {
			liked = false
			return sc.commentLikeRepo.Delete(ctx, tx, existing.ID)
		}
		liked = true
		return sc.commentLikeRepo.Create(ctx, tx, &types.CommentLike{
			ID:        uuid.New(),
			UserID:    actorID,
			CommentID: commentID,
		})
	})
	if err != nil {
		if !liked {
			return false, 0, err
		}
		existing, getErr := sc.commentLikeRepo.Get(ctx, nil, actorID, commentID)
		if getErr != nil || existing == nil {
			return false, 0, err
		}
	}

	count, err := sc.commentLikeRepo.CountForComment(ctx, nil, commentID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (sc *socialService) PostComment(ctx context.Context, actorID, objectID uuid.UUID, body string) (*types.Comment, error) {
	body = normalization.TrimInput(body)
	if body == "" {
		return nil, apierr.Validation("Comment body is required")
	}
	object, err := sc.heritageRepo.GetByID(ctx, nil, objectID)
	if err != nil {
		return nil, err
	}
	if object == nil {
		return nil, apierr.NotFound("Catalog entry %s does not exist", objectID)
	}
	comment := &types.Comment{
		ID:       uuid.New(),
		UserID:   actorID,
		ObjectID: objectID,
		Body:     body,
	}
	return sc.commentRepo.Create(ctx, nil, comment)
}

func (sc *socialService) PostReply(ctx context.Context, actorID, parentID uuid.UUID, body string) (*types.Comment, error) {
	body = normalization.TrimInput(body)
	if body == "" {
		return nil, apierr.Validation("Reply body is required")
	}
	parent, err := sc.commentRepo.GetByID(ctx, nil, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil || parent.IsDeleted {
		return nil, apierr.NotFound("Comment %s does not exist", parentID)
	}
	if parent.ParentID != nil {
		return nil, apierr.Validation("Replies can only target top-level comments")
	}
	reply := &types.Comment{
		ID:       uuid.New(),
		UserID:   actorID,
		ObjectID: parent.ObjectID,
		Body:     body,
		ParentID: &parent.ID,
	}
	return sc.commentRepo.Create(ctx, nil, reply)
}

func (sc *socialService) DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error {
	comment, err := sc.commentRepo.GetByID(ctx, nil, commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.IsDeleted {
		return apierr.NotFound("Comment %s does not exist", commentID)
	}
	if comment.UserID != actorID {
		actor, err := sc.userRepo.GetByID(ctx, nil, actorID)
		if err != nil {
			return err
		}
		if actor == nil || !(actor.IsStaff || actor.IsSuperuser) {
			return apierr.Forbidden("Only the author or staff can delete a comment")
		}
	}
	comment.IsDeleted = true
	if err := sc.commentRepo.Save(ctx, nil, comment); err != nil {
		return err
	}
	sc.log.Info("comment soft-deleted", "comment_id", commentID.String(), "actor_id", actorID.String())
	return nil
}

func (sc *socialService) ListComments(ctx context.Context, objectID, viewerID uuid.UUID) ([]*CommentThread, error) {
	topLevel, err := sc.commentRepo.ListTopLevel(ctx, nil, objectID)
	if err != nil {
		return nil, err
	}

	parentIDs := make([]uuid.UUID, 0, len(topLevel))
	for _, c := range topLevel {
		parentIDs = append(parentIDs, c.ID)
	}
	replies, err := sc.commentRepo.ListReplies(ctx, nil, parentIDs)
	if err != nil {
		return nil, err
	}

	commentIDs := make([]uuid.UUID, 0, len(topLevel)+len(replies))
	authorIDSet := map[uuid.UUID]struct{}{}
	for _, c := range topLevel {
		commentIDs = append(commentIDs, c.ID)
		authorIDSet[c.UserID] = struct{}{}
	}
	for _, r := range replies {
		commentIDs = append(commentIDs, r.ID)
		authorIDSet[r.UserID] = struct{}{}
	}

	likedSet := map[uuid.UUID]bool{}
	if viewerID != uuid.Nil {
		likedSet, err = sc.commentLikeRepo.LikedCommentIDs(ctx, nil, viewerID, commentIDs)
		if err != nil {
			return nil, err
		}
	}

	authors, err := sc.loadAuthors(ctx, authorIDSet)
	if err != nil {
		return nil, err
	}

	repliesByParent := map[uuid.UUID][]*CommentView{}
	for _, r := range replies {
		view := sc.toView(r, likedSet, authors)
		repliesByParent[*r.ParentID] = append(repliesByParent[*r.ParentID], view)
	}

	threads := make([]*CommentThread, 0, len(topLevel))
	for _, c := range topLevel {
		thread := &CommentThread{
			CommentView: *sc.toView(c, likedSet, authors),
			Replies:     repliesByParent[c.ID],
		}
		if thread.Replies == nil {
			thread.Replies = []*CommentView{}
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

func (sc *socialService) toView(c *repos.CommentWithLikes, likedSet map[uuid.UUID]bool, authors map[uuid.UUID]*CommentAuthor) *CommentView {
	return &CommentView{
		ID:        c.ID,
		Body:      c.Body,
		Author:    authors[c.UserID],
		LikeCount: c.LikeCount,
		Liked:     likedSet[c.ID],
		CreatedAt: c.CreatedAt,
	}
}

// loadAuthors resolves display identities and badges for every
// distinct comment author on the page.
func (sc *socialService) loadAuthors(ctx context.Context, idSet map[uuid.UUID]struct{}) (map[uuid.UUID]*CommentAuthor, error) {
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := sc.userRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	profiles, err := sc.profileRepo.GetByUserIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	profileByUser := make(map[uuid.UUID]*types.UserProfile, len(profiles))
	for _, p := range profiles {
		profileByUser[p.UserID] = p
	}

	out := make(map[uuid.UUID]*CommentAuthor, len(users))
	for _, user := range users {
		commentCount, err := sc.commentRepo.CountActiveByUser(ctx, nil, user.ID)
		if err != nil {
			return nil, err
		}
		likesReceived, err := sc.commentLikeRepo.CountReceivedByAuthor(ctx, nil, user.ID)
		if err != nil {
			return nil, err
		}
		author := &CommentAuthor{
			ID:            user.ID,
			Username:      user.Username,
			TotalComments: commentCount,
			LikesReceived: likesReceived,
		}
		if profile := profileByUser[user.ID]; profile != nil {
			author.PhotoURL = profile.PhotoURL

			submissionCount, err := sc.submissionRepo.CountByUser(ctx, nil, user.ID)
			if err != nil {
				return nil, err
			}
			author.Badges = profile.Badges(user, submissionCount+commentCount)
		}
		out[user.ID] = author
	}
	return out, nil
}
