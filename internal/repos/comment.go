package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/types"
)

// CommentWithLikes carries the like aggregate the thread ordering
// sorts on, computed in the same query as the listing.
type CommentWithLikes struct {
	types.Comment
	LikeCount int64 `gorm:"column:like_count" json:"like_count"`
}

type CommentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, comment *types.Comment) (*types.Comment, error)
	GetByID(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (*types.Comment, error)
	// ListTopLevel returns non-deleted root comments for an object
	// ordered by like count descending, then recency descending.
	ListTopLevel(ctx context.Context, tx *gorm.DB, objectID uuid.UUID) ([]*CommentWithLikes, error)
	// ListReplies returns non-deleted replies of the given parents,
	// oldest first, with their like counts.
	ListReplies(ctx context.Context, tx *gorm.DB, parentIDs []uuid.UUID) ([]*CommentWithLikes, error)
	ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Comment, error)
	CountActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, tx *gorm.DB, comment *types.Comment) error
}

type commentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	repoLog := baseLog.With("repo", "CommentRepo")
	return &commentRepo{db: db, log: repoLog}
}

func (cr *commentRepo) Create(ctx context.Context, tx *gorm.DB, comment *types.Comment) (*types.Comment, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (cr *commentRepo) GetByID(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (*types.Comment, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Comment
	err := transaction.WithContext(ctx).Where("id = ?", commentID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

const likeCountSubquery = "(SELECT COUNT(*) FROM comment_like WHERE comment_like.comment_id = comment.id)"

func (cr *commentRepo) ListTopLevel(ctx context.Context, tx *gorm.DB, objectID uuid.UUID) ([]*CommentWithLikes, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*CommentWithLikes
	if err := transaction.WithContext(ctx).
		Model(&types.Comment{}).
		Select("comment.*, "+likeCountSubquery+" AS like_count").
		Where("comment.object_id = ? AND comment.parent_id IS NULL AND comment.is_deleted = ?", objectID, false).
		Order("like_count DESC, comment.created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *commentRepo) ListReplies(ctx context.Context, tx *gorm.DB, parentIDs []uuid.UUID) ([]*CommentWithLikes, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*CommentWithLikes
	if len(parentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Comment{}).
		Select("comment.*, "+likeCountSubquery+" AS like_count").
		Where("comment.parent_id IN ? AND comment.is_deleted = ?", parentIDs, false).
		Order("comment.created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *commentRepo) ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Comment, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	query := transaction.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.Comment
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *commentRepo) CountActiveByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Comment{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (cr *commentRepo) Save(ctx context.Context, tx *gorm.DB, comment *types.Comment) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Save(comment).Error
}
