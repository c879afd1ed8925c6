package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/types"
)

type HeritageLikeRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID, objectID uuid.UUID) (*types.HeritageLike, error)
	Create(ctx context.Context, tx *gorm.DB, like *types.HeritageLike) error
	Delete(ctx context.Context, tx *gorm.DB, likeID uuid.UUID) error
	CountForObject(ctx context.Context, tx *gorm.DB, objectID uuid.UUID) (int64, error)
	CountForObjects(ctx context.Context, tx *gorm.DB, objectIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	LikedObjectIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
	ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.HeritageLike, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type heritageLikeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHeritageLikeRepo(db *gorm.DB, baseLog *logger.Logger) HeritageLikeRepo {
	repoLog := baseLog.With("repo", "HeritageLikeRepo")
	return &heritageLikeRepo{db: db, log: repoLog}
}

func (lr *heritageLikeRepo) Get(ctx context.Context, tx *gorm.DB, userID, objectID uuid.UUID) (*types.HeritageLike, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var result types.HeritageLike
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND object_id = ?", userID, objectID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (lr *heritageLikeRepo) Create(ctx context.Context, tx *gorm.DB, like *types.HeritageLike) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).Create(like).Error
}

func (lr *heritageLikeRepo) Delete(ctx context.Context, tx *gorm.DB, likeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", likeID).
		Delete(&types.HeritageLike{}).Error
}

func (lr *heritageLikeRepo) CountForObject(ctx context.Context, tx *gorm.DB, objectID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.HeritageLike{}).
		Where("object_id = ?", objectID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (lr *heritageLikeRepo) CountForObjects(ctx context.Context, tx *gorm.DB, objectIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	counts := make(map[uuid.UUID]int64, len(objectIDs))
	if len(objectIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		ObjectID uuid.UUID `gorm:"column:object_id"`
		Count    int64     `gorm:"column:count"`
	}
	if err := transaction.WithContext(ctx).
		Model(&types.HeritageLike{}).
		Select("object_id, COUNT(*) AS count").
		Where("object_id IN ?", objectIDs).
		Group("object_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ObjectID] = row.Count
	}
	return counts, nil
}

func (lr *heritageLikeRepo) LikedObjectIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.HeritageLike{}).
		Where("user_id = ?", userID).
		Pluck("object_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (lr *heritageLikeRepo) ListRecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.HeritageLike, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.HeritageLike
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *heritageLikeRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.HeritageLike{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type CommentLikeRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID, commentID uuid.UUID) (*types.CommentLike, error)
	Create(ctx context.Context, tx *gorm.DB, like *types.CommentLike) error
	Delete(ctx context.Context, tx *gorm.DB, likeID uuid.UUID) error
	CountForComment(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (int64, error)
	// LikedCommentIDs filters the given comment ids down to those the
	// user has liked.
	LikedCommentIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, commentIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	// CountReceivedByAuthor counts likes across every comment the
	// author has written, deleted ones included.
	CountReceivedByAuthor(ctx context.Context, tx *gorm.DB, authorID uuid.UUID) (int64, error)
}

type commentLikeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommentLikeRepo(db *gorm.DB, baseLog *logger.Logger) CommentLikeRepo {
	repoLog := baseLog.With("repo", "CommentLikeRepo")
	return &commentLikeRepo{db: db, log: repoLog}
}

func (lr *commentLikeRepo) Get(ctx context.Context, tx *gorm.DB, userID, commentID uuid.UUID) (*types.CommentLike, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var result types.CommentLike
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (lr *commentLikeRepo) Create(ctx context.Context, tx *gorm.DB, like *types.CommentLike) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).Create(like).Error
}

func (lr *commentLikeRepo) Delete(ctx context.Context, tx *gorm.DB, likeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", likeID).
		Delete(&types.CommentLike{}).Error
}

func (lr *commentLikeRepo) CountForComment(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (lr *commentLikeRepo) LikedCommentIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, commentIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	liked := make(map[uuid.UUID]bool, len(commentIDs))
	if len(commentIDs) == 0 {
		return liked, nil
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (lr *commentLikeRepo) CountReceivedByAuthor(ctx context.Context, tx *gorm.DB, authorID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CommentLike{}).
		Joins("JOIN comment ON comment.id = comment_like.comment_id").
		Where("comment.user_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
