package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/types"
)

type SubmissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, submission *types.Submission) (*types.Submission, error)
	GetByID(ctx context.Context, tx *gorm.DB, submissionID uuid.UUID) (*types.Submission, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Submission, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status types.ReviewStatus) ([]*types.Submission, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, tx *gorm.DB, submission *types.Submission) error
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	repoLog := baseLog.With("repo", "SubmissionRepo")
	return &submissionRepo{db: db, log: repoLog}
}

func (sr *submissionRepo) Create(ctx context.Context, tx *gorm.DB, submission *types.Submission) (*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Create(submission).Error; err != nil {
		return nil, err
	}
	return submission, nil
}

func (sr *submissionRepo) GetByID(ctx context.Context, tx *gorm.DB, submissionID uuid.UUID) (*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Submission
	err := transaction.WithContext(ctx).Where("id = ?", submissionID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *submissionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.Submission
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *submissionRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status types.ReviewStatus) ([]*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Submission
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *submissionRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Submission{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (sr *submissionRepo) Save(ctx context.Context, tx *gorm.DB, submission *types.Submission) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).Save(submission).Error
}
