package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/types"
)

type ProposalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, proposal *types.EditProposal) (*types.EditProposal, error)
	GetByID(ctx context.Context, tx *gorm.DB, proposalID uuid.UUID) (*types.EditProposal, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.EditProposal, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status types.ReviewStatus) ([]*types.EditProposal, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, tx *gorm.DB, proposal *types.EditProposal) error
}

type proposalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProposalRepo(db *gorm.DB, baseLog *logger.Logger) ProposalRepo {
	repoLog := baseLog.With("repo", "ProposalRepo")
	return &proposalRepo{db: db, log: repoLog}
}

func (pr *proposalRepo) Create(ctx context.Context, tx *gorm.DB, proposal *types.EditProposal) (*types.EditProposal, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(proposal).Error; err != nil {
		return nil, err
	}
	return proposal, nil
}

func (pr *proposalRepo) GetByID(ctx context.Context, tx *gorm.DB, proposalID uuid.UUID) (*types.EditProposal, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.EditProposal
	err := transaction.WithContext(ctx).Where("id = ?", proposalID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *proposalRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.EditProposal, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.EditProposal
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *proposalRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status types.ReviewStatus) ([]*types.EditProposal, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.EditProposal
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *proposalRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.EditProposal{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *proposalRepo) Save(ctx context.Context, tx *gorm.DB, proposal *types.EditProposal) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Save(proposal).Error
}
