package repos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/types"
)

// ObjectFilter narrows the catalog listing. Zero values mean "no
// constraint". Region and type match exactly (case-insensitive);
// Query is a substring match on the English title.
type ObjectFilter struct {
	Region     string
	ObjectType string
	Query      string
}

type HeritageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, object *types.HeritageObject) (*types.HeritageObject, error)
	GetByID(ctx context.Context, tx *gorm.DB, objectID uuid.UUID) (*types.HeritageObject, error)
	List(ctx context.Context, tx *gorm.DB, filter ObjectFilter) ([]*types.HeritageObject, error)
	Save(ctx context.Context, tx *gorm.DB, object *types.HeritageObject) error
}

type heritageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHeritageRepo(db *gorm.DB, baseLog *logger.Logger) HeritageRepo {
	repoLog := baseLog.With("repo", "HeritageRepo")
	return &heritageRepo{db: db, log: repoLog}
}

func (hr *heritageRepo) Create(ctx context.Context, tx *gorm.DB, object *types.HeritageObject) (*types.HeritageObject, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	if err := transaction.WithContext(ctx).Create(object).Error; err != nil {
		return nil, err
	}
	return object, nil
}

func (hr *heritageRepo) GetByID(ctx context.Context, tx *gorm.DB, objectID uuid.UUID) (*types.HeritageObject, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	var result types.HeritageObject
	err := transaction.WithContext(ctx).Where("id = ?", objectID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (hr *heritageRepo) List(ctx context.Context, tx *gorm.DB, filter ObjectFilter) ([]*types.HeritageObject, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	query := transaction.WithContext(ctx).Model(&types.HeritageObject{})
	if filter.Region != "" {
		query = query.Where("LOWER(region) = ?", strings.ToLower(filter.Region))
	}
	if filter.ObjectType != "" {
		query = query.Where("LOWER(object_type) = ?", strings.ToLower(filter.ObjectType))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	var results []*types.HeritageObject
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (hr *heritageRepo) Save(ctx context.Context, tx *gorm.DB, object *types.HeritageObject) error {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	return transaction.WithContext(ctx).Save(object).Error
}
