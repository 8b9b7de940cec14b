package repository

import (
	"context"

	"gorm.io/gorm"

	"trackline/internal/model"
)

// RunRepository defines persistence operations for runs.
type RunRepository interface {
	Create(ctx context.Context, run *model.Run) error
	Save(ctx context.Context, run *model.Run) error
	FindByID(ctx context.Context, id uint) (*model.Run, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByProjectID(ctx context.Context, projectID uint) error
	FindPageByProjectAndNameContaining(ctx context.Context, projectID uint, pattern string, page, size int) ([]model.Run, int64, error)
}

type runRepository struct {
	db *gorm.DB
}

// NewRunRepository builds a GORM-backed repository.
func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Create(ctx context.Context, run *model.Run) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *runRepository) Save(ctx context.Context, run *model.Run) error {
	return r.db.WithContext(ctx).Save(run).Error
}

// FindByID eagerly loads the owning project and its member set so the
// access evaluator can walk the chain without further lookups.
func (r *runRepository) FindByID(ctx context.Context, id uint) (*model.Run, error) {
	var run model.Run
	if err := r.db.WithContext(ctx).
		Preload("Project.Members").
		First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *runRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Run{}, id).Error
}

func (r *runRepository) DeleteByProjectID(ctx context.Context, projectID uint) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&model.Run{}).Error
}

func (r *runRepository) FindPageByProjectAndNameContaining(ctx context.Context, projectID uint, pattern string, page, size int) ([]model.Run, int64, error) {
	var runs []model.Run
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Run{}).
		Where("project_id = ? AND name LIKE ?", projectID, "%"+pattern+"%")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("id").Offset(page * size).Limit(size).Find(&runs).Error; err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}
