package repository

import (
	"context"

	"gorm.io/gorm"

	"trackline/internal/model"
)

// FeatureRepository defines persistence operations for features.
type FeatureRepository interface {
	Create(ctx context.Context, feature *model.Feature) error
	Save(ctx context.Context, feature *model.Feature) error
	FindByID(ctx context.Context, id uint) (*model.Feature, error)
	FindByProjectID(ctx context.Context, projectID uint) ([]model.Feature, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByProjectID(ctx context.Context, projectID uint) error
	DetachRun(ctx context.Context, runID uint) error
	FindPageByProjectAndNameContaining(ctx context.Context, projectID uint, pattern string, page, size int) ([]model.Feature, int64, error)
	FindPageByRunAndNameContaining(ctx context.Context, runID uint, pattern string, page, size int) ([]model.Feature, int64, error)
}

type featureRepository struct {
	db *gorm.DB
}

// NewFeatureRepository builds a GORM-backed repository.
func NewFeatureRepository(db *gorm.DB) FeatureRepository {
	return &featureRepository{db: db}
}

func (r *featureRepository) Create(ctx context.Context, feature *model.Feature) error {
	return r.db.WithContext(ctx).Create(feature).Error
}

func (r *featureRepository) Save(ctx context.Context, feature *model.Feature) error {
	return r.db.WithContext(ctx).Save(feature).Error
}

// FindByID loads the owning project directly via the denormalized
// project link, skipping the optional run.
func (r *featureRepository) FindByID(ctx context.Context, id uint) (*model.Feature, error) {
	var feature model.Feature
	if err := r.db.WithContext(ctx).
		Preload("Project.Members").
		Preload("Run").
		First(&feature, id).Error; err != nil {
		return nil, err
	}
	return &feature, nil
}

func (r *featureRepository) FindByProjectID(ctx context.Context, projectID uint) ([]model.Feature, error) {
	var features []model.Feature
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&features).Error; err != nil {
		return nil, err
	}
	return features, nil
}

func (r *featureRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Feature{}, id).Error
}

func (r *featureRepository) DeleteByProjectID(ctx context.Context, projectID uint) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&model.Feature{}).Error
}

// DetachRun clears the run link on every feature scheduled into the given
// run. Features survive run deletion because the project owns them.
func (r *featureRepository) DetachRun(ctx context.Context, runID uint) error {
	return r.db.WithContext(ctx).Model(&model.Feature{}).
		Where("run_id = ?", runID).Update("run_id", nil).Error
}

func (r *featureRepository) findPage(ctx context.Context, cond string, condArg uint, pattern string, page, size int) ([]model.Feature, int64, error) {
	var features []model.Feature
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Feature{}).
		Where(cond+" AND name LIKE ?", condArg, "%"+pattern+"%")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("id").Offset(page * size).Limit(size).Find(&features).Error; err != nil {
		return nil, 0, err
	}
	return features, total, nil
}

func (r *featureRepository) FindPageByProjectAndNameContaining(ctx context.Context, projectID uint, pattern string, page, size int) ([]model.Feature, int64, error) {
	return r.findPage(ctx, "project_id = ?", projectID, pattern, page, size)
}

func (r *featureRepository) FindPageByRunAndNameContaining(ctx context.Context, runID uint, pattern string, page, size int) ([]model.Feature, int64, error) {
	return r.findPage(ctx, "run_id = ?", runID, pattern, page, size)
}
