package repository

import (
	"context"

	"gorm.io/gorm"

	"trackline/internal/model"
)

// ToDoRepository defines persistence operations for to-dos.
type ToDoRepository interface {
	Create(ctx context.Context, todo *model.ToDo) error
	Save(ctx context.Context, todo *model.ToDo) error
	FindByID(ctx context.Context, id uint) (*model.ToDo, error)
	FindByFeatureID(ctx context.Context, featureID uint) ([]model.ToDo, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByFeatureID(ctx context.Context, featureID uint) error
	FindPageByFeatureAndNameContaining(ctx context.Context, featureID uint, pattern string, page, size int) ([]model.ToDo, int64, error)
}

type todoRepository struct {
	db *gorm.DB
}

// NewToDoRepository builds a GORM-backed repository.
func NewToDoRepository(db *gorm.DB) ToDoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(ctx context.Context, todo *model.ToDo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *todoRepository) Save(ctx context.Context, todo *model.ToDo) error {
	return r.db.WithContext(ctx).Save(todo).Error
}

// FindByID loads the full ownership chain (feature, then project with its
// member set) plus the optional assignee.
func (r *todoRepository) FindByID(ctx context.Context, id uint) (*model.ToDo, error) {
	var todo model.ToDo
	if err := r.db.WithContext(ctx).
		Preload("Feature.Project.Members").
		Preload("Assignee").
		First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) FindByFeatureID(ctx context.Context, featureID uint) ([]model.ToDo, error) {
	var todos []model.ToDo
	if err := r.db.WithContext(ctx).Where("feature_id = ?", featureID).Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.ToDo{}, id).Error
}

func (r *todoRepository) DeleteByFeatureID(ctx context.Context, featureID uint) error {
	return r.db.WithContext(ctx).Where("feature_id = ?", featureID).Delete(&model.ToDo{}).Error
}

func (r *todoRepository) FindPageByFeatureAndNameContaining(ctx context.Context, featureID uint, pattern string, page, size int) ([]model.ToDo, int64, error) {
	var todos []model.ToDo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ToDo{}).
		Where("feature_id = ? AND name LIKE ?", featureID, "%"+pattern+"%")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Preload("Assignee").Order("id").Offset(page * size).Limit(size).Find(&todos).Error; err != nil {
		return nil, 0, err
	}
	return todos, total, nil
}
