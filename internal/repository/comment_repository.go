package repository

import (
	"context"

	"gorm.io/gorm"

	"trackline/internal/model"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	Save(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uint) (*model.Comment, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByToDoID(ctx context.Context, todoID uint) error
	FindPageByToDoAndContentContaining(ctx context.Context, todoID uint, pattern string, page, size int) ([]model.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository builds a GORM-backed repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Save(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// FindByID walks the whole chain: to-do, feature, project, member set.
// A comment's accessibility is decided four levels up.
func (r *commentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Preload("ToDo.Feature.Project.Members").
		First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}

func (r *commentRepository) DeleteByToDoID(ctx context.Context, todoID uint) error {
	return r.db.WithContext(ctx).Where("to_do_id = ?", todoID).Delete(&model.Comment{}).Error
}

func (r *commentRepository) FindPageByToDoAndContentContaining(ctx context.Context, todoID uint, pattern string, page, size int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("to_do_id = ? AND content LIKE ?", todoID, "%"+pattern+"%")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("id").Offset(page * size).Limit(size).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
