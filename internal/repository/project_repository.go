package repository

import (
	"context"

	"gorm.io/gorm"

	"trackline/internal/model"
)

// ProjectRepository defines persistence operations for projects, including
// member-set management.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Save(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	DeleteByID(ctx context.Context, id uint) error
	AddMember(ctx context.Context, project *model.Project, user *model.User) error
	RemoveMember(ctx context.Context, project *model.Project, user *model.User) error
	FindPageByNameContaining(ctx context.Context, pattern string, page, size int) ([]model.Project, int64, error)
	FindPageByMemberAndNameContaining(ctx context.Context, email, pattern string, page, size int) ([]model.Project, int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository builds a GORM-backed repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) Save(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit("Members").Save(project).Error
}

// FindByID loads the project with its member set and creator, so access
// checks never trigger a second lookup.
func (r *projectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Creator").
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) DeleteByID(ctx context.Context, id uint) error {
	project := model.Project{ID: id}
	if err := r.db.WithContext(ctx).Model(&project).Association("Members").Clear(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&project).Error
}

func (r *projectRepository) AddMember(ctx context.Context, project *model.Project, user *model.User) error {
	return r.db.WithContext(ctx).Model(project).Association("Members").Append(user)
}

func (r *projectRepository) RemoveMember(ctx context.Context, project *model.Project, user *model.User) error {
	return r.db.WithContext(ctx).Model(project).Association("Members").Delete(user)
}

func (r *projectRepository) FindPageByNameContaining(ctx context.Context, pattern string, page, size int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Project{}).Where("name LIKE ?", "%"+pattern+"%")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Preload("Members").Preload("Creator").
		Order("id").Offset(page * size).Limit(size).Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// FindPageByMemberAndNameContaining restricts the search to projects whose
// member set contains the given email.
func (r *projectRepository) FindPageByMemberAndNameContaining(ctx context.Context, email, pattern string, page, size int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Project{}).
		Joins("JOIN project_members pm ON pm.project_id = projects.id").
		Joins("JOIN users u ON u.id = pm.user_id").
		Where("u.email = ? AND projects.name LIKE ?", email, "%"+pattern+"%")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Preload("Members").Preload("Creator").
		Order("projects.id").Offset(page * size).Limit(size).Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}
