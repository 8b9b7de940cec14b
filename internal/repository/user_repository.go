package repository

import (
	"context"

	"gorm.io/gorm"

	"trackline/internal/model"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindPageByEmailContaining(ctx context.Context, pattern string, page, size int) ([]model.User, int64, error)
	FindPageByFirstNameContaining(ctx context.Context, pattern string, page, size int) ([]model.User, int64, error)
	FindPageByLastNameContaining(ctx context.Context, pattern string, page, size int) ([]model.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) findPageByField(ctx context.Context, field, pattern string, page, size int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	q := r.db.WithContext(ctx).Model(&model.User{}).Where(field+" LIKE ?", "%"+pattern+"%")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("id").Offset(page * size).Limit(size).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) FindPageByEmailContaining(ctx context.Context, pattern string, page, size int) ([]model.User, int64, error) {
	return r.findPageByField(ctx, "email", pattern, page, size)
}

func (r *userRepository) FindPageByFirstNameContaining(ctx context.Context, pattern string, page, size int) ([]model.User, int64, error) {
	return r.findPageByField(ctx, "first_name", pattern, page, size)
}

func (r *userRepository) FindPageByLastNameContaining(ctx context.Context, pattern string, page, size int) ([]model.User, int64, error) {
	return r.findPageByField(ctx, "last_name", pattern, page, size)
}
