package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"trackline/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindPageByEmailContaining(ctx context.Context, pattern string, page, size int) ([]model.User, int64, error) {
	args := m.Called(ctx, pattern, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) FindPageByFirstNameContaining(ctx context.Context, pattern string, page, size int) ([]model.User, int64, error) {
	args := m.Called(ctx, pattern, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) FindPageByLastNameContaining(ctx context.Context, pattern string, page, size int) ([]model.User, int64, error) {
	args := m.Called(ctx, pattern, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

// MockProjectRepository is a mock implementation of ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) DeleteByID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) AddMember(ctx context.Context, project *model.Project, user *model.User) error {
	args := m.Called(ctx, project, user)
	return args.Error(0)
}

func (m *MockProjectRepository) RemoveMember(ctx context.Context, project *model.Project, user *model.User) error {
	args := m.Called(ctx, project, user)
	return args.Error(0)
}

func (m *MockProjectRepository) FindPageByNameContaining(ctx context.Context, pattern string, page, size int) ([]model.Project, int64, error) {
	args := m.Called(ctx, pattern, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) FindPageByMemberAndNameContaining(ctx context.Context, email, pattern string, page, size int) ([]model.Project, int64, error) {
	args := m.Called(ctx, email, pattern, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Project), args.Get(1).(int64), args.Error(2)
}

// MockRunRepository is a mock implementation of RunRepository.
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Create(ctx context.Context, run *model.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) Save(ctx context.Context, run *model.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) FindByID(ctx context.Context, id uint) (*model.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Run), args.Error(1)
}

func (m *MockRunRepository) DeleteByID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRunRepository) DeleteByProjectID(ctx context.Context, projectID uint) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockRunRepository) FindPageByProjectAndNameContaining(ctx context.Context, projectID uint, pattern string, page, size int) ([]model.Run, int64, error) {
	args := m.Called(ctx, projectID, pattern, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Run), args.Get(1).(int64), args.Error(2)
}

// MockFeatureRepository is a mock implementation of FeatureRepository.
type MockFeatureRepository struct {
	mock.Mock
}

func (m *MockFeatureRepository) Create(ctx context.Context, feature *model.Feature) error {
	args := m.Called(ctx, feature)
	return args.Error(0)
}

func (m *MockFeatureRepository) Save(ctx context.Context, feature *model.Feature) error {
	args := m.Called(ctx, feature)
	return args.Error(0)
}

func (m *MockFeatureRepository) FindByID(ctx context.Context, id uint) (*model.Feature, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feature), args.Error(1)
}

func (m *MockFeatureRepository) FindByProjectID(ctx context.Context, projectID uint) ([]model.Feature, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feature), args.Error(1)
}

func (m *MockFeatureRepository) DeleteByID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFeatureRepository) DeleteByProjectID(ctx context.Context, projectID uint) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockFeatureRepository) DetachRun(ctx context.Context, runID uint) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}

func (m *MockFeatureRepository) FindPageByProjectAndNameContaining(ctx context.Context, projectID uint, pattern string, page, size int) ([]model.Feature, int64, error) {
	args := m.Called(ctx, projectID, pattern, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Feature), args.Get(1).(int64), args.Error(2)
}

func (m *MockFeatureRepository) FindPageByRunAndNameContaining(ctx context.Context, runID uint, pattern string, page, size int) ([]model.Feature, int64, error) {
	args := m.Called(ctx, runID, pattern, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Feature), args.Get(1).(int64), args.Error(2)
}

// MockToDoRepository is a mock implementation of ToDoRepository.
type MockToDoRepository struct {
	mock.Mock
}

func (m *MockToDoRepository) Create(ctx context.Context, todo *model.ToDo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockToDoRepository) Save(ctx context.Context, todo *model.ToDo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockToDoRepository) FindByID(ctx context.Context, id uint) (*model.ToDo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ToDo), args.Error(1)
}

func (m *MockToDoRepository) FindByFeatureID(ctx context.Context, featureID uint) ([]model.ToDo, error) {
	args := m.Called(ctx, featureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ToDo), args.Error(1)
}

func (m *MockToDoRepository) DeleteByID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockToDoRepository) DeleteByFeatureID(ctx context.Context, featureID uint) error {
	args := m.Called(ctx, featureID)
	return args.Error(0)
}

func (m *MockToDoRepository) FindPageByFeatureAndNameContaining(ctx context.Context, featureID uint, pattern string, page, size int) ([]model.ToDo, int64, error) {
	args := m.Called(ctx, featureID, pattern, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.ToDo), args.Get(1).(int64), args.Error(2)
}

// MockCommentRepository is a mock implementation of CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Save(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) DeleteByID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteByToDoID(ctx context.Context, todoID uint) error {
	args := m.Called(ctx, todoID)
	return args.Error(0)
}

func (m *MockCommentRepository) FindPageByToDoAndContentContaining(ctx context.Context, todoID uint, pattern string, page, size int) ([]model.Comment, int64, error) {
	args := m.Called(ctx, todoID, pattern, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Comment), args.Get(1).(int64), args.Error(2)
}

// Shared fixtures.

func memberUser() *model.User {
	return &model.User{ID: 2, FirstName: "Mina", LastName: "Member", Email: "member@example.com", Role: model.RoleUser}
}

func outsiderUser() *model.User {
	return &model.User{ID: 3, FirstName: "Otto", LastName: "Outsider", Email: "outsider@example.com", Role: model.RoleUser}
}

func managerUser() *model.User {
	return &model.User{ID: 4, FirstName: "Paula", LastName: "Manager", Email: "pm@example.com", Role: model.RoleProjectManager}
}

func testProject() *model.Project {
	return &model.Project{
		ID:   1,
		Name: "Apollo",
		Members: []model.User{
			{ID: 2, Email: "member@example.com", Role: model.RoleUser},
		},
	}
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
