package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "trackline/internal/errors"
	"trackline/internal/model"
)

func newProjectServiceWithMocks() (ProjectService, *MockProjectRepository, *MockRunRepository, *MockFeatureRepository, *MockToDoRepository, *MockCommentRepository, *MockUserRepository) {
	projects := new(MockProjectRepository)
	runs := new(MockRunRepository)
	features := new(MockFeatureRepository)
	todos := new(MockToDoRepository)
	comments := new(MockCommentRepository)
	users := new(MockUserRepository)
	svc := NewProjectService(projects, runs, features, todos, comments, users)
	return svc, projects, runs, features, todos, comments, users
}

func TestProjectService_Create(t *testing.T) {
	due := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		req           *CreateProjectRequest
		expectedError string
	}{
		{
			name: "successful creation",
			req:  &CreateProjectRequest{Name: strPtr("Apollo"), DueDate: &due},
		},
		{
			name:          "all missing fields reported together",
			req:           &CreateProjectRequest{Description: strPtr("no name, no date")},
			expectedError: "name is required; dueDate is required",
		},
		{
			name:          "missing due date only",
			req:           &CreateProjectRequest{Name: strPtr("Apollo")},
			expectedError: "dueDate is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, projects, _, _, _, _, _ := newProjectServiceWithMocks()
			if tt.expectedError == "" {
				projects.On("Create", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)
			}

			project, err := svc.Create(context.Background(), memberUser(), tt.req)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusNew, project.Status)
				assert.Equal(t, uint(2), project.CreatorID)
				// The creator joins the member set up front.
				assert.True(t, project.HasMember("member@example.com"))
			}
			projects.AssertExpectations(t)
		})
	}
}

func TestProjectService_Get_NotFoundMessage(t *testing.T) {
	svc, projects, _, _, _, _, _ := newProjectServiceWithMocks()
	projects.On("FindByID", mock.Anything, uint(77)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), memberUser(), 77)

	assert.Error(t, err)
	assert.Equal(t, "Project with id 77 does not exist", err.Error())
	var domainErr *apperrors.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.KindNotFound, domainErr.Kind)
}

func TestProjectService_Get_ForbiddenForNonMember(t *testing.T) {
	svc, projects, _, _, _, _, _ := newProjectServiceWithMocks()
	projects.On("FindByID", mock.Anything, uint(1)).Return(testProject(), nil)

	_, err := svc.Get(context.Background(), outsiderUser(), 1)

	var domainErr *apperrors.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.KindForbidden, domainErr.Kind)
}

func TestProjectService_Update_InvalidStatusFailsBeforeMutation(t *testing.T) {
	svc, projects, _, _, _, _, _ := newProjectServiceWithMocks()
	projects.On("FindByID", mock.Anything, uint(1)).Return(testProject(), nil)

	_, err := svc.Update(context.Background(), memberUser(), 1, &UpdateProjectRequest{
		Name:   strPtr("Renamed"),
		Status: strPtr("Archived"),
	})

	assert.Error(t, err)
	assert.Equal(t, "invalid status: Archived", err.Error())
	projects.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProjectService_Delete_CascadesSubtree(t *testing.T) {
	svc, projects, runs, features, todos, comments, _ := newProjectServiceWithMocks()
	projects.On("FindByID", mock.Anything, uint(1)).Return(testProject(), nil)
	features.On("FindByProjectID", mock.Anything, uint(1)).
		Return([]model.Feature{{ID: 10, ProjectID: 1}}, nil)
	todos.On("FindByFeatureID", mock.Anything, uint(10)).
		Return([]model.ToDo{{ID: 20, FeatureID: 10}}, nil)
	comments.On("DeleteByToDoID", mock.Anything, uint(20)).Return(nil)
	todos.On("DeleteByFeatureID", mock.Anything, uint(10)).Return(nil)
	features.On("DeleteByProjectID", mock.Anything, uint(1)).Return(nil)
	runs.On("DeleteByProjectID", mock.Anything, uint(1)).Return(nil)
	projects.On("DeleteByID", mock.Anything, uint(1)).Return(nil)

	err := svc.Delete(context.Background(), memberUser(), 1)

	assert.NoError(t, err)
	projects.AssertExpectations(t)
	runs.AssertExpectations(t)
	features.AssertExpectations(t)
	todos.AssertExpectations(t)
	comments.AssertExpectations(t)
}

func TestProjectService_Search_ScopedToMembershipForOrdinaryUser(t *testing.T) {
	svc, projects, _, _, _, _, _ := newProjectServiceWithMocks()
	projects.On("FindPageByMemberAndNameContaining", mock.Anything, "member@example.com", "Apo", 0, 8).
		Return([]model.Project{*testProject()}, int64(1), nil)

	pattern := "Apo"
	env, err := svc.Search(context.Background(), memberUser(), &pattern, nil)

	assert.NoError(t, err)
	assert.Len(t, env.Items, 1)
	projects.AssertNotCalled(t, "FindPageByNameContaining", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_Search_UnscopedForManager(t *testing.T) {
	svc, projects, _, _, _, _, _ := newProjectServiceWithMocks()
	projects.On("FindPageByNameContaining", mock.Anything, "", 0, 8).
		Return([]model.Project{*testProject()}, int64(9), nil)

	env, err := svc.Search(context.Background(), managerUser(), nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 2, env.Pageable.TotalPages)
	projects.AssertExpectations(t)
}

func TestProjectService_AddMember_DuplicateRejected(t *testing.T) {
	svc, projects, _, _, _, _, users := newProjectServiceWithMocks()
	projects.On("FindByID", mock.Anything, uint(1)).Return(testProject(), nil)
	users.On("FindByID", mock.Anything, uint(2)).Return(memberUser(), nil)

	_, err := svc.AddMember(context.Background(), managerUser(), 1, 2)

	var domainErr *apperrors.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.KindDuplication, domainErr.Kind)
	projects.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_AddMember_Success(t *testing.T) {
	svc, projects, _, _, _, _, users := newProjectServiceWithMocks()
	projects.On("FindByID", mock.Anything, uint(1)).Return(testProject(), nil)
	users.On("FindByID", mock.Anything, uint(3)).Return(outsiderUser(), nil)
	projects.On("AddMember", mock.Anything, mock.AnythingOfType("*model.Project"), mock.AnythingOfType("*model.User")).Return(nil)

	project, err := svc.AddMember(context.Background(), managerUser(), 1, 3)

	assert.NoError(t, err)
	assert.True(t, project.HasMember("outsider@example.com"))
	projects.AssertExpectations(t)
}

func TestProjectService_RemoveMember_NotAMember(t *testing.T) {
	svc, projects, _, _, _, _, users := newProjectServiceWithMocks()
	projects.On("FindByID", mock.Anything, uint(1)).Return(testProject(), nil)
	users.On("FindByID", mock.Anything, uint(3)).Return(outsiderUser(), nil)

	_, err := svc.RemoveMember(context.Background(), managerUser(), 1, 3)

	assert.Error(t, err)
	assert.Equal(t, "user is not a member of the project", err.Error())
}
