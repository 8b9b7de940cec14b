package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "trackline/internal/errors"
	"trackline/internal/model"
)

func newFeatureServiceWithMocks() (FeatureService, *MockFeatureRepository, *MockProjectRepository, *MockRunRepository, *MockToDoRepository, *MockCommentRepository) {
	features := new(MockFeatureRepository)
	projects := new(MockProjectRepository)
	runs := new(MockRunRepository)
	todos := new(MockToDoRepository)
	comments := new(MockCommentRepository)
	svc := NewFeatureService(features, projects, runs, todos, comments)
	return svc, features, projects, runs, todos, comments
}

func TestFeatureService_Create_MissingName(t *testing.T) {
	svc, _, projects, _, _, _ := newFeatureServiceWithMocks()
	projects.On("FindByID", mock.Anything, uint(1)).Return(testProject(), nil)

	_, err := svc.Create(context.Background(), memberUser(), 1, &CreateFeatureRequest{
		Description: strPtr("unnamed"),
	})

	assert.Error(t, err)
	assert.Equal(t, "name is required", err.Error())
}

func TestFeatureService_Create_RunFromAnotherProjectRejected(t *testing.T) {
	svc, _, projects, runs, _, _ := newFeatureServiceWithMocks()
	projects.On("FindByID", mock.Anything, uint(1)).Return(testProject(), nil)
	runs.On("FindByID", mock.Anything, uint(40)).Return(&model.Run{ID: 40, ProjectID: 9}, nil)

	runID := uint(40)
	_, err := svc.Create(context.Background(), memberUser(), 1, &CreateFeatureRequest{
		Name:  strPtr("Search"),
		RunID: &runID,
	})

	assert.Error(t, err)
	assert.Equal(t, "run does not belong to the project", err.Error())
	var domainErr *apperrors.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.KindBadRequest, domainErr.Kind)
}

func TestFeatureService_Create_UnscheduledByDefault(t *testing.T) {
	svc, features, projects, _, _, _ := newFeatureServiceWithMocks()
	projects.On("FindByID", mock.Anything, uint(1)).Return(testProject(), nil)
	features.On("Create", mock.Anything, mock.AnythingOfType("*model.Feature")).Return(nil)

	feature, err := svc.Create(context.Background(), memberUser(), 1, &CreateFeatureRequest{
		Name: strPtr("Search"),
	})

	assert.NoError(t, err)
	assert.Nil(t, feature.RunID)
	assert.Equal(t, model.StatusNew, feature.Status)
	assert.Equal(t, uint(1), feature.ProjectID)
	features.AssertExpectations(t)
}

func TestFeatureService_Create_ScheduledIntoOwnRun(t *testing.T) {
	svc, features, projects, runs, _, _ := newFeatureServiceWithMocks()
	projects.On("FindByID", mock.Anything, uint(1)).Return(testProject(), nil)
	runs.On("FindByID", mock.Anything, uint(40)).Return(&model.Run{ID: 40, ProjectID: 1}, nil)
	features.On("Create", mock.Anything, mock.AnythingOfType("*model.Feature")).Return(nil)

	runID := uint(40)
	feature, err := svc.Create(context.Background(), memberUser(), 1, &CreateFeatureRequest{
		Name:  strPtr("Search"),
		RunID: &runID,
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(40), *feature.RunID)
}

func TestFeatureService_Update_RescheduleValidatesRunOwnership(t *testing.T) {
	svc, features, _, runs, _, _ := newFeatureServiceWithMocks()
	features.On("FindByID", mock.Anything, uint(10)).Return(featureInTestProject(), nil)
	runs.On("FindByID", mock.Anything, uint(41)).Return(&model.Run{ID: 41, ProjectID: 9}, nil)

	runID := uint(41)
	_, err := svc.Update(context.Background(), memberUser(), 10, &UpdateFeatureRequest{
		RunID: &runID,
	})

	assert.Error(t, err)
	assert.Equal(t, "run does not belong to the project", err.Error())
	features.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFeatureService_Update_NoChangesRejected(t *testing.T) {
	svc, features, _, _, _, _ := newFeatureServiceWithMocks()
	features.On("FindByID", mock.Anything, uint(10)).Return(featureInTestProject(), nil)

	_, err := svc.Update(context.Background(), memberUser(), 10, &UpdateFeatureRequest{
		Name: strPtr("Search"),
	})

	assert.Error(t, err)
	assert.Equal(t, "no changes", err.Error())
}

func TestFeatureService_Unschedule_ClearsRunLink(t *testing.T) {
	svc, features, _, _, _, _ := newFeatureServiceWithMocks()
	scheduled := featureInTestProject()
	runID := uint(40)
	scheduled.RunID = &runID
	features.On("FindByID", mock.Anything, uint(10)).Return(scheduled, nil)
	features.On("Save", mock.Anything, mock.AnythingOfType("*model.Feature")).Return(nil)

	feature, err := svc.Unschedule(context.Background(), memberUser(), 10)

	assert.NoError(t, err)
	assert.Nil(t, feature.RunID)
	features.AssertExpectations(t)
}

func TestFeatureService_Unschedule_AlreadyUnscheduled(t *testing.T) {
	svc, features, _, _, _, _ := newFeatureServiceWithMocks()
	features.On("FindByID", mock.Anything, uint(10)).Return(featureInTestProject(), nil)

	_, err := svc.Unschedule(context.Background(), memberUser(), 10)

	assert.Error(t, err)
	assert.Equal(t, "no changes", err.Error())
	features.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFeatureService_Delete_CascadesToDosAndComments(t *testing.T) {
	svc, features, _, _, todos, comments := newFeatureServiceWithMocks()
	features.On("FindByID", mock.Anything, uint(10)).Return(featureInTestProject(), nil)
	todos.On("FindByFeatureID", mock.Anything, uint(10)).
		Return([]model.ToDo{{ID: 20, FeatureID: 10}, {ID: 21, FeatureID: 10}}, nil)
	comments.On("DeleteByToDoID", mock.Anything, uint(20)).Return(nil)
	comments.On("DeleteByToDoID", mock.Anything, uint(21)).Return(nil)
	todos.On("DeleteByFeatureID", mock.Anything, uint(10)).Return(nil)
	features.On("DeleteByID", mock.Anything, uint(10)).Return(nil)

	err := svc.Delete(context.Background(), memberUser(), 10)

	assert.NoError(t, err)
	features.AssertExpectations(t)
	todos.AssertExpectations(t)
	comments.AssertExpectations(t)
}

func TestFeatureService_SearchByRun_ForbiddenForNonMember(t *testing.T) {
	svc, _, _, runs, _, _ := newFeatureServiceWithMocks()
	runs.On("FindByID", mock.Anything, uint(40)).
		Return(&model.Run{ID: 40, ProjectID: 1, Project: *testProject()}, nil)

	_, err := svc.SearchByRun(context.Background(), outsiderUser(), 40, nil, nil)

	var domainErr *apperrors.Error
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.KindForbidden, domainErr.Kind)
}

func TestFeatureService_SearchByProject_FirstPage(t *testing.T) {
	svc, features, projects, _, _, _ := newFeatureServiceWithMocks()
	projects.On("FindByID", mock.Anything, uint(1)).Return(testProject(), nil)
	features.On("FindPageByProjectAndNameContaining", mock.Anything, uint(1), "sea", 0, 8).
		Return([]model.Feature{*featureInTestProject()}, int64(1), nil)

	pattern := "sea"
	env, err := svc.SearchByProject(context.Background(), memberUser(), 1, &pattern, nil)

	assert.NoError(t, err)
	assert.Len(t, env.Items, 1)
	assert.Equal(t, int64(1), env.Pageable.TotalElements)
}
