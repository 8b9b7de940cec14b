package service

import (
	"context"

	"trackline/internal/access"
	apperrors "trackline/internal/errors"
	"trackline/internal/model"
	"trackline/internal/pagination"
	"trackline/internal/repository"
)

// CreateFeatureRequest carries the fields for creating a feature under a
// project, optionally scheduled into one of the project's runs.
type CreateFeatureRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	RunID       *uint   `json:"run_id"`
}

// UpdateFeatureRequest carries the optional fields for a field-by-field
// feature update.
type UpdateFeatureRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Status      *string `json:"status"`
	RunID       *uint   `json:"run_id"`
}

// FeatureService exposes feature operations.
type FeatureService interface {
	Create(ctx context.Context, principal *model.User, projectID uint, req *CreateFeatureRequest) (*model.Feature, error)
	Get(ctx context.Context, principal *model.User, id uint) (*model.Feature, error)
	Update(ctx context.Context, principal *model.User, id uint, req *UpdateFeatureRequest) (*model.Feature, error)
	Unschedule(ctx context.Context, principal *model.User, id uint) (*model.Feature, error)
	Delete(ctx context.Context, principal *model.User, id uint) error
	SearchByProject(ctx context.Context, principal *model.User, projectID uint, pattern *string, page *int) (*pagination.Envelope[model.Feature], error)
	SearchByRun(ctx context.Context, principal *model.User, runID uint, pattern *string, page *int) (*pagination.Envelope[model.Feature], error)
}

type featureService struct {
	features repository.FeatureRepository
	projects repository.ProjectRepository
	runs     repository.RunRepository
	todos    repository.ToDoRepository
	comments repository.CommentRepository
}

// NewFeatureService builds a FeatureService.
func NewFeatureService(
	features repository.FeatureRepository,
	projects repository.ProjectRepository,
	runs repository.RunRepository,
	todos repository.ToDoRepository,
	comments repository.CommentRepository,
) FeatureService {
	return &featureService{
		features: features,
		projects: projects,
		runs:     runs,
		todos:    todos,
		comments: comments,
	}
}

func (s *featureService) resolve(ctx context.Context, id uint) (*model.Feature, error) {
	feature, err := s.features.FindByID(ctx, id)
	if err != nil {
		return nil, resolveErr(err, "Feature", id)
	}
	return feature, nil
}

func (s *featureService) resolveProject(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, resolveErr(err, "Project", id)
	}
	return project, nil
}

// checkRun verifies that a requested run exists and is owned by the same
// project as the feature.
func (s *featureService) checkRun(ctx context.Context, runID, projectID uint) error {
	run, err := s.runs.FindByID(ctx, runID)
	if err != nil {
		return resolveErr(err, "Run", runID)
	}
	if run.ProjectID != projectID {
		return apperrors.NewBadRequest("run does not belong to the project")
	}
	return nil
}

func (s *featureService) Create(ctx context.Context, principal *model.User, projectID uint, req *CreateFeatureRequest) (*model.Feature, error) {
	project, err := s.resolveProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, project); err != nil {
		return nil, err
	}

	var errs fieldErrors
	if req.Name == nil || *req.Name == "" {
		errs.addMissing("name")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	if req.RunID != nil {
		if err := s.checkRun(ctx, *req.RunID, project.ID); err != nil {
			return nil, err
		}
	}

	feature := &model.Feature{
		Name:      *req.Name,
		Status:    model.StatusNew,
		ProjectID: project.ID,
		RunID:     req.RunID,
	}
	if req.Description != nil {
		feature.Description = *req.Description
	}
	if req.Type != nil {
		feature.Type = *req.Type
	}

	if err := s.features.Create(ctx, feature); err != nil {
		return nil, err
	}
	return feature, nil
}

func (s *featureService) Get(ctx context.Context, principal *model.User, id uint) (*model.Feature, error) {
	feature, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfFeature(feature)); err != nil {
		return nil, err
	}
	return feature, nil
}

func (s *featureService) Update(ctx context.Context, principal *model.User, id uint, req *UpdateFeatureRequest) (*model.Feature, error) {
	feature, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfFeature(feature)); err != nil {
		return nil, err
	}

	if req.Status != nil && !model.Status(*req.Status).IsValid() {
		return nil, apperrors.NewBadRequest("invalid status: " + *req.Status)
	}
	if req.RunID != nil {
		if err := s.checkRun(ctx, *req.RunID, feature.ProjectID); err != nil {
			return nil, err
		}
	}

	changed := false
	if req.Name != nil && *req.Name != feature.Name {
		feature.Name = *req.Name
		changed = true
	}
	if req.Description != nil && *req.Description != feature.Description {
		feature.Description = *req.Description
		changed = true
	}
	if req.Type != nil && *req.Type != feature.Type {
		feature.Type = *req.Type
		changed = true
	}
	if req.Status != nil && model.Status(*req.Status) != feature.Status {
		feature.Status = model.Status(*req.Status)
		changed = true
	}
	if req.RunID != nil && (feature.RunID == nil || *feature.RunID != *req.RunID) {
		feature.RunID = req.RunID
		changed = true
	}
	if !changed {
		return nil, noChanges()
	}

	if err := s.features.Save(ctx, feature); err != nil {
		return nil, err
	}
	return feature, nil
}

// Unschedule pulls the feature out of its run. Update treats an absent
// run_id as "unchanged", so clearing the link needs its own operation.
func (s *featureService) Unschedule(ctx context.Context, principal *model.User, id uint) (*model.Feature, error) {
	feature, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfFeature(feature)); err != nil {
		return nil, err
	}

	if feature.RunID == nil {
		return nil, noChanges()
	}
	feature.RunID = nil
	feature.Run = nil

	if err := s.features.Save(ctx, feature); err != nil {
		return nil, err
	}
	return feature, nil
}

// Delete removes the feature along with its to-dos and their comments.
func (s *featureService) Delete(ctx context.Context, principal *model.User, id uint) error {
	feature, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Require(principal, access.OwningProjectOfFeature(feature)); err != nil {
		return err
	}

	todos, err := s.todos.FindByFeatureID(ctx, id)
	if err != nil {
		return err
	}
	for _, todo := range todos {
		if err := s.comments.DeleteByToDoID(ctx, todo.ID); err != nil {
			return err
		}
	}
	if err := s.todos.DeleteByFeatureID(ctx, id); err != nil {
		return err
	}
	return s.features.DeleteByID(ctx, id)
}

func (s *featureService) SearchByProject(ctx context.Context, principal *model.User, projectID uint, pattern *string, page *int) (*pagination.Envelope[model.Feature], error) {
	project, err := s.resolveProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, project); err != nil {
		return nil, err
	}
	return s.searchPage(ctx, pattern, page, func(p int, pat string) ([]model.Feature, int64, error) {
		return s.features.FindPageByProjectAndNameContaining(ctx, projectID, pat, p, pagination.FeaturePageSize)
	})
}

func (s *featureService) SearchByRun(ctx context.Context, principal *model.User, runID uint, pattern *string, page *int) (*pagination.Envelope[model.Feature], error) {
	run, err := s.runs.FindByID(ctx, runID)
	if err != nil {
		return nil, resolveErr(err, "Run", runID)
	}
	if err := access.Require(principal, access.OwningProjectOfRun(run)); err != nil {
		return nil, err
	}
	return s.searchPage(ctx, pattern, page, func(p int, pat string) ([]model.Feature, int64, error) {
		return s.features.FindPageByRunAndNameContaining(ctx, runID, pat, p, pagination.FeaturePageSize)
	})
}

func (s *featureService) searchPage(ctx context.Context, pattern *string, page *int, query func(int, string) ([]model.Feature, int64, error)) (*pagination.Envelope[model.Feature], error) {
	p, err := pagination.NormalizePage(page)
	if err != nil {
		return nil, err
	}
	pat := pagination.NormalizePattern(pattern)

	features, total, err := query(p, pat)
	if err != nil {
		return nil, err
	}
	if err := pagination.CheckBounds(p, pagination.TotalPages(total, pagination.FeaturePageSize)); err != nil {
		return nil, err
	}
	env := pagination.BuildEnvelope(p, features, total, pagination.FeaturePageSize)
	return &env, nil
}
