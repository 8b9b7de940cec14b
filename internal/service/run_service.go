package service

import (
	"context"
	"time"

	"trackline/internal/access"
	apperrors "trackline/internal/errors"
	"trackline/internal/model"
	"trackline/internal/pagination"
	"trackline/internal/repository"
)

// CreateRunRequest carries the fields for creating a run under a project.
type CreateRunRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// UpdateRunRequest carries the optional fields for a field-by-field run
// update. An absent field means "unchanged", so a set end date cannot be
// cleared back to open-ended through this request.
type UpdateRunRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      *string    `json:"status"`
}

// RunService exposes run operations.
type RunService interface {
	Create(ctx context.Context, principal *model.User, projectID uint, req *CreateRunRequest) (*model.Run, error)
	Get(ctx context.Context, principal *model.User, id uint) (*model.Run, error)
	Update(ctx context.Context, principal *model.User, id uint, req *UpdateRunRequest) (*model.Run, error)
	Delete(ctx context.Context, principal *model.User, id uint) error
	Search(ctx context.Context, principal *model.User, projectID uint, pattern *string, page *int) (*pagination.Envelope[model.Run], error)
}

type runService struct {
	runs     repository.RunRepository
	projects repository.ProjectRepository
	features repository.FeatureRepository
}

// NewRunService builds a RunService.
func NewRunService(runs repository.RunRepository, projects repository.ProjectRepository, features repository.FeatureRepository) RunService {
	return &runService{runs: runs, projects: projects, features: features}
}

func (s *runService) resolve(ctx context.Context, id uint) (*model.Run, error) {
	run, err := s.runs.FindByID(ctx, id)
	if err != nil {
		return nil, resolveErr(err, "Run", id)
	}
	return run, nil
}

func (s *runService) resolveProject(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, resolveErr(err, "Project", id)
	}
	return project, nil
}

func (s *runService) Create(ctx context.Context, principal *model.User, projectID uint, req *CreateRunRequest) (*model.Run, error) {
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
	if req.StartDate == nil {
		errs.addMissing("startDate")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	run := &model.Run{
		Name:      *req.Name,
		StartDate: *req.StartDate,
		EndDate:   req.EndDate,
		Status:    model.StatusNew,
		ProjectID: project.ID,
	}
	if req.Description != nil {
		run.Description = *req.Description
	}

	if err := s.runs.Create(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *runService) Get(ctx context.Context, principal *model.User, id uint) (*model.Run, error) {
	run, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfRun(run)); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *runService) Update(ctx context.Context, principal *model.User, id uint, req *UpdateRunRequest) (*model.Run, error) {
	run, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfRun(run)); err != nil {
		return nil, err
	}

	if req.Status != nil && !model.Status(*req.Status).IsValid() {
		return nil, apperrors.NewBadRequest("invalid status: " + *req.Status)
	}

	changed := false
	if req.Name != nil && *req.Name != run.Name {
		run.Name = *req.Name
		changed = true
	}
	if req.Description != nil && *req.Description != run.Description {
		run.Description = *req.Description
		changed = true
	}
	if req.StartDate != nil && !req.StartDate.Equal(run.StartDate) {
		run.StartDate = *req.StartDate
		changed = true
	}
	if req.EndDate != nil && (run.EndDate == nil || !req.EndDate.Equal(*run.EndDate)) {
		run.EndDate = req.EndDate
		changed = true
	}
	if req.Status != nil && model.Status(*req.Status) != run.Status {
		run.Status = model.Status(*req.Status)
		changed = true
	}
	if !changed {
		return nil, noChanges()
	}

	if err := s.runs.Save(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// Delete removes the run. Features scheduled into it are detached, not
// deleted: the project owns them, the run only groups them.
func (s *runService) Delete(ctx context.Context, principal *model.User, id uint) error {
	run, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Require(principal, access.OwningProjectOfRun(run)); err != nil {
		return err
	}

	if err := s.features.DetachRun(ctx, id); err != nil {
		return err
	}
	return s.runs.DeleteByID(ctx, id)
}

func (s *runService) Search(ctx context.Context, principal *model.User, projectID uint, pattern *string, page *int) (*pagination.Envelope[model.Run], error) {
	project, err := s.resolveProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, project); err != nil {
		return nil, err
	}

	p, err := pagination.NormalizePage(page)
	if err != nil {
		return nil, err
	}
	pat := pagination.NormalizePattern(pattern)

	runs, total, err := s.runs.FindPageByProjectAndNameContaining(ctx, projectID, pat, p, pagination.RunPageSize)
	if err != nil {
		return nil, err
	}
	if err := pagination.CheckBounds(p, pagination.TotalPages(total, pagination.RunPageSize)); err != nil {
		return nil, err
	}
	env := pagination.BuildEnvelope(p, runs, total, pagination.RunPageSize)
	return &env, nil
}
