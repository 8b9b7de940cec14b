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

// CreateProjectRequest carries the fields for creating a project.
type CreateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateProjectRequest carries the optional fields for a field-by-field
// project update.
type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status"`
}

// ProjectService exposes project operations.
type ProjectService interface {
	Create(ctx context.Context, principal *model.User, req *CreateProjectRequest) (*model.Project, error)
	Get(ctx context.Context, principal *model.User, id uint) (*model.Project, error)
	Update(ctx context.Context, principal *model.User, id uint, req *UpdateProjectRequest) (*model.Project, error)
	Delete(ctx context.Context, principal *model.User, id uint) error
	Search(ctx context.Context, principal *model.User, pattern *string, page *int) (*pagination.Envelope[model.Project], error)
	AddMember(ctx context.Context, principal *model.User, projectID, userID uint) (*model.Project, error)
	RemoveMember(ctx context.Context, principal *model.User, projectID, userID uint) (*model.Project, error)
}

type projectService struct {
	projects repository.ProjectRepository
	runs     repository.RunRepository
	features repository.FeatureRepository
	todos    repository.ToDoRepository
	comments repository.CommentRepository
	users    repository.UserRepository
}

// NewProjectService builds a ProjectService.
func NewProjectService(
	projects repository.ProjectRepository,
	runs repository.RunRepository,
	features repository.FeatureRepository,
	todos repository.ToDoRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
) ProjectService {
	return &projectService{
		projects: projects,
		runs:     runs,
		features: features,
		todos:    todos,
		comments: comments,
		users:    users,
	}
}

func (s *projectService) resolve(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, resolveErr(err, "Project", id)
	}
	return project, nil
}

// Create makes the principal the project's creator and first member, so a
// freshly created project is immediately visible to its author.
func (s *projectService) Create(ctx context.Context, principal *model.User, req *CreateProjectRequest) (*model.Project, error) {
	var errs fieldErrors
	if req.Name == nil || *req.Name == "" {
		errs.addMissing("name")
	}
	if req.DueDate == nil {
		errs.addMissing("dueDate")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:      *req.Name,
		DueDate:   *req.DueDate,
		Status:    model.StatusNew,
		CreatorID: principal.ID,
		Members:   []model.User{*principal},
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Get(ctx context.Context, principal *model.User, id uint) (*model.Project, error) {
	project, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, principal *model.User, id uint, req *UpdateProjectRequest) (*model.Project, error) {
	project, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, project); err != nil {
		return nil, err
	}

	// Enum fields are checked before any field is applied.
	if req.Status != nil && !model.Status(*req.Status).IsValid() {
		return nil, apperrors.NewBadRequest("invalid status: " + *req.Status)
	}

	changed := false
	if req.Name != nil && *req.Name != project.Name {
		project.Name = *req.Name
		changed = true
	}
	if req.Description != nil && *req.Description != project.Description {
		project.Description = *req.Description
		changed = true
	}
	if req.DueDate != nil && !req.DueDate.Equal(project.DueDate) {
		project.DueDate = *req.DueDate
		changed = true
	}
	if req.Status != nil && model.Status(*req.Status) != project.Status {
		project.Status = model.Status(*req.Status)
		changed = true
	}
	if !changed {
		return nil, noChanges()
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project and its whole subtree: runs, features and
// every to-do and comment beneath them. The cascade is explicit, top-down.
func (s *projectService) Delete(ctx context.Context, principal *model.User, id uint) error {
	project, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Require(principal, project); err != nil {
		return err
	}

	features, err := s.features.FindByProjectID(ctx, id)
	if err != nil {
		return err
	}
	for _, feature := range features {
		todos, err := s.todos.FindByFeatureID(ctx, feature.ID)
		if err != nil {
			return err
		}
		for _, todo := range todos {
			if err := s.comments.DeleteByToDoID(ctx, todo.ID); err != nil {
				return err
			}
		}
		if err := s.todos.DeleteByFeatureID(ctx, feature.ID); err != nil {
			return err
		}
	}
	if err := s.features.DeleteByProjectID(ctx, id); err != nil {
		return err
	}
	if err := s.runs.DeleteByProjectID(ctx, id); err != nil {
		return err
	}
	return s.projects.DeleteByID(ctx, id)
}

// Search lists projects matching the name pattern. Privileged principals
// see every project; everyone else only the projects they are a member of.
func (s *projectService) Search(ctx context.Context, principal *model.User, pattern *string, page *int) (*pagination.Envelope[model.Project], error) {
	p, err := pagination.NormalizePage(page)
	if err != nil {
		return nil, err
	}
	pat := pagination.NormalizePattern(pattern)

	var (
		projects []model.Project
		total    int64
	)
	if principal.IsPrivileged() {
		projects, total, err = s.projects.FindPageByNameContaining(ctx, pat, p, pagination.ProjectPageSize)
	} else {
		projects, total, err = s.projects.FindPageByMemberAndNameContaining(ctx, principal.Email, pat, p, pagination.ProjectPageSize)
	}
	if err != nil {
		return nil, err
	}

	if err := pagination.CheckBounds(p, pagination.TotalPages(total, pagination.ProjectPageSize)); err != nil {
		return nil, err
	}
	env := pagination.BuildEnvelope(p, projects, total, pagination.ProjectPageSize)
	return &env, nil
}

// AddMember grants a user membership, and with it access to the whole
// subtree. The member set is read then written without isolation from
// concurrent membership edits on the same project.
func (s *projectService) AddMember(ctx context.Context, principal *model.User, projectID, userID uint) (*model.Project, error) {
	project, err := s.resolve(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, project); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, resolveErr(err, "User", userID)
	}
	if project.HasMember(user.Email) {
		return nil, apperrors.NewDuplication("user is already a member of the project")
	}

	if err := s.projects.AddMember(ctx, project, user); err != nil {
		return nil, err
	}
	project.Members = append(project.Members, *user)
	return project, nil
}

func (s *projectService) RemoveMember(ctx context.Context, principal *model.User, projectID, userID uint) (*model.Project, error) {
	project, err := s.resolve(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, project); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, resolveErr(err, "User", userID)
	}
	if !project.HasMember(user.Email) {
		return nil, apperrors.NewBadRequest("user is not a member of the project")
	}

	if err := s.projects.RemoveMember(ctx, project, user); err != nil {
		return nil, err
	}
	members := project.Members[:0]
	for _, m := range project.Members {
		if m.Email != user.Email {
			members = append(members, m)
		}
	}
	project.Members = members
	return project, nil
}
