package service

import (
	"context"

	"trackline/internal/access"
	apperrors "trackline/internal/errors"
	"trackline/internal/model"
	"trackline/internal/pagination"
	"trackline/internal/repository"
)

// CreateToDoRequest carries the fields for creating a to-do under a
// feature.
type CreateToDoRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	AssigneeID  *uint   `json:"assignee_id"`
}

// UpdateToDoRequest carries the optional fields for a field-by-field
// to-do update.
type UpdateToDoRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	AssigneeID  *uint   `json:"assignee_id"`
}

// ToDoService exposes to-do operations.
type ToDoService interface {
	Create(ctx context.Context, principal *model.User, featureID uint, req *CreateToDoRequest) (*model.ToDo, error)
	Get(ctx context.Context, principal *model.User, id uint) (*model.ToDo, error)
	Update(ctx context.Context, principal *model.User, id uint, req *UpdateToDoRequest) (*model.ToDo, error)
	Delete(ctx context.Context, principal *model.User, id uint) error
	Search(ctx context.Context, principal *model.User, featureID uint, pattern *string, page *int) (*pagination.Envelope[model.ToDo], error)
}

type todoService struct {
	todos    repository.ToDoRepository
	features repository.FeatureRepository
	comments repository.CommentRepository
	users    repository.UserRepository
}

// NewToDoService builds a ToDoService.
func NewToDoService(
	todos repository.ToDoRepository,
	features repository.FeatureRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
) ToDoService {
	return &todoService{todos: todos, features: features, comments: comments, users: users}
}

func (s *todoService) resolve(ctx context.Context, id uint) (*model.ToDo, error) {
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, resolveErr(err, "ToDo", id)
	}
	return todo, nil
}

func (s *todoService) resolveFeature(ctx context.Context, id uint) (*model.Feature, error) {
	feature, err := s.features.FindByID(ctx, id)
	if err != nil {
		return nil, resolveErr(err, "Feature", id)
	}
	return feature, nil
}

func (s *todoService) checkAssignee(ctx context.Context, assigneeID uint) error {
	if _, err := s.users.FindByID(ctx, assigneeID); err != nil {
		return resolveErr(err, "User", assigneeID)
	}
	return nil
}

func (s *todoService) Create(ctx context.Context, principal *model.User, featureID uint, req *CreateToDoRequest) (*model.ToDo, error) {
	feature, err := s.resolveFeature(ctx, featureID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfFeature(feature)); err != nil {
		return nil, err
	}

	// An unknown type value fails immediately, before the collect-all
	// required-field pass.
	if req.Type != nil && !model.ToDoType(*req.Type).IsValid() {
		return nil, apperrors.NewBadRequest("invalid type: " + *req.Type)
	}

	var errs fieldErrors
	if req.Name == nil || *req.Name == "" {
		errs.addMissing("name")
	}
	if req.Type == nil {
		errs.addMissing("type")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	if req.AssigneeID != nil {
		if err := s.checkAssignee(ctx, *req.AssigneeID); err != nil {
			return nil, err
		}
	}

	todo := &model.ToDo{
		Name:       *req.Name,
		Type:       model.ToDoType(*req.Type),
		Status:     model.StatusNew,
		FeatureID:  feature.ID,
		AssigneeID: req.AssigneeID,
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}

	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Get(ctx context.Context, principal *model.User, id uint) (*model.ToDo, error) {
	todo, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfToDo(todo)); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, principal *model.User, id uint, req *UpdateToDoRequest) (*model.ToDo, error) {
	todo, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfToDo(todo)); err != nil {
		return nil, err
	}

	if req.Status != nil && !model.Status(*req.Status).IsValid() {
		return nil, apperrors.NewBadRequest("invalid status: " + *req.Status)
	}
	if req.Type != nil && !model.ToDoType(*req.Type).IsValid() {
		return nil, apperrors.NewBadRequest("invalid type: " + *req.Type)
	}
	if req.AssigneeID != nil {
		if err := s.checkAssignee(ctx, *req.AssigneeID); err != nil {
			return nil, err
		}
	}

	changed := false
	if req.Name != nil && *req.Name != todo.Name {
		todo.Name = *req.Name
		changed = true
	}
	if req.Type != nil && model.ToDoType(*req.Type) != todo.Type {
		todo.Type = model.ToDoType(*req.Type)
		changed = true
	}
	if req.Description != nil && *req.Description != todo.Description {
		todo.Description = *req.Description
		changed = true
	}
	if req.Status != nil && model.Status(*req.Status) != todo.Status {
		todo.Status = model.Status(*req.Status)
		changed = true
	}
	if req.AssigneeID != nil && (todo.AssigneeID == nil || *todo.AssigneeID != *req.AssigneeID) {
		todo.AssigneeID = req.AssigneeID
		todo.Assignee = nil
		changed = true
	}
	if !changed {
		return nil, noChanges()
	}

	if err := s.todos.Save(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Delete removes the to-do and its comments.
func (s *todoService) Delete(ctx context.Context, principal *model.User, id uint) error {
	todo, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Require(principal, access.OwningProjectOfToDo(todo)); err != nil {
		return err
	}

	if err := s.comments.DeleteByToDoID(ctx, id); err != nil {
		return err
	}
	return s.todos.DeleteByID(ctx, id)
}

func (s *todoService) Search(ctx context.Context, principal *model.User, featureID uint, pattern *string, page *int) (*pagination.Envelope[model.ToDo], error) {
	feature, err := s.resolveFeature(ctx, featureID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfFeature(feature)); err != nil {
		return nil, err
	}

	p, err := pagination.NormalizePage(page)
	if err != nil {
		return nil, err
	}
	pat := pagination.NormalizePattern(pattern)

	todos, total, err := s.todos.FindPageByFeatureAndNameContaining(ctx, featureID, pat, p, pagination.ToDoPageSize)
	if err != nil {
		return nil, err
	}
	if err := pagination.CheckBounds(p, pagination.TotalPages(total, pagination.ToDoPageSize)); err != nil {
		return nil, err
	}
	env := pagination.BuildEnvelope(p, todos, total, pagination.ToDoPageSize)
	return &env, nil
}
