package service

import (
	"context"

	"trackline/internal/access"
	"trackline/internal/model"
	"trackline/internal/pagination"
	"trackline/internal/repository"
)

// CreateCommentRequest carries the fields for creating a comment on a
// to-do.
type CreateCommentRequest struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

// UpdateCommentRequest carries the optional fields for a field-by-field
// comment update.
type UpdateCommentRequest struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

// CommentService exposes comment operations.
type CommentService interface {
	Create(ctx context.Context, principal *model.User, todoID uint, req *CreateCommentRequest) (*model.Comment, error)
	Get(ctx context.Context, principal *model.User, id uint) (*model.Comment, error)
	Update(ctx context.Context, principal *model.User, id uint, req *UpdateCommentRequest) (*model.Comment, error)
	Delete(ctx context.Context, principal *model.User, id uint) error
	Search(ctx context.Context, principal *model.User, todoID uint, pattern *string, page *int) (*pagination.Envelope[model.Comment], error)
}

type commentService struct {
	comments repository.CommentRepository
	todos    repository.ToDoRepository
}

// NewCommentService builds a CommentService.
func NewCommentService(comments repository.CommentRepository, todos repository.ToDoRepository) CommentService {
	return &commentService{comments: comments, todos: todos}
}

func (s *commentService) resolve(ctx context.Context, id uint) (*model.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, resolveErr(err, "Comment", id)
	}
	return comment, nil
}

func (s *commentService) resolveToDo(ctx context.Context, id uint) (*model.ToDo, error) {
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, resolveErr(err, "ToDo", id)
	}
	return todo, nil
}

func (s *commentService) Create(ctx context.Context, principal *model.User, todoID uint, req *CreateCommentRequest) (*model.Comment, error) {
	todo, err := s.resolveToDo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfToDo(todo)); err != nil {
		return nil, err
	}

	var errs fieldErrors
	if req.Name == nil || *req.Name == "" {
		errs.addMissing("name")
	}
	if req.Content == nil || *req.Content == "" {
		errs.addMissing("content")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Name:    *req.Name,
		Content: *req.Content,
		ToDoID:  todo.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Get(ctx context.Context, principal *model.User, id uint) (*model.Comment, error) {
	comment, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfComment(comment)); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, principal *model.User, id uint, req *UpdateCommentRequest) (*model.Comment, error) {
	comment, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfComment(comment)); err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil && *req.Name != comment.Name {
		comment.Name = *req.Name
		changed = true
	}
	if req.Content != nil && *req.Content != comment.Content {
		comment.Content = *req.Content
		changed = true
	}
	if !changed {
		return nil, noChanges()
	}

	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, principal *model.User, id uint) error {
	comment, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Require(principal, access.OwningProjectOfComment(comment)); err != nil {
		return err
	}
	return s.comments.DeleteByID(ctx, id)
}

func (s *commentService) Search(ctx context.Context, principal *model.User, todoID uint, pattern *string, page *int) (*pagination.Envelope[model.Comment], error) {
	todo, err := s.resolveToDo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(principal, access.OwningProjectOfToDo(todo)); err != nil {
		return nil, err
	}

	p, err := pagination.NormalizePage(page)
	if err != nil {
		return nil, err
	}
	pat := pagination.NormalizePattern(pattern)

	comments, total, err := s.comments.FindPageByToDoAndContentContaining(ctx, todoID, pat, p, pagination.CommentPageSize)
	if err != nil {
		return nil, err
	}
	if err := pagination.CheckBounds(p, pagination.TotalPages(total, pagination.CommentPageSize)); err != nil {
		return nil, err
	}
	env := pagination.BuildEnvelope(p, comments, total, pagination.CommentPageSize)
	return &env, nil
}
