package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"trackline/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	svc service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Create godoc
// @Summary Create a comment on a to-do
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param todoId path int true "To-do ID"
// @Param comment body service.CreateCommentRequest true "Comment payload"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /todos/{todoId}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	todoID, err := pathID(c, "todoId")
	if err != nil {
		return err
	}

	var req service.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.svc.Create(c.Request().Context(), principal, todoID, &req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// Get godoc
// @Summary Get a comment by id
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} model.Comment
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	comment, err := h.svc.Get(c.Request().Context(), principal, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// Update godoc
// @Summary Update a comment field by field
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param comment body service.UpdateCommentRequest true "Changed fields"
// @Success 200 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.svc.Update(c.Request().Context(), principal, id, &req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete a comment
// @Tags comments
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), principal, id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Search godoc
// @Summary Search a to-do's comments by content
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param todoId path int true "To-do ID"
// @Param pattern query string false "Substring filter"
// @Param page query int false "0-based page index"
// @Success 200 {object} pagination.Envelope[model.Comment]
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /todos/{todoId}/comments [get]
func (h *CommentHandler) Search(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	todoID, err := pathID(c, "todoId")
	if err != nil {
		return err
	}
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	env, err := h.svc.Search(c.Request().Context(), principal, todoID, patternParam(c), page)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, env)
}
