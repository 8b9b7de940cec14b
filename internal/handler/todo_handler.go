package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"trackline/internal/service"
)

// ToDoHandler handles to-do endpoints.
type ToDoHandler struct {
	svc service.ToDoService
}

// NewToDoHandler creates a new to-do handler.
func NewToDoHandler(svc service.ToDoService) *ToDoHandler {
	return &ToDoHandler{svc: svc}
}

// Create godoc
// @Summary Create a to-do under a feature
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param featureId path int true "Feature ID"
// @Param todo body service.CreateToDoRequest true "To-do payload"
// @Success 201 {object} model.ToDo
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /features/{featureId}/todos [post]
func (h *ToDoHandler) Create(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	featureID, err := pathID(c, "featureId")
	if err != nil {
		return err
	}

	var req service.CreateToDoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.svc.Create(c.Request().Context(), principal, featureID, &req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, todo)
}

// Get godoc
// @Summary Get a to-do by id
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path int true "To-do ID"
// @Success 200 {object} model.ToDo
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /todos/{id} [get]
func (h *ToDoHandler) Get(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	todo, err := h.svc.Get(c.Request().Context(), principal, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, todo)
}

// Update godoc
// @Summary Update a to-do field by field
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "To-do ID"
// @Param todo body service.UpdateToDoRequest true "Changed fields"
// @Success 200 {object} model.ToDo
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /todos/{id} [put]
func (h *ToDoHandler) Update(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateToDoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.svc.Update(c.Request().Context(), principal, id, &req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, todo)
}

// Delete godoc
// @Summary Delete a to-do and its comments
// @Tags todos
// @Security BearerAuth
// @Param id path int true "To-do ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /todos/{id} [delete]
func (h *ToDoHandler) Delete(c echo.Context) error {
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
// @Summary Search a feature's to-dos by name
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param featureId path int true "Feature ID"
// @Param pattern query string false "Substring filter"
// @Param page query int false "0-based page index"
// @Success 200 {object} pagination.Envelope[model.ToDo]
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /features/{featureId}/todos [get]
func (h *ToDoHandler) Search(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	featureID, err := pathID(c, "featureId")
	if err != nil {
		return err
	}
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	env, err := h.svc.Search(c.Request().Context(), principal, featureID, patternParam(c), page)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, env)
}
