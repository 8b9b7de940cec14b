package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"trackline/internal/service"
)

// RunHandler handles run endpoints.
type RunHandler struct {
	svc service.RunService
}

// NewRunHandler creates a new run handler.
func NewRunHandler(svc service.RunService) *RunHandler {
	return &RunHandler{svc: svc}
}

// Create godoc
// @Summary Create a run under a project
// @Tags runs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path int true "Project ID"
// @Param run body service.CreateRunRequest true "Run payload"
// @Success 201 {object} model.Run
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{projectId}/runs [post]
func (h *RunHandler) Create(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	var req service.CreateRunRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	run, err := h.svc.Create(c.Request().Context(), principal, projectID, &req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, run)
}

// Get godoc
// @Summary Get a run by id
// @Tags runs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Run ID"
// @Success 200 {object} model.Run
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /runs/{id} [get]
func (h *RunHandler) Get(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	run, err := h.svc.Get(c.Request().Context(), principal, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, run)
}

// Update godoc
// @Summary Update a run field by field
// @Tags runs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Run ID"
// @Param run body service.UpdateRunRequest true "Changed fields"
// @Success 200 {object} model.Run
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /runs/{id} [put]
func (h *RunHandler) Update(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateRunRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	run, err := h.svc.Update(c.Request().Context(), principal, id, &req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, run)
}

// Delete godoc
// @Summary Delete a run, detaching its features
// @Tags runs
// @Security BearerAuth
// @Param id path int true "Run ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /runs/{id} [delete]
func (h *RunHandler) Delete(c echo.Context) error {
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
// @Summary Search a project's runs by name
// @Tags runs
// @Produce json
// @Security BearerAuth
// @Param projectId path int true "Project ID"
// @Param pattern query string false "Substring filter"
// @Param page query int false "0-based page index"
// @Success 200 {object} pagination.Envelope[model.Run]
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{projectId}/runs [get]
func (h *RunHandler) Search(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	env, err := h.svc.Search(c.Request().Context(), principal, projectID, patternParam(c), page)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, env)
}
