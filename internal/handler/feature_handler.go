package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"trackline/internal/service"
)

// FeatureHandler handles feature endpoints.
type FeatureHandler struct {
	svc service.FeatureService
}

// NewFeatureHandler creates a new feature handler.
func NewFeatureHandler(svc service.FeatureService) *FeatureHandler {
	return &FeatureHandler{svc: svc}
}

// Create godoc
// @Summary Create a feature under a project
// @Tags features
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path int true "Project ID"
// @Param feature body service.CreateFeatureRequest true "Feature payload"
// @Success 201 {object} model.Feature
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{projectId}/features [post]
func (h *FeatureHandler) Create(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	var req service.CreateFeatureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	feature, err := h.svc.Create(c.Request().Context(), principal, projectID, &req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, feature)
}

// Get godoc
// @Summary Get a feature by id
// @Tags features
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feature ID"
// @Success 200 {object} model.Feature
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /features/{id} [get]
func (h *FeatureHandler) Get(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	feature, err := h.svc.Get(c.Request().Context(), principal, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, feature)
}

// Update godoc
// @Summary Update a feature field by field
// @Tags features
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feature ID"
// @Param feature body service.UpdateFeatureRequest true "Changed fields"
// @Success 200 {object} model.Feature
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /features/{id} [put]
func (h *FeatureHandler) Update(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateFeatureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	feature, err := h.svc.Update(c.Request().Context(), principal, id, &req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, feature)
}

// Unschedule godoc
// @Summary Pull a feature out of its run
// @Tags features
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feature ID"
// @Success 200 {object} model.Feature
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /features/{id}/run [delete]
func (h *FeatureHandler) Unschedule(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	feature, err := h.svc.Unschedule(c.Request().Context(), principal, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, feature)
}

// Delete godoc
// @Summary Delete a feature with its to-dos and comments
// @Tags features
// @Security BearerAuth
// @Param id path int true "Feature ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /features/{id} [delete]
func (h *FeatureHandler) Delete(c echo.Context) error {
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

// SearchByProject godoc
// @Summary Search a project's features by name
// @Tags features
// @Produce json
// @Security BearerAuth
// @Param projectId path int true "Project ID"
// @Param pattern query string false "Substring filter"
// @Param page query int false "0-based page index"
// @Success 200 {object} pagination.Envelope[model.Feature]
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{projectId}/features [get]
func (h *FeatureHandler) SearchByProject(c echo.Context) error {
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

	env, err := h.svc.SearchByProject(c.Request().Context(), principal, projectID, patternParam(c), page)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, env)
}

// SearchByRun godoc
// @Summary Search a run's features by name
// @Tags features
// @Produce json
// @Security BearerAuth
// @Param runId path int true "Run ID"
// @Param pattern query string false "Substring filter"
// @Param page query int false "0-based page index"
// @Success 200 {object} pagination.Envelope[model.Feature]
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /runs/{runId}/features [get]
func (h *FeatureHandler) SearchByRun(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	runID, err := pathID(c, "runId")
	if err != nil {
		return err
	}
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	env, err := h.svc.SearchByRun(c.Request().Context(), principal, runID, patternParam(c), page)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, env)
}
