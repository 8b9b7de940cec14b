package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"trackline/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	svc service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body service.CreateProjectRequest true "Project payload"
// @Success 201 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}

	var req service.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.svc.Create(c.Request().Context(), principal, &req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, project)
}

// Get godoc
// @Summary Get a project by id
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} model.Project
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	project, err := h.svc.Get(c.Request().Context(), principal, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, project)
}

// Update godoc
// @Summary Update a project field by field
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param project body service.UpdateProjectRequest true "Changed fields"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.svc.Update(c.Request().Context(), principal, id, &req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, project)
}

// Delete godoc
// @Summary Delete a project and its whole subtree
// @Tags projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
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
// @Summary Search projects by name
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param pattern query string false "Substring filter"
// @Param page query int false "0-based page index"
// @Success 200 {object} pagination.Envelope[model.Project]
// @Failure 400 {object} errors.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) Search(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	page, err := pageParam(c)
	if err != nil {
		return err
	}

	env, err := h.svc.Search(c.Request().Context(), principal, patternParam(c), page)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, env)
}

// AddMember godoc
// @Summary Add a user to the project's member set
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param userId path int true "User ID"
// @Success 200 {object} model.Project
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /projects/{id}/members/{userId} [post]
func (h *ProjectHandler) AddMember(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	project, err := h.svc.AddMember(c.Request().Context(), principal, id, userID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, project)
}

// RemoveMember godoc
// @Summary Remove a user from the project's member set
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param userId path int true "User ID"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/members/{userId} [delete]
func (h *ProjectHandler) RemoveMember(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	project, err := h.svc.RemoveMember(c.Request().Context(), principal, id, userID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, project)
}
