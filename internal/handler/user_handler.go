package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"trackline/internal/model"
	"trackline/internal/pagination"
	"trackline/internal/service"
)

// UserHandler handles user management endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisteredUserResponse carries the created user and the generated
// initial password. The password is never retrievable again.
type RegisteredUserResponse struct {
	User            *model.User `json:"user"`
	InitialPassword string      `json:"initial_password"`
}

// ChangePasswordRequest represents a self-service password change payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// ChangeRoleRequest represents an admin role-change payload.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// Register godoc
// @Summary Register a user with a generated one-shot initial password
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.RegisterUserRequest true "User payload"
// @Success 201 {object} RegisteredUserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req service.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, initialPassword, err := h.svc.Register(c.Request().Context(), &req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, RegisteredUserResponse{
		User:            user,
		InitialPassword: initialPassword,
	})
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	user, err := h.svc.GetProfile(c.Request().Context(), principal)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body ChangePasswordRequest true "Old and new password"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.ChangePassword(c.Request().Context(), principal, req.OldPassword, req.NewPassword); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeRole godoc
// @Summary Change a user's role (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param payload body ChangeRoleRequest true "New role"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/role [put]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.svc.ChangeRole(c.Request().Context(), principal, id, req.Role)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ForcePasswordReset godoc
// @Summary Force-reset a user's password (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} RegisteredUserResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/password-reset [post]
func (h *UserHandler) ForcePasswordReset(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, newPassword, err := h.svc.ForcePasswordReset(c.Request().Context(), principal, id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, RegisteredUserResponse{
		User:            user,
		InitialPassword: newPassword,
	})
}

// Search godoc
// @Summary Search users by a single field (privileged only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param field query string false "Search field: email, first_name or last_name" default(email)
// @Param pattern query string false "Substring filter"
// @Param page query int false "0-based page index"
// @Success 200 {object} pagination.Envelope[model.User]
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) Search(c echo.Context) error {
	principal, err := Principal(c)
	if err != nil {
		return err
	}
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	pattern := patternParam(c)

	var env *pagination.Envelope[model.User]
	switch c.QueryParam("field") {
	case "", "email":
		env, err = h.svc.SearchByEmail(c.Request().Context(), principal, pattern, page)
	case "first_name":
		env, err = h.svc.SearchByFirstName(c.Request().Context(), principal, pattern, page)
	case "last_name":
		env, err = h.svc.SearchByLastName(c.Request().Context(), principal, pattern, page)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid field")
	}
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, env)
}
