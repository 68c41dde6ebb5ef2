package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user management. Route-level rank
// gating happens in the middleware chain; the service re-checks rank and
// applies peer protection on the regular (non-admin) entry points.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /v1/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update handles PATCH /v1/users/:id — peer-protected: an ADMIN-rank target
// can only be modified by a SUPER_ADMIN caller.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	return h.update(c, false)
}

// UpdateAdmin handles PATCH /v1/admin/users/:id — no peer protection.
//
// @Summary      Update any user (super admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/users/{id} [patch]
func (h *UserHandler) UpdateAdmin(c echo.Context) error {
	return h.update(c, true)
}

func (h *UserHandler) update(c echo.Context, admin bool) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	var user *ports.UserView
	if admin {
		user, err = h.service.UpdateAdmin(c.Request().Context(), principal, c.Param("id"), in)
	} else {
		user, err = h.service.Update(c.Request().Context(), principal, c.Param("id"), in)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// SetRole handles PATCH /v1/users/:id/role/:level — replaces the target's
// role set with the canonical set for the requested level. Levels above the
// regular ceiling are rejected as unknown.
//
// @Summary      Assign a role level to a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "User id"
// @Param        level  path      int     true  "Role level (0-3)"
// @Success      200    {object}  userResponse
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/users/{id}/role/{level} [patch]
func (h *UserHandler) SetRole(c echo.Context) error {
	return h.setRole(c, false)
}

// SetRoleAdmin handles PATCH /v1/admin/users/:id/role/:level — accepts the
// full level range, including SUPER_ADMIN, and skips peer protection.
//
// @Summary      Assign any role level to a user (super admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "User id"
// @Param        level  path      int     true  "Role level (0-4)"
// @Success      200    {object}  userResponse
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/admin/users/{id}/role/{level} [patch]
func (h *UserHandler) SetRoleAdmin(c echo.Context) error {
	return h.setRole(c, true)
}

func (h *UserHandler) setRole(c echo.Context, admin bool) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "level must be an integer")
	}

	var user *ports.UserView
	if admin {
		user, err = h.service.SetRoleAdmin(c.Request().Context(), principal, c.Param("id"), level)
	} else {
		user, err = h.service.SetRole(c.Request().Context(), principal, c.Param("id"), level)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /v1/users/:id — peer-protected.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204  "No Content"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	return h.delete(c, false)
}

// DeleteAdmin handles DELETE /v1/admin/users/:id — no peer protection.
//
// @Summary      Delete any user (super admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204  "No Content"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [delete]
func (h *UserHandler) DeleteAdmin(c echo.Context) error {
	return h.delete(c, true)
}

func (h *UserHandler) delete(c echo.Context, admin bool) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if admin {
		err = h.service.DeleteAdmin(c.Request().Context(), principal, c.Param("id"))
	} else {
		err = h.service.Delete(c.Request().Context(), principal, c.Param("id"))
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
