package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/digital-notice-board/internal/model"
	"github.com/iliyamo/digital-notice-board/internal/repository"
)

// ListUsers handles GET /v1/users. Password hashes never leave the
// repository layer; the response is built from userPart.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	items := make([]userPart, 0, len(users))
	for _, u := range users {
		items = append(items, toUserPart(u))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// UpdateUserRole handles PUT /v1/users/:id/role. Already-issued tokens
// keep their old role claim until expiry; the new role applies from
// the next login.
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	role := strings.ToLower(strings.TrimSpace(body.Role))
	if !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown role"})
	}

	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if err := h.Users.UpdateRole(c.Request().Context(), id, role); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	u.Role = role
	return c.JSON(http.StatusOK, toUserPart(u))
}
