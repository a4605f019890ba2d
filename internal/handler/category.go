package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/digital-notice-board/internal/repository"
)

// CreateCategory handles POST /v1/categories.
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	cat, err := h.Categories.Create(c.Request().Context(), body.Name)
	if err != nil {
		if err == repository.ErrCategoryExists {
			return c.JSON(http.StatusConflict, map[string]string{"error": "category already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create category"})
	}
	return c.JSON(http.StatusCreated, cat)
}

// DeleteCategory handles DELETE /v1/categories/:id. Notices keep
// whatever category string they were created with.
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Categories.Delete(c.Request().Context(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "category deleted successfully"})
}
