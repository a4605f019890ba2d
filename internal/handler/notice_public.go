// This file defines the unauthenticated read side of the API. The
// notice listing is the feed that polling clients reconcile their
// notification state against, so it stays open: no token, no role.

package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/digital-notice-board/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing.
type PublicHandler struct {
	Notices    *repository.NoticeRepo
	Categories *repository.CategoryRepo
}

func NewPublicHandler(n *repository.NoticeRepo, c *repository.CategoryRepo) *PublicHandler {
	return &PublicHandler{Notices: n, Categories: c}
}

// ListNotices handles GET /v1/notices. Without query parameters it
// returns every notice newest first; the polling clients rely on
// receiving the complete collection. The optional `search`, `category`
// and `date` parameters narrow the result for direct lookups.
func (h *PublicHandler) ListNotices(c echo.Context) error {
	filter := repository.NoticeFilter{
		Search:   strings.TrimSpace(c.QueryParam("search")),
		Category: strings.TrimSpace(c.QueryParam("category")),
		Date:     strings.TrimSpace(c.QueryParam("date")),
	}
	items, err := h.Notices.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// ListCategories handles GET /v1/categories.
func (h *PublicHandler) ListCategories(c echo.Context) error {
	items, err := h.Categories.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}
