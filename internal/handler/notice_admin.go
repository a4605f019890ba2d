package handler // handler package contains admin-facing notice handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/digital-notice-board/internal/metrics"
	"github.com/iliyamo/digital-notice-board/internal/model"
	"github.com/iliyamo/digital-notice-board/internal/queue"
	"github.com/iliyamo/digital-notice-board/internal/repository"
	queue_publisher "github.com/iliyamo/digital-notice-board/internal/service"
)

// AdminHandler aggregates the repositories behind the admin-only
// routes: notice CRUD, user-role management and category management.
// Every route it serves sits behind JWTAuth + RequireRole("admin").
type AdminHandler struct {
	Notices    *repository.NoticeRepo
	Users      *repository.UserRepo
	Categories *repository.CategoryRepo
}

func NewAdminHandler(n *repository.NoticeRepo, u *repository.UserRepo, c *repository.CategoryRepo) *AdminHandler {
	return &AdminHandler{Notices: n, Users: u, Categories: c}
}

type noticeReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Urgent      bool   `json:"urgent"`
	File        string `json:"file"`
}

// validate checks the required notice fields. Category membership in
// the categories table is not checked; the category set
// only feeds filter dropdowns.
func (b noticeReq) validate() string {
	switch {
	case strings.TrimSpace(b.Title) == "":
		return "title is required"
	case strings.TrimSpace(b.Description) == "":
		return "description is required"
	case strings.TrimSpace(b.Category) == "":
		return "category is required"
	case strings.TrimSpace(b.Date) == "":
		return "date is required"
	}
	return ""
}

// CreateNotice handles POST /v1/notices.
func (h *AdminHandler) CreateNotice(c echo.Context) error {
	var body noticeReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	n := model.Notice{
		Title:       strings.TrimSpace(body.Title),
		Description: body.Description,
		Category:    strings.TrimSpace(body.Category),
		Date:        strings.TrimSpace(body.Date),
		Urgent:      body.Urgent,
		File:        strings.TrimSpace(body.File),
	}
	if err := h.Notices.Create(c.Request().Context(), &n); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create notice"})
	}

	metrics.NoticePublished(n.Urgent)
	// Best-effort fan-out; a broker outage never fails the request.
	go func(n model.Notice) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishNoticePublished(ctx, queue.NoticePublishedEvent{
			NoticeID:    n.ID,
			Title:       n.Title,
			Category:    n.Category,
			Date:        n.Date,
			Urgent:      n.Urgent,
			PublishedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		})
	}(n)

	return c.JSON(http.StatusCreated, n)
}

// UpdateNotice handles PUT /v1/notices/:id. The full field set is
// replaced, matching what the admin edit form submits.
func (h *AdminHandler) UpdateNotice(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body noticeReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	updated, err := h.Notices.Update(c.Request().Context(), model.Notice{
		ID:          id,
		Title:       strings.TrimSpace(body.Title),
		Description: body.Description,
		Category:    strings.TrimSpace(body.Category),
		Date:        strings.TrimSpace(body.Date),
		Urgent:      body.Urgent,
		File:        strings.TrimSpace(body.File),
	})
	if err != nil {
		if err == repository.ErrNoticeNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "notice not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteNotice handles DELETE /v1/notices/:id.
func (h *AdminHandler) DeleteNotice(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Notices.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNoticeNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "notice not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "notice deleted successfully"})
}
