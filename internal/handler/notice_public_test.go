package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/digital-notice-board/internal/repository"
)

func getNotices(t *testing.T, h *PublicHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListNotices(e.NewContext(req, rec)))
	return rec
}

func TestListNoticesReturnsFullCollection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .+ FROM notices ORDER BY id DESC").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "category", "date", "urgent", "file", "created_at", "updated_at",
		}).
			AddRow(2, "Power outage", "d", "general", "2026-03-02", true, "", now, now).
			AddRow(1, "Welcome week", "d", "event", "2026-03-01", false, "", now, now))

	h := NewPublicHandler(repository.NewNoticeRepo(db), nil)
	rec := getNotices(t, h, "/v1/notices")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Power outage")
	assert.Contains(t, rec.Body.String(), "Welcome week")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListNoticesAppliesQueryFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM notices WHERE LOWER\\(title\\) LIKE \\? AND category = \\? AND `date` = \\? ORDER BY id DESC").
		WithArgs("%outage%", "general", "2026-03-02").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "category", "date", "urgent", "file", "created_at", "updated_at",
		}))

	h := NewPublicHandler(repository.NewNoticeRepo(db), nil)
	rec := getNotices(t, h, "/v1/notices?search=outage&category=general&date=2026-03-02")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String(), "empty result is an empty array")
	assert.NoError(t, mock.ExpectationsWereMet())
}
