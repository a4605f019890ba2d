package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/digital-notice-board/internal/model"
)

func noticeRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{
		"id", "title", "description", "category", "date", "urgent", "file", "created_at", "updated_at",
	})
}

func TestNoticeRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .+ FROM notices WHERE id=\\? LIMIT 1").
		WithArgs(uint64(7)).
		WillReturnRows(noticeRows(t).
			AddRow(7, "Exam schedule", "details", "exam", "2026-03-05", true, "", now, now))

	n, err := NewNoticeRepo(db).GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), n.ID)
	assert.Equal(t, "Exam schedule", n.Title)
	assert.True(t, n.Urgent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM notices WHERE id=\\? LIMIT 1").
		WithArgs(uint64(404)).
		WillReturnRows(noticeRows(t))

	_, err = NewNoticeRepo(db).GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNoticeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepoListFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .+ FROM notices WHERE LOWER\\(title\\) LIKE \\? AND category = \\? ORDER BY id DESC").
		WithArgs("%exam%", "exam").
		WillReturnRows(noticeRows(t).
			AddRow(9, "Exam hall change", "d", "exam", "2026-03-06", false, "", now, now).
			AddRow(7, "Exam schedule", "d", "exam", "2026-03-05", false, "", now, now))

	got, err := NewNoticeRepo(db).List(context.Background(), NoticeFilter{Search: "Exam", Category: "exam"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(9), got[0].ID, "listing is newest first")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepoListEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM notices ORDER BY id DESC").
		WillReturnRows(noticeRows(t))

	got, err := NewNoticeRepo(db).List(context.Background(), NoticeFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got, "an empty listing serializes as [], not null")
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO notices").
		WithArgs("New lab timings", "desc", "general", "2026-03-02", false, nil).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT .+ FROM notices WHERE id=\\? LIMIT 1").
		WithArgs(uint64(11)).
		WillReturnRows(noticeRows(t).
			AddRow(11, "New lab timings", "desc", "general", "2026-03-02", false, "", now, now))

	n := model.Notice{Title: "New lab timings", Description: "desc", Category: "general", Date: "2026-03-02"}
	require.NoError(t, NewNoticeRepo(db).Create(context.Background(), &n))
	assert.Equal(t, uint64(11), n.ID)
	assert.Equal(t, now, n.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepoDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM notices WHERE id=\\?").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM notices WHERE id=\\?").
		WithArgs(uint64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewNoticeRepo(db)
	assert.NoError(t, repo.Delete(context.Background(), 5))
	assert.ErrorIs(t, repo.Delete(context.Background(), 6), ErrNoticeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
