package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/digital-notice-board/internal/config"
	"github.com/iliyamo/digital-notice-board/internal/repository"
	"github.com/iliyamo/digital-notice-board/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "test-secret",
		AccessTTLMin: 15,
		BcryptCost:   4, // minimum cost keeps the tests fast
	}
}

func userRowFor(t *testing.T, id uint64, email, password, role string) *sqlmock.Rows {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "registration_number", "name", "email", "password_hash", "role", "created_at", "updated_at",
	}).AddRow(id, nil, "Test User", email, hash, role, now, now)
}

func postLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(req, rec)))
	return rec
}

func TestLoginSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM users WHERE email=\\? LIMIT 1").
		WithArgs("alice@campus.edu").
		WillReturnRows(userRowFor(t, 3, "alice@campus.edu", "correct horse", "faculty"))

	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db))
	rec := postLogin(t, h, `{"email":"alice@campus.edu","password":"correct horse","role":"faculty"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
		RedirectTo string `json:"redirect_to"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/", resp.RedirectTo)
	assert.Equal(t, "faculty", resp.User.Role)

	claims, err := utils.ParseAccessToken("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), claims.UserID)
	assert.Equal(t, "faculty", claims.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginAdminRedirect(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM users WHERE email=\\? LIMIT 1").
		WithArgs("root@campus.edu").
		WillReturnRows(userRowFor(t, 1, "root@campus.edu", "pw", "admin"))

	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db))
	rec := postLogin(t, h, `{"email":"root@campus.edu","password":"pw"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect_to":"/admin"`)
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM users WHERE email=\\? LIMIT 1").
		WithArgs("alice@campus.edu").
		WillReturnRows(userRowFor(t, 3, "alice@campus.edu", "correct horse", "faculty"))

	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db))
	rec := postLogin(t, h, `{"email":"alice@campus.edu","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginRoleMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM users WHERE email=\\? LIMIT 1").
		WithArgs("alice@campus.edu").
		WillReturnRows(userRowFor(t, 3, "alice@campus.edu", "pw", "student"))

	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db))
	rec := postLogin(t, h, `{"email":"alice@campus.edu","password":"pw","role":"admin"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "role mismatch")
}

func TestLoginUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Unknown email falls through to a registration-number lookup
	// before the login is rejected.
	empty := sqlmock.NewRows([]string{
		"id", "registration_number", "name", "email", "password_hash", "role", "created_at", "updated_at",
	})
	mock.ExpectQuery("SELECT .+ FROM users WHERE email=\\? LIMIT 1").
		WithArgs("ghost@campus.edu").
		WillReturnRows(empty)
	mock.ExpectQuery("SELECT .+ FROM users WHERE registration_number=\\? LIMIT 1").
		WithArgs("ghost@campus.edu").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "registration_number", "name", "email", "password_hash", "role", "created_at", "updated_at",
		}))

	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db))
	rec := postLogin(t, h, `{"email":"ghost@campus.edu","password":"pw"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginMissingFields(t *testing.T) {
	h := NewAuthHandler(testConfig(), nil)
	rec := postLogin(t, h, `{"password":"pw"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "identifier/password required")
}
