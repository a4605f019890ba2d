package handler

import (
	"context"  // provides context with cancellation for DB calls
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/digital-notice-board/internal/config"
	"github.com/iliyamo/digital-notice-board/internal/model"
	"github.com/iliyamo/digital-notice-board/internal/repository"
	"github.com/iliyamo/digital-notice-board/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints. There is no
// token repository: the server keeps no session state, so a login
// hands out a self-contained signed token and logout is purely a
// client concern (discard the token).
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	RegistrationNumber string `json:"registration_number"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	Role               string `json:"role"`
}
type loginReq struct {
	Email              string `json:"email"`
	RegistrationNumber string `json:"registration_number"`
	Password           string `json:"password"`
	Role               string `json:"role"`
}

type userPart struct {
	ID                 uint64 `json:"id"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
}
type loginResp struct {
	Token      string    `json:"token"`
	Expires    time.Time `json:"expires"`
	User       userPart  `json:"user"`
	RedirectTo string    `json:"redirect_to"`
}

func toUserPart(u model.User) userPart {
	return userPart{
		ID:                 u.ID,
		RegistrationNumber: u.RegistrationNumber,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
	}
}

// Register creates a user account. Students supply a registration
// number; staff roles register with email only.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := model.User{
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		Name:               req.Name,
		Email:              req.Email,
		Role:               role,
	}
	uid, err := h.Users.Create(ctx, u, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	u.ID = uid

	return c.JSON(http.StatusCreated, echo.Map{"user": toUserPart(u)})
}

// Login verifies the identifier/password pair, checks that the
// requested role matches the stored one, and returns a signed access
// token. The role claim inside the token stays fixed for its whole
// lifetime; a later role change takes effect only at the next login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	identifier := strings.TrimSpace(req.Email)
	if identifier == "" {
		identifier = strings.TrimSpace(req.RegistrationNumber)
	}
	if identifier == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "identifier/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if role := strings.ToLower(strings.TrimSpace(req.Role)); role != "" && role != u.Role {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "role mismatch"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	redirect := "/"
	if u.Role == model.RoleAdmin {
		redirect = "/admin"
	}
	return c.JSON(http.StatusOK, loginResp{
		Token:      access.Token,
		Expires:    access.Exp,
		User:       toUserPart(u),
		RedirectTo: redirect,
	})
}

// Me is a simple protected endpoint returning the decoded identity.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"role":    c.Get("role"),
	})
}
