package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/digital-notice-board/internal/model"
)

// ErrUnauthenticated is returned by a Fetcher when the server rejects
// the session. The engine shuts down on it; every other error is
// transient and retried on the next poll.
var ErrUnauthenticated = errors.New("notify: unauthenticated")

// Client is an HTTP Fetcher against the notice board API. The notice
// listing itself requires no credential; the token, when present, is
// still attached so a deployment that later locks the listing down
// keeps working.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient builds a Client with a sane request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchNotices retrieves the complete notice collection, newest first.
func (c *Client) FetchNotices(ctx context.Context) ([]model.Notice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/notices", nil)
	if err != nil {
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("notify: fetch notices: unexpected status %d", resp.StatusCode)
	}

	var notices []model.Notice
	if err := json.NewDecoder(resp.Body).Decode(&notices); err != nil {
		return nil, fmt.Errorf("notify: decode notices: %w", err)
	}
	return notices, nil
}

// LoginRequest carries the credentials for Login. Either Email or
// RegistrationNumber identifies the account; Role must match the
// stored role.
type LoginRequest struct {
	Email              string `json:"email,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	Password           string `json:"password"`
	Role               string `json:"role,omitempty"`
}

// LoginUser is the identity part of a login response.
type LoginUser struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse is the successful login payload.
type LoginResponse struct {
	Token      string    `json:"token"`
	Expires    time.Time `json:"expires"`
	User       LoginUser `json:"user"`
	RedirectTo string    `json:"redirect_to"`
}

// Login authenticates against the API and stores the returned token on
// the client for subsequent requests.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return LoginResponse{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return LoginResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return LoginResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return LoginResponse{}, ErrUnauthenticated
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return LoginResponse{}, fmt.Errorf("notify: login: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return LoginResponse{}, fmt.Errorf("notify: decode login response: %w", err)
	}
	c.Token = out.Token
	return out, nil
}
