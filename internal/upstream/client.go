// Package upstream is the typed HTTP client for the remote exam API.
// The gateway never implements any of this behavior itself: the upstream
// service owns credential verification, token issuance, and exam data.
package upstream

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

	"github.com/rs/zerolog"
)

// Common upstream errors.
var (
	ErrBadCredentials = errors.New("invalid credentials")
	ErrUnauthorized   = errors.New("unauthorized")
)

// Upstream endpoint paths.
const (
	LoginPath    = "/api/auth/login/"
	LogoutPath   = "/api/auth/logout/"
	UserPath     = "/api/auth/user/"
	MainViewPath = "/api/mainview/"
)

// Client calls the remote exam API. All requests honor the caller's
// context; the embedded http.Client supplies the transport timeout.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a Client for the given base URL.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// Login exchanges credentials for a bearer token and the user record.
// The request deliberately carries no Authorization header: login is an
// unauthenticated operation. Rejected credentials map to
// ErrBadCredentials; anything else is a transport or protocol error.
func (c *Client) Login(ctx context.Context, email, password string) (string, json.RawMessage, error) {
	body, err := json.Marshal(loginPayload{Email: email, Password: password})
	if err != nil {
		return "", nil, fmt.Errorf("encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+LoginPath, bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("login request: %w", err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", nil, ErrBadCredentials
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", nil, fmt.Errorf("login: unexpected status %d", resp.StatusCode)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", nil, fmt.Errorf("decode login response: %w", err)
	}
	if lr.Token == "" || len(lr.User) == 0 {
		return "", nil, errors.New("login: response missing token or user")
	}
	return lr.Token, lr.User, nil
}

// Logout tells the upstream to revoke the token. The caller treats
// failures as best-effort.
func (c *Client) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+LogoutPath, nil)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("logout: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// FetchUser retrieves the current user record for the token.
// A 401 maps to ErrUnauthorized.
func (c *Client) FetchUser(ctx context.Context, token string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+UserPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user request: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("user: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read user response: %w", err)
	}
	return raw, nil
}

// Do performs an arbitrary authenticated request against the upstream.
// Data endpoints use the upstream's "Token" header scheme, unlike the
// auth endpoints which accept "Bearer". The caller owns the response
// body.
func (c *Client) Do(ctx context.Context, method, path, token string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
