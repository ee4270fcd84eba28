// Package client talks to the auth REST API and implements flow.Backend, so
// the sign-in wizard can run outside the browser.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/dto"
	"madrese/auth-service/internal/model/user"
)

const apiPrefix = "/api/v1/auth"

// APIError is a failure whose kind the client does not know.
type APIError struct {
	Status  int
	Code    int
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth api: HTTP %d", e.Status)
	}
	return fmt.Sprintf("auth api: %s (HTTP %d)", e.Message, e.Status)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// Client keeps the session and registration cookies in its own jar, so one
// Client is one signed-in user.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithTimeout sets the per-request timeout (default 10s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if e, ok := autherr.FromKind(env.Error); ok {
			return e
		}
		return &APIError{Status: resp.StatusCode, Code: env.Code, Kind: env.Error, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

func (c *Client) Login(ctx context.Context, nationalID, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	body := map[string]string{"nationalId": nationalID, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendVerification(ctx context.Context, phone string) error {
	return c.do(ctx, http.MethodPost, "/send-verification", map[string]string{"phoneNumber": phone}, nil)
}

// VerifyPhone stores the registration ticket cookie on success.
func (c *Client) VerifyPhone(ctx context.Context, phone, code string) error {
	body := map[string]string{"phoneNumber": phone, "code": code}
	return c.do(ctx, http.MethodPost, "/verify-phone", body, nil)
}

// CompleteProfile sends profile without its phone; the server takes the
// phone from the registration ticket.
func (c *Client) CompleteProfile(ctx context.Context, profile user.Profile) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/complete-profile", profile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*dto.User, error) {
	var out struct {
		User dto.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Menu(ctx context.Context) (*dto.MenuResponse, error) {
	var out dto.MenuResponse
	if err := c.do(ctx, http.MethodGet, "/menu", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}
