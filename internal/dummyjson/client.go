package dummyjson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/cinedeck/internal/logging"
)

// Authenticator is implemented by *Client and faked in tests.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (LoginResponse, error)
	AddUser(ctx context.Context, req AddUserRequest) (AddUserResponse, error)
}

var _ Authenticator = (*Client)(nil)

// APIError is a non-2xx reply. Message is empty when the body carried none.
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

// LoginResponse mirrors POST /auth/login.
type LoginResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

// SessionToken returns token, or accessToken for newer sandbox replies.
func (r LoginResponse) SessionToken() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// AddUserRequest is the POST /users/add body.
type AddUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AddUserResponse mirrors POST /users/add. ID is nil when omitted.
type AddUserResponse struct {
	ID        *int64 `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Client talks to the DummyJSON auth sandbox.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *zap.Logger
}

const (
	defaultBaseURL   = "https://dummyjson.com"
	defaultUserAgent = "cinedeck/0.1"
	defaultTimeout   = 10 * time.Second
)

// NewClient builds a Client for baseURL. Empty means the public sandbox.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		log:       logging.OrNop(logger).Named("dummyjson"),
	}, nil
}

// Login exchanges a username and password for a session.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"username": username, "password": password}
	if err := c.post(ctx, "/auth/login", body, &out); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

// AddUser registers a sandbox user. The sandbox does not persist it.
func (c *Client) AddUser(ctx context.Context, req AddUserRequest) (AddUserResponse, error) {
	var out AddUserResponse
	if err := c.post(ctx, "/users/add", req, &out); err != nil {
		return AddUserResponse{}, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, payload, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	reqURL := *c.baseURL
	reqURL.Path = strings.TrimRight(c.baseURL.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("path", path), zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("request",
		zap.String("method", http.MethodPost),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Path: path, Status: resp.StatusCode}
		var body struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			apiErr.Message = strings.TrimSpace(body.Message)
		}
		return apiErr
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse auth base url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
