// Package remote provides an HTTP client for the remote task and settings API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/runoshun/braindump/internal/domain"
	"golang.org/x/oauth2"
)

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 512

// StatusError is returned when the server answers with a non-2xx status.
// Fields are ordered to minimize memory padding.
type StatusError struct {
	Method     string
	Path       string
	Body       string
	StatusCode int
}

// Error implements error.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap lets callers match StatusError with errors.Is(err, domain.ErrRemoteRequestFailed).
func (e *StatusError) Unwrap() error {
	return domain.ErrRemoteRequestFailed
}

// Client implements domain.RemoteStore over JSON/HTTP.
type Client struct {
	http    *http.Client
	baseURL string
}

// New creates a Client for baseURL. Every request carries the bearer
// credential supplied by auth. Timeouts are owned by the transport.
func New(baseURL string, auth domain.Authenticator, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &oauth2.Transport{
				Source: credentialSource{auth: auth},
				Base:   http.DefaultTransport,
			},
		},
	}
}

// credentialSource adapts a domain.Authenticator to oauth2.TokenSource.
type credentialSource struct {
	auth domain.Authenticator
}

// Token returns the current credential as a bearer token.
func (s credentialSource) Token() (*oauth2.Token, error) {
	cred, err := s.auth.Credential(context.Background())
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: cred, TokenType: "Bearer"}, nil
}

// ListTasks fetches every task visible to the user.
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var raw []map[string]any
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &raw); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(raw))
	for _, r := range raw {
		tasks = append(tasks, domain.DecodeTask(r))
	}
	return tasks, nil
}

// CreateTask posts a new task and returns the server's copy.
func (c *Client) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	return c.sendTask(ctx, http.MethodPost, "/tasks", task)
}

// UpdateTask replaces a task and returns the server's copy.
func (c *Client) UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	return c.sendTask(ctx, http.MethodPut, "/tasks/"+url.PathEscape(task.ID), task)
}

// DeleteTask removes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

// GetSettings fetches the user's settings.
func (c *Client) GetSettings(ctx context.Context) (domain.Settings, error) {
	var raw map[string]any
	if err := c.do(ctx, http.MethodGet, "/settings", nil, &raw); err != nil {
		return domain.Settings{}, err
	}
	return domain.DecodeSettings(raw), nil
}

// SaveSettings replaces the user's settings.
func (c *Client) SaveSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	var raw map[string]any
	if err := c.do(ctx, http.MethodPut, "/settings", settings, &raw); err != nil {
		return domain.Settings{}, err
	}
	return domain.DecodeSettings(raw), nil
}

// sendTask writes a task. The response body is optional: an empty body
// means the server accepted the task as sent.
func (c *Client) sendTask(ctx context.Context, method, path string, task domain.Task) (domain.Task, error) {
	var raw map[string]any
	if err := c.do(ctx, method, path, task, &raw); err != nil {
		return domain.Task{}, err
	}
	if len(raw) == 0 {
		return task, nil
	}
	got := domain.DecodeTask(raw)
	if got.ID == "" {
		got.ID = task.ID
	}
	return got, nil
}

// do performs one JSON request. out may be nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", domain.ErrRemoteRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrRemoteRequestFailed, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", domain.ErrRemoteRequestFailed, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %w", domain.ErrRemoteRequestFailed, method, path, err)
	}
	return nil
}

// Ensure Client implements domain.RemoteStore.
var _ domain.RemoteStore = (*Client)(nil)
