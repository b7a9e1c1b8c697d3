// Package api is the HTTP client for the remote todos resource. It only
// builds and sends requests; interpreting responses is left to transport.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL serves the same todo schema publicly.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	defaultTimeout = 30 * time.Second
	todosPath      = "/todos"
)

// Client issues the five todo calls. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is used
// as-is; wrap it with NewLoggingTransport to get exchange logs.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithLogger sets the logger used by the default transport.
func WithLogger(l *slog.Logger) ClientOption {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient creates a client for baseURL ("" selects DefaultBaseURL).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   defaultTimeout,
			Transport: NewLoggingTransport(nil, c.logger),
		}
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// ListTodos sends GET /todos.
func (c *Client) ListTodos(ctx context.Context) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, todosPath, nil)
}

// GetTodo sends GET /todos/{id}.
func (c *Client) GetTodo(ctx context.Context, id int) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, todoPath(id), nil)
}

// CreateTodo sends POST /todos.
func (c *Client) CreateTodo(ctx context.Context, body TodoRequest) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, todosPath, body)
}

// UpdateTodo sends PUT /todos/{id} with the full todo.
func (c *Client) UpdateTodo(ctx context.Context, id int, body TodoRequest) (*http.Response, error) {
	return c.do(ctx, http.MethodPut, todoPath(id), body)
}

// DeleteTodo sends DELETE /todos/{id}.
func (c *Client) DeleteTodo(ctx context.Context, id int) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, todoPath(id), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

func todoPath(id int) string {
	return todosPath + "/" + strconv.Itoa(id)
}
