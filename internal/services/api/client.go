// Package api is the HTTP client for the daybook task backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/riordanpawley/daybook/internal/domain"
)

// HTTPDoer abstracts request execution for testing
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns the default transport used against the backend
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Client talks to the task REST API. A Client is immutable; WithToken
// returns a copy bound to a session.
type Client struct {
	baseURL string
	doer    HTTPDoer
	token   string
	logger  *slog.Logger
}

// NewClient creates a new API client with dependency injection
func NewClient(baseURL string, doer HTTPDoer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
		logger:  logger,
	}
}

// WithToken returns a copy of the client that sends the bearer token
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// BaseURL returns the backend base URL without trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call describes one request/response round trip
type call struct {
	op     string
	taskID int64
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

// errorBody is what the backend sends alongside a failure status
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do executes the call and returns the raw response body on 2xx
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	if cl.auth && c.token == "" {
		return nil, &domain.APIError{Op: cl.op, TaskID: cl.taskID, Err: domain.ErrNotAuthenticated}
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, &domain.APIError{Op: cl.op, TaskID: cl.taskID, Message: "failed to encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, reader)
	if err != nil {
		return nil, &domain.APIError{Op: cl.op, TaskID: cl.taskID, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("api request", "op", cl.op, "method", cl.method, "path", cl.path, "request_id", requestID)

	resp, err := c.doer.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &domain.APIError{Op: cl.op, TaskID: cl.taskID, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.APIError{Op: cl.op, TaskID: cl.taskID, Status: resp.StatusCode, Err: err}
	}

	c.logger.Debug("api response", "op", cl.op, "status", resp.StatusCode, "bytes", len(data), "request_id", requestID)

	if resp.StatusCode == http.StatusForbidden {
		return nil, &domain.APIError{
			Op:     cl.op,
			TaskID: cl.taskID,
			Status: resp.StatusCode,
			Err:    domain.ErrSessionExpired,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body errorBody
		_ = json.Unmarshal(data, &body)
		msg := body.Message
		if msg == "" {
			msg = body.Error
		}
		return nil, &domain.APIError{Op: cl.op, TaskID: cl.taskID, Status: resp.StatusCode, Message: msg}
	}

	return data, nil
}

// decodeObject unmarshals a JSON object response
func decodeObject(op string, data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.APIError{Op: op, Message: "failed to parse JSON", Err: err}
	}
	return nil
}

// decodeList unmarshals a JSON array response. Anything that is not an
// array decodes as an empty list.
func decodeList[T any](op string, data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &domain.APIError{Op: op, Message: "failed to parse JSON", Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func taskPath(id int64) string {
	return fmt.Sprintf("/api/tasks/%d", id)
}
