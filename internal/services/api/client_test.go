package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDoer implements HTTPDoer for testing
type mockDoer struct {
	status int
	body   string
	err    error

	last *http.Request
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &http.Response{
		StatusCode: m.status,
		Body:       io.NopCloser(strings.NewReader(m.body)),
		Header:     make(http.Header),
	}, nil
}

func newTestClient(doer HTTPDoer) *Client {
	return NewClient("http://backend.test/", doer, slog.Default()).WithToken("tok-123")
}

func TestClient_ListTasks(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		doErr     error
		wantCount int
		wantErr   error
	}{
		{
			name:   "valid response with multiple tasks",
			status: http.StatusOK,
			body: `[
				{"id": 1, "title": "Write report", "completed": false, "taskDate": "2024-05-01", "priority": "high", "category": "Work"},
				{"id": 2, "title": "Gym", "completed": true, "taskDate": "2024-05-01", "description": null, "priority": null, "category": null}
			]`,
			wantCount: 2,
		},
		{
			name:      "empty response",
			status:    http.StatusOK,
			body:      `[]`,
			wantCount: 0,
		},
		{
			name:      "object instead of array",
			status:    http.StatusOK,
			body:      `{"message": "nothing here"}`,
			wantCount: 0,
		},
		{
			name:      "empty body",
			status:    http.StatusOK,
			body:      ``,
			wantCount: 0,
		},
		{
			name:    "forbidden means session expired",
			status:  http.StatusForbidden,
			wantErr: domain.ErrSessionExpired,
		},
		{
			name:    "transport error",
			doErr:   errors.New("connection refused"),
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &mockDoer{status: tt.status, body: tt.body, err: tt.doErr}
			client := newTestClient(doer)

			tasks, err := client.ListTasks(context.Background(), "2024-05-01")

			if tt.wantErr != nil {
				require.Error(t, err)
				var apiErr *domain.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "list", apiErr.Op)
				if errors.Is(tt.wantErr, domain.ErrSessionExpired) {
					assert.ErrorIs(t, err, domain.ErrSessionExpired)
				}
				return
			}

			require.NoError(t, err)
			assert.Len(t, tasks, tt.wantCount)
			assert.NotNil(t, tasks)
		})
	}
}

func TestClient_ListTasksNormalizesNulls(t *testing.T) {
	doer := &mockDoer{
		status: http.StatusOK,
		body:   `[{"id": 7, "title": "Bare", "completed": false, "taskDate": "2024-05-01", "priority": null, "category": null}]`,
	}

	tasks, err := newTestClient(doer).ListTasks(context.Background(), "2024-05-01")

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.PriorityMedium, tasks[0].Priority)
	assert.Equal(t, domain.CategoryOther, tasks[0].Category)
}

func TestClient_RequestShape(t *testing.T) {
	doer := &mockDoer{status: http.StatusOK, body: `{"total": 3, "completed": 1, "pending": 2}`}

	a, err := newTestClient(doer).Analytics(context.Background(), "2024-05-01")

	require.NoError(t, err)
	assert.Equal(t, domain.Analytics{Total: 3, Completed: 1, Pending: 2}, a)

	req := doer.last
	require.NotNil(t, req)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/tasks/analytics", req.URL.Path)
	assert.Equal(t, "2024-05-01", req.URL.Query().Get("date"))
	assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.NotEmpty(t, req.Header.Get("X-Request-ID"))
}

func TestClient_UpdateTaskSendsFullRecord(t *testing.T) {
	doer := &mockDoer{
		status: http.StatusOK,
		body:   `{"id": 4, "title": "Renamed", "completed": true, "taskDate": "2024-05-01", "description": "d", "priority": "low", "category": "Health"}`,
	}
	task := domain.Task{
		ID:          4,
		Title:       "Renamed",
		Completed:   true,
		TaskDate:    "2024-05-01",
		Description: "d",
		Priority:    domain.PriorityLow,
		Category:    domain.CategoryHealth,
	}

	updated, err := newTestClient(doer).UpdateTask(context.Background(), task)

	require.NoError(t, err)
	assert.Equal(t, task, updated)

	req := doer.last
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/tasks/4", req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	for _, field := range []string{`"title":"Renamed"`, `"completed":true`, `"taskDate":"2024-05-01"`, `"description":"d"`, `"priority":"low"`, `"category":"Health"`} {
		assert.Contains(t, string(body), field)
	}
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantStatus  int
	}{
		{
			name:        "message field",
			status:      http.StatusBadRequest,
			body:        `{"message": "Title is required"}`,
			wantMessage: "Title is required",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "error field",
			status:      http.StatusUnauthorized,
			body:        `{"error": "Invalid credentials"}`,
			wantMessage: "Invalid credentials",
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:       "no body",
			status:     http.StatusInternalServerError,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "non json body",
			status:     http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &mockDoer{status: tt.status, body: tt.body}

			err := newTestClient(doer).DeleteTask(context.Background(), 9)

			var apiErr *domain.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "delete", apiErr.Op)
			assert.Equal(t, int64(9), apiErr.TaskID)
			assert.Equal(t, tt.wantStatus, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestClient_RequiresToken(t *testing.T) {
	doer := &mockDoer{status: http.StatusOK, body: `[]`}
	client := NewClient("http://backend.test", doer, nil)

	_, err := client.ListTasks(context.Background(), "2024-05-01")

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Nil(t, doer.last, "no request should be sent without a token")
}

func TestClient_Login(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantToken string
		wantErr   bool
	}{
		{
			name:      "token returned",
			status:    http.StatusOK,
			body:      `{"token": "abc"}`,
			wantToken: "abc",
		},
		{
			name:    "missing token",
			status:  http.StatusOK,
			body:    `{}`,
			wantErr: true,
		},
		{
			name:    "bad credentials",
			status:  http.StatusUnauthorized,
			body:    `{"error": "Invalid credentials"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &mockDoer{status: tt.status, body: tt.body}
			client := NewClient("http://backend.test", doer, slog.Default())

			token, err := client.Login(context.Background(), "admin", "pass")

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Empty(t, doer.last.Header.Get("Authorization"))
		})
	}
}

// blockingDoer waits for the request context before failing
type blockingDoer struct{}

func (blockingDoer) Do(req *http.Request) (*http.Response, error) {
	<-req.Context().Done()
	return nil, errors.New("transport closed")
}

func TestClient_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := newTestClient(blockingDoer{})

	done := make(chan error, 1)
	go func() {
		_, err := client.PendingDates(ctx)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("request did not observe cancellation")
	}
}

func TestNewClient_TrimsBaseURL(t *testing.T) {
	client := NewClient("http://localhost:8080///", &mockDoer{}, nil)
	assert.Equal(t, "http://localhost:8080", client.BaseURL())
}
