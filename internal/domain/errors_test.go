package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  APIError
		want string
	}{
		{
			name: "with task ID",
			err:  APIError{Op: "update", TaskID: 4, Message: "Task not found or access denied"},
			want: "api update [4]: Task not found or access denied",
		},
		{
			name: "with message only",
			err:  APIError{Op: "login", Message: "Invalid credentials"},
			want: "api login: Invalid credentials",
		},
		{
			name: "with underlying error",
			err:  APIError{Op: "list", Err: errors.New("connection refused")},
			want: "api list: connection refused",
		},
		{
			name: "status only",
			err:  APIError{Op: "delete", Status: 500},
			want: "api delete: Server error (500)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("APIError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	err := fmt.Errorf("fetch: %w", &APIError{Op: "list", Status: 403, Err: ErrSessionExpired})
	if !errors.Is(err, ErrSessionExpired) {
		t.Error("expected errors.Is to find ErrSessionExpired through APIError")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 403 {
		t.Errorf("errors.As failed: %v", apiErr)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{"server message wins", &APIError{Op: "create", Status: 400, Message: "Title is required"}, "Add failed", "Title is required"},
		{"status without message", &APIError{Op: "update", Status: 500}, "Update failed", "Server error (500)"},
		{"transport error", &APIError{Op: "list", Err: errors.New("dial tcp: refused")}, "Fetch failed", "dial tcp: refused"},
		{"session expired", &APIError{Op: "list", Status: 403, Err: ErrSessionExpired}, "x", "Session expired"},
		{"plain error uses fallback", errors.New("boom"), "Delete failed", "Delete failed"},
		{"plain error without fallback", errors.New("boom"), "", "boom"},
		{"nil error", nil, "fallback", "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err, tt.fallback); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServerMessage(t *testing.T) {
	if got := ServerMessage(&APIError{Op: "login", Status: 401, Message: "Invalid credentials"}); got != "Invalid credentials" {
		t.Errorf("got %q", got)
	}
	if got := ServerMessage(&APIError{Op: "login", Status: 500}); got != "" {
		t.Errorf("got %q", got)
	}
	if got := ServerMessage(errors.New("x")); got != "" {
		t.Errorf("got %q", got)
	}
}
