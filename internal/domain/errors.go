package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrSessionExpired   = errors.New("session expired")
	ErrNotAuthenticated = errors.New("not signed in")
	ErrValidation       = errors.New("validation failed")
	ErrBusy             = errors.New("another action is in progress")
	ErrNotFound         = errors.New("not found")
	ErrNothingToExport  = errors.New("no tasks to export")
)

// APIError represents a failed call to the task backend
type APIError struct {
	Op      string // Operation: "login", "list", "update", etc.
	TaskID  int64  // Optional: task the call targeted
	Status  int    // HTTP status, 0 for transport failures
	Message string // Server-provided message, if any
	Err     error  // Underlying error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = fmt.Sprintf("Server error (%d)", e.Status)
	}
	if e.TaskID != 0 {
		return fmt.Sprintf("api %s [%d]: %s", e.Op, e.TaskID, msg)
	}
	return fmt.Sprintf("api %s: %s", e.Op, msg)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// UserMessage picks what to show a user for err: the server message if the
// backend sent one, fallback otherwise.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if errors.Is(err, ErrSessionExpired) {
		return "Session expired"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Status != 0 {
			return fmt.Sprintf("Server error (%d)", apiErr.Status)
		}
		if apiErr.Err != nil {
			return apiErr.Err.Error()
		}
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}

// ServerMessage returns the message the backend attached to err, or "".
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
