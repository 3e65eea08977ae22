// Package session persists the bearer token between runs.
package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
)

const filePerms = 0o600

// ErrEmptyToken is returned when saving a session without a token
var ErrEmptyToken = errors.New("session token cannot be empty")

// Session is what survives a restart
type Session struct {
	Token    string    `json:"token"`
	Username string    `json:"username,omitempty"`
	BaseURL  string    `json:"baseUrl,omitempty"`
	SavedAt  time.Time `json:"savedAt"`
}

// Valid reports whether the session carries a token
func (s Session) Valid() bool {
	return s.Token != ""
}

// Store reads and writes the session file
type Store struct {
	path   string
	logger *slog.Logger
}

// DefaultPath returns the session file location under the user config dir
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "daybook", "session.json"), nil
}

// NewStore creates a store backed by path
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the session file location
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored session. A missing file is an empty session.
// Sessions saved for a different backend are ignored.
func (s *Store) Load(baseURL string) (Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("discarding unreadable session file", "path", s.path, "error", err)
		return Session{}, nil
	}
	if baseURL != "" && sess.BaseURL != "" && sess.BaseURL != baseURL {
		s.logger.Info("stored session belongs to another backend", "stored", sess.BaseURL, "current", baseURL)
		return Session{}, nil
	}
	return sess, nil
}

// Save writes the session atomically with owner-only permissions
func (s *Store) Save(sess Session) error {
	if sess.Token == "" {
		return ErrEmptyToken
	}
	if sess.SavedAt.IsZero() {
		sess.SavedAt = time.Now()
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	// atomic.WriteFile doesn't set permissions for new files
	if err := os.Chmod(s.path, filePerms); err != nil {
		return fmt.Errorf("set session permissions: %w", err)
	}

	s.logger.Debug("session saved", "path", s.path, "username", sess.Username)
	return nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	s.logger.Debug("session cleared", "path", s.path)
	return nil
}
