// Package network tracks whether the task backend is reachable.
package network

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// HealthChecker probes the backend
type HealthChecker interface {
	Health(ctx context.Context) error
}

// StatusChecker monitors backend connectivity
type StatusChecker struct {
	mu        sync.RWMutex
	isOnline  bool
	lastCheck time.Time
	lastErr   error
	health    HealthChecker
	timeout   time.Duration
	logger    *slog.Logger
}

// StatusMsg reports the result of a health check
type StatusMsg struct {
	Online bool
	Err    error
}

// NewStatusChecker creates a checker that probes health
func NewStatusChecker(health HealthChecker, logger *slog.Logger) *StatusChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusChecker{
		isOnline: true, // Optimistically assume online
		health:   health,
		timeout:  5 * time.Second,
		logger:   logger,
	}
}

// Check probes the backend once and caches the result
func (s *StatusChecker) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.health.Health(ctx)
	online := err == nil

	s.mu.Lock()
	changed := online != s.isOnline
	s.isOnline = online
	s.lastErr = err
	s.lastCheck = time.Now()
	s.mu.Unlock()

	if changed {
		s.logger.Info("backend connectivity changed", "online", online, "error", err)
	}
	return online
}

// IsOnline returns the cached online status
func (s *StatusChecker) IsOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOnline
}

// LastCheck returns the time of the last health check
func (s *StatusChecker) LastCheck() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCheck
}

// LastError returns the error of the last failed check, nil when online
func (s *StatusChecker) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// CheckCmd returns a tea.Cmd that performs a one-time health check
func (s *StatusChecker) CheckCmd() tea.Cmd {
	return func() tea.Msg {
		online := s.Check(context.Background())
		return StatusMsg{Online: online, Err: s.LastError()}
	}
}

// PollCmd waits interval, then checks. The app re-issues it on every
// StatusMsg to keep polling.
func (s *StatusChecker) PollCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		online := s.Check(context.Background())
		return StatusMsg{Online: online, Err: s.LastError()}
	})
}
