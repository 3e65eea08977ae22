package domain

import (
	"fmt"
	"strings"
)

// StatusFilter restricts the list by completion state
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusCompleted StatusFilter = "completed"
	StatusPending   StatusFilter = "pending"
)

// String returns the display string
func (s StatusFilter) String() string {
	return string(s)
}

// Filter represents task filtering state
type Filter struct {
	Query  string
	Status StatusFilter
}

// NewFilter creates a filter that matches everything
func NewFilter() *Filter {
	return &Filter{Status: StatusAll}
}

// IsActive returns true if the filter can hide anything
func (f *Filter) IsActive() bool {
	return strings.TrimSpace(f.Query) != "" || (f.Status != StatusAll && f.Status != "")
}

// Apply returns the matching tasks in their original order.
// The input slice is never modified.
func (f *Filter) Apply(tasks []Task) []Task {
	result := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task) {
			result = append(result, task)
		}
	}
	return result
}

// Matches returns true if the task passes both the search text and the status filter.
// Search is case-insensitive. Titles are matched against the trimmed text,
// descriptions against the text as typed. Whitespace-only text matches all.
func (f *Filter) Matches(t Task) bool {
	switch f.Status {
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	case StatusPending:
		if t.Completed {
			return false
		}
	}

	raw := strings.ToLower(f.Query)
	query := strings.TrimSpace(raw)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Description), raw)
}

// Clear resets the filter to match everything
func (f *Filter) Clear() {
	f.Query = ""
	f.Status = StatusAll
}

// Summary describes how many of total tasks are shown
func Summary(shown, total int) string {
	noun := "tasks"
	if total == 1 {
		noun = "task"
	}
	if shown == total {
		return fmt.Sprintf("Showing all %d %s", total, noun)
	}
	return fmt.Sprintf("Showing %d of %d %s", shown, total, noun)
}
