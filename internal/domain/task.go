// Package domain contains core business types for the daybook client.
package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire format for task dates
const DateLayout = "2006-01-02"

// MaxDescriptionLength is the longest description the backend stores
const MaxDescriptionLength = 500

// Task is one to-do item scoped to a calendar day
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Completed   bool     `json:"completed"`
	TaskDate    string   `json:"taskDate"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Category    Category `json:"category"`
}

// Normalize fills in the defaults the backend implies for missing fields
func (t Task) Normalize() Task {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Category == "" {
		t.Category = CategoryOther
	}
	return t
}

// StatusLabel returns "Completed" or "Pending"
func (t Task) StatusLabel() string {
	if t.Completed {
		return "Completed"
	}
	return "Pending"
}

// NewTask builds the record sent when adding a task to the given day
func NewTask(title string, date time.Time) Task {
	return Task{
		Title:       strings.TrimSpace(title),
		Completed:   false,
		TaskDate:    FormatDate(date),
		Description: "",
		Priority:    PriorityMedium,
		Category:    CategoryOther,
	}
}

// Priority is the urgency of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the priorities in ascending order
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// String returns the display string
func (p Priority) String() string {
	return string(p)
}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Next cycles low -> medium -> high -> low
func (p Priority) Next() Priority {
	return cycle(Priorities(), p, 1)
}

// Prev cycles in the opposite direction to Next
func (p Priority) Prev() Priority {
	return cycle(Priorities(), p, -1)
}

// Category groups tasks by area of life
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Shopping"
	CategoryHealth   Category = "Health"
	CategoryLearning Category = "Learning"
	CategoryOther    Category = "Other"
)

// Categories lists all categories in display order
func Categories() []Category {
	return []Category{
		CategoryWork,
		CategoryPersonal,
		CategoryShopping,
		CategoryHealth,
		CategoryLearning,
		CategoryOther,
	}
}

// String returns the display string
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Next cycles through Categories
func (c Category) Next() Category {
	return cycle(Categories(), c, 1)
}

// Prev cycles through Categories backwards
func (c Category) Prev() Category {
	return cycle(Categories(), c, -1)
}

func cycle[T comparable](values []T, current T, step int) T {
	for i, v := range values {
		if v == current {
			return values[(i+step+len(values))%len(values)]
		}
	}
	return values[0]
}

// FormatDate renders a date in wire format
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a wire-format date in the local time zone
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
}

// Day truncates t to midnight in its own location
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
