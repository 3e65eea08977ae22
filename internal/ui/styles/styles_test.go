package styles

import (
	"testing"

	"github.com/riordanpawley/daybook/internal/domain"
)

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New() returned nil")
	}
}

func TestPriorityBadge(t *testing.T) {
	s := New()

	tests := []struct {
		priority domain.Priority
		name     string
	}{
		{domain.PriorityHigh, "high"},
		{domain.PriorityMedium, "medium"},
		{domain.PriorityLow, "low"},
		{domain.Priority("urgent"), "unknown falls back to medium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered := s.PriorityBadge(tt.priority).Render(string(tt.priority))
			if len(rendered) == 0 {
				t.Error("PriorityBadge rendered empty string")
			}
		})
	}
}

func TestCategoryColors(t *testing.T) {
	for _, c := range domain.Categories() {
		t.Run(string(c), func(t *testing.T) {
			if _, ok := CategoryColors[c]; !ok {
				t.Errorf("no color for category %s", c)
			}
			if s := New().CategoryBadge(c).Render(string(c)); s == "" {
				t.Error("CategoryBadge rendered empty string")
			}
		})
	}
}

func TestThemeColors(t *testing.T) {
	colors := []struct {
		name  string
		color string
	}{
		{"Base", string(Base)},
		{"Blue", string(Blue)},
		{"Red", string(Red)},
		{"Green", string(Green)},
		{"Yellow", string(Yellow)},
	}

	for _, c := range colors {
		t.Run(c.name, func(t *testing.T) {
			if c.color == "" || c.color[0] != '#' {
				t.Errorf("%s color %q is not a hex color", c.name, c.color)
			}
		})
	}
}
