package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/daybook/internal/domain"
)

// Catppuccin Macchiato palette
var (
	// Base colors
	Base     = lipgloss.Color("#24273a")
	Mantle   = lipgloss.Color("#1e2030")
	Surface0 = lipgloss.Color("#363a4f")
	Surface1 = lipgloss.Color("#494d64")
	Surface2 = lipgloss.Color("#5b6078")
	Overlay0 = lipgloss.Color("#6e738d")
	Overlay1 = lipgloss.Color("#8087a2")
	Subtext0 = lipgloss.Color("#a5adcb")
	Subtext1 = lipgloss.Color("#b8c0e0")
	Text     = lipgloss.Color("#cad3f5")

	// Accent colors
	Pink     = lipgloss.Color("#f5bde6")
	Mauve    = lipgloss.Color("#c6a0f6")
	Red      = lipgloss.Color("#ed8796")
	Peach    = lipgloss.Color("#f5a97f")
	Yellow   = lipgloss.Color("#eed49f")
	Green    = lipgloss.Color("#a6da95")
	Teal     = lipgloss.Color("#8bd5ca")
	Sapphire = lipgloss.Color("#7dc4e4")
	Blue     = lipgloss.Color("#8aadf4")
	Lavender = lipgloss.Color("#b7bdf8")
)

// PriorityColors maps task priority to colors
var PriorityColors = map[domain.Priority]lipgloss.Color{
	domain.PriorityHigh:   Red,
	domain.PriorityMedium: Yellow,
	domain.PriorityLow:    Green,
}

// CategoryColors maps task category to colors
var CategoryColors = map[domain.Category]lipgloss.Color{
	domain.CategoryWork:     Blue,
	domain.CategoryPersonal: Pink,
	domain.CategoryShopping: Peach,
	domain.CategoryHealth:   Green,
	domain.CategoryLearning: Mauve,
	domain.CategoryOther:    Overlay1,
}
