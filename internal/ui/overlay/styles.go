package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/riordanpawley/daybook/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	// Overlay is the base overlay container style
	Overlay lipgloss.Style
	// Title is the overlay title style
	Title lipgloss.Style
	// MenuItem is the default menu item style
	MenuItem lipgloss.Style
	// MenuItemActive is the highlighted/selected menu item style
	MenuItemActive lipgloss.Style
	// MenuItemDisabled is the disabled menu item style
	MenuItemDisabled lipgloss.Style
	// MenuKey is the style for keybinding hints
	MenuKey lipgloss.Style
	// Separator is the style for divider lines
	Separator lipgloss.Style
	// Footer is the style for overlay footer text
	Footer lipgloss.Style
	// MenuHeader is the style for menu section headers
	MenuHeader lipgloss.Style
	// Label is the style for form field labels
	Label lipgloss.Style
	// LabelFocused marks the field that receives keys
	LabelFocused lipgloss.Style
	// Error is inline validation text
	Error lipgloss.Style
	// Preview frames rendered markdown
	Preview lipgloss.Style

	PriorityBadge func(p domain.Priority) lipgloss.Style
	CategoryBadge func(c domain.Category) lipgloss.Style
}

// New creates a new Styles instance using the Catppuccin Macchiato theme
func New() *Styles {
	shared := styles.New()
	return &Styles{
		Overlay:          shared.Overlay,
		Title:            shared.OverlayTitle,
		MenuItem:         shared.MenuItem,
		MenuItemActive:   shared.MenuItemActive,
		MenuItemDisabled: shared.MenuItemDisabled,
		MenuKey:          shared.MenuKey,
		Separator:        shared.Separator,

		Footer: lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			MarginTop(1),

		MenuHeader: lipgloss.NewStyle().
			Foreground(styles.Subtext1).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(styles.Teal).
			Width(12),

		LabelFocused: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true).
			Width(12),

		Error: shared.ErrorText,

		Preview: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderTop(false).
			BorderRight(false).
			BorderBottom(false).
			BorderForeground(styles.Surface2).
			PaddingLeft(1),

		PriorityBadge: shared.PriorityBadge,
		CategoryBadge: shared.CategoryBadge,
	}
}
