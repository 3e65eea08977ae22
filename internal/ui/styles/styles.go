package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/daybook/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Header
	Header     lipgloss.Style
	DateHeader lipgloss.Style
	Muted      lipgloss.Style
	Banner     lipgloss.Style

	// Dashboard cards
	Card        lipgloss.Style
	CardLabel   lipgloss.Style
	CardValue   func(c lipgloss.Color) lipgloss.Style
	ProgressOn  lipgloss.Style
	ProgressOff lipgloss.Style

	// Task rows
	Row          lipgloss.Style
	RowSelected  lipgloss.Style
	RowCompleted lipgloss.Style
	RowBusy      lipgloss.Style
	Checkbox     lipgloss.Style
	CheckboxDone lipgloss.Style
	Detail       lipgloss.Style

	// Badges
	PriorityBadge func(p domain.Priority) lipgloss.Style
	CategoryBadge func(c domain.Category) lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusMode    lipgloss.Style
	StatusHint    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusOffline lipgloss.Style

	// Overlays
	Overlay          lipgloss.Style
	OverlayTitle     lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemActive   lipgloss.Style
	MenuItemDisabled lipgloss.Style
	MenuKey          lipgloss.Style
	Separator        lipgloss.Style

	// Forms
	Label        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	ErrorText    lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(Mauve).
			Bold(true),

		DateHeader: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			Padding(0, 1),

		Muted: lipgloss.NewStyle().
			Foreground(Overlay1),

		Banner: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 2).
			Align(lipgloss.Center),

		CardLabel: lipgloss.NewStyle().
			Foreground(Subtext0),

		CardValue: func(c lipgloss.Color) lipgloss.Style {
			return lipgloss.NewStyle().
				Foreground(c).
				Bold(true)
		},

		ProgressOn: lipgloss.NewStyle().
			Foreground(Green),

		ProgressOff: lipgloss.NewStyle().
			Foreground(Surface1),

		Row: lipgloss.NewStyle().
			Foreground(Text).
			Padding(0, 1),

		RowSelected: lipgloss.NewStyle().
			Foreground(Text).
			Background(Surface0).
			Bold(true).
			Padding(0, 1),

		RowCompleted: lipgloss.NewStyle().
			Foreground(Overlay0).
			Strikethrough(true),

		RowBusy: lipgloss.NewStyle().
			Foreground(Yellow),

		Checkbox: lipgloss.NewStyle().
			Foreground(Overlay1),

		CheckboxDone: lipgloss.NewStyle().
			Foreground(Green).
			Bold(true),

		Detail: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderTop(false).
			BorderRight(false).
			BorderBottom(false).
			BorderForeground(Lavender).
			PaddingLeft(2).
			MarginLeft(4),

		PriorityBadge: func(p domain.Priority) lipgloss.Style {
			color, ok := PriorityColors[p]
			if !ok {
				color = PriorityColors[domain.PriorityMedium]
			}
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(color).
				Padding(0, 1).
				Bold(true)
		},

		CategoryBadge: func(c domain.Category) lipgloss.Style {
			color, ok := CategoryColors[c]
			if !ok {
				color = CategoryColors[domain.CategoryOther]
			}
			return lipgloss.NewStyle().
				Foreground(color).
				Background(Surface0).
				Padding(0, 1)
		},

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		StatusOffline: lipgloss.NewStyle().
			Background(Red).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(Overlay0),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		Label: lipgloss.NewStyle().
			Foreground(Subtext0),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Padding(0, 1),

		ErrorText: lipgloss.NewStyle().
			Foreground(Red),

		Button: lipgloss.NewStyle().
			Foreground(Subtext0).
			Background(Surface0).
			Padding(0, 2),

		ButtonActive: lipgloss.NewStyle().
			Foreground(Base).
			Background(Blue).
			Bold(true).
			Padding(0, 2),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}
