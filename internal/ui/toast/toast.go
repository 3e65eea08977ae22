// Package toast renders transient notifications.
package toast

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/daybook/internal/types"
	"github.com/riordanpawley/daybook/internal/ui/styles"
)

// MaxVisible caps how many toasts are stacked at once; older ones are hidden
const MaxVisible = 4

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles *styles.Styles
}

// New creates a new ToastRenderer with the given styles
func New(styles *styles.Styles) *ToastRenderer {
	return &ToastRenderer{
		styles: styles,
	}
}

// Render stacks the newest toasts right-aligned.
// Returns empty string if no toasts to display
func (r *ToastRenderer) Render(toasts []types.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	if len(toasts) > MaxVisible {
		toasts = toasts[len(toasts)-MaxVisible:]
	}

	toastWidth := width / 3
	if toastWidth > 48 {
		toastWidth = 48
	}
	if toastWidth < 20 {
		toastWidth = 20
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := r.styleForLevel(t.Level)
		rendered = append(rendered, style.Width(toastWidth).Render(t.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// styleForLevel returns the appropriate style for a toast level
func (r *ToastRenderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}
