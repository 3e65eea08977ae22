// Package statusbar renders the one-line footer of the task view.
package statusbar

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/daybook/internal/types"
	"github.com/riordanpawley/daybook/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode    types.Mode
	width   int
	styles  *styles.Styles
	offline bool
	info    string
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithOffline marks the backend as unreachable
func (sb StatusBar) WithOffline(offline bool) StatusBar {
	sb.offline = offline
	return sb
}

// WithInfo sets the right-aligned text, e.g. the filter summary
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	hints := GetHints(sb.mode)
	left := modeBadge
	if hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		left = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, sb.styles.StatusHint.Render(hints))
	}

	var right string
	if sb.info != "" {
		right = sb.styles.StatusInfo.Render(sb.info)
	}
	if sb.offline {
		badge := sb.styles.StatusOffline.Render("OFFLINE")
		if right != "" {
			right = lipgloss.JoinHorizontal(lipgloss.Left, right, " ", badge)
		} else {
			right = badge
		}
	}

	content := left
	if right != "" {
		// status bar padding takes 2 columns
		gap := sb.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
		if gap < 1 {
			gap = 1
		}
		content = lipgloss.JoinHorizontal(lipgloss.Left, left, lipgloss.NewStyle().Width(gap).Render(""), right)
	}

	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
