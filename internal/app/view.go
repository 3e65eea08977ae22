package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/daybook/internal/core/tasklist"
	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/riordanpawley/daybook/internal/types"
	"github.com/riordanpawley/daybook/internal/ui/dashboard"
	"github.com/riordanpawley/daybook/internal/ui/daylist"
	"github.com/riordanpawley/daybook/internal/ui/overlay"
	"github.com/riordanpawley/daybook/internal/ui/statusbar"
	"github.com/riordanpawley/daybook/internal/ui/toast"
)

// View renders the current screen. The result never exceeds the terminal
// height.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	toasts := m.renderToasts()
	height := m.height - lipgloss.Height(toasts)
	if toasts == "" {
		height = m.height
	}

	var view string
	if m.screen == ScreenAuth {
		view = lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, m.auth.View())
	} else {
		view = m.renderTaskScreen(height)
	}
	view = clip(view, height)

	if toasts != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, toasts)
	}
	return view
}

// renderTaskScreen lays out the day view and status bar in height lines
func (m Model) renderTaskScreen(height int) string {
	bar := m.renderStatusBar()
	bodyHeight := height - lipgloss.Height(bar)

	var searchBar string
	if current := m.overlayStack.Current(); current != nil {
		overlayWidth, _ := current.Size()

		// width 0 means a full-width bar above the status line
		if overlayWidth == 0 {
			searchBar = current.View()
			bodyHeight -= lipgloss.Height(searchBar)
		} else {
			// Centered modal overlay with border and title
			overlayView := current.View()
			if title := current.Title(); title != "" {
				titleView := m.styles.OverlayTitle.Render(title)
				overlayView = lipgloss.JoinVertical(lipgloss.Left, titleView, overlayView)
			}
			overlayView = m.styles.Overlay.
				Width(overlayWidth).
				MaxHeight(bodyHeight).
				Render(overlayView)

			body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, overlayView)
			return lipgloss.JoinVertical(lipgloss.Left, clip(body, bodyHeight), bar)
		}
	}

	parts := []string{clip(m.renderBody(bodyHeight), bodyHeight)}
	if searchBar != "" {
		parts = append(parts, searchBar)
	}
	parts = append(parts, bar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderBody draws header, error banner, dashboard, summary and list
func (m Model) renderBody(height int) string {
	s := m.state

	header := m.styles.Header.Render("daybook") +
		m.styles.DateHeader.Render(s.Date.Format("Monday, January 2 2006"))
	if m.username != "" {
		header += m.styles.Muted.Render("· " + m.username)
	}

	sections := []string{header}
	if s.FetchError != "" {
		sections = append(sections, m.styles.Banner.Render(s.FetchError+"  (r to retry)"))
	}
	sections = append(sections,
		dashboard.New(s.Analytics, s.PendingDates, s.DateString(), m.width, m.styles).Render(),
		m.renderSummary(),
	)
	top := strings.Join(sections, "\n")

	listHeight := max(height-lipgloss.Height(top), 1)
	lv := daylist.NewListView(s.Visible(), m.width, listHeight)
	lv.SetCursor(s.Cursor)
	if s.Busy.Kind == tasklist.BusyTask {
		lv.SetBusy(s.Busy.ID)
	}
	lv.SetExpanded(s.Expanded)
	if m.mode == types.ModeEdit && s.Editing != 0 {
		lv.SetEditing(s.Editing, m.editInput.View())
	}

	return top + "\n" + lv.Render()
}

func (m Model) renderSummary() string {
	line := m.styles.Muted.Render(m.state.SummaryLine())
	switch {
	case m.state.Loading:
		line += "  " + m.spinner.View() + m.styles.Muted.Render(" Loading...")
	case m.state.Busy.Kind == tasklist.BusyAdd:
		line += "  " + m.spinner.View() + m.styles.Muted.Render(" Adding...")
	}
	return line
}

func (m Model) renderStatusBar() string {
	return statusbar.New(m.statusMode(), m.width, m.styles).
		WithOffline(!m.isOnline).
		WithInfo(filterInfo(m.state.Filter)).
		Render()
}

// statusMode derives the badge from the top overlay and the edit state
func (m Model) statusMode() types.Mode {
	switch m.overlayStack.Current().(type) {
	case *overlay.SearchOverlay:
		return types.ModeSearch
	case *overlay.ConfirmDialog:
		return types.ModeConfirm
	}
	return m.mode
}

func filterInfo(f *domain.Filter) string {
	if !f.IsActive() {
		return ""
	}
	var parts []string
	if f.Status != domain.StatusAll && f.Status != "" {
		parts = append(parts, f.Status.String())
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("%q", q))
	}
	return "filter: " + strings.Join(parts, " ")
}

// renderToasts stacks toasts in the bottom-right corner
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	view := toast.New(m.styles).Render(m.toasts, m.width)
	if view == "" {
		return ""
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, view)
}

// clip cuts s to at most height lines
func clip(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
