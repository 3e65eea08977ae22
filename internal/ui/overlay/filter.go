package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/daybook/internal/domain"
)

// StatusFilterMsg selects a status filter
type StatusFilterMsg struct {
	Status domain.StatusFilter
}

// ClearFilterMsg resets search text and status
type ClearFilterMsg struct{}

type statusOption struct {
	key    string
	status domain.StatusFilter
	label  string
}

var statusOptions = []statusOption{
	{"a", domain.StatusAll, "All tasks"},
	{"p", domain.StatusPending, "Pending"},
	{"c", domain.StatusCompleted, "Completed"},
}

// FilterMenu picks the status filter
type FilterMenu struct {
	current domain.StatusFilter
	query   string
	cursor  int
	styles  *Styles
}

// NewFilterMenu opens the menu on the active filter
func NewFilterMenu(filter domain.Filter) *FilterMenu {
	m := &FilterMenu{
		current: filter.Status,
		query:   strings.TrimSpace(filter.Query),
		styles:  New(),
	}
	for i, opt := range statusOptions {
		if opt.status == filter.Status {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu
func (m *FilterMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *FilterMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "f":
		return m, closeOverlay
	case "j", "down":
		m.cursor = (m.cursor + 1) % len(statusOptions)
		return m, nil
	case "k", "up":
		m.cursor = (m.cursor + len(statusOptions) - 1) % len(statusOptions)
		return m, nil
	case "enter":
		return m, m.choose(statusOptions[m.cursor].status)
	case "x":
		return m, tea.Batch(emit(ClearFilterMsg{}), closeOverlay)
	}

	for _, opt := range statusOptions {
		if keyMsg.String() == opt.key {
			return m, m.choose(opt.status)
		}
	}
	return m, nil
}

func (m *FilterMenu) choose(status domain.StatusFilter) tea.Cmd {
	m.current = status
	return tea.Batch(emit(StatusFilterMsg{Status: status}), closeOverlay)
}

// View renders the menu
func (m *FilterMenu) View() string {
	var b strings.Builder

	b.WriteString(m.styles.MenuHeader.Render("Status"))
	b.WriteString("\n")
	for i, opt := range statusOptions {
		marker := "○"
		if opt.status == m.current {
			marker = "●"
		}
		style := m.styles.MenuItem
		if i == m.cursor {
			style = m.styles.MenuItemActive
		}
		b.WriteString(fmt.Sprintf("  %s %s\n",
			m.styles.MenuKey.Render(opt.key),
			style.Render(marker+" "+opt.label)))
	}

	b.WriteString("\n")
	search := "none"
	if m.query != "" {
		search = fmt.Sprintf("%q", m.query)
	}
	b.WriteString(m.styles.MenuItemDisabled.Render("Search: " + search))
	b.WriteString("\n")
	b.WriteString(m.styles.Separator.Render(strings.Repeat("─", 36)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s",
		m.styles.MenuKey.Render("x"),
		m.styles.MenuItem.Render("Clear search and status")))
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("j/k: Move • Enter: Select • Esc: Close"))

	return b.String()
}

// Title returns the menu title
func (m *FilterMenu) Title() string {
	return "Filter"
}

// Size returns the menu dimensions
func (m *FilterMenu) Size() (width, height int) {
	return 44, 14
}
