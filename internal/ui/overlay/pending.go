package overlay

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/daybook/internal/domain"
)

const pendingRows = 10

// PendingDatesOverlay lists the days that still have unfinished tasks
type PendingDatesOverlay struct {
	dates    []string
	selected string
	cursor   int
	offset   int
	styles   *Styles
}

// NewPendingDatesOverlay lists dates, highlighting the selected day
func NewPendingDatesOverlay(dates []string, selected time.Time) *PendingDatesOverlay {
	o := &PendingDatesOverlay{
		dates:    dates,
		selected: domain.FormatDate(selected),
		styles:   New(),
	}
	for i, d := range dates {
		if d == o.selected {
			o.cursor = i
		}
	}
	o.scrollToCursor()
	return o
}

// Init initializes the overlay
func (o *PendingDatesOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (o *PendingDatesOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "G":
		return o, closeOverlay
	case "j", "down":
		if o.cursor < len(o.dates)-1 {
			o.cursor++
		}
	case "k", "up":
		if o.cursor > 0 {
			o.cursor--
		}
	case "enter":
		if len(o.dates) == 0 {
			return o, closeOverlay
		}
		date, err := domain.ParseDate(o.dates[o.cursor])
		if err != nil {
			return o, nil
		}
		return o, tea.Batch(emit(DateSelectedMsg{Date: date}), closeOverlay)
	}
	o.scrollToCursor()
	return o, nil
}

func (o *PendingDatesOverlay) scrollToCursor() {
	if o.cursor < o.offset {
		o.offset = o.cursor
	}
	if o.cursor >= o.offset+pendingRows {
		o.offset = o.cursor - pendingRows + 1
	}
}

// View renders the list
func (o *PendingDatesOverlay) View() string {
	if len(o.dates) == 0 {
		return o.styles.MenuItemDisabled.Render("No pending tasks on any day") + "\n" +
			o.styles.Footer.Render("Esc: Close")
	}

	var b strings.Builder
	end := min(o.offset+pendingRows, len(o.dates))
	for i := o.offset; i < end; i++ {
		raw := o.dates[i]
		label := raw
		if d, err := domain.ParseDate(raw); err == nil {
			label = d.Format("Mon Jan 2, 2006")
		}
		if raw == o.selected {
			label += " (viewing)"
		}

		prefix := "  "
		style := o.styles.MenuItem
		if i == o.cursor {
			prefix = "▶ "
			style = o.styles.MenuItemActive
		}
		b.WriteString(prefix + style.Render(label) + "\n")
	}
	if len(o.dates) > pendingRows {
		b.WriteString(o.styles.MenuItemDisabled.Render(fmt.Sprintf("  %d-%d of %d days", o.offset+1, end, len(o.dates))))
		b.WriteString("\n")
	}
	b.WriteString(o.styles.Footer.Render("j/k: Move • Enter: Open day • Esc: Close"))
	return b.String()
}

// Title returns the overlay title
func (o *PendingDatesOverlay) Title() string {
	return "Pending Days"
}

// Size returns the overlay dimensions
func (o *PendingDatesOverlay) Size() (width, height int) {
	return 44, min(len(o.dates), pendingRows) + 8
}
