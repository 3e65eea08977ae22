package overlay

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/daybook/internal/domain"
)

// DateSelectedMsg switches the task view to another day
type DateSelectedMsg struct {
	Date time.Time
}

// DateOverlay asks for a date to jump to
type DateOverlay struct {
	input  textinput.Model
	err    string
	styles *Styles
}

// NewDateOverlay opens the date prompt on current
func NewDateOverlay(current time.Time) *DateOverlay {
	ti := textinput.New()
	ti.Placeholder = domain.DateLayout
	ti.CharLimit = len(domain.DateLayout)
	ti.Width = 12
	ti.SetValue(domain.FormatDate(current))
	ti.CursorEnd()
	ti.Focus()

	return &DateOverlay{input: ti, styles: New()}
}

// Init initializes the overlay
func (d *DateOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (d *DateOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return d, closeOverlay
		case "enter":
			date, err := domain.ParseDate(d.input.Value())
			if err != nil {
				d.err = "Use YYYY-MM-DD, e.g. 2024-05-01"
				return d, nil
			}
			return d, tea.Batch(emit(DateSelectedMsg{Date: date}), closeOverlay)
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

// View renders the prompt
func (d *DateOverlay) View() string {
	var b strings.Builder
	b.WriteString(d.styles.LabelFocused.Render("Date:"))
	b.WriteString(d.input.View())
	b.WriteString("\n")
	if d.err != "" {
		b.WriteString(d.styles.Error.Render(d.err))
		b.WriteString("\n")
	}
	b.WriteString(d.styles.Footer.Render("Enter: Go • Esc: Cancel"))
	return b.String()
}

// Title returns the overlay title
func (d *DateOverlay) Title() string {
	return "Go to Date"
}

// Size returns the overlay dimensions
func (d *DateOverlay) Size() (width, height int) {
	return 40, 8
}
