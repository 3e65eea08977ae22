package overlay

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AddDraftMsg reports the add form's title after every edit
type AddDraftMsg struct {
	Title string
}

// AddTaskMsg asks the app to create a task. The form stays open until the
// app accepts the title and closes it.
type AddTaskMsg struct {
	Title string
}

// SuggestedMsg reports that a canned title was filled in
type SuggestedMsg struct {
	Title string
}

// AddTaskOverlay is the form for adding a task to the selected day
type AddTaskOverlay struct {
	title   textinput.Model
	date    time.Time
	suggest func() string
	styles  *Styles
}

// NewAddTaskOverlay opens the add form with the saved draft. suggest
// returns a canned title for ctrl+r.
func NewAddTaskOverlay(draft string, date time.Time, suggest func() string) *AddTaskOverlay {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 200
	ti.Width = 48
	ti.SetValue(draft)
	ti.CursorEnd()
	ti.Focus()

	return &AddTaskOverlay{
		title:   ti,
		date:    date,
		suggest: suggest,
		styles:  New(),
	}
}

// Value returns the current title text
func (c *AddTaskOverlay) Value() string {
	return c.title.Value()
}

// Init initializes the overlay
func (c *AddTaskOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (c *AddTaskOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return c, closeOverlay
		case "enter", "ctrl+s":
			return c, emit(AddTaskMsg{Title: c.title.Value()})
		case "ctrl+r":
			if c.suggest == nil {
				return c, nil
			}
			picked := c.suggest()
			c.title.SetValue(picked)
			c.title.CursorEnd()
			return c, tea.Batch(
				emit(AddDraftMsg{Title: picked}),
				emit(SuggestedMsg{Title: picked}),
			)
		}
	}

	prev := c.title.Value()
	var cmd tea.Cmd
	c.title, cmd = c.title.Update(msg)
	if c.title.Value() != prev {
		return c, tea.Batch(cmd, emit(AddDraftMsg{Title: c.title.Value()}))
	}
	return c, cmd
}

// View renders the form
func (c *AddTaskOverlay) View() string {
	var b strings.Builder

	b.WriteString(c.styles.MenuHeader.Render("Adding to " + c.date.Format("Mon, Jan 2 2006")))
	b.WriteString("\n\n")
	b.WriteString(c.styles.LabelFocused.Render("Title:"))
	b.WriteString(c.title.View())
	b.WriteString("\n\n")
	b.WriteString(c.styles.Separator.Render(strings.Repeat("─", 56)))
	b.WriteString("\n")

	hints := []string{
		c.styles.MenuKey.Render("Enter") + " " + c.styles.Footer.Render("Add"),
		c.styles.MenuKey.Render("Ctrl+R") + " " + c.styles.Footer.Render("Suggest"),
		c.styles.MenuKey.Render("Esc") + " " + c.styles.Footer.Render("Cancel"),
	}
	b.WriteString(c.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

// Title returns the overlay title
func (c *AddTaskOverlay) Title() string {
	return "Add Task"
}

// Size returns the overlay dimensions
func (c *AddTaskOverlay) Size() (width, height int) {
	return 64, 11
}
