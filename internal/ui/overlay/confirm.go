package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"github.com/riordanpawley/daybook/internal/domain"
)

// DeleteDecisionMsg reports the answer to a delete confirmation
type DeleteDecisionMsg struct {
	TaskID    int64
	Confirmed bool
}

// ConfirmDialog asks whether a task should be deleted
type ConfirmDialog struct {
	task     domain.Task
	styles   *Styles
	selected bool // true = Yes, false = No
}

// NewConfirmDialog creates a delete confirmation for task
func NewConfirmDialog(task domain.Task) *ConfirmDialog {
	return &ConfirmDialog{
		task:     task,
		styles:   New(),
		selected: false,
	}
}

// TaskID returns the task awaiting confirmation
func (c *ConfirmDialog) TaskID() int64 {
	return c.task.ID
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return c, c.decide(true)
	case "n", "N", "esc":
		return c, c.decide(false)
	case "enter":
		return c, c.decide(c.selected)
	case "left", "h":
		c.selected = false
	case "right", "l", "tab":
		c.selected = true
	}
	return c, nil
}

func (c *ConfirmDialog) decide(yes bool) tea.Cmd {
	return tea.Batch(
		closeOverlay,
		emit(DeleteDecisionMsg{TaskID: c.task.ID, Confirmed: yes}),
	)
}

// Message is the question shown above the buttons
func (c *ConfirmDialog) Message() string {
	return fmt.Sprintf("Delete %q? This cannot be undone.", c.task.Title)
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	b.WriteString(c.styles.MenuItem.Render(wordwrap.String(c.Message(), 52)))
	b.WriteString("\n\n")

	yesStyle := c.styles.MenuItem
	noStyle := c.styles.MenuItem
	if c.selected {
		yesStyle = c.styles.MenuItemActive
	} else {
		noStyle = c.styles.MenuItemActive
	}
	b.WriteString(yesStyle.Render("[Y] Delete"))
	b.WriteString("    ")
	b.WriteString(noStyle.Render("[N] Keep"))
	b.WriteString("\n")

	b.WriteString(c.styles.Footer.Render("← → / Tab: Switch • Enter: Confirm • Esc: Cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return "Delete Task"
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	lines := len(strings.Split(wordwrap.String(c.Message(), 52), "\n"))
	return 60, lines + 6
}
