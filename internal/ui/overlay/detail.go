package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/riordanpawley/daybook/internal/ui/markdown"
)

// DescriptionDraftMsg reports the description text after every edit
type DescriptionDraftMsg struct {
	TaskID int64
	Text   string
}

// SaveDescriptionMsg asks the app to save the description draft
type SaveDescriptionMsg struct {
	TaskID int64
}

// PriorityChangeMsg asks the app to store a new priority
type PriorityChangeMsg struct {
	TaskID   int64
	Priority domain.Priority
}

// CategoryChangeMsg asks the app to store a new category
type CategoryChangeMsg struct {
	TaskID   int64
	Category domain.Category
}

type detailField int

const (
	fieldDescription detailField = iota
	fieldPriority
	fieldCategory
	fieldCount
)

const previewWidth = 56

// DetailEditor edits a task's description, priority and category
type DetailEditor struct {
	task        domain.Task
	description textarea.Model
	priority    domain.Priority
	category    domain.Category
	focus       detailField
	busy        bool
	styles      *Styles
}

// NewDetailEditor opens the editor for task with the current drafts
func NewDetailEditor(task domain.Task, draft string, priority domain.Priority, category domain.Category) *DetailEditor {
	ta := textarea.New()
	ta.Placeholder = "Notes, links, checklists (markdown)..."
	ta.CharLimit = domain.MaxDescriptionLength
	ta.ShowLineNumbers = false
	ta.SetWidth(previewWidth)
	ta.SetHeight(6)
	ta.SetValue(draft)
	ta.Focus()

	return &DetailEditor{
		task:        task.Normalize(),
		description: ta,
		priority:    priority,
		category:    category,
		focus:       fieldDescription,
		styles:      New(),
	}
}

// TaskID returns the task being edited
func (d *DetailEditor) TaskID() int64 {
	return d.task.ID
}

// Sync replaces the shown values after a refetch or save. The textarea is
// only reset when draft differs so the cursor stays put while typing.
func (d *DetailEditor) Sync(task domain.Task, draft string, priority domain.Priority, category domain.Category) {
	d.task = task.Normalize()
	if d.description.Value() != draft {
		d.description.SetValue(draft)
	}
	d.priority = priority
	d.category = category
}

// SetBusy marks a save of this task as in flight
func (d *DetailEditor) SetBusy(busy bool) {
	d.busy = busy
}

// Init initializes the editor
func (d *DetailEditor) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (d *DetailEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return d, closeOverlay
		case "ctrl+s":
			return d, emit(SaveDescriptionMsg{TaskID: d.task.ID})
		case "tab":
			d.setFocus((d.focus + 1) % fieldCount)
			return d, nil
		case "shift+tab":
			d.setFocus((d.focus + fieldCount - 1) % fieldCount)
			return d, nil
		}

		switch d.focus {
		case fieldPriority:
			return d, d.cyclePriority(keyMsg.String())
		case fieldCategory:
			return d, d.cycleCategory(keyMsg.String())
		}
	}

	if d.focus != fieldDescription {
		return d, nil
	}

	prev := d.description.Value()
	var cmd tea.Cmd
	d.description, cmd = d.description.Update(msg)
	if d.description.Value() != prev {
		return d, tea.Batch(cmd, emit(DescriptionDraftMsg{TaskID: d.task.ID, Text: d.description.Value()}))
	}
	return d, cmd
}

func (d *DetailEditor) setFocus(f detailField) {
	d.focus = f
	if f == fieldDescription {
		d.description.Focus()
	} else {
		d.description.Blur()
	}
}

func (d *DetailEditor) cyclePriority(key string) tea.Cmd {
	switch key {
	case "right", "l", " ":
		d.priority = d.priority.Next()
	case "left", "h":
		d.priority = d.priority.Prev()
	default:
		return nil
	}
	return emit(PriorityChangeMsg{TaskID: d.task.ID, Priority: d.priority})
}

func (d *DetailEditor) cycleCategory(key string) tea.Cmd {
	switch key {
	case "right", "l", " ":
		d.category = d.category.Next()
	case "left", "h":
		d.category = d.category.Prev()
	default:
		return nil
	}
	return emit(CategoryChangeMsg{TaskID: d.task.ID, Category: d.category})
}

func (d *DetailEditor) label(f detailField, text string) string {
	if d.focus == f {
		return d.styles.LabelFocused.Render(text)
	}
	return d.styles.Label.Render(text)
}

// View renders the editor
func (d *DetailEditor) View() string {
	var b strings.Builder

	b.WriteString(d.styles.MenuHeader.Render(d.task.Title))
	b.WriteString("\n")
	b.WriteString(d.styles.MenuItemDisabled.Render(d.task.StatusLabel() + " • " + d.task.TaskDate))
	b.WriteString("\n\n")

	b.WriteString(d.label(fieldPriority, "Priority:"))
	b.WriteString(d.styles.PriorityBadge(d.priority).Render(d.priority.String()))
	b.WriteString("\n")
	b.WriteString(d.label(fieldCategory, "Category:"))
	b.WriteString(d.styles.CategoryBadge(d.category).Render(d.category.String()))
	b.WriteString("\n\n")

	count := fmt.Sprintf("%d/%d", len([]rune(d.description.Value())), domain.MaxDescriptionLength)
	b.WriteString(d.label(fieldDescription, "Description:"))
	b.WriteString(d.styles.MenuItemDisabled.Render(count))
	b.WriteString("\n")

	if d.focus == fieldDescription {
		b.WriteString(d.description.View())
	} else if preview := markdown.Render(previewWidth, d.description.Value()); preview != "" {
		b.WriteString(d.styles.Preview.Render(preview))
	} else {
		b.WriteString(d.styles.MenuItemDisabled.Render("No description"))
	}
	b.WriteString("\n")

	if d.busy {
		b.WriteString(d.styles.MenuKey.Render("Saving…"))
		b.WriteString("\n")
	}

	hints := []string{
		d.styles.MenuKey.Render("Tab") + " " + d.styles.Footer.Render("Field"),
		d.styles.MenuKey.Render("←/→") + " " + d.styles.Footer.Render("Change"),
		d.styles.MenuKey.Render("Ctrl+S") + " " + d.styles.Footer.Render("Save description"),
		d.styles.MenuKey.Render("Esc") + " " + d.styles.Footer.Render("Close"),
	}
	b.WriteString(d.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

// Title returns the overlay title
func (d *DetailEditor) Title() string {
	return "Task Details"
}

// Size returns the overlay dimensions
func (d *DetailEditor) Size() (width, height int) {
	return 66, 22
}
