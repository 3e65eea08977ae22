// Package daylist renders the tasks of one day as a scrolling list.
package daylist

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/riordanpawley/daybook/internal/ui/markdown"
	"github.com/riordanpawley/daybook/internal/ui/styles"
)

// badge columns: "[medium]" and "[Learning]" plus padding
const (
	priorityWidth = 10
	categoryWidth = 12
	prefixWidth   = 8
)

// ListView renders the visible tasks with the cursor, busy marker,
// expanded detail panel and inline title editor.
type ListView struct {
	tasks    []domain.Task
	cursor   int
	busy     int64
	expanded int64
	editing  int64
	editView string
	styles   *styles.Styles
	width    int
	height   int
}

// NewListView creates a ListView with the given tasks and dimensions
func NewListView(tasks []domain.Task, width, height int) *ListView {
	return &ListView{
		tasks:  tasks,
		styles: styles.New(),
		width:  width,
		height: height,
	}
}

// SetCursor sets the cursor position, clamped to the list
func (lv *ListView) SetCursor(index int) {
	switch {
	case index < 0:
		lv.cursor = 0
	case index >= len(lv.tasks):
		lv.cursor = max(0, len(lv.tasks)-1)
	default:
		lv.cursor = index
	}
}

// SetBusy marks task id as having a request in flight, 0 for none
func (lv *ListView) SetBusy(id int64) {
	lv.busy = id
}

// SetExpanded opens the detail panel under task id, 0 for none
func (lv *ListView) SetExpanded(id int64) {
	lv.expanded = id
}

// SetEditing replaces the title of task id with an input view
func (lv *ListView) SetEditing(id int64, inputView string) {
	lv.editing = id
	lv.editView = inputView
}

// Render renders the visible window of the list
func (lv *ListView) Render() string {
	if len(lv.tasks) == 0 {
		return lv.styles.Muted.Render("  No tasks to display")
	}

	var (
		lines      []string
		cursorTop  int
		cursorRows int
	)
	for i, task := range lv.tasks {
		block := lv.renderTask(i, task)
		if i == lv.cursor {
			cursorTop = len(lines)
			cursorRows = len(block)
		}
		lines = append(lines, block...)
	}

	return strings.Join(window(lines, cursorTop, cursorRows, lv.height), "\n")
}

// window picks height lines that keep the cursor block in view
func window(lines []string, top, rows, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	offset := 0
	if top+rows > height {
		offset = top + rows - height
	}
	if offset > top {
		offset = top
	}
	return lines[offset:min(offset+height, len(lines))]
}

func (lv *ListView) renderTask(index int, task domain.Task) []string {
	task = task.Normalize()
	rows := []string{lv.renderRow(index, task)}
	if task.ID == lv.expanded {
		rows = append(rows, strings.Split(lv.renderDetail(task), "\n")...)
	}
	return rows
}

func (lv *ListView) renderRow(index int, task domain.Task) string {
	isActive := index == lv.cursor

	indicator := "  "
	if isActive {
		indicator = "▶ "
	}

	box := lv.styles.Checkbox.Render("[ ]")
	if task.Completed {
		box = lv.styles.CheckboxDone.Render("[x]")
	}

	titleWidth := max(10, lv.width-prefixWidth-priorityWidth-categoryWidth-2)
	var title string
	switch {
	case task.ID == lv.editing:
		title = lipgloss.NewStyle().Width(titleWidth).Render(lv.editView)
	default:
		rowStyle := lv.styles.Row
		if task.Completed {
			rowStyle = lv.styles.RowCompleted
		}
		if isActive {
			rowStyle = lv.styles.RowSelected
		}
		text := truncate.StringWithTail(task.Title, uint(max(1, titleWidth-2)), "…")
		title = rowStyle.Width(titleWidth).Render(text)
	}

	marker := " "
	if task.ID == lv.busy {
		marker = lv.styles.RowBusy.Render("⟳")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		indicator,
		box,
		" ",
		title,
		lipgloss.NewStyle().Width(priorityWidth).Render(lv.styles.PriorityBadge(task.Priority).Render(task.Priority.String())),
		lipgloss.NewStyle().Width(categoryWidth).Render(lv.styles.CategoryBadge(task.Category).Render(task.Category.String())),
		" ",
		marker,
	)
}

func (lv *ListView) renderDetail(task domain.Task) string {
	inner := max(20, lv.width-10)

	var b strings.Builder
	b.WriteString(lv.styles.Muted.Render(task.StatusLabel() + " • " + task.TaskDate + " • #" + strconv.FormatInt(task.ID, 10)))
	b.WriteString("\n")
	if desc := markdown.Render(inner, task.Description); desc != "" {
		b.WriteString(desc)
	} else {
		b.WriteString(lv.styles.Muted.Render("No description. Press e to add one."))
	}
	return lv.styles.Detail.Render(b.String())
}
