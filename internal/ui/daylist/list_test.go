package daylist

import (
	"fmt"
	"strings"
	"testing"

	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
)

func createTestTasks(n int) []domain.Task {
	tasks := make([]domain.Task, n)
	for i := range tasks {
		tasks[i] = domain.Task{
			ID:       int64(i + 1),
			Title:    fmt.Sprintf("Task %d", i+1),
			TaskDate: "2024-05-01",
		}
	}
	return tasks
}

func lineWith(output, needle string) string {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	return ""
}

func TestSetCursor(t *testing.T) {
	lv := NewListView(createTestTasks(5), 80, 20)

	tests := []struct {
		name     string
		index    int
		expected int
	}{
		{"Normal position", 2, 2},
		{"Negative position", -1, 0},
		{"Beyond end", 10, 4},
		{"At end", 4, 4},
		{"Zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lv.SetCursor(tt.index)
			assert.Equal(t, tt.expected, lv.cursor)
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	lv := NewListView([]domain.Task{}, 80, 20)

	assert.Contains(t, lv.Render(), "No tasks")
}

func TestRenderRows(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, Title: "Write report", TaskDate: "2024-05-01", Priority: domain.PriorityHigh, Category: domain.CategoryWork},
		{ID: 2, Title: "Gym", Completed: true, TaskDate: "2024-05-01", Priority: domain.PriorityLow, Category: domain.CategoryHealth},
		{ID: 3, Title: "Bare", TaskDate: "2024-05-01"},
	}
	lv := NewListView(tasks, 80, 20)

	output := lv.Render()

	report := lineWith(output, "Write report")
	assert.Contains(t, report, "[ ]")
	assert.Contains(t, report, "high")
	assert.Contains(t, report, "Work")

	gym := lineWith(output, "Gym")
	assert.Contains(t, gym, "[x]")
	assert.Contains(t, gym, "Health")

	bare := lineWith(output, "Bare")
	assert.Contains(t, bare, "medium", "missing priority renders as the default")
	assert.Contains(t, bare, "Other")
}

func TestRenderCursor(t *testing.T) {
	lv := NewListView(createTestTasks(3), 80, 20)

	lv.SetCursor(1)
	output := lv.Render()

	assert.Contains(t, lineWith(output, "Task 2"), "▶")
	assert.NotContains(t, lineWith(output, "Task 1"), "▶")
}

func TestRenderBusy(t *testing.T) {
	lv := NewListView(createTestTasks(3), 80, 20)

	lv.SetBusy(3)
	output := lv.Render()

	assert.Contains(t, lineWith(output, "Task 3"), "⟳")
	assert.Equal(t, 1, strings.Count(output, "⟳"))
}

func TestRenderTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("very long title ", 10)
	lv := NewListView([]domain.Task{{ID: 1, Title: long, TaskDate: "2024-05-01"}}, 60, 20)

	output := lv.Render()

	assert.Contains(t, output, "…")
	assert.NotContains(t, output, long)
}

func TestRenderExpanded(t *testing.T) {
	tasks := createTestTasks(2)
	tasks[0].Description = "milk, eggs, coffee"
	lv := NewListView(tasks, 80, 20)

	lv.SetExpanded(1)
	output := lv.Render()

	assert.Contains(t, output, "milk, eggs, coffee")
	assert.Contains(t, output, "Pending • 2024-05-01 • #1")

	lv.SetExpanded(2)
	output = lv.Render()
	assert.Contains(t, output, "No description")
	assert.NotContains(t, output, "milk")
}

func TestRenderEditing(t *testing.T) {
	lv := NewListView(createTestTasks(2), 80, 20)

	lv.SetEditing(2, "> Renamed|")
	output := lv.Render()

	assert.Contains(t, output, "> Renamed|")
	assert.NotContains(t, output, "Task 2")
	assert.Contains(t, output, "Task 1")
}

func TestRenderWindowFollowsCursor(t *testing.T) {
	lv := NewListView(createTestTasks(20), 80, 5)

	lv.SetCursor(0)
	top := lv.Render()
	assert.Len(t, strings.Split(top, "\n"), 5)
	assert.Contains(t, top, "Task 1 ")

	lv.SetCursor(19)
	bottom := lv.Render()
	assert.Len(t, strings.Split(bottom, "\n"), 5)
	assert.Contains(t, bottom, "Task 20")
	assert.NotContains(t, bottom, "Task 1 ")
}

func TestWindow(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5"}

	tests := []struct {
		name      string
		top, rows int
		height    int
		want      []string
	}{
		{"fits", 0, 1, 10, lines},
		{"cursor at top", 0, 1, 3, []string{"0", "1", "2"}},
		{"cursor at bottom", 5, 1, 3, []string{"3", "4", "5"}},
		{"tall block keeps its first line", 1, 5, 3, []string{"1", "2", "3"}},
		{"no height", 3, 1, 0, lines},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window(lines, tt.top, tt.rows, tt.height))
		})
	}
}
