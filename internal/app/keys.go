package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/daybook/internal/types"
	"github.com/riordanpawley/daybook/internal/ui/overlay"
)

// handleOverlayKey routes keys to the top overlay
func (m Model) handleOverlayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	cmd := m.overlayStack.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case types.ModeEdit:
		return m.handleEditMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode processes keyboard input in normal mode
func (m Model) handleNormalMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := m.state

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "ctrl+l":
		return m, tea.ClearScreen
	case "ctrl+o":
		m.signOut("Signed out")
		m.addToast(types.ToastInfo, "Signed out")
		return m, nil

	// Vertical navigation
	case "j", "down":
		s.MoveCursor(1)
	case "k", "up":
		s.MoveCursor(-1)

	// Days
	case "[", "h", "left":
		s.ShiftDate(-1)
	case "]", "l", "right":
		s.ShiftDate(1)
	case "t":
		s.SelectDate(m.now())
	case "g":
		return m, m.overlayStack.Push(overlay.NewDateOverlay(s.Date))
	case "G":
		return m, m.overlayStack.Push(overlay.NewPendingDatesOverlay(s.PendingDates, s.Date))

	// Tasks
	case "a":
		suggest := func() string { return s.Suggest(m.pick) }
		return m, m.overlayStack.Push(overlay.NewAddTaskOverlay(s.AddDraft, s.Date, suggest))
	case "x", " ":
		if task, ok := s.Selected(); ok {
			return m, m.perform(s.PlanToggle(task.ID))
		}
	case "enter":
		if task, ok := s.Selected(); ok {
			s.ToggleExpanded(task.ID)
		}
	case "e":
		if task, ok := s.Selected(); ok {
			ed := overlay.NewDetailEditor(task, s.DescriptionDrafts[task.ID], s.PriorityDrafts[task.ID], s.CategoryDrafts[task.ID])
			ed.SetBusy(s.Busy.Is(task.ID))
			return m, m.overlayStack.Push(ed)
		}
	case "i":
		if task, ok := s.Selected(); ok && s.StartEdit(task.ID) {
			m.mode = types.ModeEdit
			m.editInput.SetValue(s.EditDraft)
			m.editInput.CursorEnd()
			return m, m.editInput.Focus()
		}
	case "p", "P":
		if task, ok := s.Selected(); ok {
			p := task.Normalize().Priority.Next()
			if msg.String() == "P" {
				p = task.Normalize().Priority.Prev()
			}
			return m, m.perform(s.PlanPriority(task.ID, p))
		}
	case "c", "C":
		if task, ok := s.Selected(); ok {
			c := task.Normalize().Category.Next()
			if msg.String() == "C" {
				c = task.Normalize().Category.Prev()
			}
			return m, m.perform(s.PlanCategory(task.ID, c))
		}
	case "d":
		if task, ok := s.Selected(); ok && s.RequestDelete(task.ID) {
			return m, m.overlayStack.Push(overlay.NewConfirmDialog(task))
		}

	// View
	case "/":
		so := overlay.NewSearchOverlay(s.Filter.Query)
		so.SetMatchCount(len(s.Visible()), len(s.Tasks))
		return m, m.overlayStack.Push(so)
	case "f":
		return m, m.overlayStack.Push(overlay.NewFilterMenu(*s.Filter))
	case "esc":
		if s.Filter.IsActive() {
			s.ClearFilter()
		} else {
			s.ToggleExpanded(s.Expanded)
		}
	case "r":
		s.Retry()
	case "E":
		return m, m.exportCmd()
	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay())
	}

	return m, nil
}

// handleEditMode drives the inline title editor
func (m Model) handleEditMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state.CancelEdit()
		m.leaveEdit()
		return m, nil
	case "enter":
		m.state.EditDraft = m.editInput.Value()
		cmd := m.perform(m.state.PlanRename())
		// a refused save that left the editor open stays in edit mode
		if cmd != nil || m.state.Editing == 0 {
			m.leaveEdit()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.state.EditDraft = m.editInput.Value()
	return m, cmd
}

func (m *Model) leaveEdit() {
	m.mode = types.ModeNormal
	m.editInput.Blur()
}
