package tasklist

import (
	"errors"
	"testing"

	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanAdd(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		busy       Busy
		title      string
		wantErr    error
		wantNotice string
	}{
		{name: "valid", token: "tok", title: "  Team sync  "},
		{name: "blank title", token: "tok", title: "   ", wantErr: domain.ErrValidation, wantNotice: "Title required"},
		{name: "signed out", title: "x", wantErr: domain.ErrNotAuthenticated},
		{name: "busy", token: "tok", busy: Busy{Kind: BusyTask, ID: 1}, title: "x", wantErr: domain.ErrBusy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(may1)
			s.SignIn(tt.token)
			s.Busy = tt.busy

			m, err := s.PlanAdd(tt.title)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantNotice, RefusalNotice(err).Message)
				assert.Equal(t, tt.busy, s.Busy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, KindAdd, m.Kind)
			assert.Equal(t, domain.Task{
				Title:    "Team sync",
				TaskDate: "2024-05-01",
				Priority: domain.PriorityMedium,
				Category: domain.CategoryOther,
			}, m.Task)
			assert.Equal(t, Busy{Kind: BusyAdd}, s.Busy)
		})
	}
}

func TestPlanToggle(t *testing.T) {
	s := loaded(t)

	m, err := s.PlanToggle(2)

	require.NoError(t, err)
	assert.False(t, m.Task.Completed)
	assert.Equal(t, "Gym", m.Task.Title, "full record is sent")
	assert.True(t, s.Busy.Is(2))
	assert.True(t, s.Tasks[1].Completed, "no optimistic update")

	_, err = s.PlanToggle(1)
	assert.ErrorIs(t, err, domain.ErrBusy)

	s.Settle(m, nil)
	_, err = s.PlanToggle(99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Edits that would not change the stored value never produce a request.
func TestPlanners_NoChange(t *testing.T) {
	tests := []struct {
		name       string
		plan       func(s *State) (Mutation, error)
		wantNotice string
	}{
		{
			name: "rename to same title",
			plan: func(s *State) (Mutation, error) {
				s.StartEdit(1)
				s.EditDraft = "  Write report "
				return s.PlanRename()
			},
		},
		{
			name: "rename to blank",
			plan: func(s *State) (Mutation, error) {
				s.StartEdit(1)
				s.EditDraft = "   "
				return s.PlanRename()
			},
		},
		{
			name: "description unchanged after trim",
			plan: func(s *State) (Mutation, error) {
				s.SetDescriptionDraft(1, "   ")
				return s.PlanDescription(1)
			},
			wantNotice: "No changes",
		},
		{
			name: "same priority",
			plan: func(s *State) (Mutation, error) {
				return s.PlanPriority(1, domain.PriorityHigh)
			},
		},
		{
			name: "same category",
			plan: func(s *State) (Mutation, error) {
				return s.PlanCategory(2, domain.CategoryHealth)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loaded(t)

			m, err := tt.plan(s)

			require.ErrorIs(t, err, ErrNoChange)
			assert.Equal(t, Mutation{}, m)
			assert.False(t, s.Busy.Active())
			assert.Zero(t, s.Editing, "edit mode closes")
			assert.Equal(t, tt.wantNotice, RefusalNotice(err).Message)
		})
	}
}

func TestPlanners_Changes(t *testing.T) {
	tests := []struct {
		name   string
		plan   func(s *State) (Mutation, error)
		kind   Kind
		check  func(t *testing.T, task domain.Task)
		notice Notice
	}{
		{
			name: "rename",
			plan: func(s *State) (Mutation, error) {
				s.StartEdit(1)
				s.EditDraft = " Final report "
				return s.PlanRename()
			},
			kind:   KindRename,
			check:  func(t *testing.T, task domain.Task) { assert.Equal(t, "Final report", task.Title) },
			notice: Successf("Title saved"),
		},
		{
			name: "description",
			plan: func(s *State) (Mutation, error) {
				s.SetDescriptionDraft(1, "  draft v2\n")
				return s.PlanDescription(1)
			},
			kind:   KindDescription,
			check:  func(t *testing.T, task domain.Task) { assert.Equal(t, "draft v2", task.Description) },
			notice: Successf("Description saved"),
		},
		{
			name:   "priority",
			plan:   func(s *State) (Mutation, error) { return s.PlanPriority(1, domain.PriorityLow) },
			kind:   KindPriority,
			check:  func(t *testing.T, task domain.Task) { assert.Equal(t, domain.PriorityLow, task.Priority) },
			notice: Successf("Priority updated"),
		},
		{
			name:   "category",
			plan:   func(s *State) (Mutation, error) { return s.PlanCategory(1, domain.CategoryLearning) },
			kind:   KindCategory,
			check:  func(t *testing.T, task domain.Task) { assert.Equal(t, domain.CategoryLearning, task.Category) },
			notice: Successf("Category updated"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loaded(t)
			s.ToggleExpanded(1)

			m, err := tt.plan(s)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, m.Kind)
			assert.Equal(t, int64(1), m.Task.ID)
			assert.Equal(t, "2024-05-01", m.Task.TaskDate)
			tt.check(t, m.Task)

			refresh := s.Refresh
			notice := s.Settle(m, nil)

			assert.Equal(t, tt.notice, notice)
			assert.False(t, s.Busy.Active())
			assert.Equal(t, refresh+1, s.Refresh)
			assert.Zero(t, s.Editing)
			if tt.kind == KindDescription {
				assert.Zero(t, s.Expanded, "saving a description collapses the row")
			} else {
				assert.Equal(t, int64(1), s.Expanded)
			}
		})
	}
}

func TestPlanDelete(t *testing.T) {
	t.Run("requires confirmation", func(t *testing.T) {
		s := loaded(t)

		_, err := s.PlanDelete()

		assert.ErrorIs(t, err, ErrNotConfirmed)
		assert.False(t, s.Busy.Active())
	})

	t.Run("cancelled confirmation", func(t *testing.T) {
		s := loaded(t)
		require.True(t, s.RequestDelete(1))
		s.CancelDelete()

		_, err := s.PlanDelete()

		assert.ErrorIs(t, err, ErrNotConfirmed)
	})

	t.Run("unknown task cannot be confirmed", func(t *testing.T) {
		s := loaded(t)
		assert.False(t, s.RequestDelete(42))
		assert.Zero(t, s.ConfirmDelete)
	})

	t.Run("confirmed", func(t *testing.T) {
		s := loaded(t)
		require.True(t, s.RequestDelete(1))
		require.True(t, s.RequestDelete(2), "latest request replaces the target")

		m, err := s.PlanDelete()

		require.NoError(t, err)
		assert.Equal(t, KindDelete, m.Kind)
		assert.Equal(t, int64(2), m.Task.ID)
		assert.Zero(t, s.ConfirmDelete)
		assert.True(t, s.Busy.Is(2))
		assert.Equal(t, Warnf("Task deleted"), s.Settle(m, nil))
	})
}

func TestSettle_Failure(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		err  error
		want string
	}{
		{name: "add with server message", kind: KindAdd, err: &domain.APIError{Status: 400, Message: "Title is required"}, want: "Title is required"},
		{name: "add with status", kind: KindAdd, err: &domain.APIError{Status: 500}, want: "Server error (500)"},
		{name: "toggle fallback", kind: KindToggle, err: errors.New(""), want: "Update failed"},
		{name: "rename fallback", kind: KindRename, err: errors.New(""), want: "Save failed"},
		{name: "delete fallback", kind: KindDelete, err: errors.New(""), want: "Delete failed"},
		{name: "session expired", kind: KindPriority, err: &domain.APIError{Status: 403, Err: domain.ErrSessionExpired}, want: "Session expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loaded(t)
			s.Busy = Busy{Kind: BusyTask, ID: 1}
			refresh := s.Refresh

			notice := s.Settle(Mutation{Kind: tt.kind, Task: domain.Task{ID: 1}}, tt.err)

			assert.Equal(t, LevelError, notice.Level)
			assert.Equal(t, tt.want, notice.Message)
			assert.False(t, s.Busy.Active(), "busy marker is cleared on failure")
			assert.Equal(t, refresh, s.Refresh)
		})
	}
}

func TestSettle_AddClearsDraft(t *testing.T) {
	s := loaded(t)
	s.Suggest(func(n int) int { return n - 1 })
	require.Equal(t, "Plan goals", s.AddDraft)

	m, err := s.PlanAdd(s.AddDraft)
	require.NoError(t, err)

	assert.Equal(t, Successf("Task added"), s.Settle(m, nil))
	assert.Empty(t, s.AddDraft)
}
