package tasklist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/riordanpawley/daybook/internal/services/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var may1 = time.Date(2024, 5, 1, 15, 30, 0, 0, time.Local)

func scenarioSnapshot() fetch.Snapshot {
	return fetch.Snapshot{
		Date: "2024-05-01",
		Tasks: []domain.Task{
			{ID: 1, Title: "Write report", TaskDate: "2024-05-01", Priority: domain.PriorityHigh, Category: domain.CategoryWork},
			{ID: 2, Title: "Gym", Completed: true, TaskDate: "2024-05-01", Priority: domain.PriorityLow, Category: domain.CategoryHealth},
		},
		Analytics:    domain.Analytics{Total: 2, Completed: 1, Pending: 1},
		PendingDates: []string{"2024-05-01"},
	}
}

// loaded returns a signed-in state with the scenario day applied
func loaded(t *testing.T) *State {
	t.Helper()
	s := New(may1)
	s.SignIn("tok")
	s.ApplySnapshot(scenarioSnapshot())
	return s
}

func TestState_Scenario(t *testing.T) {
	s := loaded(t)

	assert.Equal(t, "2024-05-01", s.DateString())
	assert.Equal(t, 50, s.Analytics.Percent())
	assert.Equal(t, "Showing all 2 tasks", s.SummaryLine())

	s.SetStatus(domain.StatusPending)

	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, int64(1), visible[0].ID)
	assert.Equal(t, "Showing 1 of 2 tasks", s.SummaryLine())
	assert.Len(t, s.Tasks, 2, "filtering must not touch loaded tasks")
}

func TestState_ApplySnapshotRebuildsDrafts(t *testing.T) {
	s := loaded(t)
	s.SetDescriptionDraft(1, "unsaved")
	s.PriorityDrafts[2] = domain.PriorityHigh

	snap := scenarioSnapshot()
	snap.Tasks[0].Description = "from server"
	snap.Tasks = append(snap.Tasks, domain.Task{ID: 3, Title: "Null fields", TaskDate: "2024-05-01"})
	s.ApplySnapshot(snap)

	wantDesc := map[int64]string{1: "from server", 2: "", 3: ""}
	if diff := cmp.Diff(wantDesc, s.DescriptionDrafts); diff != "" {
		t.Errorf("description drafts (-want +got):\n%s", diff)
	}
	assert.Equal(t, domain.PriorityLow, s.PriorityDrafts[2])
	assert.Equal(t, domain.PriorityMedium, s.PriorityDrafts[3])
	assert.Equal(t, domain.CategoryOther, s.CategoryDrafts[3])
}

func TestState_ApplyFetchError(t *testing.T) {
	t.Run("server failure clears fetched data", func(t *testing.T) {
		s := loaded(t)
		s.SetDescriptionDraft(1, "keep me")

		applied := s.ApplyFetchError(&domain.APIError{Op: "list", Status: 500})

		assert.True(t, applied)
		assert.Equal(t, "Server error (500)", s.FetchError)
		assert.Empty(t, s.Tasks)
		assert.Empty(t, s.PendingDates)
		assert.Equal(t, domain.Analytics{}, s.Analytics)
		assert.Equal(t, "tok", s.Token)
		assert.Equal(t, "keep me", s.DescriptionDrafts[1])
	})

	t.Run("failure without detail uses date fallback", func(t *testing.T) {
		s := loaded(t)

		s.ApplyFetchError(errors.New(""))

		assert.Equal(t, "Fetch failed for May 1", s.FetchError)
	})

	t.Run("cancellation is silent", func(t *testing.T) {
		s := loaded(t)
		s.BeginFetch()

		applied := s.ApplyFetchError(&domain.APIError{Op: "list", Err: context.Canceled})

		assert.False(t, applied)
		assert.Len(t, s.Tasks, 2)
		assert.Empty(t, s.FetchError)
	})
}

func TestState_FetchPlan(t *testing.T) {
	s := loaded(t)
	first := s.FetchPlan()

	s.Retry()
	assert.NotEqual(t, first, s.FetchPlan())

	s.ShiftDate(1)
	assert.Equal(t, "2024-05-02", s.FetchPlan().Date)

	s.SignOut()
	assert.Empty(t, s.FetchPlan().Token)
	assert.Empty(t, s.Tasks)
}

func TestState_SelectDateResetsRowState(t *testing.T) {
	s := loaded(t)
	s.ToggleExpanded(1)
	require.True(t, s.StartEdit(2))
	require.True(t, s.RequestDelete(1))
	s.MoveCursor(1)

	s.SelectDate(time.Date(2024, 5, 3, 0, 0, 0, 0, time.Local))

	assert.Zero(t, s.Expanded)
	assert.Zero(t, s.Editing)
	assert.Zero(t, s.ConfirmDelete)
	assert.Zero(t, s.Cursor)
	assert.Equal(t, "2024-05-03", s.DateString())
}

func TestState_Cursor(t *testing.T) {
	s := loaded(t)

	s.MoveCursor(5)
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(2), sel.ID)

	s.SetStatus(domain.StatusPending)
	sel, ok = s.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(1), sel.ID, "cursor clamps to the filtered list")

	s.SetQuery("nothing matches")
	_, ok = s.Selected()
	assert.False(t, ok)

	s.ClearFilter()
	assert.False(t, s.Filter.IsActive())
}

func TestState_ToggleExpanded(t *testing.T) {
	s := loaded(t)

	s.ToggleExpanded(1)
	assert.Equal(t, int64(1), s.Expanded)

	s.ToggleExpanded(2)
	assert.Equal(t, int64(2), s.Expanded, "only one row is expanded")

	s.ToggleExpanded(2)
	assert.Zero(t, s.Expanded)

	s.ToggleExpanded(99)
	assert.Zero(t, s.Expanded)
}

func TestState_DescriptionDraftCapped(t *testing.T) {
	s := loaded(t)
	long := make([]rune, domain.MaxDescriptionLength+20)
	for i := range long {
		long[i] = 'é'
	}

	s.SetDescriptionDraft(1, string(long))

	assert.Equal(t, domain.MaxDescriptionLength, len([]rune(s.DescriptionDrafts[1])))
}

func TestState_UnsavedDescription(t *testing.T) {
	s := loaded(t)

	_, ok := s.UnsavedDescription(1)
	assert.False(t, ok, "fresh drafts match the stored record")

	s.SetDescriptionDraft(1, "quarterly numbers")
	draft, ok := s.UnsavedDescription(1)
	require.True(t, ok)
	assert.Equal(t, "quarterly numbers", draft)

	_, ok = s.UnsavedDescription(99)
	assert.False(t, ok)
}
