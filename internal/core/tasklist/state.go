// Package tasklist holds the client-side state of the per-day task view.
//
// State is a plain record owned by the UI loop. Fetch results are applied
// wholesale; mutating actions go through planners that check preconditions,
// mark the view busy and return the full record to send. Nothing is applied
// locally before the server confirms it.
package tasklist

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/riordanpawley/daybook/internal/services/fetch"
)

// BusyKind says what the single outstanding mutation targets
type BusyKind int

const (
	BusyNone BusyKind = iota
	BusyAdd
	BusyTask
)

// Busy is the in-flight marker. At most one mutation runs at a time.
type Busy struct {
	Kind BusyKind
	ID   int64
}

// Active reports whether a mutation is outstanding
func (b Busy) Active() bool {
	return b.Kind != BusyNone
}

// Is reports whether the marker points at task id
func (b Busy) Is(id int64) bool {
	return b.Kind == BusyTask && b.ID == id
}

// State is the task view's UI session
type State struct {
	Token   string
	Date    time.Time
	Refresh int

	Tasks        []domain.Task
	Analytics    domain.Analytics
	PendingDates []string
	Loading      bool
	FetchError   string

	AddDraft string

	// Editing is the task whose title is being edited, 0 for none
	Editing   int64
	EditDraft string

	DescriptionDrafts map[int64]string
	PriorityDrafts    map[int64]domain.Priority
	CategoryDrafts    map[int64]domain.Category

	// Expanded is the task showing its detail panel, 0 for none
	Expanded int64
	// ConfirmDelete is the task awaiting delete confirmation, 0 for none
	ConfirmDelete int64

	Filter *domain.Filter
	Busy   Busy
	Cursor int
}

// New creates an empty state for date
func New(date time.Time) *State {
	return &State{
		Date:              domain.Day(date),
		Filter:            domain.NewFilter(),
		Tasks:             []domain.Task{},
		PendingDates:      []string{},
		DescriptionDrafts: make(map[int64]string),
		PriorityDrafts:    make(map[int64]domain.Priority),
		CategoryDrafts:    make(map[int64]domain.Category),
	}
}

// DateString returns the selected date in wire format
func (s *State) DateString() string {
	return domain.FormatDate(s.Date)
}

// FetchPlan returns the inputs that determine the current batch
func (s *State) FetchPlan() fetch.Plan {
	return fetch.Plan{Token: s.Token, Date: s.DateString(), Refresh: s.Refresh}
}

// SignIn binds the state to a session
func (s *State) SignIn(token string) {
	s.Token = token
}

// SignOut forgets the session and everything fetched with it
func (s *State) SignOut() {
	s.Token = ""
	s.clearFetched()
	s.FetchError = ""
	s.Loading = false
	s.Busy = Busy{}
	s.Editing = 0
	s.EditDraft = ""
	s.Expanded = 0
	s.ConfirmDelete = 0
}

// SelectDate switches the view to another day, collapsing the detail panel
// and closing title edit.
func (s *State) SelectDate(date time.Time) {
	s.Date = domain.Day(date)
	s.Expanded = 0
	s.Editing = 0
	s.EditDraft = ""
	s.ConfirmDelete = 0
	s.Cursor = 0
}

// ShiftDate moves the selected date by days
func (s *State) ShiftDate(days int) {
	s.SelectDate(s.Date.AddDate(0, 0, days))
}

// Retry requests a new fetch for the same inputs
func (s *State) Retry() {
	s.Refresh++
}

// BeginFetch marks a batch as in flight
func (s *State) BeginFetch() {
	s.Loading = true
	s.FetchError = ""
}

// ApplySnapshot replaces fetched data and rebuilds the draft maps from the
// fetched records. Local drafts are overwritten.
func (s *State) ApplySnapshot(snap fetch.Snapshot) {
	s.Loading = false
	s.FetchError = ""
	s.Tasks = snap.Tasks
	if s.Tasks == nil {
		s.Tasks = []domain.Task{}
	}
	s.Analytics = snap.Analytics
	s.PendingDates = snap.PendingDates
	if s.PendingDates == nil {
		s.PendingDates = []string{}
	}

	s.DescriptionDrafts = make(map[int64]string, len(s.Tasks))
	s.PriorityDrafts = make(map[int64]domain.Priority, len(s.Tasks))
	s.CategoryDrafts = make(map[int64]domain.Category, len(s.Tasks))
	for _, t := range s.Tasks {
		t = t.Normalize()
		s.DescriptionDrafts[t.ID] = t.Description
		s.PriorityDrafts[t.ID] = t.Priority
		s.CategoryDrafts[t.ID] = t.Category
	}

	if _, ok := s.find(s.Expanded); !ok {
		s.Expanded = 0
	}
	if _, ok := s.find(s.Editing); !ok {
		s.Editing = 0
		s.EditDraft = ""
	}
	s.clampCursor()
}

// ApplyFetchError records a failed batch. Cancellation is ignored and
// reported as false.
func (s *State) ApplyFetchError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	s.Loading = false
	s.FetchError = domain.UserMessage(err, "Fetch failed for "+s.Date.Format("Jan 2"))
	s.clearFetched()
	return true
}

func (s *State) clearFetched() {
	s.Tasks = []domain.Task{}
	s.Analytics = domain.Analytics{}
	s.PendingDates = []string{}
	s.Cursor = 0
}

// Visible returns the tasks passing the active filter
func (s *State) Visible() []domain.Task {
	return s.Filter.Apply(s.Tasks)
}

// SummaryLine describes how many tasks the filter shows
func (s *State) SummaryLine() string {
	return domain.Summary(len(s.Visible()), len(s.Tasks))
}

// SetQuery changes the search text
func (s *State) SetQuery(q string) {
	s.Filter.Query = q
	s.clampCursor()
}

// SetStatus changes the status filter
func (s *State) SetStatus(st domain.StatusFilter) {
	s.Filter.Status = st
	s.clampCursor()
}

// ClearFilter resets search and status
func (s *State) ClearFilter() {
	s.Filter.Clear()
	s.clampCursor()
}

// MoveCursor moves the selection within the visible list
func (s *State) MoveCursor(delta int) {
	s.Cursor += delta
	s.clampCursor()
}

// Selected returns the task under the cursor
func (s *State) Selected() (domain.Task, bool) {
	visible := s.Visible()
	if s.Cursor < 0 || s.Cursor >= len(visible) {
		return domain.Task{}, false
	}
	return visible[s.Cursor], true
}

func (s *State) clampCursor() {
	n := len(s.Visible())
	if s.Cursor >= n {
		s.Cursor = n - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// ToggleExpanded opens the detail panel for id, or closes it if already open
func (s *State) ToggleExpanded(id int64) {
	if s.Expanded == id {
		s.Expanded = 0
		return
	}
	if _, ok := s.find(id); ok {
		s.Expanded = id
	}
}

// SetDescriptionDraft updates the unsaved description, capped at the
// backend's limit.
func (s *State) SetDescriptionDraft(id int64, text string) {
	if utf8.RuneCountInString(text) > domain.MaxDescriptionLength {
		text = string([]rune(text)[:domain.MaxDescriptionLength])
	}
	s.DescriptionDrafts[id] = text
}

// UnsavedDescription returns the description draft of id when it differs
// from the stored description
func (s *State) UnsavedDescription(id int64) (string, bool) {
	task, ok := s.find(id)
	if !ok {
		return "", false
	}
	draft, ok := s.DescriptionDrafts[id]
	if !ok || draft == task.Normalize().Description {
		return "", false
	}
	return draft, true
}

// Task looks up a loaded task by id
func (s *State) Task(id int64) (domain.Task, bool) {
	return s.find(id)
}

func (s *State) find(id int64) (domain.Task, bool) {
	if id == 0 {
		return domain.Task{}, false
	}
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}
