package tasklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riordanpawley/daybook/internal/domain"
)

// ErrNoChange is returned when an edit would not change the stored task
var ErrNoChange = errors.New("no change")

// ErrNotConfirmed is returned when deleting without a pending confirmation
var ErrNotConfirmed = errors.New("delete not confirmed")

// Suggestions are the canned titles offered in the add form
var Suggestions = []string{"Update docs", "Team sync", "Review PR #123", "Plan goals"}

// Kind identifies a mutating action
type Kind int

const (
	KindAdd Kind = iota
	KindToggle
	KindRename
	KindDescription
	KindPriority
	KindCategory
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindToggle:
		return "toggle"
	case KindRename:
		return "rename"
	case KindDescription:
		return "description"
	case KindPriority:
		return "priority"
	case KindCategory:
		return "category"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Mutation is a planned request. Task is the full record to send; for
// deletes only its ID matters.
type Mutation struct {
	Kind Kind
	Task domain.Task
}

// Refusal is the error a planner returns when it produces no mutation.
// Notice is empty when the refusal should pass silently.
type Refusal struct {
	Reason error
	Notice Notice
}

func (r *Refusal) Error() string {
	if r.Notice.Message != "" {
		return fmt.Sprintf("%v: %s", r.Reason, r.Notice.Message)
	}
	return r.Reason.Error()
}

func (r *Refusal) Unwrap() error {
	return r.Reason
}

func refuse(reason error) error {
	return &Refusal{Reason: reason}
}

func refuseWith(reason error, n Notice) error {
	return &Refusal{Reason: reason, Notice: n}
}

// guard checks the preconditions shared by every mutating action
func (s *State) guard() error {
	if s.Token == "" {
		return refuse(domain.ErrNotAuthenticated)
	}
	if s.Busy.Active() {
		return refuse(domain.ErrBusy)
	}
	return nil
}

func (s *State) lookup(id int64) (domain.Task, error) {
	t, ok := s.find(id)
	if !ok {
		return domain.Task{}, refuse(domain.ErrNotFound)
	}
	return t.Normalize(), nil
}

func (s *State) start(kind Kind, task domain.Task) Mutation {
	if kind == KindAdd {
		s.Busy = Busy{Kind: BusyAdd}
	} else {
		s.Busy = Busy{Kind: BusyTask, ID: task.ID}
	}
	return Mutation{Kind: kind, Task: task}
}

// PlanAdd creates a pending task on the selected date
func (s *State) PlanAdd(title string) (Mutation, error) {
	if err := s.guard(); err != nil {
		return Mutation{}, err
	}
	if strings.TrimSpace(title) == "" {
		return Mutation{}, refuseWith(domain.ErrValidation, Errorf("Title required"))
	}
	return s.start(KindAdd, domain.NewTask(title, s.Date)), nil
}

// Suggest fills the add draft with a canned title. pick returns an index
// in [0, n).
func (s *State) Suggest(pick func(n int) int) string {
	s.AddDraft = Suggestions[pick(len(Suggestions))]
	return s.AddDraft
}

// PlanToggle flips the completed flag of task id
func (s *State) PlanToggle(id int64) (Mutation, error) {
	if err := s.guard(); err != nil {
		return Mutation{}, err
	}
	t, err := s.lookup(id)
	if err != nil {
		return Mutation{}, err
	}
	t.Completed = !t.Completed
	return s.start(KindToggle, t), nil
}

// StartEdit opens title editing for task id
func (s *State) StartEdit(id int64) bool {
	t, ok := s.find(id)
	if !ok {
		return false
	}
	s.Editing = id
	s.EditDraft = t.Title
	return true
}

// CancelEdit closes title editing without saving
func (s *State) CancelEdit() {
	s.Editing = 0
	s.EditDraft = ""
}

// PlanRename saves the title draft. An empty or unchanged title closes
// edit mode without a request.
func (s *State) PlanRename() (Mutation, error) {
	if err := s.guard(); err != nil {
		return Mutation{}, err
	}
	t, err := s.lookup(s.Editing)
	if err != nil {
		s.CancelEdit()
		return Mutation{}, err
	}
	title := strings.TrimSpace(s.EditDraft)
	if title == "" || title == t.Title {
		s.CancelEdit()
		return Mutation{}, refuse(ErrNoChange)
	}
	t.Title = title
	return s.start(KindRename, t), nil
}

// PlanDescription saves the trimmed description draft of task id
func (s *State) PlanDescription(id int64) (Mutation, error) {
	if err := s.guard(); err != nil {
		return Mutation{}, err
	}
	t, err := s.lookup(id)
	if err != nil {
		return Mutation{}, err
	}
	desc := strings.TrimSpace(s.DescriptionDrafts[id])
	if desc == t.Description {
		return Mutation{}, refuseWith(ErrNoChange, Infof("No changes"))
	}
	t.Description = desc
	return s.start(KindDescription, t), nil
}

// PlanPriority sets the priority of task id
func (s *State) PlanPriority(id int64, p domain.Priority) (Mutation, error) {
	if err := s.guard(); err != nil {
		return Mutation{}, err
	}
	t, err := s.lookup(id)
	if err != nil {
		return Mutation{}, err
	}
	s.PriorityDrafts[id] = p
	if t.Priority == p {
		return Mutation{}, refuse(ErrNoChange)
	}
	t.Priority = p
	return s.start(KindPriority, t), nil
}

// PlanCategory sets the category of task id
func (s *State) PlanCategory(id int64, c domain.Category) (Mutation, error) {
	if err := s.guard(); err != nil {
		return Mutation{}, err
	}
	t, err := s.lookup(id)
	if err != nil {
		return Mutation{}, err
	}
	s.CategoryDrafts[id] = c
	if t.Category == c {
		return Mutation{}, refuse(ErrNoChange)
	}
	t.Category = c
	return s.start(KindCategory, t), nil
}

// RequestDelete asks for confirmation before deleting task id. A newer
// request replaces an older one.
func (s *State) RequestDelete(id int64) bool {
	if _, ok := s.find(id); !ok {
		return false
	}
	s.ConfirmDelete = id
	return true
}

// CancelDelete drops the pending confirmation
func (s *State) CancelDelete() {
	s.ConfirmDelete = 0
}

// PlanDelete deletes the task named by the pending confirmation
func (s *State) PlanDelete() (Mutation, error) {
	if s.ConfirmDelete == 0 {
		return Mutation{}, refuse(ErrNotConfirmed)
	}
	if err := s.guard(); err != nil {
		return Mutation{}, err
	}
	id := s.ConfirmDelete
	s.ConfirmDelete = 0
	return s.start(KindDelete, domain.Task{ID: id}), nil
}

// Settle finishes a mutation. The busy marker is always cleared; on
// success the view is refreshed and per-action UI state is reset.
func (s *State) Settle(m Mutation, err error) Notice {
	s.Busy = Busy{}

	if err != nil {
		return Errorf("%s", domain.UserMessage(err, failureFallback(m.Kind)))
	}

	s.Refresh++
	switch m.Kind {
	case KindAdd:
		s.AddDraft = ""
		return Successf("Task added")
	case KindToggle:
		return Infof("Status updated")
	case KindRename:
		s.CancelEdit()
		return Successf("Title saved")
	case KindDescription:
		if s.Expanded == m.Task.ID {
			s.Expanded = 0
		}
		return Successf("Description saved")
	case KindPriority:
		return Successf("Priority updated")
	case KindCategory:
		return Successf("Category updated")
	case KindDelete:
		if s.Expanded == m.Task.ID {
			s.Expanded = 0
		}
		return Warnf("Task deleted")
	}
	return Notice{}
}

func failureFallback(k Kind) string {
	switch k {
	case KindAdd:
		return "Add failed"
	case KindRename, KindDescription:
		return "Save failed"
	case KindDelete:
		return "Delete failed"
	default:
		return "Update failed"
	}
}
