// Package apitest provides an in-memory implementation of the task REST API
// for tests. It follows the backend contract as the client sees it: bearer
// tokens, per-user tasks keyed by date, full-record updates and 403 for any
// request without a valid session.
package apitest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/riordanpawley/daybook/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var (
	errBadCredentials = errors.New("Invalid credentials")
	errDuplicateUser  = errors.New("Email already registered")
	errTaskNotFound   = errors.New("Task not found or access denied")
	errTitleRequired  = errors.New("Title is required")
)

type user struct {
	username string
	fullName string
	hash     []byte
}

// Backend holds users, sessions and tasks
type Backend struct {
	mu       sync.Mutex
	users    map[string]user
	sessions map[string]string // token -> username
	tasks    map[int64]storedTask
	nextID   int64
}

type storedTask struct {
	owner string
	task  domain.Task
}

// NewBackend creates an empty backend
func NewBackend() *Backend {
	return &Backend{
		users:    make(map[string]user),
		sessions: make(map[string]string),
		tasks:    make(map[int64]storedTask),
		nextID:   1,
	}
}

// AddUser registers a user with a bcrypt-hashed password
func (b *Backend) AddUser(username, password, fullName string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[username]; exists {
		return errDuplicateUser
	}
	b.users[username] = user{username: username, fullName: fullName, hash: hash}
	return nil
}

// Login checks credentials and opens a session
func (b *Backend) Login(username, password string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[username]
	if !ok || bcrypt.CompareHashAndPassword(u.hash, []byte(password)) != nil {
		return "", errBadCredentials
	}
	token := uuid.NewString()
	b.sessions[token] = username
	return token, nil
}

// Authenticate resolves a bearer token to its user
func (b *Backend) Authenticate(token string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	username, ok := b.sessions[token]
	return username, ok
}

// ExpireSessions drops every open session
func (b *Backend) ExpireSessions() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions = make(map[string]string)
}

// Create stores a new task for owner, applying backend defaults
func (b *Backend) Create(owner string, task domain.Task) (domain.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return domain.Task{}, errTitleRequired
	}
	task = task.Normalize()

	b.mu.Lock()
	defer b.mu.Unlock()
	task.ID = b.nextID
	b.nextID++
	b.tasks[task.ID] = storedTask{owner: owner, task: task}
	return task, nil
}

// Update replaces the mutable fields of an owned task. Blank title,
// priority or category keep the stored value.
func (b *Backend) Update(owner string, id int64, in domain.Task) (domain.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, ok := b.tasks[id]
	if !ok || st.owner != owner {
		return domain.Task{}, errTaskNotFound
	}
	t := st.task
	if title := strings.TrimSpace(in.Title); title != "" {
		t.Title = title
	}
	t.Description = in.Description
	if in.Priority != "" {
		t.Priority = in.Priority
	}
	if in.Category != "" {
		t.Category = in.Category
	}
	t.Completed = in.Completed
	b.tasks[id] = storedTask{owner: owner, task: t}
	return t, nil
}

// Delete removes an owned task
func (b *Backend) Delete(owner string, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, ok := b.tasks[id]
	if !ok || st.owner != owner {
		return errTaskNotFound
	}
	delete(b.tasks, id)
	return nil
}

// Tasks lists owner's tasks for date ordered by id. An empty date lists all.
func (b *Backend) Tasks(owner, date string) []domain.Task {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := []domain.Task{}
	for _, st := range b.tasks {
		if st.owner == owner && (date == "" || st.task.TaskDate == date) {
			result = append(result, st.task)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Analytics counts owner's tasks for date
func (b *Backend) Analytics(owner, date string) domain.Analytics {
	var a domain.Analytics
	for _, t := range b.Tasks(owner, date) {
		a.Total++
		if t.Completed {
			a.Completed++
		}
	}
	a.Pending = a.Total - a.Completed
	return a
}

// PendingDates lists the distinct dates with unfinished tasks, ascending
func (b *Backend) PendingDates(owner string) []string {
	seen := make(map[string]bool)
	dates := []string{}
	for _, t := range b.Tasks(owner, "") {
		if !t.Completed && !seen[t.TaskDate] {
			seen[t.TaskDate] = true
			dates = append(dates, t.TaskDate)
		}
	}
	sort.Strings(dates)
	return dates
}
