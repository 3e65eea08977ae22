// Package app implements the root Bubble Tea model for daybook.
package app

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/daybook/internal/config"
	"github.com/riordanpawley/daybook/internal/core/tasklist"
	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/riordanpawley/daybook/internal/services/api"
	"github.com/riordanpawley/daybook/internal/services/fetch"
	"github.com/riordanpawley/daybook/internal/services/network"
	"github.com/riordanpawley/daybook/internal/services/session"
	"github.com/riordanpawley/daybook/internal/types"
	"github.com/riordanpawley/daybook/internal/ui/auth"
	"github.com/riordanpawley/daybook/internal/ui/overlay"
	"github.com/riordanpawley/daybook/internal/ui/styles"
)

const (
	expiredNotice = "Session expired. Please log in again."
	toastTick     = time.Second
)

// Screen is the top-level page being shown
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenTasks
)

// Options holds the collaborators of the root model
type Options struct {
	Config *config.Config
	// Client is the unauthenticated API client; the model binds tokens to it
	Client   *api.Client
	Sessions *session.Store
	// Session is the stored session found at startup, if any
	Session session.Session
	Logger  *slog.Logger
	// Now defaults to time.Now
	Now func() time.Time
	// Pick returns a random index in [0, n); defaults to rand.IntN
	Pick func(n int) int
}

// Model is the root Bubble Tea model
type Model struct {
	screen Screen

	state       *tasklist.State
	coordinator *fetch.Coordinator
	client      *api.Client
	authed      *api.Client
	sessions    *session.Store
	username    string

	auth         auth.Model
	overlayStack *overlay.Stack
	toasts       []types.Toast
	mode         types.Mode
	editInput    textinput.Model

	width   int
	height  int
	styles  *styles.Styles
	config  *config.Config
	spinner spinner.Model

	networkChecker *network.StatusChecker
	isOnline       bool

	logger *slog.Logger
	now    func() time.Time
	pick   func(n int) int
}

// New creates the root model. A valid stored session skips the auth page.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	pick := opts.Pick
	if pick == nil {
		pick = rand.Intn
	}

	start := now()
	if cfg.UI.StartDate != "" {
		if d, err := domain.ParseDate(cfg.UI.StartDate); err == nil {
			start = d
		} else {
			logger.Warn("ignoring invalid start date", "value", cfg.UI.StartDate, "error", err)
		}
	}

	s := styles.New()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.StatusInfo

	in := textinput.New()
	in.CharLimit = 200
	in.Prompt = ""

	m := Model{
		screen:         ScreenAuth,
		state:          tasklist.New(start),
		coordinator:    fetch.NewCoordinator(nil),
		client:         opts.Client,
		sessions:       opts.Sessions,
		auth:           auth.New(s),
		overlayStack:   overlay.NewStack(),
		toasts:         []types.Toast{},
		mode:           types.ModeNormal,
		editInput:      in,
		styles:         s,
		config:         cfg,
		spinner:        sp,
		networkChecker: network.NewStatusChecker(opts.Client, logger),
		isOnline:       true,
		logger:         logger,
		now:            now,
		pick:           pick,
	}

	if opts.Session.Valid() {
		m.signIn(opts.Session.Token, opts.Session.Username)
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.auth.Init(),
		m.networkChecker.CheckCmd(),
		tickEvery(toastTick),
		m.syncFetch(),
	)
}

// Update handles incoming messages and updates the model. Any change to the
// session, date or refresh counter schedules a new fetch batch.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, tea.Batch(cmd, next.syncFetch())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.auth.SetWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		m.auth, cmd = m.auth.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == ScreenAuth {
			var cmd tea.Cmd
			m.auth, cmd = m.auth.Update(msg)
			return m, cmd
		}
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			return m.handleOverlayKey(msg)
		}
		return m.handleKey(msg)

	// Auth page
	case auth.LoginRequestMsg:
		return m, m.loginCmd(msg.Username, msg.Password)

	case auth.RegisterRequestMsg:
		return m, m.registerCmd(msg.FullName, msg.Email, msg.Password)

	case loginResultMsg:
		if msg.err != nil {
			m.logger.Info("login failed", "username", msg.username, "error", msg.err)
			m.auth.LoginFailed(domain.ServerMessage(msg.err))
			return m, nil
		}
		m.persistSession(msg.username, msg.token)
		m.signIn(msg.token, msg.username)
		m.addToast(types.ToastSuccess, "Welcome back!")
		return m, nil

	case registerResultMsg:
		if msg.err != nil {
			m.logger.Info("registration failed", "error", msg.err)
			m.auth.RegisterFailed(domain.ServerMessage(msg.err))
			return m, nil
		}
		m.auth.RegisterSucceeded()
		m.addToast(types.ToastSuccess, "Account created! Please sign in.")
		return m, nil

	// Fetching
	case batchLoadedMsg:
		return m.handleBatch(msg)

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case exportDoneMsg:
		switch {
		case errors.Is(msg.err, domain.ErrNothingToExport):
			m.addToast(types.ToastInfo, "No tasks to export")
		case msg.err != nil:
			m.logger.Error("export failed", "error", msg.err)
			m.addToast(types.ToastError, "Export failed: "+msg.err.Error())
		default:
			m.addToast(types.ToastSuccess, "CSV ready: "+msg.path)
		}
		return m, nil

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		return m, nil

	case overlay.SearchMsg:
		m.state.SetQuery(msg.Query)
		m.updateMatchCount()
		return m, nil

	case overlay.StatusFilterMsg:
		m.state.SetStatus(msg.Status)
		return m, nil

	case overlay.ClearFilterMsg:
		m.state.ClearFilter()
		return m, nil

	case overlay.DateSelectedMsg:
		m.state.SelectDate(msg.Date)
		m.mode = types.ModeNormal
		return m, nil

	case overlay.AddDraftMsg:
		m.state.AddDraft = msg.Title
		return m, nil

	case overlay.SuggestedMsg:
		m.addToast(types.ToastInfo, "Suggestion added")
		return m, nil

	case overlay.AddTaskMsg:
		return m, m.perform(m.state.PlanAdd(msg.Title))

	case overlay.DescriptionDraftMsg:
		m.state.SetDescriptionDraft(msg.TaskID, msg.Text)
		return m, nil

	case overlay.SaveDescriptionMsg:
		cmd := m.perform(m.state.PlanDescription(msg.TaskID))
		m.syncDetail()
		return m, cmd

	case overlay.PriorityChangeMsg:
		cmd := m.perform(m.state.PlanPriority(msg.TaskID, msg.Priority))
		m.syncDetail()
		return m, cmd

	case overlay.CategoryChangeMsg:
		cmd := m.perform(m.state.PlanCategory(msg.TaskID, msg.Category))
		m.syncDetail()
		return m, cmd

	case overlay.DeleteDecisionMsg:
		if !msg.Confirmed || m.state.ConfirmDelete != msg.TaskID {
			m.state.CancelDelete()
			return m, nil
		}
		return m, m.perform(m.state.PlanDelete())

	case tickMsg:
		m.expireToasts()
		return m, tickEvery(toastTick)

	case network.StatusMsg:
		if m.isOnline != msg.Online {
			m.logger.Info("backend connectivity changed", "online", msg.Online)
		}
		m.isOnline = msg.Online
		return m, m.networkChecker.PollCmd(m.checkInterval())
	}

	return m.forward(msg)
}

// forward hands other messages, e.g. cursor blinks, to whatever has focus
func (m Model) forward(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.screen == ScreenAuth:
		m.auth, cmd = m.auth.Update(msg)
	case !m.overlayStack.IsEmpty():
		cmd = m.overlayStack.Update(msg)
	case m.mode == types.ModeEdit:
		m.editInput, cmd = m.editInput.Update(msg)
	}
	return m, cmd
}

// handleBatch applies a fetch result if it is still the current batch
func (m Model) handleBatch(msg batchLoadedMsg) (Model, tea.Cmd) {
	if !m.coordinator.Settle(msg.gen) {
		m.logger.Debug("dropping stale fetch", "gen", msg.gen, "current", m.coordinator.Generation())
		return m, nil
	}

	if msg.err != nil {
		if errors.Is(msg.err, domain.ErrSessionExpired) {
			m.expireSession()
			return m, nil
		}
		if m.state.ApplyFetchError(msg.err) {
			m.logger.Warn("fetch failed", "date", msg.snapshot.Date, "error", msg.err)
		}
		m.syncDetail()
		return m, nil
	}

	// a description typed into the open editor outlives the refetch that a
	// picker save triggers
	editing, unsaved, keep := m.unsavedDetail()
	m.state.ApplySnapshot(msg.snapshot)
	if _, ok := m.state.Task(editing); keep && ok {
		m.state.SetDescriptionDraft(editing, unsaved)
	}
	m.updateMatchCount()
	m.syncDetail()
	return m, nil
}

// unsavedDetail returns the open editor's task and its unsaved description
func (m *Model) unsavedDetail() (int64, string, bool) {
	ed, ok := m.overlayStack.Current().(*overlay.DetailEditor)
	if !ok {
		return 0, "", false
	}
	draft, ok := m.state.UnsavedDescription(ed.TaskID())
	return ed.TaskID(), draft, ok
}

// handleMutationDone settles the outstanding mutation and reports it
func (m Model) handleMutationDone(msg mutationDoneMsg) (Model, tea.Cmd) {
	if errors.Is(msg.err, domain.ErrSessionExpired) {
		m.expireSession()
		return m, nil
	}
	if msg.err != nil {
		m.logger.Warn("mutation failed", "kind", msg.mutation.Kind, "task", msg.mutation.Task.ID, "error", msg.err)
	}

	m.notify(m.state.Settle(msg.mutation, msg.err))

	switch msg.mutation.Kind {
	case tasklist.KindAdd:
		if _, ok := m.overlayStack.Current().(*overlay.AddTaskOverlay); ok && msg.err == nil {
			m.overlayStack.Pop()
		}
	case tasklist.KindRename:
		if msg.err != nil && m.state.Editing != 0 {
			m.mode = types.ModeEdit
			m.editInput.Focus()
		}
	case tasklist.KindDescription:
		if _, ok := m.overlayStack.Current().(*overlay.DetailEditor); ok && msg.err == nil {
			m.overlayStack.Pop()
		}
	}
	m.syncDetail()
	return m, nil
}

// signIn binds the task view to a session
func (m *Model) signIn(token, username string) {
	m.state.SignIn(token)
	m.authed = m.client.WithToken(token)
	m.username = username
	m.screen = ScreenTasks
	m.mode = types.ModeNormal
}

// signOut tears the task view down and returns to the auth page
func (m *Model) signOut(notice string) {
	if m.sessions != nil {
		if err := m.sessions.Clear(); err != nil {
			m.logger.Error("failed to clear session", "error", err)
		}
	}
	m.state.SignOut()
	m.coordinator.Reset()
	m.overlayStack.Clear()
	m.authed = nil
	m.username = ""
	m.mode = types.ModeNormal
	m.editInput.Blur()
	m.screen = ScreenAuth
	m.auth.Reset(notice)
}

func (m *Model) expireSession() {
	m.logger.Warn("session expired")
	m.signOut(expiredNotice)
	m.addToast(types.ToastWarning, expiredNotice)
}

func (m *Model) persistSession(username, token string) {
	if m.sessions == nil {
		return
	}
	err := m.sessions.Save(session.Session{
		Token:    token,
		Username: username,
		BaseURL:  m.client.BaseURL(),
		SavedAt:  m.now(),
	})
	if err != nil {
		m.logger.Error("failed to save session", "error", err)
		m.addToast(types.ToastWarning, "Signed in, but the session could not be saved")
	}
}

// syncFetch schedules a batch when the fetch inputs changed
func (m Model) syncFetch() tea.Cmd {
	ticket, ok := m.coordinator.Schedule(m.state.FetchPlan())
	if !ok {
		return nil
	}
	m.state.BeginFetch()
	m.logger.Debug("fetch scheduled", "gen", ticket.Gen, "date", ticket.Plan.Date, "refresh", ticket.Plan.Refresh)
	return m.fetchCmd(ticket)
}

// perform turns a planner result into a request, or reports the refusal
func (m *Model) perform(mut tasklist.Mutation, err error) tea.Cmd {
	if err != nil {
		if n := tasklist.RefusalNotice(err); !n.Empty() {
			m.notify(n)
		}
		m.logger.Debug("action refused", "error", err)
		return nil
	}
	return m.mutationCmd(mut)
}

// syncDetail refreshes an open detail editor from the current state
func (m *Model) syncDetail() {
	ed, ok := m.overlayStack.Current().(*overlay.DetailEditor)
	if !ok {
		return
	}
	id := ed.TaskID()
	task, ok := m.state.Task(id)
	if !ok {
		m.overlayStack.Pop()
		return
	}
	ed.Sync(task, m.state.DescriptionDrafts[id], m.state.PriorityDrafts[id], m.state.CategoryDrafts[id])
	ed.SetBusy(m.state.Busy.Is(id))
}

func (m *Model) updateMatchCount() {
	if so, ok := m.overlayStack.Current().(*overlay.SearchOverlay); ok {
		so.SetMatchCount(len(m.state.Visible()), len(m.state.Tasks))
	}
}

// addToast adds a toast notification to the list
func (m *Model) addToast(level types.ToastLevel, message string) {
	seconds := m.config.UI.ToastSeconds
	if level == types.ToastError {
		seconds = m.config.UI.ErrorToastSeconds
	}
	m.toasts = append(m.toasts, types.Toast{
		Level:   level,
		Message: message,
		Expires: m.now().Add(time.Duration(seconds) * time.Second),
	})
}

// notify shows a notice from the task state
func (m *Model) notify(n tasklist.Notice) {
	if n.Empty() {
		return
	}
	m.addToast(toastLevel(n.Level), n.Message)
}

func toastLevel(l tasklist.Level) types.ToastLevel {
	switch l {
	case tasklist.LevelSuccess:
		return types.ToastSuccess
	case tasklist.LevelWarning:
		return types.ToastWarning
	case tasklist.LevelError:
		return types.ToastError
	default:
		return types.ToastInfo
	}
}

// expireToasts removes expired toasts from the list
func (m *Model) expireToasts() {
	now := m.now()
	filtered := make([]types.Toast, 0, len(m.toasts))

	for _, toast := range m.toasts {
		if toast.Live(now) {
			filtered = append(filtered, toast)
		}
	}

	m.toasts = filtered
}

func (m Model) checkInterval() time.Duration {
	return time.Duration(m.config.Network.CheckInterval) * time.Second
}

func (m Model) requestTimeout() time.Duration {
	return time.Duration(m.config.API.TimeoutMs) * time.Millisecond
}

// Screen returns the page being shown
func (m Model) Screen() Screen {
	return m.screen
}

// State exposes the task view state, mainly for tests and the CLI
func (m Model) State() *tasklist.State {
	return m.state
}
