package app

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/daybook/internal/apitest"
	"github.com/riordanpawley/daybook/internal/config"
	"github.com/riordanpawley/daybook/internal/services/api"
	"github.com/riordanpawley/daybook/internal/services/session"
	"github.com/riordanpawley/daybook/internal/ui/auth"
	"github.com/riordanpawley/daybook/internal/ui/overlay"
	"github.com/stretchr/testify/require"
)

// cmdTimeout bounds how long a command may run before it is treated as a
// timer (ticks, blinks, polls) and dropped
const cmdTimeout = 2 * time.Second

var may1 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)

type harness struct {
	t     *testing.T
	srv   *apitest.Server
	store *session.Store
	cfg   *config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Export.Dir = t.TempDir()
	cfg.Log.Path = "-"
	return &harness{
		t:     t,
		srv:   apitest.NewServer(t),
		store: session.NewStore(filepath.Join(t.TempDir(), "session.json"), nil),
		cfg:   cfg,
	}
}

func (h *harness) options(sess session.Session) Options {
	return Options{
		Config:   h.cfg,
		Client:   api.NewClient(h.srv.URL, h.srv.Client(), nil),
		Sessions: h.store,
		Session:  sess,
		Now:      func() time.Time { return may1 },
		Pick:     func(int) int { return 1 },
	}
}

// signedOut returns a model on the auth page
func (h *harness) signedOut() Model {
	m := New(h.options(session.Session{}))
	m.width, m.height = 120, 40
	return m
}

// signedIn returns a model holding a fresh admin session with May 1 loaded
func (h *harness) signedIn() Model {
	h.t.Helper()
	token := h.srv.Login(h.t, "admin", "pass")
	m := New(h.options(session.Session{Token: token, Username: "admin"}))
	m.width, m.height = 120, 40
	m = drive(h.t, m, m.syncFetch())
	require.Len(h.t, m.state.Tasks, 2)
	return m
}

// press sends keys one at a time and runs everything they trigger
func press(t *testing.T, m Model, keys ...tea.Msg) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, k)
	}
	return m
}

// send delivers msg and runs the resulting commands to completion
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return drive(t, next.(Model), cmd)
}

// drive runs cmd, feeds the messages it produces back into the model and
// repeats until nothing is left
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := relevant(run(cmd))
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "update loop did not settle")
		msg := queue[0]
		queue = queue[1:]

		next, cmd := m.Update(msg)
		m = next.(Model)
		queue = append(queue, relevant(run(cmd))...)
	}
	return m
}

// run executes cmd and its batches concurrently. Commands still running
// after cmdTimeout are abandoned.
func run(cmd tea.Cmd) []tea.Msg {
	results := make(chan tea.Msg, 64)
	var pending sync.WaitGroup

	var spawn func(c tea.Cmd)
	spawn = func(c tea.Cmd) {
		if c == nil {
			return
		}
		pending.Add(1)
		go func() {
			defer pending.Done()
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, child := range batch {
					spawn(child)
				}
				return
			}
			results <- msg
		}()
	}
	spawn(cmd)

	done := make(chan struct{})
	go func() {
		pending.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(cmdTimeout):
	}

	var msgs []tea.Msg
	for {
		select {
		case msg := <-results:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

// relevant keeps the messages the app reacts to and drops timers
func relevant(msgs []tea.Msg) []tea.Msg {
	var out []tea.Msg
	for _, msg := range msgs {
		switch msg.(type) {
		case loginResultMsg, registerResultMsg, batchLoadedMsg, mutationDoneMsg, exportDoneMsg,
			auth.LoginRequestMsg, auth.RegisterRequestMsg,
			overlay.CloseOverlayMsg, overlay.SearchMsg, overlay.StatusFilterMsg, overlay.ClearFilterMsg,
			overlay.DateSelectedMsg, overlay.AddDraftMsg, overlay.AddTaskMsg, overlay.SuggestedMsg,
			overlay.DescriptionDraftMsg, overlay.SaveDescriptionMsg, overlay.PriorityChangeMsg,
			overlay.CategoryChangeMsg, overlay.DeleteDecisionMsg:
			out = append(out, msg)
		}
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// lastToast returns the newest toast message
func lastToast(t *testing.T, m Model) string {
	t.Helper()
	require.NotEmpty(t, m.toasts, "expected a toast")
	return m.toasts[len(m.toasts)-1].Message
}
