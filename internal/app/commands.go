package app

import (
	"context"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/daybook/internal/core/tasklist"
	"github.com/riordanpawley/daybook/internal/export"
	"github.com/riordanpawley/daybook/internal/services/fetch"
)

// Message types for async operations

type loginResultMsg struct {
	username string
	token    string
	err      error
}

type registerResultMsg struct {
	err error
}

// batchLoadedMsg carries the result of fetch batch gen
type batchLoadedMsg struct {
	gen      uint64
	snapshot fetch.Snapshot
	err      error
}

type mutationDoneMsg struct {
	mutation tasklist.Mutation
	err      error
}

type exportDoneMsg struct {
	path string
	err  error
}

type tickMsg time.Time

// Commands

func (m Model) loginCmd(username, password string) tea.Cmd {
	client := m.client
	timeout := m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		token, err := client.Login(ctx, username, password)
		return loginResultMsg{username: username, token: token, err: err}
	}
}

func (m Model) registerCmd(fullName, email, password string) tea.Cmd {
	client := m.client
	timeout := m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return registerResultMsg{err: client.Register(ctx, fullName, email, password)}
	}
}

// fetchCmd runs one batch under the ticket's context. Superseding the
// ticket cancels the requests.
func (m Model) fetchCmd(ticket fetch.Ticket) tea.Cmd {
	fetcher := fetch.NewFetcher(m.authed, m.logger)
	timeout := m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ticket.Ctx, timeout)
		defer cancel()

		snap, err := fetcher.Batch(ctx, ticket.Plan.Date)
		snap.Date = ticket.Plan.Date
		return batchLoadedMsg{gen: ticket.Gen, snapshot: snap, err: err}
	}
}

// mutationCmd sends a planned mutation. Mutations are not cancelled by
// date changes.
func (m Model) mutationCmd(mut tasklist.Mutation) tea.Cmd {
	client := m.authed
	timeout := m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var err error
		switch mut.Kind {
		case tasklist.KindAdd:
			_, err = client.CreateTask(ctx, mut.Task)
		case tasklist.KindDelete:
			err = client.DeleteTask(ctx, mut.Task.ID)
		default:
			_, err = client.UpdateTask(ctx, mut.Task)
		}
		return mutationDoneMsg{mutation: mut, err: err}
	}
}

// exportCmd writes the loaded, unfiltered tasks of the selected day
func (m Model) exportCmd() tea.Cmd {
	dir := m.config.Export.Dir
	date := m.state.Date
	tasks := slices.Clone(m.state.Tasks)
	return func() tea.Msg {
		path, err := export.WriteFile(dir, date, tasks)
		return exportDoneMsg{path: path, err: err}
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
