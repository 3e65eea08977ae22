// Package cli implements the non-interactive daybook commands. They share
// the API client, session store and CSV writer with the TUI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/muesli/reflow/truncate"
	"github.com/riordanpawley/daybook/internal/config"
	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/riordanpawley/daybook/internal/export"
	"github.com/riordanpawley/daybook/internal/services/api"
	"github.com/riordanpawley/daybook/internal/services/fetch"
	"github.com/riordanpawley/daybook/internal/services/session"
)

// ErrNotSignedIn is returned by commands that need a stored session
var ErrNotSignedIn = errors.New("not signed in (run 'daybook login')")

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config   *config.Config
	Client   *api.Client
	Sessions *session.Store
	Logger   *slog.Logger
}

// NewDependencies wires the API client and session store from cfg
func NewDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := time.Duration(cfg.API.TimeoutMs) * time.Millisecond
	baseURL := config.ResolveBaseURL(cfg.API)

	tokenPath := cfg.Session.TokenPath
	if tokenPath == "" {
		if p, err := session.DefaultPath(); err == nil {
			tokenPath = p
		}
	}

	return &Dependencies{
		Config:   cfg,
		Client:   api.NewClient(baseURL, api.NewHTTPClient(timeout), logger),
		Sessions: session.NewStore(tokenPath, logger),
		Logger:   logger,
	}
}

// Session returns the stored session for the configured backend
func (d *Dependencies) Session() (session.Session, error) {
	sess, err := d.Sessions.Load(d.Client.BaseURL())
	if err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// authed returns a client bound to the stored session
func (d *Dependencies) authed() (*api.Client, error) {
	sess, err := d.Session()
	if err != nil {
		return nil, err
	}
	if !sess.Valid() {
		return nil, ErrNotSignedIn
	}
	return d.Client.WithToken(sess.Token), nil
}

// forget clears the stored token after the backend rejected it
func (d *Dependencies) forget(err error) error {
	if !errors.Is(err, domain.ErrSessionExpired) {
		return err
	}
	if clearErr := d.Sessions.Clear(); clearErr != nil {
		d.Logger.Warn("failed to clear expired session", "error", clearErr)
	}
	return fmt.Errorf("session expired, run 'daybook login' again: %w", err)
}

// ConfigCommand prints the effective configuration, or writes it as
// versioned JSON to savePath when one is given
func ConfigCommand(out io.Writer, cfg *config.Config, savePath string) error {
	if savePath == "" {
		fmt.Fprintln(out, cfg.String())
		return nil
	}
	if err := config.SaveConfig(cfg, savePath); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved configuration to %s\n", savePath)
	return nil
}

// LoginCommand signs in and stores the session token
func LoginCommand(ctx context.Context, deps *Dependencies, out io.Writer, username, password string) error {
	token, err := deps.Client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %s", domain.UserMessage(err, "Invalid credentials"))
	}

	err = deps.Sessions.Save(session.Session{
		Token:    token,
		Username: username,
		BaseURL:  deps.Client.BaseURL(),
	})
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	fmt.Fprintf(out, "Welcome back, %s!\n", username)
	return nil
}

// RegisterCommand creates an account. It does not sign in.
func RegisterCommand(ctx context.Context, deps *Dependencies, out io.Writer, fullName, email, password string) error {
	if err := deps.Client.Register(ctx, fullName, email, password); err != nil {
		return fmt.Errorf("registration failed: %s", domain.UserMessage(err, "Registration failed"))
	}
	fmt.Fprintln(out, "Account created! Please sign in.")
	return nil
}

// LogoutCommand forgets the stored session
func LogoutCommand(deps *Dependencies, out io.Writer) error {
	if err := deps.Sessions.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Signed out")
	return nil
}

// ListCommand prints the tasks of date that pass filter
func ListCommand(ctx context.Context, deps *Dependencies, out io.Writer, date time.Time, filter *domain.Filter) error {
	client, err := deps.authed()
	if err != nil {
		return err
	}

	day := domain.FormatDate(date)
	snap, err := fetch.NewFetcher(client, deps.Logger).Batch(ctx, day)
	if err != nil {
		return deps.forget(err)
	}

	visible := filter.Apply(snap.Tasks)
	fmt.Fprintf(out, "%s  %d/%d done (%d%%)\n\n",
		date.Format("Mon Jan 2, 2006"), snap.Analytics.Completed, snap.Analytics.Total, snap.Analytics.Percent())

	if len(visible) == 0 {
		fmt.Fprintln(out, "No tasks to display")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tCATEGORY\tTITLE")
	for _, t := range visible {
		t = t.Normalize()
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			t.ID, t.StatusLabel(), t.Priority, t.Category, truncate.StringWithTail(t.Title, 60, "..."))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n", domain.Summary(len(visible), len(snap.Tasks)))
	return nil
}

// PendingCommand prints every day that still has unfinished tasks
func PendingCommand(ctx context.Context, deps *Dependencies, out io.Writer) error {
	client, err := deps.authed()
	if err != nil {
		return err
	}

	dates, err := client.PendingDates(ctx)
	if err != nil {
		return deps.forget(err)
	}
	if len(dates) == 0 {
		fmt.Fprintln(out, "No pending tasks on any day")
		return nil
	}
	for _, d := range dates {
		fmt.Fprintln(out, d)
	}
	return nil
}

// ExportCommand writes the tasks of date as CSV into dir
func ExportCommand(ctx context.Context, deps *Dependencies, out io.Writer, date time.Time, dir string) error {
	client, err := deps.authed()
	if err != nil {
		return err
	}

	tasks, err := client.ListTasks(ctx, domain.FormatDate(date))
	if err != nil {
		return deps.forget(err)
	}

	path, err := export.WriteFile(dir, date, tasks)
	if errors.Is(err, domain.ErrNothingToExport) {
		fmt.Fprintln(out, "No tasks to export")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "CSV ready: %s\n", path)
	return nil
}
