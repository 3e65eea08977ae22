// Package fetch loads everything the task view shows for one day and keeps
// stale loads from overwriting fresh ones.
package fetch

import (
	"context"
	"log/slog"

	"github.com/riordanpawley/daybook/internal/domain"
	"golang.org/x/sync/errgroup"
)

// TaskReader is the read side of the task API
type TaskReader interface {
	ListTasks(ctx context.Context, date string) ([]domain.Task, error)
	Analytics(ctx context.Context, date string) (domain.Analytics, error)
	PendingDates(ctx context.Context) ([]string, error)
}

// Snapshot is the result of one fetch batch
type Snapshot struct {
	Date         string
	Tasks        []domain.Task
	Analytics    domain.Analytics
	PendingDates []string
}

// Fetcher issues fetch batches
type Fetcher struct {
	reader TaskReader
	logger *slog.Logger
}

// NewFetcher creates a fetcher over reader
func NewFetcher(reader TaskReader, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{reader: reader, logger: logger}
}

// Batch loads the tasks and analytics for date together with the global
// pending dates. The three requests run in parallel; the first failure
// cancels the others and is returned.
func (f *Fetcher) Batch(ctx context.Context, date string) (Snapshot, error) {
	snap := Snapshot{Date: date}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tasks, err := f.reader.ListTasks(gctx, date)
		snap.Tasks = tasks
		return err
	})
	g.Go(func() error {
		a, err := f.reader.Analytics(gctx, date)
		snap.Analytics = a
		return err
	})
	g.Go(func() error {
		dates, err := f.reader.PendingDates(gctx)
		snap.PendingDates = dates
		return err
	})

	if err := g.Wait(); err != nil {
		f.logger.Debug("fetch batch failed", "date", date, "error", err)
		return Snapshot{Date: date}, err
	}

	if snap.Tasks == nil {
		snap.Tasks = []domain.Task{}
	}
	if snap.PendingDates == nil {
		snap.PendingDates = []string{}
	}
	f.logger.Debug("fetch batch done", "date", date, "tasks", len(snap.Tasks), "pending_dates", len(snap.PendingDates))
	return snap, nil
}
