// Package export writes the loaded tasks of a day as CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/natefinch/atomic"
	"github.com/riordanpawley/daybook/internal/domain"
)

// Header is the first CSV line
var Header = []string{"ID", "Title", "Status", "Priority", "Category", "Date", "Description"}

// FileName returns the export file name for date
func FileName(date time.Time) string {
	return fmt.Sprintf("Tasks_%s.csv", domain.FormatDate(date))
}

// Row converts a task into its CSV fields
func Row(t domain.Task) []string {
	t = t.Normalize()
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.Title,
		t.StatusLabel(),
		t.Priority.String(),
		t.Category.String(),
		t.TaskDate,
		t.Description,
	}
}

// Write encodes tasks as CSV. An empty list is refused with
// domain.ErrNothingToExport.
func Write(w io.Writer, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return domain.ErrNothingToExport
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range tasks {
		if err := cw.Write(Row(t)); err != nil {
			return fmt.Errorf("write csv row %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteFile exports tasks for date into dir and returns the file path.
// The file is replaced atomically; nothing is written for an empty list.
func WriteFile(dir string, date time.Time, tasks []domain.Task) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, tasks); err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, FileName(date))
	if err := atomic.WriteFile(path, &buf); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o644); err != nil {
		return "", fmt.Errorf("set permissions on %s: %w", path, err)
	}
	return path, nil
}
