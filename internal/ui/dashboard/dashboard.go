// Package dashboard renders the analytics header of the task view.
package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/riordanpawley/daybook/internal/domain"
	"github.com/riordanpawley/daybook/internal/ui/styles"
)

// Dashboard shows the day's counts, completion bar and pending days
type Dashboard struct {
	analytics domain.Analytics
	pending   []string
	selected  string
	width     int
	styles    *styles.Styles
}

// New creates a dashboard for one fetched day
func New(a domain.Analytics, pending []string, selected string, width int, s *styles.Styles) *Dashboard {
	return &Dashboard{
		analytics: a,
		pending:   pending,
		selected:  selected,
		width:     width,
		styles:    s,
	}
}

// Render draws the cards, the progress bar and the pending-days line
func (d *Dashboard) Render() string {
	parts := []string{d.renderCards()}
	if bar := d.renderProgress(); bar != "" {
		parts = append(parts, bar)
	}
	parts = append(parts, d.renderPending())
	return strings.Join(parts, "\n")
}

func (d *Dashboard) renderCards() string {
	a := d.analytics
	cards := []string{
		d.card("Total", strconv.FormatInt(a.Total, 10), styles.Blue),
		d.card("Completed", strconv.FormatInt(a.Completed, 10), styles.Green),
		d.card("Pending", strconv.FormatInt(a.Pending, 10), styles.Yellow),
		d.card("Done", fmt.Sprintf("%d%%", a.Percent()), styles.Mauve),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (d *Dashboard) card(label, value string, color lipgloss.Color) string {
	body := d.styles.CardValue(color).Render(value) + "\n" + d.styles.CardLabel.Render(label)
	return d.styles.Card.Width(13).Render(body)
}

// renderProgress returns "" for an empty day
func (d *Dashboard) renderProgress() string {
	if d.analytics.Total <= 0 {
		return ""
	}
	barWidth := max(10, min(60, d.width-12))
	filled := ProgressCells(d.analytics.Percent(), barWidth)

	return d.styles.ProgressOn.Render(strings.Repeat("█", filled)) +
		d.styles.ProgressOff.Render(strings.Repeat("░", barWidth-filled)) +
		d.styles.Muted.Render(fmt.Sprintf(" %d%% complete", d.analytics.Percent()))
}

// ProgressCells converts a percentage into filled cells of a width-wide bar
func ProgressCells(percent, width int) int {
	percent = max(0, min(100, percent))
	return percent * width / 100
}

func (d *Dashboard) renderPending() string {
	if len(d.pending) == 0 {
		return d.styles.Muted.Render("No pending tasks on any day")
	}

	labels := make([]string, 0, len(d.pending))
	for _, raw := range d.pending {
		label := raw
		if t, err := domain.ParseDate(raw); err == nil {
			label = t.Format("Jan 2")
		}
		if raw == d.selected {
			label = "*" + label
		}
		labels = append(labels, label)
	}

	text := "Pending on: " + strings.Join(labels, ", ")
	return d.styles.Muted.Render(wordwrap.String(text, max(20, d.width-2)))
}
