package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/braindump/internal/domain"
)

// shortIDLen is how many id characters are shown; any unique prefix is accepted back.
const shortIDLen = 8

// Colors defines the palette for task lists.
var Colors = struct {
	Muted   lipgloss.Color
	Urgent  lipgloss.Color
	Carried lipgloss.Color
	Event   lipgloss.Color
	Owner   lipgloss.Color
	Header  lipgloss.Color
}{
	Muted:   lipgloss.Color("#636E72"), // Gray
	Urgent:  lipgloss.Color("#D63031"), // Red
	Carried: lipgloss.Color("#FDCB6E"), // Yellow
	Event:   lipgloss.Color("#74B9FF"), // Light blue
	Owner:   lipgloss.Color("#A29BFE"), // Lavender
	Header:  lipgloss.Color("#6C5CE7"), // Purple
}

// listStyles are bound to a renderer so that output to a pipe or a test
// buffer carries no escape sequences.
type listStyles struct {
	header  lipgloss.Style
	id      lipgloss.Style
	done    lipgloss.Style
	urgent  lipgloss.Style
	carried lipgloss.Style
	event   lipgloss.Style
	owner   lipgloss.Style
	muted   lipgloss.Style
}

func newListStyles(w io.Writer) listStyles {
	r := lipgloss.NewRenderer(w)
	return listStyles{
		header:  r.NewStyle().Bold(true).Foreground(Colors.Header),
		id:      r.NewStyle().Foreground(Colors.Muted),
		done:    r.NewStyle().Strikethrough(true).Foreground(Colors.Muted),
		urgent:  r.NewStyle().Bold(true).Foreground(Colors.Urgent),
		carried: r.NewStyle().Foreground(Colors.Carried),
		event:   r.NewStyle().Foreground(Colors.Event),
		owner:   r.NewStyle().Foreground(Colors.Owner),
		muted:   r.NewStyle().Foreground(Colors.Muted),
	}
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// renderTasks prints one line per task, grouped under a date header.
func renderTasks(w io.Writer, tasks []domain.Task) {
	s := newListStyles(w)
	date := ""
	for _, t := range tasks {
		if t.Date != date {
			date = t.Date
			_, _ = fmt.Fprintln(w, s.header.Render(date))
		}
		_, _ = fmt.Fprintln(w, renderTask(s, t))
	}
}

func renderTask(s listStyles, t domain.Task) string {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}

	parts := []string{s.id.Render(shortID(t.ID)), box}
	if t.StartTime != "" {
		parts = append(parts, s.event.Render(t.StartTime))
	}

	text := t.Text
	switch {
	case t.Done:
		text = s.done.Render(text)
	case t.Urgent:
		text = s.urgent.Render("! " + text)
	}
	parts = append(parts, text, s.owner.Render("@"+t.Owner))

	var extras []string
	if t.Project != "" {
		extras = append(extras, "#"+t.Project)
	}
	if t.EstimatedDuration > 0 {
		extras = append(extras, formatMinutes(t.EstimatedDuration))
	}
	if t.Recurrence.Repeats() {
		extras = append(extras, "("+string(t.Recurrence)+")")
	}
	if len(t.SharedWith) > 0 {
		extras = append(extras, "shared: "+strings.Join(t.SharedWith, ", "))
	}
	if t.IsSharedWithMe() {
		extras = append(extras, "from "+t.SharedBy)
	}
	if len(extras) > 0 {
		parts = append(parts, s.muted.Render(strings.Join(extras, " ")))
	}
	if t.WasCarriedOver && !t.Done {
		parts = append(parts, s.carried.Render("(carried over)"))
	}
	return strings.Join(parts, "  ")
}

func formatMinutes(m int) string {
	switch {
	case m < 60:
		return fmt.Sprintf("%dm", m)
	case m%60 == 0:
		return fmt.Sprintf("%dh", m/60)
	default:
		return fmt.Sprintf("%dh%02d", m/60, m%60)
	}
}

// reportOutcome warns when a write did not reach every store it targeted.
func reportOutcome(w io.Writer, out domain.WriteOutcome) {
	if out.Err == nil {
		return
	}
	switch {
	case out.CommittedLocally:
		_, _ = fmt.Fprintf(w, "Warning: saved locally, remote not updated: %v\n", out.Err)
	case out.CommittedRemotely:
		_, _ = fmt.Fprintf(w, "Warning: local cache unavailable, change kept in memory: %v\n", out.Err)
	default:
		_, _ = fmt.Fprintf(w, "Warning: change kept in memory only: %v\n", out.Err)
	}
}
