// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/braindump/internal/domain"
	"github.com/runoshun/braindump/internal/extract"
)

// Session carries the manual context the user selected before capturing.
// It is passed explicitly to every capture; nothing is kept globally.
type Session struct {
	ManualDate    string // YYYY-MM-DD; replaces the detected date when set
	SelectedOwner string // default owner for quick capture
	ManualUrgent  bool   // OR-ed with detected urgency
}

// CaptureInput contains the parameters for capturing text.
type CaptureInput struct {
	Session Session
	Text    string
}

// CaptureOutput contains the result of a capture.
// Fields are ordered to minimize memory padding.
type CaptureOutput struct {
	Tasks    []domain.Task         // Created tasks in input order
	Outcomes []domain.WriteOutcome // Outcomes[i] belongs to Tasks[i]
	Skipped  int                   // Non-blank lines discarded for an empty title
}

// Partial returns true if any task missed the remote store or the cache.
func (o *CaptureOutput) Partial() bool {
	for _, out := range o.Outcomes {
		if out.Err != nil {
			return true
		}
	}
	return false
}

// capturer holds what both capture shapes need.
type capturer struct {
	store   domain.StateStore
	surface domain.InputSurface
	clock   domain.Clock
	logger  domain.Logger
}

// QuickCapture turns a single line into a task.
type QuickCapture struct {
	capturer
}

// NewQuickCapture creates a new QuickCapture use case.
// surface may be nil when there is nothing to clear.
func NewQuickCapture(store domain.StateStore, surface domain.InputSurface, clock domain.Clock, logger domain.Logger) *QuickCapture {
	return &QuickCapture{capturer{store: store, surface: surface, clock: clock, logger: logger}}
}

// Execute extracts one task from in.Text and stores it.
// The session's selected owner is the fallback owner for this line.
func (uc *QuickCapture) Execute(ctx context.Context, in CaptureInput) (*CaptureOutput, error) {
	session, err := canonicalSession(in.Session)
	if err != nil {
		return nil, err
	}
	engine := extract.New(uc.store.Settings().Owners).WithDefaultOwner(session.SelectedOwner)

	line := strings.TrimSpace(strings.ReplaceAll(in.Text, "\n", " "))
	task, ok := buildTask(engine, line, session, uc.clock)
	if !ok {
		return nil, domain.ErrNothingToCapture
	}
	return uc.dispatch(ctx, []domain.Task{task}, 0), nil
}

// BulkCapture turns every line of a text block into a task.
type BulkCapture struct {
	capturer
}

// NewBulkCapture creates a new BulkCapture use case.
// surface may be nil when there is nothing to clear.
func NewBulkCapture(store domain.StateStore, surface domain.InputSurface, clock domain.Clock, logger domain.Logger) *BulkCapture {
	return &BulkCapture{capturer{store: store, surface: surface, clock: clock, logger: logger}}
}

// Execute processes each line in order. Blank lines are skipped and lines
// whose title is empty after cleanup are discarded. The owner of each line is
// the one detected in it, or the settings' default owner.
func (uc *BulkCapture) Execute(ctx context.Context, in CaptureInput) (*CaptureOutput, error) {
	session, err := canonicalSession(in.Session)
	if err != nil {
		return nil, err
	}
	engine := extract.New(uc.store.Settings().Owners)

	var (
		tasks   []domain.Task
		skipped int
	)
	for _, line := range strings.Split(in.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		task, ok := buildTask(engine, line, session, uc.clock)
		if !ok {
			skipped++
			continue
		}
		tasks = append(tasks, task)
	}
	if len(tasks) == 0 {
		return nil, domain.ErrNothingToCapture
	}
	return uc.dispatch(ctx, tasks, skipped), nil
}

// dispatch clears the input surface, then creates tasks one after another so
// the remote store sees them in input order.
func (c *capturer) dispatch(ctx context.Context, tasks []domain.Task, skipped int) *CaptureOutput {
	if c.surface != nil {
		if err := c.surface.Clear(); err != nil {
			c.logger.Warn("", "capture", fmt.Sprintf("clear input: %v", err))
		}
	}

	out := &CaptureOutput{
		Tasks:    make([]domain.Task, 0, len(tasks)),
		Outcomes: make([]domain.WriteOutcome, 0, len(tasks)),
		Skipped:  skipped,
	}
	for _, t := range tasks {
		created, outcome := c.store.CreateTask(ctx, t)
		out.Tasks = append(out.Tasks, created)
		out.Outcomes = append(out.Outcomes, outcome)
		c.logger.Info(created.ID, "capture", fmt.Sprintf("created: %q", created.Text))
	}
	return out
}

// buildTask applies the session overrides to the extracted frame.
// ok is false when the line has no title left after cleanup.
func buildTask(engine *extract.Engine, line string, session Session, clock domain.Clock) (domain.Task, bool) {
	now := clock.Now()
	frame := engine.Extract(line, now)
	if frame == nil || frame.Title == "" {
		return domain.Task{}, false
	}

	task := domain.Task{
		Text:              frame.Title,
		Owner:             frame.Owner,
		Date:              frame.Date,
		Urgent:            frame.Urgent || session.ManualUrgent,
		EstimatedDuration: frame.Duration,
		Recurrence:        frame.Recurrence,
		Project:           frame.Project,
		StartTime:         frame.Time,
		IsEvent:           frame.Time != "",
	}
	if session.ManualDate != "" {
		task.Date = session.ManualDate
	}
	return domain.EnsureTask(task, engine.DefaultOwner(), now), true
}

// canonicalSession zero-pads the manual date, rejecting anything that is not
// a calendar date.
func canonicalSession(s Session) (Session, error) {
	if s.ManualDate == "" {
		return s, nil
	}
	d, ok := domain.CanonicalDate(s.ManualDate)
	if !ok {
		return s, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s.ManualDate)
	}
	s.ManualDate = d
	return s, nil
}
