package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/braindump/internal/domain"
	"github.com/runoshun/braindump/internal/extract"
)

// RescheduleTaskInput contains the parameters for moving a task to a new date.
type RescheduleTaskInput struct {
	Ref  string // Task id or unique id prefix
	When string // YYYY-MM-DD or a date phrase such as "tomorrow" or "vendredi"
}

// RescheduleTask moves a task to another date.
type RescheduleTask struct {
	store  domain.StateStore
	clock  domain.Clock
	logger domain.Logger
}

// NewRescheduleTask creates a new RescheduleTask use case.
func NewRescheduleTask(store domain.StateStore, clock domain.Clock, logger domain.Logger) *RescheduleTask {
	return &RescheduleTask{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Execute resolves in.When against today and moves the task there.
// Moving a task by hand clears its carried-over marker.
func (uc *RescheduleTask) Execute(ctx context.Context, in RescheduleTaskInput) (*TaskOutput, error) {
	date, err := uc.resolve(in.When)
	if err != nil {
		return nil, err
	}
	task, outcome, err := uc.store.UpdateTask(ctx, in.Ref, func(t *domain.Task) error {
		t.Date = date
		t.WasCarriedOver = false
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reschedule task: %w", err)
	}
	uc.logger.Info(task.ID, "task", fmt.Sprintf("moved to %s", date))
	return &TaskOutput{Task: task, Outcome: outcome}, nil
}

func (uc *RescheduleTask) resolve(when string) (string, error) {
	when = strings.TrimSpace(when)
	if d, ok := domain.CanonicalDate(when); ok {
		return d, nil
	}
	if d, ok := extract.MatchDate(when, uc.clock.Now()); ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidDate, when)
}
