package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/braindump/internal/domain"
)

// ToggleUrgentInput contains the parameters for flipping urgency.
type ToggleUrgentInput struct {
	Ref string // Task id or unique id prefix
}

// ToggleUrgent flips a task's urgent flag.
type ToggleUrgent struct {
	store  domain.StateStore
	logger domain.Logger
}

// NewToggleUrgent creates a new ToggleUrgent use case.
func NewToggleUrgent(store domain.StateStore, logger domain.Logger) *ToggleUrgent {
	return &ToggleUrgent{
		store:  store,
		logger: logger,
	}
}

// Execute flips the urgent flag of the task identified by in.Ref.
func (uc *ToggleUrgent) Execute(ctx context.Context, in ToggleUrgentInput) (*TaskOutput, error) {
	task, outcome, err := uc.store.UpdateTask(ctx, in.Ref, func(t *domain.Task) error {
		t.Urgent = !t.Urgent
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("toggle urgent: %w", err)
	}
	uc.logger.Info(task.ID, "task", fmt.Sprintf("urgent=%t", task.Urgent))
	return &TaskOutput{Task: task, Outcome: outcome}, nil
}
