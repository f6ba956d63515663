package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/braindump/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	Ref string // Task id or unique id prefix
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	store  domain.StateStore
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(store domain.StateStore, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		store:  store,
		logger: logger,
	}
}

// Execute deletes the task identified by in.Ref.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*TaskOutput, error) {
	task, outcome, err := uc.store.DeleteTask(ctx, in.Ref)
	if err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	uc.logger.Info(task.ID, "task", "deleted")
	return &TaskOutput{Task: task, Outcome: outcome}, nil
}
