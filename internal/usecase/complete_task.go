package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/braindump/internal/domain"
)

// TaskOutput contains a task after a single-task write.
// Fields are ordered to minimize memory padding.
type TaskOutput struct {
	Outcome domain.WriteOutcome
	Task    domain.Task
}

// CompleteTaskInput contains the parameters for toggling completion.
type CompleteTaskInput struct {
	Ref string // Task id or unique id prefix
}

// CompleteTaskOutput contains the result of toggling completion.
// Fields are ordered to minimize memory padding.
type CompleteTaskOutput struct {
	Next *TaskOutput // Next occurrence, set when a recurring task was completed
	TaskOutput
}

// CompleteTask toggles a task's done flag. Completing a recurring task
// schedules its next occurrence as a new task.
type CompleteTask struct {
	store  domain.StateStore
	logger domain.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(store domain.StateStore, logger domain.Logger) *CompleteTask {
	return &CompleteTask{
		store:  store,
		logger: logger,
	}
}

// Execute toggles the task identified by in.Ref.
func (uc *CompleteTask) Execute(ctx context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	task, outcome, err := uc.store.UpdateTask(ctx, in.Ref, func(t *domain.Task) error {
		t.Done = !t.Done
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}
	out := &CompleteTaskOutput{TaskOutput: TaskOutput{Task: task, Outcome: outcome}}
	if !task.Done {
		uc.logger.Info(task.ID, "task", "reopened")
		return out, nil
	}
	uc.logger.Info(task.ID, "task", "completed")

	date, ok := task.NextOccurrence()
	if !ok {
		return out, nil
	}
	if uc.scheduled(task, date) {
		uc.logger.Debug(task.ID, "task", fmt.Sprintf("next occurrence on %s already exists", date))
		return out, nil
	}
	next := domain.Task{
		Text:              task.Text,
		Owner:             task.Owner,
		Date:              date,
		Urgent:            task.Urgent,
		EstimatedDuration: task.EstimatedDuration,
		Recurrence:        task.Recurrence,
		Project:           task.Project,
		StartTime:         task.StartTime,
		IsEvent:           task.IsEvent,
		SharedWith:        task.Clone().SharedWith,
	}
	created, nextOutcome := uc.store.CreateTask(ctx, next)
	uc.logger.Info(created.ID, "task", fmt.Sprintf("next occurrence of %s on %s", task.ID, date))
	out.Next = &TaskOutput{Task: created, Outcome: nextOutcome}
	return out, nil
}

// scheduled reports whether the occurrence of task on date already exists,
// as it does when a completed task is reopened and completed again.
func (uc *CompleteTask) scheduled(task domain.Task, date string) bool {
	for _, t := range uc.store.State().Tasks {
		if t.ID != task.ID && t.Date == date && t.Text == task.Text &&
			t.Owner == task.Owner && t.Recurrence == task.Recurrence {
			return true
		}
	}
	return false
}
