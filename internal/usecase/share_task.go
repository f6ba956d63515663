package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/runoshun/braindump/internal/domain"
)

// ShareTaskInput contains the parameters for sharing a task.
// Fields are ordered to minimize memory padding.
type ShareTaskInput struct {
	Ref          string // Task id or unique id prefix
	Collaborator string // Name or address of the collaborator
	Remove       bool   // Stop sharing instead of sharing
}

// ShareTask adds or removes a collaborator on a task.
type ShareTask struct {
	store  domain.StateStore
	logger domain.Logger
}

// NewShareTask creates a new ShareTask use case.
func NewShareTask(store domain.StateStore, logger domain.Logger) *ShareTask {
	return &ShareTask{
		store:  store,
		logger: logger,
	}
}

// Execute updates the sharing list. It returns domain.ErrNoFieldsToUpdate
// when the collaborator is already in the requested state.
func (uc *ShareTask) Execute(ctx context.Context, in ShareTaskInput) (*TaskOutput, error) {
	who := strings.TrimSpace(in.Collaborator)
	if who == "" {
		return nil, domain.ErrEmptyCollaborator
	}

	task, outcome, err := uc.store.UpdateTask(ctx, in.Ref, func(t *domain.Task) error {
		i := slices.Index(t.SharedWith, who)
		switch {
		case in.Remove && i >= 0:
			t.SharedWith = slices.Delete(t.SharedWith, i, i+1)
		case !in.Remove && i < 0:
			t.SharedWith = append(t.SharedWith, who)
		default:
			return domain.ErrNoFieldsToUpdate
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("share task: %w", err)
	}

	if in.Remove {
		uc.logger.Info(task.ID, "share", fmt.Sprintf("unshared with %s", who))
	} else {
		uc.logger.Info(task.ID, "share", fmt.Sprintf("shared with %s", who))
	}
	return &TaskOutput{Task: task, Outcome: outcome}, nil
}
