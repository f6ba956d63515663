package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/braindump/internal/domain"
)

// CarryOverOutput contains the result of a carry-over run.
// Fields are ordered to minimize memory padding.
type CarryOverOutput struct {
	Moved   []string            // IDs of tasks moved to today
	Outcome domain.WriteOutcome // Zero when nothing moved
}

// CarryOver moves overdue, incomplete tasks to today.
// Running it again on the same day changes nothing.
type CarryOver struct {
	store  domain.StateStore
	clock  domain.Clock
	logger domain.Logger
}

// NewCarryOver creates a new CarryOver use case.
func NewCarryOver(store domain.StateStore, clock domain.Clock, logger domain.Logger) *CarryOver {
	return &CarryOver{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Execute performs one carry-over pass. State is saved once, and only if at
// least one task moved; moved tasks are then pushed to the remote store.
func (uc *CarryOver) Execute(ctx context.Context) (*CarryOverOutput, error) {
	now := uc.clock.Now()

	var moved []string
	outcome := uc.store.Update(func(s *domain.State) bool {
		moved = domain.CarryOver(s, now)
		return len(moved) > 0
	})
	if len(moved) == 0 {
		return &CarryOverOutput{}, nil
	}

	uc.logger.Info("", "carry", fmt.Sprintf("moved %d tasks to %s", len(moved), domain.Today(now)))

	pushed := uc.store.PushTasks(ctx, moved)
	outcome.CommittedRemotely = uc.store.IsRemote() && pushed.Err == nil
	outcome.Err = errors.Join(outcome.Err, pushed.Err)
	return &CarryOverOutput{Moved: moved, Outcome: outcome}, nil
}
