package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/braindump/internal/domain"
)

// SyncRemoteOutput contains the result of a remote sync.
type SyncRemoteOutput struct {
	Tasks int // Number of tasks now held locally
}

// SyncRemote replaces the local state with the remote copy.
type SyncRemote struct {
	store domain.StateStore
}

// NewSyncRemote creates a new SyncRemote use case.
func NewSyncRemote(store domain.StateStore) *SyncRemote {
	return &SyncRemote{store: store}
}

// Execute loads tasks and settings from the remote store.
// Local state is untouched when the remote store fails.
func (uc *SyncRemote) Execute(ctx context.Context) (*SyncRemoteOutput, error) {
	if err := uc.store.LoadRemote(ctx); err != nil {
		return nil, fmt.Errorf("sync remote: %w", err)
	}
	return &SyncRemoteOutput{Tasks: len(uc.store.State().Tasks)}, nil
}
