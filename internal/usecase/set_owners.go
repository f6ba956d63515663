package usecase

import (
	"context"
	"strings"

	"github.com/runoshun/braindump/internal/domain"
)

// SetOwnersInput contains the parameters for replacing the owner list.
type SetOwnersInput struct {
	Owners []string // First entry becomes the default owner
}

// SetOwnersOutput contains the stored settings.
// Fields are ordered to minimize memory padding.
type SetOwnersOutput struct {
	Outcome  domain.WriteOutcome
	Settings domain.Settings
}

// SetOwners replaces the configured owners.
type SetOwners struct {
	store  domain.StateStore
	logger domain.Logger
}

// NewSetOwners creates a new SetOwners use case.
func NewSetOwners(store domain.StateStore, logger domain.Logger) *SetOwners {
	return &SetOwners{
		store:  store,
		logger: logger,
	}
}

// Execute stores the trimmed, de-duplicated owners.
func (uc *SetOwners) Execute(ctx context.Context, in SetOwnersInput) (*SetOwnersOutput, error) {
	owners := make([]string, 0, len(in.Owners))
	for _, o := range in.Owners {
		if o = strings.TrimSpace(o); o != "" {
			owners = append(owners, o)
		}
	}
	if len(owners) == 0 {
		return nil, domain.ErrEmptyOwners
	}

	settings, outcome := uc.store.SaveSettings(ctx, domain.Settings{Owners: owners})
	uc.logger.Info("", "settings", "owners: "+strings.Join(settings.Owners, ", "))
	return &SetOwnersOutput{Settings: settings, Outcome: outcome}, nil
}
