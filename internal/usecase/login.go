package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/braindump/internal/domain"
)

// LoginInput contains the parameters for storing a remote credential.
// Fields are ordered to minimize memory padding.
type LoginInput struct {
	Token string        // Bearer token issued by the remote service
	TTL   time.Duration // Lifetime of the token (0 = no expiry)
	Sync  bool          // Load the remote state right after login
}

// LoginOutput contains the result of a login.
type LoginOutput struct {
	SyncErr error // Set when Sync was requested and failed
	Synced  bool
}

// Login stores a credential so later writes reach the remote store.
type Login struct {
	creds  domain.CredentialStore
	store  domain.StateStore
	logger domain.Logger
}

// NewLogin creates a new Login use case.
func NewLogin(creds domain.CredentialStore, store domain.StateStore, logger domain.Logger) *Login {
	return &Login{
		creds:  creds,
		store:  store,
		logger: logger,
	}
}

// Execute saves the token and optionally pulls the remote state.
// A failed sync does not undo the login.
func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	if err := uc.creds.Save(in.Token, in.TTL); err != nil {
		return nil, fmt.Errorf("save credential: %w", err)
	}
	uc.logger.Info("", "auth", "logged in")

	out := &LoginOutput{}
	if !in.Sync {
		return out, nil
	}
	if err := uc.store.LoadRemote(ctx); err != nil {
		out.SyncErr = err
		return out, nil
	}
	out.Synced = true
	return out, nil
}

// Logout removes the stored credential. Local state is kept.
type Logout struct {
	creds  domain.CredentialStore
	logger domain.Logger
}

// NewLogout creates a new Logout use case.
func NewLogout(creds domain.CredentialStore, logger domain.Logger) *Logout {
	return &Logout{
		creds:  creds,
		logger: logger,
	}
}

// Execute removes the credential.
func (uc *Logout) Execute(_ context.Context) error {
	if err := uc.creds.Remove(); err != nil {
		return fmt.Errorf("remove credential: %w", err)
	}
	uc.logger.Info("", "auth", "logged out")
	return nil
}
