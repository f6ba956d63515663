// Package auth provides a bearer-token authenticator backed by a token file.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/runoshun/braindump/internal/domain"
	"golang.org/x/oauth2"
)

// TokenFile implements domain.Authenticator by reading an oauth2.Token from disk.
// The file is re-read on every call so that login/logout from another process
// takes effect without a restart.
type TokenFile struct {
	clock domain.Clock
	path  string
}

// NewTokenFile creates an authenticator for the token stored at path.
func NewTokenFile(path string, clock domain.Clock) *TokenFile {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &TokenFile{path: path, clock: clock}
}

// Path returns the token file path.
func (a *TokenFile) Path() string {
	return a.path
}

// IsAuthenticated returns true if a usable token is stored.
func (a *TokenFile) IsAuthenticated() bool {
	_, err := a.token()
	return err == nil
}

// Credential returns the stored access token.
func (a *TokenFile) Credential(_ context.Context) (string, error) {
	tok, err := a.token()
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// Token implements oauth2.TokenSource.
func (a *TokenFile) Token() (*oauth2.Token, error) {
	return a.token()
}

// Save stores a bearer token. A zero ttl means the token never expires.
func (a *TokenFile) Save(accessToken string, ttl time.Duration) error {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return fmt.Errorf("save token: %w", domain.ErrUnauthenticated)
	}
	tok := &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}
	if ttl > 0 {
		tok.Expiry = a.clock.Now().Add(ttl)
	}
	return saveToken(a.path, tok)
}

// Remove deletes the stored token. Removing a missing token is not an error.
func (a *TokenFile) Remove() error {
	if err := os.Remove(a.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (a *TokenFile) token() (*oauth2.Token, error) {
	tok, err := tokenFromFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", domain.ErrUnauthenticated)
	}
	if !tok.Expiry.IsZero() && !tok.Expiry.After(a.clock.Now()) {
		return nil, fmt.Errorf("%w: token expired at %s", domain.ErrUnauthenticated, tok.Expiry.Format(time.RFC3339))
	}
	return tok, nil
}

// tokenFromFile reads an oauth2.Token from a JSON file.
func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token from %s: %w", path, err)
	}
	return tok, nil
}

// saveToken writes an oauth2.Token to a JSON file readable only by the owner.
func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open token file: %w", err)
	}
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode token: %w", err)
	}
	return f.Close()
}

// Ensure TokenFile implements the authenticator and token source interfaces.
var (
	_ domain.Authenticator = (*TokenFile)(nil)
	_ oauth2.TokenSource   = (*TokenFile)(nil)
)
