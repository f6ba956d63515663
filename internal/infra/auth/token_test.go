package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/runoshun/braindump/internal/domain"
	"github.com/runoshun/braindump/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenFile(t *testing.T) (*TokenFile, *testutil.MockClock) {
	t.Helper()
	clock := &testutil.MockClock{NowTime: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	return NewTokenFile(filepath.Join(t.TempDir(), "token.json"), clock), clock
}

func TestTokenFile_NoToken(t *testing.T) {
	a, _ := newTestTokenFile(t)

	assert.False(t, a.IsAuthenticated())
	_, err := a.Credential(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenFile_SaveAndCredential(t *testing.T) {
	a, _ := newTestTokenFile(t)

	require.NoError(t, a.Save("  secret-token \n", 0))

	assert.True(t, a.IsAuthenticated())
	cred, err := a.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret-token", cred)

	tok, err := a.Token()
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)

	info, err := os.Stat(a.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestTokenFile_SaveEmpty(t *testing.T) {
	a, _ := newTestTokenFile(t)

	err := a.Save("   ", 0)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.False(t, a.IsAuthenticated())
}

func TestTokenFile_Expiry(t *testing.T) {
	a, clock := newTestTokenFile(t)
	require.NoError(t, a.Save("secret", time.Hour))

	assert.True(t, a.IsAuthenticated())

	clock.NowTime = clock.NowTime.Add(2 * time.Hour)
	assert.False(t, a.IsAuthenticated())
}

func TestTokenFile_Remove(t *testing.T) {
	a, _ := newTestTokenFile(t)
	require.NoError(t, a.Save("secret", 0))

	require.NoError(t, a.Remove())
	assert.False(t, a.IsAuthenticated())

	// Second removal is a no-op.
	require.NoError(t, a.Remove())
}

func TestTokenFile_CorruptFile(t *testing.T) {
	a, _ := newTestTokenFile(t)
	require.NoError(t, os.WriteFile(a.Path(), []byte("not json"), 0o600))

	assert.False(t, a.IsAuthenticated())
	_, err := a.Credential(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
