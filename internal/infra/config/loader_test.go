package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/runoshun/braindump/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o600)
	require.NoError(t, err)
}

func noEnv(string) string { return "" }

func TestLoader_Load_MissingFileReturnsDefaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), noEnv)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_FullFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
owners = ["Thibaud", " Marc ", ""]

[remote]
url = "https://api.example.com"
timeout = "3s"

[store]
path = "/tmp/braindump.json"

[log]
level = "debug"
`)

	cfg, err := NewLoaderWithGlobalDir(dir, noEnv).Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"Thibaud", "Marc"}, cfg.Owners)
	assert.Equal(t, "https://api.example.com", cfg.Remote.URL)
	assert.Equal(t, 3*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, "/tmp/braindump.json", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[remote]
url = "https://api.example.com"
`)

	cfg, err := NewLoaderWithGlobalDir(dir, noEnv).Load()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRemoteTimeout, cfg.Remote.Timeout)
	assert.Equal(t, domain.DefaultLogLevel, cfg.Log.Level)
}

func TestLoader_Load_TimeoutInSeconds(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[remote]\ntimeout = 30\n")

	cfg, err := NewLoaderWithGlobalDir(dir, noEnv).Load()

	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Remote.Timeout)
}

func TestLoader_Load_Warnings(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
owners = "Thibaud"
colour = "blue"

[remote]
timeout = "soon"
retries = 3

[log]
format = "json"
`)

	cfg, err := NewLoaderWithGlobalDir(dir, noEnv).Load()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRemoteTimeout, cfg.Remote.Timeout)
	require.Len(t, cfg.Warnings, 5)
	assert.Contains(t, cfg.Warnings, "owners must be a list of strings")
	assert.Contains(t, cfg.Warnings, "unknown section: colour")
	assert.Contains(t, cfg.Warnings, "unknown key in [remote]: retries")
	assert.Contains(t, cfg.Warnings, "unknown key in [log]: format")
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "owners = [")

	_, err := NewLoaderWithGlobalDir(dir, noEnv).Load()

	assert.Error(t, err)
}

func TestLoader_Load_EnvOverridesRemoteURL(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[remote]\nurl = \"https://file.example.com\"\n")
	env := map[string]string{EnvRemoteURL: "https://env.example.com"}

	cfg, err := NewLoaderWithGlobalDir(dir, func(k string) string { return env[k] }).Load()

	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Remote.URL)
}

func TestLoader_Path(t *testing.T) {
	assert.Empty(t, NewLoaderWithGlobalDir("", nil).Path())
	assert.Equal(t, filepath.Join("/cfg", domain.ConfigFileName), NewLoaderWithGlobalDir("/cfg", nil).Path())
}

func TestManager_InitGlobalConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "braindump")
	manager := NewManagerWithGlobalDir(dir)

	path, err := manager.InitGlobalConfig([]string{"Thibaud", "Marc"})
	require.NoError(t, err)

	info := manager.GetGlobalConfigInfo()
	assert.Equal(t, path, info.Path)
	assert.True(t, info.Exists)
	assert.Contains(t, info.Content, `owners = ["Thibaud", "Marc"]`)

	// The generated template loads cleanly.
	cfg, err := NewLoaderWithGlobalDir(dir, noEnv).Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, []string{"Thibaud", "Marc"}, cfg.Owners)
	assert.Equal(t, domain.DefaultRemoteTimeout, cfg.Remote.Timeout)

	_, err = manager.InitGlobalConfig(nil)
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestManager_GetGlobalConfigInfo_Missing(t *testing.T) {
	dir := t.TempDir()

	info := NewManagerWithGlobalDir(dir).GetGlobalConfigInfo()

	assert.Equal(t, filepath.Join(dir, domain.ConfigFileName), info.Path)
	assert.False(t, info.Exists)
	assert.Empty(t, info.Content)
	assert.False(t, NewManagerWithGlobalDir("").GetGlobalConfigInfo().Exists)
}
