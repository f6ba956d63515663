package domain

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.toml"

// AppName names the per-user config and data directories.
const AppName = "braindump"

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Owners   []string     `toml:"owners,omitempty"` // Seeds Settings.Owners when state has none
	Warnings []string     `toml:"-"`
	Remote   RemoteConfig `toml:"remote"`
	Store    StoreConfig  `toml:"store"`
	Log      LogConfig    `toml:"log"`
}

// RemoteConfig holds settings from the [remote] section.
type RemoteConfig struct {
	URL     string        `toml:"url,omitempty"`     // Base URL of the remote API (empty = local only)
	Timeout time.Duration `toml:"timeout,omitempty"` // Transport timeout
}

// StoreConfig holds settings from the [store] section.
type StoreConfig struct {
	Path string `toml:"path,omitempty"` // Cache file path override
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// Default configuration values.
const (
	DefaultLogLevel      = "info"
	DefaultRemoteTimeout = 10 * time.Second
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Remote: RemoteConfig{Timeout: DefaultRemoteTimeout},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// GlobalConfigDir returns the config directory under configHome (e.g. ~/.config/braindump).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppName)
}

// DataDir returns the data directory under dataHome (e.g. ~/.local/share/braindump).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppName)
}

// StatePath returns the default cache file path inside dataDir.
func StatePath(dataDir string) string {
	return filepath.Join(dataDir, "state.json")
}

// TokenPath returns the credential file path inside dataDir.
func TokenPath(dataDir string) string {
	return filepath.Join(dataDir, "token.json")
}

// LogPath returns the log file path inside dataDir.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", AppName+".log")
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// RenderConfigTemplate returns a commented config file seeded with owners.
func RenderConfigTemplate(owners []string) string {
	owners = NormalizeSettings(Settings{Owners: owners}, nil).Owners
	quoted := make([]string, len(owners))
	for i, o := range owners {
		quoted[i] = strconv.Quote(o)
	}
	return fmt.Sprintf(`# braindump configuration

# People tasks can be assigned to. The first one is the default owner.
owners = [%s]

[remote]
# Base URL of the remote task API. Leave empty to work offline only.
# BRAINDUMP_REMOTE_URL overrides this value.
url = ""
timeout = %q

[store]
# Local cache file. Defaults to $XDG_DATA_HOME/braindump/state.json.
path = ""

[log]
# debug, info, warn or error
level = %q
`, strings.Join(quoted, ", "), DefaultRemoteTimeout.String(), DefaultLogLevel)
}
