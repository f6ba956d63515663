// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/braindump/internal/domain"
)

// EnvRemoteURL overrides remote.url when set.
const EnvRemoteURL = "BRAINDUMP_REMOTE_URL"

// Loader loads configuration from the global TOML file and the environment.
type Loader struct {
	getenv        func(string) string
	globalConfDir string // Path to global config directory (e.g., ~/.config/braindump)
}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{
		globalConfDir: DefaultGlobalConfigDir(),
		getenv:        os.Getenv,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory
// and environment lookup. This is useful for testing.
func NewLoaderWithGlobalDir(globalConfDir string, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{
		globalConfDir: globalConfDir,
		getenv:        getenv,
	}
}

// DefaultGlobalConfigDir returns the default global config directory.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// DefaultDataDir returns the default data directory holding the cache, token and logs.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return domain.DataDir(dataHome)
}

// Path returns the global config file path, or "" if no config directory is known.
func (l *Loader) Path() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

// Load returns the effective configuration: defaults <- global file <- environment.
// A missing file yields the defaults.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	if path := l.Path(); path != "" {
		file, err := l.loadFile(path)
		switch {
		case err == nil:
			base = mergeConfigs(base, file)
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	if url := strings.TrimSpace(l.getenv(EnvRemoteURL)); url != "" {
		base.Remote.URL = url
	}
	return base, nil
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "owners":
			list, ok := value.([]any)
			if !ok {
				warnings = append(warnings, "owners must be a list of strings")
				continue
			}
			for _, v := range list {
				if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
					res.Owners = append(res.Owners, strings.TrimSpace(s))
				}
			}
		case "remote":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "url":
						if s, ok := v.(string); ok {
							res.Remote.URL = s
						}
					case "timeout":
						d, err := parseTimeout(v)
						if err != nil {
							warnings = append(warnings, fmt.Sprintf("invalid [remote] timeout: %v", err))
							continue
						}
						res.Remote.Timeout = d
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [remote]: %s", k))
					}
				}
			}
		case "store":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "path":
						if s, ok := v.(string); ok {
							res.Store.Path = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
					}
				}
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						if s, ok := v.(string); ok {
							res.Log.Level = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseTimeout accepts a Go duration string ("10s") or a number of seconds.
func parseTimeout(v any) (time.Duration, error) {
	switch t := v.(type) {
	case string:
		d, err := time.ParseDuration(t)
		if err != nil {
			return 0, err
		}
		if d <= 0 {
			return 0, fmt.Errorf("must be positive: %s", t)
		}
		return d, nil
	case int64:
		if t <= 0 {
			return 0, fmt.Errorf("must be positive: %d", t)
		}
		return time.Duration(t) * time.Second, nil
	}
	return 0, fmt.Errorf("unsupported type %T", v)
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Owners:   append([]string{}, base.Owners...),
		Remote:   base.Remote,
		Store:    base.Store,
		Log:      base.Log,
		Warnings: append(append([]string{}, base.Warnings...), override.Warnings...),
	}

	if len(override.Owners) > 0 {
		result.Owners = append([]string{}, override.Owners...)
	}
	if override.Remote.URL != "" {
		result.Remote.URL = override.Remote.URL
	}
	if override.Remote.Timeout > 0 {
		result.Remote.Timeout = override.Remote.Timeout
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	return result
}
