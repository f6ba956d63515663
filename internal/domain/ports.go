package domain

import (
	"context"
	"time"
)

// KVStore is a durable local key-value store.
// Implementations may be unavailable; callers must treat every error as
// "storage not usable" and continue in memory.
type KVStore interface {
	// Get returns the value for key. ok is false if the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}

// RemoteStore is the authenticated remote task/settings API.
type RemoteStore interface {
	// ListTasks returns every task visible to the user.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask stores a new task and returns the server's copy.
	CreateTask(ctx context.Context, task Task) (Task, error)

	// UpdateTask replaces a task and returns the server's copy.
	UpdateTask(ctx context.Context, task Task) (Task, error)

	// DeleteTask removes a task by id.
	DeleteTask(ctx context.Context, id string) error

	// GetSettings returns the user's settings.
	GetSettings(ctx context.Context) (Settings, error)

	// SaveSettings replaces the user's settings.
	SaveSettings(ctx context.Context, settings Settings) (Settings, error)
}

// Authenticator tells whether a remote session exists and supplies its credential.
type Authenticator interface {
	// IsAuthenticated returns true if a credential is available.
	IsAuthenticated() bool

	// Credential returns the bearer credential for remote calls.
	Credential(ctx context.Context) (string, error)
}

// StateStore is the Persistence Layer as seen by the use cases.
// Writes never fail outright: they report a WriteOutcome. The error return is
// reserved for caller mistakes such as an unknown task reference.
type StateStore interface {
	// State returns a snapshot of the current state.
	State() State
	// Settings returns the current settings.
	Settings() Settings
	// Find resolves a task id or unique id prefix.
	Find(ref string) (Task, error)
	// CreateTask normalizes and stores a new task.
	CreateTask(ctx context.Context, task Task) (Task, WriteOutcome)
	// UpdateTask applies fn to the task identified by ref and stores the result.
	UpdateTask(ctx context.Context, ref string, fn func(*Task) error) (Task, WriteOutcome, error)
	// DeleteTask removes the task identified by ref.
	DeleteTask(ctx context.Context, ref string) (Task, WriteOutcome, error)
	// SaveSettings replaces the settings.
	SaveSettings(ctx context.Context, settings Settings) (Settings, WriteOutcome)
	// Update applies fn to the live state and saves once if fn reports a change.
	Update(fn func(*State) bool) WriteOutcome
	// PushTasks sends the local copy of each task to the remote store.
	PushTasks(ctx context.Context, ids []string) WriteOutcome
	// LoadRemote replaces local state with the remote copy.
	LoadRemote(ctx context.Context) error
	// IsRemote returns true if remote calls will be attempted.
	IsRemote() bool
}

// CredentialStore persists the bearer token used by the Authenticator.
type CredentialStore interface {
	// Save stores a token. A zero ttl means it never expires.
	Save(token string, ttl time.Duration) error
	// Remove deletes the stored token.
	Remove() error
}

// ConfigManager reads and creates the global configuration file.
type ConfigManager interface {
	// GetGlobalConfigInfo returns the path and content of the config file.
	GetGlobalConfigInfo() ConfigInfo
	// InitGlobalConfig writes a template listing owners and returns its path.
	InitGlobalConfig(owners []string) (string, error)
}

// InputSurface is where captured text was typed. It is cleared as soon as
// captured tasks are dispatched, without waiting for the remote store.
type InputSurface interface {
	Clear() error
}

// Logger provides logging functionality.
type Logger interface {
	// Debug logs a debug message.
	Debug(taskID, category, msg string)
	// Info logs an info message.
	Info(taskID, category, msg string)
	// Warn logs a warning message.
	Warn(taskID, category, msg string)
	// Error logs an error message.
	Error(taskID, category, msg string)
}

// NopLogger discards every entry.
type NopLogger struct{}

// Debug does nothing.
func (NopLogger) Debug(string, string, string) {}

// Info does nothing.
func (NopLogger) Info(string, string, string) {}

// Warn does nothing.
func (NopLogger) Warn(string, string, string) {}

// Error does nothing.
func (NopLogger) Error(string, string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
