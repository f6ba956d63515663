// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/braindump/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// CallLog records calls across several mocks so tests can assert ordering.
type CallLog struct {
	calls []string
	mu    sync.Mutex
}

// Record appends a call.
func (l *CallLog) Record(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

// Calls returns a copy of the recorded calls.
func (l *CallLog) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.calls)
}

// MockKVStore is a test double for domain.KVStore.
// Fields are ordered to minimize memory padding.
type MockKVStore struct {
	Entries   map[string]string
	GetErr    error
	SetErr    error
	RemoveErr error
	SetCalls  int
	mu        sync.Mutex
}

// NewMockKVStore creates a MockKVStore with an initialized map.
func NewMockKVStore() *MockKVStore {
	return &MockKVStore{Entries: make(map[string]string)}
}

// NewFailingKVStore creates a MockKVStore whose every call fails.
func NewFailingKVStore() *MockKVStore {
	err := fmt.Errorf("%w: quota exceeded", domain.ErrStorageUnavailable)
	return &MockKVStore{
		Entries:   make(map[string]string),
		GetErr:    err,
		SetErr:    err,
		RemoveErr: err,
	}
}

// Ensure MockKVStore implements domain.KVStore interface.
var _ domain.KVStore = (*MockKVStore)(nil)

// Get returns the stored value or the configured error.
func (m *MockKVStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.Entries[key]
	return v, ok, nil
}

// Set records the call and stores the value unless an error is configured.
func (m *MockKVStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Entries[key] = value
	return nil
}

// Remove deletes the key unless an error is configured.
func (m *MockKVStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.Entries, key)
	return nil
}

// Value returns the stored value for key.
func (m *MockKVStore) Value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Entries[key]
}

// MockRemoteStore is a test double for domain.RemoteStore.
// Fields are ordered to minimize memory padding.
type MockRemoteStore struct {
	Log             *CallLog
	Tasks           map[string]domain.Task
	ListErr         error
	CreateErr       error
	UpdateErr       error
	DeleteErr       error
	GetSettingsErr  error
	SaveSettingsErr error
	Settings        domain.Settings
	Created         []domain.Task
	Updated         []domain.Task
	Deleted         []string
	SavedSettings   []domain.Settings
	mu              sync.Mutex
}

// NewMockRemoteStore creates a MockRemoteStore with an initialized map.
func NewMockRemoteStore() *MockRemoteStore {
	return &MockRemoteStore{Tasks: make(map[string]domain.Task)}
}

// Ensure MockRemoteStore implements domain.RemoteStore interface.
var _ domain.RemoteStore = (*MockRemoteStore)(nil)

// ListTasks returns the stored tasks sorted by id.
func (m *MockRemoteStore) ListTasks(_ context.Context) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Log.Record("remote.list")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	ids := slices.Sorted(maps.Keys(m.Tasks))
	tasks := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, m.Tasks[id].Clone())
	}
	return tasks, nil
}

// CreateTask records the call and stores the task.
func (m *MockRemoteStore) CreateTask(_ context.Context, task domain.Task) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Log.Record("remote.create %s", task.Text)
	m.Created = append(m.Created, task.Clone())
	if m.CreateErr != nil {
		return domain.Task{}, m.CreateErr
	}
	m.Tasks[task.ID] = task.Clone()
	return task, nil
}

// UpdateTask records the call and stores the task.
func (m *MockRemoteStore) UpdateTask(_ context.Context, task domain.Task) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Log.Record("remote.update %s", task.ID)
	m.Updated = append(m.Updated, task.Clone())
	if m.UpdateErr != nil {
		return domain.Task{}, m.UpdateErr
	}
	m.Tasks[task.ID] = task.Clone()
	return task, nil
}

// DeleteTask records the call and removes the task.
func (m *MockRemoteStore) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Log.Record("remote.delete %s", id)
	m.Deleted = append(m.Deleted, id)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Tasks, id)
	return nil
}

// GetSettings returns the stored settings.
func (m *MockRemoteStore) GetSettings(_ context.Context) (domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Log.Record("remote.settings")
	if m.GetSettingsErr != nil {
		return domain.Settings{}, m.GetSettingsErr
	}
	return domain.Settings{Owners: slices.Clone(m.Settings.Owners)}, nil
}

// SaveSettings records the call and stores the settings.
func (m *MockRemoteStore) SaveSettings(_ context.Context, settings domain.Settings) (domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Log.Record("remote.saveSettings")
	m.SavedSettings = append(m.SavedSettings, settings)
	if m.SaveSettingsErr != nil {
		return domain.Settings{}, m.SaveSettingsErr
	}
	m.Settings = settings
	return settings, nil
}

// MockAuthenticator is a test double for domain.Authenticator.
type MockAuthenticator struct {
	Err           error
	Token         string
	Authenticated bool
}

// Ensure MockAuthenticator implements domain.Authenticator interface.
var _ domain.Authenticator = (*MockAuthenticator)(nil)

// IsAuthenticated returns the configured value.
func (m *MockAuthenticator) IsAuthenticated() bool {
	return m.Authenticated
}

// Credential returns the configured token or error.
func (m *MockAuthenticator) Credential(_ context.Context) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if !m.Authenticated {
		return "", domain.ErrUnauthenticated
	}
	return m.Token, nil
}

// MockSurface is a test double for domain.InputSurface.
type MockSurface struct {
	Log      *CallLog
	ClearErr error
	Cleared  int
}

// Ensure MockSurface implements domain.InputSurface interface.
var _ domain.InputSurface = (*MockSurface)(nil)

// Clear records the call.
func (m *MockSurface) Clear() error {
	m.Log.Record("surface.clear")
	m.Cleared++
	return m.ClearErr
}

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level    string
	TaskID   string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) add(level, taskID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID, category, msg string) { m.add("DEBUG", taskID, category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(taskID, category, msg string) { m.add("INFO", taskID, category, msg) }

// Warn records a warn entry.
func (m *MockLogger) Warn(taskID, category, msg string) { m.add("WARN", taskID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(taskID, category, msg string) { m.add("ERROR", taskID, category, msg) }

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCredentialStore is a test double for domain.CredentialStore.
// When Auth is set, Save and Remove flip its Authenticated flag.
// Fields are ordered to minimize memory padding.
type MockCredentialStore struct {
	SaveErr   error
	RemoveErr error
	Auth      *MockAuthenticator
	Token     string
	TTL       time.Duration
	Removed   int
}

// Ensure MockCredentialStore implements domain.CredentialStore interface.
var _ domain.CredentialStore = (*MockCredentialStore)(nil)

// Save records the token.
func (m *MockCredentialStore) Save(token string, ttl time.Duration) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Token, m.TTL = token, ttl
	if m.Auth != nil {
		m.Auth.Authenticated = true
		m.Auth.Token = token
	}
	return nil
}

// Remove clears the token.
func (m *MockCredentialStore) Remove() error {
	m.Removed++
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.Token = ""
	if m.Auth != nil {
		m.Auth.Authenticated = false
	}
	return nil
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitErr    error
	Info       domain.ConfigInfo
	InitOwners []string
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetGlobalConfigInfo returns the configured info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.Info
}

// InitGlobalConfig records the owners and returns Info.Path.
func (m *MockConfigManager) InitGlobalConfig(owners []string) (string, error) {
	m.InitOwners = owners
	if m.InitErr != nil {
		return "", m.InitErr
	}
	return m.Info.Path, nil
}
