// Package kvstore provides durable key-value stores backing the local cache.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/runoshun/braindump/internal/domain"
)

// fileData represents the JSON file structure.
type fileData struct {
	Entries map[string]string `json:"entries"`
}

// FileStore implements domain.KVStore using a single JSON file.
// Concurrent processes are serialised with flock on a sidecar lock file.
type FileStore struct {
	path     string
	lockPath string
}

// NewFileStore creates a FileStore for the given file path.
// The file does not need to exist; it will be created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.withLock(func(data *fileData) error {
		value, ok = data.Entries[key]
		return nil
	})
	return value, ok, err
}

// Set stores value under key.
func (s *FileStore) Set(key, value string) error {
	return s.withLockWrite(func(data *fileData) error {
		data.Entries[key] = value
		return nil
	})
}

// Remove deletes key.
func (s *FileStore) Remove(key string) error {
	return s.withLockWrite(func(data *fileData) error {
		delete(data.Entries, key)
		return nil
	})
}

// withLock executes fn with a shared (read) lock.
func (s *FileStore) withLock(fn func(*fileData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}
	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *FileStore) withLockWrite(fn func(*fileData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	return s.write(data)
}

func (s *FileStore) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: create lock directory: %w", domain.ErrStorageUnavailable, err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: open lock file: %w", domain.ErrStorageUnavailable, err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("%w: acquire lock: %w", domain.ErrStorageUnavailable, err)
	}
	return lock, nil
}

func (s *FileStore) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// read loads the file. A missing file is an empty store; an unparsable one
// is reported so the caller can decide whether to overwrite it.
func (s *FileStore) read() (*fileData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &fileData{Entries: make(map[string]string)}, nil
		}
		return nil, fmt.Errorf("%w: read store file: %w", domain.ErrStorageUnavailable, err)
	}

	var data fileData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("%w: parse store file: %w", domain.ErrStorageUnavailable, err)
	}
	if data.Entries == nil {
		data.Entries = make(map[string]string)
	}
	return &data, nil
}

func (s *FileStore) write(data *fileData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("%w: write temp file: %w", domain.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: rename temp file: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// MemoryStore implements domain.KVStore in memory.
// It backs the cache when no durable location is usable.
type MemoryStore struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

// Remove deletes key.
func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Snapshot returns a copy of every entry.
func (s *MemoryStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.entries)
}

// Ensure stores implement domain.KVStore.
var (
	_ domain.KVStore = (*FileStore)(nil)
	_ domain.KVStore = (*MemoryStore)(nil)
)
