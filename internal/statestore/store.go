// Package statestore owns the State aggregate and keeps it in sync with the
// local cache and, when authenticated, the remote store.
//
// Local writes always happen and never wait on the network. Remote failures
// are logged and reported through domain.WriteOutcome; they never prevent the
// local value from becoming the effective result.
package statestore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/braindump/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CacheKey is the single key the state document is stored under.
const CacheKey = "braindump.state"

// Log categories.
const (
	logStore  = "store"
	logRemote = "remote"
)

// Option configures a Store.
type Option func(*Store)

// WithOnChange registers a hook called with a snapshot after every local save.
func WithOnChange(fn func(domain.State)) Option {
	return func(s *Store) { s.onChange = fn }
}

// WithLogger sets the logger.
func WithLogger(l domain.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock sets the clock.
func WithClock(c domain.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Store is the Persistence Layer.
// Fields are ordered to minimize memory padding.
type Store struct {
	cache         domain.KVStore
	remote        domain.RemoteStore
	auth          domain.Authenticator
	clock         domain.Clock
	logger        domain.Logger
	onChange      func(domain.State)
	state         *domain.State
	defaultOwners []string
	mu            sync.Mutex
	storageOK     bool
	cacheUnread   bool // the cached document has not been read since the last failure
}

// New creates a Store. cache, remote and auth may be nil: without a cache the
// store works purely in memory, without remote or auth it is local-only.
// defaultOwners seeds Settings.Owners when nothing else provides them.
func New(cache domain.KVStore, remote domain.RemoteStore, auth domain.Authenticator, defaultOwners []string, opts ...Option) *Store {
	s := &Store{
		cache:         cache,
		remote:        remote,
		auth:          auth,
		clock:         domain.RealClock{},
		logger:        domain.NopLogger{},
		defaultOwners: defaultOwners,
		storageOK:     cache != nil,
		cacheUnread:   cache != nil,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = domain.NewDefaultState(defaultOwners)
	return s
}

// Load rebuilds State from defaults overlaid with the local cache.
// A missing, unreadable or malformed cache leaves the defaults in place.
// After an unreadable cache, writes are held in memory until the cached
// document can be read and folded in.
func (s *Store) Load() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.NewDefaultState(s.defaultOwners)
	if s.cache == nil {
		return s.state.Clone()
	}

	data, ok, err := s.cache.Get(CacheKey)
	if err != nil {
		s.storageOK = false
		s.cacheUnread = true
		s.logger.Warn("", logStore, fmt.Sprintf("cache unavailable, running in memory: %v", err))
		return s.state.Clone()
	}
	s.storageOK = true
	s.cacheUnread = false
	if !ok {
		return s.state.Clone()
	}

	loaded, err := decodeState(data, s.defaultOwners, s.clock.Now())
	if err != nil {
		s.logger.Warn("", logStore, fmt.Sprintf("discarding cache: %v", err))
		return s.state.Clone()
	}
	s.state = loaded
	return s.state.Clone()
}

// IsRemote returns true if remote calls will be attempted.
func (s *Store) IsRemote() bool {
	return s.remote != nil && s.auth != nil && s.auth.IsAuthenticated()
}

// StorageOK returns false once the local cache has failed; State is then
// only held in memory until a later write succeeds.
func (s *Store) StorageOK() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storageOK
}

// State returns a snapshot of the current state.
func (s *Store) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Settings returns the current settings.
func (s *Store) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Settings{Owners: append([]string{}, s.state.Settings.Owners...)}
}

// Find returns the task whose id equals ref or, failing that, is the only id
// starting with ref.
func (s *Store) Find(ref string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.resolveLocked(ref)
	if err != nil {
		return domain.Task{}, err
	}
	return s.state.Tasks[i].Clone(), nil
}

func (s *Store) resolveLocked(ref string) (int, error) {
	if ref == "" {
		return -1, domain.ErrTaskNotFound
	}
	if i := s.state.IndexOf(ref); i >= 0 {
		return i, nil
	}
	found := -1
	for i, t := range s.state.Tasks {
		if !strings.HasPrefix(t.ID, ref) {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("%w: %s", domain.ErrAmbiguousTaskID, ref)
		}
		found = i
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, ref)
	}
	return found, nil
}

// LoadRemote fetches tasks and settings concurrently and, on success, replaces
// the in-memory state with them and mirrors the result into the cache.
// It returns domain.ErrUnauthenticated when no remote session exists.
func (s *Store) LoadRemote(ctx context.Context) error {
	if !s.IsRemote() {
		return domain.ErrUnauthenticated
	}

	var (
		tasks    []domain.Task
		settings domain.Settings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.remote.ListTasks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.remote.GetSettings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("", logRemote, fmt.Sprintf("remote load failed, keeping local state: %v", err))
		return err
	}

	s.mu.Lock()
	s.state.Settings = domain.NormalizeSettings(settings, s.defaultOwners)
	owner := s.state.Settings.DefaultOwner()
	now := s.clock.Now()
	s.state.Tasks = make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		s.state.Tasks = append(s.state.Tasks, domain.EnsureTask(t, owner, now))
	}
	snap, _ := s.writeLocked(true)
	s.mu.Unlock()

	s.notify(snap)
	s.logger.Info("", logRemote, fmt.Sprintf("loaded %d tasks from remote", len(tasks)))
	return nil
}

// Save writes the current state to the cache, bumping meta.rev.
// It never fails; the outcome says whether the cache accepted the write.
func (s *Store) Save() domain.WriteOutcome {
	s.mu.Lock()
	snap, err := s.saveLocked()
	s.mu.Unlock()

	s.notify(snap)
	return domain.WriteOutcome{CommittedLocally: err == nil, Err: err}
}

// Update applies fn to the live state and saves once if fn reports a change.
func (s *Store) Update(fn func(*domain.State) bool) domain.WriteOutcome {
	s.mu.Lock()
	if !fn(s.state) {
		s.mu.Unlock()
		return domain.WriteOutcome{}
	}
	snap, err := s.saveLocked()
	s.mu.Unlock()

	s.notify(snap)
	return domain.WriteOutcome{CommittedLocally: err == nil, Err: err}
}

// CreateTask normalizes task and stores it. When authenticated the remote
// store is tried first and its copy is kept; otherwise, or if it fails, the
// local value is used.
func (s *Store) CreateTask(ctx context.Context, task domain.Task) (domain.Task, domain.WriteOutcome) {
	now := s.clock.Now()
	task = domain.EnsureTask(task, s.defaultOwner(), now)

	var remoteErr error
	remoteOK := false
	if s.IsRemote() {
		created, err := s.remote.CreateTask(ctx, task)
		if err != nil {
			remoteErr = err
			s.logger.Warn(task.ID, logRemote, fmt.Sprintf("create failed, kept locally: %v", err))
		} else {
			remoteOK = true
			task = s.mergeServerCopy(task, created, now)
		}
	}

	s.mu.Lock()
	s.state.Tasks = append(s.state.Tasks, task)
	snap, saveErr := s.saveLocked()
	s.mu.Unlock()

	s.notify(snap)
	return task.Clone(), domain.WriteOutcome{
		CommittedLocally:  saveErr == nil,
		CommittedRemotely: remoteOK,
		Err:               errors.Join(remoteErr, saveErr),
	}
}

// UpdateTask applies fn to a copy of the task identified by ref, refreshes
// updatedAt and stores the result. The returned error is only for caller
// mistakes: an unknown ref or an error returned by fn.
func (s *Store) UpdateTask(ctx context.Context, ref string, fn func(*domain.Task) error) (domain.Task, domain.WriteOutcome, error) {
	s.mu.Lock()
	i, err := s.resolveLocked(ref)
	if err != nil {
		s.mu.Unlock()
		return domain.Task{}, domain.WriteOutcome{}, err
	}
	task := s.state.Tasks[i].Clone()
	s.mu.Unlock()

	if err := fn(&task); err != nil {
		return domain.Task{}, domain.WriteOutcome{}, err
	}
	now := s.clock.Now()
	task.Touch(now)

	var remoteErr error
	remoteOK := false
	if s.IsRemote() {
		updated, err := s.remote.UpdateTask(ctx, task)
		if err != nil {
			remoteErr = err
			s.logger.Warn(task.ID, logRemote, fmt.Sprintf("update failed, kept locally: %v", err))
		} else {
			remoteOK = true
			task = s.mergeServerCopy(task, updated, now)
		}
	}

	s.mu.Lock()
	if j := s.state.IndexOf(task.ID); j >= 0 {
		s.state.Tasks[j] = task
	} else {
		// Deleted concurrently; last write wins.
		s.state.Tasks = append(s.state.Tasks, task)
	}
	snap, saveErr := s.saveLocked()
	s.mu.Unlock()

	s.notify(snap)
	return task.Clone(), domain.WriteOutcome{
		CommittedLocally:  saveErr == nil,
		CommittedRemotely: remoteOK,
		Err:               errors.Join(remoteErr, saveErr),
	}, nil
}

// DeleteTask removes the task identified by ref locally and, best-effort,
// remotely.
func (s *Store) DeleteTask(ctx context.Context, ref string) (domain.Task, domain.WriteOutcome, error) {
	task, err := s.Find(ref)
	if err != nil {
		return domain.Task{}, domain.WriteOutcome{}, err
	}

	var remoteErr error
	remoteOK := false
	if s.IsRemote() {
		if err := s.remote.DeleteTask(ctx, task.ID); err != nil {
			remoteErr = err
			s.logger.Warn(task.ID, logRemote, fmt.Sprintf("delete failed, removed locally: %v", err))
		} else {
			remoteOK = true
		}
	}

	s.mu.Lock()
	if j := s.state.IndexOf(task.ID); j >= 0 {
		s.state.Tasks = append(s.state.Tasks[:j:j], s.state.Tasks[j+1:]...)
	}
	snap, saveErr := s.saveLocked()
	s.mu.Unlock()

	s.notify(snap)
	return task, domain.WriteOutcome{
		CommittedLocally:  saveErr == nil,
		CommittedRemotely: remoteOK,
		Err:               errors.Join(remoteErr, saveErr),
	}, nil
}

// SaveSettings replaces the settings locally and, when authenticated, remotely.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) (domain.Settings, domain.WriteOutcome) {
	settings = domain.NormalizeSettings(settings, s.defaultOwners)

	var remoteErr error
	remoteOK := false
	if s.IsRemote() {
		saved, err := s.remote.SaveSettings(ctx, settings)
		if err != nil {
			remoteErr = err
			s.logger.Warn("", logRemote, fmt.Sprintf("settings save failed, kept locally: %v", err))
		} else {
			remoteOK = true
			if len(saved.Owners) > 0 {
				settings = domain.NormalizeSettings(saved, settings.Owners)
			}
		}
	}

	s.mu.Lock()
	s.state.Settings = settings
	snap, saveErr := s.saveLocked()
	s.mu.Unlock()

	s.notify(snap)
	return settings, domain.WriteOutcome{
		CommittedLocally:  saveErr == nil,
		CommittedRemotely: remoteOK,
		Err:               errors.Join(remoteErr, saveErr),
	}
}

// PushTasks sends the current local copy of each listed task to the remote
// store. Local state is not modified. Failures are logged and joined.
func (s *Store) PushTasks(ctx context.Context, ids []string) domain.WriteOutcome {
	if !s.IsRemote() || len(ids) == 0 {
		return domain.WriteOutcome{}
	}

	var errs []error
	for _, id := range ids {
		task, err := s.Find(id)
		if err != nil {
			continue
		}
		if _, err := s.remote.UpdateTask(ctx, task); err != nil {
			s.logger.Warn(id, logRemote, fmt.Sprintf("push failed: %v", err))
			errs = append(errs, err)
		}
	}
	return domain.WriteOutcome{
		CommittedRemotely: len(errs) == 0,
		Err:               errors.Join(errs...),
	}
}

// saveLocked bumps the revision and writes the state to the cache.
// It returns a snapshot for notify and the cache error, if any.
func (s *Store) saveLocked() (domain.State, error) {
	return s.writeLocked(false)
}

// writeLocked is saveLocked for a state that may replace the cached tasks.
// With replace set, only the cached revision is carried over.
func (s *Store) writeLocked(replace bool) (domain.State, error) {
	var err error
	if s.cache != nil && s.cacheUnread {
		err = s.reconcileLocked(replace)
	}

	s.state.Meta.Rev++
	s.state.Meta.UpdatedAt = s.clock.Now()
	s.state.Meta.SchemaVersion = domain.SchemaVersion
	snap := s.state.Clone()

	if s.cache == nil {
		return snap, nil
	}
	if err == nil {
		var data string
		data, err = encodeState(s.state)
		if err == nil {
			err = s.cache.Set(CacheKey, data)
		}
	}
	if err != nil {
		s.storageOK = false
		s.logger.Warn("", logStore, fmt.Sprintf("cache write failed, state kept in memory: %v", err))
		return snap, err
	}
	s.storageOK = true
	return snap, nil
}

// reconcileLocked reads the cached document that Load could not, so the next
// write neither drops cached tasks nor lowers meta.rev. Tasks only in the
// cache are put back ahead of the in-memory ones. Cached settings win unless
// the in-memory ones were changed from the defaults.
func (s *Store) reconcileLocked(replace bool) error {
	data, ok, err := s.cache.Get(CacheKey)
	if err != nil {
		return fmt.Errorf("%w: cache unreadable: %w", domain.ErrStorageUnavailable, err)
	}
	s.cacheUnread = false
	if !ok {
		return nil
	}
	cached, err := decodeState(data, s.defaultOwners, s.clock.Now())
	if err != nil {
		s.logger.Warn("", logStore, fmt.Sprintf("discarding cache: %v", err))
		return nil
	}

	s.state.Meta.Rev = max(s.state.Meta.Rev, cached.Meta.Rev)
	if replace {
		return nil
	}
	merged := make([]domain.Task, 0, len(cached.Tasks)+len(s.state.Tasks))
	for _, t := range cached.Tasks {
		if s.state.IndexOf(t.ID) < 0 {
			merged = append(merged, t)
		}
	}
	s.state.Tasks = append(merged, s.state.Tasks...)
	defaults := domain.NormalizeSettings(domain.Settings{}, s.defaultOwners)
	if slices.Equal(s.state.Settings.Owners, defaults.Owners) {
		s.state.Settings = cached.Settings
	}
	s.logger.Info("", logStore, fmt.Sprintf("restored %d cached tasks", len(merged)))
	return nil
}

func (s *Store) notify(snap domain.State) {
	if s.onChange != nil {
		s.onChange(snap)
	}
}

func (s *Store) defaultOwner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings.DefaultOwner()
}

// mergeServerCopy keeps the server's view of a task but never lets it change
// the id assigned locally or blank out required fields.
func (s *Store) mergeServerCopy(local, server domain.Task, now time.Time) domain.Task {
	server.ID = local.ID
	if server.Text == "" {
		server.Text = local.Text
	}
	if server.UpdatedAt.IsZero() {
		server.UpdatedAt = local.UpdatedAt
	}
	return domain.EnsureTask(server, local.Owner, now)
}

// Ensure Store implements domain.StateStore.
var _ domain.StateStore = (*Store)(nil)
