package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/runoshun/braindump/internal/domain"
	"github.com/runoshun/braindump/internal/statestore"
	"github.com/runoshun/braindump/internal/testutil"
	"github.com/stretchr/testify/require"
)

// monday is the fixed "now" for every use case test.
var monday = time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

// env wires a real statestore.Store to test doubles that share one call log.
type env struct {
	log     *testutil.CallLog
	cache   *testutil.MockKVStore
	remote  *testutil.MockRemoteStore
	auth    *testutil.MockAuthenticator
	surface *testutil.MockSurface
	clock   *testutil.MockClock
	logger  *testutil.MockLogger
	store   *statestore.Store
}

func newEnv(t *testing.T, authenticated bool) *env {
	t.Helper()
	e := &env{
		log:    &testutil.CallLog{},
		cache:  testutil.NewMockKVStore(),
		remote: testutil.NewMockRemoteStore(),
		auth:   &testutil.MockAuthenticator{Authenticated: authenticated, Token: "tok"},
		clock:  &testutil.MockClock{NowTime: monday},
		logger: &testutil.MockLogger{},
	}
	e.remote.Log = e.log
	e.surface = &testutil.MockSurface{Log: e.log}
	e.store = statestore.New(e.cache, e.remote, e.auth, []string{"Thibaud", "Marc"},
		statestore.WithClock(e.clock), statestore.WithLogger(e.logger))
	e.store.Load()
	return e
}

// seed stores a task locally without touching the remote store.
func (e *env) seed(t *testing.T, task domain.Task) domain.Task {
	t.Helper()
	authenticated := e.auth.Authenticated
	e.auth.Authenticated = false
	defer func() { e.auth.Authenticated = authenticated }()

	created, out := e.store.CreateTask(context.Background(), task)
	require.NoError(t, out.Err)
	return created
}
