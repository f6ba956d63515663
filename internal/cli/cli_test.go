package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/braindump/internal/app"
	"github.com/runoshun/braindump/internal/domain"
	"github.com/runoshun/braindump/internal/statestore"
	"github.com/runoshun/braindump/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

// testEnv bundles a container built on test doubles.
type testEnv struct {
	container *app.Container
	store     *statestore.Store
	remote    *testutil.MockRemoteStore
	auth      *testutil.MockAuthenticator
	creds     *testutil.MockCredentialStore
	configs   *testutil.MockConfigManager
}

// newTestContainer creates an app.Container with mock dependencies.
func newTestContainer(t *testing.T, authenticated bool) *testEnv {
	t.Helper()
	clock := &testutil.MockClock{NowTime: monday}
	logger := &testutil.MockLogger{}
	env := &testEnv{
		remote:  testutil.NewMockRemoteStore(),
		auth:    &testutil.MockAuthenticator{Authenticated: authenticated, Token: "tok"},
		configs: &testutil.MockConfigManager{Info: domain.ConfigInfo{Path: "/cfg/braindump/config.toml"}},
	}
	env.creds = &testutil.MockCredentialStore{Auth: env.auth}
	env.store = statestore.New(testutil.NewMockKVStore(), env.remote, env.auth, []string{"Thibaud", "Marc"},
		statestore.WithClock(clock), statestore.WithLogger(logger))
	env.store.Load()
	env.container = app.NewWithDeps(
		app.Config{StatePath: "/data/braindump/state.json"},
		env.store,
		env.creds,
		env.configs,
		clock,
		logger,
	)
	return env
}

func (e *testEnv) seed(t *testing.T, task domain.Task) domain.Task {
	t.Helper()
	authenticated := e.auth.Authenticated
	e.auth.Authenticated = false
	defer func() { e.auth.Authenticated = authenticated }()
	created, _ := e.store.CreateTask(context.Background(), task)
	return created
}

// run executes cmd with args and returns stdout and stderr.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// =============================================================================
// Capture Command Tests
// =============================================================================

func TestAddCommand(t *testing.T) {
	env := newTestContainer(t, false)

	out, _, err := run(t, newAddCommand(env.container), "Call", "Marie", "tomorrow", "urgent", "@Marc")

	require.NoError(t, err)
	assert.Contains(t, out, "Added 2024-06-11")
	assert.Contains(t, out, "Call Marie")
	assert.Contains(t, out, "@Marc")

	tasks := env.store.State().Tasks
	require.Len(t, tasks, 1)
	assert.Equal(t, "Call Marie", tasks[0].Text)
	assert.True(t, tasks[0].Urgent)
}

func TestAddCommand_SessionFlags(t *testing.T) {
	env := newTestContainer(t, false)

	_, _, err := run(t, newAddCommand(env.container), "--date", "2024-07-01", "--urgent", "--owner", "Marc", "Renew passport")

	require.NoError(t, err)
	task := env.store.State().Tasks[0]
	assert.Equal(t, "2024-07-01", task.Date)
	assert.True(t, task.Urgent)
	assert.Equal(t, "Marc", task.Owner)
}

func TestAddCommand_InvalidDate(t *testing.T) {
	env := newTestContainer(t, false)

	_, _, err := run(t, newAddCommand(env.container), "--date", "soon", "Renew passport")

	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestAddCommand_RemoteFailureWarns(t *testing.T) {
	env := newTestContainer(t, true)
	env.remote.CreateErr = errors.New("503")

	out, errOut, err := run(t, newAddCommand(env.container), "Water plants")

	require.NoError(t, err)
	assert.Contains(t, out, "Water plants")
	assert.Contains(t, errOut, "Warning: saved locally, remote not updated")
}

func TestDumpCommand_Stdin(t *testing.T) {
	env := newTestContainer(t, false)
	cmd := newDumpCommand(env.container)
	cmd.SetIn(strings.NewReader("Buy bread tomorrow\n\nnext urgent week\nDrinks friday @Marc\n"))

	out, _, err := run(t, cmd)

	require.NoError(t, err)
	assert.Contains(t, out, "Captured 2 tasks (1 lines skipped)")
	assert.Len(t, env.store.State().Tasks, 2)
}

func TestDumpCommand_FromFileClear(t *testing.T) {
	env := newTestContainer(t, false)
	path := filepath.Join(t.TempDir(), "inbox.txt")
	require.NoError(t, os.WriteFile(path, []byte("Buy bread\nCall mum\n"), 0o600))

	_, _, err := run(t, newDumpCommand(env.container), "--from", path, "--clear")

	require.NoError(t, err)
	assert.Len(t, env.store.State().Tasks, 2)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestDumpCommand_FromFileKeepsFileWithoutClear(t *testing.T) {
	env := newTestContainer(t, false)
	path := filepath.Join(t.TempDir(), "inbox.txt")
	require.NoError(t, os.WriteFile(path, []byte("Buy bread\n"), 0o600))

	_, _, err := run(t, newDumpCommand(env.container), "--from", path)

	require.NoError(t, err)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "Buy bread\n", string(data))
}

func TestDumpCommand_Empty(t *testing.T) {
	env := newTestContainer(t, false)
	cmd := newDumpCommand(env.container)
	cmd.SetIn(strings.NewReader("\n\n"))

	_, _, err := run(t, cmd)

	assert.ErrorIs(t, err, domain.ErrNothingToCapture)
}

// =============================================================================
// Task Command Tests
// =============================================================================

func TestListCommand_CarriesOverFirst(t *testing.T) {
	env := newTestContainer(t, false)
	env.seed(t, domain.Task{Text: "Pay rent", Date: "2024-06-07"})
	env.seed(t, domain.Task{Text: "Water plants", Date: "2024-06-10", Urgent: true, Project: "home", EstimatedDuration: 90})
	env.seed(t, domain.Task{Text: "Dentist", Date: "2024-06-12"})

	out, errOut, err := run(t, newListCommand(env.container))

	require.NoError(t, err)
	assert.Contains(t, errOut, "Carried over 1 task(s) to today")
	assert.Contains(t, out, "2024-06-10")
	assert.Contains(t, out, "Pay rent")
	assert.Contains(t, out, "(carried over)")
	assert.Contains(t, out, "! Water plants")
	assert.Contains(t, out, "#home 1h30")
	assert.NotContains(t, out, "Dentist")
	assert.NotContains(t, out, "\x1b[", "output to a buffer is not styled")
}

func TestListCommand_NoCarry(t *testing.T) {
	env := newTestContainer(t, false)
	env.seed(t, domain.Task{Text: "Pay rent", Date: "2024-06-07"})

	out, errOut, err := run(t, newListCommand(env.container), "--no-carry")

	require.NoError(t, err)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "No tasks for 2024-06-10")
	assert.Equal(t, "2024-06-07", env.store.State().Tasks[0].Date)
}

func TestListCommand_All(t *testing.T) {
	env := newTestContainer(t, false)
	env.seed(t, domain.Task{Text: "Today", Date: "2024-06-10"})
	env.seed(t, domain.Task{Text: "Later", Date: "2024-06-12", Done: true})

	out, _, err := run(t, newListCommand(env.container), "--all")

	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Today"), strings.Index(out, "Later"))
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "2024-06-12")
}

func TestDoneCommand_Recurring(t *testing.T) {
	env := newTestContainer(t, false)
	task := env.seed(t, domain.Task{Text: "Gym", Date: "2024-06-10", Recurrence: domain.RecurrenceDaily})

	out, _, err := run(t, newDoneCommand(env.container), task.ID[:6])

	require.NoError(t, err)
	assert.Contains(t, out, "Completed "+task.ID[:8]+": Gym")
	assert.Contains(t, out, "on 2024-06-11")
	assert.Len(t, env.store.State().Tasks, 2)
}

func TestDoneCommand_NotFound(t *testing.T) {
	env := newTestContainer(t, false)

	_, _, err := run(t, newDoneCommand(env.container), "zzz")

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestMoveCommand(t *testing.T) {
	env := newTestContainer(t, false)
	task := env.seed(t, domain.Task{Text: "Dentist", Date: "2024-06-10"})

	out, _, err := run(t, newMoveCommand(env.container), task.ID, "day", "after", "tomorrow")

	require.NoError(t, err)
	assert.Contains(t, out, "to 2024-06-12")
}

func TestUrgentCommand(t *testing.T) {
	env := newTestContainer(t, false)
	task := env.seed(t, domain.Task{Text: "Call bank"})

	out, _, err := run(t, newUrgentCommand(env.container), task.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "urgent")
	got, _ := env.store.Find(task.ID)
	assert.True(t, got.Urgent)
}

func TestShareCommand(t *testing.T) {
	env := newTestContainer(t, false)
	task := env.seed(t, domain.Task{Text: "Plan trip"})

	out, _, err := run(t, newShareCommand(env.container), task.ID, "anna")
	require.NoError(t, err)
	assert.Contains(t, out, "Shared")

	out, _, err = run(t, newShareCommand(env.container), task.ID, "anna", "--remove")
	require.NoError(t, err)
	assert.Contains(t, out, "Stopped sharing")

	got, _ := env.store.Find(task.ID)
	assert.Empty(t, got.SharedWith)
}

func TestRmCommand(t *testing.T) {
	env := newTestContainer(t, false)
	task := env.seed(t, domain.Task{Text: "Old"})

	out, _, err := run(t, newRmCommand(env.container), task.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")
	assert.Empty(t, env.store.State().Tasks)
}

func TestCarryCommand(t *testing.T) {
	env := newTestContainer(t, false)
	env.seed(t, domain.Task{Text: "Pay rent", Date: "2024-06-07"})

	out, _, err := run(t, newCarryCommand(env.container))
	require.NoError(t, err)
	assert.Contains(t, out, "Carried over 1 task(s)")

	out, _, err = run(t, newCarryCommand(env.container))
	require.NoError(t, err)
	assert.Contains(t, out, "Carried over 0 task(s)")
}

// =============================================================================
// Setup Command Tests
// =============================================================================

func TestOwnersCommand(t *testing.T) {
	env := newTestContainer(t, false)

	out, _, err := run(t, newOwnersCommand(env.container))

	require.NoError(t, err)
	assert.Equal(t, "Thibaud (default)\nMarc\n", out)
}

func TestOwnersSetCommand(t *testing.T) {
	env := newTestContainer(t, false)

	out, _, err := run(t, newOwnersCommand(env.container), "set", "Léa,Marc", "Thibaud")

	require.NoError(t, err)
	assert.Contains(t, out, "Owners: Léa, Marc, Thibaud")
	assert.Equal(t, []string{"Léa", "Marc", "Thibaud"}, env.store.Settings().Owners)
}

func TestExportCommand(t *testing.T) {
	env := newTestContainer(t, false)
	env.seed(t, domain.Task{Text: "Buy bread"})

	out, _, err := run(t, newExportCommand(env.container), "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "text: Buy bread")

	_, _, err = run(t, newExportCommand(env.container), "--format", "xml")
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestSyncCommand_Unauthenticated(t *testing.T) {
	env := newTestContainer(t, false)

	_, _, err := run(t, newSyncCommand(env.container))

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLoginCommand(t *testing.T) {
	env := newTestContainer(t, false)
	env.remote.Tasks["r1"] = domain.Task{ID: "r1", Text: "From server"}

	out, _, err := run(t, newLoginCommand(env.container), "--token", "secret", "--ttl", "24h")

	require.NoError(t, err)
	assert.Contains(t, out, "Logged in")
	assert.Contains(t, out, "Synced 1 task(s)")
	assert.Equal(t, "secret", env.creds.Token)
	assert.Equal(t, 24*time.Hour, env.creds.TTL)
}

func TestLoginCommand_TokenFromStdin(t *testing.T) {
	env := newTestContainer(t, false)
	cmd := newLoginCommand(env.container)
	cmd.SetIn(strings.NewReader("from-stdin\n"))

	_, _, err := run(t, cmd, "--sync=false")

	require.NoError(t, err)
	assert.Equal(t, "from-stdin", env.creds.Token)
}

func TestLogoutCommand(t *testing.T) {
	env := newTestContainer(t, true)

	out, _, err := run(t, newLogoutCommand(env.container))

	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")
	assert.False(t, env.store.IsRemote())
}

func TestConfigShowCommand(t *testing.T) {
	env := newTestContainer(t, false)

	out, _, err := run(t, newConfigCommand(env.container), "show")

	require.NoError(t, err)
	assert.Contains(t, out, "/cfg/braindump/config.toml (not found)")
	assert.Contains(t, out, "[Effective]")
	assert.Contains(t, out, "10s")
	assert.Contains(t, out, "/data/braindump/state.json")
}

func TestConfigInitCommand(t *testing.T) {
	env := newTestContainer(t, false)

	out, _, err := run(t, newConfigCommand(env.container), "init", "--owners", "Léa,Marc")

	require.NoError(t, err)
	assert.Contains(t, out, "Created /cfg/braindump/config.toml")
	assert.Equal(t, []string{"Léa", "Marc"}, env.configs.InitOwners)
}

// =============================================================================
// Root Command Tests
// =============================================================================

func TestRootCommand_PrintsConfigWarnings(t *testing.T) {
	env := newTestContainer(t, false)
	env.container.AppConfig.Warnings = []string{"unknown section: colour"}
	root := NewRootCommand(env.container, "test")

	_, errOut, err := run(t, root, "owners")

	require.NoError(t, err)
	assert.Contains(t, errOut, "Warning: unknown section: colour")
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand(nil, "test")

	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{"add", "dump", "list", "done", "move", "urgent", "share", "rm", "carry", "sync", "owners", "export", "login", "logout", "config"} {
		assert.Contains(t, names, want)
	}
}
