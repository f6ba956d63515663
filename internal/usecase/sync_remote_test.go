package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/braindump/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncRemote_Execute(t *testing.T) {
	e := newEnv(t, true)
	e.seed(t, domain.Task{Text: "Local only"})
	e.remote.Tasks["r1"] = domain.Task{ID: "r1", Text: "From server", Date: "2024-06-12", Owner: "Marc"}
	e.remote.Settings = domain.Settings{Owners: []string{"Marc", "Thibaud"}}

	out, err := NewSyncRemote(e.store).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, out.Tasks)
	state := e.store.State()
	assert.Equal(t, "From server", state.Tasks[0].Text)
	assert.Equal(t, []string{"Marc", "Thibaud"}, state.Settings.Owners)
}

func TestSyncRemote_Execute_Unauthenticated(t *testing.T) {
	e := newEnv(t, false)

	_, err := NewSyncRemote(e.store).Execute(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Empty(t, e.log.Calls())
}

func TestSyncRemote_Execute_FailureKeepsLocal(t *testing.T) {
	e := newEnv(t, true)
	e.seed(t, domain.Task{Text: "Local only"})
	e.remote.ListErr = errors.New("offline")

	_, err := NewSyncRemote(e.store).Execute(context.Background())

	require.Error(t, err)
	state := e.store.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "Local only", state.Tasks[0].Text)
}
