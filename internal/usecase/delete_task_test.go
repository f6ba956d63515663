package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/braindump/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteTask_Execute(t *testing.T) {
	e := newEnv(t, true)
	keep := e.seed(t, domain.Task{Text: "Keep"})
	drop := e.seed(t, domain.Task{Text: "Drop"})
	uc := NewDeleteTask(e.store, e.logger)

	out, err := uc.Execute(context.Background(), DeleteTaskInput{Ref: drop.ID})

	require.NoError(t, err)
	assert.Equal(t, drop.ID, out.Task.ID)
	assert.True(t, out.Outcome.CommittedRemotely)
	assert.Equal(t, []string{"remote.delete " + drop.ID}, e.log.Calls())

	state := e.store.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, keep.ID, state.Tasks[0].ID)
}

func TestDeleteTask_Execute_NotFound(t *testing.T) {
	e := newEnv(t, true)
	uc := NewDeleteTask(e.store, e.logger)

	_, err := uc.Execute(context.Background(), DeleteTaskInput{Ref: "missing"})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Empty(t, e.log.Calls())
}
