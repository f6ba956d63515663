package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/braindump/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareTask_Execute(t *testing.T) {
	e := newEnv(t, false)
	task := e.seed(t, domain.Task{Text: "Plan trip"})
	uc := NewShareTask(e.store, e.logger)

	out, err := uc.Execute(context.Background(), ShareTaskInput{Ref: task.ID, Collaborator: " anna@example.com "})
	require.NoError(t, err)
	assert.Equal(t, []string{"anna@example.com"}, out.Task.SharedWith)

	out, err = uc.Execute(context.Background(), ShareTaskInput{Ref: task.ID, Collaborator: "Marc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"anna@example.com", "Marc"}, out.Task.SharedWith)

	out, err = uc.Execute(context.Background(), ShareTaskInput{Ref: task.ID, Collaborator: "anna@example.com", Remove: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Marc"}, out.Task.SharedWith)
}

func TestShareTask_Execute_NoChange(t *testing.T) {
	e := newEnv(t, false)
	task := e.seed(t, domain.Task{Text: "Plan trip", SharedWith: []string{"Marc"}})
	uc := NewShareTask(e.store, e.logger)
	rev := e.store.State().Meta.Rev

	_, err := uc.Execute(context.Background(), ShareTaskInput{Ref: task.ID, Collaborator: "Marc"})
	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)

	_, err = uc.Execute(context.Background(), ShareTaskInput{Ref: task.ID, Collaborator: "anna", Remove: true})
	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)

	assert.Equal(t, rev, e.store.State().Meta.Rev)
}

func TestShareTask_Execute_EmptyCollaborator(t *testing.T) {
	e := newEnv(t, false)
	task := e.seed(t, domain.Task{Text: "Plan trip"})
	uc := NewShareTask(e.store, e.logger)

	_, err := uc.Execute(context.Background(), ShareTaskInput{Ref: task.ID, Collaborator: "  "})

	assert.ErrorIs(t, err, domain.ErrEmptyCollaborator)
}

func TestShareTask_Execute_DoesNotAliasStoredTask(t *testing.T) {
	e := newEnv(t, false)
	task := e.seed(t, domain.Task{Text: "Plan trip", SharedWith: []string{"a", "b"}})
	uc := NewShareTask(e.store, e.logger)

	out, err := uc.Execute(context.Background(), ShareTaskInput{Ref: task.ID, Collaborator: "a", Remove: true})
	require.NoError(t, err)
	out.Task.SharedWith[0] = "changed"

	got, _ := e.store.Find(task.ID)
	assert.Equal(t, []string{"b"}, got.SharedWith)
}
