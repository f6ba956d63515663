package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/braindump/internal/domain"
	"github.com/runoshun/braindump/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowConfig_Execute(t *testing.T) {
	manager := &testutil.MockConfigManager{Info: domain.ConfigInfo{Path: "/cfg/config.toml", Content: "owners = []", Exists: true}}

	out, err := NewShowConfig(manager).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, manager.Info, out.GlobalConfig)
}

func TestInitConfig_Execute_UsesCurrentOwners(t *testing.T) {
	e := newEnv(t, false)
	manager := &testutil.MockConfigManager{Info: domain.ConfigInfo{Path: "/cfg/config.toml"}}

	out, err := NewInitConfig(manager, e.store).Execute(context.Background(), InitConfigInput{})

	require.NoError(t, err)
	assert.Equal(t, "/cfg/config.toml", out.Path)
	assert.Equal(t, []string{"Thibaud", "Marc"}, manager.InitOwners)
}

func TestInitConfig_Execute_ExplicitOwners(t *testing.T) {
	e := newEnv(t, false)
	manager := &testutil.MockConfigManager{}

	_, err := NewInitConfig(manager, e.store).Execute(context.Background(), InitConfigInput{Owners: []string{"Léa"}})

	require.NoError(t, err)
	assert.Equal(t, []string{"Léa"}, manager.InitOwners)
}

func TestInitConfig_Execute_Exists(t *testing.T) {
	e := newEnv(t, false)
	manager := &testutil.MockConfigManager{InitErr: domain.ErrConfigExists}

	_, err := NewInitConfig(manager, e.store).Execute(context.Background(), InitConfigInput{})

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
