package domain

import (
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, DefaultRemoteTimeout, cfg.Remote.Timeout)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Empty(t, cfg.Remote.URL)
	assert.Empty(t, cfg.Owners)
}

func TestConfigPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/u/.config", "braindump"), GlobalConfigDir("/home/u/.config"))
	assert.Equal(t, filepath.Join("/data", "braindump"), DataDir("/data"))
	assert.Equal(t, filepath.Join("/data", "state.json"), StatePath("/data"))
	assert.Equal(t, filepath.Join("/data", "token.json"), TokenPath("/data"))
	assert.Equal(t, filepath.Join("/data", "logs", "braindump.log"), LogPath("/data"))
}

func TestRenderConfigTemplate(t *testing.T) {
	content := RenderConfigTemplate([]string{"Thibaud", "", "Marc", "Thibaud"})

	var raw map[string]any
	require.NoError(t, toml.Unmarshal([]byte(content), &raw))

	assert.Equal(t, []any{"Thibaud", "Marc"}, raw["owners"])
	remote, ok := raw["remote"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "10s", remote["timeout"])
	logCfg, ok := raw["log"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "info", logCfg["level"])
}

func TestRenderConfigTemplate_NoOwners(t *testing.T) {
	content := RenderConfigTemplate(nil)

	assert.Contains(t, content, `owners = ["Me"]`)
}
