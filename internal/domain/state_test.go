package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettings_DefaultOwner(t *testing.T) {
	assert.Equal(t, "Thibaud", Settings{Owners: []string{"Thibaud", "Marc"}}.DefaultOwner())
	assert.Equal(t, FallbackOwner, Settings{}.DefaultOwner())
	assert.Equal(t, FallbackOwner, Settings{Owners: []string{""}}.DefaultOwner())
}

func TestNewDefaultState(t *testing.T) {
	s := NewDefaultState([]string{"Thibaud"})

	assert.Empty(t, s.Tasks)
	assert.NotNil(t, s.Tasks)
	assert.Equal(t, []string{"Thibaud"}, s.Settings.Owners)
	assert.Equal(t, SchemaVersion, s.Meta.SchemaVersion)
	assert.Zero(t, s.Meta.Rev)
}

func TestState_Clone(t *testing.T) {
	s := &State{
		Tasks:    []Task{{ID: "a", SharedWith: []string{"Marc"}}},
		Settings: Settings{Owners: []string{"Thibaud"}},
		Meta:     Meta{Rev: 4},
	}

	clone := s.Clone()
	clone.Tasks[0].Text = "changed"
	clone.Tasks[0].SharedWith[0] = "Julie"
	clone.Settings.Owners[0] = "Marc"

	assert.Empty(t, s.Tasks[0].Text)
	assert.Equal(t, "Marc", s.Tasks[0].SharedWith[0])
	assert.Equal(t, "Thibaud", s.Settings.Owners[0])
	assert.Equal(t, int64(4), clone.Meta.Rev)
}

func TestState_IndexOf(t *testing.T) {
	s := &State{Tasks: []Task{{ID: "a"}, {ID: "b"}}}

	assert.Equal(t, 1, s.IndexOf("b"))
	assert.Equal(t, -1, s.IndexOf("z"))
}
