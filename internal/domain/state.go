package domain

import (
	"slices"
	"time"
)

// SchemaVersion is the version written into persisted state documents.
const SchemaVersion = 1

// FallbackOwner is used when neither settings nor callers provide an owner.
const FallbackOwner = "Me"

// Settings holds user preferences shared across devices.
type Settings struct {
	Owners []string `json:"owners" yaml:"owners"` // first element is the default owner
}

// DefaultOwner returns the first configured owner.
func (s Settings) DefaultOwner() string {
	if len(s.Owners) == 0 || s.Owners[0] == "" {
		return FallbackOwner
	}
	return s.Owners[0]
}

// HasOwner reports whether name is one of the configured owners.
func (s Settings) HasOwner(name string) bool {
	return slices.Contains(s.Owners, name)
}

// NormalizeSettings drops blank owners and guarantees a non-empty list.
func NormalizeSettings(s Settings, fallback []string) Settings {
	owners := make([]string, 0, len(s.Owners))
	for _, o := range s.Owners {
		if o != "" && !slices.Contains(owners, o) {
			owners = append(owners, o)
		}
	}
	if len(owners) == 0 {
		for _, o := range fallback {
			if o != "" && !slices.Contains(owners, o) {
				owners = append(owners, o)
			}
		}
	}
	if len(owners) == 0 {
		owners = []string{FallbackOwner}
	}
	return Settings{Owners: owners}
}

// Meta carries bookkeeping for the persisted document.
type Meta struct {
	UpdatedAt     time.Time `json:"updatedAt" yaml:"updatedAt"`
	Rev           int64     `json:"rev" yaml:"rev"`
	SchemaVersion int       `json:"schemaVersion" yaml:"schemaVersion"`
}

// State is the single aggregate owned by the persistence layer.
type State struct {
	Tasks    []Task   `json:"tasks" yaml:"tasks"`
	Settings Settings `json:"settings" yaml:"settings"`
	Meta     Meta     `json:"meta" yaml:"meta"`
}

// NewDefaultState returns an empty state seeded with the given owners.
func NewDefaultState(owners []string) *State {
	return &State{
		Tasks:    []Task{},
		Settings: NormalizeSettings(Settings{}, owners),
		Meta:     Meta{SchemaVersion: SchemaVersion},
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() State {
	out := State{
		Tasks:    make([]Task, len(s.Tasks)),
		Settings: Settings{Owners: slices.Clone(s.Settings.Owners)},
		Meta:     s.Meta,
	}
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// IndexOf returns the position of the task with the given id, or -1.
func (s *State) IndexOf(id string) int {
	return slices.IndexFunc(s.Tasks, func(t Task) bool { return t.ID == id })
}
