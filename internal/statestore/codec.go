package statestore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/runoshun/braindump/internal/domain"
)

// decodeState parses a cached document. Every field is type-checked: a wrong
// top-level shape or a non-object task entry rejects the whole document, while
// individual fields of the wrong type are left for the normalizer to default.
func decodeState(data string, fallbackOwners []string, now time.Time) (*domain.State, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedCache, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not an object", domain.ErrMalformedCache)
	}

	state := domain.NewDefaultState(fallbackOwners)

	if v, ok := raw["settings"]; ok && v != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: settings is %T", domain.ErrMalformedCache, v)
		}
		state.Settings = domain.NormalizeSettings(domain.DecodeSettings(m), fallbackOwners)
	}

	if v, ok := raw["tasks"]; ok && v != nil {
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: tasks is %T", domain.ErrMalformedCache, v)
		}
		owner := state.Settings.DefaultOwner()
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: task %d is %T", domain.ErrMalformedCache, i, item)
			}
			state.Tasks = append(state.Tasks, domain.EnsureTask(domain.DecodeTask(m), owner, now))
		}
	}

	if v, ok := raw["meta"]; ok && v != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: meta is %T", domain.ErrMalformedCache, v)
		}
		if rev, ok := m["rev"].(float64); ok && rev > 0 {
			state.Meta.Rev = int64(rev)
		}
		if ts, ok := m["updatedAt"].(string); ok {
			if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
				state.Meta.UpdatedAt = parsed
			}
		}
	}

	return state, nil
}

// encodeState renders the document stored under CacheKey.
func encodeState(state *domain.State) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}
	return string(data), nil
}
