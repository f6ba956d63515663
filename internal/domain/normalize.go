package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewTaskID generates a task identifier. It is a variable so tests can pin ids.
var NewTaskID = func() string {
	return uuid.NewString()
}

// EnsureTask fills gaps in a partially populated task so that it satisfies
// the Task invariants: non-empty id, valid owner, well-formed date.
// It is idempotent: EnsureTask(EnsureTask(t)) == EnsureTask(t).
func EnsureTask(t Task, defaultOwner string, now time.Time) Task {
	out := t.Clone()
	if out.ID == "" {
		out.ID = NewTaskID()
	}
	if d, ok := CanonicalDate(out.Date); ok {
		out.Date = d
	} else {
		out.Date = Today(now)
	}
	if out.Owner == "" {
		out.Owner = defaultOwner
	}
	if out.Owner == "" {
		out.Owner = FallbackOwner
	}
	if out.Recurrence != "" && !out.Recurrence.IsValid() {
		out.Recurrence = RecurrenceNone
	}
	if out.EstimatedDuration < 0 {
		out.EstimatedDuration = 0
	}
	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = now
	}
	return out
}

// DecodeTask builds a Task from an untyped JSON object, type-checking every
// field. Fields with an unexpected type are left at their zero value so that
// EnsureTask can default them.
func DecodeTask(raw map[string]any) Task {
	t := Task{
		ID:                stringField(raw, "id"),
		Text:              stringField(raw, "text"),
		Owner:             stringField(raw, "owner"),
		Date:              stringField(raw, "date"),
		Recurrence:        Recurrence(stringField(raw, "recurrence")),
		Project:           stringField(raw, "project"),
		StartTime:         stringField(raw, "start_time"),
		SharedBy:          stringField(raw, "sharedBy"),
		CalendarEventID:   stringField(raw, "calendarEventId"),
		EstimatedDuration: intField(raw, "estimated_duration"),
		Done:              truthy(raw["done"]),
		Urgent:            truthy(raw["urgent"]),
		IsEvent:           truthy(raw["is_event"]),
		WasCarriedOver:    truthy(raw["wasCarriedOver"]),
	}
	if ts := stringField(raw, "updatedAt"); ts != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			t.UpdatedAt = parsed
		}
	}
	if list, ok := raw["sharedWith"].([]any); ok {
		for _, v := range list {
			if s, ok := v.(string); ok && s != "" {
				t.SharedWith = append(t.SharedWith, s)
			}
		}
	}
	return t
}

// DecodeSettings builds Settings from an untyped JSON object.
func DecodeSettings(raw map[string]any) Settings {
	var s Settings
	if list, ok := raw["owners"].([]any); ok {
		for _, v := range list {
			if name, ok := v.(string); ok {
				s.Owners = append(s.Owners, name)
			}
		}
	}
	return s
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		// Ids generated by older clients can be numeric.
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func intField(raw map[string]any, key string) int {
	switch v := raw[key].(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		parsed, err := strconv.ParseBool(b)
		return err == nil && parsed
	}
	return false
}
