// Package domain contains core business entities and interfaces.
package domain

import (
	"slices"
	"time"
)

// Recurrence describes how a task repeats.
type Recurrence string

// Recurrence values.
const (
	RecurrenceNone            Recurrence = "none"
	RecurrenceDaily           Recurrence = "daily"
	RecurrenceWeekly          Recurrence = "weekly"
	RecurrenceWeeklyOnWeekday Recurrence = "weekly_on_weekday"
	RecurrenceMonthly         Recurrence = "monthly"
)

// IsValid reports whether r is a known recurrence value.
func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceWeeklyOnWeekday, RecurrenceMonthly:
		return true
	}
	return false
}

// Repeats returns true if r schedules further occurrences.
func (r Recurrence) Repeats() bool {
	return r.IsValid() && r != RecurrenceNone
}

// Task is a single schedulable record.
// Fields are ordered to minimize memory padding.
type Task struct {
	UpdatedAt         time.Time  `json:"updatedAt" yaml:"updatedAt"`
	ID                string     `json:"id" yaml:"id"`
	Text              string     `json:"text" yaml:"text"`
	Owner             string     `json:"owner" yaml:"owner"`
	Date              string     `json:"date" yaml:"date"` // YYYY-MM-DD, local calendar date
	Recurrence        Recurrence `json:"recurrence,omitempty" yaml:"recurrence,omitempty"`
	Project           string     `json:"project,omitempty" yaml:"project,omitempty"`
	StartTime         string     `json:"start_time,omitempty" yaml:"start_time,omitempty"` // HH:MM
	SharedBy          string     `json:"sharedBy,omitempty" yaml:"sharedBy,omitempty"`     // set when the task is shared with me
	CalendarEventID   string     `json:"calendarEventId,omitempty" yaml:"calendarEventId,omitempty"`
	SharedWith        []string   `json:"sharedWith,omitempty" yaml:"sharedWith,omitempty"`
	EstimatedDuration int        `json:"estimated_duration,omitempty" yaml:"estimated_duration,omitempty"` // minutes
	Done              bool       `json:"done" yaml:"done"`
	Urgent            bool       `json:"urgent" yaml:"urgent"`
	IsEvent           bool       `json:"is_event,omitempty" yaml:"is_event,omitempty"`
	WasCarriedOver    bool       `json:"wasCarriedOver,omitempty" yaml:"wasCarriedOver,omitempty"`
}

// IsSharedWithMe returns true if another user owns the task and shared it.
func (t *Task) IsSharedWithMe() bool {
	return t.SharedBy != ""
}

// IsOverdue returns true if the task is not done and dated before today.
// Dates are zero-padded so string comparison is chronological.
func (t *Task) IsOverdue(today string) bool {
	return !t.Done && t.Date < today
}

// Touch refreshes UpdatedAt.
func (t *Task) Touch(now time.Time) {
	t.UpdatedAt = now
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	t.SharedWith = slices.Clone(t.SharedWith)
	return t
}

// NextOccurrence returns the date of the next occurrence of a recurring task.
// ok is false if the task does not repeat or its date is malformed.
func (t *Task) NextOccurrence() (string, bool) {
	if !t.Recurrence.Repeats() {
		return "", false
	}
	d, err := ParseDate(t.Date, time.Local)
	if err != nil {
		return "", false
	}
	switch t.Recurrence {
	case RecurrenceDaily:
		d = d.AddDate(0, 0, 1)
	case RecurrenceWeekly, RecurrenceWeeklyOnWeekday:
		d = d.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		d = d.AddDate(0, 1, 0)
	}
	return FormatDate(d), true
}
