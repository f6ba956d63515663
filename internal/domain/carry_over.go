package domain

import "time"

// CarryOver moves every incomplete task dated before today to today.
// It returns the ids of moved tasks in state order. A second call on the same
// day moves nothing.
func CarryOver(state *State, now time.Time) []string {
	today := Today(now)
	var moved []string
	for i := range state.Tasks {
		t := &state.Tasks[i]
		if !t.IsOverdue(today) {
			continue
		}
		t.Date = today
		t.WasCarriedOver = true
		t.Touch(now)
		moved = append(moved, t.ID)
	}
	return moved
}
