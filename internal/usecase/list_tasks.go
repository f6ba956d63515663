package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/runoshun/braindump/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
// Fields are ordered to minimize memory padding.
type ListTasksInput struct {
	Date  string // YYYY-MM-DD (empty = today, ignored with All)
	Owner string // Filter by owner (empty = everyone)
	All   bool   // List every date
	Open  bool   // Hide done tasks
}

// ListTasksOutput contains the result of listing tasks.
// Fields are ordered to minimize memory padding.
type ListTasksOutput struct {
	Date  string        // Listed date, empty with All
	Tasks []domain.Task // Sorted by date, open first, urgent first, then text
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	store domain.StateStore
	clock domain.Clock
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(store domain.StateStore, clock domain.Clock) *ListTasks {
	return &ListTasks{
		store: store,
		clock: clock,
	}
}

// Execute lists tasks matching the given input criteria.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	date := ""
	if !in.All {
		date = domain.Today(uc.clock.Now())
		if in.Date != "" {
			d, ok := domain.CanonicalDate(in.Date)
			if !ok {
				return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, in.Date)
			}
			date = d
		}
	}

	state := uc.store.State()
	tasks := make([]domain.Task, 0, len(state.Tasks))
	for _, t := range state.Tasks {
		if date != "" && t.Date != date {
			continue
		}
		if in.Owner != "" && !strings.EqualFold(t.Owner, in.Owner) {
			continue
		}
		if in.Open && t.Done {
			continue
		}
		tasks = append(tasks, t)
	}
	slices.SortStableFunc(tasks, compareTasks)

	return &ListTasksOutput{Date: date, Tasks: tasks}, nil
}

func compareTasks(a, b domain.Task) int {
	if c := strings.Compare(a.Date, b.Date); c != 0 {
		return c
	}
	if a.Done != b.Done {
		if a.Done {
			return 1
		}
		return -1
	}
	if a.Urgent != b.Urgent {
		if a.Urgent {
			return -1
		}
		return 1
	}
	return strings.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text))
}
