package cli

import (
	"fmt"
	"strings"

	"github.com/runoshun/braindump/internal/app"
	"github.com/runoshun/braindump/internal/usecase"
	"github.com/spf13/cobra"
)

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Date    string
		Owner   string
		All     bool
		Open    bool
		NoCarry bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks for a day",
		Long: `List tasks for today, another day or every day.

Overdue, unfinished tasks are carried over to today first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !opts.NoCarry {
				carried, err := c.CarryOverUseCase().Execute(cmd.Context())
				if err != nil {
					return err
				}
				if n := len(carried.Moved); n > 0 {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Carried over %d task(s) to today\n", n)
					reportOutcome(cmd.ErrOrStderr(), carried.Outcome)
				}
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				Date:  opts.Date,
				Owner: opts.Owner,
				All:   opts.All,
				Open:  opts.Open,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Tasks) == 0 {
				if out.Date != "" {
					_, _ = fmt.Fprintf(w, "No tasks for %s\n", out.Date)
				} else {
					_, _ = fmt.Fprintln(w, "No tasks")
				}
				return nil
			}
			renderTasks(w, out.Tasks)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Date, "date", "d", "", "Day to list (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&opts.Owner, "owner", "o", "", "Only tasks owned by this person")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "List every day")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "Hide done tasks")
	cmd.Flags().BoolVar(&opts.NoCarry, "no-carry", false, "Do not carry overdue tasks over first")

	return cmd
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task done",
		Long: `Mark a task done, or open again if it already is.

Completing a recurring task schedules its next occurrence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.CompleteTaskInput{Ref: args[0]})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Task.Done {
				_, _ = fmt.Fprintf(w, "Completed %s: %s\n", shortID(out.Task.ID), out.Task.Text)
			} else {
				_, _ = fmt.Fprintf(w, "Reopened %s: %s\n", shortID(out.Task.ID), out.Task.Text)
			}
			reportOutcome(cmd.ErrOrStderr(), out.Outcome)
			if out.Next != nil {
				_, _ = fmt.Fprintf(w, "Next occurrence %s on %s\n", shortID(out.Next.Task.ID), out.Next.Task.Date)
				reportOutcome(cmd.ErrOrStderr(), out.Next.Outcome)
			}
			return nil
		},
	}
}

// newMoveCommand creates the move command.
func newMoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <date>",
		Short: "Move a task to another day",
		Long: `Move a task to another day.

The date is YYYY-MM-DD or any date phrase capture understands:
  braindump move 3f2a tomorrow
  braindump move 3f2a vendredi
  braindump move 3f2a 20/12`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.RescheduleTaskUseCase().Execute(cmd.Context(), usecase.RescheduleTaskInput{
				Ref:  args[0],
				When: strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", shortID(out.Task.ID), out.Task.Date)
			reportOutcome(cmd.ErrOrStderr(), out.Outcome)
			return nil
		},
	}
}

// newUrgentCommand creates the urgent command.
func newUrgentCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "urgent <id>",
		Short: "Toggle a task's urgency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ToggleUrgentUseCase().Execute(cmd.Context(), usecase.ToggleUrgentInput{Ref: args[0]})
			if err != nil {
				return err
			}
			state := "not urgent"
			if out.Task.Urgent {
				state = "urgent"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Marked %s %s\n", shortID(out.Task.ID), state)
			reportOutcome(cmd.ErrOrStderr(), out.Outcome)
			return nil
		},
	}
}

// newShareCommand creates the share command.
func newShareCommand(c *app.Container) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "share <id> <who>",
		Short: "Share a task with someone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ShareTaskUseCase().Execute(cmd.Context(), usecase.ShareTaskInput{
				Ref:          args[0],
				Collaborator: args[1],
				Remove:       remove,
			})
			if err != nil {
				return err
			}
			if remove {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stopped sharing %s with %s\n", shortID(out.Task.ID), args[1])
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Shared %s with %s\n", shortID(out.Task.ID), args[1])
			}
			reportOutcome(cmd.ErrOrStderr(), out.Outcome)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "Stop sharing instead")

	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{Ref: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", shortID(out.Task.ID), out.Task.Text)
			reportOutcome(cmd.ErrOrStderr(), out.Outcome)
			return nil
		},
	}
}

// newCarryCommand creates the carry command.
func newCarryCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "carry",
		Short: "Move overdue tasks to today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.CarryOverUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Carried over %d task(s)\n", len(out.Moved))
			reportOutcome(cmd.ErrOrStderr(), out.Outcome)
			return nil
		},
	}
}
