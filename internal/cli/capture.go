package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/braindump/internal/app"
	"github.com/runoshun/braindump/internal/domain"
	"github.com/runoshun/braindump/internal/infra/surface"
	"github.com/runoshun/braindump/internal/usecase"
	"github.com/spf13/cobra"
)

// sessionFlags are the manual overrides shared by the capture commands.
type sessionFlags struct {
	Date   string
	Owner  string
	Urgent bool
}

func (f *sessionFlags) register(cmd *cobra.Command, withOwner bool) {
	cmd.Flags().StringVarP(&f.Date, "date", "d", "", "Date for the captured tasks (YYYY-MM-DD), overriding detected dates")
	cmd.Flags().BoolVarP(&f.Urgent, "urgent", "u", false, "Mark the captured tasks urgent")
	if withOwner {
		cmd.Flags().StringVarP(&f.Owner, "owner", "o", "", "Owner used when the text names nobody")
	}
}

func (f *sessionFlags) session() usecase.Session {
	return usecase.Session{
		ManualDate:    f.Date,
		ManualUrgent:  f.Urgent,
		SelectedOwner: f.Owner,
	}
}

// newAddCommand creates the add command for quick capture.
func newAddCommand(c *app.Container) *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Capture a single task",
		Long: `Capture one task from free text.

Examples:
  braindump add Call Marie tomorrow urgent @Marc
  braindump add "Réunion équipe à 14h30 chaque lundi #boulot"
  braindump add --date 2024-07-01 --owner Marc Renew passport`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.QuickCaptureUseCase(nil).Execute(cmd.Context(), usecase.CaptureInput{
				Text:    strings.Join(args, " "),
				Session: flags.session(),
			})
			if err != nil {
				return err
			}
			printCaptured(cmd, out)
			return nil
		},
	}
	flags.register(cmd, true)

	return cmd
}

// newDumpCommand creates the dump command for bulk capture.
func newDumpCommand(c *app.Container) *cobra.Command {
	var flags sessionFlags
	var opts struct {
		From  string
		Clear bool
	}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Capture one task per line",
		Long: `Capture every non-blank line as its own task.

Lines are read from --from or, by default, from standard input. Each line
names its own owner; lines without one go to the default owner.

Examples:
  pbpaste | braindump dump
  braindump dump --from ~/inbox.txt --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				text string
				surf domain.InputSurface
			)
			if opts.From != "" {
				file := surface.NewFile(opts.From)
				content, err := file.Read()
				if err != nil {
					return err
				}
				text = content
				if opts.Clear {
					surf = file
				}
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			out, err := c.BulkCaptureUseCase(surf).Execute(cmd.Context(), usecase.CaptureInput{
				Text:    text,
				Session: flags.session(),
			})
			if err != nil {
				return err
			}
			printCaptured(cmd, out)
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().StringVarP(&opts.From, "from", "f", "", "Read lines from a file instead of stdin")
	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "Empty the --from file once its lines are captured")

	return cmd
}

func printCaptured(cmd *cobra.Command, out *usecase.CaptureOutput) {
	w := cmd.OutOrStdout()
	s := newListStyles(w)
	for i, t := range out.Tasks {
		_, _ = fmt.Fprintf(w, "Added %s  %s\n", t.Date, renderTask(s, t))
		reportOutcome(cmd.ErrOrStderr(), out.Outcomes[i])
	}
	if len(out.Tasks) > 1 {
		_, _ = fmt.Fprintf(w, "Captured %d tasks", len(out.Tasks))
		if out.Skipped > 0 {
			_, _ = fmt.Fprintf(w, " (%d lines skipped)", out.Skipped)
		}
		_, _ = fmt.Fprintln(w)
	}
}
