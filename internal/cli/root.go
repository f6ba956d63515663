// Package cli provides the command-line interface for braindump.
package cli

import (
	"fmt"

	"github.com/runoshun/braindump/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupCapture = "capture"
	groupTask    = "task"
	groupSetup   = "setup"
)

// NewRootCommand creates the root command for braindump.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "braindump",
		Short: "Capture tasks from free text",
		Long: `braindump turns free-form lines into dated, owned tasks.

Dates ("tomorrow", "vendredi", "20/12"), urgency ("urgent", "!!"),
owners ("@Marc", "Marc:"), times, durations, recurrences and #projects
are recognised in English and French and removed from the title.

Tasks live in a local cache. After 'braindump login' every change is
also sent to the remote service; local changes are never lost when the
remote service is unreachable.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupCapture, Title: "Capture:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Capture commands
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupCapture

	dumpCmd := newDumpCommand(c)
	dumpCmd.GroupID = groupCapture

	// Task management commands
	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	moveCmd := newMoveCommand(c)
	moveCmd.GroupID = groupTask

	urgentCmd := newUrgentCommand(c)
	urgentCmd.GroupID = groupTask

	shareCmd := newShareCommand(c)
	shareCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	carryCmd := newCarryCommand(c)
	carryCmd.GroupID = groupTask

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupTask

	// Setup commands
	ownersCmd := newOwnersCommand(c)
	ownersCmd.GroupID = groupSetup

	syncCmd := newSyncCommand(c)
	syncCmd.GroupID = groupSetup

	loginCmd := newLoginCommand(c)
	loginCmd.GroupID = groupSetup

	logoutCmd := newLogoutCommand(c)
	logoutCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		addCmd,
		dumpCmd,
		listCmd,
		doneCmd,
		moveCmd,
		urgentCmd,
		shareCmd,
		rmCmd,
		carryCmd,
		exportCmd,
		ownersCmd,
		syncCmd,
		loginCmd,
		logoutCmd,
		configCmd,
	)

	return root
}
