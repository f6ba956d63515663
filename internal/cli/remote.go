package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/braindump/internal/app"
	"github.com/runoshun/braindump/internal/domain"
	"github.com/runoshun/braindump/internal/usecase"
	"github.com/spf13/cobra"
)

// newSyncCommand creates the sync command.
func newSyncCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replace local tasks with the remote copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.SyncRemoteUseCase().Execute(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return fmt.Errorf("%w: run 'braindump login' and set remote.url", err)
				}
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Synced %d task(s)\n", out.Tasks)
			return nil
		},
	}
}

// newLoginCommand creates the login command.
func newLoginCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Token string
		TTL   time.Duration
		Sync  bool
	}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the remote access token",
		Long: `Store the bearer token used to reach the remote service.

Without --token the token is read from the first line of stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token := opts.Token
			if token == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read token: %w", domain.ErrUnauthenticated)
				}
				token = strings.TrimSpace(line)
			}

			out, err := c.LoginUseCase().Execute(cmd.Context(), usecase.LoginInput{
				Token: token,
				TTL:   opts.TTL,
				Sync:  opts.Sync,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
			if out.Synced {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Synced %d task(s)\n", len(c.Store.State().Tasks))
			}
			if out.SyncErr != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: sync failed: %v\n", out.SyncErr)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Token, "token", "t", "", "Bearer token")
	cmd.Flags().DurationVar(&opts.TTL, "ttl", 0, "Token lifetime (e.g. 720h, 0 = no expiry)")
	cmd.Flags().BoolVar(&opts.Sync, "sync", true, "Load the remote tasks after logging in")

	return cmd
}

// newLogoutCommand creates the logout command.
func newLogoutCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the remote access token",
		Long:  `Forget the remote access token. Local tasks are kept.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.LogoutUseCase().Execute(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
