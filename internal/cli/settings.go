package cli

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/braindump/internal/app"
	"github.com/runoshun/braindump/internal/usecase"
	"github.com/spf13/cobra"
)

// newOwnersCommand creates the owners command.
func newOwnersCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owners",
		Short: "Show the owners tasks can be assigned to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := c.Store.Settings()
			w := cmd.OutOrStdout()
			for i, o := range settings.Owners {
				if i == 0 {
					_, _ = fmt.Fprintf(w, "%s (default)\n", o)
				} else {
					_, _ = fmt.Fprintln(w, o)
				}
			}
			return nil
		},
	}
	cmd.AddCommand(newOwnersSetCommand(c))

	return cmd
}

// newOwnersSetCommand creates the owners set subcommand.
func newOwnersSetCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name>[,<name>...]",
		Short: "Replace the owner list",
		Long: `Replace the owner list. The first owner is the default.

Examples:
  braindump owners set Thibaud,Marc
  braindump owners set Thibaud Marc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var owners []string
			for _, arg := range args {
				owners = append(owners, strings.Split(arg, ",")...)
			}
			out, err := c.SetOwnersUseCase().Execute(cmd.Context(), usecase.SetOwnersInput{Owners: owners})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Owners: %s\n", strings.Join(out.Settings.Owners, ", "))
			reportOutcome(cmd.ErrOrStderr(), out.Outcome)
			return nil
		},
	}
}

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every task and setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.ExportUseCase(cmd.OutOrStdout()).Execute(cmd.Context(), usecase.ExportInput{Format: format})
		},
	}
	cmd.Flags().StringVar(&format, "format", usecase.FormatJSON, "Output format: json, yaml")

	return cmd
}

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage the braindump configuration file.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// effectiveConfig is the printable form of the loaded configuration.
type effectiveConfig struct {
	Owners []string `toml:"owners"`
	Remote struct {
		URL     string `toml:"url"`
		Timeout string `toml:"timeout"`
	} `toml:"remote"`
	Store struct {
		Path string `toml:"path"`
	} `toml:"store"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			if out.GlobalConfig.Exists {
				_, _ = fmt.Fprintf(w, "- %s\n", out.GlobalConfig.Path)
			} else {
				_, _ = fmt.Fprintf(w, "- %s (not found)\n", out.GlobalConfig.Path)
			}
			_, _ = fmt.Fprintln(w)

			var eff effectiveConfig
			eff.Owners = c.AppConfig.Owners
			eff.Remote.URL = c.AppConfig.Remote.URL
			eff.Remote.Timeout = c.AppConfig.Remote.Timeout.String()
			eff.Store.Path = c.Config.StatePath
			eff.Log.Level = c.AppConfig.Log.Level

			data, err := toml.Marshal(eff)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, _ = fmt.Fprintln(w, "[Effective]")
			_, _ = w.Write(data)
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var owners []string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{Owners: owners})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", out.Path)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&owners, "owners", nil, "Owners to write into the template (default: current owners)")

	return cmd
}
