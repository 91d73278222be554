// Package cli implements the overlayctl command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/overlayctl/internal/app"
	"github.com/riordanpawley/overlayctl/internal/config"
	"github.com/riordanpawley/overlayctl/internal/logging"
	"github.com/spf13/cobra"
)

// options holds the global flags
type options struct {
	configPath string
	jsonOutput bool
}

// loadConfig reads --config when given, otherwise searches the working dir
func (o *options) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	return config.Load()
}

// dependencies loads config and builds a logger for profile
func (o *options) dependencies(profile logging.Profile) (*Dependencies, io.Closer, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := logging.New(cfg.Log, profile)
	if err != nil {
		return nil, nil, err
	}
	return NewDependencies(cfg, logger), closer, nil
}

// NewRootCmd builds the command tree
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:     "overlayctl",
		Version: version,
		Short:   "URL-driven overlay controller",
		Long: `overlayctl keeps a single overlay slot in a URL query parameter.

Opening an overlay writes its id into the parameter, closing removes it, and
every location is resolved against per-overlay suppress and show-only
patterns. Without a subcommand it starts the terminal host.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHost(opts, "")
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (.json or .toml)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(
		newRunCmd(opts),
		newResolveCmd(opts),
		newOpenCmd(opts),
		newCloseCmd(opts),
		newListCmd(opts),
	)
	return root
}

// Execute runs the root command with os.Args
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

// FormatError formats an error for display
func FormatError(err error) string {
	return formatError(err)
}

func newRunCmd(opts *options) *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the terminal host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHost(opts, url)
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "start location (overrides startLocation)")
	return cmd
}

func runHost(opts *options, url string) error {
	deps, closer, err := opts.dependencies(logging.ProfileTUI)
	if err != nil {
		return err
	}
	defer closer.Close()

	if url != "" {
		deps.Config.StartLocation = url
	}

	model, err := app.New(deps.Config, deps.Logger)
	if err != nil {
		return err
	}
	defer model.Close()

	deps.Logger.Info("starting terminal host", "location", deps.Config.StartLocation)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		deps.Logger.Error("terminal host failed", slog.Any("error", err))
		return fmt.Errorf("terminal host: %w", err)
	}
	return nil
}

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <url>",
		Short: "Show what would render at a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, closer, err := opts.dependencies(logging.ProfileCLI)
			if err != nil {
				return err
			}
			defer closer.Close()

			result, err := Resolve(deps, args[0])
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), result)
			}
			writeResolve(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newOpenCmd(opts *options) *cobra.Command {
	var (
		url  string
		data []string
	)
	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Print the URL with an overlay opened",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := ParseData(data)
			if err != nil {
				return err
			}
			deps, closer, err := opts.dependencies(logging.ProfileCLI)
			if err != nil {
				return err
			}
			defer closer.Close()

			result, err := Open(deps, url, args[0], props)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Location)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "/", "current location")
	cmd.Flags().StringArrayVarP(&data, "data", "d", nil, "props as key=value (repeatable)")
	return cmd
}

func newCloseCmd(opts *options) *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "close",
		Short: "Print the URL with the overlay parameter removed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, closer, err := opts.dependencies(logging.ProfileCLI)
			if err != nil {
				return err
			}
			defer closer.Close()

			result, err := Close(deps, url)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Location)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "/", "current location")
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured overlays and their patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, closer, err := opts.dependencies(logging.ProfileCLI)
			if err != nil {
				return err
			}
			defer closer.Close()

			items, err := List(deps)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), items)
			}
			writeList(cmd.OutOrStdout(), items)
			return nil
		},
	}
}
