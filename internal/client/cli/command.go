package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/weatherface/internal/buildinfo"
	"github.com/dmitrijs2005/weatherface/internal/client/config"
	"github.com/dmitrijs2005/weatherface/internal/logging"
)

// NewRootCommand builds the weatherface command tree. Without a subcommand
// the interactive REPL starts.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "weatherface",
		Short:         "Current weather for your cities, from the terminal.",
		Long:          "WeatherFace keeps a local account with a roster of cities and looks up their current weather on OpenWeatherMap.",
		Version:       buildinfo.Version(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}

			app, err := NewApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			app.reader = bufio.NewReader(cmd.InOrStdin())
			app.out = cmd.OutOrStdout()

			app.Run(cmd.Context())
			return nil
		},
	}

	config.RegisterFlags(root.PersistentFlags())
	root.AddCommand(weatherCommand(), versionCommand())
	return root
}

func weatherCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "weather <city>",
		Short: "Print the current weather for a city",
		Long:  "Print the current weather for a city. No account is needed; multi-word names may be passed unquoted.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			return LookupWeather(cmd.Context(), cfg, log, strings.Join(args, " "), cmd.OutOrStdout())
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

// setup loads the configuration from cmd's flags and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, logging.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.LogBackend, cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
