// Package cmd provides the entrypoint for the forwardhook cli.
package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Atlas-Rhythm/forwardhook/internal/config"
	"github.com/Atlas-Rhythm/forwardhook/internal/helpers"
	"github.com/Atlas-Rhythm/forwardhook/internal/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultConfigFile is read when neither --config nor FORWARDHOOK_CONFIG is given.
const DefaultConfigFile = "forwardhook.json"

var logger = helpers.NewNoopLogger()

// New returns the root command for forwardhook.
func New() *cobra.Command {
	boundFlags = nil

	cmd := &cobra.Command{
		Use:           "forwardhook",
		Short:         "Reshape incoming JSON webhooks and forward them upstream",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfiguration(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch config.Global.Mode {
			case config.ModeService:
				return runService(cmd.Context())
			case config.ModeLambda:
				return runLambda(cmd.Context())
			default:
				return fmt.Errorf("invalid mode: %s", config.Global.Mode)
			}
		},
	}

	// Root command flags
	cmd.PersistentFlags().StringP("config", "c", DefaultConfigFile, fmt.Sprintf("[%sCONFIG] path to the configuration file", envPrefix))
	_ = viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	_ = viper.BindEnv("config", envPrefix+"CONFIG")

	// Dynamic flags
	bindEnvMap(cmd, envMapString())
	bindEnvMap(cmd, envMapBool())
	bindEnvMap(cmd, envMapCount())

	// Subcommands
	cmd.AddCommand(
		cmdService(),
		cmdLambda(),
		cmdValidate(),
	)

	return cmd
}

// loadConfiguration reads the configuration file, fills in defaults and
// re-applies flag and environment values on top, in that order of precedence.
func loadConfiguration(cmd *cobra.Command) error {
	overrides := captureOverrides()

	config.Reset()
	path := viper.GetString("config")
	if err := config.LoadFromFile(path); err != nil {
		return err
	}
	if err := config.SetDefaults(); err != nil {
		return errors.Wrap(err, "failed to set configuration defaults")
	}
	if err := applyOverrides(overrides); err != nil {
		return err
	}
	config.Global.Mode = strings.TrimSpace(config.Global.Mode)

	logger = helpers.NewLogger(cmd.ErrOrStderr(), config.Global.Logging.Verbosity, config.Global.Logging.CallerTrace)
	logger.Debug("configuration loaded", slog.String("path", path), slog.Int("webhooks", len(config.Webhooks)))
	return nil
}
