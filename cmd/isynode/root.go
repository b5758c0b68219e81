package main

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dokzlo13/isynode/internal/config"
)

var (
	configPath string
	logLevel   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "isynode",
	Short:         "Inspect ISY node documents and replay captured controller state",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		cfg = loaded

		setupLogging(cfg.Log.GetLevel(), cfg.Log.JSON, cfg.Log.Colors)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(propsCmd, notesCmd, inspectCmd)
}

// loadConfig reads the config file, falling back to defaults when the
// path was not given explicitly and does not exist.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	loaded, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return config.Default(), nil
	}
	if err != nil {
		log.Error().Err(err).Str("config", path).Msg("Failed to load configuration")
		return nil, err
	}
	return loaded, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
