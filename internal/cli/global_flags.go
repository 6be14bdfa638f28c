package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/supermodeltools/pwakit/internal/logger"
	"github.com/supermodeltools/pwakit/internal/pwa/config"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagLogJSON  = "log-json"
)

func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(flagLogLevel, "", "log level: debug, info, warn, error, disabled (default from config, else info)")
	cmd.PersistentFlags().Bool(flagLogJSON, false, "emit logs as JSON")
}

func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(flagConfig, "c", "pwa.yaml", "path to the pwakit config file")
}

// loadConfig reads the config named by --config and returns a context
// carrying a logger built from flags, falling back to the config's log
// section.
func loadConfig(cmd *cobra.Command, stderr io.Writer) (context.Context, *config.Config, error) {
	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	level, err := cmd.Flags().GetString(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	if level == "" {
		level = cfg.Log.Level
	}
	logJSON, err := cmd.Flags().GetBool(flagLogJSON)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get log-json flag: %w", err)
	}

	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --%s: %w", flagLogLevel, err)
	}

	lcfg := logger.DefaultConfig()
	lcfg.Level = lvl
	lcfg.JSON = logJSON || cfg.Log.JSON
	lcfg.Output = stderr

	ctx := logger.ContextWithLogger(cmd.Context(), logger.NewLogger(lcfg))
	return ctx, cfg, nil
}
