// Package cmd defines and implements the CLI commands for the sdtnames executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/sdtnames/internal/config"
	"github.com/JakeFAU/sdtnames/internal/logging"
)

// envKeyType is the key for storing the command environment in the context.
type envKeyType string

const envKey envKeyType = "env"

// env carries what every subcommand needs once configuration is loaded.
type env struct {
	cfg    config.Config
	logger *zap.Logger
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "sdtnames",
		Short: "Resolve broadcast service names from stream analyzer reports.",
		Long: `sdtnames reads the text report of a transport stream analyzer and extracts
the service names declared in its SDT, and reads program numbers from the
fragment of stream URLs (udp://239.0.0.1:1234#pnr=1106).

It also ships a stub acknowledgement endpoint for webhook integration tests
and a self-test that exercises all of the above.`,
		SilenceUsage: true,

		// Load configuration and build the logger before any subcommand runs.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logging.New(cfg.Logging.Development, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			zap.ReplaceGlobals(logger)

			ctx := context.WithValue(cmd.Context(), envKey, &env{cfg: cfg, logger: logger})
			cmd.SetContext(ctx)
			return nil
		},

		// Flush buffered log entries on the way out.
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if e, ok := cmd.Context().Value(envKey).(*env); ok && e != nil {
				_ = e.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); SDTNAMES_* environment variables override it")

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newPNRCmd())
	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newStubCmd())
	cmd.AddCommand(newSelftestCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		zap.L().Error("Command execution failed", zap.Error(err))
		os.Exit(1)
	}
}

func resolveEnv(ctx context.Context) (*env, error) {
	e, ok := ctx.Value(envKey).(*env)
	if !ok || e == nil {
		return nil, errors.New("command environment not initialized")
	}
	return e, nil
}
