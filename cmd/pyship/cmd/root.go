package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pyship/pyship/internal/config"
	"github.com/pyship/pyship/internal/logger"
	"github.com/pyship/pyship/internal/toolchain"
	"github.com/pyship/pyship/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// logLevel is the minimum level for console output.
	logLevel string

	// rootCmd represents the base command of the release pipeline.
	rootCmd = &cobra.Command{
		Use:          "pyship",
		Short:        "Release pipeline for Python applications",
		Long:         "pyship removes the previously installed distribution, freezes the entry point into a standalone executable, builds sdist and wheel archives, and installs the fresh wheel into the active environment.",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if lvl, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(lvl)
			}
		},
	}
)

// Execute runs the pyship CLI. The exit status propagates the failed tool's
// own exit code when one is available.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(toolchain.ExitCode(err))
	}
}

// commandContext returns a context cancelled on SIGTERM/SIGINT for graceful shutdown.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum log level (debug, info, warn, error, fatal)")
}
