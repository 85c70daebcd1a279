package check

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pyship/pyship/internal/config"
	"github.com/pyship/pyship/internal/logger"
	"github.com/pyship/pyship/internal/toolchain"
)

var (
	// errNoChecksConfigured is returned when the configuration lists no checks.
	errNoChecksConfigured = errors.New("no checks configured")
	// errEmptyCheckCommand is returned for a check entry without an executable.
	errEmptyCheckCommand = errors.New("check command is empty")
)

// Options contains inputs for the check entry point.
type Options struct {
	// ConfigPath is an optional path to the pipeline settings (defaults to pyship.yaml).
	ConfigPath string
	// Executor overrides the external tool runner; tests substitute a fake here.
	Executor toolchain.Executor
}

// Run executes every configured check command in order, stopping at the first failure.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "pyship-check")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	if len(cfg.Checks) == 0 {
		return errNoChecksConfigured
	}

	exec := opts.Executor
	if exec == nil {
		exec = toolchain.NewCommandExecutor(cfg.Timeout)
	}

	if err = RunCommands(ctx, exec, cfg.Checks); err != nil {
		return err
	}

	logger.Info(ctx, "All checks passed")

	return nil
}

// RunCommands executes the given commands (argv form) in order.
func RunCommands(ctx context.Context, exec toolchain.Executor, checks [][]string) error {
	for _, argv := range checks {
		if len(argv) == 0 {
			return errEmptyCheckCommand
		}

		logger.InfoKV(ctx, "Running check", "command", strings.Join(argv, " "))

		if err := exec.Run(ctx, argv[0], argv[1:]...); err != nil {
			return fmt.Errorf("check %s: %w", argv[0], err)
		}
	}

	return nil
}
