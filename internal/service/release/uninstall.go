package release

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/pyship/pyship/internal/logger"
)

// runUninstall removes the previously installed distribution from the active
// environment. A package that is not installed is a success condition, not an
// error: the registry is probed first and the removal is skipped on a miss.
// A miss is the probe tool exiting nonzero; any other probe failure (missing
// package manager, timeout) is a registry error and aborts the step.
func (r *releaser) runUninstall(ctx context.Context) error {
	if _, err := r.exec.Output(ctx, r.cfg.Pip, "show", r.meta.Name); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("query package registry: %w", err)
		}

		logger.InfoKV(ctx, "Package is not installed, nothing to remove",
			"package", r.meta.Name)

		return nil
	}

	logger.InfoKV(ctx, "Removing installed package", "package", r.meta.Name)

	return r.exec.Run(ctx, r.cfg.Pip, "uninstall", "-y", r.meta.Name)
}
