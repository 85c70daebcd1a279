package release

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pyship/pyship/internal/logger"
)

// errEntrypointRequired is returned when the settings declare no entry point to freeze.
var errEntrypointRequired = errors.New("entrypoint must be provided")

// runFreeze bundles the entry point and its dependencies into one standalone
// executable. Prior build output is discarded first (--clean), prompts are
// suppressed (--noconfirm) and every configured hidden import is registered
// with the freezer's static analysis.
func (r *releaser) runFreeze(ctx context.Context) error {
	if r.cfg.Entrypoint == "" {
		return errEntrypointRequired
	}

	if _, err := os.Stat(r.cfg.Entrypoint); err != nil {
		return fmt.Errorf("entry point %s: %w", r.cfg.Entrypoint, err)
	}

	args := []string{
		"--noconfirm",
		"--onefile",
		"--clean",
		"--distpath", r.cfg.DistDir,
		"--workpath", r.cfg.WorkDir,
		"--name", r.meta.Name,
	}

	for _, hidden := range r.cfg.HiddenImports {
		args = append(args, "--hidden-import="+hidden)
	}

	args = append(args, r.cfg.Entrypoint)

	logger.InfoKV(ctx, "Freezing entry point into a standalone executable",
		"entrypoint", r.cfg.Entrypoint, "name", r.meta.Name)

	if err := r.exec.Run(ctx, r.cfg.PyInstaller, args...); err != nil {
		return err
	}

	// The freezer must have produced the expected executable.
	executable := r.executablePath()
	if _, err := os.Stat(executable); err != nil {
		return fmt.Errorf("frozen executable %s: %w", executable, err)
	}

	// The generated spec file is a build byproduct, not an artifact.
	specFile := r.meta.Name + ".spec"
	if _, err := os.Stat(specFile); err == nil {
		_ = os.Remove(specFile)
	}

	logger.InfoKV(ctx, "Produced frozen executable", "path", executable)

	return nil
}
