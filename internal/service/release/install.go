package release

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pyship/pyship/internal/logger"
)

var (
	// errVersionMismatch indicates the installed version differs from the metadata version.
	errVersionMismatch = errors.New("installed version does not match project metadata")
	// errNoVersionInOutput indicates the registry output carried no version line.
	errNoVersionInOutput = errors.New("no version found in package registry output")
)

// runInstall installs the freshly built wheel into the active environment.
// The wheel path is derived from project metadata; its absence is reported
// before the package manager is even invoked.
func (r *releaser) runInstall(ctx context.Context) error {
	wheel := r.wheelPath()

	if _, err := os.Stat(wheel); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("wheel %s for version %s was not produced by the build step: %w",
				wheel, r.meta.Version, os.ErrNotExist)
		}

		return fmt.Errorf("stat wheel %s: %w", wheel, err)
	}

	logger.InfoKV(ctx, "Installing wheel", "path", wheel)

	return r.exec.Run(ctx, r.cfg.Pip, "install", wheel)
}

// runVerify is the post-install smoke check: the package registry must report
// the distribution at exactly the version declared in project metadata.
func (r *releaser) runVerify(ctx context.Context) error {
	out, err := r.exec.Output(ctx, r.cfg.Pip, "show", r.meta.Name)
	if err != nil {
		return fmt.Errorf("installed package is not visible in the registry: %w", err)
	}

	installed, err := parseShowVersion(out)
	if err != nil {
		return err
	}

	if installed != r.meta.Version.String() {
		return fmt.Errorf("%w: installed %s, expected %s",
			errVersionMismatch, installed, r.meta.Version)
	}

	logger.InfoKV(ctx, "Verified installed package",
		"package", r.meta.Name, "version", installed)

	return nil
}

// parseShowVersion extracts the version from `pip show` output.
func parseShowVersion(out string) (string, error) {
	for _, line := range strings.Split(out, "\n") {
		if version, ok := strings.CutPrefix(line, "Version:"); ok {
			version = strings.TrimSpace(version)
			if version != "" {
				return version, nil
			}
		}
	}

	return "", errNoVersionInOutput
}
