package release

import (
	"context"
	"fmt"
	"os"

	"github.com/pyship/pyship/internal/logger"
)

// runBuild invokes the packaging toolchain to produce both the source
// distribution and the wheel from the project's own build configuration.
// Both artifact names are derived from project metadata, never spelled out,
// so a version bump cannot desynchronize the pipeline.
func (r *releaser) runBuild(ctx context.Context) error {
	logger.InfoKV(ctx, "Building distribution archives", "dist_dir", r.cfg.DistDir)

	if err := r.exec.Run(ctx, r.cfg.Python, "setup.py", "sdist", "bdist_wheel"); err != nil {
		return err
	}

	for _, artifact := range []string{r.sdistPath(), r.wheelPath()} {
		if _, err := os.Stat(artifact); err != nil {
			return fmt.Errorf("expected artifact %s: %w", artifact, err)
		}
	}

	logger.InfoKV(ctx, "Produced distribution archives",
		"sdist", r.sdistPath(), "wheel", r.wheelPath())

	return nil
}
