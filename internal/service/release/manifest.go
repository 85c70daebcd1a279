package release

import (
	"context"

	"github.com/pyship/pyship/internal/logger"
	"github.com/pyship/pyship/internal/manifest"
)

// runManifest records checksums of every artifact the run produced so far
// and writes the release manifest next to the project configuration.
func (r *releaser) runManifest(ctx context.Context) error {
	m := manifest.New(r.meta.Version.String())

	for _, artifact := range []string{r.executablePath(), r.sdistPath(), r.wheelPath()} {
		if err := m.AddFile(artifact); err != nil {
			return err
		}
	}

	logger.InfoKV(ctx, "Saving release manifest", "path", manifest.Filename)

	return m.Save(manifest.Filename)
}
