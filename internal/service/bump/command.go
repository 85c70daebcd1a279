package bump

import (
	"context"
	"fmt"

	"github.com/pyship/pyship/internal/config"
	"github.com/pyship/pyship/internal/logger"
)

// Options contains inputs for the bump entry point.
type Options struct {
	// ConfigPath is an optional path to the pipeline settings (defaults to pyship.yaml).
	ConfigPath string
	// Part is the version part to increment: major, minor or patch.
	Part string
}

// Run increments the requested version part and persists the settings.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "pyship-bump")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	meta, err := cfg.Metadata()
	if err != nil {
		return err
	}

	bumped, err := meta.Version.Bump(opts.Part)
	if err != nil {
		return err
	}

	cfg.Project.Version = bumped.String()

	if err = config.Save(opts.ConfigPath, cfg); err != nil {
		return fmt.Errorf("persist bumped version: %w", err)
	}

	logger.InfoKV(ctx, "Bumped project version",
		"from", meta.Version.String(), "to", bumped.String())

	return nil
}
