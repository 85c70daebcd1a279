package release

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/pyship/pyship/internal/logger"
	"github.com/pyship/pyship/internal/manifest"
)

// runDeploy copies the frozen executable into the configured deploy
// directory, verifying it against the release manifest before applying.
func (r *releaser) runDeploy(ctx context.Context) error {
	m, err := manifest.Load(manifest.Filename)
	if err != nil {
		return err
	}

	source := r.executablePath()

	checksum, err := m.Checksum(source)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return err
	}

	target := filepath.Join(r.cfg.DeployDir, r.meta.ExecutableName())

	if _, err = os.Stat(target); err != nil && errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(r.cfg.DeployDir, manifest.DefaultFileMode); err != nil {
			return fmt.Errorf("create deploy directory: %w", err)
		}

		var placeholder *os.File
		if placeholder, err = os.Create(target); err != nil {
			return err
		}

		if err = placeholder.Close(); err != nil {
			return fmt.Errorf("close deploy target: %w", err)
		}
	}

	logger.InfoKV(ctx, "Deploying frozen executable", "target", target)

	options := goupdate.Options{
		TargetPath: target,
		TargetMode: manifest.DefaultFileMode,
		Checksum:   checksum,
		Hash:       manifest.DefaultChecksumFunction,
	}

	if err = goupdate.Apply(bytes.NewReader(data), options); err != nil {
		return err
	}

	// go-update leaves the replaced binary behind as .old.
	oldTarget := target + ".old"
	if _, err = os.Stat(oldTarget); err == nil {
		_ = os.Remove(oldTarget)
	}

	return nil
}
