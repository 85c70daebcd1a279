package pipeline

import (
	"context"
	"errors"
	"os"
	"runtime"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/pyship/pyship/internal/logger"
)

const (
	// MarkerFilename marks that a release is running right now to avoid parallel execution.
	MarkerFilename = "pyship-release-marker.bin"

	// markerLifetime is the period after which a leftover marker is considered stale.
	markerLifetime = 30 * time.Minute

	// baseExecutable is the name of this tool's own binary, used for stale-marker recovery.
	baseExecutable = "pyship"
)

// CreateMarker writes the running marker to the working directory.
func CreateMarker() error {
	marker, err := os.Create(MarkerFilename)
	if err != nil {
		return err
	}

	return marker.Close()
}

// RemoveMarker deletes the running marker if present.
func RemoveMarker() {
	if _, err := os.Stat(MarkerFilename); err == nil {
		_ = os.Remove(MarkerFilename)
	}
}

// IsReleaseRunningNow checks presence of a marker file and attempts recovery if it looks stale.
func IsReleaseRunningNow(ctx context.Context) bool {
	logger.Debug(ctx, "Checking for the presence of a release marker")

	fileInfo, err := os.Stat(MarkerFilename)
	if err == nil {
		if time.Since(fileInfo.ModTime()) <= markerLifetime {
			return true
		}

		logger.Info(ctx, "The release marker is too old, attempting cleanup")

		if err = terminateProcessByName(ownExecutable()); err != nil {
			return true
		}

		if err = os.Remove(MarkerFilename); err != nil {
			return true
		}

		return false
	}

	if errors.Is(err, os.ErrNotExist) {
		logger.Debug(ctx, "Release marker not found, continuing")
		return false
	}

	logger.Infof(ctx, "Unable to read release marker: %v", err)

	return false
}

// terminateProcessByName tries to kill processes with the provided executable name.
func terminateProcessByName(processName string) error {
	processList, err := ps.Processes()
	if err != nil {
		return err
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() != processName {
			continue
		}

		var runningProcess *os.Process

		runningProcess, err = os.FindProcess(process.Pid())
		if err != nil {
			return err
		}

		if err = runningProcess.Kill(); err != nil {
			return err
		}
	}

	return nil
}

// ownExecutable returns this tool's binary name for the current platform.
func ownExecutable() string {
	if runtime.GOOS == "windows" {
		return baseExecutable + ".exe"
	}

	return baseExecutable
}
