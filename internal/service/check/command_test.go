package check

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyship/pyship/internal/config"
	"github.com/pyship/pyship/internal/toolchain/toolchaintest"
)

// writeConfig persists a configuration with the given checks into a temp dir.
func writeConfig(t *testing.T, checks [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	cfg := &config.Config{
		Project:    config.Project{Name: "app", Version: "1.2.0"},
		Entrypoint: filepath.Join("app", "__main__.py"),
		Checks:     checks,
	}
	require.NoError(t, config.Save(path, cfg))

	return path
}

// TestRunExecutesChecksInOrder runs every configured command.
func TestRunExecutesChecksInOrder(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, [][]string{
		{"python3", "-m", "pytest"},
		{"python3", "-m", "pylint", "app"},
	})

	fake := &toolchaintest.Fake{}

	err := Run(context.Background(), &Options{ConfigPath: path, Executor: fake})
	require.NoError(t, err)
	require.Equal(t, []string{
		"python3 -m pytest",
		"python3 -m pylint app",
	}, fake.CommandLines())
}

// TestRunStopsAtFirstFailure propagates the failing check's error.
func TestRunStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, [][]string{
		{"python3", "-m", "pytest"},
		{"python3", "-m", "pylint", "app"},
	})

	testErr := errors.New("2 tests failed")
	fake := &toolchaintest.Fake{
		Errors: map[string]error{"python3 -m pytest": testErr},
	}

	err := Run(context.Background(), &Options{ConfigPath: path, Executor: fake})
	require.ErrorIs(t, err, testErr)
	require.Len(t, fake.CommandLines(), 1)
}

// TestRunWithoutChecks reports a configuration without checks.
func TestRunWithoutChecks(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, nil)

	err := Run(context.Background(), &Options{ConfigPath: path, Executor: &toolchaintest.Fake{}})
	require.ErrorIs(t, err, errNoChecksConfigured)
}

// TestRunCommandsRejectsEmptyEntry flags a check entry without an executable.
func TestRunCommandsRejectsEmptyEntry(t *testing.T) {
	t.Parallel()

	err := RunCommands(context.Background(), &toolchaintest.Fake{}, [][]string{{}})
	require.ErrorIs(t, err, errEmptyCheckCommand)
}
