package release

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyship/pyship/internal/config"
	"github.com/pyship/pyship/internal/manifest"
	"github.com/pyship/pyship/internal/pipeline"
	"github.com/pyship/pyship/internal/toolchain/toolchaintest"
)

// pipelineFake scripts every tool invocation of a successful run.
func pipelineFake() *toolchaintest.Fake {
	return &toolchaintest.Fake{
		Outputs: map[string]string{
			"pip show app": "Name: app\nVersion: 1.2.0\n",
		},
		Hooks: map[string]func() error{
			"pyinstaller": touch(filepath.Join("dist", "app")),
			"python3 setup.py": touch(
				filepath.Join("dist", "app-1.2.0.tar.gz"),
				filepath.Join("dist", "app-1.2.0-py3-none-any.whl"),
			),
		},
	}
}

// TestRunFullPipeline runs the end-to-end scenario: uninstall, freeze, build,
// manifest, install and verify fire in their fixed order and the run leaves
// no marker behind.
func TestRunFullPipeline(t *testing.T) {
	chdir(t, t.TempDir())
	writeProject(t, nil)

	fake := pipelineFake()

	err := Run(context.Background(), &Options{Executor: fake})
	require.NoError(t, err)

	wheel := filepath.Join("dist", "app-1.2.0-py3-none-any.whl")

	require.Equal(t, []string{
		"pip show app",
		"pip uninstall -y app",
		"pyinstaller --noconfirm --onefile --clean --distpath dist --workpath build --name app --hidden-import=pkg_resources.py2_warn " + filepath.Join("app", "__main__.py"),
		"python3 setup.py sdist bdist_wheel",
		"pip install " + wheel,
		"pip show app",
	}, fake.CommandLines())

	// The manifest covers every produced artifact.
	m, err := manifest.Load(manifest.Filename)
	require.NoError(t, err)
	require.Equal(t, "1.2.0", m.VersionNumber)
	require.Len(t, m.Files, 3)

	// The run marker is gone.
	_, err = os.Stat(pipeline.MarkerFilename)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestRunIsIdempotent leaves the same end state after two consecutive runs.
func TestRunIsIdempotent(t *testing.T) {
	chdir(t, t.TempDir())
	writeProject(t, nil)

	for i := 0; i < 2; i++ {
		fake := pipelineFake()
		require.NoError(t, Run(context.Background(), &Options{Executor: fake}))

		m, err := manifest.Load(manifest.Filename)
		require.NoError(t, err)
		require.Equal(t, "1.2.0", m.VersionNumber)
	}
}

// TestRunFailFast aborts at the failed step and runs nothing after it.
func TestRunFailFast(t *testing.T) {
	chdir(t, t.TempDir())
	writeProject(t, nil)

	buildErr := errors.New("unresolvable import")
	fake := pipelineFake()
	fake.Errors = map[string]error{"pyinstaller": buildErr}

	err := Run(context.Background(), &Options{Executor: fake})
	require.ErrorIs(t, err, buildErr)
	require.ErrorContains(t, err, "step freeze")

	for _, line := range fake.CommandLines() {
		require.NotContains(t, line, "setup.py")
		require.NotContains(t, line, "pip install")
	}

	// A failed run must not leave the marker behind.
	_, err = os.Stat(pipeline.MarkerFilename)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestRunRefusesParallelRelease returns an error when a fresh marker exists.
func TestRunRefusesParallelRelease(t *testing.T) {
	chdir(t, t.TempDir())
	writeProject(t, nil)

	require.NoError(t, pipeline.CreateMarker())
	defer pipeline.RemoveMarker()

	err := Run(context.Background(), &Options{Executor: pipelineFake()})
	require.ErrorIs(t, err, errReleaseRunning)
}

// TestRunWithChecksPreflight runs the configured checks before the pipeline steps.
func TestRunWithChecksPreflight(t *testing.T) {
	chdir(t, t.TempDir())
	writeProject(t, &config.Config{
		Project:            config.Project{Name: "app", Version: "1.2.0"},
		Entrypoint:         filepath.Join("app", "__main__.py"),
		Checks:             [][]string{{"python3", "-m", "pytest"}},
		RunChecksOnRelease: true,
	})

	fake := pipelineFake()

	require.NoError(t, Run(context.Background(), &Options{Executor: fake}))
	require.Equal(t, "python3 -m pytest", fake.CommandLines()[0])

	// And the preflight can be skipped explicitly.
	fake = pipelineFake()

	require.NoError(t, Run(context.Background(), &Options{Executor: fake, SkipChecks: true}))
	require.Equal(t, "pip show app", fake.CommandLines()[0])
}

// TestRunWithDeploy copies the frozen executable into the deploy directory
// with checksum verification against the manifest.
func TestRunWithDeploy(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	deployDir := filepath.Join(dir, "bin")

	writeProject(t, &config.Config{
		Project:    config.Project{Name: "app", Version: "1.2.0"},
		Entrypoint: filepath.Join("app", "__main__.py"),
		DeployDir:  deployDir,
	})

	fake := pipelineFake()

	require.NoError(t, Run(context.Background(), &Options{Executor: fake}))

	deployed, err := os.ReadFile(filepath.Join(deployDir, "app"))
	require.NoError(t, err)

	source, err := os.ReadFile(filepath.Join("dist", "app"))
	require.NoError(t, err)
	require.Equal(t, source, deployed)
}
