package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields and default filling.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing everything.
	cfg := new(Config)

	err := Validate(cfg)
	require.Error(t, err)

	// Bad version.
	cfg = &Config{
		Project:    Project{Name: "app", Version: "1.2"},
		Entrypoint: "app/__main__.py",
	}

	err = Validate(cfg)
	require.Error(t, err)

	// No entry point is fine: only the freeze step needs one.
	cfg = &Config{
		Project: Project{Name: "app", Version: "1.2.0"},
	}

	err = Validate(cfg)
	require.NoError(t, err)

	// Valid configuration gets defaults filled in.
	cfg = &Config{
		Project:    Project{Name: "app", Version: "1.2.0"},
		Entrypoint: "app/__main__.py",
	}

	err = Validate(cfg)
	require.NoError(t, err)
	require.Equal(t, DefaultDistDir, cfg.DistDir)
	require.Equal(t, DefaultWorkDir, cfg.WorkDir)
	require.Equal(t, defaultPip, cfg.Pip)
	require.Equal(t, defaultPython, cfg.Python)
	require.Equal(t, defaultPyInstaller, cfg.PyInstaller)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, defaultHiddenImports(), cfg.HiddenImports)
}

// TestValidateKeepsExplicitHiddenImports ensures a configured list is not overwritten.
func TestValidateKeepsExplicitHiddenImports(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Project:       Project{Name: "app", Version: "1.2.0"},
		Entrypoint:    "app/__main__.py",
		HiddenImports: []string{"pkg_resources.py2_warn", "app.plugins"},
	}

	require.NoError(t, Validate(cfg))
	require.Equal(t, []string{"pkg_resources.py2_warn", "app.plugins"}, cfg.HiddenImports)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "pyship.yaml")

	cfg := &Config{
		Project:       Project{Name: "app", Version: "1.2.0"},
		Entrypoint:    "app/__main__.py",
		HiddenImports: []string{"pkg_resources.py2_warn"},
		DeployDir:     "/usr/local/bin",
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Project, loaded.Project)
	require.Equal(t, cfg.Entrypoint, loaded.Entrypoint)
	require.Equal(t, cfg.HiddenImports, loaded.HiddenImports)
	require.Equal(t, cfg.DeployDir, loaded.DeployDir)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoadMissingFile surfaces a read error for a nonexistent path.
func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// TestMetadata parses declared name and version into project metadata.
func TestMetadata(t *testing.T) {
	t.Parallel()

	cfg := &Config{Project: Project{Name: "app", Version: "1.2.0"}}

	meta, err := cfg.Metadata()
	require.NoError(t, err)
	require.Equal(t, "app-1.2.0-py3-none-any.whl", meta.WheelFilename())
}
