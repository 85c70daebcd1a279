package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pyship/pyship/internal/project"
)

// Project holds the distribution name and version as declared by the user.
// It is the on-disk form of project.Metadata.
type Project struct {
	// Name is the distribution name registered with the package registry.
	Name string `yaml:"name"`
	// Version is the release version as a "major.minor.patch" string.
	Version string `yaml:"version"`
}

// Config holds the release pipeline settings for one project.
type Config struct {
	// Project identifies the distribution being released.
	Project Project `yaml:"project"`
	// Entrypoint is the Python source file handed to the freezer.
	// Only the freeze step requires it.
	Entrypoint string `yaml:"entrypoint"`
	// HiddenImports lists modules the freezer's static analysis cannot discover.
	HiddenImports []string `yaml:"hidden_imports"`
	// DistDir is where the builder and the freezer place their artifacts.
	DistDir string `yaml:"dist_dir"`
	// WorkDir is the freezer's intermediate build directory.
	WorkDir string `yaml:"work_dir"`
	// DeployDir, when set, is where the frozen executable is copied after a release.
	DeployDir string `yaml:"deploy_dir"`
	// Python is the interpreter used for the distribution build.
	Python string `yaml:"python"`
	// Pip is the package manager used for install and uninstall.
	Pip string `yaml:"pip"`
	// PyInstaller is the freezing tool executable.
	PyInstaller string `yaml:"pyinstaller"`
	// Timeout bounds every external tool invocation.
	Timeout time.Duration `yaml:"timeout"`
	// Checks are commands (argv form) run by `pyship check`.
	Checks [][]string `yaml:"checks"`
	// RunChecksOnRelease runs Checks as a release preflight when true.
	RunChecksOnRelease bool `yaml:"run_checks_on_release"`
}

const (
	// DefaultConfigFilename is the default filename for pipeline settings.
	DefaultConfigFilename = "pyship.yaml"

	// DefaultDistDir is the conventional artifact output directory.
	DefaultDistDir = "dist"

	// DefaultWorkDir is the freezer's default intermediate directory.
	DefaultWorkDir = "build"

	// DefaultTimeout bounds a single external tool invocation.
	DefaultTimeout = 10 * time.Minute

	// DefaultFilePermissions is the file permission for the settings file.
	DefaultFilePermissions = 0o600

	// Default tool names resolved through PATH.
	defaultPython      = "python3"
	defaultPip         = "pip"
	defaultPyInstaller = "pyinstaller"
)

// defaultHiddenImports seeds the hidden import list when the configuration
// does not mention it at all. pkg_resources.py2_warn is a well-known
// blind spot of the freezer's static analysis.
func defaultHiddenImports() []string {
	return []string{"pkg_resources.py2_warn"}
}

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks required fields and fills in defaults for the optional ones.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if _, err := cfg.Metadata(); err != nil {
		return err
	}

	if cfg.HiddenImports == nil {
		cfg.HiddenImports = defaultHiddenImports()
	}

	if cfg.DistDir == "" {
		cfg.DistDir = DefaultDistDir
	}

	if cfg.WorkDir == "" {
		cfg.WorkDir = DefaultWorkDir
	}

	if cfg.Python == "" {
		cfg.Python = defaultPython
	}

	if cfg.Pip == "" {
		cfg.Pip = defaultPip
	}

	if cfg.PyInstaller == "" {
		cfg.PyInstaller = defaultPyInstaller
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return nil
}

// Metadata parses the declared project name and version.
func (c *Config) Metadata() (project.Metadata, error) {
	return project.NewMetadata(c.Project.Name, c.Project.Version)
}
