package project

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"
)

var (
	// errNameRequired is returned when the distribution name is missing.
	errNameRequired = errors.New("project name must be provided")

	// normalizeRE matches the characters that the wheel naming rules
	// collapse into a single underscore.
	normalizeRE = regexp.MustCompile(`[-_.]+`)
)

// Metadata identifies a release: the distribution name plus its version.
// It is the single source of truth for every artifact filename.
type Metadata struct {
	// Name is the distribution name as declared in the project configuration.
	Name string
	// Version is the release version.
	Version Version
}

// NewMetadata validates the name, parses the version string and returns the metadata.
func NewMetadata(name, version string) (Metadata, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Metadata{}, errNameRequired
	}

	v, err := ParseVersion(version)
	if err != nil {
		return Metadata{}, fmt.Errorf("project version: %w", err)
	}

	return Metadata{Name: name, Version: v}, nil
}

// NormalizedName returns the distribution name with runs of "-", "_" and "."
// replaced by a single underscore, as wheel and sdist filenames require.
func (m Metadata) NormalizedName() string {
	return normalizeRE.ReplaceAllString(m.Name, "_")
}

// WheelFilename returns the platform-generic wheel filename for this release,
// e.g. "app-1.2.0-py3-none-any.whl".
func (m Metadata) WheelFilename() string {
	return fmt.Sprintf("%s-%s-py3-none-any.whl", m.NormalizedName(), m.Version)
}

// SdistFilename returns the source distribution filename for this release,
// e.g. "app-1.2.0.tar.gz".
func (m Metadata) SdistFilename() string {
	return fmt.Sprintf("%s-%s.tar.gz", m.NormalizedName(), m.Version)
}

// ExecutableName returns the name of the frozen executable for the current platform.
func (m Metadata) ExecutableName() string {
	if runtime.GOOS == "windows" {
		return m.Name + ".exe"
	}

	return m.Name
}
