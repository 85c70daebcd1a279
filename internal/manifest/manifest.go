package manifest

import (
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	// Ensure SHA512 is available for checksum calculation.
	_ "crypto/sha512"
)

const (
	// Filename is where the release manifest is written after a successful build.
	Filename = "pyship-manifest.yaml"

	// DefaultFileMode is used when producing artifacts for distribution.
	DefaultFileMode os.FileMode = 0o755

	// DefaultChecksumFunction is used to calculate artifact hashes.
	DefaultChecksumFunction crypto.Hash = crypto.SHA512

	// defaultMapCapacity is the initial capacity for the file map.
	defaultMapCapacity = 8
)

var (
	errHashUnavailable = errors.New("hash function unavailable")
	errNoChecksum      = errors.New("checksum missing for file")
)

// Manifest contains metadata about a published release.
type Manifest struct {
	// VersionNumber is the semantic version of this release.
	VersionNumber string `yaml:"version"`
	// Files maps artifact paths to their base64-encoded checksums.
	Files map[string]string `yaml:"files"`
}

// New produces a Manifest for the given release version.
func New(version string) *Manifest {
	return &Manifest{
		VersionNumber: version,
		Files:         make(map[string]string, defaultMapCapacity),
	}
}

// AddFile hashes the artifact at path and records its checksum.
func (m *Manifest) AddFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, os.ErrNotExist)
	} else if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	checksum, err := FileChecksum(path)
	if err != nil {
		return err
	}

	m.Files[path] = base64.StdEncoding.EncodeToString(checksum)

	return nil
}

// Checksum returns the decoded checksum recorded for the artifact at path.
func (m *Manifest) Checksum(path string) ([]byte, error) {
	encoded, ok := m.Files[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, errNoChecksum)
	}

	checksum, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode checksum for %s: %w", path, err)
	}

	return checksum, nil
}

// Save writes the manifest to the given path in YAML form.
func (m *Manifest) Save(path string) error {
	contents, err := yaml.Marshal(m)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Clean(path), contents, DefaultFileMode)
}

// Load reads a manifest back from disk.
func Load(path string) (*Manifest, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// FileChecksum returns checksum bytes for a file using DefaultChecksumFunction.
func FileChecksum(path string) ([]byte, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	if !DefaultChecksumFunction.Available() {
		return nil, fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	hasher := DefaultChecksumFunction.New()
	if _, err = hasher.Write(contents); err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	return hasher.Sum(nil), nil
}
