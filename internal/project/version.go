package project

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// errInvalidVersion is returned when a version string is not a semantic triple.
var errInvalidVersion = errors.New("version must be of the form major.minor.patch")

// Version is a parsed semantic version triple.
type Version struct {
	// Major is incremented on incompatible releases.
	Major int
	// Minor is incremented on backwards-compatible feature releases.
	Minor int
	// Patch is incremented on bugfix releases.
	Patch int
}

// ParseVersion parses a "major.minor.patch" string into a Version.
func ParseVersion(s string) (Version, error) {
	var v Version

	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return v, fmt.Errorf("%q: %w", s, errInvalidVersion)
	}

	numbers := make([]int, 0, len(parts))

	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return v, fmt.Errorf("%q: %w", s, errInvalidVersion)
		}

		numbers = append(numbers, n)
	}

	v.Major, v.Minor, v.Patch = numbers[0], numbers[1], numbers[2]

	return v, nil
}

// String renders the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 when v is older than, equal to or newer than other.
func (v Version) Compare(other Version) int {
	pairs := [][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	}

	for _, pair := range pairs {
		if pair[0] < pair[1] {
			return -1
		}

		if pair[0] > pair[1] {
			return 1
		}
	}

	return 0
}

// Bump returns a copy of v with the named part incremented
// and the lower-order parts reset to zero.
func (v Version) Bump(part string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(part)) {
	case "major":
		return Version{Major: v.Major + 1}, nil
	case "minor":
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case "patch":
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	default:
		return v, fmt.Errorf("unknown version part %q", part)
	}
}
