// Package project models the metadata of the Python project being released:
// the distribution name, the semantic version, and the artifact filenames
// derived from them.
//
// Every pipeline step that needs an artifact name derives it from the same
// Metadata value, so a version bump can never leave a stale filename behind.
package project
