// Package config defines the release pipeline settings and provides helpers
// to load, validate and save them in YAML format.
//
// The Config type holds project metadata, the freeze entry point, hidden
// imports for the freezer, tool overrides and artifact directories.
package config
