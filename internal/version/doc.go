// Package version exposes build metadata injected via ldflags and
// attaches the `version` subcommand to the CLI.
package version
