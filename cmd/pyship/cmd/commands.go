package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pyship/pyship/internal/service/bump"
	"github.com/pyship/pyship/internal/service/check"
	"github.com/pyship/pyship/internal/service/release"
)

var (
	// skipChecks disables the check preflight of a release run.
	skipChecks bool

	// releaseCmd runs the full pipeline.
	releaseCmd = &cobra.Command{
		Use:   "release",
		Short: "Run the full release pipeline (uninstall, freeze, build, install)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := commandContext()
			defer stop()

			return release.Run(ctx, &release.Options{
				ConfigPath: configPath,
				SkipChecks: skipChecks,
			})
		},
	}

	// checkCmd runs the configured check commands.
	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Run the project's configured check commands",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := commandContext()
			defer stop()

			return check.Run(ctx, &check.Options{ConfigPath: configPath})
		},
	}

	// bumpCmd increments the project version in the settings file.
	bumpCmd = &cobra.Command{
		Use:       "bump <major|minor|patch>",
		Short:     "Increment the project version in the settings file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"major", "minor", "patch"},
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := commandContext()
			defer stop()

			return bump.Run(ctx, &bump.Options{ConfigPath: configPath, Part: args[0]})
		},
	}
)

// stepCommand builds a subcommand that runs a single pipeline stage.
func stepCommand(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := commandContext()
			defer stop()

			return release.RunStep(ctx, &release.Options{ConfigPath: configPath}, name)
		},
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	releaseCmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "skip the check preflight")

	rootCmd.AddCommand(
		releaseCmd,
		checkCmd,
		bumpCmd,
		stepCommand(release.StepUninstall, "Remove the installed distribution from the active environment"),
		stepCommand(release.StepFreeze, "Freeze the entry point into a standalone executable"),
		stepCommand(release.StepBuild, "Build the sdist and wheel distribution archives"),
		stepCommand(release.StepInstall, "Install the built wheel into the active environment"),
		stepCommand(release.StepVerify, "Verify the installed version against project metadata"),
		stepCommand(release.StepDeploy, "Copy the frozen executable into the deploy directory"),
	)
}
