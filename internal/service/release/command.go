package release

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pyship/pyship/internal/config"
	"github.com/pyship/pyship/internal/logger"
	"github.com/pyship/pyship/internal/pipeline"
	"github.com/pyship/pyship/internal/project"
	"github.com/pyship/pyship/internal/service/check"
	"github.com/pyship/pyship/internal/toolchain"
)

// Step names, also accepted by RunStep for running a single stage.
const (
	StepCheck     = "check"
	StepUninstall = "uninstall"
	StepFreeze    = "freeze"
	StepBuild     = "build"
	StepManifest  = "manifest"
	StepInstall   = "install"
	StepVerify    = "verify"
	StepDeploy    = "deploy"
)

// Options contains inputs for the release entry points.
type Options struct {
	// ConfigPath is an optional path to the pipeline settings (defaults to pyship.yaml).
	ConfigPath string
	// SkipChecks disables the check preflight even when the configuration enables it.
	SkipChecks bool
	// Executor overrides the external tool runner; tests substitute a fake here.
	Executor toolchain.Executor
}

// releaser holds the state shared by the pipeline steps.
// It is unexported—callers should use Run or RunStep.
type releaser struct {
	// cfg holds the validated pipeline settings.
	cfg *config.Config
	// meta is the parsed project metadata every artifact name derives from.
	meta project.Metadata
	// exec runs the external tools.
	exec toolchain.Executor
}

var (
	// errReleaseRunning indicates that another release run owns the marker.
	errReleaseRunning = errors.New("a release is already running")
	// errUnknownStep is returned by RunStep for an unrecognized step name.
	errUnknownStep = errors.New("unknown step")
)

// Run executes the full release pipeline.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "pyship-release")

	rel, err := newReleaser(opts)
	if err != nil {
		return fmt.Errorf("initialize release: %w", err)
	}

	if pipeline.IsReleaseRunningNow(ctx) {
		return errReleaseRunning
	}

	if err = pipeline.CreateMarker(); err != nil {
		return fmt.Errorf("create release marker: %w", err)
	}

	defer pipeline.RemoveMarker()

	ctx = logger.WithKV(ctx, "package", rel.meta.Name)

	logger.InfoKV(ctx, "Releasing", "version", rel.meta.Version.String())

	if err = pipeline.Run(ctx, rel.steps(opts.SkipChecks)); err != nil {
		logger.ErrorKV(ctx, "Release failed", "error", err)
		return err
	}

	logger.Info(ctx, "Release completed successfully")

	return nil
}

// RunStep executes a single named stage of the pipeline.
func RunStep(ctx context.Context, opts *Options, name string) error {
	ctx = logger.WithName(ctx, "pyship-"+name)

	rel, err := newReleaser(opts)
	if err != nil {
		return fmt.Errorf("initialize %s: %w", name, err)
	}

	step, err := rel.step(name)
	if err != nil {
		return err
	}

	return pipeline.Run(ctx, []pipeline.Step{step})
}

// newReleaser loads and validates the configuration and wires the executor.
func newReleaser(opts *Options) (*releaser, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	meta, err := cfg.Metadata()
	if err != nil {
		return nil, err
	}

	exec := opts.Executor
	if exec == nil {
		exec = toolchain.NewCommandExecutor(cfg.Timeout)
	}

	return &releaser{cfg: cfg, meta: meta, exec: exec}, nil
}

// steps assembles the pipeline in its fixed total order.
// The check preflight and the deploy step join only when configured.
func (r *releaser) steps(skipChecks bool) []pipeline.Step {
	steps := make([]pipeline.Step, 0, 8)

	if r.cfg.RunChecksOnRelease && !skipChecks {
		steps = append(steps, pipeline.Step{Name: StepCheck, Run: r.runChecks})
	}

	steps = append(steps,
		pipeline.Step{Name: StepUninstall, Run: r.runUninstall},
		pipeline.Step{Name: StepFreeze, Run: r.runFreeze},
		pipeline.Step{Name: StepBuild, Run: r.runBuild},
		pipeline.Step{Name: StepManifest, Run: r.runManifest},
		pipeline.Step{Name: StepInstall, Run: r.runInstall},
		pipeline.Step{Name: StepVerify, Run: r.runVerify},
	)

	if r.cfg.DeployDir != "" {
		steps = append(steps, pipeline.Step{Name: StepDeploy, Run: r.runDeploy})
	}

	return steps
}

// step resolves a single stage by name.
func (r *releaser) step(name string) (pipeline.Step, error) {
	byName := map[string]func(context.Context) error{
		StepCheck:     r.runChecks,
		StepUninstall: r.runUninstall,
		StepFreeze:    r.runFreeze,
		StepBuild:     r.runBuild,
		StepManifest:  r.runManifest,
		StepInstall:   r.runInstall,
		StepVerify:    r.runVerify,
		StepDeploy:    r.runDeploy,
	}

	run, ok := byName[name]
	if !ok {
		return pipeline.Step{}, fmt.Errorf("%q: %w", name, errUnknownStep)
	}

	return pipeline.Step{Name: name, Run: run}, nil
}

// runChecks executes the configured check commands as a release preflight.
func (r *releaser) runChecks(ctx context.Context) error {
	return check.RunCommands(ctx, r.exec, r.cfg.Checks)
}

// wheelPath is the wheel archive location derived from project metadata.
func (r *releaser) wheelPath() string {
	return filepath.Join(r.cfg.DistDir, r.meta.WheelFilename())
}

// sdistPath is the source archive location derived from project metadata.
func (r *releaser) sdistPath() string {
	return filepath.Join(r.cfg.DistDir, r.meta.SdistFilename())
}

// executablePath is where the freezer leaves the standalone executable.
func (r *releaser) executablePath() string {
	return filepath.Join(r.cfg.DistDir, r.meta.ExecutableName())
}
