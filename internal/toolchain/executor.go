package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pyship/pyship/internal/logger"
)

// Executor abstracts external tool invocations.
type Executor interface {
	// Run executes the tool, streaming its stdout and stderr to the caller's terminal.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes the tool and returns its captured stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// CommandExecutor is the production Executor backed by os/exec.
type CommandExecutor struct {
	// timeout bounds a single invocation; zero means no bound beyond the context.
	timeout time.Duration
}

// NewCommandExecutor returns an Executor that bounds every invocation with the given timeout.
func NewCommandExecutor(timeout time.Duration) *CommandExecutor {
	return &CommandExecutor{timeout: timeout}
}

// Run executes the tool and passes its diagnostics through to the terminal.
func (e *CommandExecutor) Run(ctx context.Context, name string, args ...string) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	logger.DebugKV(ctx, "Running command", "command", commandLine(name, args))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}

// Output executes the tool and returns its stdout, leaving stderr on the terminal.
func (e *CommandExecutor) Output(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	logger.DebugKV(ctx, "Running command", "command", commandLine(name, args))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	return string(out), nil
}

// withTimeout derives a bounded context when a timeout is configured.
func (e *CommandExecutor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, e.timeout)
}

// ExitCode extracts the exit status carried by err. It returns 0 for nil,
// the tool's own status when the error wraps an *exec.ExitError, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}

	return 1
}

// commandLine renders an invocation for log output.
func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}

	return name + " " + strings.Join(args, " ")
}
