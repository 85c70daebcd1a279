package pipeline

import (
	"context"
	"fmt"

	"github.com/pyship/pyship/internal/logger"
)

// Step is one named stage of a release run.
type Step struct {
	// Name identifies the step in logs and error messages.
	Name string
	// Run performs the step's side effects.
	Run func(ctx context.Context) error
}

// Run executes the steps in order and stops at the first failure.
// The returned error wraps the failing step's error with its name, so the
// underlying tool's exit status stays reachable via errors.As.
func Run(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		logger.InfoKV(ctx, "Running step",
			"step", step.Name,
			"position", fmt.Sprintf("%d/%d", i+1, len(steps)))

		if err := step.Run(ctx); err != nil {
			return fmt.Errorf("step %s: %w", step.Name, err)
		}

		logger.InfoKV(ctx, "Step completed", "step", step.Name)
	}

	return nil
}
