package auton

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// A Routine is a named autonomous program.
type Routine struct {
	Name string
	// Run drives the routine to completion or first failure.
	Run func(ctx context.Context, r *Robot) error
}

// RunRoutine executes routine against r under a fresh run ID, logging start,
// finish and duration. A failed step aborts the routine and surfaces the
// wrapped error. The drive is stopped on the way out either way.
func RunRoutine(ctx context.Context, routine Routine, r *Robot) error {
	logger := r.Logger.With("routine", routine.Name, "runID", uuid.NewString())
	clk := r.clock()

	logger.Infow("routine starting")
	start := clk.Now()
	err := routine.Run(ctx, r)
	elapsed := clk.Since(start)

	stopErr := r.Drive.Stop(ctx)
	if err != nil {
		logger.Warnw("routine failed", "elapsed", elapsed, "error", err)
		return multierr.Combine(errors.Wrapf(err, "routine %q", routine.Name), stopErr)
	}
	logger.Infow("routine finished", "elapsed", elapsed)
	return stopErr
}
