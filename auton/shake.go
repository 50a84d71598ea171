package auton

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fieldnav/fieldnav/components/drivetrain"
)

const (
	defaultShakePower = 0.5

	// shakeHalfCycle is how long each turn direction holds before reversing.
	shakeHalfCycle = 150 * time.Millisecond
)

// ShakeConfig tunes a Shake.
type ShakeConfig struct {
	// Duration is how long to keep rocking.
	Duration time.Duration
	// Power is the turn power magnitude; zero uses the default 0.5.
	Power float64
	// Clock supports deterministic tests; nil uses the wall clock.
	Clock clock.Clock
}

// Shake rocks the robot in place by alternating opposite tank powers every
// half-cycle until the duration elapses, then brakes. It frees game pieces
// stuck against the unloader. Cancelling ctx brakes early and returns the
// context error.
func Shake(ctx context.Context, dt drivetrain.Drivetrain, cfg ShakeConfig, logger golog.Logger) error {
	power := cfg.Power
	if power == 0 {
		power = defaultShakePower
	}
	if power < 0 || power > 1 {
		return errors.Errorf("shake power must be in (0, 1], got %v", power)
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	logger.Debugw("shaking", "duration", cfg.Duration, "power", power)
	start := clk.Now()
	ticker := clk.Ticker(shakeHalfCycle)
	defer ticker.Stop()
	dir := 1.0
	for {
		if err := ctx.Err(); err != nil {
			return multierr.Combine(err, brakeStop(ctx, dt))
		}
		if clk.Since(start) >= cfg.Duration {
			return brakeStop(ctx, dt)
		}
		if err := dt.Tank(ctx, -dir*power, dir*power); err != nil {
			return multierr.Combine(errors.Wrap(err, "commanding shake turn"), brakeStop(ctx, dt))
		}
		dir = -dir
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}
}

// DriveFor runs both sides at the same power for the given duration, then
// brakes. It covers the short open-loop nudges routines need between wall
// contacts. Cancelling ctx brakes early and returns the context error.
func DriveFor(
	ctx context.Context,
	dt drivetrain.Drivetrain,
	power float64,
	d time.Duration,
	clk clock.Clock,
	logger golog.Logger,
) error {
	if power < -1 || power > 1 {
		return errors.Errorf("drive power must be in [-1, 1], got %v", power)
	}
	if clk == nil {
		clk = clock.New()
	}

	logger.Debugw("driving open loop", "power", power, "duration", d)
	if err := dt.Tank(ctx, power, power); err != nil {
		return multierr.Combine(errors.Wrap(err, "commanding drive"), brakeStop(ctx, dt))
	}
	timer := clk.Timer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return multierr.Combine(ctx.Err(), brakeStop(ctx, dt))
	case <-timer.C:
	}
	return brakeStop(ctx, dt)
}

// brakeStop is the shared settle path: brake mode on, then zero power.
func brakeStop(ctx context.Context, dt drivetrain.Drivetrain) error {
	return multierr.Combine(
		dt.SetBrakeMode(ctx, drivetrain.BrakeModeBrake),
		dt.Tank(ctx, 0, 0),
	)
}
