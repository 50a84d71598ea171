package wallreset

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fieldnav/fieldnav/components/distancesensor"
	"github.com/fieldnav/fieldnav/components/drivetrain"
)

const (
	// DefaultApproachTimeout bounds how long an approach drives before the
	// emergency stop fires.
	DefaultApproachTimeout = 3 * time.Second

	approachPollInterval = 10 * time.Millisecond
)

// ApproachConfig tunes a drive-until-wall maneuver.
type ApproachConfig struct {
	// ThresholdIn stops the drive once the sensor reads at or below this
	// many inches. Zero and negative readings never satisfy the stop; they
	// are indistinguishable from a sensor with no target.
	ThresholdIn float64
	// Power is the drive power magnitude in (0, 1].
	Power float64
	// Forwards selects the drive direction.
	Forwards bool
	// Timeout bounds the maneuver; zero uses DefaultApproachTimeout.
	Timeout time.Duration
	// Clock supports deterministic tests; nil uses the wall clock.
	Clock clock.Clock
}

// Approach drives at constant power until the sensor reads inside the stop
// threshold or the timeout elapses, polling every 10ms. Both exits leave the
// drivetrain holding position at zero power, and neither is an error: a
// timed-out approach is still a stopped robot, and callers re-verify with a
// reset afterward. Cancelling ctx also stops the robot and returns the
// context error. The call blocks until one of the three exits.
func Approach(
	ctx context.Context,
	dt drivetrain.Drivetrain,
	sensor distancesensor.Sensor,
	cfg ApproachConfig,
	logger golog.Logger,
) error {
	if cfg.Power <= 0 || cfg.Power > 1 {
		return errors.Errorf("approach power must be in (0, 1], got %v", cfg.Power)
	}
	if cfg.ThresholdIn <= 0 {
		return errors.Errorf("approach threshold must be positive, got %v", cfg.ThresholdIn)
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultApproachTimeout
	}
	direction := 1.0
	if !cfg.Forwards {
		direction = -1
	}

	if err := dt.Tank(ctx, direction*cfg.Power, direction*cfg.Power); err != nil {
		return multierr.Combine(errors.Wrap(err, "starting approach drive"), stopAndHold(ctx, dt))
	}

	start := clk.Now()
	ticker := clk.Ticker(approachPollInterval)
	defer ticker.Stop()
	for {
		if err := ctx.Err(); err != nil {
			return multierr.Combine(err, stopAndHold(ctx, dt))
		}
		if mm, err := sensor.Distance(ctx); err == nil {
			if reading, err := normalizeReading(mm); err == nil && reading > 0 && reading <= cfg.ThresholdIn {
				return stopAndHold(ctx, dt)
			}
		}
		if clk.Since(start) >= timeout {
			logger.Debugw("approach deadline hit before threshold; stopping",
				"timeout", timeout, "thresholdIn", cfg.ThresholdIn)
			return stopAndHold(ctx, dt)
		}
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}
}

// stopAndHold is the single stop path for every approach exit: brake mode to
// hold, then zero power, so the robot cannot coast past the wall.
func stopAndHold(ctx context.Context, dt drivetrain.Drivetrain) error {
	return multierr.Combine(
		dt.SetBrakeMode(ctx, drivetrain.BrakeModeHold),
		dt.Tank(ctx, 0, 0),
	)
}
