// Package teleop drives the robot from gamepad input through configurable
// response curves.
package teleop

import (
	"context"
	"math"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fieldnav/fieldnav/components/drivetrain"
	fnutils "github.com/fieldnav/fieldnav/utils"
)

const pollInterval = 20 * time.Millisecond

// DefaultDeadband is the stick fraction below which input reads as centered.
const DefaultDeadband = 0.05

// A State is one snapshot of the driver's inputs. Sticks are fractions in
// [-1, 1]; Turn is positive clockwise.
type State struct {
	Throttle   float64
	Turn       float64
	CycleCurve bool
}

// An Input produces input snapshots for the drive loop.
type Input interface {
	State(ctx context.Context) (State, error)
}

// Options tune the drive loop.
type Options struct {
	// Curve is the initial response curve.
	Curve Curve
	// CurveParam tunes curves that take a parameter; zero selects defaults.
	CurveParam float64
	// Deadband is the stick fraction treated as centered. Zero uses
	// DefaultDeadband; negative disables the deadband.
	Deadband float64
	// TurnSensitivity scales the turn stick before mixing; zero uses 1.
	TurnSensitivity float64
	// Clock supports deterministic tests; nil uses the wall clock.
	Clock clock.Clock
}

// Run polls input on a 20ms cadence and commands the drivetrain until ctx is
// cancelled, which stops the drive and returns the context error. The cycle
// button advances the active curve on its rising edge. A failed input
// snapshot stops the drive for that cycle rather than coasting on a stale
// command.
func Run(
	ctx context.Context,
	input Input,
	dt drivetrain.Drivetrain,
	opts Options,
	logger golog.Logger,
) error {
	deadband := opts.Deadband
	switch {
	case deadband == 0:
		deadband = DefaultDeadband
	case deadband < 0:
		deadband = 0
	}
	if deadband >= 1 {
		return errors.Errorf("deadband must be below 1, got %v", deadband)
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	turnScale := opts.TurnSensitivity
	if turnScale == 0 {
		turnScale = 1
	}
	curve := opts.Curve

	var cycleHeld bool
	ticker := clk.Ticker(pollInterval)
	defer ticker.Stop()
	for {
		if err := ctx.Err(); err != nil {
			return multierr.Combine(err, dt.Stop(ctx))
		}
		state, err := input.State(ctx)
		if err != nil {
			logger.Warnw("input unavailable; stopping drive", "error", err)
			if err := dt.Stop(ctx); err != nil {
				return errors.Wrap(err, "stopping drivetrain")
			}
		} else {
			if state.CycleCurve && !cycleHeld {
				curve = curve.Next()
				logger.Infow("drive curve changed", "curve", curve.String())
			}
			cycleHeld = state.CycleCurve

			throttle := curve.Apply(applyDeadband(state.Throttle, deadband), opts.CurveParam)
			turn := curve.Apply(applyDeadband(state.Turn, deadband), opts.CurveParam) * turnScale
			left, right := arcadeMix(throttle, turn)
			if err := dt.Tank(ctx, left, right); err != nil {
				return multierr.Combine(errors.Wrap(err, "commanding drivetrain"), dt.Stop(ctx))
			}
		}
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}
}

func applyDeadband(v, deadband float64) float64 {
	if math.Abs(v) < deadband {
		return 0
	}
	return v
}

// arcadeMix converts throttle and clockwise turn into left and right tank
// powers. The pair is computed in polar space rotated 45 degrees so a full
// diagonal still saturates one side, then clamped.
func arcadeMix(throttle, turn float64) (left, right float64) {
	if throttle < 0 {
		// mirror the forward turning arc in reverse
		l, r := arcadeMix(-throttle, turn)
		return -l, -r
	}

	r := math.Hypot(throttle, turn)
	t := math.Atan2(-turn, throttle) + math.Pi/4

	left = r * math.Cos(t) * math.Sqrt2
	right = r * math.Sin(t) * math.Sqrt2

	return fnutils.Clamp(left, -1, 1), fnutils.Clamp(right, -1, 1)
}
