package auton

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/fieldnav/fieldnav/wallreset"
)

const (
	approachThresholdIn = 3.0
	approachPower       = 0.4
	unloadRPM           = 600.0
	nudgePower          = 0.3
	nudgeTime           = 75 * time.Millisecond
	unloadShakeTime     = 2 * time.Second
)

// Routines returns the built-in routines.
func Routines() []Routine {
	return []Routine{
		SquareUpRear(),
		UnloadAtWall(),
		ResetLeftWall(),
		ResetRightWall(),
	}
}

// Lookup returns the built-in routine with the given name.
func Lookup(name string) (Routine, bool) {
	for _, rt := range Routines() {
		if rt.Name == name {
			return rt, true
		}
	}
	return Routine{}, false
}

// SquareUpRear backs the robot onto the wall behind it and re-anchors
// position and heading from the rear sensor pair.
func SquareUpRear() Routine {
	return Routine{
		Name: "square-up-rear",
		Run: func(ctx context.Context, r *Robot) error {
			if err := wallreset.Approach(ctx, r.Drive, r.BackSensors.Left, wallreset.ApproachConfig{
				ThresholdIn: approachThresholdIn,
				Power:       approachPower,
				Forwards:    false,
				Clock:       r.Clock,
			}, r.Logger); err != nil {
				return errors.Wrap(err, "approaching rear wall")
			}
			if err := r.Resetter.ResetFromBack(ctx, r.BackSensors); err != nil {
				return errors.Wrap(err, "resetting against rear wall")
			}
			return nil
		},
	}
}

// UnloadAtWall backs onto the wall, dumps stored game pieces through the
// unloader while rocking the robot to keep them moving, and re-anchors the
// pose afterward.
func UnloadAtWall() Routine {
	return Routine{
		Name: "unload-at-wall",
		Run: func(ctx context.Context, r *Robot) error {
			if err := wallreset.Approach(ctx, r.Drive, r.BackSensors.Left, wallreset.ApproachConfig{
				ThresholdIn: approachThresholdIn,
				Power:       approachPower,
				Forwards:    false,
				Clock:       r.Clock,
			}, r.Logger); err != nil {
				return errors.Wrap(err, "approaching rear wall")
			}
			if err := r.Resetter.ResetFromBack(ctx, r.BackSensors); err != nil {
				return errors.Wrap(err, "resetting against rear wall")
			}

			if err := r.Unloader.Set(ctx, true); err != nil {
				return errors.Wrap(err, "raising unloader")
			}
			if err := r.Intake.SetRPM(ctx, -unloadRPM); err != nil {
				return errors.Wrap(err, "reversing intake")
			}
			if err := r.Outtake.SetRPM(ctx, -unloadRPM); err != nil {
				return errors.Wrap(err, "reversing outtake")
			}
			// seat against the goal before dumping
			if err := DriveFor(ctx, r.Drive, nudgePower, nudgeTime, r.Clock, r.Logger); err != nil {
				return errors.Wrap(err, "seating against goal")
			}
			if err := Shake(ctx, r.Drive, ShakeConfig{Duration: unloadShakeTime, Clock: r.Clock}, r.Logger); err != nil {
				return errors.Wrap(err, "shaking out game pieces")
			}

			if err := r.Intake.Stop(ctx); err != nil {
				return errors.Wrap(err, "stopping intake")
			}
			if err := r.Outtake.Stop(ctx); err != nil {
				return errors.Wrap(err, "stopping outtake")
			}
			if err := r.Unloader.Set(ctx, false); err != nil {
				return errors.Wrap(err, "lowering unloader")
			}

			// the shake moved us; trust the wall again before handing off
			if err := r.Resetter.ResetFromBack(ctx, r.BackSensors); err != nil {
				return errors.Wrap(err, "resetting after unload")
			}
			return nil
		},
	}
}

// ResetLeftWall corrects the pose from the left-facing side sensor.
func ResetLeftWall() Routine {
	return Routine{
		Name: "reset-left-wall",
		Run: func(ctx context.Context, r *Robot) error {
			return r.Resetter.ResetFromSide(ctx, r.LeftSensor)
		},
	}
}

// ResetRightWall corrects the pose from the right-facing side sensor.
func ResetRightWall() Routine {
	return Routine{
		Name: "reset-right-wall",
		Run: func(ctx context.Context, r *Robot) error {
			return r.Resetter.ResetFromSide(ctx, r.RightSensor)
		},
	}
}
