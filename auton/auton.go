// Package auton runs scripted autonomous routines built from wall-relative
// primitives: approaches, pose resets, shakes and timed drive segments.
package auton

import (
	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"

	"github.com/fieldnav/fieldnav/components/drivetrain"
	"github.com/fieldnav/fieldnav/components/motor"
	"github.com/fieldnav/fieldnav/components/piston"
	"github.com/fieldnav/fieldnav/components/posetracker"
	"github.com/fieldnav/fieldnav/wallreset"
)

// A Robot aggregates the hardware a routine drives. Every field must be
// populated before running a routine except Clock, which defaults to the wall
// clock.
type Robot struct {
	Drive    drivetrain.Drivetrain
	Tracker  posetracker.Tracker
	Resetter *wallreset.Resetter

	// BackSensors and the side sensors carry their own calibration so
	// routines can hand them straight to the resetter.
	BackSensors wallreset.BackSensorPair
	LeftSensor  wallreset.SideSensor
	RightSensor wallreset.SideSensor

	Intake  motor.Motor
	Outtake motor.Motor

	MidScoring piston.Piston
	Unloader   piston.Piston
	Descore    piston.Piston

	Clock  clock.Clock
	Logger golog.Logger
}

func (r *Robot) clock() clock.Clock {
	if r.Clock == nil {
		return clock.New()
	}
	return r.Clock
}
