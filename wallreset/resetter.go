package wallreset

import (
	"context"
	"math"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fieldnav/fieldnav/components/distancesensor"
	"github.com/fieldnav/fieldnav/components/posetracker"
	fnutils "github.com/fieldnav/fieldnav/utils"
)

const (
	// DefaultFieldHalfExtent is half the side length of a standard field in
	// inches; the perimeter walls sit at +/- this value on both axes.
	DefaultFieldHalfExtent = 72.0

	// MountAngleRight and MountAngleLeft are the mount offsets of
	// side-facing sensors, in degrees clockwise from robot forward.
	MountAngleRight = 90.0
	MountAngleLeft  = 270.0

	mmPerInch = 25.4

	// Readings past this many inches are hardware noise, not geometry.
	maxValidDistanceIn = 200.0
)

// normalizeReading converts a native millimeter reading to inches and
// enforces the sensor sanity window. Both bounds are inclusive: 0 and 200
// inches are valid.
func normalizeReading(mm float64) (float64, error) {
	inches := mm / mmPerInch
	if inches < 0 || inches > maxValidDistanceIn {
		return 0, errors.Errorf("distance %.2fin outside valid range [0, %v]", inches, maxValidDistanceIn)
	}
	return inches, nil
}

// A Resetter rewrites a tracked pose from wall-relative distance readings.
// It keeps no state between calls; every reset is one pose read and at most
// one pose write, so the tracker's own atomicity is the only synchronization
// involved.
type Resetter struct {
	tracker   posetracker.Tracker
	fieldHalf float64
	logger    golog.Logger
}

// NewResetter returns a Resetter correcting poses against tracker. A
// non-positive fieldHalf uses DefaultFieldHalfExtent.
func NewResetter(tracker posetracker.Tracker, fieldHalf float64, logger golog.Logger) *Resetter {
	if fieldHalf <= 0 {
		fieldHalf = DefaultFieldHalfExtent
	}
	return &Resetter{tracker: tracker, fieldHalf: fieldHalf, logger: logger}
}

// A SideSensor is a single wall-facing rangefinder plus its calibration: the
// fixed distance from the tracking center to the sensor face along its
// facing axis, and the mount angle in degrees clockwise from robot forward
// (MountAngleRight or MountAngleLeft for the usual side mounts).
type SideSensor struct {
	Sensor     distancesensor.Sensor
	OffsetIn   float64
	MountAngle float64
}

// ResetFromSide corrects the one position axis constrained by the wall the
// sensor faces. The projection onto the wall normal assumes the robot is
// near perpendicular incidence; the residual angle comes from the tracked
// heading and is removed with a cosine. Heading and the other axis are left
// untouched, so this trusts the existing heading source and only fixes
// position. On any error the pose is not modified.
func (r *Resetter) ResetFromSide(ctx context.Context, s SideSensor) error {
	mm, err := s.Sensor.Distance(ctx)
	if err != nil {
		return errors.Wrap(err, "reading side sensor")
	}
	reading, err := normalizeReading(mm)
	if err != nil {
		r.logger.Warnw("rejecting side sensor reading", "error", err)
		return errors.Wrap(err, "side sensor")
	}

	pose, err := r.tracker.Pose(ctx)
	if err != nil {
		return errors.Wrap(err, "getting pose")
	}

	sensorHeading := pose.Heading + s.MountAngle
	nearestPerpendicular := math.Round(sensorHeading/90) * 90
	angleOffDeg := sensorHeading - nearestPerpendicular
	corrected := reading*math.Cos(fnutils.DegToRad(angleOffDeg)) + s.OffsetIn

	facing := ClassifyWall(sensorHeading)
	pos := facing.Sign * (r.fieldHalf - corrected)

	switch facing.Axis {
	case AxisX:
		pose.Position.X = pos
	case AxisY:
		pose.Position.Y = pos
	}
	if err := r.tracker.SetPose(ctx, pose); err != nil {
		return errors.Wrap(err, "writing corrected pose")
	}
	r.logger.Debugw("corrected position from side wall",
		"wall", facing.Wall.String(), "position", pos, "angleOff", angleOffDeg)
	return nil
}

// A BackSensorPair is two rear-facing rangefinders separated laterally by
// SpacingIn, each with its own face offset from the tracking center.
type BackSensorPair struct {
	Left          distancesensor.Sensor
	Right         distancesensor.Sensor
	LeftOffsetIn  float64
	RightOffsetIn float64
	SpacingIn     float64
}

// ResetFromBack corrects both the position axis constrained by the wall
// behind the robot and the heading. The difference between the two readings
// gives the incidence angle against the wall plane (positive when the robot
// is rotated clockwise from perpendicular), so this is the one reset that
// can re-anchor heading instead of trusting it. On any error the pose is
// not modified.
func (r *Resetter) ResetFromBack(ctx context.Context, p BackSensorPair) error {
	leftMM, err := p.Left.Distance(ctx)
	if err != nil {
		return errors.Wrap(err, "reading rear left sensor")
	}
	rightMM, err := p.Right.Distance(ctx)
	if err != nil {
		return errors.Wrap(err, "reading rear right sensor")
	}
	dLeft, errLeft := normalizeReading(leftMM)
	dRight, errRight := normalizeReading(rightMM)
	if combined := multierr.Combine(errLeft, errRight); combined != nil {
		r.logger.Warnw("rejecting rear sensor readings",
			"leftIn", leftMM/mmPerInch, "rightIn", rightMM/mmPerInch, "error", combined)
		return errors.Wrap(combined, "rear sensors")
	}

	wallAngle := math.Atan2(dRight-dLeft, p.SpacingIn)
	wallAngleDeg := fnutils.RadToDeg(wallAngle)
	corrected := (dLeft+dRight)/2*math.Cos(wallAngle) + (p.LeftOffsetIn+p.RightOffsetIn)/2

	pose, err := r.tracker.Pose(ctx)
	if err != nil {
		return errors.Wrap(err, "getting pose")
	}

	// the rear of the robot faces the wall
	facing := ClassifyWall(pose.Heading + 180)
	pos := facing.Sign * (r.fieldHalf - corrected)
	heading := fnutils.ModAngDeg(facing.PerpendicularHeading - wallAngleDeg)

	switch facing.Axis {
	case AxisX:
		pose.Position.X = pos
	case AxisY:
		pose.Position.Y = pos
	}
	pose.Heading = heading
	if err := r.tracker.SetPose(ctx, pose); err != nil {
		return errors.Wrap(err, "writing corrected pose")
	}
	r.logger.Infow("reset pose from rear wall",
		"wall", facing.Wall.String(), "position", pos, "heading", heading, "wallAngle", wallAngleDeg)
	return nil
}
