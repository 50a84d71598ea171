// Package posetracker defines the localization interface the pose-correction
// layer reads from and writes back to.
package posetracker

import (
	"context"

	"github.com/golang/geo/r2"
)

// A Pose is a full planar pose: position on the field in inches and heading
// in degrees. Heading follows the field convention: 0 points at the top wall
// (+Y) and angles grow clockwise.
type Pose struct {
	Position r2.Point
	Heading  float64
}

// A Tracker owns the live pose estimate, typically fed by odometry running on
// its own loop. Both operations act on the whole pose at once; an
// implementation must never expose a partially updated pose to concurrent
// readers.
type Tracker interface {
	Pose(ctx context.Context) (Pose, error)
	SetPose(ctx context.Context, pose Pose) error
}
