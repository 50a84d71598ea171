package inject

import (
	"context"

	"github.com/fieldnav/fieldnav/components/posetracker"
)

// PoseTracker is an injected pose tracker.
type PoseTracker struct {
	posetracker.Tracker
	PoseFunc    func(ctx context.Context) (posetracker.Pose, error)
	SetPoseFunc func(ctx context.Context, pose posetracker.Pose) error
}

// Pose calls the injected Pose or the real version.
func (t *PoseTracker) Pose(ctx context.Context) (posetracker.Pose, error) {
	if t.PoseFunc == nil {
		return t.Tracker.Pose(ctx)
	}
	return t.PoseFunc(ctx)
}

// SetPose calls the injected SetPose or the real version.
func (t *PoseTracker) SetPose(ctx context.Context, pose posetracker.Pose) error {
	if t.SetPoseFunc == nil {
		return t.Tracker.SetPose(ctx, pose)
	}
	return t.SetPoseFunc(ctx, pose)
}
