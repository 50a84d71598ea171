// Package fake provides an in-memory pose tracker.
package fake

import (
	"context"
	"sync"

	"github.com/fieldnav/fieldnav/components/posetracker"
)

// Tracker stores a pose behind a mutex so gets and sets stay atomic with
// respect to each other.
type Tracker struct {
	mu   sync.Mutex
	pose posetracker.Pose
}

// NewTracker returns a tracker starting at the given pose.
func NewTracker(start posetracker.Pose) *Tracker {
	return &Tracker{pose: start}
}

// Pose returns the stored pose.
func (t *Tracker) Pose(ctx context.Context) (posetracker.Pose, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pose, nil
}

// SetPose replaces the stored pose.
func (t *Tracker) SetPose(ctx context.Context, pose posetracker.Pose) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pose = pose
	return nil
}
