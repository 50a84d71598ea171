// Package inject provides trap implementations of the component interfaces
// whose behavior tests swap in per call.
package inject

import (
	"context"

	"github.com/fieldnav/fieldnav/components/distancesensor"
)

// DistanceSensor is an injected distance sensor.
type DistanceSensor struct {
	distancesensor.Sensor
	DistanceFunc func(ctx context.Context) (float64, error)
}

// Distance calls the injected Distance or the real version.
func (s *DistanceSensor) Distance(ctx context.Context) (float64, error) {
	if s.DistanceFunc == nil {
		return s.Sensor.Distance(ctx)
	}
	return s.DistanceFunc(ctx)
}
