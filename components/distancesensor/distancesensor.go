// Package distancesensor defines a rangefinder that reports how far away the
// nearest surface along its facing axis is.
package distancesensor

import "context"

// A Sensor measures the distance to the nearest surface it faces, in native
// millimeters. An error means no trustworthy sample is available right now
// (nothing in range, bus fault); callers treat it as a skipped sample, not a
// fatal condition.
type Sensor interface {
	Distance(ctx context.Context) (float64, error)
}
