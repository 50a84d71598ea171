// Package motor defines velocity-controlled accessory motors (intake,
// outtake and the like), as distinct from the drive motors.
package motor

import "context"

// A Motor runs under closed-loop velocity control.
type Motor interface {
	// SetRPM spins the motor at the given velocity until told otherwise.
	// Negative reverses.
	SetRPM(ctx context.Context, rpm float64) error
	Stop(ctx context.Context) error
}
