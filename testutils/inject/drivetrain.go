package inject

import (
	"context"

	"github.com/fieldnav/fieldnav/components/drivetrain"
)

// Drivetrain is an injected drivetrain.
type Drivetrain struct {
	drivetrain.Drivetrain
	TankFunc         func(ctx context.Context, leftPower, rightPower float64) error
	SetBrakeModeFunc func(ctx context.Context, mode drivetrain.BrakeMode) error
	StopFunc         func(ctx context.Context) error
}

// Tank calls the injected Tank or the real version.
func (d *Drivetrain) Tank(ctx context.Context, leftPower, rightPower float64) error {
	if d.TankFunc == nil {
		return d.Drivetrain.Tank(ctx, leftPower, rightPower)
	}
	return d.TankFunc(ctx, leftPower, rightPower)
}

// SetBrakeMode calls the injected SetBrakeMode or the real version.
func (d *Drivetrain) SetBrakeMode(ctx context.Context, mode drivetrain.BrakeMode) error {
	if d.SetBrakeModeFunc == nil {
		return d.Drivetrain.SetBrakeMode(ctx, mode)
	}
	return d.SetBrakeModeFunc(ctx, mode)
}

// Stop calls the injected Stop or the real version.
func (d *Drivetrain) Stop(ctx context.Context) error {
	if d.StopFunc == nil {
		return d.Drivetrain.Stop(ctx)
	}
	return d.StopFunc(ctx)
}
