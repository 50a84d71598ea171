// Package drivetrain defines tank-style drive control for a differential
// chassis.
package drivetrain

import "context"

// BrakeMode selects what the drive motors do once power drops to zero.
type BrakeMode uint8

const (
	// BrakeModeCoast lets the chassis roll free at zero power.
	BrakeModeCoast BrakeMode = iota
	// BrakeModeBrake resists motion passively at zero power.
	BrakeModeBrake
	// BrakeModeHold actively holds position at zero power.
	BrakeModeHold
)

func (m BrakeMode) String() string {
	switch m {
	case BrakeModeCoast:
		return "coast"
	case BrakeModeBrake:
		return "brake"
	case BrakeModeHold:
		return "hold"
	}
	return "unknown"
}

// A Drivetrain powers the left and right sides independently. Powers are
// fractions in [-1, 1]; positive drives that side forward. Commands take
// effect immediately and persist until replaced.
type Drivetrain interface {
	Tank(ctx context.Context, leftPower, rightPower float64) error
	SetBrakeMode(ctx context.Context, mode BrakeMode) error
	// Stop cuts power to both sides, honoring the current brake mode.
	Stop(ctx context.Context) error
}
