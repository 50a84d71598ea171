// Package fake provides a drivetrain that records the commands it receives.
package fake

import (
	"context"
	"sync"

	"github.com/fieldnav/fieldnav/components/drivetrain"
)

// Drivetrain remembers the last commanded powers and brake mode. The zero
// value is stopped and coasting.
type Drivetrain struct {
	mu        sync.Mutex
	left      float64
	right     float64
	brakeMode drivetrain.BrakeMode
	tankCalls int
}

// Tank records the commanded powers.
func (d *Drivetrain) Tank(ctx context.Context, leftPower, rightPower float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.left = leftPower
	d.right = rightPower
	d.tankCalls++
	return nil
}

// SetBrakeMode records the brake mode.
func (d *Drivetrain) SetBrakeMode(ctx context.Context, mode drivetrain.BrakeMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.brakeMode = mode
	return nil
}

// Stop zeroes both sides.
func (d *Drivetrain) Stop(ctx context.Context) error {
	return d.Tank(ctx, 0, 0)
}

// Powers returns the last commanded left and right powers.
func (d *Drivetrain) Powers() (float64, float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.left, d.right
}

// BrakeMode returns the last commanded brake mode.
func (d *Drivetrain) BrakeMode() drivetrain.BrakeMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brakeMode
}

// TankCalls returns how many times Tank has been commanded.
func (d *Drivetrain) TankCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tankCalls
}
