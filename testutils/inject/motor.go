package inject

import (
	"context"

	"github.com/fieldnav/fieldnav/components/motor"
)

// Motor is an injected motor.
type Motor struct {
	motor.Motor
	SetRPMFunc func(ctx context.Context, rpm float64) error
	StopFunc   func(ctx context.Context) error
}

// SetRPM calls the injected SetRPM or the real version.
func (m *Motor) SetRPM(ctx context.Context, rpm float64) error {
	if m.SetRPMFunc == nil {
		return m.Motor.SetRPM(ctx, rpm)
	}
	return m.SetRPMFunc(ctx, rpm)
}

// Stop calls the injected Stop or the real version.
func (m *Motor) Stop(ctx context.Context) error {
	if m.StopFunc == nil {
		return m.Motor.Stop(ctx)
	}
	return m.StopFunc(ctx)
}
