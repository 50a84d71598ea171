package inject

import (
	"context"

	"github.com/fieldnav/fieldnav/components/piston"
)

// Piston is an injected piston.
type Piston struct {
	piston.Piston
	SetFunc func(ctx context.Context, extended bool) error
}

// Set calls the injected Set or the real version.
func (p *Piston) Set(ctx context.Context, extended bool) error {
	if p.SetFunc == nil {
		return p.Piston.Set(ctx, extended)
	}
	return p.SetFunc(ctx, extended)
}
