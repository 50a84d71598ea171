// Package piston defines single-acting pneumatic actuators.
package piston

import "context"

// A Piston extends or retracts with no position feedback; the last commanded
// state is the assumed state.
type Piston interface {
	Set(ctx context.Context, extended bool) error
}
