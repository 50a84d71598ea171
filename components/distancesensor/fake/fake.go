// Package fake implements a distance sensor with a settable reading.
package fake

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

// Sensor reports whatever it was last told to. The zero value reads 0 mm.
type Sensor struct {
	distance atomic.Float64

	mu  sync.Mutex
	err error
}

// SetDistance sets the reading, in millimeters, that Distance returns.
func (s *Sensor) SetDistance(mm float64) {
	s.distance.Store(mm)
}

// SetError makes Distance fail until cleared with a nil error.
func (s *Sensor) SetError(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Distance returns the configured reading or error.
func (s *Sensor) Distance(ctx context.Context) (float64, error) {
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return s.distance.Load(), nil
}
