// Package fake provides a motor that records its commanded velocity.
package fake

import (
	"context"
	"sync"
)

// Motor remembers the last commanded velocity. The zero value is stopped.
type Motor struct {
	mu  sync.Mutex
	rpm float64
}

// SetRPM records the commanded velocity.
func (m *Motor) SetRPM(ctx context.Context, rpm float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rpm = rpm
	return nil
}

// Stop zeroes the commanded velocity.
func (m *Motor) Stop(ctx context.Context) error {
	return m.SetRPM(ctx, 0)
}

// RPM returns the last commanded velocity.
func (m *Motor) RPM() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rpm
}
