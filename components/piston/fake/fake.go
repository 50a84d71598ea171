// Package fake provides a piston that records its commanded state.
package fake

import (
	"context"
	"sync"
)

// Piston remembers whether it was last extended. The zero value is retracted.
type Piston struct {
	mu       sync.Mutex
	extended bool
	sets     int
}

// Set records the commanded state.
func (p *Piston) Set(ctx context.Context, extended bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.extended = extended
	p.sets++
	return nil
}

// Extended returns the last commanded state.
func (p *Piston) Extended() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.extended
}

// Sets returns how many times Set has been called.
func (p *Piston) Sets() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sets
}
