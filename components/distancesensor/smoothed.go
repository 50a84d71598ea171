package distancesensor

import (
	"context"
	"sync"
	"time"

	movingaverage "github.com/RobinUS2/golang-moving-average"
	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"go.uber.org/atomic"
	goutils "go.viam.com/utils"
)

const defaultSampleInterval = 20 * time.Millisecond

// Smoothed wraps a Sensor with a moving-average window to damp single-sample
// jitter. It polls the underlying sensor in the background until closed.
type Smoothed struct {
	sensor   Sensor
	interval time.Duration
	clk      clock.Clock
	logger   golog.Logger

	mu      sync.Mutex
	ma      *movingaverage.MovingAverage
	samples int

	cancel                  func()
	activeBackgroundWorkers sync.WaitGroup
	closed                  atomic.Bool
}

// NewSmoothed starts sampling sensor every interval into a window-sized
// moving average. A nil clk uses the wall clock; a non-positive interval uses
// the default cadence.
func NewSmoothed(sensor Sensor, window int, interval time.Duration, clk clock.Clock, logger golog.Logger) *Smoothed {
	if clk == nil {
		clk = clock.New()
	}
	if interval <= 0 {
		interval = defaultSampleInterval
	}
	cancelCtx, cancel := context.WithCancel(context.Background())
	s := &Smoothed{
		sensor:   sensor,
		interval: interval,
		clk:      clk,
		logger:   logger,
		ma:       movingaverage.New(window),
		cancel:   cancel,
	}
	s.activeBackgroundWorkers.Add(1)
	goutils.ManagedGo(func() {
		s.sample(cancelCtx)
	}, s.activeBackgroundWorkers.Done)
	return s
}

func (s *Smoothed) sample(ctx context.Context) {
	ticker := s.clk.Ticker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		d, err := s.sensor.Distance(ctx)
		if err != nil {
			s.logger.Debugw("dropping distance sample", "error", err)
			continue
		}
		s.mu.Lock()
		s.ma.Add(d)
		s.samples++
		s.mu.Unlock()
	}
}

// Distance returns the windowed average in millimeters. Before the first
// sample lands it falls through to the wrapped sensor.
func (s *Smoothed) Distance(ctx context.Context) (float64, error) {
	s.mu.Lock()
	samples := s.samples
	avg := s.ma.Avg()
	s.mu.Unlock()
	if samples == 0 {
		return s.sensor.Distance(ctx)
	}
	return avg, nil
}

// Close stops the background sampling. Safe to call more than once.
func (s *Smoothed) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.cancel()
	s.activeBackgroundWorkers.Wait()
	return nil
}
