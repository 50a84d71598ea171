package teleop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"go.viam.com/utils/testutils"

	"github.com/fieldnav/fieldnav/testutils/inject"
)

type scriptedInput struct {
	mu    sync.Mutex
	state State
	err   error
}

func (s *scriptedInput) State(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return State{}, s.err
	}
	return s.state, nil
}

func (s *scriptedInput) set(state State, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.err = err
}

type recordingDrive struct {
	mu    sync.Mutex
	tanks [][2]float64
	stops int
}

func (d *recordingDrive) drivetrain() *inject.Drivetrain {
	return &inject.Drivetrain{
		TankFunc: func(ctx context.Context, leftPower, rightPower float64) error {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.tanks = append(d.tanks, [2]float64{leftPower, rightPower})
			return nil
		},
		StopFunc: func(ctx context.Context) error {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.stops++
			return nil
		},
	}
}

func (d *recordingDrive) tankCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tanks)
}

func (d *recordingDrive) tank(i int) [2]float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tanks[i]
}

func (d *recordingDrive) stopCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stops
}

func waitForTanks(t *testing.T, rec *recordingDrive, n int) {
	t.Helper()
	testutils.WaitForAssertionWithSleep(t, time.Millisecond, 500, func(tb testing.TB) {
		tb.Helper()
		test.That(tb, rec.tankCount(), test.ShouldBeGreaterThanOrEqualTo, n)
	})
}

func TestRunCommandsCurvedPowers(t *testing.T) {
	logger := golog.NewTestLogger(t)
	mockClock := clock.NewMock()
	in := &scriptedInput{}
	in.set(State{Throttle: 0.6}, nil)
	rec := &recordingDrive{}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, in, rec.drivetrain(), Options{Curve: CurveSquared, Clock: mockClock}, logger)
	}()

	waitForTanks(t, rec, 1)
	cancel()
	err := <-errCh
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)

	first := rec.tank(0)
	test.That(t, first[0], test.ShouldAlmostEqual, 0.36, 1e-9)
	test.That(t, first[1], test.ShouldAlmostEqual, 0.36, 1e-9)
	// cancelling must leave the drive stopped
	test.That(t, rec.stopCount(), test.ShouldBeGreaterThanOrEqualTo, 1)
}

func TestRunAppliesDeadband(t *testing.T) {
	logger := golog.NewTestLogger(t)
	mockClock := clock.NewMock()
	in := &scriptedInput{}
	in.set(State{Throttle: 0.03, Turn: 0.04}, nil)
	rec := &recordingDrive{}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, in, rec.drivetrain(), Options{Clock: mockClock}, logger)
	}()

	waitForTanks(t, rec, 1)
	cancel()
	<-errCh

	test.That(t, rec.tank(0), test.ShouldResemble, [2]float64{0, 0})
}

func TestRunCyclesCurveOnButtonEdge(t *testing.T) {
	logger, logs := golog.NewObservedTestLogger(t)
	mockClock := clock.NewMock()
	in := &scriptedInput{}
	in.set(State{Throttle: 0.6, CycleCurve: true}, nil)
	rec := &recordingDrive{}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, in, rec.drivetrain(), Options{Curve: CurveLinear, Clock: mockClock}, logger)
	}()

	// the rising edge lands before the first command: linear becomes squared
	waitForTanks(t, rec, 1)
	test.That(t, rec.tank(0)[0], test.ShouldAlmostEqual, 0.36, 1e-9)

	// holding the button must not cycle again
	mockClock.Add(pollInterval)
	waitForTanks(t, rec, 2)
	test.That(t, rec.tank(1)[0], test.ShouldAlmostEqual, 0.36, 1e-9)

	// release, press again: squared becomes cubed
	in.set(State{Throttle: 0.6}, nil)
	mockClock.Add(pollInterval)
	waitForTanks(t, rec, 3)
	in.set(State{Throttle: 0.6, CycleCurve: true}, nil)
	mockClock.Add(pollInterval)
	waitForTanks(t, rec, 4)
	test.That(t, rec.tank(3)[0], test.ShouldAlmostEqual, 0.216, 1e-9)

	cancel()
	<-errCh
	test.That(t, len(logs.FilterMessageSnippet("drive curve changed").All()), test.ShouldEqual, 2)
}

func TestRunStopsDriveWhileInputUnavailable(t *testing.T) {
	logger, logs := golog.NewObservedTestLogger(t)
	mockClock := clock.NewMock()
	in := &scriptedInput{}
	in.set(State{Throttle: 0.6}, nil)
	rec := &recordingDrive{}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, in, rec.drivetrain(), Options{Clock: mockClock}, logger)
	}()

	waitForTanks(t, rec, 1)

	in.set(State{}, errors.New("controller unplugged"))
	mockClock.Add(pollInterval)
	testutils.WaitForAssertionWithSleep(t, time.Millisecond, 500, func(tb testing.TB) {
		tb.Helper()
		test.That(tb, rec.stopCount(), test.ShouldBeGreaterThanOrEqualTo, 1)
	})

	// input coming back resumes driving
	in.set(State{Throttle: 0.6}, nil)
	mockClock.Add(pollInterval)
	waitForTanks(t, rec, 2)

	cancel()
	<-errCh
	test.That(t, len(logs.FilterMessageSnippet("input unavailable").All()), test.ShouldBeGreaterThanOrEqualTo, 1)
}

func TestRunRejectsFullDeadband(t *testing.T) {
	logger := golog.NewTestLogger(t)
	rec := &recordingDrive{}
	err := Run(context.Background(), &scriptedInput{}, rec.drivetrain(), Options{Deadband: 1}, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "deadband")
	test.That(t, rec.tankCount(), test.ShouldEqual, 0)
}

func TestArcadeMix(t *testing.T) {
	for _, tc := range []struct {
		name           string
		throttle, turn float64
		left, right    float64
	}{
		{"full forward", 1, 0, 1, 1},
		{"full reverse", -1, 0, -1, -1},
		{"spin clockwise", 0, 1, 1, -1},
		{"spin counterclockwise", 0, -1, -1, 1},
		{"half forward", 0.5, 0, 0.5, 0.5},
		{"hard right arc", 1, 1, 1, 0},
		{"hard right arc reversed", -1, 1, -1, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			left, right := arcadeMix(tc.throttle, tc.turn)
			test.That(t, left, test.ShouldAlmostEqual, tc.left, 1e-9)
			test.That(t, right, test.ShouldAlmostEqual, tc.right, 1e-9)
		})
	}
}
