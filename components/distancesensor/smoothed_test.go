package distancesensor

import (
	"context"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"go.viam.com/utils/testutils"

	"github.com/fieldnav/fieldnav/components/distancesensor/fake"
)

func TestSmoothedPassthroughBeforeFirstSample(t *testing.T) {
	logger := golog.NewTestLogger(t)
	underlying := &fake.Sensor{}
	underlying.SetDistance(100)

	// an hour between samples; nothing lands during the test
	s := NewSmoothed(underlying, 4, time.Hour, nil, logger)
	defer func() {
		test.That(t, s.Close(), test.ShouldBeNil)
	}()

	d, err := s.Distance(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d, test.ShouldEqual, 100)

	underlying.SetError(errors.New("sensor unplugged"))
	_, err = s.Distance(context.Background())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unplugged")
}

func TestSmoothedConvergesOnWindowAverage(t *testing.T) {
	logger := golog.NewTestLogger(t)
	underlying := &fake.Sensor{}
	underlying.SetDistance(100)

	s := NewSmoothed(underlying, 4, time.Millisecond, nil, logger)

	testutils.WaitForAssertionWithSleep(t, 10*time.Millisecond, 200, func(tb testing.TB) {
		tb.Helper()
		d, err := s.Distance(context.Background())
		test.That(tb, err, test.ShouldBeNil)
		test.That(tb, d, test.ShouldEqual, 100)
	})

	underlying.SetDistance(200)
	testutils.WaitForAssertionWithSleep(t, 10*time.Millisecond, 200, func(tb testing.TB) {
		tb.Helper()
		d, err := s.Distance(context.Background())
		test.That(tb, err, test.ShouldBeNil)
		test.That(tb, d, test.ShouldEqual, 200)
	})

	test.That(t, s.Close(), test.ShouldBeNil)
	// a second close is a no-op
	test.That(t, s.Close(), test.ShouldBeNil)
}

func TestSmoothedSkipsFailedSamples(t *testing.T) {
	logger := golog.NewTestLogger(t)
	underlying := &fake.Sensor{}
	underlying.SetDistance(80)

	s := NewSmoothed(underlying, 4, time.Millisecond, nil, logger)
	defer func() {
		test.That(t, s.Close(), test.ShouldBeNil)
	}()

	testutils.WaitForAssertionWithSleep(t, 10*time.Millisecond, 200, func(tb testing.TB) {
		tb.Helper()
		d, err := s.Distance(context.Background())
		test.That(tb, err, test.ShouldBeNil)
		test.That(tb, d, test.ShouldEqual, 80)
	})

	// failing samples leave the last good average in place
	underlying.SetError(errors.New("glitch"))
	time.Sleep(20 * time.Millisecond)
	d, err := s.Distance(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d, test.ShouldEqual, 80)
}
