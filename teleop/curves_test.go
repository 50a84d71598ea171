package teleop

import (
	"testing"

	"go.viam.com/test"
)

var allCurves = Curves()

func TestCurvesOrder(t *testing.T) {
	test.That(t, allCurves, test.ShouldResemble, []Curve{
		CurveLinear, CurveSquared, CurveCubed, CurveExponential,
		CurveSCurve, CurvePiecewise, CurvePlateau,
	})
}

func TestCurveEndpoints(t *testing.T) {
	for _, c := range allCurves {
		t.Run(c.String(), func(t *testing.T) {
			test.That(t, c.Apply(0, 0), test.ShouldAlmostEqual, 0)
			test.That(t, c.Apply(1, 0), test.ShouldAlmostEqual, 1)
			test.That(t, c.Apply(-1, 0), test.ShouldAlmostEqual, -1)
		})
	}
}

func TestCurveMonotonic(t *testing.T) {
	for _, c := range allCurves {
		t.Run(c.String(), func(t *testing.T) {
			prev := 0.0
			for i := 1; i <= 100; i++ {
				out := c.Apply(float64(i)/100, 0)
				test.That(t, out, test.ShouldBeGreaterThanOrEqualTo, prev)
				prev = out
			}
		})
	}
}

func TestCurveClampsOverdeflection(t *testing.T) {
	for _, c := range allCurves {
		test.That(t, c.Apply(1.5, 0), test.ShouldAlmostEqual, 1)
		test.That(t, c.Apply(-2, 0), test.ShouldAlmostEqual, -1)
	}
}

func TestCurveSignPreserved(t *testing.T) {
	for _, c := range allCurves {
		out := c.Apply(-0.5, 0)
		test.That(t, out, test.ShouldBeLessThanOrEqualTo, 0)
		test.That(t, out, test.ShouldAlmostEqual, -c.Apply(0.5, 0))
	}
}

func TestExponentialParam(t *testing.T) {
	// higher k dampens the low range harder
	gentle := CurveExponential.Apply(0.5, 0.5)
	aggressive := CurveExponential.Apply(0.5, 3)
	test.That(t, aggressive, test.ShouldBeLessThan, gentle)

	// param at or below 0.01 selects the default steepness
	test.That(t, CurveExponential.Apply(0.5, 0), test.ShouldAlmostEqual, CurveExponential.Apply(0.5, 1.5))
	test.That(t, CurveExponential.Apply(0.5, 0.01), test.ShouldAlmostEqual, CurveExponential.Apply(0.5, 1.5))
}

func TestPiecewiseBreakpoint(t *testing.T) {
	// default breakpoint 0.3 outputs 0.15, with a linear ramp below it
	test.That(t, CurvePiecewise.Apply(0.3, 0), test.ShouldAlmostEqual, 0.15)
	test.That(t, CurvePiecewise.Apply(0.15, 0), test.ShouldAlmostEqual, 0.075)

	// a custom breakpoint moves where the slopes meet
	test.That(t, CurvePiecewise.Apply(0.5, 0.5), test.ShouldAlmostEqual, 0.15)
	test.That(t, CurvePiecewise.Apply(0.75, 0.5), test.ShouldAlmostEqual, 0.575)
}

func TestPlateauShape(t *testing.T) {
	// the zones join without steps
	test.That(t, CurvePlateau.Apply(0.40, 0), test.ShouldAlmostEqual, 0.66)
	test.That(t, CurvePlateau.Apply(0.82, 0), test.ShouldAlmostEqual, 0.80)

	// the band between is nearly flat: a third of linear slope
	rise := CurvePlateau.Apply(0.80, 0) - CurvePlateau.Apply(0.42, 0)
	test.That(t, rise/0.38, test.ShouldAlmostEqual, 1.0/3, 1e-2)
}

func TestCurveNames(t *testing.T) {
	names := []string{"Linear", "Squared", "Cubed", "Exponential", "S-Curve", "Piecewise", "Plateau"}
	for i, c := range allCurves {
		test.That(t, c.String(), test.ShouldEqual, names[i])
	}
	test.That(t, Curve(99).String(), test.ShouldEqual, "Unknown")
}

func TestCurveCycling(t *testing.T) {
	test.That(t, CurveLinear.Next(), test.ShouldEqual, CurveSquared)
	test.That(t, CurvePlateau.Next(), test.ShouldEqual, CurveLinear)

	c := CurveSCurve
	for i := 0; i < curveCount; i++ {
		c = c.Next()
	}
	test.That(t, c, test.ShouldEqual, CurveSCurve)
}

func TestCurveNamed(t *testing.T) {
	for _, c := range allCurves {
		got, ok := CurveNamed(c.String())
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, got, test.ShouldEqual, c)
	}

	got, ok := CurveNamed("s-curve")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, got, test.ShouldEqual, CurveSCurve)

	_, ok = CurveNamed("zigzag")
	test.That(t, ok, test.ShouldBeFalse)
}
