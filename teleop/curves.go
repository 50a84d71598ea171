package teleop

import (
	"math"
	"strings"

	fnutils "github.com/fieldnav/fieldnav/utils"
)

// A Curve shapes raw stick deflection into drive power. Every curve preserves
// sign, maps zero to zero and full deflection to full power, and differs only
// in how it allocates the range between.
type Curve int

// The available response curves, in cycling order.
const (
	CurveLinear Curve = iota
	CurveSquared
	CurveCubed
	CurveExponential
	CurveSCurve
	CurvePiecewise
	CurvePlateau
)

const curveCount = 7

// Next returns the curve after c, wrapping back to linear after the last.
func (c Curve) Next() Curve {
	return Curve((int(c) + 1) % curveCount)
}

// Curves returns every available curve in cycling order.
func Curves() []Curve {
	out := make([]Curve, curveCount)
	for i := range out {
		out[i] = Curve(i)
	}
	return out
}

// CurveNamed resolves a curve by its display name, case-insensitively.
func CurveNamed(name string) (Curve, bool) {
	for c := Curve(0); c < curveCount; c++ {
		if strings.EqualFold(name, c.String()) {
			return c, true
		}
	}
	return CurveLinear, false
}

func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "Linear"
	case CurveSquared:
		return "Squared"
	case CurveCubed:
		return "Cubed"
	case CurveExponential:
		return "Exponential"
	case CurveSCurve:
		return "S-Curve"
	case CurvePiecewise:
		return "Piecewise"
	case CurvePlateau:
		return "Plateau"
	default:
		return "Unknown"
	}
}

// Apply maps a stick fraction in [-1, 1] through the curve. param tunes the
// curves that take one (exponential steepness, piecewise breakpoint); values
// at or below 0.01 select the curve's default. Inputs beyond full deflection
// are clamped first, and an unrecognized curve drives linear.
func (c Curve) Apply(x, param float64) float64 {
	x = fnutils.Clamp(x, -1, 1)
	sign := fnutils.Sign(x)
	ax := math.Abs(x)

	var out float64
	switch c {
	case CurveSquared:
		out = ax * ax
	case CurveCubed:
		out = ax * ax * ax
	case CurveExponential:
		k := param
		if k <= 0.01 {
			k = 1.5
		}
		out = (math.Exp(k*ax) - 1) / (math.Exp(k) - 1)
	case CurveSCurve:
		// tanh is steepest mid-stick; remap so 0 -> 0 and 1 -> 1
		const k = 3.0
		lo := math.Tanh(k * -0.5)
		hi := math.Tanh(k * 0.5)
		out = (math.Tanh(k*(ax-0.5)) - lo) / (hi - lo)
	case CurvePiecewise:
		bp := param
		if bp <= 0.01 {
			bp = 0.3
		}
		const lowOut = 0.15
		if ax <= bp {
			out = ax * lowOut / bp
		} else {
			out = lowOut + (ax-bp)*(1-lowOut)/(1-bp)
		}
	case CurvePlateau:
		// quadratic ramp up to the plateau, a shallow band across it, then a
		// steep run-out to full power
		const (
			pStart = 0.40
			pEnd   = 0.82
			vStart = 0.66
			vEnd   = 0.80
		)
		switch {
		case ax <= pStart:
			out = ax * ax / (pStart * pStart) * vStart
		case ax <= pEnd:
			out = vStart + (ax-pStart)*(vEnd-vStart)/(pEnd-pStart)
		default:
			out = vEnd + (ax-pEnd)*(1-vEnd)/(1-pEnd)
		}
	default:
		out = ax
	}

	return fnutils.Clamp(sign*out, -1, 1)
}
