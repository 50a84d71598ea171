// Package utils contains shared math helpers for field geometry.
package utils

import "math"

func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// ModAngDeg normalizes an angle in degrees into [0, 360); negative
// inputs land on the positive side.
func ModAngDeg(ang float64) float64 {
	return math.Mod(math.Mod(ang, 360)+360, 360)
}

// AngleDiffDeg returns the closest difference from the two given
// angles. The arguments are commutative.
func AngleDiffDeg(a1, a2 float64) float64 {
	return float64(180) - math.Abs(math.Abs(a1-a2)-float64(180))
}

// Clamp returns n bounded to [min, max].
func Clamp(n, min, max float64) float64 {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// Sign returns -1 for negative n, 1 otherwise. Zero counts as positive
// so it can be multiplied back onto a magnitude without losing it.
func Sign(n float64) float64 {
	if n < 0 {
		return -1
	}
	return 1
}
