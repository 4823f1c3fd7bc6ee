package shape

import "math"

const twoPi = 2 * math.Pi

// normalizeSweep returns an angular interval with a1 strictly greater
// than a0, adding a full turn when the caller gave a wrapped range
// (for example 3π/2 .. π/2).
func normalizeSweep(a0, a1 float64) (float64, float64) {
	if a1 <= a0 {
		a1 += twoPi
	}
	return a0, a1
}

// angleWithin reports whether angle a falls inside [a0, a1], where the
// interval may span the wrap point. eps is an angular tolerance.
func angleWithin(a, a0, a1, eps float64) bool {
	if a1-a0 >= twoPi-eps {
		return true
	}
	// Shift a into [a0, a0+2π).
	for a < a0 {
		a += twoPi
	}
	for a >= a0+twoPi {
		a -= twoPi
	}
	return a <= a1+eps || a >= a0+twoPi-eps
}
